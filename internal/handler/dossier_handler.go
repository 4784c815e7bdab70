package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edubel/exemption-gateway/internal/middleware"
	"github.com/edubel/exemption-gateway/internal/models"
	"github.com/edubel/exemption-gateway/internal/service"
	appErrors "github.com/edubel/exemption-gateway/pkg/errors"
	"github.com/edubel/exemption-gateway/pkg/response"
)

// DossierHandler exposes the exemption wizard endpoints.
type DossierHandler struct {
	service service.DossierService
	audit   service.AuditService
}

// NewDossierHandler constructs a dossier handler.
func NewDossierHandler(svc service.DossierService, audit service.AuditService) *DossierHandler {
	return &DossierHandler{service: svc, audit: audit}
}

func sessionStudent(c *gin.Context) (string, bool) {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}
	return claims.StudentID, true
}

// List godoc
// @Summary List my dossiers
// @Tags Dossiers
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dossiers [get]
func (h *DossierHandler) List(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	summaries, err := h.service.List(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries)
}

// Create godoc
// @Summary Create a new exemption dossier
// @Tags Dossiers
// @Accept json
// @Produce json
// @Param payload body models.CreateDossierRequest true "Dossier"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /dossiers [post]
func (h *DossierHandler) Create(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	var req models.CreateDossierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	view, err := h.service.Create(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Get godoc
// @Summary Fetch a dossier with its derived wizard state
// @Tags Dossiers
// @Produce json
// @Param id path string true "Dossier ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dossiers/{id} [get]
func (h *DossierHandler) Get(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	view, err := h.service.Get(c.Request.Context(), studentID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Delete godoc
// @Summary Delete a dossier before submission
// @Tags Dossiers
// @Param id path string true "Dossier ID"
// @Success 204
// @Security BearerAuth
// @Router /dossiers/{id} [delete]
func (h *DossierHandler) Delete(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), studentID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddCourse godoc
// @Summary Add an external course
// @Tags Dossiers
// @Accept json
// @Produce json
// @Param id path string true "Dossier ID"
// @Param payload body models.CourseInput true "Course"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dossiers/{id}/courses [post]
func (h *DossierHandler) AddCourse(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	var input models.CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	view, err := h.service.AddCourse(c.Request.Context(), studentID, c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// AddDocument godoc
// @Summary Attach an uploaded document to the dossier or one of its courses
// @Tags Dossiers
// @Accept json
// @Produce json
// @Param id path string true "Dossier ID"
// @Param payload body models.DocumentInput true "Document"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dossiers/{id}/documents [post]
func (h *DossierHandler) AddDocument(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	var input models.DocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	view, err := h.service.AddDocument(c.Request.Context(), studentID, c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// DeleteDocument godoc
// @Summary Remove a document from the dossier
// @Tags Dossiers
// @Produce json
// @Param id path string true "Dossier ID"
// @Param docId path string true "Document ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dossiers/{id}/documents/{docId} [delete]
func (h *DossierHandler) DeleteDocument(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	view, err := h.service.DeleteDocument(c.Request.Context(), studentID, c.Param("id"), c.Param("docId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// RunAnalysis godoc
// @Summary Request the matching analysis
// @Tags Dossiers
// @Produce json
// @Param id path string true "Dossier ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dossiers/{id}/analysis [post]
func (h *DossierHandler) RunAnalysis(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	view, err := h.service.RunAnalysis(c.Request.Context(), studentID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// AddItem godoc
// @Summary Add an exemption line
// @Tags Dossiers
// @Accept json
// @Produce json
// @Param id path string true "Dossier ID"
// @Param payload body models.ItemInput true "Item"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dossiers/{id}/items [post]
func (h *DossierHandler) AddItem(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	var input models.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	view, err := h.service.AddItem(c.Request.Context(), studentID, c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// DeleteItem godoc
// @Summary Remove an exemption line
// @Tags Dossiers
// @Produce json
// @Param id path string true "Dossier ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dossiers/{id}/items/{itemId} [delete]
func (h *DossierHandler) DeleteItem(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	view, err := h.service.DeleteItem(c.Request.Context(), studentID, c.Param("id"), c.Param("itemId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Advance godoc
// @Summary Validate the transition from the review step to the summary step
// @Tags Dossiers
// @Produce json
// @Param id path string true "Dossier ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dossiers/{id}/advance [post]
func (h *DossierHandler) Advance(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	check, err := h.service.CheckAdvance(c.Request.Context(), studentID, c.Param("id"))
	if err != nil {
		if check != nil {
			response.ErrorWithData(c, err, check)
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, check)
}

// Submit godoc
// @Summary Submit the dossier for review
// @Description Requires an explicit confirm flag, the submission is final.
// @Tags Dossiers
// @Accept json
// @Produce json
// @Param id path string true "Dossier ID"
// @Param payload body models.SubmitRequest true "Confirmation"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dossiers/{id}/submit [post]
func (h *DossierHandler) Submit(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	var req models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	view, err := h.service.Submit(c.Request.Context(), studentID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// History godoc
// @Summary List the gateway's audit trail for a dossier
// @Tags Dossiers
// @Produce json
// @Param id path string true "Dossier ID"
// @Param limit query int false "Max entries"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dossiers/{id}/history [get]
func (h *DossierHandler) History(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	// Ownership check goes through the orchestrator.
	if _, err := h.service.Get(c.Request.Context(), studentID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := h.audit.History(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs)
}
