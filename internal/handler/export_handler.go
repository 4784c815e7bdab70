package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubel/exemption-gateway/internal/service"
	"github.com/edubel/exemption-gateway/pkg/response"
)

// ExportHandler serves dossier recaps as downloadable files.
type ExportHandler struct {
	service service.ExportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// RecapPDF godoc
// @Summary Download a PDF recap of a dossier
// @Tags Exports
// @Produce application/pdf
// @Param id path string true "Dossier ID"
// @Success 200
// @Security BearerAuth
// @Router /exports/dossiers/{id} [get]
func (h *ExportHandler) RecapPDF(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	payload, filename, err := h.service.RecapPDF(c.Request.Context(), studentID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(http.StatusOK, "application/pdf", payload)
}

// DashboardCSV godoc
// @Summary Download my dossier list as CSV
// @Tags Exports
// @Produce text/csv
// @Success 200
// @Security BearerAuth
// @Router /exports/dossiers [get]
func (h *ExportHandler) DashboardCSV(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	payload, filename, err := h.service.DashboardCSV(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(http.StatusOK, "text/csv", payload)
}
