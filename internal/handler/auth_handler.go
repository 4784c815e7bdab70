package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubel/exemption-gateway/internal/middleware"
	"github.com/edubel/exemption-gateway/internal/models"
	"github.com/edubel/exemption-gateway/internal/service"
	appErrors "github.com/edubel/exemption-gateway/pkg/errors"
	"github.com/edubel/exemption-gateway/pkg/response"
)

// AuthHandler exposes the mock session endpoints.
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Log in as a student
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Me godoc
// @Summary Current session student
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	student, err := h.service.Student(claims.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}
