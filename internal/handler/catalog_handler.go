package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubel/exemption-gateway/internal/service"
	"github.com/edubel/exemption-gateway/pkg/response"
)

// CatalogHandler exposes the reference data endpoints.
type CatalogHandler struct {
	service service.CatalogService
}

// NewCatalogHandler constructs a catalog handler.
func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// Sections godoc
// @Summary List target sections
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /sections [get]
func (h *CatalogHandler) Sections(c *gin.Context) {
	sections, err := h.service.Sections(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sections)
}

// Units godoc
// @Summary List the teaching units of a section
// @Tags Catalog
// @Produce json
// @Param id path string true "Section ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /sections/{id}/units [get]
func (h *CatalogHandler) Units(c *gin.Context) {
	units, err := h.service.Units(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, units)
}

// Unit godoc
// @Summary Fetch a teaching unit with its learning outcomes
// @Tags Catalog
// @Produce json
// @Param code path string true "Unit code"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /units/{code} [get]
func (h *CatalogHandler) Unit(c *gin.Context) {
	unit, err := h.service.Unit(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, unit)
}
