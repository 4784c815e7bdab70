package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubel/exemption-gateway/internal/service"
	appErrors "github.com/edubel/exemption-gateway/pkg/errors"
	"github.com/edubel/exemption-gateway/pkg/response"
)

// UploadHandler receives proof documents and serves them back through signed
// links.
type UploadHandler struct {
	service service.UploadService
}

// NewUploadHandler constructs an upload handler.
func NewUploadHandler(svc service.UploadService) *UploadHandler {
	return &UploadHandler{service: svc}
}

// Upload godoc
// @Summary Upload a proof document
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "a file field is required"))
		return
	}
	uploaded, err := h.service.Store(c.Request.Context(), studentID, header)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, uploaded)
}

// Download godoc
// @Summary Download a stored document through its signed link
// @Tags Documents
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200
// @Router /documents/{token} [get]
func (h *UploadHandler) Download(c *gin.Context) {
	file, name, err := h.service.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", "attachment; filename=\""+name+"\"")
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}
