package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubel/exemption-gateway/internal/service"
	"github.com/edubel/exemption-gateway/pkg/response"
)

// NotificationHandler exposes the transient notification feed.
type NotificationHandler struct {
	service service.NotificationService
}

// NewNotificationHandler constructs a notification handler.
func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// List godoc
// @Summary List my notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	notifications, err := h.service.List(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notifications)
}

// Dismiss godoc
// @Summary Dismiss a notification
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Security BearerAuth
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	studentID, ok := sessionStudent(c)
	if !ok {
		return
	}
	if err := h.service.Dismiss(c.Request.Context(), studentID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
