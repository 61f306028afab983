package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teacher-admin-api/internal/models"
	appErrors "github.com/noah-isme/teacher-admin-api/pkg/errors"
	"github.com/noah-isme/teacher-admin-api/pkg/response"
)

type notificationFeed interface {
	List() []models.Notification
	Dismiss(id string) bool
}

// NotificationHandler exposes the toast feed.
type NotificationHandler struct {
	feed notificationFeed
}

// NewNotificationHandler constructs a notification handler.
func NewNotificationHandler(feed notificationFeed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// List godoc
// @Summary List pending notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.feed.List(), nil)
}

// Dismiss godoc
// @Summary Dismiss notification
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	if !h.feed.Dismiss(c.Param("id")) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "notification not found"))
		return
	}
	response.NoContent(c)
}
