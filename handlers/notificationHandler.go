package handlers

import (
	"MediSched/middlewares"
	"MediSched/models"
	"MediSched/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	caller, err := middlewares.CallerFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, models.ErrUnauthorized)
		return
	}

	notifications, err := h.service.ListForUser(c.Request.Context(), caller.ID)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Notifications.", notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	caller, err := middlewares.CallerFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, models.ErrUnauthorized)
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, caller.ID); err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Notification marked as read.", nil)
}
