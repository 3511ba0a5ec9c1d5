package handlers

import (
	"MediSched/middlewares"
	"MediSched/models"
	"MediSched/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type createAppointmentRequest struct {
	BookingID string `json:"bookingId"`
}

// CreateAppointment materializes the appointment of a confirmed booking.
// Confirmation normally does this automatically; the endpoint exists for
// correction.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	caller, err := middlewares.CallerFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, models.ErrUnauthorized)
		return
	}

	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	appointment, err := h.service.CreateForBooking(c.Request.Context(), caller, req.BookingID)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Appointment created.", appointment)
}

type updateAppointmentRequest struct {
	Status string `json:"status"`
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
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

	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	appointment, err := h.service.UpdateStatus(c.Request.Context(), caller, id, req.Status)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Appointment updated.", appointment)
}

func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	caller, err := middlewares.CallerFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, models.ErrUnauthorized)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	total, items, err := h.service.List(c.Request.Context(), caller, page, limit)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Appointments.", gin.H{
		"total": total,
		"items": items,
	})
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
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

	appointment, err := h.service.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Appointment detail.", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
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

	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Appointment deleted.", nil)
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
