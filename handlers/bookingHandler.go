package handlers

import (
	"MediSched/middlewares"
	"MediSched/models"
	"MediSched/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service *services.BookingService
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	TimeSlotID string `json:"timeSlotId"`
	ServiceID  string `json:"serviceId"`
}

// CreateBooking creates a pending booking for the authenticated patient and
// emails the confirmation link.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	caller, err := middlewares.CallerFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, models.ErrUnauthorized)
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	booking, err := h.service.Create(c.Request.Context(), caller.ID, req.TimeSlotID, req.ServiceID)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated,
		"Booking created. Please check your email to confirm.", booking)
}

// VerifyEmail finalizes a booking behind its emailed confirmation token.
func (h *BookingHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		middlewares.HttpError(c, models.ErrInvalidToken)
		return
	}

	booking, appointment, err := h.service.Confirm(c.Request.Context(), token)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Booking confirmed.", gin.H{
		"booking":     booking,
		"appointment": appointment,
	})
}

// RequestCancel emails the owning patient a cancellation link.
func (h *BookingHandler) RequestCancel(c *gin.Context) {
	caller, err := middlewares.CallerFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, models.ErrUnauthorized)
		return
	}

	if err := h.service.RequestCancellation(c.Request.Context(), c.Param("id"), caller.ID); err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK,
		"Cancellation requested. Please check your email to confirm.", nil)
}

// VerifyCancelEmail deletes the booking behind a cancellation token and
// frees its slot.
func (h *BookingHandler) VerifyCancelEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		middlewares.HttpError(c, models.ErrInvalidToken)
		return
	}

	if err := h.service.ConfirmCancellation(c.Request.Context(), token); err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Booking cancelled.", nil)
}

// ListConfirmed pages through confirmed bookings, scoped by the caller's role.
func (h *BookingHandler) ListConfirmed(c *gin.Context) {
	caller, err := middlewares.CallerFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, models.ErrUnauthorized)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.service.ListConfirmed(c.Request.Context(), caller, page, limit,
		c.Query("sort"), c.Query("order"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Confirmed bookings.", result)
}

// GetByID returns one confirmed booking with its joined summaries.
func (h *BookingHandler) GetByID(c *gin.Context) {
	booking, err := h.service.GetConfirmedByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Booking detail.", booking)
}
