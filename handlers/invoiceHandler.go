package handlers

import (
	"MediSched/middlewares"
	"MediSched/models"
	"MediSched/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	service *services.InvoiceService
}

func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

type createInvoiceRequest struct {
	AppointmentID uint        `json:"appointmentId"`
	Total         interface{} `json:"total"`
	Status        string      `json:"status"`
	Note          string      `json:"note"`
}

// total falls back to the booked service's price when absent or not a number.
func (r createInvoiceRequest) totalOverride() *float64 {
	if v, ok := r.Total.(float64); ok && v > 0 {
		return &v
	}
	return nil
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	invoice, err := h.service.Create(c.Request.Context(), req.AppointmentID, req.totalOverride(), req.Status, req.Note)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Invoice created.", invoice)
}

type updateInvoiceRequest struct {
	Total  float64 `json:"total"`
	Status string  `json:"status"`
	Note   string  `json:"note"`
}

func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	var req updateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	invoice, err := h.service.Update(c.Request.Context(), id, req.Total, req.Status, req.Note)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Invoice updated.", invoice)
}

func (h *InvoiceHandler) GetInvoiceByID(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	invoice, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Invoice detail.", invoice)
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Invoice deleted.", nil)
}
