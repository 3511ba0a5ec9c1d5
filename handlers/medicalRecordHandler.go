package handlers

import (
	"MediSched/middlewares"
	"MediSched/models"
	"MediSched/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type MedicalRecordHandler struct {
	service *services.MedicalRecordService
}

func NewMedicalRecordHandler(service *services.MedicalRecordService) *MedicalRecordHandler {
	return &MedicalRecordHandler{service: service}
}

type createRecordRequest struct {
	AppointmentID uint   `json:"appointmentId"`
	Diagnosis     string `json:"diagnosis"`
	Prescription  string `json:"prescription"`
	Notes         string `json:"notes"`
}

func (h *MedicalRecordHandler) CreateRecord(c *gin.Context) {
	caller, err := middlewares.CallerFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, models.ErrUnauthorized)
		return
	}

	var req createRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	record, err := h.service.Create(c.Request.Context(), caller, req.AppointmentID,
		req.Diagnosis, req.Prescription, req.Notes)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Medical record filed.", record)
}

func (h *MedicalRecordHandler) DeleteRecord(c *gin.Context) {
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
	middlewares.RespondJSON(c, http.StatusOK, "Medical record deleted.", nil)
}
