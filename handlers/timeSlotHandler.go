package handlers

import (
	"MediSched/middlewares"
	"MediSched/models"
	"MediSched/services"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type TimeSlotHandler struct {
	service *services.TimeSlotService
}

func NewTimeSlotHandler(service *services.TimeSlotService) *TimeSlotHandler {
	return &TimeSlotHandler{service: service}
}

type createSlotRequest struct {
	DoctorID    string    `json:"doctorId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	IsAvailable *bool     `json:"isAvailable"`
}

func (h *TimeSlotHandler) CreateSlot(c *gin.Context) {
	caller, err := middlewares.CallerFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, models.ErrUnauthorized)
		return
	}

	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	slot, err := h.service.Create(c.Request.Context(), caller, req.DoctorID, req.StartTime, req.EndTime, available)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Time slot created.", slot)
}

type createDefaultScheduleRequest struct {
	DoctorID string `json:"doctorId"`
}

func (h *TimeSlotHandler) CreateDefaultSchedule(c *gin.Context) {
	caller, err := middlewares.CallerFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, models.ErrUnauthorized)
		return
	}

	var req createDefaultScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	slots, err := h.service.CreateDefaultDaySchedule(c.Request.Context(), caller, req.DoctorID)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Default day schedule created.", slots)
}

// ListByDay lists a doctor's slots for one day, given as date=YYYY-MM-DD.
func (h *TimeSlotHandler) ListByDay(c *gin.Context) {
	doctorID := c.Query("doctorId")
	if doctorID == "" {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			middlewares.HttpError(c, models.ErrInvalidInput)
			return
		}
		day = parsed
	}

	slots, err := h.service.ListByDoctorAndDay(c.Request.Context(), doctorID, day)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Time slots.", slots)
}

func (h *TimeSlotHandler) ScheduledDays(c *gin.Context) {
	summaries, err := h.service.ListScheduledDays(c.Request.Context(), c.Param("doctorId"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Scheduled days.", summaries)
}

func (h *TimeSlotHandler) DeleteSlot(c *gin.Context) {
	caller, err := middlewares.CallerFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, models.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Time slot deleted.", nil)
}
