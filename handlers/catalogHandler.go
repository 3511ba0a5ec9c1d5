package handlers

import (
	"MediSched/middlewares"
	"MediSched/models"
	"MediSched/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the reference data bookings draw on: billable
// services and medical specialties.
type CatalogHandler struct {
	service *services.CatalogService
}

func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type createServiceRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	SpecialtyID string  `json:"specialtyId"`
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	service, err := h.service.CreateService(c.Request.Context(), req.Name, req.Price, req.Description, req.SpecialtyID)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Service created.", service)
}

func (h *CatalogHandler) GetServiceByID(c *gin.Context) {
	service, err := h.service.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Service detail.", service)
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Services.", services)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.service.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Service deleted.", nil)
}

type createSpecialtyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CatalogHandler) CreateSpecialty(c *gin.Context) {
	var req createSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	specialty, err := h.service.CreateSpecialty(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Specialty created.", specialty)
}

func (h *CatalogHandler) ListSpecialties(c *gin.Context) {
	specialties, err := h.service.ListSpecialties(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Specialties.", specialties)
}

func (h *CatalogHandler) DeleteSpecialty(c *gin.Context) {
	if err := h.service.DeleteSpecialty(c.Request.Context(), c.Param("id")); err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Specialty deleted.", nil)
}
