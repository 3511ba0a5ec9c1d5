package handlers

import (
	"MediSched/middlewares"
	"MediSched/models"
	"MediSched/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			middlewares.RespondJSON(c, http.StatusUnauthorized, err.Error(), nil)
			return
		}
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Login successful.", result)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, models.ErrInvalidInput)
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Token refreshed.", result)
}
