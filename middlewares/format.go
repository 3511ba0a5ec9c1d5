package middlewares

import (
	"errors"
	"log"
	"net/http"

	"MediSched/models"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	IsError    bool        `json:"isError"`
}

// RespondJSON writes a success envelope to the client.
func RespondJSON(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		StatusCode: status,
		Message:    message,
		Data:       data,
		IsError:    false,
	})
}

// HttpError maps a domain error onto an HTTP status and writes an error
// envelope. Data is always null on errors; clients key off the message and
// the isError flag, not status granularity.
func HttpError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("HTTP %d - %s %s: %v", status, c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, Response{
		StatusCode: status,
		Message:    err.Error(),
		Data:       nil,
		IsError:    true,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidRange),
		errors.Is(err, models.ErrOverlap),
		errors.Is(err, models.ErrAlreadyScheduled),
		errors.Is(err, models.ErrSlotTaken),
		errors.Is(err, models.ErrAlreadyConfirmed),
		errors.Is(err, models.ErrAlreadyExists),
		errors.Is(err, models.ErrInvalidToken),
		errors.Is(err, models.ErrBookingCancelled),
		errors.Is(err, models.ErrHasRecord),
		errors.Is(err, models.ErrHasInvoice),
		errors.Is(err, models.ErrNotCancelled),
		errors.Is(err, models.ErrHasBookings):
		return http.StatusBadRequest
	}

	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
