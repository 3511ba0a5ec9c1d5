package middlewares

import (
	"MediSched/models"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performError(t *testing.T, err error) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HttpError(c, err)

	var body Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr, body
}

func TestHttpErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrUnauthorized, http.StatusForbidden},
		{models.ErrInvalidInput, http.StatusBadRequest},
		{models.ErrOverlap, http.StatusBadRequest},
		{models.ErrAlreadyScheduled, http.StatusBadRequest},
		{models.ErrSlotTaken, http.StatusBadRequest},
		{models.ErrAlreadyConfirmed, http.StatusBadRequest},
		{models.ErrInvalidToken, http.StatusBadRequest},
		{models.ErrHasBookings, http.StatusBadRequest},
		{models.ErrNotCancelled, http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rr, body := performError(t, tc.err)
		assert.Equal(t, tc.want, rr.Code, "error %v", tc.err)
		assert.Equal(t, tc.want, body.StatusCode)
		assert.True(t, body.IsError)
		assert.Nil(t, body.Data)
		assert.Equal(t, tc.err.Error(), body.Message)
	}
}

func TestHttpErrorSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("creating slot: %w", models.ErrOverlap)
	rr, _ := performError(t, wrapped)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHttpErrorValidationErrors(t *testing.T) {
	vErr := validation.Errors{"doctorId": errors.New("must be a valid UUID")}
	rr, body := performError(t, vErr)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.True(t, body.IsError)
}

func TestRespondJSONEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)

	RespondJSON(c, http.StatusCreated, "Created.", map[string]string{"id": "42"})

	var body Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, http.StatusCreated, body.StatusCode)
	assert.Equal(t, "Created.", body.Message)
	assert.False(t, body.IsError)
	assert.Equal(t, map[string]interface{}{"id": "42"}, body.Data)
}
