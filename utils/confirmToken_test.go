package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfirmKey = []byte("0123456789abcdef0123456789abcdef")

func TestConfirmTokenRoundTrip(t *testing.T) {
	codec := NewConfirmTokenCodec(testConfirmKey)

	token, err := codec.Issue("booking-42", PurposeBookingConfirm, time.Hour)
	require.NoError(t, err)

	bookingID, err := codec.Verify(token, PurposeBookingConfirm)
	require.NoError(t, err)
	assert.Equal(t, "booking-42", bookingID)
}

func TestConfirmTokenPurposeMismatch(t *testing.T) {
	codec := NewConfirmTokenCodec(testConfirmKey)

	token, err := codec.Issue("booking-42", PurposeBookingConfirm, time.Hour)
	require.NoError(t, err)

	_, err = codec.Verify(token, PurposeBookingCancel)
	assert.ErrorIs(t, err, ErrConfirmTokenInvalid)
}

func TestConfirmTokenExpired(t *testing.T) {
	codec := NewConfirmTokenCodec(testConfirmKey)

	token, err := codec.Issue("booking-42", PurposeBookingCancel, -time.Minute)
	require.NoError(t, err)

	_, err = codec.Verify(token, PurposeBookingCancel)
	assert.ErrorIs(t, err, ErrConfirmTokenInvalid)
}

func TestConfirmTokenGarbage(t *testing.T) {
	codec := NewConfirmTokenCodec(testConfirmKey)

	_, err := codec.Verify("v2.local.not-a-real-token", PurposeBookingConfirm)
	assert.ErrorIs(t, err, ErrConfirmTokenInvalid)

	// A token minted under a different key is just as dead.
	other := NewConfirmTokenCodec([]byte("ffffffffffffffffffffffffffffffff"))
	token, err := other.Issue("booking-42", PurposeBookingConfirm, time.Hour)
	require.NoError(t, err)

	_, err = codec.Verify(token, PurposeBookingConfirm)
	assert.ErrorIs(t, err, ErrConfirmTokenInvalid)
}
