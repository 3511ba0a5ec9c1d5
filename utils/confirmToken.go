package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
)

// Purposes carried inside confirmation tokens. A token minted for one flow
// is rejected by the other, so a booking-confirmation link can never be
// replayed against the cancellation endpoint.
const (
	PurposeBookingConfirm = "booking_confirm"
	PurposeBookingCancel  = "booking_cancel"
)

// ConfirmTokenExpiry is how long an emailed confirmation link stays valid.
const ConfirmTokenExpiry = 24 * time.Hour

// ErrConfirmTokenInvalid covers bad signature, expiry and purpose mismatch
// alike; callers surface all three as one generic message.
var ErrConfirmTokenInvalid = errors.New("invalid or expired confirmation token")

type confirmClaims struct {
	BookingID string    `json:"bookingId"`
	Purpose   string    `json:"purpose"`
	Expiry    time.Time `json:"expiry"`
}

// ConfirmTokenCodec signs and verifies the short-lived tokens embedded in
// booking confirmation and cancellation emails.
type ConfirmTokenCodec struct {
	key []byte
}

func NewConfirmTokenCodec(key []byte) *ConfirmTokenCodec {
	return &ConfirmTokenCodec{key: key}
}

// Issue mints a token carrying the booking ID and flow purpose, valid for ttl.
func (c *ConfirmTokenCodec) Issue(bookingID, purpose string, ttl time.Duration) (string, error) {
	claims := confirmClaims{
		BookingID: bookingID,
		Purpose:   purpose,
		Expiry:    time.Now().Add(ttl),
	}
	token, err := paseto.NewV2().Encrypt(c.key, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to issue confirmation token: %w", err)
	}
	return token, nil
}

// Verify decrypts the token and returns the embedded booking ID. It fails
// with ErrConfirmTokenInvalid on decryption failure, expiry, or when the
// token was minted for a different purpose.
func (c *ConfirmTokenCodec) Verify(token, purpose string) (string, error) {
	var claims confirmClaims
	if err := paseto.NewV2().Decrypt(token, c.key, &claims, nil); err != nil {
		return "", ErrConfirmTokenInvalid
	}
	if time.Now().After(claims.Expiry) {
		return "", ErrConfirmTokenInvalid
	}
	if claims.Purpose != purpose {
		return "", ErrConfirmTokenInvalid
	}
	return claims.BookingID, nil
}
