package models

import "errors"

// Domain errors raised by the service and repository layers. Handlers map
// these onto HTTP statuses; everything else surfaces as an internal error.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("caller is not allowed to act on this resource")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidRange     = errors.New("start time must precede end time within a single day")
	ErrOverlap          = errors.New("time slot overlaps an existing slot for this doctor")
	ErrAlreadyScheduled = errors.New("doctor already has time slots for today")
	ErrSlotTaken        = errors.New("time slot is no longer available")
	ErrAlreadyConfirmed = errors.New("booking is already confirmed")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrInvalidToken     = errors.New("invalid or expired confirmation token")
	ErrBookingCancelled = errors.New("booking for this appointment was cancelled")
	ErrHasRecord        = errors.New("appointment has a medical record")
	ErrHasInvoice       = errors.New("appointment has an invoice")
	ErrNotCancelled     = errors.New("appointment is not cancelled")
	ErrHasBookings      = errors.New("time slot is referenced by bookings")
	ErrDeliveryFailure  = errors.New("confirmation email could not be delivered")
)
