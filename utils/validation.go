package utils

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ValidateBookingInput checks the identifiers of a booking request.
func ValidateBookingInput(patientID, timeSlotID, serviceID string) error {
	return validation.Errors{
		"patientId":  validation.Validate(patientID, validation.Required, is.UUIDv4),
		"timeSlotId": validation.Validate(timeSlotID, validation.Required, is.UUIDv4),
		"serviceId":  validation.Validate(serviceID, validation.Required),
	}.Filter()
}

// ValidateSlotInput checks a slot-creation request before the range and
// overlap rules are applied.
func ValidateSlotInput(doctorID string, start, end time.Time) error {
	return validation.Errors{
		"doctorId":  validation.Validate(doctorID, validation.Required),
		"startTime": validation.Validate(start, validation.Required),
		"endTime":   validation.Validate(end, validation.Required),
	}.Filter()
}

// ValidateRecordInput checks a medical-record filing request.
func ValidateRecordInput(diagnosis string) error {
	return validation.Errors{
		"diagnosis": validation.Validate(diagnosis, validation.Required, validation.Length(1, 5000)),
	}.Filter()
}

// ValidateCredentials checks a login request.
func ValidateCredentials(email, password string) error {
	return validation.Errors{
		"email":    validation.Validate(email, validation.Required, is.Email),
		"password": validation.Validate(password, validation.Required, validation.Length(8, 128)),
	}.Filter()
}

// ValidateServiceInput checks a service-catalog creation request.
func ValidateServiceInput(name string, price float64) error {
	return validation.Errors{
		"name":  validation.Validate(name, validation.Required, validation.Length(2, 150)),
		"price": validation.Validate(price, validation.Min(0.0)),
	}.Filter()
}
