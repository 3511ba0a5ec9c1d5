package models

import (
	"time"
)

// MedicalAppointment status values.
const (
	AppointmentStatusWaiting   = "Waiting"
	AppointmentStatusDone      = "Done"
	AppointmentStatusInvoiced  = "Invoiced"
	AppointmentStatusCancelled = "Cancelled"
)

// ValidAppointmentStatus reports whether s is one of the four appointment states.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentStatusWaiting, AppointmentStatusDone, AppointmentStatusInvoiced, AppointmentStatusCancelled:
		return true
	}
	return false
}

// TimeSlot is a doctor's bookable time interval. Start and end always fall
// on the same calendar day, and no two slots of one doctor overlap.
type TimeSlot struct {
	ID          string    `gorm:"primaryKey;column:id" json:"id"`
	DoctorID    string    `gorm:"column:doctor_id;not null;index:idx_doctor_start" json:"doctor_id"`
	StartTime   time.Time `gorm:"column:start_time;not null;index:idx_doctor_start" json:"start_time"`
	EndTime     time.Time `gorm:"column:end_time;not null" json:"end_time"`
	IsAvailable bool      `gorm:"column:is_available;not null;default:true" json:"is_available"`
	Doctor      Doctor    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TimeSlot) TableName() string {
	return "time_slot"
}

// Booking is a patient's reservation of a time slot. It stays pending
// (confirmed=false) until the patient follows the emailed confirmation
// link; at most one confirmed booking may reference a given slot.
type Booking struct {
	ID         string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID  string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	TimeSlotID string    `gorm:"column:time_slot_id;not null;index" json:"time_slot_id"`
	ServiceID  string    `gorm:"column:service_id;not null" json:"service_id"`
	Confirmed  bool      `gorm:"column:confirmed;not null;default:false" json:"confirmed"`
	Patient    User      `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	TimeSlot   TimeSlot  `gorm:"foreignKey:TimeSlotID;references:ID" json:"time_slot"`
	Service    Service   `gorm:"foreignKey:ServiceID;references:ID" json:"service"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Booking) TableName() string {
	return "booking"
}

// MedicalAppointment is the clinical visit spawned the moment a booking is
// confirmed. Code carries the human-readable AP##### sequence.
type MedicalAppointment struct {
	ID              uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BookingID       string    `gorm:"column:booking_id;not null;uniqueIndex" json:"booking_id"`
	Code            string    `gorm:"column:code;size:20;not null;uniqueIndex" json:"code"`
	Date            time.Time `gorm:"column:date;not null" json:"date"`
	Status          string    `gorm:"column:status;check:status IN ('Waiting', 'Done', 'Invoiced', 'Cancelled');not null" json:"status"`
	MedicalRecordID *uint     `gorm:"column:medical_record_id" json:"medical_record_id"`
	Booking         Booking   `gorm:"foreignKey:BookingID;references:ID" json:"booking"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (MedicalAppointment) TableName() string {
	return "medical_appointment"
}

// MedicalRecord is the clinical outcome a doctor files against an appointment.
type MedicalRecord struct {
	ID           uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID     string    `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	Diagnosis    string    `gorm:"type:text;not null;column:diagnosis" json:"diagnosis"`
	Prescription string    `gorm:"type:text;column:prescription" json:"prescription"`
	Notes        string    `gorm:"type:text;column:notes" json:"notes"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (MedicalRecord) TableName() string {
	return "medical_record"
}

// Invoice bills a completed appointment. Total defaults to the booked
// service's price when the caller supplies none.
type Invoice struct {
	ID            uint               `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	AppointmentID uint               `gorm:"column:appointment_id;not null;uniqueIndex" json:"appointment_id"`
	Total         float64            `gorm:"column:total;not null" json:"total"`
	Status        string             `gorm:"size:50;column:status" json:"status"`
	Note          string             `gorm:"type:text;column:note" json:"note"`
	Appointment   MedicalAppointment `gorm:"foreignKey:AppointmentID;references:ID" json:"appointment"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Invoice) TableName() string {
	return "invoice"
}
