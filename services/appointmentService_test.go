package services

import (
	"MediSched/models"
	"MediSched/utils"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppointmentStore struct {
	appointments map[uint]*models.MedicalAppointment
	invoiced     map[uint]bool
	nextID       uint
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{
		appointments: make(map[uint]*models.MedicalAppointment),
		invoiced:     make(map[uint]bool),
		nextID:       1,
	}
}

func (s *fakeAppointmentStore) add(a models.MedicalAppointment) *models.MedicalAppointment {
	a.ID = s.nextID
	s.nextID++
	s.appointments[a.ID] = &a
	return &a
}

func (s *fakeAppointmentStore) Create(_ context.Context, bookingID string, date time.Time) (*models.MedicalAppointment, error) {
	for _, a := range s.appointments {
		if a.BookingID == bookingID {
			return nil, models.ErrAlreadyExists
		}
	}
	return s.add(models.MedicalAppointment{
		BookingID: bookingID,
		Code:      "AP00001",
		Date:      date,
		Status:    models.AppointmentStatusWaiting,
	}), nil
}

func (s *fakeAppointmentStore) GetByID(_ context.Context, id uint) (*models.MedicalAppointment, error) {
	a, ok := s.appointments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return a, nil
}

func (s *fakeAppointmentStore) List(_ context.Context, offset, limit int, doctorUserID string) (int64, []models.MedicalAppointment, error) {
	var out []models.MedicalAppointment
	for _, a := range s.appointments {
		if doctorUserID != "" && a.Booking.TimeSlot.Doctor.UserID != doctorUserID {
			continue
		}
		out = append(out, *a)
	}
	return int64(len(out)), out, nil
}

func (s *fakeAppointmentStore) UpdateStatus(_ context.Context, id uint, status string) error {
	a, ok := s.appointments[id]
	if !ok {
		return models.ErrNotFound
	}
	a.Status = status
	return nil
}

func (s *fakeAppointmentStore) HasInvoice(_ context.Context, appointmentID uint) (bool, error) {
	return s.invoiced[appointmentID], nil
}

func (s *fakeAppointmentStore) Delete(_ context.Context, id uint) error {
	if _, ok := s.appointments[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.appointments, id)
	return nil
}

func appointmentWithChain(bookingID, doctorUserID, status string) models.MedicalAppointment {
	return models.MedicalAppointment{
		BookingID: bookingID,
		Code:      "AP00007",
		Status:    status,
		Booking: models.Booking{
			ID:        bookingID,
			Confirmed: true,
			TimeSlot: models.TimeSlot{
				ID:       "slot-1",
				DoctorID: "doc-1",
				Doctor:   models.Doctor{ID: "doc-1", UserID: doctorUserID},
			},
		},
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	store := newFakeAppointmentStore()
	svc := NewAppointmentService(store, newFakeBookingStore(), fixedClock{})

	_, err := svc.UpdateStatus(context.Background(), utils.Caller{Role: models.RoleAdmin}, 1, "Rescheduled")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdateStatusCancelledRunsCancellation(t *testing.T) {
	bookings := newFakeBookingStore(&models.TimeSlot{ID: "slot-1", DoctorID: "doc-1", IsAvailable: false})
	bookings.bookings["bk-1"] = &models.Booking{ID: "bk-1", TimeSlotID: "slot-1", Confirmed: true}

	store := newFakeAppointmentStore()
	a := store.add(appointmentWithChain("bk-1", "user-doc-1", models.AppointmentStatusWaiting))

	svc := NewAppointmentService(store, bookings, fixedClock{})
	caller := utils.Caller{ID: "user-doc-1", Role: models.RoleDoctor}

	updated, err := svc.UpdateStatus(context.Background(), caller, a.ID, models.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCancelled, updated.Status)

	// The cancellation path removed the booking and freed the slot.
	_, ok := bookings.bookings["bk-1"]
	assert.False(t, ok)
	assert.True(t, bookings.slots["slot-1"].IsAvailable)
}

func TestUpdateStatusAuthorization(t *testing.T) {
	store := newFakeAppointmentStore()
	a := store.add(appointmentWithChain("bk-1", "user-doc-1", models.AppointmentStatusWaiting))
	svc := NewAppointmentService(store, newFakeBookingStore(), fixedClock{})

	_, err := svc.UpdateStatus(context.Background(), utils.Caller{ID: "user-doc-2", Role: models.RoleDoctor}, a.ID, models.AppointmentStatusDone)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = svc.UpdateStatus(context.Background(), utils.Caller{ID: "user-doc-1", Role: models.RoleDoctor}, a.ID, models.AppointmentStatusDone)
	assert.NoError(t, err)
}

func TestDeleteAppointmentGuards(t *testing.T) {
	store := newFakeAppointmentStore()
	svc := NewAppointmentService(store, newFakeBookingStore(), fixedClock{})
	admin := utils.Caller{ID: "admin", Role: models.RoleAdmin}
	ctx := context.Background()

	// A filed record blocks deletion.
	recordID := uint(3)
	withRecord := appointmentWithChain("bk-1", "user-doc-1", models.AppointmentStatusCancelled)
	withRecord.MedicalRecordID = &recordID
	a := store.add(withRecord)
	assert.ErrorIs(t, svc.Delete(ctx, admin, a.ID), models.ErrHasRecord)

	// An invoice blocks deletion.
	b := store.add(appointmentWithChain("bk-2", "user-doc-1", models.AppointmentStatusCancelled))
	store.invoiced[b.ID] = true
	assert.ErrorIs(t, svc.Delete(ctx, admin, b.ID), models.ErrHasInvoice)

	// A live appointment blocks deletion.
	c := store.add(appointmentWithChain("bk-3", "user-doc-1", models.AppointmentStatusWaiting))
	assert.ErrorIs(t, svc.Delete(ctx, admin, c.ID), models.ErrNotCancelled)

	// Cancelled, no record, no invoice: gone.
	d := store.add(appointmentWithChain("bk-4", "user-doc-1", models.AppointmentStatusCancelled))
	assert.NoError(t, svc.Delete(ctx, admin, d.ID))
	_, err := store.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListScopesDoctorCallers(t *testing.T) {
	store := newFakeAppointmentStore()
	store.add(appointmentWithChain("bk-1", "user-doc-1", models.AppointmentStatusWaiting))
	store.add(appointmentWithChain("bk-2", "user-doc-2", models.AppointmentStatusWaiting))
	svc := NewAppointmentService(store, newFakeBookingStore(), fixedClock{})
	ctx := context.Background()

	total, _, err := svc.List(ctx, utils.Caller{ID: "user-doc-1", Role: models.RoleDoctor}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	total, _, err = svc.List(ctx, utils.Caller{ID: "admin", Role: models.RoleAdmin}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestGetByIDHidesOtherDoctorsAppointments(t *testing.T) {
	store := newFakeAppointmentStore()
	a := store.add(appointmentWithChain("bk-1", "user-doc-1", models.AppointmentStatusWaiting))
	svc := NewAppointmentService(store, newFakeBookingStore(), fixedClock{})
	ctx := context.Background()

	_, err := svc.GetByID(ctx, utils.Caller{ID: "user-doc-2", Role: models.RoleDoctor}, a.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	got, err := svc.GetByID(ctx, utils.Caller{ID: "user-doc-1", Role: models.RoleDoctor}, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "AP00007", got.Code)
}
