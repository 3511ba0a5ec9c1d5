package services

import (
	"MediSched/models"
	"MediSched/utils"
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingStore mirrors the transactional semantics of the real store:
// confirm purges competitors and occupies the slot in one step, cancel
// deletes the booking and frees the slot.
type fakeBookingStore struct {
	bookings     map[string]*models.Booking
	slots        map[string]*models.TimeSlot
	appointments map[string]*models.MedicalAppointment
	nextCode     int
}

func newFakeBookingStore(slots ...*models.TimeSlot) *fakeBookingStore {
	s := &fakeBookingStore{
		bookings:     make(map[string]*models.Booking),
		slots:        make(map[string]*models.TimeSlot),
		appointments: make(map[string]*models.MedicalAppointment),
		nextCode:     1,
	}
	for _, slot := range slots {
		s.slots[slot.ID] = slot
	}
	return s
}

func (s *fakeBookingStore) CreateAndNotify(_ context.Context, booking *models.Booking, notify func(*models.Booking) error) error {
	if err := notify(booking); err != nil {
		return err
	}
	clone := *booking
	s.bookings[booking.ID] = &clone
	return nil
}

func (s *fakeBookingStore) Confirm(_ context.Context, bookingID string, date time.Time) (*models.Booking, *models.MedicalAppointment, error) {
	booking, ok := s.bookings[bookingID]
	if !ok {
		return nil, nil, models.ErrNotFound
	}
	if booking.Confirmed {
		return nil, nil, models.ErrAlreadyConfirmed
	}

	for id, other := range s.bookings {
		if id != bookingID && other.TimeSlotID == booking.TimeSlotID && !other.Confirmed {
			delete(s.bookings, id)
		}
	}
	if slot, ok := s.slots[booking.TimeSlotID]; ok {
		slot.IsAvailable = false
	}
	booking.Confirmed = true

	appointment := &models.MedicalAppointment{
		ID:        uint(s.nextCode),
		BookingID: booking.ID,
		Code:      fmt.Sprintf("AP%05d", s.nextCode),
		Date:      date,
		Status:    models.AppointmentStatusWaiting,
	}
	s.nextCode++
	s.appointments[booking.ID] = appointment
	return booking, appointment, nil
}

func (s *fakeBookingStore) CancelConfirmed(_ context.Context, bookingID string) error {
	booking, ok := s.bookings[bookingID]
	if !ok {
		return models.ErrNotFound
	}
	if appointment, ok := s.appointments[bookingID]; ok {
		appointment.Status = models.AppointmentStatusCancelled
	}
	if slot, ok := s.slots[booking.TimeSlotID]; ok {
		slot.IsAvailable = true
	}
	delete(s.bookings, bookingID)
	return nil
}

func (s *fakeBookingStore) GetOwned(_ context.Context, id, patientID string) (*models.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok || booking.PatientID != patientID {
		return nil, models.ErrNotFound
	}
	return booking, nil
}

func (s *fakeBookingStore) GetConfirmedByID(_ context.Context, id string) (*models.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok || !booking.Confirmed {
		return nil, models.ErrNotFound
	}
	return booking, nil
}

func (s *fakeBookingStore) ListConfirmed(_ context.Context, offset, limit int, _ string, patientID string) (int64, []models.Booking, error) {
	var all []models.Booking
	for _, booking := range s.bookings {
		if !booking.Confirmed {
			continue
		}
		if patientID != "" && booking.PatientID != patientID {
			continue
		}
		all = append(all, *booking)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return total, nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return total, all[offset:end], nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

type fakeSlotReader struct {
	store *fakeBookingStore
}

func (r fakeSlotReader) GetByID(_ context.Context, id string) (*models.TimeSlot, error) {
	slot, ok := r.store.slots[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return slot, nil
}

type fakeServiceReader struct{}

func (fakeServiceReader) GetByID(_ context.Context, id string) (*models.Service, error) {
	return &models.Service{ID: id, Name: "Checkup", Price: 200000}, nil
}

// fakeTokens is a transparent codec so tests can forge tokens directly.
type fakeTokens struct{}

func (fakeTokens) Issue(bookingID, purpose string, _ time.Duration) (string, error) {
	return purpose + ":" + bookingID, nil
}

func (fakeTokens) Verify(token, purpose string) (string, error) {
	prefix := purpose + ":"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", utils.ErrConfirmTokenInvalid
	}
	return token[len(prefix):], nil
}

type fakeMailer struct {
	sent    []string
	failing bool
}

func (m *fakeMailer) SendBookingConfirmation(to, _, token string) error {
	if m.failing {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, token)
	return nil
}

func (m *fakeMailer) SendCancellationConfirmation(to, _, token string) error {
	if m.failing {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, token)
	return nil
}

const (
	patientUUID  = "7f9c24e5-2f2a-4c3b-9a1d-8e5b6c7d8e9f"
	patient2UUID = "2b7e1510-9d4c-4f6a-8b3c-1d2e3f4a5b6c"
	slotUUID     = "c1a2b3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"
	serviceUUID  = "9e8d7c6b-5a4f-4e3d-8c2b-1a0f9e8d7c6b"
)

func newBookingFixture(t *testing.T) (*BookingService, *fakeBookingStore, *fakeMailer) {
	t.Helper()

	start := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeBookingStore(&models.TimeSlot{
		ID:          slotUUID,
		DoctorID:    "doc-1",
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		IsAvailable: true,
	})
	users := &fakeUserStore{users: map[string]*models.User{
		patientUUID:  {ID: patientUUID, FullName: "Ann Walker", Email: "ann@example.com"},
		patient2UUID: {ID: patient2UUID, FullName: "Ben Ochieng", Email: "ben@example.com"},
	}}
	mailer := &fakeMailer{}
	svc := NewBookingService(store, users, fakeSlotReader{store: store}, fakeServiceReader{},
		fakeTokens{}, mailer, fixedClock{now: start})
	return svc, store, mailer
}

func TestConfirmPurgesCompetingBookings(t *testing.T) {
	svc, store, mailer := newBookingFixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, patientUUID, slotUUID, serviceUUID)
	require.NoError(t, err)
	second, err := svc.Create(ctx, patient2UUID, slotUUID, serviceUUID)
	require.NoError(t, err)
	require.Len(t, mailer.sent, 2)

	booking, appointment, err := svc.Confirm(ctx, mailer.sent[0])
	require.NoError(t, err)

	assert.Equal(t, first.ID, booking.ID)
	assert.True(t, booking.Confirmed)
	assert.Equal(t, "AP00001", appointment.Code)
	assert.Equal(t, models.AppointmentStatusWaiting, appointment.Status)

	// The loser is gone and the slot is occupied.
	_, ok := store.bookings[second.ID]
	assert.False(t, ok)
	assert.False(t, store.slots[slotUUID].IsAvailable)

	// The loser's token is now dead.
	_, _, err = svc.Confirm(ctx, mailer.sent[1])
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestConfirmIsNotRepeatable(t *testing.T) {
	svc, _, mailer := newBookingFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, patientUUID, slotUUID, serviceUUID)
	require.NoError(t, err)

	_, _, err = svc.Confirm(ctx, mailer.sent[0])
	require.NoError(t, err)

	_, _, err = svc.Confirm(ctx, mailer.sent[0])
	assert.ErrorIs(t, err, models.ErrAlreadyConfirmed)
}

func TestCreateRejectsOccupiedSlot(t *testing.T) {
	svc, store, mailer := newBookingFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, patientUUID, slotUUID, serviceUUID)
	require.NoError(t, err)
	_, _, err = svc.Confirm(ctx, mailer.sent[0])
	require.NoError(t, err)
	require.False(t, store.slots[slotUUID].IsAvailable)

	_, err = svc.Create(ctx, patient2UUID, slotUUID, serviceUUID)
	assert.ErrorIs(t, err, models.ErrSlotTaken)
}

func TestDeliveryFailureRollsBackBooking(t *testing.T) {
	svc, store, mailer := newBookingFixture(t)
	mailer.failing = true

	_, err := svc.Create(context.Background(), patientUUID, slotUUID, serviceUUID)
	assert.ErrorIs(t, err, models.ErrDeliveryFailure)
	assert.Empty(t, store.bookings)
}

func TestCancellationLifecycle(t *testing.T) {
	svc, store, mailer := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.Create(ctx, patientUUID, slotUUID, serviceUUID)
	require.NoError(t, err)
	_, _, err = svc.Confirm(ctx, mailer.sent[0])
	require.NoError(t, err)

	// Only the owner may request cancellation.
	err = svc.RequestCancellation(ctx, booking.ID, patient2UUID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, svc.RequestCancellation(ctx, booking.ID, patientUUID))
	cancelToken := mailer.sent[len(mailer.sent)-1]

	// A confirm token cannot drive the cancellation path.
	assert.ErrorIs(t, svc.ConfirmCancellation(ctx, mailer.sent[0]), models.ErrInvalidToken)

	require.NoError(t, svc.ConfirmCancellation(ctx, cancelToken))

	// Booking deleted, slot reclaimed, appointment kept as Cancelled.
	_, ok := store.bookings[booking.ID]
	assert.False(t, ok)
	assert.True(t, store.slots[slotUUID].IsAvailable)
	assert.Equal(t, models.AppointmentStatusCancelled, store.appointments[booking.ID].Status)

	// Replaying the cancellation token is a no-op failure.
	assert.ErrorIs(t, svc.ConfirmCancellation(ctx, cancelToken), models.ErrNotFound)
}

func TestCreateValidatesInput(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	_, err := svc.Create(context.Background(), "not-a-uuid", slotUUID, serviceUUID)
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), patientUUID, "", serviceUUID)
	assert.Error(t, err)
}

func TestListConfirmedScopesUserCallers(t *testing.T) {
	svc, _, mailer := newBookingFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, patientUUID, slotUUID, serviceUUID)
	require.NoError(t, err)
	_, _, err = svc.Confirm(ctx, mailer.sent[0])
	require.NoError(t, err)

	// The owning patient sees their booking.
	page, err := svc.ListConfirmed(ctx, utils.Caller{ID: patientUUID, Role: models.RoleUser}, 1, 10, "", "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	// Another patient sees nothing.
	page, err = svc.ListConfirmed(ctx, utils.Caller{ID: patient2UUID, Role: models.RoleUser}, 1, 10, "", "")
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)

	// Staff see everything.
	page, err = svc.ListConfirmed(ctx, utils.Caller{ID: "admin", Role: models.RoleAdmin}, 1, 10, "", "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
}

func TestOrderClauseWhitelist(t *testing.T) {
	assert.Equal(t, "created_at DESC", orderClause("", ""))
	assert.Equal(t, "created_at ASC", orderClause("createdAt", "asc"))
	assert.Equal(t, "id DESC", orderClause("id", "desc"))
	assert.Equal(t, "created_at DESC", orderClause("password; DROP TABLE", "evil"))
}
