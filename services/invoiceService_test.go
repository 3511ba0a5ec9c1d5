package services

import (
	"MediSched/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceStore struct {
	invoices map[uint]*models.Invoice
	nextID   uint
}

func newFakeInvoiceStore() *fakeInvoiceStore {
	return &fakeInvoiceStore{invoices: make(map[uint]*models.Invoice), nextID: 1}
}

func (s *fakeInvoiceStore) Create(_ context.Context, invoice *models.Invoice) error {
	for _, existing := range s.invoices {
		if existing.AppointmentID == invoice.AppointmentID {
			return models.ErrAlreadyExists
		}
	}
	invoice.ID = s.nextID
	s.nextID++
	clone := *invoice
	s.invoices[invoice.ID] = &clone
	return nil
}

func (s *fakeInvoiceStore) GetByID(_ context.Context, id uint) (*models.Invoice, error) {
	invoice, ok := s.invoices[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return invoice, nil
}

func (s *fakeInvoiceStore) Update(_ context.Context, id uint, total float64, status, note string) error {
	invoice, ok := s.invoices[id]
	if !ok {
		return models.ErrNotFound
	}
	invoice.Total = total
	invoice.Status = status
	invoice.Note = note
	return nil
}

func (s *fakeInvoiceStore) Delete(_ context.Context, id uint) error {
	if _, ok := s.invoices[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.invoices, id)
	return nil
}

type capturedNotification struct {
	title, content, userID string
}

type fakeNotificationSink struct {
	raised []capturedNotification
}

func (s *fakeNotificationSink) Notify(_ context.Context, title, content, userID string) error {
	s.raised = append(s.raised, capturedNotification{title: title, content: content, userID: userID})
	return nil
}

func billableAppointment(store *fakeAppointmentStore, price float64) *models.MedicalAppointment {
	a := appointmentWithChain("bk-1", "user-doc-1", models.AppointmentStatusDone)
	a.Booking.Service = models.Service{ID: "svc-1", Name: "Consultation", Price: price}
	a.Booking.Patient = models.User{ID: "patient-1", FullName: "Ann Walker"}
	return store.add(a)
}

func TestInvoiceTotalDefaultsToServicePrice(t *testing.T) {
	appointments := newFakeAppointmentStore()
	a := billableAppointment(appointments, 200000)
	invoices := newFakeInvoiceStore()
	sink := &fakeNotificationSink{}
	svc := NewInvoiceService(invoices, appointments, sink)

	invoice, err := svc.Create(context.Background(), a.ID, nil, "Unpaid", "")
	require.NoError(t, err)
	assert.Equal(t, float64(200000), invoice.Total)

	// The treating doctor got an in-app notification.
	require.Len(t, sink.raised, 1)
	assert.Equal(t, "user-doc-1", sink.raised[0].userID)
	assert.Contains(t, sink.raised[0].title, "AP00007")
}

func TestInvoiceTotalOverride(t *testing.T) {
	appointments := newFakeAppointmentStore()
	a := billableAppointment(appointments, 200000)
	svc := NewInvoiceService(newFakeInvoiceStore(), appointments, &fakeNotificationSink{})

	total := 500000.0
	invoice, err := svc.Create(context.Background(), a.ID, &total, "Paid", "cash")
	require.NoError(t, err)
	assert.Equal(t, 500000.0, invoice.Total)
	assert.Equal(t, "Paid", invoice.Status)
}

func TestInvoiceRejectsCancelledAppointment(t *testing.T) {
	appointments := newFakeAppointmentStore()
	a := billableAppointment(appointments, 200000)
	a.Status = models.AppointmentStatusCancelled
	svc := NewInvoiceService(newFakeInvoiceStore(), appointments, &fakeNotificationSink{})

	_, err := svc.Create(context.Background(), a.ID, nil, "Unpaid", "")
	assert.ErrorIs(t, err, models.ErrBookingCancelled)
}

func TestInvoiceRejectsOrphanedAppointment(t *testing.T) {
	appointments := newFakeAppointmentStore()
	orphan := appointments.add(models.MedicalAppointment{
		BookingID: "bk-gone",
		Code:      "AP00002",
		Status:    models.AppointmentStatusCancelled,
	})
	svc := NewInvoiceService(newFakeInvoiceStore(), appointments, &fakeNotificationSink{})

	_, err := svc.Create(context.Background(), orphan.ID, nil, "Unpaid", "")
	assert.ErrorIs(t, err, models.ErrBookingCancelled)
}

func TestInvoiceIsUniquePerAppointment(t *testing.T) {
	appointments := newFakeAppointmentStore()
	a := billableAppointment(appointments, 200000)
	svc := NewInvoiceService(newFakeInvoiceStore(), appointments, &fakeNotificationSink{})

	_, err := svc.Create(context.Background(), a.ID, nil, "Unpaid", "")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), a.ID, nil, "Unpaid", "")
	assert.ErrorIs(t, err, models.ErrAlreadyExists)
}

func TestInvoiceUpdateOverwrites(t *testing.T) {
	appointments := newFakeAppointmentStore()
	a := billableAppointment(appointments, 200000)
	invoices := newFakeInvoiceStore()
	svc := NewInvoiceService(invoices, appointments, &fakeNotificationSink{})

	invoice, err := svc.Create(context.Background(), a.ID, nil, "Unpaid", "")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), invoice.ID, 250000, "Paid", "mpesa")
	require.NoError(t, err)
	assert.Equal(t, 250000.0, updated.Total)
	assert.Equal(t, "Paid", updated.Status)
	assert.Equal(t, "mpesa", updated.Note)
}
