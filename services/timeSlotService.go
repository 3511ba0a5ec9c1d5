package services

import (
	"MediSched/models"
	"MediSched/utils"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time; injected so day-boundary checks and the
// default-schedule generator are deterministic under test.
type Clock interface {
	Now() time.Time
}

// TimeSlotStore is the persistence surface the slot registry needs.
type TimeSlotStore interface {
	Create(ctx context.Context, slot *models.TimeSlot) error
	CreateBatch(ctx context.Context, slots []models.TimeSlot) error
	GetByID(ctx context.Context, id string) (*models.TimeSlot, error)
	CountOverlapping(ctx context.Context, doctorID string, start, end time.Time) (int64, error)
	CountForDoctorBetween(ctx context.Context, doctorID string, from, to time.Time) (int64, error)
	ListByDoctorBetween(ctx context.Context, doctorID string, from, to time.Time) ([]models.TimeSlot, error)
	ListScheduleDays(ctx context.Context, doctorID string) ([]models.ScheduleDay, error)
	CountBookings(ctx context.Context, slotID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// DoctorDirectory resolves doctors and their owning user accounts.
type DoctorDirectory interface {
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	GetAll(ctx context.Context) ([]models.Doctor, error)
}

// Default day schedule policy: 30-minute consultations on a 40-minute
// cadence from 08:00, skipping the [12:00, 13:30) lunch break, 14 slots.
const (
	defaultSlotCount  = 14
	defaultSlotLength = 30 * time.Minute
	defaultSlotGap    = 10 * time.Minute
)

type TimeSlotService struct {
	slots   TimeSlotStore
	doctors DoctorDirectory
	clock   Clock
}

func NewTimeSlotService(slots TimeSlotStore, doctors DoctorDirectory, clock Clock) *TimeSlotService {
	return &TimeSlotService{slots: slots, doctors: doctors, clock: clock}
}

// Create adds a single slot for a doctor. Only the owning doctor or an
// admin may create; the interval must sit within one calendar day and must
// not intersect any existing slot of that doctor.
func (s *TimeSlotService) Create(ctx context.Context, caller utils.Caller, doctorID string, start, end time.Time, available bool) (*models.TimeSlot, error) {
	if err := utils.ValidateSlotInput(doctorID, start, end); err != nil {
		return nil, err
	}

	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !utils.CanAct(caller, doctor.UserID) {
		return nil, models.ErrUnauthorized
	}

	if !validSlotRange(start, end) {
		return nil, models.ErrInvalidRange
	}

	overlapping, err := s.slots.CountOverlapping(ctx, doctorID, start, end)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, models.ErrOverlap
	}

	slot := &models.TimeSlot{
		ID:          uuid.New().String(),
		DoctorID:    doctorID,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: available,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// CreateDefaultDaySchedule generates today's standard consultation windows
// for a doctor who has no slots yet today.
func (s *TimeSlotService) CreateDefaultDaySchedule(ctx context.Context, caller utils.Caller, doctorID string) ([]models.TimeSlot, error) {
	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !utils.CanAct(caller, doctor.UserID) {
		return nil, models.ErrUnauthorized
	}

	now := s.clock.Now()
	dayStart := startOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	existing, err := s.slots.CountForDoctorBetween(ctx, doctorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, models.ErrAlreadyScheduled
	}

	windows := defaultDayWindows(now)
	slots := make([]models.TimeSlot, 0, len(windows))
	for _, w := range windows {
		slots = append(slots, models.TimeSlot{
			ID:          uuid.New().String(),
			DoctorID:    doctorID,
			StartTime:   w[0],
			EndTime:     w[1],
			IsAvailable: true,
		})
	}
	if err := s.slots.CreateBatch(ctx, slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// ListByDoctorAndDay returns a doctor's slots for one calendar day, sorted
// by start time ascending.
func (s *TimeSlotService) ListByDoctorAndDay(ctx context.Context, doctorID string, day time.Time) ([]models.TimeSlot, error) {
	from := startOfDay(day)
	return s.slots.ListByDoctorBetween(ctx, doctorID, from, from.AddDate(0, 0, 1))
}

// ListScheduledDays groups a doctor's slots by date and attaches the
// weekday display title.
func (s *TimeSlotService) ListScheduledDays(ctx context.Context, doctorID string) ([]models.ScheduleDaySummary, error) {
	days, err := s.slots.ListScheduleDays(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.ScheduleDaySummary, 0, len(days))
	for _, d := range days {
		summaries = append(summaries, models.ScheduleDaySummary{
			Date:         d.Date.Format("2006-01-02"),
			Count:        d.Count,
			DisplayTitle: formatScheduleTitle(d.Date),
		})
	}
	return summaries, nil
}

// Delete removes a slot. It refuses while any booking references the slot:
// removing it would orphan booking rows, and the storage engine does not
// enforce that for us.
func (s *TimeSlotService) Delete(ctx context.Context, caller utils.Caller, slotID string) error {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return err
	}
	doctor, err := s.doctors.GetByID(ctx, slot.DoctorID)
	if err != nil {
		return err
	}
	if !utils.CanAct(caller, doctor.UserID) {
		return models.ErrUnauthorized
	}

	bookings, err := s.slots.CountBookings(ctx, slotID)
	if err != nil {
		return err
	}
	if bookings > 0 {
		return models.ErrHasBookings
	}
	return s.slots.Delete(ctx, slotID)
}

// validSlotRange requires start < end with both ends on the same calendar day.
func validSlotRange(start, end time.Time) bool {
	if !start.Before(end) {
		return false
	}
	sy, sm, sd := start.Date()
	ey, em, ed := end.In(start.Location()).Date()
	return sy == ey && sm == em && sd == ed
}

// defaultDayWindows lays out the standard consultation windows for a day.
// The cursor advances 40 minutes per slot; a window that would intersect
// the lunch break re-anchors the cursor to 13:30 instead.
func defaultDayWindows(day time.Time) [][2]time.Time {
	base := startOfDay(day)
	cursor := base.Add(8 * time.Hour)
	lunchStart := base.Add(12 * time.Hour)
	lunchEnd := base.Add(13*time.Hour + 30*time.Minute)

	windows := make([][2]time.Time, 0, defaultSlotCount)
	for len(windows) < defaultSlotCount {
		end := cursor.Add(defaultSlotLength)
		if cursor.Before(lunchEnd) && end.After(lunchStart) {
			cursor = lunchEnd
			continue
		}
		windows = append(windows, [2]time.Time{cursor, end})
		cursor = cursor.Add(defaultSlotLength + defaultSlotGap)
	}
	return windows
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

var weekdayAbbrev = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// formatScheduleTitle renders a date as a weekday abbreviation plus DD-MM.
func formatScheduleTitle(t time.Time) string {
	return fmt.Sprintf("%s %02d-%02d", weekdayAbbrev[t.Weekday()], t.Day(), int(t.Month()))
}
