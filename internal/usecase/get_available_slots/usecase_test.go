package get_available_slots

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/service/scheduling"
	"github.com/m04kA/salon-booking-service/internal/testutil/memstore"
	"github.com/m04kA/salon-booking-service/pkg/logger"
	"github.com/m04kA/salon-booking-service/pkg/ptr"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

const testDate = "2026-05-15" // пятница

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeMetrics struct{ observed []int }

func (m *fakeMetrics) ObserveSlots(count int) { m.observed = append(m.observed, count) }

type fixture struct {
	store   *memstore.Store
	metrics *fakeMetrics
	loc     *time.Location
	now     time.Time
}

func newFixture(t *testing.T, tz string, cfg domain.SchedulingConfig, durationMinutes int) *fixture {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	require.NoError(t, err)

	s := memstore.New()
	s.AddOption(domain.Service{ID: "svc-1", Name: "Lashes", Active: true},
		domain.ServiceOption{ID: "opt-1", Type: domain.OptionApplication, DurationMinutes: durationMinutes, Active: true})
	cfg.Timezone = tz
	s.SetConfig(cfg)
	s.AddStaff(domain.Staff{ID: "staff-1", Name: "Ana", Active: true})

	return &fixture{
		store:   s,
		metrics: &fakeMetrics{},
		loc:     loc,
		now:     time.Date(2026, 5, 14, 0, 0, 0, 0, loc),
	}
}

func (f *fixture) hours(weekday int, start, end string) {
	f.store.AddWorkingHours(domain.WorkingHours{
		StaffID: "staff-1", Weekday: weekday,
		StartTime: types.TimeString(start), EndTime: types.TimeString(end), Active: true,
	})
}

func (f *fixture) at(hhmm string) time.Time {
	d, _ := types.ParseDate(testDate)
	t, _ := types.TimeString(hhmm).On(d, f.loc)
	return t
}

func (f *fixture) useCase() *UseCase {
	s := f.store
	resolver := scheduling.NewResolver(s.Catalog(), s.Settings(), s.Staff(), logger.Nop())
	return NewUseCase(resolver, s.WorkingHours(), s.Appointments(), s.Blocks(), f.metrics, fixedClock{f.now}, logger.Nop())
}

func request() *Request {
	d, _ := types.ParseDate(testDate)
	return &Request{ServiceOptionID: "opt-1", Date: d}
}

func TestExecute_WindowWithBuffer(t *testing.T) {
	f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 30, BufferMinutes: 15}, 60)
	f.hours(5, "09:00", "12:00")

	resp, err := f.useCase().Execute(context.Background(), request())
	require.NoError(t, err)

	// 11:00 не помещается: 11:00 + 60 + 15 = 12:15 > 12:00
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, resp.Slots)
	assert.Equal(t, "staff-1", resp.StaffID)
	assert.Equal(t, []int{4}, f.metrics.observed)
}

func TestExecute_ExistingAppointment(t *testing.T) {
	f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 30}, 60)
	f.hours(5, "09:00", "12:00")
	f.store.AddAppointment(domain.Appointment{
		StaffID: "staff-1", StartAt: f.at("09:30"), EndAt: f.at("10:30"), Status: domain.StatusConfirmed,
	})

	resp, err := f.useCase().Execute(context.Background(), request())
	require.NoError(t, err)

	assert.NotContains(t, resp.Slots, "09:30")
	assert.NotContains(t, resp.Slots, "10:00")
	assert.Equal(t, []string{"10:30", "11:00"}, resp.Slots)
}

func TestExecute_InactiveAppointmentsDoNotBlock(t *testing.T) {
	f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 30}, 60)
	f.hours(5, "09:00", "11:00")
	for _, st := range []domain.AppointmentStatus{domain.StatusCancelled, domain.StatusDone, domain.StatusNoShow} {
		f.store.AddAppointment(domain.Appointment{StaffID: "staff-1", StartAt: f.at("09:00"), EndAt: f.at("10:00"), Status: st})
	}

	resp, err := f.useCase().Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, resp.Slots)
}

func TestExecute_PendingPaymentBlocks(t *testing.T) {
	f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 60}, 60)
	f.hours(5, "09:00", "11:00")
	f.store.AddAppointment(domain.Appointment{StaffID: "staff-1", StartAt: f.at("09:00"), EndAt: f.at("10:00"), Status: domain.StatusPendingPayment})

	resp, err := f.useCase().Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, resp.Slots)
}

func TestExecute_Blocks(t *testing.T) {
	f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 30, BufferMinutes: 15}, 60)
	f.hours(5, "09:00", "12:00")
	f.store.AddBlock(domain.Block{StaffID: "staff-1", StartAt: f.at("11:00"), EndAt: f.at("12:00")})
	f.store.AddBlock(domain.Block{StaffID: "staff-other", StartAt: f.at("09:00"), EndAt: f.at("12:00")})

	resp, err := f.useCase().Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, resp.Slots)
}

func TestExecute_MinAdvance(t *testing.T) {
	f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 30, MinAdvanceMinutes: 120}, 60)
	f.hours(5, "09:00", "18:00")
	f.now = f.at("08:00")

	resp, err := f.useCase().Execute(context.Background(), request())
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "10:00", resp.Slots[0])
	for _, slot := range resp.Slots {
		assert.False(t, types.TimeString(slot).IsBefore("10:00"), slot)
	}
}

func TestExecute_PastDayIsEmpty(t *testing.T) {
	f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 30}, 60)
	f.hours(5, "09:00", "18:00")
	f.now = f.at("23:00")

	resp, err := f.useCase().Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ClosedDay(t *testing.T) {
	f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 30}, 60)
	f.hours(1, "09:00", "18:00")

	resp, err := f.useCase().Execute(context.Background(), request())
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DurationNeverFits(t *testing.T) {
	f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 30, BufferMinutes: 30}, 180)
	f.hours(5, "09:00", "12:00")

	resp, err := f.useCase().Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_RaggedGrid(t *testing.T) {
	f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 45}, 30)
	f.hours(5, "09:00", "11:00")

	resp, err := f.useCase().Execute(context.Background(), request())
	require.NoError(t, err)
	// 10:30 + 30 = 11:00 помещается ровно
	assert.Equal(t, []string{"09:00", "09:45", "10:30"}, resp.Slots)
}

func TestExecute_SalonTimezone(t *testing.T) {
	f := newFixture(t, "America/Belem", domain.SchedulingConfig{SlotMinutes: 30}, 60)
	f.hours(5, "09:00", "12:00")
	// 12:30 UTC = 09:30 в Белене (UTC-3)
	start := time.Date(2026, 5, 15, 12, 30, 0, 0, time.UTC)
	f.store.AddAppointment(domain.Appointment{
		StaffID: "staff-1", StartAt: start, EndAt: start.Add(time.Hour), Status: domain.StatusConfirmed,
	})

	resp, err := f.useCase().Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00"}, resp.Slots)
}

func TestExecute_Idempotent(t *testing.T) {
	f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 15, BufferMinutes: 10}, 45)
	f.hours(5, "09:00", "17:00")
	f.store.AddAppointment(domain.Appointment{StaffID: "staff-1", StartAt: f.at("13:00"), EndAt: f.at("14:10"), Status: domain.StatusConfirmed})
	uc := f.useCase()

	first, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "missing option and service", req: &Request{Date: request().Date}},
		{name: "missing date", req: &Request{ServiceOptionID: "opt-1"}},
		{name: "empty staff", req: &Request{ServiceOptionID: "opt-1", Date: request().Date, StaffID: ptr.Ptr("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 30}, 60)

			_, err := f.useCase().Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, f.store.Reads, "no data access on validation failure")
		})
	}
}

func TestExecute_ResolveErrors(t *testing.T) {
	f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 30}, 60)
	uc := f.useCase()

	req := request()
	req.ServiceOptionID = "missing"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	req = request()
	req.StaffID = ptr.Ptr("ghost")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffUnavailable)

	empty := memstore.New()
	empty.AddOption(domain.Service{ID: "svc-1", Active: true},
		domain.ServiceOption{ID: "opt-1", Type: domain.OptionApplication, DurationMinutes: 60, Active: true})
	empty.AddStaff(domain.Staff{ID: "staff-1", Active: true})
	f.store = empty
	_, err = f.useCase().Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	f := newFixture(t, "UTC", domain.SchedulingConfig{SlotMinutes: 30}, 60)
	f.hours(5, "09:00", "12:00")
	f.store.Err = errors.New("db down")

	_, err := f.useCase().Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrInternal)
}

// Случайные графики и записи: каждый слот лежит в рабочем окне, не раньше now+minAdvance
// и не пересекается с занятыми интервалами
func TestExecute_SlotProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		cfg := domain.SchedulingConfig{
			SlotMinutes:       []int{10, 15, 20, 30, 45, 60}[rnd.Intn(6)],
			BufferMinutes:     rnd.Intn(4) * 5,
			MinAdvanceMinutes: rnd.Intn(5) * 60,
		}
		duration := 15 + rnd.Intn(8)*15
		f := newFixture(t, "UTC", cfg, duration)

		startMin := 6*60 + rnd.Intn(8)*30
		endMin := startMin + 60 + rnd.Intn(12)*30
		if endMin > 23*60+59 {
			endMin = 23*60 + 59
		}
		start, end := minutesString(startMin), minutesString(endMin)
		f.hours(5, start, end)
		f.now = f.at("00:00").Add(time.Duration(rnd.Intn(24*60)) * time.Minute)

		var busy []domain.Interval
		for j := 0; j < rnd.Intn(4); j++ {
			s := f.at(minutesString(startMin + rnd.Intn(endMin-startMin)))
			e := s.Add(time.Duration(15+rnd.Intn(90)) * time.Minute)
			f.store.AddAppointment(domain.Appointment{StaffID: "staff-1", StartAt: s, EndAt: e, Status: domain.StatusConfirmed})
			busy = append(busy, domain.Interval{Start: s, End: e})
		}

		resp, err := f.useCase().Execute(context.Background(), request())
		require.NoError(t, err)

		dayStart, dayEnd := f.at(start), f.at(end)
		minStart := f.now.Add(time.Duration(cfg.MinAdvanceMinutes) * time.Minute)
		for _, slot := range resp.Slots {
			slotStart := f.at(slot)
			slotEnd := slotStart.Add(time.Duration(duration+cfg.BufferMinutes) * time.Minute)

			assert.False(t, slotStart.Before(dayStart), "slot %s before window", slot)
			assert.False(t, slotEnd.After(dayEnd), "slot %s ends after window", slot)
			assert.False(t, slotStart.Before(minStart), "slot %s before advance notice", slot)
			assert.False(t, domain.HasConflict(domain.Interval{Start: slotStart, End: slotEnd}, busy), "slot %s conflicts", slot)
		}
	}
}

func minutesString(m int) string {
	return types.TimeString(time.Date(0, 1, 1, m/60, m%60, 0, 0, time.UTC).Format("15:04")).String()
}
