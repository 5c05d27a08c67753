package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/clock"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// memoryBookings хранилище бронирований в памяти.
// enforceOverlap имитирует exclusion constraint базы.
type memoryBookings struct {
	mu             sync.Mutex
	bookings       []domain.Booking
	enforceOverlap bool
	locks          int
	createErr      error
	calls          []string
}

func (m *memoryBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "create")
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.enforceOverlap {
		for _, existing := range m.bookings {
			if existing.StaffID == b.StaffID && existing.BookingDate.Equal(b.BookingDate) &&
				existing.IsActive() && existing.Interval().Overlaps(b.Interval()) {
				return nil, fmt.Errorf("%w: exclusion violation", bookingRepo.ErrSlotNotAvailable)
			}
		}
	}

	b.ID = int64(len(m.bookings) + 1)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.bookings = append(m.bookings, *b)
	return b, nil
}

func (m *memoryBookings) GetActiveByStaffAndDate(_ context.Context, staffID int64, date types.Date) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "read")
	out := make([]domain.Booking, 0)
	for _, b := range m.bookings {
		if b.StaffID == staffID && b.BookingDate.Equal(date) && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryBookings) LockStaffTimeline(context.Context, int64, types.Date) error {
	m.mu.Lock()
	m.locks++
	m.calls = append(m.calls, "lock")
	m.mu.Unlock()
	return nil
}

type staticSchedule struct {
	hours  map[time.Weekday]domain.WorkingHours
	breaks []domain.BreakPeriod
}

func (s *staticSchedule) GetWorkingHours(_ context.Context, _ int64, day time.Weekday) (*domain.WorkingHours, error) {
	wh, ok := s.hours[day]
	if !ok {
		return nil, scheduleRepo.ErrWorkingHoursNotFound
	}
	return &wh, nil
}

func (s *staticSchedule) GetBreaksForDate(_ context.Context, _ int64, date types.Date) ([]domain.BreakPeriod, error) {
	out := make([]domain.BreakPeriod, 0)
	for _, b := range s.breaks {
		if b.AppliesTo(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

type staticCatalog struct{}

func (staticCatalog) GetService(_ context.Context, id int64) (*domain.Service, error) {
	switch id {
	case 10:
		return &domain.Service{ID: 10, Name: "Haircut", DurationMinutes: 45, Price: decimal.RequireFromString("49.90"), Category: "hair", IsActive: true}, nil
	case 11:
		return &domain.Service{ID: 11, Name: "Night shift", DurationMinutes: 120, IsActive: true}, nil
	case 12:
		return &domain.Service{ID: 12, Name: "Manicure", DurationMinutes: 60, Category: "nails", IsActive: true}, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (staticCatalog) GetStaff(_ context.Context, id int64) (*domain.Staff, error) {
	if id == 1 {
		return &domain.Staff{ID: 1, Name: "Anna", IsActive: true}, nil
	}
	return nil, catalogRepo.ErrStaffNotFound
}

// StaffOffersService мастер 1 делает стрижку (10) и ночную услугу (11), но не маникюр (12)
func (staticCatalog) StaffOffersService(_ context.Context, staffID, serviceID int64) (bool, error) {
	return staffID == 1 && serviceID != 12, nil
}

// serialTx выполняет транзакции строго по одной, как advisory lock на таймлайн.
// Чтения внутри видят всё, что закоммитили предыдущие, как в READ COMMITTED.
type serialTx struct {
	mu sync.Mutex
}

func (s *serialTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

// concurrentTx не даёт изоляции, защищает только constraint хранилища
type concurrentTx struct{}

func (concurrentTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type failingTx struct{ err error }

func (f failingTx) Do(context.Context, func(ctx context.Context) error) error {
	return f.err
}

type sequenceRefs struct {
	mu sync.Mutex
	n  int
}

func (s *sequenceRefs) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("BK-20250903-%06X", s.n), nil
}

type recordingMetrics struct {
	mu        sync.Mutex
	created   []string
	conflicts []string
}

func (m *recordingMetrics) IncBookingCreated(category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, category)
}

func (m *recordingMetrics) IncBookingConflict(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts = append(m.conflicts, reason)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var wednesday = types.Date{Year: 2025, Month: time.September, Day: 3}

type env struct {
	bookings *memoryBookings
	schedule *staticSchedule
	tx       TransactionManager
	metrics  *recordingMetrics
	now      time.Time
	policy   domain.BookingPolicy
}

func newEnv() *env {
	return &env{
		bookings: &memoryBookings{},
		schedule: &staticSchedule{
			hours: map[time.Weekday]domain.WorkingHours{
				time.Wednesday: {StaffID: 1, DayOfWeek: time.Wednesday, StartTime: "09:00", EndTime: "18:00", IsActive: true},
				time.Thursday:  {StaffID: 1, DayOfWeek: time.Thursday, StartTime: "09:00", EndTime: "18:00", IsActive: false},
			},
			breaks: []domain.BreakPeriod{
				{StaffID: 1, DayOfWeek: ptr.Ptr(time.Wednesday), StartTime: "12:00", EndTime: "13:00"},
			},
		},
		tx:      &serialTx{},
		metrics: &recordingMetrics{},
		now:     time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC),
		policy:  domain.DefaultBookingPolicy(),
	}
}

func (e *env) useCase() *UseCase {
	return NewUseCase(e.bookings, e.schedule, staticCatalog{}, e.tx, &sequenceRefs{},
		clock.Fixed(e.now), e.policy, e.metrics, nopLogger{})
}

func validRequest(start types.TimeString) *Request {
	return &Request{
		StaffID:       1,
		ServiceID:     10,
		Date:          wednesday,
		StartTime:     start,
		CustomerName:  "  Maria Ivanova ",
		CustomerEmail: " Maria@Example.com ",
		CustomerPhone: "+7 (900) 123-45-67",
		Notes:         ptr.Ptr("  "),
	}
}

func TestExecute_Success(t *testing.T) {
	e := newEnv()

	resp, err := e.useCase().Execute(context.Background(), validRequest("10:00"))

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:45"), resp.EndTime)
	assert.Equal(t, types.TimeString("10:00"), e.bookings.bookings[0].StartTime)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "BK-20250903-000001", resp.Reference)
	assert.True(t, decimal.RequireFromString("49.90").Equal(resp.Price))
	assert.Equal(t, "Maria Ivanova", resp.CustomerName)
	assert.Equal(t, "maria@example.com", resp.CustomerEmail)
	assert.Nil(t, resp.Notes)
	assert.Equal(t, "Anna", resp.StaffName)
	assert.Equal(t, 1, e.bookings.locks)
	assert.Equal(t, []string{"hair"}, e.metrics.created)
}

func TestExecute_ConflictBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		start   types.TimeString
		wantErr error
	}{
		{"overlaps tail", "14:15", ErrSlotConflict},
		{"overlaps head", "13:30", ErrSlotConflict},
		{"ends at existing start", "13:15", nil},
		{"starts at existing end", "14:45", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			e.bookings.bookings = []domain.Booking{{
				ID: 99, Reference: "BK-20250903-AAAAAA", StaffID: 1, BookingDate: wednesday,
				StartTime: "14:00", EndTime: "14:45", Status: domain.StatusConfirmed,
			}}

			_, err := e.useCase().Execute(context.Background(), validRequest(tt.start))

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{conflictOverlap}, e.metrics.conflicts)
		})
	}
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	e := newEnv()
	e.bookings.bookings = []domain.Booking{{
		StaffID: 1, BookingDate: wednesday, StartTime: "10:00", EndTime: "10:45", Status: domain.StatusCancelled,
	}}

	_, err := e.useCase().Execute(context.Background(), validRequest("10:00"))

	assert.NoError(t, err)
}

func TestExecute_ScheduleErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"not working day", func(r *Request) { r.Date = wednesday.AddDays(-2) }, ErrStaffNotWorking},
		{"inactive day", func(r *Request) { r.Date = wednesday.AddDays(1) }, ErrStaffNotWorking},
		{"before opening", func(r *Request) { r.StartTime = "08:30" }, ErrOutsideWorkingHours},
		{"runs past closing", func(r *Request) { r.StartTime = "17:30" }, ErrOutsideWorkingHours},
		{"into break", func(r *Request) { r.StartTime = "11:30" }, ErrBreakOverlap},
		{"past midnight", func(r *Request) { r.StartTime = "23:30"; r.ServiceID = 11 }, ErrInvalidTimeSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			e.now = time.Date(2025, 8, 25, 8, 0, 0, 0, time.UTC)
			req := validRequest("10:00")
			tt.mutate(req)

			_, err := e.useCase().Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, e.bookings.bookings)
		})
	}
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"bad time", func(r *Request) { r.StartTime = "9:00" }, ErrInvalidTimeFormat},
		{"hour out of range", func(r *Request) { r.StartTime = "25:00" }, ErrInvalidTimeFormat},
		{"midnight end as start", func(r *Request) { r.StartTime = "24:00" }, ErrInvalidTimeFormat},
		{"seconds in time", func(r *Request) { r.StartTime = "10:00:59" }, ErrInvalidTimeFormat},
		{"seconds equal zero", func(r *Request) { r.StartTime = "10:00:00" }, ErrInvalidTimeFormat},
		{"email too long", func(r *Request) { r.CustomerEmail = strings.Repeat("a", 250) + "@example.com" }, ErrInvalidInput},
		{"missing time", func(r *Request) { r.StartTime = "" }, ErrInvalidInput},
		{"no staff", func(r *Request) { r.StaffID = 0 }, ErrInvalidInput},
		{"no service", func(r *Request) { r.ServiceID = 0 }, ErrInvalidInput},
		{"no date", func(r *Request) { r.Date = types.Date{} }, ErrInvalidInput},
		{"no name", func(r *Request) { r.CustomerName = " " }, ErrInvalidInput},
		{"bad email", func(r *Request) { r.CustomerEmail = "not-an-email" }, ErrInvalidInput},
		{"bad phone", func(r *Request) { r.CustomerPhone = "call me" }, ErrInvalidInput},
		{"long notes", func(r *Request) { r.Notes = ptr.Ptr(string(make([]rune, 501))) }, ErrInvalidInput},
		{"unknown service", func(r *Request) { r.ServiceID = 77 }, ErrServiceNotFound},
		{"unknown staff", func(r *Request) { r.StaffID = 77 }, ErrStaffNotFound},
		{"service not offered", func(r *Request) { r.ServiceID = 12 }, ErrServiceNotOffered},
		{"past date", func(r *Request) { r.Date = types.Date{Year: 2025, Month: time.August, Day: 31} }, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			req := validRequest("10:00")
			tt.mutate(req)

			_, err := e.useCase().Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, e.bookings.locks)
		})
	}
}

func TestExecute_SameDayNotice(t *testing.T) {
	e := newEnv()
	e.now = time.Date(2025, 9, 3, 9, 40, 0, 0, time.UTC)
	e.policy.MinNoticeMinutes = 30
	uc := e.useCase()

	_, err := uc.Execute(context.Background(), validRequest("10:00"))
	assert.ErrorIs(t, err, ErrTooLateToBook)

	_, err = uc.Execute(context.Background(), validRequest("10:30"))
	assert.NoError(t, err)
}

func TestExecute_ConcurrentRace_SerializedTimeline(t *testing.T) {
	assertExactlyOneWins(t, &serialTx{}, false, conflictOverlap)
}

func TestExecute_ConcurrentRace_ConstraintSafetyNet(t *testing.T) {
	assertExactlyOneWins(t, concurrentTx{}, true, "")
}

func assertExactlyOneWins(t *testing.T, tx TransactionManager, enforce bool, reason string) {
	t.Helper()

	const attempts = 8
	e := newEnv()
	e.tx = tx
	e.bookings.enforceOverlap = enforce
	uc := e.useCase()

	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = uc.Execute(context.Background(), validRequest("15:00"))
		}(i)
	}
	close(start)
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	assert.Len(t, e.bookings.bookings, 1)
	if reason != "" {
		for _, r := range e.metrics.conflicts {
			assert.Equal(t, reason, r)
		}
	}
}

func TestExecute_LocksTimelineBeforeReadingBookings(t *testing.T) {
	e := newEnv()

	_, err := e.useCase().Execute(context.Background(), validRequest("10:00"))

	require.NoError(t, err)
	assert.Equal(t, []string{"lock", "read", "create"}, e.bookings.calls)
}

func TestExecute_TransactionFailureIsReturned(t *testing.T) {
	e := newEnv()
	boom := errors.New("begin failed")
	e.tx = failingTx{err: boom}

	_, err := e.useCase().Execute(context.Background(), validRequest("10:00"))

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, e.metrics.conflicts)
}

func TestExecute_StorageFailureIsInternal(t *testing.T) {
	e := newEnv()
	e.bookings.createErr = errors.New("disk full")

	_, err := e.useCase().Execute(context.Background(), validRequest("10:00"))

	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_NilRequest(t *testing.T) {
	_, err := newEnv().useCase().Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
