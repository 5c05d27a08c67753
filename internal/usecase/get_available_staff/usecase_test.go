package get_available_staff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/clock"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeCatalog struct {
	services map[int64]*domain.Service
	// мастера по услуге, как их отдаёт join со staff_services
	byService map[int64][]domain.Staff
	listErr   error
}

func (f *fakeCatalog) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeCatalog) ListStaffByService(_ context.Context, serviceID int64) ([]domain.Staff, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byService[serviceID], nil
}

type fakeSchedule struct {
	hours []domain.WorkingHours
	err   error
	asked []time.Weekday
}

func (f *fakeSchedule) GetWorkingHours(_ context.Context, staffID int64, day time.Weekday) (*domain.WorkingHours, error) {
	f.asked = append(f.asked, day)
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.hours {
		if f.hours[i].StaffID == staffID && f.hours[i].DayOfWeek == day {
			wh := f.hours[i]
			return &wh, nil
		}
	}
	return nil, scheduleRepo.ErrWorkingHoursNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2025-09-03 - среда
var wednesday = types.Date{Year: 2025, Month: time.September, Day: 3}

type fixture struct {
	catalog  *fakeCatalog
	schedule *fakeSchedule
	now      time.Time
	policy   domain.BookingPolicy
}

func newFixture() *fixture {
	return &fixture{
		catalog: &fakeCatalog{
			services: map[int64]*domain.Service{
				10: {ID: 10, Name: "Haircut", DurationMinutes: 45, IsActive: true},
				12: {ID: 12, Name: "Retired", DurationMinutes: 30, IsActive: false},
			},
			byService: map[int64][]domain.Staff{
				10: {
					{ID: 1, Name: "Anna", IsActive: true},
					{ID: 3, Name: "Olga", IsActive: true},
					{ID: 4, Name: "Vera", IsActive: true},
				},
			},
		},
		schedule: &fakeSchedule{
			hours: []domain.WorkingHours{
				{StaffID: 1, DayOfWeek: time.Wednesday, StartTime: "09:00", EndTime: "18:00", IsActive: true},
				{StaffID: 3, DayOfWeek: time.Wednesday, StartTime: "12:00", EndTime: "20:00", IsActive: false},
				{StaffID: 4, DayOfWeek: time.Thursday, StartTime: "10:00", EndTime: "19:00", IsActive: true},
			},
		},
		now:    time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC),
		policy: domain.DefaultBookingPolicy(),
	}
}

func (f *fixture) useCase() *UseCase {
	return NewUseCase(f.catalog, f.schedule, clock.Fixed(f.now), f.policy, nopLogger{})
}

func TestExecute_OnlyStaffWorkingThatWeekday(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase().Execute(context.Background(), &Request{ServiceID: 10, Date: wednesday})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, int64(1), resp.Staff[0].Staff.ID)
	assert.Equal(t, types.TimeString("09:00"), resp.Staff[0].WorkingHours.StartTime)
	assert.Equal(t, "2025-09-03", resp.Date.String())
	for _, day := range f.schedule.asked {
		assert.Equal(t, time.Wednesday, day)
	}
}

func TestExecute_OtherWeekday(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase().Execute(context.Background(), &Request{ServiceID: 10, Date: wednesday.AddDays(1)})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, "Vera", resp.Staff[0].Staff.Name)
}

func TestExecute_NobodyOffersServiceIsEmpty(t *testing.T) {
	f := newFixture()
	f.catalog.services[11] = &domain.Service{ID: 11, Name: "Trim", DurationMinutes: 30, IsActive: true}

	resp, err := f.useCase().Execute(context.Background(), &Request{ServiceID: 11, Date: wednesday})

	require.NoError(t, err)
	assert.NotNil(t, resp.Staff)
	assert.Empty(t, resp.Staff)
	assert.Empty(t, f.schedule.asked)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		mutate  func(*fixture)
		wantErr error
	}{
		{name: "nil request", req: nil, wantErr: ErrInvalidInput},
		{name: "zero service", req: &Request{Date: wednesday}, wantErr: ErrInvalidInput},
		{name: "zero date", req: &Request{ServiceID: 10}, wantErr: ErrInvalidInput},
		{name: "unknown service", req: &Request{ServiceID: 99, Date: wednesday}, wantErr: ErrServiceNotFound},
		{name: "inactive service", req: &Request{ServiceID: 12, Date: wednesday}, wantErr: ErrServiceNotFound},
		{name: "past date", req: &Request{ServiceID: 10, Date: types.Date{Year: 2025, Month: time.August, Day: 31}}, wantErr: ErrInvalidDate},
		{
			name:    "too far ahead",
			req:     &Request{ServiceID: 10, Date: wednesday},
			mutate:  func(f *fixture) { f.policy.MaxAdvanceDays = 1 },
			wantErr: ErrDateTooFarInFuture,
		},
		{
			name:    "catalog failure",
			req:     &Request{ServiceID: 10, Date: wednesday},
			mutate:  func(f *fixture) { f.catalog.listErr = errors.New("connection reset") },
			wantErr: ErrInternal,
		},
		{
			name:    "schedule failure",
			req:     &Request{ServiceID: 10, Date: wednesday},
			mutate:  func(f *fixture) { f.schedule.err = errors.New("connection reset") },
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.mutate != nil {
				tt.mutate(f)
			}

			resp, err := f.useCase().Execute(context.Background(), tt.req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
