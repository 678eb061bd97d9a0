package find_slot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/catalog"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	dayRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/day"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonBookingService/internal/schedule"
	"github.com/m04kA/SMC-SalonBookingService/pkg/daylock"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

const (
	clientR  int64 = 101
	clientS  int64 = 202
	newbie   int64 = 303
	adminID  int64 = 1
	bookDate       = "2024-04-27"
)

type fakeUsers map[int64]*domain.Client

func (f fakeUsers) GetClient(_ context.Context, userID int64) (*domain.Client, error) {
	c, ok := f[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	cp := *c
	return &cp, nil
}

type fakeMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *fakeMetrics) IncFit(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[outcome]++
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func mustDate(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	repo    *dayRepo.MemoryRepository
	uc      *UseCase
	metrics *fakeMetrics
	day     *domain.Day
}

func newFixture(t *testing.T, day *domain.Day, policy schedule.Policy) *fixture {
	t.Helper()

	repo := dayRepo.NewMemoryRepository()
	created, err := repo.CreateDay(context.Background(), day)
	require.NoError(t, err)

	users := fakeUsers{
		clientR: {ID: clientR, HairLength: domain.HairLengthShort, HairDensity: domain.HairDensityThin, IsVerified: true},
		clientS: {ID: clientS, HairLength: domain.HairLengthLong, HairDensity: domain.HairDensityThick, IsVerified: true},
		newbie:  {ID: newbie},
		adminID: {ID: adminID, IsVerified: true, IsAdmin: true},
	}

	m := &fakeMetrics{}
	uc := NewUseCase(repo, catalog.Default(), users, txmanager.NewNoopManager(), daylock.NewLocalLocker(), m, policy, logger.Nop())
	uc.timeProvider = fixedTime{now: time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC)}

	return &fixture{repo: repo, uc: uc, metrics: m, day: created}
}

func visibleDay() *domain.Day {
	return &domain.Day{
		Date:          mustDate(bookDate),
		WorkHourStart: domain.DefaultWorkHourStart,
		WorkHourEnd:   domain.DefaultWorkHourEnd,
		IsVisible:     true,
	}
}

func TestFindSlotSeedsEmptyDay(t *testing.T) {
	f := newFixture(t, visibleDay(), schedule.Policy{})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := f.uc.Execute(ctx, &Request{UserID: clientR, Date: mustDate(bookDate), ProcedureID: catalog.Haircut})
		require.NoError(t, err)
		assert.True(t, resp.Available)
		assert.Equal(t, types.TimeString("09:00"), resp.StartTime)
		assert.Equal(t, types.TimeString("10:00"), resp.EndTime)
		assert.False(t, resp.ExactFit)
		assert.Equal(t, []int{60}, resp.Stages)
		assert.Equal(t, "Haircut", resp.ProcedureName)
	}

	slots, err := f.repo.ListSlots(ctx, f.day.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("18:00"), slots[0].EndTime)
	assert.Equal(t, domain.SlotFree, slots[0].State())
}

func TestFindSlotMultiStage(t *testing.T) {
	f := newFixture(t, visibleDay(), schedule.Policy{})

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: clientS, Date: mustDate(bookDate), ProcedureID: catalog.ComplexColor})
	require.NoError(t, err)
	assert.Equal(t, []int{180, 60, 90}, resp.Stages)
	assert.Equal(t, 330, resp.TotalMinutes)
	assert.Equal(t, types.TimeString("14:30"), resp.EndTime)
}

func TestFindSlotNoAvailability(t *testing.T) {
	f := newFixture(t, visibleDay(), schedule.Policy{})
	ctx := context.Background()

	_, err := f.repo.CreateSlot(ctx, &domain.TimeSlot{DayID: f.day.ID, StartTime: "09:00", EndTime: "17:00",
		RequesterID: ptr.Ptr(clientS), Procedure: ptr.Ptr("Complex Color")})
	require.NoError(t, err)
	_, err = f.repo.CreateSlot(ctx, &domain.TimeSlot{DayID: f.day.ID, StartTime: "17:00", EndTime: "18:00", Available: true})
	require.NoError(t, err)

	// Simple Color для THICK/LONG: 20 + 40 + 10 = 70 минут
	resp, err := f.uc.Execute(ctx, &Request{UserID: clientS, Date: mustDate(bookDate), ProcedureID: catalog.SimpleColor})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, 70, resp.TotalMinutes)
	assert.Equal(t, 1, f.metrics.outcomes[metrics.OutcomeNoAvailability])

	resp, err = f.uc.Execute(ctx, &Request{UserID: clientR, Date: mustDate(bookDate), ProcedureID: catalog.Haircut})
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.True(t, resp.ExactFit)
}

func TestFindSlotConfirm(t *testing.T) {
	f := newFixture(t, visibleDay(), schedule.Policy{})
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, &Request{UserID: clientR, Date: mustDate(bookDate), ProcedureID: catalog.Haircut,
		ProposedStart: ptr.Ptr(types.TimeString("09:00"))})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), resp.StartTime)

	// окно занято между показом и подтверждением
	_, err = f.repo.ReplaceSlot(ctx, f.day.ID, "09:00", []domain.TimeSlot{
		{StartTime: "09:00", EndTime: "10:00", RequesterID: ptr.Ptr(clientS), Procedure: ptr.Ptr("Laying")},
		{StartTime: "10:00", EndTime: "18:00", Available: true},
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{UserID: clientR, Date: mustDate(bookDate), ProcedureID: catalog.Haircut,
		ProposedStart: ptr.Ptr(types.TimeString("09:00"))})
	assert.ErrorIs(t, err, ErrProposalOutdated)
}

func TestFindSlotOwnTransitPolicy(t *testing.T) {
	ctx := context.Background()
	seed := func(f *fixture) {
		_, err := f.repo.CreateSlot(ctx, &domain.TimeSlot{DayID: f.day.ID, StartTime: "09:00", EndTime: "09:10", RequesterID: ptr.Ptr(clientR), Procedure: ptr.Ptr("Simple Color")})
		require.NoError(t, err)
		_, err = f.repo.CreateSlot(ctx, &domain.TimeSlot{DayID: f.day.ID, StartTime: "09:10", EndTime: "10:10", RequesterID: ptr.Ptr(clientR), Available: true})
		require.NoError(t, err)
		_, err = f.repo.CreateSlot(ctx, &domain.TimeSlot{DayID: f.day.ID, StartTime: "10:10", EndTime: "10:20", RequesterID: ptr.Ptr(clientR), Procedure: ptr.Ptr("Simple Color")})
		require.NoError(t, err)
		_, err = f.repo.CreateSlot(ctx, &domain.TimeSlot{DayID: f.day.ID, StartTime: "10:20", EndTime: "18:00", Available: true})
		require.NoError(t, err)
	}

	f := newFixture(t, visibleDay(), schedule.Policy{})
	seed(f)
	resp, err := f.uc.Execute(ctx, &Request{UserID: clientR, Date: mustDate(bookDate), ProcedureID: catalog.Haircut})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:10"), resp.StartTime)
	assert.True(t, resp.ExactFit)

	skip := newFixture(t, visibleDay(), schedule.Policy{SkipOwnTransit: true})
	seed(skip)
	resp, err = skip.uc.Execute(ctx, &Request{UserID: clientR, Date: mustDate(bookDate), ProcedureID: catalog.Haircut})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:20"), resp.StartTime)
}

func TestFindSlotErrors(t *testing.T) {
	hidden := visibleDay()
	hidden.IsVisible = false

	past := visibleDay()
	past.Date = mustDate("2024-04-26")

	broken := visibleDay()
	broken.WorkHourEnd = broken.WorkHourStart

	tests := []struct {
		name    string
		day     *domain.Day
		req     Request
		wantErr error
	}{
		{name: "missing procedure id", day: visibleDay(), req: Request{UserID: clientR}, wantErr: ErrInvalidInput},
		{name: "unknown user", day: visibleDay(), req: Request{UserID: 999, ProcedureID: catalog.Haircut}, wantErr: ErrUserNotFound},
		{name: "not verified", day: visibleDay(), req: Request{UserID: newbie, ProcedureID: catalog.Haircut}, wantErr: ErrNotVerified},
		{name: "unknown procedure", day: visibleDay(), req: Request{UserID: clientR, ProcedureID: "perm"}, wantErr: ErrConfiguration},
		{name: "hidden day", day: hidden, req: Request{UserID: clientR, ProcedureID: catalog.Haircut}, wantErr: ErrDayNotVisible},
		{name: "today", day: past, req: Request{UserID: clientR, ProcedureID: catalog.Haircut}, wantErr: ErrDayNotVisible},
		{name: "zero working hours", day: broken, req: Request{UserID: clientR, ProcedureID: catalog.Haircut}, wantErr: ErrConsistency},
		{
			name:    "on behalf by client",
			day:     visibleDay(),
			req:     Request{UserID: clientR, ProcedureID: catalog.Haircut, OnBehalf: &domain.HairAttributes{Length: domain.HairLengthLong, Density: domain.HairDensityThin}},
			wantErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.day, schedule.Policy{})
			tt.req.Date = tt.day.Date

			_, err := f.uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	f := newFixture(t, visibleDay(), schedule.Policy{})
	_, err := f.uc.Execute(context.Background(), &Request{UserID: clientR, Date: mustDate("2024-05-01"), ProcedureID: catalog.Haircut})
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestFindSlotAdminOnHiddenDay(t *testing.T) {
	hidden := visibleDay()
	hidden.IsVisible = false
	f := newFixture(t, hidden, schedule.Policy{})

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:      adminID,
		Date:        hidden.Date,
		ProcedureID: catalog.HairExtTemple,
		OnBehalf:    &domain.HairAttributes{Length: domain.HairLengthMedium, Density: domain.HairDensityMedium},
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:40"), resp.EndTime)
}
