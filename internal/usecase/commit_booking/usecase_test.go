package commit_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
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

func (m *fakeMetrics) IncBookingCommit(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[outcome]++
}

func (m *fakeMetrics) count(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomes[outcome]
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	repo    *dayRepo.MemoryRepository
	uc      *UseCase
	metrics *fakeMetrics
	day     *domain.Day
}

func mustDate(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func newFixture(t *testing.T, visible bool) *fixture {
	t.Helper()

	repo := dayRepo.NewMemoryRepository()
	day, err := repo.CreateDay(context.Background(), &domain.Day{
		Date:          mustDate(bookDate),
		WorkHourStart: domain.DefaultWorkHourStart,
		WorkHourEnd:   domain.DefaultWorkHourEnd,
		IsVisible:     visible,
	})
	require.NoError(t, err)

	users := fakeUsers{
		clientR: {ID: clientR, HairLength: domain.HairLengthShort, HairDensity: domain.HairDensityThin, IsVerified: true},
		clientS: {ID: clientS, HairLength: domain.HairLengthShort, HairDensity: domain.HairDensityThin, IsVerified: true},
		newbie:  {ID: newbie},
		adminID: {ID: adminID, IsVerified: true, IsAdmin: true},
	}

	m := &fakeMetrics{}
	uc := NewUseCase(repo, catalog.Default(), users, txmanager.NewNoopManager(), daylock.NewLocalLocker(), m, schedule.Policy{}, logger.Nop())
	uc.timeProvider = fixedTime{now: time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC)}

	return &fixture{repo: repo, uc: uc, metrics: m, day: day}
}

func (f *fixture) slots(t *testing.T) []domain.TimeSlot {
	t.Helper()
	slots, err := f.repo.ListSlots(context.Background(), f.day.ID)
	require.NoError(t, err)
	return slots
}

type slotView struct {
	Start     string
	End       string
	State     domain.SlotState
	Requester int64
	Label     string
}

func view(slots []domain.TimeSlot) []slotView {
	result := make([]slotView, 0, len(slots))
	for _, s := range schedule.Sort(slots) {
		result = append(result, slotView{
			Start:     s.StartTime.String(),
			End:       s.EndTime.String(),
			State:     s.State(),
			Requester: ptr.Value(s.RequesterID),
			Label:     ptr.Value(s.Procedure),
		})
	}
	return result
}

func TestCommitHaircutThenSimpleColor(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, &Request{
		UserID:      clientR,
		Date:        mustDate(bookDate),
		ProcedureID: catalog.Haircut,
		StartTime:   "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Haircut", resp.ProcedureName)
	assert.Equal(t, types.TimeString("09:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.EndTime)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, domain.SlotBookedBusy, resp.Slots[0].State)

	assert.Equal(t, []slotView{
		{Start: "09:00", End: "10:00", State: domain.SlotBookedBusy, Requester: clientR, Label: "Haircut"},
		{Start: "10:00", End: "18:00", State: domain.SlotFree},
	}, view(f.slots(t)))

	resp, err = f.uc.Execute(ctx, &Request{
		UserID:      clientS,
		Date:        mustDate(bookDate),
		ProcedureID: catalog.SimpleColor,
		StartTime:   "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Len(t, resp.Slots, 3)

	assert.Equal(t, []slotView{
		{Start: "09:00", End: "10:00", State: domain.SlotBookedBusy, Requester: clientR, Label: "Haircut"},
		{Start: "10:00", End: "10:10", State: domain.SlotBookedBusy, Requester: clientS, Label: "Simple Color"},
		{Start: "10:10", End: "10:50", State: domain.SlotBookedTransit, Requester: clientS},
		{Start: "10:50", End: "11:00", State: domain.SlotBookedBusy, Requester: clientS, Label: "Simple Color"},
		{Start: "11:00", End: "18:00", State: domain.SlotFree},
	}, view(f.slots(t)))

	assert.Equal(t, 2, f.metrics.count(metrics.OutcomeCommitted))
	require.NoError(t, schedule.Verify(*f.day, f.slots(t)))
}

func TestCommitConcurrentSameStart(t *testing.T) {
	f := newFixture(t, true)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), &Request{
				UserID:      userID,
				Date:        mustDate(bookDate),
				ProcedureID: catalog.Haircut,
				StartTime:   "09:00",
			})
			errs <- err
		}([]int64{clientR, clientS}[i%2])
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrBookingConflict)
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, f.metrics.count(metrics.OutcomeConflict))
	require.NoError(t, schedule.Verify(*f.day, f.slots(t)))
}

func TestCommitStaleExactFit(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:      clientR,
		Date:        mustDate(bookDate),
		ProcedureID: catalog.Haircut,
		StartTime:   "09:00",
		ExactFit:    true,
	})
	assert.ErrorIs(t, err, ErrBookingConflict)

	// неудачная попытка не меняет день
	assert.Equal(t, []slotView{{Start: "09:00", End: "18:00", State: domain.SlotFree}}, view(f.slots(t)))
}

func TestCommitOwnTransitPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  schedule.Policy
		wantErr error
	}{
		{name: "own transit reused", policy: schedule.Policy{}},
		{name: "own transit skipped", policy: schedule.Policy{SkipOwnTransit: true}, wantErr: ErrBookingConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			f.uc.policy = tt.policy
			ctx := context.Background()

			_, err := f.uc.Execute(ctx, &Request{
				UserID:      clientS,
				Date:        mustDate(bookDate),
				ProcedureID: catalog.SimpleColor,
				StartTime:   "09:00",
			})
			require.NoError(t, err)
			before := view(f.slots(t))

			// окно ожидания 09:10-09:50 принадлежит самому клиенту
			_, err = f.uc.Execute(ctx, &Request{
				UserID:      clientS,
				Date:        mustDate(bookDate),
				ProcedureID: catalog.HairExtTemple,
				StartTime:   "09:10",
				ExactFit:    true,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, view(f.slots(t)))
				assert.Equal(t, 1, f.metrics.count(metrics.OutcomeConflict))
				return
			}
			require.NoError(t, err)
			require.NoError(t, schedule.Verify(*f.day, f.slots(t)))
		})
	}
}

// failingReplaceRepo возвращает ошибку из ReplaceSlot
type failingReplaceRepo struct {
	*dayRepo.MemoryRepository
	err error
}

func (r failingReplaceRepo) ReplaceSlot(_ context.Context, _ int64, _ types.TimeString, _ []domain.TimeSlot) ([]domain.TimeSlot, error) {
	return nil, r.err
}

// failingCommitManager выполняет fn и возвращает ошибку фиксации
type failingCommitManager struct {
	err error
}

func (m failingCommitManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return m.err
}

func TestCommitSerializationFailureIsConflict(t *testing.T) {
	tests := []struct {
		name      string
		replace   error
		commitErr error
		wantErr   error
	}{
		{
			name:    "serialization failure on delete",
			replace: &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"},
			wantErr: ErrBookingConflict,
		},
		{
			name:    "deadlock on delete",
			replace: &pq.Error{Code: "40P01", Message: "deadlock detected"},
			wantErr: ErrBookingConflict,
		},
		{
			name:    "wrapped by repository",
			replace: fmt.Errorf("%w: ReplaceSlot - execute delete: boom", dayRepo.ErrSerialization),
			wantErr: ErrBookingConflict,
		},
		{
			name:      "serialization failure on commit",
			commitErr: fmt.Errorf("%w: commit: boom", txmanager.ErrSerialization),
			wantErr:   ErrBookingConflict,
		},
		{
			name:    "other driver error",
			replace: &pq.Error{Code: "53300", Message: "too many connections"},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			if tt.replace != nil {
				f.uc.dayRepo = failingReplaceRepo{MemoryRepository: f.repo, err: tt.replace}
			}
			if tt.commitErr != nil {
				f.uc.txManager = failingCommitManager{err: tt.commitErr}
			}

			_, err := f.uc.Execute(context.Background(), &Request{
				UserID:      clientR,
				Date:        mustDate(bookDate),
				ProcedureID: catalog.Haircut,
				StartTime:   "09:00",
			})
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantErr == ErrBookingConflict {
				assert.Equal(t, 1, f.metrics.count(metrics.OutcomeConflict))
			}
		})
	}
}

func TestCommitAccessRules(t *testing.T) {
	tests := []struct {
		name    string
		visible bool
		req     Request
		wantErr error
	}{
		{
			name:    "unknown user",
			visible: true,
			req:     Request{UserID: 999, ProcedureID: catalog.Haircut, StartTime: "09:00"},
			wantErr: ErrUserNotFound,
		},
		{
			name:    "not verified",
			visible: true,
			req:     Request{UserID: newbie, ProcedureID: catalog.Haircut, StartTime: "09:00"},
			wantErr: ErrNotVerified,
		},
		{
			name:    "unknown procedure",
			visible: true,
			req:     Request{UserID: clientR, ProcedureID: "perm", StartTime: "09:00"},
			wantErr: ErrConfiguration,
		},
		{
			name:    "hidden day",
			visible: false,
			req:     Request{UserID: clientR, ProcedureID: catalog.Haircut, StartTime: "09:00"},
			wantErr: ErrDayNotVisible,
		},
		{
			name:    "on behalf by client",
			visible: true,
			req: Request{UserID: clientR, ProcedureID: catalog.Haircut, StartTime: "09:00",
				OnBehalf: &domain.HairAttributes{Length: domain.HairLengthLong, Density: domain.HairDensityThick}},
			wantErr: ErrForbidden,
		},
		{
			name:    "admin without attributes",
			visible: true,
			req:     Request{UserID: adminID, ProcedureID: catalog.Haircut, StartTime: "09:00"},
			wantErr: ErrNotVerified,
		},
		{
			name:    "bad start time",
			visible: true,
			req:     Request{UserID: clientR, ProcedureID: catalog.Haircut, StartTime: "9 am"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.visible)
			tt.req.Date = mustDate(bookDate)

			_, err := f.uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCommitDayNotFound(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:      clientR,
		Date:        mustDate("2024-05-01"),
		ProcedureID: catalog.Haircut,
		StartTime:   "09:00",
	})
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestCommitAdminOnBehalfOnHiddenDay(t *testing.T) {
	f := newFixture(t, false)

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:      adminID,
		Date:        mustDate(bookDate),
		ProcedureID: catalog.Haircut,
		StartTime:   "09:00",
		OnBehalf:    &domain.HairAttributes{Length: domain.HairLengthLong, Density: domain.HairDensityThick},
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
}
