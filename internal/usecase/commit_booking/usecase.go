package commit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	dayRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/day"
	userClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonBookingService/internal/schedule"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
)

// UseCase use case записи клиента на процедуру
type UseCase struct {
	dayRepo      DayRepository
	catalog      Catalog
	userClient   UserServiceClient
	txManager    TransactionManager
	locker       DayLocker
	metrics      Metrics
	policy       schedule.Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	dayRepo DayRepository,
	catalog Catalog,
	userClient UserServiceClient,
	txManager TransactionManager,
	locker DayLocker,
	metrics Metrics,
	policy schedule.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		dayRepo:      dayRepo,
		catalog:      catalog,
		userClient:   userClient,
		txManager:    txManager,
		locker:       locker,
		metrics:      metrics,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute записывает клиента на окно, найденное на шаге поиска.
// Запись в день выполняется под блокировкой дня в сериализуемой транзакции;
// окно всегда проверяется заново, ранее рассчитанным значениям не доверяем.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitBooking: user=%d, date=%s, procedure=%s, start=%s, exact=%t",
		req.UserID, req.Date.Format(domain.DateFormat), req.ProcedureID, req.StartTime, req.ExactFit)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем клиента и проверяем верификацию
	client, err := uc.userClient.GetClient(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CommitBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CommitBooking: failed to get client id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	hair, err := resolveHair(client, req.OnBehalf)
	if err != nil {
		uc.logger.Warn("CommitBooking: user id=%d rejected: %v", req.UserID, err)
		return nil, err
	}

	// 3. Пересчитываем длительности этапов по каталогу
	procedure, err := uc.catalog.Get(req.ProcedureID)
	if err != nil {
		uc.logger.Warn("CommitBooking: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	plan, err := uc.catalog.Duration(req.ProcedureID, hair.Length, hair.Density)
	if err != nil {
		uc.logger.Error("CommitBooking: duration for %s (%s/%s): %v", req.ProcedureID, hair.Density, hair.Length, err)
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	// 4. Блокируем день: в каждый момент времени слоты дня меняет только один писатель
	dateKey := req.Date.Format(domain.DateFormat)
	unlock, err := uc.locker.Lock(ctx, dateKey)
	if err != nil {
		uc.logger.Error("CommitBooking: failed to lock day %s: %v", dateKey, err)
		return nil, fmt.Errorf("%w: failed to lock day: %v", ErrInternal, err)
	}
	defer unlock()

	var (
		day     *domain.Day
		created []domain.TimeSlot
	)

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем день с блокировкой строки (FOR UPDATE)
		locked, err := uc.dayRepo.GetDayByDateForUpdate(txCtx, req.Date)
		if err != nil {
			if errors.Is(err, dayRepo.ErrDayNotFound) {
				return ErrDayNotFound
			}
			return storageErr("failed to get day", err)
		}
		day = locked

		if err := checkDayAccess(day, client, uc.timeProvider.Now()); err != nil {
			return err
		}

		// 5.2. Текущие слоты дня; пустой день засеваем
		slots, err := uc.ensureSlots(txCtx, day)
		if err != nil {
			return err
		}

		// 5.3. Проверяем окно и строим новые слоты
		daySchedule := schedule.NewDaySchedule(*day, slots, uc.policy)
		commitPlan, err := daySchedule.Commit(schedule.CommitRequest{
			RequesterID: client.ID,
			Stages:      plan.Stages,
			Start:       req.StartTime,
			ExactFit:    req.ExactFit,
			Procedure:   procedure.Name,
		})
		if err != nil {
			switch {
			case errors.Is(err, schedule.ErrBookingConflict):
				return fmt.Errorf("%w: %v", ErrBookingConflict, err)
			case errors.Is(err, schedule.ErrConsistency):
				return fmt.Errorf("%w: %v", ErrConsistency, err)
			default:
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}

		// 5.4. Заменяем окно этапами процедуры одной операцией
		saved, err := uc.dayRepo.ReplaceSlot(txCtx, day.ID, commitPlan.Removed.StartTime, commitPlan.Created)
		if err != nil {
			if errors.Is(err, dayRepo.ErrSlotNotFound) {
				return fmt.Errorf("%w: %v", ErrBookingConflict, err)
			}
			return storageErr("failed to replace slot", err)
		}
		created = saved

		// 5.5. Проверяем инварианты разбиения дня
		after, err := uc.dayRepo.ListSlots(txCtx, day.ID)
		if err != nil {
			return storageErr("failed to list slots", err)
		}
		if len(after) != len(daySchedule.Slots) {
			uc.logger.Error("CommitBooking: %s has %d slots after commit, expected %d",
				day.DateString(), len(after), len(daySchedule.Slots))
			return fmt.Errorf("%w: unexpected slot count after commit", ErrConsistency)
		}
		if err := schedule.Verify(*day, after); err != nil {
			uc.logger.Error("CommitBooking: invariant violated on %s: %v", day.DateString(), err)
			return fmt.Errorf("%w: %v", ErrConsistency, err)
		}

		return nil
	})

	// Проигравшая конкурентную фиксацию транзакция означает, что окно занял другой клиент
	if err != nil && !errors.Is(err, ErrBookingConflict) && txmanager.IsSerializationFailure(err) {
		err = fmt.Errorf("%w: concurrent commit on %s: %v", ErrBookingConflict, dateKey, err)
	}

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingConflict):
			uc.logger.Warn("CommitBooking: conflict for user=%d on %s at %s: %v", req.UserID, dateKey, req.StartTime, err)
			uc.metrics.IncBookingCommit(metrics.OutcomeConflict)
		case errors.Is(err, ErrDayNotFound), errors.Is(err, ErrDayNotVisible):
			uc.logger.Warn("CommitBooking: day %s unavailable for user=%d: %v", dateKey, req.UserID, err)
		default:
			uc.logger.Error("CommitBooking: failed for user=%d on %s: %v", req.UserID, dateKey, err)
			uc.metrics.IncBookingCommit(metrics.OutcomeError)
		}
		return nil, err
	}

	uc.metrics.IncBookingCommit(metrics.OutcomeCommitted)

	response := &Response{
		Date:          day.Date,
		ProcedureID:   procedure.ID,
		ProcedureName: procedure.Name,
		StartTime:     req.StartTime,
	}
	for _, s := range created {
		if s.State() == domain.SlotFree {
			continue
		}
		response.Slots = append(response.Slots, BookedSlot{
			ID:        s.ID,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			State:     s.State(),
		})
		response.EndTime = s.EndTime
	}

	uc.logger.Info("CommitBooking: user=%d booked %s %s-%s on %s",
		req.UserID, procedure.Name, response.StartTime, response.EndTime, dateKey)

	return response, nil
}

// ensureSlots возвращает слоты дня, создавая начальный свободный слот для пустого дня
func (uc *UseCase) ensureSlots(ctx context.Context, day *domain.Day) ([]domain.TimeSlot, error) {
	current, err := uc.dayRepo.ListSlots(ctx, day.ID)
	if err != nil {
		return nil, storageErr("failed to list slots", err)
	}

	ensured, seeded, err := schedule.Ensure(*day, current)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConsistency, err)
	}
	if !seeded {
		return ensured, nil
	}

	slots := make([]domain.TimeSlot, 0, len(ensured))
	for i := range ensured {
		created, err := uc.dayRepo.CreateSlot(ctx, &ensured[i])
		if err != nil {
			return nil, storageErr("failed to create initial slot", err)
		}
		slots = append(slots, *created)
	}

	uc.logger.Info("CommitBooking: seeded day %s", day.DateString())
	return slots, nil
}

// storageErr переводит ошибку хранилища в ошибку usecase.
// Ошибка сериализации postgres означает конкурентную запись в день и отдается как конфликт.
func storageErr(step string, err error) error {
	if errors.Is(err, dayRepo.ErrSerialization) || txmanager.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", ErrBookingConflict, step, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, step, err)
}
