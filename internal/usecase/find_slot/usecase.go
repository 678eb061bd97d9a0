package find_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	dayRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/day"
	userClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonBookingService/internal/schedule"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
)

// UseCase use case поиска ближайшего подходящего окна (расчет и подтверждение)
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

// Execute находит первое по времени окно, вмещающее процедуру.
// Операция только читает слоты; единственная запись - ленивое создание
// начального свободного слота дня. Если передан ProposedStart (шаг подтверждения),
// окно пересчитывается и сверяется с ранее предложенным.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindSlot: user=%d, date=%s, procedure=%s",
		req.UserID, req.Date.Format(domain.DateFormat), req.ProcedureID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем клиента и проверяем верификацию
	client, err := uc.userClient.GetClient(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("FindSlot: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("FindSlot: failed to get client id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	hair, err := resolveHair(client, req.OnBehalf)
	if err != nil {
		uc.logger.Warn("FindSlot: user id=%d rejected: %v", req.UserID, err)
		return nil, err
	}

	// 3. Рассчитываем длительности этапов процедуры
	procedure, err := uc.catalog.Get(req.ProcedureID)
	if err != nil {
		uc.logger.Warn("FindSlot: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	plan, err := uc.catalog.Duration(req.ProcedureID, hair.Length, hair.Density)
	if err != nil {
		uc.logger.Error("FindSlot: duration for %s (%s/%s): %v", req.ProcedureID, hair.Density, hair.Length, err)
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	// 4. Загружаем день и его слоты (при первом обращении - создаем начальный слот)
	day, slots, err := uc.loadDay(ctx, req, client)
	if err != nil {
		return nil, err
	}

	// 5. Ищем первое подходящее окно
	response := &Response{
		Date:          day.Date,
		ProcedureID:   procedure.ID,
		ProcedureName: procedure.Name,
		Stages:        plan.Stages,
		TotalMinutes:  plan.TotalMinutes,
	}

	fit, ok, err := schedule.NewDaySchedule(*day, slots, uc.policy).FindFit(plan.TotalMinutes, client.ID)
	if err != nil {
		uc.logger.Error("FindSlot: day %s is inconsistent: %v", day.DateString(), err)
		return nil, fmt.Errorf("%w: %v", ErrConsistency, err)
	}

	if req.ProposedStart != nil && (!ok || !fit.Start.Equal(*req.ProposedStart)) {
		uc.logger.Warn("FindSlot: proposal %s for user=%d on %s is outdated",
			*req.ProposedStart, req.UserID, day.DateString())
		uc.metrics.IncFit(metrics.OutcomeConflict)
		return nil, ErrProposalOutdated
	}

	if !ok {
		uc.logger.Info("FindSlot: no window of %d minutes on %s", plan.TotalMinutes, day.DateString())
		uc.metrics.IncFit(metrics.OutcomeNoAvailability)
		return response, nil
	}

	response.Available = true
	response.StartTime = fit.Start
	response.EndTime = fit.End
	response.ExactFit = fit.ExactFit

	uc.logger.Info("FindSlot: found %s-%s (exact=%t) on %s for user=%d",
		fit.Start, fit.End, fit.ExactFit, day.DateString(), req.UserID)
	uc.metrics.IncFit(metrics.OutcomeFound)

	return response, nil
}

// loadDay возвращает день и все его слоты.
// Пустой день засевается под блокировкой дня внутри транзакции.
func (uc *UseCase) loadDay(ctx context.Context, req *Request, client *domain.Client) (*domain.Day, []domain.TimeSlot, error) {
	day, err := uc.dayRepo.GetDayByDate(ctx, req.Date)
	if err != nil {
		if errors.Is(err, dayRepo.ErrDayNotFound) {
			uc.logger.Warn("FindSlot: day %s not found", req.Date.Format(domain.DateFormat))
			return nil, nil, ErrDayNotFound
		}
		uc.logger.Error("FindSlot: failed to get day: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get day: %v", ErrInternal, err)
	}

	if err := checkDayAccess(day, client, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("FindSlot: day %s is closed for user=%d: %v", day.DateString(), client.ID, err)
		return nil, nil, err
	}

	slots, err := uc.dayRepo.ListSlots(ctx, day.ID)
	if err != nil {
		uc.logger.Error("FindSlot: failed to list slots of day %s: %v", day.DateString(), err)
		return nil, nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}
	if len(slots) > 0 {
		return day, slots, nil
	}

	unlock, err := uc.locker.Lock(ctx, day.DateString())
	if err != nil {
		uc.logger.Error("FindSlot: failed to lock day %s: %v", day.DateString(), err)
		return nil, nil, fmt.Errorf("%w: failed to lock day: %v", ErrInternal, err)
	}
	defer unlock()

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		locked, err := uc.dayRepo.GetDayByDateForUpdate(txCtx, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to lock day row: %v", ErrInternal, err)
		}

		current, err := uc.dayRepo.ListSlots(txCtx, locked.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}

		ensured, seeded, err := schedule.Ensure(*locked, current)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConsistency, err)
		}
		if !seeded {
			slots = ensured
			return nil
		}

		slots = make([]domain.TimeSlot, 0, len(ensured))
		for i := range ensured {
			created, err := uc.dayRepo.CreateSlot(txCtx, &ensured[i])
			if err != nil {
				return fmt.Errorf("%w: failed to create initial slot: %v", ErrInternal, err)
			}
			slots = append(slots, *created)
		}

		uc.logger.Info("FindSlot: seeded day %s with %s-%s", locked.DateString(), locked.WorkHourStart, locked.WorkHourEnd)
		return nil
	})

	if err != nil {
		uc.logger.Error("FindSlot: failed to ensure slots of day %s: %v", day.DateString(), err)
		return nil, nil, err
	}

	return day, slots, nil
}
