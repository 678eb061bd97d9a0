package days

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	dayRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/day"
	userClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonBookingService/internal/schedule"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/days/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// WorkingHours рабочие часы по умолчанию для новых дней
type WorkingHours struct {
	Start types.TimeString
	End   types.TimeString
}

// Service сервис управления рабочими днями салона
type Service struct {
	dayRepo      DayRepository
	userClient   UserServiceClient
	defaults     WorkingHours
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса рабочих дней
func NewService(
	dayRepo DayRepository,
	userClient UserServiceClient,
	defaults WorkingHours,
	logger Logger,
) *Service {
	if defaults.Start.IsZero() {
		defaults.Start = domain.DefaultWorkHourStart
	}
	if defaults.End.IsZero() {
		defaults.End = domain.DefaultWorkHourEnd
	}

	return &Service{
		dayRepo:      dayRepo,
		userClient:   userClient,
		defaults:     defaults,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CreateDay создает рабочий день
// Доступно только администраторам
func (s *Service) CreateDay(ctx context.Context, req *models.CreateDayRequest) (*models.DayResponse, error) {
	s.logger.Info("CreateDay: creating day %s by user=%d", req.Date, req.UserID)

	// 1. Проверяем права доступа
	if err := s.requireAdmin(ctx, req.UserID); err != nil {
		s.logger.Warn("CreateDay: %v", err)
		return nil, err
	}

	// 2. Собираем и валидируем день
	day, err := s.buildDay(req)
	if err != nil {
		s.logger.Warn("CreateDay: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем день; слоты будут созданы при первом поиске
	created, err := s.dayRepo.CreateDay(ctx, day)
	if err != nil {
		if errors.Is(err, dayRepo.ErrDayAlreadyExists) {
			s.logger.Warn("CreateDay: day %s already exists", req.Date)
			return nil, ErrDayAlreadyExists
		}
		s.logger.Error("CreateDay: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateDay: successfully created day id=%d (%s %s-%s)",
		created.ID, created.DateString(), created.WorkHourStart, created.WorkHourEnd)
	return models.FromDomainDay(created), nil
}

// ListVisibleDays возвращает дни, открытые для записи, начиная с завтрашнего
// Публичный метод - доступен всем
func (s *Service) ListVisibleDays(ctx context.Context) (*models.DayListResponse, error) {
	days, err := s.dayRepo.ListVisibleDays(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("ListVisibleDays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListVisibleDays - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDayList(days), nil
}

// GetDaySchedule возвращает день со всеми слотами
// Доступно только администраторам
func (s *Service) GetDaySchedule(ctx context.Context, userID int64, date time.Time) (*models.DayScheduleResponse, error) {
	if err := s.requireAdmin(ctx, userID); err != nil {
		s.logger.Warn("GetDaySchedule: %v", err)
		return nil, err
	}

	day, err := s.getDay(ctx, date)
	if err != nil {
		return nil, err
	}

	slots, err := s.dayRepo.ListSlots(ctx, day.ID)
	if err != nil {
		s.logger.Error("GetDaySchedule: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: GetDaySchedule - list slots: %v", ErrInternal, err)
	}

	if err := schedule.Verify(*day, slots); err != nil {
		s.logger.Error("GetDaySchedule: day %s is inconsistent: %v", day.DateString(), err)
	}

	resp := &models.DayScheduleResponse{
		Day:          *models.FromDomainDay(day),
		Slots:        make([]models.SlotResponse, 0, len(slots)),
		TotalMinutes: day.WorkingMinutes(),
	}
	for _, slot := range schedule.Sort(slots) {
		resp.Slots = append(resp.Slots, models.FromDomainSlot(slot))
		if slot.State() == domain.SlotFree {
			resp.FreeMinutes += slot.DurationMinutes()
		}
	}
	if len(slots) == 0 {
		// день еще не засеян: все рабочее время свободно
		resp.FreeMinutes = day.WorkingMinutes()
	}

	return resp, nil
}

// UpdateDay изменяет флаги видимости и выходного дня
// Доступно только администраторам
func (s *Service) UpdateDay(ctx context.Context, req *models.UpdateDayRequest) (*models.DayResponse, error) {
	s.logger.Info("UpdateDay: updating day %s by user=%d", req.Date.Format(domain.DateFormat), req.UserID)

	if err := s.requireAdmin(ctx, req.UserID); err != nil {
		s.logger.Warn("UpdateDay: %v", err)
		return nil, err
	}

	updated, err := s.dayRepo.UpdateDayFlags(ctx, req.Date, dayRepo.FlagsUpdate{
		IsVisible: req.IsVisible,
		IsWeekend: req.IsWeekend,
	})
	if err != nil {
		if errors.Is(err, dayRepo.ErrDayNotFound) {
			return nil, ErrDayNotFound
		}
		s.logger.Error("UpdateDay: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateDay: day %s visible=%t weekend=%t", updated.DateString(), updated.IsVisible, updated.IsWeekend)
	return models.FromDomainDay(updated), nil
}

func (s *Service) getDay(ctx context.Context, date time.Time) (*domain.Day, error) {
	day, err := s.dayRepo.GetDayByDate(ctx, date)
	if err != nil {
		if errors.Is(err, dayRepo.ErrDayNotFound) {
			return nil, ErrDayNotFound
		}
		s.logger.Error("getDay: repository error: %v", err)
		return nil, fmt.Errorf("%w: getDay - repository error: %v", ErrInternal, err)
	}
	return day, nil
}

// requireAdmin проверяет, что пользователь - администратор салона
func (s *Service) requireAdmin(ctx context.Context, userID int64) error {
	client, err := s.userClient.GetClient(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			return fmt.Errorf("%w: user=%d is unknown", ErrAccessDenied, userID)
		}
		return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}
	if !client.IsAdmin {
		return fmt.Errorf("%w: user=%d is not an admin", ErrAccessDenied, userID)
	}
	return nil
}

func (s *Service) buildDay(req *models.CreateDayRequest) (*domain.Day, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	day := &domain.Day{
		Date:          date,
		WorkHourStart: s.defaults.Start,
		WorkHourEnd:   s.defaults.End,
		IsVisible:     req.IsVisible,
		IsWeekend:     req.IsWeekend,
	}

	if req.WorkHourStart != nil {
		if day.WorkHourStart, err = types.NewTimeStringFromString(*req.WorkHourStart); err != nil {
			return nil, fmt.Errorf("%w: workHourStart: %v", ErrInvalidInput, err)
		}
	}
	if req.WorkHourEnd != nil {
		if day.WorkHourEnd, err = types.NewTimeStringFromString(*req.WorkHourEnd); err != nil {
			return nil, fmt.Errorf("%w: workHourEnd: %v", ErrInvalidInput, err)
		}
	}

	if err := day.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return day, nil
}
