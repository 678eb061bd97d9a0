package bookings

import (
	"context"
	"errors"
	"fmt"

	userClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

// Service сервис просмотра записей клиентов
type Service struct {
	slotRepo     SlotRepository
	userClient   UserServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	slotRepo SlotRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		userClient:   userClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetUserBookings возвращает предстоящие этапы записей клиента, начиная с сегодняшнего дня.
// Клиент видит только свои записи; администратор - записи любого клиента.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d by caller=%d", req.UserID, req.CallerID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if err := s.checkAccess(ctx, req.CallerID, req.UserID); err != nil {
		s.logger.Warn("GetUserBookings: %v", err)
		return nil, err
	}

	slots, err := s.slotRepo.ListRequesterSlots(ctx, req.UserID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d stages for user=%d", len(slots), req.UserID)
	return models.FromDatedSlots(req.UserID, slots), nil
}

// checkAccess проверяет права на просмотр записей пользователя
func (s *Service) checkAccess(ctx context.Context, callerID, userID int64) error {
	if callerID == userID {
		return nil
	}

	caller, err := s.userClient.GetClient(ctx, callerID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			return fmt.Errorf("%w: caller=%d is unknown", ErrAccessDenied, callerID)
		}
		return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}
	if !caller.IsAdmin {
		return fmt.Errorf("%w: caller=%d may not view bookings of user=%d", ErrAccessDenied, callerID, userID)
	}
	return nil
}
