package models

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	dayRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/day"
)

// Request модели

// GetUserBookingsRequest запрос на получение записей клиента
type GetUserBookingsRequest struct {
	CallerID int64 // кто запрашивает (из X-User-ID)
	UserID   int64 // чьи записи
}

// Response модели

// BookingStageResponse этап записи клиента
type BookingStageResponse struct {
	SlotID    int64   `json:"slotId"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Procedure *string `json:"procedure,omitempty"` // пусто для этапа ожидания
	State     string  `json:"state"`               // BOOKED_BUSY, BOOKED_TRANSIT
}

// BookingListResponse ответ со списком этапов записей
type BookingListResponse struct {
	UserID   int64                  `json:"userId"`
	Bookings []BookingStageResponse `json:"bookings"`
}

// FromDatedSlots конвертирует слоты клиента в DTO
func FromDatedSlots(userID int64, slots []dayRepo.DatedSlot) *BookingListResponse {
	resp := &BookingListResponse{
		UserID:   userID,
		Bookings: make([]BookingStageResponse, 0, len(slots)),
	}
	for _, item := range slots {
		resp.Bookings = append(resp.Bookings, BookingStageResponse{
			SlotID:    item.Slot.ID,
			Date:      item.Date.Format(domain.DateFormat),
			StartTime: item.Slot.StartTime.String(),
			EndTime:   item.Slot.EndTime.String(),
			Procedure: item.Slot.Procedure,
			State:     string(item.Slot.State()),
		})
	}
	return resp
}
