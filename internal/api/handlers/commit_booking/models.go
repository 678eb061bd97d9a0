package commit_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	commitBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/commit_booking"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// CommitBookingRequest HTTP request model
type CommitBookingRequest struct {
	ProcedureID string `json:"procedureId"` // "haircut"
	StartTime   string `json:"startTime"`   // "10:00", из ответа /fit
	ExactFit    bool   `json:"exactFit"`    // из ответа /fit
	// Только для администратора, записывающего клиента
	HairLength  string `json:"hairLength,omitempty"`
	HairDensity string `json:"hairDensity,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Date          string       `json:"date"`
	ProcedureID   string       `json:"procedureId"`
	ProcedureName string       `json:"procedureName"`
	StartTime     string       `json:"startTime"`
	EndTime       string       `json:"endTime"`
	Slots         []BookedSlot `json:"slots"`
}

// BookedSlot этап записи
type BookedSlot struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	State     string `json:"state"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CommitBookingRequest) ToUseCaseRequest(userID int64, dateStr string) (*commitBooking.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	onBehalf, err := handlers.ParseHairAttributes(r.HairLength, r.HairDensity)
	if err != nil {
		return nil, fmt.Errorf("hair: %w", err)
	}

	return &commitBooking.Request{
		UserID:      userID,
		Date:        date,
		ProcedureID: r.ProcedureID,
		StartTime:   startTime,
		ExactFit:    r.ExactFit,
		OnBehalf:    onBehalf,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *commitBooking.Response) *BookingResponse {
	slots := make([]BookedSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = BookedSlot{
			ID:        slot.ID,
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			State:     string(slot.State),
		}
	}

	return &BookingResponse{
		Date:          resp.Date.Format(domain.DateFormat),
		ProcedureID:   resp.ProcedureID,
		ProcedureName: resp.ProcedureName,
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Slots:         slots,
	}
}
