package find_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	findSlot "github.com/m04kA/SMC-SalonBookingService/internal/usecase/find_slot"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// ConfirmRequest HTTP request model шага подтверждения
type ConfirmRequest struct {
	ProcedureID string `json:"procedureId"`
	StartTime   string `json:"startTime"` // предложенное на шаге /fit время
	HairLength  string `json:"hairLength,omitempty"`
	HairDensity string `json:"hairDensity,omitempty"`
}

// FitResponse HTTP response model
type FitResponse struct {
	Date          string  `json:"date"`
	ProcedureID   string  `json:"procedureId"`
	ProcedureName string  `json:"procedureName"`
	Available     bool    `json:"available"`
	StartTime     *string `json:"startTime,omitempty"`
	EndTime       *string `json:"endTime,omitempty"`
	ExactFit      bool    `json:"exactFit"`
	Stages        []int   `json:"stages"`
	TotalMinutes  int     `json:"totalMinutes"`
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(userID int64, dateStr, procedureID, proposedStart, hairLength, hairDensity string) (*findSlot.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	req := &findSlot.Request{
		UserID:      userID,
		Date:        date,
		ProcedureID: procedureID,
	}

	if proposedStart != "" {
		start, err := types.NewTimeStringFromString(proposedStart)
		if err != nil {
			return nil, fmt.Errorf("proposedStart: %w", err)
		}
		req.ProposedStart = &start
	}

	req.OnBehalf, err = handlers.ParseHairAttributes(hairLength, hairDensity)
	if err != nil {
		return nil, fmt.Errorf("hair: %w", err)
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findSlot.Response) *FitResponse {
	out := &FitResponse{
		Date:          formatDate(resp.Date),
		ProcedureID:   resp.ProcedureID,
		ProcedureName: resp.ProcedureName,
		Available:     resp.Available,
		ExactFit:      resp.ExactFit,
		Stages:        resp.Stages,
		TotalMinutes:  resp.TotalMinutes,
	}
	if resp.Available {
		start, end := resp.StartTime.String(), resp.EndTime.String()
		out.StartTime = &start
		out.EndTime = &end
	}
	return out
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateFormat)
}
