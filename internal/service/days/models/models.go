package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

// Request модели

// CreateDayRequest запрос на создание рабочего дня
type CreateDayRequest struct {
	UserID        int64   `json:"-"`
	Date          string  `json:"date"`                    // YYYY-MM-DD
	WorkHourStart *string `json:"workHourStart,omitempty"` // HH:MM, по умолчанию из конфигурации
	WorkHourEnd   *string `json:"workHourEnd,omitempty"`   // HH:MM, по умолчанию из конфигурации
	IsVisible     bool    `json:"isVisible"`
	IsWeekend     bool    `json:"isWeekend"`
}

// UpdateDayRequest запрос на изменение флагов дня
// Все поля опциональны - обновляются только переданные значения
type UpdateDayRequest struct {
	UserID    int64     `json:"-"`
	Date      time.Time `json:"-"`
	IsVisible *bool     `json:"isVisible,omitempty"`
	IsWeekend *bool     `json:"isWeekend,omitempty"`
}

// Response модели

// DayResponse ответ с данными рабочего дня
type DayResponse struct {
	ID            int64     `json:"id"`
	Date          string    `json:"date"`
	WorkHourStart string    `json:"workHourStart"`
	WorkHourEnd   string    `json:"workHourEnd"`
	IsVisible     bool      `json:"isVisible"`
	IsWeekend     bool      `json:"isWeekend"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DayListResponse ответ со списком дней
type DayListResponse struct {
	Days []DayResponse `json:"days"`
}

// SlotResponse слот расписания дня
type SlotResponse struct {
	ID          int64   `json:"id"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	State       string  `json:"state"` // FREE, BOOKED_BUSY, BOOKED_TRANSIT
	Procedure   *string `json:"procedure,omitempty"`
	RequesterID *int64  `json:"requesterId,omitempty"`
	Available   bool    `json:"available"`
	Cancelled   bool    `json:"cancelled"`
}

// DayScheduleResponse день со всеми слотами по возрастанию времени
type DayScheduleResponse struct {
	Day          DayResponse    `json:"day"`
	Slots        []SlotResponse `json:"slots"`
	FreeMinutes  int            `json:"freeMinutes"`
	TotalMinutes int            `json:"totalMinutes"`
}

// Методы конвертации

// FromDomainDay конвертирует domain модель в DTO
func FromDomainDay(d *domain.Day) *DayResponse {
	if d == nil {
		return nil
	}

	return &DayResponse{
		ID:            d.ID,
		Date:          d.DateString(),
		WorkHourStart: d.WorkHourStart.String(),
		WorkHourEnd:   d.WorkHourEnd.String(),
		IsVisible:     d.IsVisible,
		IsWeekend:     d.IsWeekend,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// FromDomainDayList конвертирует список domain моделей в DTO
func FromDomainDayList(days []*domain.Day) *DayListResponse {
	resp := &DayListResponse{
		Days: make([]DayResponse, 0, len(days)),
	}

	for _, d := range days {
		if dayResp := FromDomainDay(d); dayResp != nil {
			resp.Days = append(resp.Days, *dayResp)
		}
	}

	return resp
}

// FromDomainSlot конвертирует слот в DTO
func FromDomainSlot(s domain.TimeSlot) SlotResponse {
	resp := SlotResponse{
		ID:        s.ID,
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		State:     string(s.State()),
		Available: s.Available,
		Cancelled: s.Cancelled,
	}
	if s.Procedure != nil {
		resp.Procedure = ptr.Ptr(*s.Procedure)
	}
	if s.RequesterID != nil {
		resp.RequesterID = ptr.Ptr(*s.RequesterID)
	}
	return resp
}
