package models

import "github.com/m04kA/SMC-SalonBookingService/internal/domain"

// ProcedureResponse процедура каталога
type ProcedureResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NameRu     string `json:"nameRu"`
	Complexity string `json:"complexity"`
	Kind       string `json:"kind"` // permanent, non_permanent
	// Длительности для атрибутов волос клиента, если они переданы
	Stages       []int `json:"stages,omitempty"`
	TotalMinutes int   `json:"totalMinutes,omitempty"`
}

// ProcedureListResponse ответ со списком процедур
type ProcedureListResponse struct {
	Procedures []ProcedureResponse `json:"procedures"`
}

// FromDomainProcedure конвертирует процедуру в DTO
func FromDomainProcedure(p domain.Procedure) ProcedureResponse {
	return ProcedureResponse{
		ID:         p.ID,
		Name:       p.Name,
		NameRu:     p.NameRu,
		Complexity: string(p.Complexity),
		Kind:       string(p.Kind),
	}
}
