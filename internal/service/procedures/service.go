package procedures

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/procedures/models"
)

// Service сервис чтения каталога процедур
type Service struct {
	catalog Catalog
}

// NewService создает новый экземпляр сервиса
func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// List возвращает видимые процедуры в порядке каталога.
// Если переданы атрибуты волос, к каждой процедуре добавляется план длительностей.
func (s *Service) List(hair *domain.HairAttributes) (*models.ProcedureListResponse, error) {
	procedures := s.catalog.List()
	resp := &models.ProcedureListResponse{
		Procedures: make([]models.ProcedureResponse, 0, len(procedures)),
	}

	for _, p := range procedures {
		item := models.FromDomainProcedure(p)
		if hair != nil {
			plan, err := s.catalog.Duration(p.ID, hair.Length, hair.Density)
			if err != nil {
				return nil, fmt.Errorf("List - duration of %s: %w", p.ID, err)
			}
			item.Stages = plan.Stages
			item.TotalMinutes = plan.TotalMinutes
		}
		resp.Procedures = append(resp.Procedures, item)
	}

	return resp, nil
}
