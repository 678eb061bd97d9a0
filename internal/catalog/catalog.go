package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Catalog неизменяемый реестр процедур салона.
// Строится один раз при старте и передается в usecase'ы явно.
type Catalog struct {
	procedures []domain.Procedure
	byID       map[string]int
}

// New строит каталог и проверяет каждую процедуру.
// Порядок procedures сохраняется в List().
func New(procedures []domain.Procedure) (*Catalog, error) {
	if len(procedures) == 0 {
		return nil, fmt.Errorf("%w: New - empty procedure list", ErrInvalidCatalog)
	}

	c := &Catalog{
		procedures: make([]domain.Procedure, 0, len(procedures)),
		byID:       make(map[string]int, len(procedures)),
	}

	for _, p := range procedures {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: New - validate: %v", ErrInvalidCatalog, err)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: New - duplicate procedure id %q", ErrInvalidCatalog, p.ID)
		}
		c.byID[p.ID] = len(c.procedures)
		c.procedures = append(c.procedures, p)
	}

	return c, nil
}

// Duration возвращает план длительностей процедуры для атрибутов волос клиента
func (c *Catalog) Duration(procedureID string, length domain.HairLength, density domain.HairDensity) (domain.DurationPlan, error) {
	p, err := c.Get(procedureID)
	if err != nil {
		return domain.DurationPlan{}, err
	}

	plan, err := p.Plan(length, density)
	if err != nil {
		if errors.Is(err, domain.ErrDurationNotConfigured) {
			return domain.DurationPlan{}, fmt.Errorf("%w: Duration - %s: %v", ErrDurationNotConfigured, procedureID, err)
		}
		return domain.DurationPlan{}, fmt.Errorf("%w: Duration - %s: %v", ErrConfiguration, procedureID, err)
	}

	return plan, nil
}

// Get возвращает процедуру по идентификатору (в том числе скрытую)
func (c *Catalog) Get(procedureID string) (domain.Procedure, error) {
	idx, ok := c.byID[procedureID]
	if !ok {
		return domain.Procedure{}, fmt.Errorf("%w: %q", ErrProcedureNotFound, procedureID)
	}
	return c.procedures[idx], nil
}

// List возвращает видимые процедуры в порядке реестра
func (c *Catalog) List() []domain.Procedure {
	result := make([]domain.Procedure, 0, len(c.procedures))
	for _, p := range c.procedures {
		if p.Hidden {
			continue
		}
		result = append(result, p)
	}
	return result
}
