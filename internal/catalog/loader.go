package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// fileTable таблица в файле: густота -> длина -> минуты
type fileTable map[string]map[string]int

type fileProcedure struct {
	ID           string    `toml:"id"`
	Name         string    `toml:"name"`
	NameRu       string    `toml:"name_ru"`
	Complexity   string    `toml:"complexity"`
	Kind         string    `toml:"kind"`
	Hidden       bool      `toml:"hidden"`
	FixedMinutes int       `toml:"fixed_minutes"`
	WaitMinutes  int       `toml:"wait_minutes"`
	Durations    fileTable `toml:"durations"`
	Stage1       fileTable `toml:"stage1"`
	Stage3       fileTable `toml:"stage3"`
}

type catalogFile struct {
	Procedures []fileProcedure `toml:"procedure"`
}

// LoadFile читает каталог из TOML-файла
//
// Формат:
//
//	[[procedure]]
//	id = "haircut"
//	name = "Haircut"
//	complexity = "EASY"
//	kind = "permanent"
//	[procedure.durations]
//	THIN = { SHORT = 60, MEDIUM = 60, LONG = 90 }
func LoadFile(path string) (*Catalog, error) {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("%w: LoadFile - decode %s: %v", ErrInvalidCatalog, path, err)
	}

	procedures := make([]domain.Procedure, 0, len(file.Procedures))
	for _, fp := range file.Procedures {
		p, err := fp.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: LoadFile - procedure %q: %v", ErrInvalidCatalog, fp.ID, err)
		}
		procedures = append(procedures, p)
	}

	return New(procedures)
}

func (fp fileProcedure) toDomain() (domain.Procedure, error) {
	p := domain.Procedure{
		ID:           fp.ID,
		Name:         fp.Name,
		NameRu:       fp.NameRu,
		Complexity:   domain.Complexity(fp.Complexity),
		Kind:         domain.ProcedureKind(fp.Kind),
		Hidden:       fp.Hidden,
		FixedMinutes: fp.FixedMinutes,
		WaitMinutes:  fp.WaitMinutes,
	}

	var err error
	if p.Durations, err = fp.Durations.toDomain(); err != nil {
		return domain.Procedure{}, fmt.Errorf("durations: %w", err)
	}
	if p.Stage1, err = fp.Stage1.toDomain(); err != nil {
		return domain.Procedure{}, fmt.Errorf("stage1: %w", err)
	}
	if p.Stage3, err = fp.Stage3.toDomain(); err != nil {
		return domain.Procedure{}, fmt.Errorf("stage3: %w", err)
	}

	return p, nil
}

func (ft fileTable) toDomain() (domain.DurationTable, error) {
	if ft == nil {
		return nil, nil
	}

	result := make(domain.DurationTable, len(ft))
	for densityKey, byLength := range ft {
		density, err := domain.ParseHairDensity(densityKey)
		if err != nil {
			return nil, err
		}
		row := make(map[domain.HairLength]int, len(byLength))
		for lengthKey, minutes := range byLength {
			length, err := domain.ParseHairLength(lengthKey)
			if err != nil {
				return nil, err
			}
			row[length] = minutes
		}
		result[density] = row
	}
	return result, nil
}
