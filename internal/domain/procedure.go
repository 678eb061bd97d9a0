package domain

import (
	"errors"
	"fmt"
)

// ErrDurationNotConfigured is returned when a duration table has no entry for a (density, length) pair
var ErrDurationNotConfigured = errors.New("domain: procedure duration not configured")

// Complexity is the procedure difficulty tier
type Complexity string

const (
	ComplexityEasy      Complexity = "EASY"
	ComplexityAverage   Complexity = "AVERAGE"
	ComplexityDifficult Complexity = "DIFFICULT"
)

// Validate returns an error for an unknown complexity tier
func (c Complexity) Validate() error {
	switch c {
	case ComplexityEasy, ComplexityAverage, ComplexityDifficult:
		return nil
	default:
		return fmt.Errorf("unknown complexity %q", string(c))
	}
}

// ProcedureKind selects how a procedure's duration is computed
type ProcedureKind string

const (
	// KindPermanent is a single continuous stage
	KindPermanent ProcedureKind = "permanent"
	// KindNonPermanent is active stage, wait stage, active stage
	KindNonPermanent ProcedureKind = "non_permanent"
)

// DurationTable maps (density, length) to minutes
type DurationTable map[HairDensity]map[HairLength]int

// Lookup returns minutes for the pair; both keys must be present
func (t DurationTable) Lookup(density HairDensity, length HairLength) (int, error) {
	byLength, ok := t[density]
	if !ok {
		return 0, fmt.Errorf("%w: density %s", ErrDurationNotConfigured, density)
	}
	minutes, ok := byLength[length]
	if !ok {
		return 0, fmt.Errorf("%w: density %s, length %s", ErrDurationNotConfigured, density, length)
	}
	return minutes, nil
}

// Validate checks the table is populated for every supported pair with positive values
func (t DurationTable) Validate() error {
	for _, density := range HairDensities {
		for _, length := range HairLengths {
			minutes, err := t.Lookup(density, length)
			if err != nil {
				return err
			}
			if minutes < MinStageMinutes {
				return fmt.Errorf("%w: density %s, length %s has %d minutes",
					ErrDurationNotConfigured, density, length, minutes)
			}
		}
	}
	return nil
}

// UniformTable returns a table with the same duration for every pair
func UniformTable(minutes int) DurationTable {
	table := make(DurationTable, len(HairDensities))
	for _, density := range HairDensities {
		table[density] = make(map[HairLength]int, len(HairLengths))
		for _, length := range HairLengths {
			table[density][length] = minutes
		}
	}
	return table
}

// Procedure is a salon service with its duration rules.
//
// Permanent procedures use Durations, or FixedMinutes when the duration does not
// depend on hair attributes (extensions by area). Non-permanent procedures use
// Stage1, WaitMinutes and Stage3.
type Procedure struct {
	ID         string
	Name       string
	NameRu     string
	Complexity Complexity
	Kind       ProcedureKind
	Hidden     bool

	Durations    DurationTable
	FixedMinutes int

	Stage1      DurationTable
	WaitMinutes int
	Stage3      DurationTable
}

// DurationPlan is the total duration and ordered stage durations of one booking
type DurationPlan struct {
	TotalMinutes int
	Stages       []int
}

// IsMultiStage returns true if the plan has a wait stage
func (p DurationPlan) IsMultiStage() bool {
	return len(p.Stages) > 1
}

// Plan computes the duration plan for the given hair attributes
func (p *Procedure) Plan(length HairLength, density HairDensity) (DurationPlan, error) {
	if err := length.Validate(); err != nil {
		return DurationPlan{}, fmt.Errorf("%w: %v", ErrDurationNotConfigured, err)
	}
	if err := density.Validate(); err != nil {
		return DurationPlan{}, fmt.Errorf("%w: %v", ErrDurationNotConfigured, err)
	}

	switch p.Kind {
	case KindPermanent:
		if p.FixedMinutes > 0 {
			return DurationPlan{TotalMinutes: p.FixedMinutes, Stages: []int{p.FixedMinutes}}, nil
		}
		minutes, err := p.Durations.Lookup(density, length)
		if err != nil {
			return DurationPlan{}, err
		}
		return DurationPlan{TotalMinutes: minutes, Stages: []int{minutes}}, nil

	case KindNonPermanent:
		stage1, err := p.Stage1.Lookup(density, length)
		if err != nil {
			return DurationPlan{}, err
		}
		stage3, err := p.Stage3.Lookup(density, length)
		if err != nil {
			return DurationPlan{}, err
		}
		return DurationPlan{
			TotalMinutes: stage1 + p.WaitMinutes + stage3,
			Stages:       []int{stage1, p.WaitMinutes, stage3},
		}, nil

	default:
		return DurationPlan{}, fmt.Errorf("%w: unknown kind %q", ErrDurationNotConfigured, string(p.Kind))
	}
}

// Validate checks the procedure definition is complete
func (p *Procedure) Validate() error {
	if p.ID == "" {
		return errors.New("procedure id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("procedure %s: name is required", p.ID)
	}
	if err := p.Complexity.Validate(); err != nil {
		return fmt.Errorf("procedure %s: %w", p.ID, err)
	}

	switch p.Kind {
	case KindPermanent:
		if p.FixedMinutes > 0 {
			return nil
		}
		if err := p.Durations.Validate(); err != nil {
			return fmt.Errorf("procedure %s: %w", p.ID, err)
		}
	case KindNonPermanent:
		if err := p.Stage1.Validate(); err != nil {
			return fmt.Errorf("procedure %s: stage 1: %w", p.ID, err)
		}
		if p.WaitMinutes < MinStageMinutes {
			return fmt.Errorf("procedure %s: wait stage must be positive", p.ID)
		}
		if err := p.Stage3.Validate(); err != nil {
			return fmt.Errorf("procedure %s: stage 3: %w", p.ID, err)
		}
	default:
		return fmt.Errorf("procedure %s: unknown kind %q", p.ID, string(p.Kind))
	}

	return nil
}
