package schedule

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Policy eligibility rules for find-fit
type Policy struct {
	// SkipOwnTransit excludes the requester's own transit slots from candidates.
	// By default a requester may re-enter their own wait window.
	SkipOwnTransit bool
}

// Fit result of a successful find-fit
type Fit struct {
	Start    types.TimeString
	End      types.TimeString
	ExactFit bool
	Slot     domain.TimeSlot // candidate slot that will be consumed
}

// CommitRequest booking to apply to a day's slots
type CommitRequest struct {
	RequesterID int64
	Stages      []int // ordered stage durations in minutes
	Start       types.TimeString
	ExactFit    bool
	Procedure   string // label stored on busy stages
	Policy      Policy // eligibility rules for the target slot
}

// TotalMinutes sum of stage durations
func (r CommitRequest) TotalMinutes() int {
	total := 0
	for _, d := range r.Stages {
		total += d
	}
	return total
}

// CommitPlan slot mutation produced by Commit: Removed is replaced by Created
type CommitPlan struct {
	Removed domain.TimeSlot
	Created []domain.TimeSlot
}

// Booked returns the stage slots of the plan, without the trailing free slot
func (p CommitPlan) Booked() []domain.TimeSlot {
	result := make([]domain.TimeSlot, 0, len(p.Created))
	for _, s := range p.Created {
		if s.State() != domain.SlotFree {
			result = append(result, s)
		}
	}
	return result
}
