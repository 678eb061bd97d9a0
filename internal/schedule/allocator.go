package schedule

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Seed returns the initial slot list of a day: one FREE slot over the working hours
func Seed(day domain.Day) ([]domain.TimeSlot, error) {
	if err := day.Validate(); err != nil {
		return nil, fmt.Errorf("%w: Seed - day %s: %v", ErrConsistency, day.DateString(), err)
	}

	return []domain.TimeSlot{{
		DayID:     day.ID,
		StartTime: day.WorkHourStart,
		EndTime:   day.WorkHourEnd,
		Available: true,
	}}, nil
}

// Ensure seeds the day when it has no slots yet; seeded reports whether Seed was applied
func Ensure(day domain.Day, slots []domain.TimeSlot) (result []domain.TimeSlot, seeded bool, err error) {
	if len(slots) > 0 {
		return slots, false, nil
	}
	result, err = Seed(day)
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// Sort orders slots by start time; equal starts keep their relative order
func Sort(slots []domain.TimeSlot) []domain.TimeSlot {
	sorted := make([]domain.TimeSlot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.IsBefore(sorted[j].StartTime)
	})
	return sorted
}

// FreeSlots returns bookable slots (FREE and transit) sorted by start time
func FreeSlots(slots []domain.TimeSlot) []domain.TimeSlot {
	free := make([]domain.TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.IsBookable() {
			free = append(free, s)
		}
	}
	return Sort(free)
}

// eligible applies the ownership rule to a bookable slot
func (p Policy) eligible(slot domain.TimeSlot, requesterID int64) bool {
	if slot.IsOwnedBy(requesterID) {
		return !p.SkipOwnTransit
	}
	return true
}

// FindFit returns the earliest eligible slot whose span is at least totalMinutes.
// false means no availability.
func FindFit(slots []domain.TimeSlot, totalMinutes int, requesterID int64, policy Policy) (Fit, bool) {
	if totalMinutes <= 0 {
		return Fit{}, false
	}

	for _, slot := range FreeSlots(slots) {
		if !policy.eligible(slot, requesterID) {
			continue
		}

		span := slot.DurationMinutes()
		if span < totalMinutes {
			continue
		}

		end, err := slot.StartTime.AddMinutes(totalMinutes)
		if err != nil {
			continue
		}

		return Fit{
			Start:    slot.StartTime,
			End:      end,
			ExactFit: span == totalMinutes,
			Slot:     slot,
		}, true
	}

	return Fit{}, false
}

// Commit computes the slot mutation for a booking.
//
// The bookable slot starting exactly at req.Start is replaced by one slot per stage:
// odd stages are busy (requester and procedure label), even stages are transit
// (available, requester, no label). Unless the fit is exact, a FREE slot covers
// the rest of the consumed slot. The input is not modified.
func Commit(slots []domain.TimeSlot, req CommitRequest) (CommitPlan, error) {
	if len(req.Stages) == 0 {
		return CommitPlan{}, fmt.Errorf("%w: Commit - empty stage list", ErrConsistency)
	}
	for i, d := range req.Stages {
		if d < domain.MinStageMinutes {
			return CommitPlan{}, fmt.Errorf("%w: Commit - stage %d has %d minutes", ErrConsistency, i+1, d)
		}
	}

	target, ok := findAt(slots, req.Start)
	if !ok {
		return CommitPlan{}, fmt.Errorf("%w: Commit - no bookable slot at %s", ErrBookingConflict, req.Start)
	}
	if !req.Policy.eligible(target, req.RequesterID) {
		return CommitPlan{}, fmt.Errorf("%w: Commit - slot at %s is the requester's own transit",
			ErrBookingConflict, req.Start)
	}

	span := target.DurationMinutes()
	total := req.TotalMinutes()
	switch {
	case total > span:
		return CommitPlan{}, fmt.Errorf("%w: Commit - slot %s-%s is shorter than %d minutes",
			ErrBookingConflict, target.StartTime, target.EndTime, total)
	case req.ExactFit != (total == span):
		return CommitPlan{}, fmt.Errorf("%w: Commit - slot %s-%s changed since fit was computed",
			ErrBookingConflict, target.StartTime, target.EndTime)
	}

	created := make([]domain.TimeSlot, 0, len(req.Stages)+1)
	cursor := target.StartTime
	for i, d := range req.Stages {
		end, err := cursor.AddMinutes(d)
		if err != nil {
			return CommitPlan{}, fmt.Errorf("%w: Commit - stage %d: %v", ErrConsistency, i+1, err)
		}

		stage := domain.TimeSlot{
			DayID:       target.DayID,
			StartTime:   cursor,
			EndTime:     end,
			RequesterID: ptr.Ptr(req.RequesterID),
		}
		if i%2 == 0 {
			stage.Procedure = ptr.Ptr(req.Procedure)
		} else {
			stage.Available = true
		}

		created = append(created, stage)
		cursor = end
	}

	if !req.ExactFit {
		created = append(created, domain.TimeSlot{
			DayID:     target.DayID,
			StartTime: cursor,
			EndTime:   target.EndTime,
			Available: true,
		})
	}

	return CommitPlan{Removed: target, Created: created}, nil
}

// Apply returns slots with the plan applied, sorted by start time
func Apply(slots []domain.TimeSlot, plan CommitPlan) []domain.TimeSlot {
	result := make([]domain.TimeSlot, 0, len(slots)+len(plan.Created))
	for _, s := range slots {
		if s.StartTime.Equal(plan.Removed.StartTime) && s.IsBookable() {
			continue
		}
		result = append(result, s)
	}
	result = append(result, plan.Created...)
	return Sort(result)
}

// Verify checks the partition and conservation invariants of a day's slots
func Verify(day domain.Day, slots []domain.TimeSlot) error {
	if err := day.Validate(); err != nil {
		return fmt.Errorf("%w: Verify - day %s: %v", ErrConsistency, day.DateString(), err)
	}
	if len(slots) == 0 {
		return nil
	}

	sorted := Sort(slots)
	cursor := day.WorkHourStart
	total := 0
	for _, s := range sorted {
		if s.DayID != day.ID {
			return fmt.Errorf("%w: Verify - slot %s belongs to day %d", ErrConsistency, s.StartTime, s.DayID)
		}
		if !s.StartTime.Equal(cursor) {
			return fmt.Errorf("%w: Verify - slot starts at %s, expected %s", ErrConsistency, s.StartTime, cursor)
		}
		if s.DurationMinutes() <= 0 {
			return fmt.Errorf("%w: Verify - slot %s-%s is empty", ErrConsistency, s.StartTime, s.EndTime)
		}
		total += s.DurationMinutes()
		cursor = s.EndTime
	}

	if total != day.WorkingMinutes() || !cursor.Equal(day.WorkHourEnd) {
		return fmt.Errorf("%w: Verify - slots cover %d minutes ending %s, day has %d ending %s",
			ErrConsistency, total, cursor, day.WorkingMinutes(), day.WorkHourEnd)
	}
	return nil
}

func findAt(slots []domain.TimeSlot, start types.TimeString) (domain.TimeSlot, bool) {
	for _, s := range slots {
		if s.IsBookable() && s.StartTime.Equal(start) {
			return s, true
		}
	}
	return domain.TimeSlot{}, false
}
