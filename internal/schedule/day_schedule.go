package schedule

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// DaySchedule in-memory aggregate of a day and its slots.
// Not safe for concurrent use; callers serialize access per day.
type DaySchedule struct {
	Day    domain.Day
	Slots  []domain.TimeSlot
	Policy Policy
}

// NewDaySchedule wraps a day and its current slots
func NewDaySchedule(day domain.Day, slots []domain.TimeSlot, policy Policy) *DaySchedule {
	return &DaySchedule{Day: day, Slots: Sort(slots), Policy: policy}
}

// EnsureSlots seeds an empty day and returns its bookable slots
func (s *DaySchedule) EnsureSlots() ([]domain.TimeSlot, error) {
	slots, _, err := Ensure(s.Day, s.Slots)
	if err != nil {
		return nil, err
	}
	s.Slots = slots
	return FreeSlots(s.Slots), nil
}

// FindFit ensures slots and searches the earliest fit for the requester
func (s *DaySchedule) FindFit(totalMinutes int, requesterID int64) (Fit, bool, error) {
	if _, err := s.EnsureSlots(); err != nil {
		return Fit{}, false, err
	}
	fit, ok := FindFit(s.Slots, totalMinutes, requesterID, s.Policy)
	return fit, ok, nil
}

// Commit applies a booking to the in-memory slot list under the schedule's policy
func (s *DaySchedule) Commit(req CommitRequest) (CommitPlan, error) {
	req.Policy = s.Policy
	plan, err := Commit(s.Slots, req)
	if err != nil {
		return CommitPlan{}, err
	}
	s.Slots = Apply(s.Slots, plan)
	return plan, nil
}
