package domain

import "github.com/m04kA/SMC-SalonBookingService/pkg/types"

// SlotState is the booking state of a time slot
type SlotState string

const (
	// SlotFree is available and unassigned
	SlotFree SlotState = "FREE"
	// SlotBookedBusy is reserved for a requester and needs staff attention
	SlotBookedBusy SlotState = "BOOKED_BUSY"
	// SlotBookedTransit is the wait stage of a multi-stage procedure: assigned, but still available
	SlotBookedTransit SlotState = "BOOKED_TRANSIT"
)

// TimeSlot is a contiguous interval within a Day, either free or booked
type TimeSlot struct {
	ID          int64
	DayID       int64
	StartTime   types.TimeString
	EndTime     types.TimeString
	Procedure   *string // procedure label, set on busy stages only
	RequesterID *int64
	Available   bool
	Cancelled   bool
}

// State derives the slot's state from the available flag and assignment
func (s *TimeSlot) State() SlotState {
	switch {
	case !s.Available:
		return SlotBookedBusy
	case s.RequesterID != nil:
		return SlotBookedTransit
	default:
		return SlotFree
	}
}

// IsBookable returns true if the slot can be consumed by a new booking
func (s *TimeSlot) IsBookable() bool {
	return s.Available && !s.Cancelled
}

// IsOwnedBy returns true if the slot is assigned to the requester
func (s *TimeSlot) IsOwnedBy(requesterID int64) bool {
	return s.RequesterID != nil && *s.RequesterID == requesterID
}

// DurationMinutes returns the slot span in minutes
func (s *TimeSlot) DurationMinutes() int {
	return s.EndTime.Sub(s.StartTime)
}
