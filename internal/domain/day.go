package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// ErrInvalidWorkingHours is returned when a day has no positive working span
var ErrInvalidWorkingHours = errors.New("domain: day has no working hours")

// Day is a calendar date with working hours and an ordered slot collection
type Day struct {
	ID            int64
	Date          time.Time
	WorkHourStart types.TimeString
	WorkHourEnd   types.TimeString
	IsVisible     bool // requesters may see and book the day
	IsWeekend     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DateString returns the day's date as YYYY-MM-DD
func (d *Day) DateString() string {
	return d.Date.Format(DateFormat)
}

// WorkingMinutes returns work_hour_end - work_hour_start in minutes
func (d *Day) WorkingMinutes() int {
	start, end := d.WorkHourStart.Minutes(), d.WorkHourEnd.Minutes()
	if start < 0 || end < 0 {
		return 0
	}
	return end - start
}

// Validate checks the working hours are well-formed and form a positive span
func (d *Day) Validate() error {
	if err := d.WorkHourStart.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidWorkingHours, err)
	}
	if err := d.WorkHourEnd.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidWorkingHours, err)
	}
	if d.WorkingMinutes() <= 0 {
		return fmt.Errorf("%w: %s-%s", ErrInvalidWorkingHours, d.WorkHourStart, d.WorkHourEnd)
	}
	return nil
}

// IsBookableBy returns true if the requester may book on this day
func (d *Day) IsBookableBy(client *Client) bool {
	if d.IsVisible {
		return true
	}
	return client != nil && client.IsAdmin
}
