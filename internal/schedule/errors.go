package schedule

import "errors"

var (
	// ErrBookingConflict target slot no longer exists or changed since find-fit; caller retries from find-fit
	ErrBookingConflict = errors.New("schedule: booking conflict")

	// ErrConsistency day or request violates an invariant that should never break
	ErrConsistency = errors.New("schedule: consistency violation")
)
