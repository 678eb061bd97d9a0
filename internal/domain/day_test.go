package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

func TestDayWorkingMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		minutes int
		wantErr bool
	}{
		{name: "default hours", start: "09:00", end: "18:00", minutes: 540},
		{name: "empty span", start: "10:00", end: "10:00", minutes: 0, wantErr: true},
		{name: "inverted", start: "18:00", end: "09:00", minutes: -540, wantErr: true},
		{name: "malformed", start: "9am", end: "18:00", minutes: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := Day{WorkHourStart: typesTime(tt.start), WorkHourEnd: typesTime(tt.end)}
			assert.Equal(t, tt.minutes, day.WorkingMinutes())
			if tt.wantErr {
				assert.ErrorIs(t, day.Validate(), ErrInvalidWorkingHours)
			} else {
				assert.NoError(t, day.Validate())
			}
		})
	}
}

func TestDayIsBookableBy(t *testing.T) {
	hidden := Day{IsVisible: false}
	assert.False(t, hidden.IsBookableBy(&Client{ID: 1}))
	assert.True(t, hidden.IsBookableBy(&Client{ID: 2, IsAdmin: true}))
	assert.False(t, hidden.IsBookableBy(nil))

	visible := Day{IsVisible: true}
	assert.True(t, visible.IsBookableBy(&Client{ID: 1}))
}

func TestTimeSlotState(t *testing.T) {
	free := TimeSlot{StartTime: "10:00", EndTime: "18:00", Available: true}
	busy := TimeSlot{StartTime: "09:00", EndTime: "10:00", Procedure: ptr.Ptr("Haircut"), RequesterID: ptr.Ptr(int64(7))}
	transit := TimeSlot{StartTime: "10:10", EndTime: "10:50", RequesterID: ptr.Ptr(int64(7)), Available: true}

	assert.Equal(t, SlotFree, free.State())
	assert.Equal(t, SlotBookedBusy, busy.State())
	assert.Equal(t, SlotBookedTransit, transit.State())

	assert.Equal(t, 480, free.DurationMinutes())
	assert.Equal(t, 40, transit.DurationMinutes())
	assert.True(t, transit.IsOwnedBy(7))
	assert.False(t, free.IsOwnedBy(7))
	assert.True(t, transit.IsBookable())
	assert.False(t, busy.IsBookable())
}

func typesTime(s string) types.TimeString {
	return types.TimeString(s)
}
