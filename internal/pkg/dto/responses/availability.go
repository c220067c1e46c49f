package responses

// SlotReason is the closed set of reasons a slot can be unavailable.
type SlotReason string

const (
	SlotReasonAlreadyBooked SlotReason = "already booked"
	SlotReasonTimePassed    SlotReason = "time has passed"
)

// Slot is one discrete bookable time point on a date. Reason is present only
// when Available is false.
type Slot struct {
	Time      string      `json:"time"`
	Available bool        `json:"available"`
	Reason    *SlotReason `json:"reason,omitempty"`
}

// UnavailableSlot builds a Slot labeled with the given reason.
func UnavailableSlot(timeOfDay string, reason SlotReason) Slot {
	return Slot{Time: timeOfDay, Available: false, Reason: &reason}
}

// AvailableSlot builds an open Slot.
func AvailableSlot(timeOfDay string) Slot {
	return Slot{Time: timeOfDay, Available: true}
}
