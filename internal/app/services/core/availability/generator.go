package availability

import (
	"sort"
	"time"

	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/dto/responses"
)

// GenerateInput carries everything one slot computation needs. Date must be
// midnight in the clinic's timezone; Now is captured once by the caller so a
// single response never straddles two instants.
type GenerateInput struct {
	Date     time.Time
	Rules    []models.WorkingHoursRule
	Occupied map[string]struct{}
	Now      time.Time
}

// GenerateSlots walks every active rule window for the day and emits one slot
// per duration step. A slot is emitted only when the full duration fits
// before the window's end. Slots are returned in ascending time order with no
// duplicate times; when two rules produce the same time the first evaluation
// wins.
func GenerateSlots(input GenerateInput) []responses.Slot {
	windows := buildRuleWindows(input.Rules)

	seen := make(map[string]struct{})
	slots := make([]responses.Slot, 0, 32)

	for _, window := range windows {
		for minute := window.Start.minutes(); minute+window.Duration <= window.End.minutes(); minute += window.Duration {
			timeOfDay := clockFromMinutes(minute).String()
			if _, dup := seen[timeOfDay]; dup {
				continue
			}
			seen[timeOfDay] = struct{}{}
			slots = append(slots, evaluateSlot(timeOfDay, minute, input))
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Time < slots[j].Time
	})
	return slots
}

// evaluateSlot applies the unavailability checks in priority order: an
// occupied time outranks a past time.
func evaluateSlot(timeOfDay string, minuteOfDay int, input GenerateInput) responses.Slot {
	if _, occupied := input.Occupied[timeOfDay]; occupied {
		return responses.UnavailableSlot(timeOfDay, responses.SlotReasonAlreadyBooked)
	}

	c := clockFromMinutes(minuteOfDay)
	year, month, day := input.Date.Date()
	slotStart := time.Date(year, month, day, c.H, c.M, 0, 0, input.Date.Location())
	if slotStart.Before(input.Now) {
		return responses.UnavailableSlot(timeOfDay, responses.SlotReasonTimePassed)
	}

	return responses.AvailableSlot(timeOfDay)
}
