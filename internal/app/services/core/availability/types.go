package availability

import (
	"fmt"
	"time"

	"agendaclin-service/internal/app/models"
)

// clock holds a local wall time (hour and minute).
type clock struct {
	H int
	M int
}

func (c clock) minutes() int {
	return c.H*60 + c.M
}

func (c clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.H, c.M)
}

func clockFromMinutes(minutes int) clock {
	return clock{H: minutes / 60, M: minutes % 60}
}

// ruleWindow is one validated working-hours window ready for slot generation.
// Start is inclusive; End is the exclusive boundary a slot plus its duration
// must not cross.
type ruleWindow struct {
	Start    clock
	End      clock
	Duration int
}

func parseClock(value string) (clock, bool) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return clock{}, false
	}
	return clock{H: parsed.Hour(), M: parsed.Minute()}, true
}

// buildRuleWindows converts persisted rules into windows, skipping rules that
// are inactive or malformed. Bad data written by another path must not take
// the whole availability computation down.
func buildRuleWindows(rules []models.WorkingHoursRule) []ruleWindow {
	windows := make([]ruleWindow, 0, len(rules))
	for _, rule := range rules {
		if !rule.Active || rule.SlotDurationMinutes <= 0 {
			continue
		}
		start, ok := parseClock(rule.StartTime)
		if !ok {
			continue
		}
		end, ok := parseClock(rule.EndTime)
		if !ok {
			continue
		}
		if start.minutes() >= end.minutes() {
			continue
		}
		windows = append(windows, ruleWindow{
			Start:    start,
			End:      end,
			Duration: rule.SlotDurationMinutes,
		})
	}
	return windows
}
