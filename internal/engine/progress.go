package engine

import "log"

// Event is one progress step of a generation run. Step counters are
// monotonically increasing; Percentage is derived from Step/TotalSteps.
type Event struct {
	Step       int     `json:"step"`
	TotalSteps int     `json:"total_steps"`
	Message    string  `json:"message"`
	Percentage float64 `json:"percentage"`
}

// reporter emits events on a one-way channel without ever blocking the
// pipeline: a full or absent channel drops the event with a log line.
type reporter struct {
	ch    chan<- Event
	total int
	step  int
}

func newReporter(ch chan<- Event, total int) *reporter {
	return &reporter{ch: ch, total: total}
}

func (r *reporter) emit(message string) {
	r.step++
	ev := Event{
		Step:       r.step,
		TotalSteps: r.total,
		Message:    message,
		Percentage: float64(r.step) / float64(r.total) * 100,
	}
	if r.ch == nil {
		return
	}
	select {
	case r.ch <- ev:
	default:
		log.Printf("engine: progress channel full, dropping event %d/%d %q", ev.Step, ev.TotalSteps, ev.Message)
	}
}
