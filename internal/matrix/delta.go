package matrix

import "fmt"

// Kind classifies a brand's day-over-day rank movement.
type Kind int

const (
	New Kind = iota
	Up
	Down
	Unchanged
)

// Delta is one brand's movement between yesterday's rank and today's.
type Delta struct {
	Kind  Kind
	Steps int
}

// Compute classifies today's rank against yesterday's. present is false when
// the brand held no slot yesterday, which includes brands that had dropped
// out of the tracked window entirely.
func Compute(todayRank, yesterdayRank int, present bool) Delta {
	if !present {
		return Delta{Kind: New}
	}
	diff := yesterdayRank - todayRank
	switch {
	case diff > 0:
		return Delta{Kind: Up, Steps: diff}
	case diff < 0:
		return Delta{Kind: Down, Steps: -diff}
	default:
		return Delta{Kind: Unchanged}
	}
}

// String renders the movement annotation used in notifications.
func (d Delta) String() string {
	switch d.Kind {
	case New:
		return "(new)"
	case Up:
		return fmt.Sprintf("(↑%d)", d.Steps)
	case Down:
		return fmt.Sprintf("(↓%d)", d.Steps)
	default:
		return "(-)"
	}
}
