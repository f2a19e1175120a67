package engine

import "fmt"

type EventKind int

const (
	EventCollected EventKind = iota
	EventDeposited
	EventNoGold
	EventGoldLost
	EventLifeLost
	EventGameOver
	EventPantherRecovered
)

func (k EventKind) Name() string {
	switch k {
	case EventCollected:
		return "COLLECTED"
	case EventDeposited:
		return "DEPOSITED"
	case EventNoGold:
		return "NO_GOLD"
	case EventGoldLost:
		return "GOLD_LOST"
	case EventLifeLost:
		return "LIFE_LOST"
	case EventGameOver:
		return "GAME_OVER"
	case EventPantherRecovered:
		return "PANTHER_RECOVERED"
	default:
		return fmt.Sprintf("N/A(%d)", k)
	}
}

// Event is one rule firing. Col and Row locate the cell involved, Panther
// indexes World.Panthers for panther events and is -1 otherwise.
type Event struct {
	Kind     EventKind
	Tick     uint64
	Col, Row int
	Panther  int
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%d(%d,%d)", e.Kind.Name(), e.Tick, e.Col, e.Row)
}

// Has reports whether any event in events is of kind k.
func Has(events []Event, k EventKind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
