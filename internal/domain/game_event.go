package domain

import (
	"fmt"
	"time"
)

// GameEventKind category of a journaled game event.
type GameEventKind string

const (
	EventDayStart GameEventKind = "day_start"
	EventTrade    GameEventKind = "trade"
	EventBank     GameEventKind = "bank"
	EventWeapon   GameEventKind = "weapon"
	EventTravel   GameEventKind = "travel"
	EventGameEnd  GameEventKind = "game_end"
)

// GameEvent one journal entry. Action narrows the kind (buy, sell, deposit,
// withdraw, the encounter kind for a day start, the end reason for game end).
type GameEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	GameID    string        `json:"game_id"`
	Kind      GameEventKind `json:"kind"`
	Day       int           `json:"day"`
	City      string        `json:"city"`
	Action    string        `json:"action,omitempty"`
	Item      string        `json:"item,omitempty"`
	Quantity  int           `json:"quantity,omitempty"`
	Amount    int           `json:"amount,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// String returns a one-line summary for the recent events panel.
func (e GameEvent) String() string {
	switch e.Kind {
	case EventDayStart:
		if e.Message != "" {
			return fmt.Sprintf("day %d, %s: %s", e.Day, e.City, e.Message)
		}
		return fmt.Sprintf("day %d, %s: a quiet day", e.Day, e.City)
	case EventTrade:
		return fmt.Sprintf("day %d, %s: %s %d %s for %s", e.Day, e.City, e.Action, e.Quantity, e.Item, FormatMoney(e.Amount))
	case EventBank:
		return fmt.Sprintf("day %d, %s: %s %s at %s", e.Day, e.City, e.Action, FormatMoney(e.Amount), e.Item)
	case EventWeapon:
		return fmt.Sprintf("day %d, %s: bought a %s for %s", e.Day, e.City, e.Item, FormatMoney(e.Amount))
	case EventTravel:
		return fmt.Sprintf("day %d: travelled to %s", e.Day, e.City)
	case EventGameEnd:
		return fmt.Sprintf("day %d: game over (%s), score %s", e.Day, e.Action, FormatMoney(e.Amount))
	default:
		return fmt.Sprintf("day %d, %s: %s", e.Day, e.City, e.Kind)
	}
}

// GameEventRecord journal entry together with its index.
type GameEventRecord struct {
	Index uint64
	Event GameEvent
}
