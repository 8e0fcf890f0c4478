package app

import "rogueace/internal/domain"

// EventKind identifies an entry in the move history.
type EventKind string

const (
	EventGameStarted    EventKind = "game_started"
	EventRulerPicked    EventKind = "ruler_picked"
	EventPlayStarted    EventKind = "play_started"
	EventCardsDrawn     EventKind = "cards_drawn"
	EventCardsPlayed    EventKind = "cards_played"
	EventAbility        EventKind = "ability_triggered"
	EventAbilityPending EventKind = "ability_pending"
	EventAbilityFizzled EventKind = "ability_fizzled"
	EventForcedDraw     EventKind = "forced_draw"
	EventLockApplied    EventKind = "lock_applied"
	EventRecycled       EventKind = "discard_recycled"
	EventChoiceResolved EventKind = "choice_resolved"
	EventFortFired      EventKind = "fort_fired"
	EventTurnPassed     EventKind = "turn_passed"
	EventTurnAdvanced   EventKind = "turn_advanced"
	EventGameEnded      EventKind = "game_ended"
)

// Event is one move-history entry. ID and Seq are stamped by the session when the
// action commits.
type Event struct {
	ID     string        `json:"id"`
	Seq    int           `json:"seq"`
	Kind   EventKind     `json:"kind"`
	Seat   int           `json:"seat"` // -1 for table events
	Cards  []domain.Card `json:"cards,omitempty"`
	Detail string        `json:"detail"`
	// Private hides Cards from every viewer except Seat.
	Private bool `json:"private,omitempty"`
}

func (e Event) redactedFor(viewer int) Event {
	if e.Private && e.Seat != viewer {
		e.Cards = nil
	}
	return e
}
