package app

import "rogueace/internal/domain"

// ActionKind tags an Action.
type ActionKind string

const (
	ActionPickRuler     ActionKind = "pick_ruler"
	ActionDraw          ActionKind = "draw"
	ActionPlay          ActionKind = "play"
	ActionResolveChoice ActionKind = "resolve_choice"
	ActionPass          ActionKind = "pass"
	ActionReset         ActionKind = "reset"
)

// Action is a single player request. Cards carries the ruler for PickRuler and the played
// cards for Play; Choice carries the ResolveChoice payload.
type Action struct {
	Kind   ActionKind     `json:"kind"`
	Seat   int            `json:"seat"`
	Cards  []domain.Card  `json:"cards,omitempty"`
	Choice *domain.Choice `json:"choice,omitempty"`
}

func PickRuler(seat int, cards ...domain.Card) Action {
	return Action{Kind: ActionPickRuler, Seat: seat, Cards: cards}
}

func Draw(seat int) Action { return Action{Kind: ActionDraw, Seat: seat} }

func Play(seat int, cards ...domain.Card) Action {
	return Action{Kind: ActionPlay, Seat: seat, Cards: cards}
}

func Resolve(seat int, choice domain.Choice) Action {
	return Action{Kind: ActionResolveChoice, Seat: seat, Choice: &choice}
}

func Pass(seat int) Action { return Action{Kind: ActionPass, Seat: seat} }

func Reset() Action { return Action{Kind: ActionReset} }
