package app

import (
	"rogueace/internal/domain"
)

// PlayerView is one seat as seen in a snapshot.
type PlayerView struct {
	Seat      int           `json:"seat"`
	Hand      []domain.Card `json:"hand,omitempty"`
	HandCount int           `json:"hand_count"`
	Hidden    bool          `json:"hidden,omitempty"`
	Ruler     *domain.Card  `json:"ruler,omitempty"`
	RulerName string        `json:"ruler_name,omitempty"`
	Lock      string        `json:"lock,omitempty"`
	FreeStep  bool          `json:"free_step,omitempty"`
	Fort      bool          `json:"deferred_fort,omitempty"`
}

// PendingView describes the in-flight ability.
type PendingView struct {
	Kind       domain.PendingKind `json:"kind"`
	Player     int                `json:"player"`
	Step       int                `json:"step"`
	Steps      int                `json:"steps"`
	Expects    domain.ChoiceKind  `json:"expects"`
	Candidates []domain.Card      `json:"candidates,omitempty"`
	Selections []domain.Card      `json:"selections,omitempty"`
}

// Snapshot is a read-only copy of a session. Nothing in it aliases session state.
type Snapshot struct {
	SessionID    string       `json:"session_id"`
	GameID       string       `json:"game_id"`
	Phase        domain.Phase `json:"phase"`
	Turn         int          `json:"turn"`
	DeckCount    int          `json:"deck_count"`
	DiscardTop   *domain.Card `json:"discard_top,omitempty"`
	DiscardCount int          `json:"discard_count"`
	Players      []PlayerView `json:"players"`
	Pending      *PendingView `json:"pending,omitempty"`
	Status       string       `json:"status"`
	History      []Event      `json:"history"`
	Wins         []int        `json:"wins"`
	GameOver     bool         `json:"game_over"`
	Winner       *int         `json:"winner,omitempty"`
	// Viewer is set on seat-scoped snapshots; -1 means spectator.
	Viewer *int `json:"viewer,omitempty"`
}

func newSnapshot(sessionID string, g *domain.Game, status string, history []Event, wins []int) Snapshot {
	snap := Snapshot{
		SessionID:    sessionID,
		GameID:       g.ID,
		Phase:        g.Phase,
		Turn:         g.Turn,
		DeckCount:    g.Deck.Len(),
		DiscardCount: len(g.Discard),
		Status:       status,
		History:      append([]Event(nil), history...),
		Wins:         append([]int(nil), wins...),
		GameOver:     g.Phase == domain.PhaseFinished,
	}
	for i := range snap.History {
		snap.History[i].Cards = append([]domain.Card(nil), snap.History[i].Cards...)
	}
	if top, ok := g.Top(); ok {
		snap.DiscardTop = &top
	}
	if g.Phase == domain.PhaseFinished && g.Winner >= 0 {
		w := g.Winner
		snap.Winner = &w
	}

	for _, p := range g.Players {
		view := PlayerView{
			Seat:      p.Seat,
			Hand:      append([]domain.Card{}, p.Hand...),
			HandCount: len(p.Hand),
			Lock:      string(p.Lock),
			FreeStep:  p.FreeStep,
			Fort:      p.DeferredFort,
		}
		if p.Ruler != nil {
			r := *p.Ruler
			view.Ruler = &r
			view.RulerName = domain.RulerAbilityFor(r).Name
		}
		snap.Players = append(snap.Players, view)
	}

	if pend := g.Pending; pend != nil {
		snap.Pending = &PendingView{
			Kind:       pend.Kind,
			Player:     pend.Player,
			Step:       pend.Step,
			Steps:      pend.Steps(),
			Expects:    pend.Expects(),
			Candidates: append([]domain.Card(nil), pend.Candidates...),
			Selections: append([]domain.Card(nil), pend.Selections...),
		}
	}
	return snap
}

// ForSeat returns the view of seat: opponents' hands are reduced to counts and private
// history cards are removed. Any seat outside the table gets the spectator view.
func (s Snapshot) ForSeat(seat int) Snapshot {
	out := s
	viewer := seat
	if seat < 0 || seat >= len(s.Players) {
		viewer = -1
	}
	out.Viewer = &viewer

	out.Players = make([]PlayerView, len(s.Players))
	for i, p := range s.Players {
		if p.Seat != viewer {
			p.Hand = nil
			p.Hidden = true
		}
		out.Players[i] = p
	}
	out.History = make([]Event, len(s.History))
	for i, e := range s.History {
		out.History[i] = e.redactedFor(viewer)
	}
	return out
}

// Hand returns the visible hand of seat, or nil.
func (s Snapshot) Hand(seat int) []domain.Card {
	for _, p := range s.Players {
		if p.Seat == seat {
			return p.Hand
		}
	}
	return nil
}
