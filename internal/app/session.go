package app

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"rogueace/internal/domain"
)

// Session is one table: the current hand plus the session-scoped win counters. All
// methods are safe for concurrent use; actions on one session are serialized.
type Session struct {
	mu      sync.Mutex
	id      string
	svc     *Service
	game    *domain.Game
	history []Event
	wins    []int
	status  string
	seq     int
}

// NewSession deals the first hand of a new session.
func NewSession(id string, rules domain.Rules, svc *Service) (*Session, error) {
	g, events, err := svc.NewGame(rules)
	if err != nil {
		return nil, err
	}
	s := &Session{id: id, svc: svc, game: g, wins: make([]int, rules.Players)}
	s.record(events)
	s.status = describe(g, events)
	return s, nil
}

// ID returns the session key.
func (s *Session) ID() string { return s.id }

// Snapshot returns the current state without changing anything.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Game returns a copy of the current hand, for callers such as bots that need rule queries.
func (s *Session) Game() *domain.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Clone()
}

// Apply runs act against a copy of the hand and commits it only on success. A rejected
// action changes nothing but the status message; the returned snapshot is then the
// unchanged state alongside the error.
func (s *Session) Apply(act Action) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.game.Clone()
	events, err := s.svc.Apply(work, act)
	if err != nil {
		s.status = err.Error()
		return s.snapshot(), err
	}

	wasFinished := s.game.Phase == domain.PhaseFinished
	if act.Kind == ActionReset {
		s.history = nil
		wasFinished = false
	}
	s.game = work
	s.record(events)
	if !wasFinished && work.Phase == domain.PhaseFinished && work.Winner >= 0 && work.Winner < len(s.wins) {
		s.wins[work.Winner]++
	}
	s.status = describe(work, events)
	return s.snapshot(), nil
}

func (s *Session) snapshot() Snapshot {
	return newSnapshot(s.id, s.game, s.status, s.history, s.wins)
}

func (s *Session) record(events []Event) {
	for _, e := range events {
		s.seq++
		e.Seq = s.seq
		e.ID = uuid.NewString()
		s.history = append(s.history, e)
	}
	if over := len(s.history) - MaxHistory; over > 0 {
		s.history = append([]Event(nil), s.history[over:]...)
	}
}

// describe builds the status line: the headline of the action plus what happens next.
func describe(g *domain.Game, events []Event) string {
	var parts []string
	for _, e := range events {
		if e.Kind != EventTurnAdvanced && e.Kind != EventAbilityPending {
			parts = append(parts, e.Detail)
			break
		}
	}

	var next string
	switch g.Phase {
	case domain.PhaseFinished:
		if n := len(events); n > 0 && events[n-1].Kind == EventGameEnded {
			next = events[n-1].Detail
		}
	case domain.PhaseResolving:
		next = fmt.Sprintf("Seat %d: choose %s.", g.Pending.Player, g.Pending.Expects())
	case domain.PhasePlaying:
		next = fmt.Sprintf("Seat %d to play.", g.Turn)
	}
	if next != "" && (len(parts) == 0 || parts[0] != next) {
		parts = append(parts, next)
	}
	return strings.Join(parts, " ")
}
