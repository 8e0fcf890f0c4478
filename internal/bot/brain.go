package bot

import (
	"errors"

	"rogueace/internal/app"
	"rogueace/internal/domain"
)

// ErrNoMove is returned when the seat has nothing to decide right now.
var ErrNoMove = errors.New("bot: no move required")

// Move represents the decision made by the AI. Exactly one of its fields is set.
type Move struct {
	Ruler  *domain.Card
	Draw   bool
	Pass   bool
	Cards  []domain.Card
	Choice *domain.Choice
}

// Action converts the move into the request seat sends to the engine.
func (m Move) Action(seat int) app.Action {
	switch {
	case m.Ruler != nil:
		return app.PickRuler(seat, *m.Ruler)
	case m.Choice != nil:
		return app.Resolve(seat, *m.Choice)
	case len(m.Cards) > 0:
		return app.Play(seat, m.Cards...)
	case m.Draw:
		return app.Draw(seat)
	default:
		return app.Pass(seat)
	}
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	CalculateMove(game *domain.Game, seat int) (Move, error)
}

// NeedsMove reports whether seat owes the game a decision.
func NeedsMove(game *domain.Game, seat int) bool {
	p := game.Player(seat)
	if p == nil {
		return false
	}
	switch game.Phase {
	case domain.PhaseSetup:
		return p.Ruler == nil && len(p.Hand) > 0
	case domain.PhasePlaying:
		return game.Turn == seat
	case domain.PhaseResolving:
		return game.Pending != nil && game.Pending.Player == seat
	}
	return false
}

// fallback is the move for a turn with no legal play.
func fallback(game *domain.Game, seat int) Move {
	if game.CanDraw(seat) {
		return Move{Draw: true}
	}
	return Move{Pass: true}
}

// shedCost orders cards so that the ones worth keeping sort last.
func shedCost(c domain.Card) int {
	return int(c.Rank)*4 + int(c.Suit)
}

// keepsCards drops the plays that would empty a hand of handSize cards. Going out hands the
// win to the opponent.
func keepsCards(plays [][]domain.Card, handSize int) [][]domain.Card {
	out := make([][]domain.Card, 0, len(plays))
	for _, p := range plays {
		if len(p) < handSize {
			out = append(out, p)
		}
	}
	return out
}

// noSafePlay is the move when every legal play would empty the hand. The engine only
// accepts a pass once nothing is playable, so with the deck dry the bot has to go out.
func noSafePlay(game *domain.Game, seat int, plays [][]domain.Card) Move {
	if len(plays) == 0 || game.CanDraw(seat) {
		return fallback(game, seat)
	}
	return Move{Cards: plays[0]}
}

// playValue scores the ability cards trigger for the actor. Cards forced on the opponent
// count against the play: the opponent's empty hand is the actor's win.
func playValue(game *domain.Game, seat int, cards []domain.Card) int {
	kind := domain.ClassifyPlay(cards)
	ability, ok := domain.AbilityFor(kind, cards[0].Rank)
	if !ok {
		return 0
	}
	bonus := domain.RulerAbilityOf(game.Player(seat).Ruler).MultiPlayBonus
	switch ability.Kind {
	case domain.AbilityForcedDraw, domain.AbilityTarget:
		return -ability.Draw - bonus
	case domain.AbilityFort:
		return -domain.FortNowDraw - bonus
	case domain.AbilityLock:
		return -1 - bonus
	case domain.AbilityFreeStep:
		return 2 - bonus
	case domain.AbilitySalvage, domain.AbilityDeckSwap, domain.AbilityRecycle:
		return 1 - bonus
	}
	return -bonus
}
