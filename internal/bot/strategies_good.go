package bot

import (
	"fmt"

	"rogueace/internal/domain"
)

// GoodBot plays the cheapest legal card that keeps it in the hand and takes the first
// option of every choice.
type GoodBot struct{}

func (b *GoodBot) CalculateMove(game *domain.Game, seat int) (Move, error) {
	if !NeedsMove(game, seat) {
		return Move{}, ErrNoMove
	}
	player := game.Player(seat)

	switch game.Phase {
	case domain.PhaseSetup:
		// An Ace ruler is never a bad pick; otherwise give up the first card.
		ruler := player.Hand[0]
		for _, c := range player.Hand {
			if c.Rank == domain.Ace {
				ruler = c
				break
			}
		}
		return Move{Ruler: &ruler}, nil

	case domain.PhaseResolving:
		options := game.ChoiceOptions()
		if len(options) == 0 {
			return Move{}, fmt.Errorf("bot: no options for %s", game.Pending.Expects())
		}
		choice := options[0]
		return Move{Choice: &choice}, nil
	}

	plays := game.LegalPlays(seat)
	safe := keepsCards(plays, len(player.Hand))
	if len(safe) == 0 {
		return noSafePlay(game, seat, plays), nil
	}

	// Singles come first; keep the lowest one.
	best := safe[0]
	for _, p := range safe[1:] {
		if len(p) != 1 {
			break
		}
		if shedCost(p[0]) < shedCost(best[0]) {
			best = p
		}
	}
	return Move{Cards: best}, nil
}
