package bot

import (
	"fmt"
	"sort"

	"rogueace/internal/domain"
)

// SmartBot never goes out by choice. Among the plays that keep a card it favours abilities
// that help itself over ones that swell the opponent's hand.
type SmartBot struct{}

func (b *SmartBot) CalculateMove(game *domain.Game, seat int) (Move, error) {
	if !NeedsMove(game, seat) {
		return Move{}, ErrNoMove
	}
	player := game.Player(seat)

	switch game.Phase {
	case domain.PhaseSetup:
		ruler := pickRuler(player.Hand)
		return Move{Ruler: &ruler}, nil
	case domain.PhaseResolving:
		return b.resolve(game, seat)
	}

	plays := game.LegalPlays(seat)
	safe := keepsCards(plays, len(player.Hand))
	if len(safe) == 0 {
		return noSafePlay(game, seat, plays), nil
	}

	type scoredPlay struct {
		cards []domain.Card
		score int
	}
	scored := make([]scoredPlay, 0, len(safe))
	for _, p := range safe {
		score := 10*playValue(game, seat, p) + 3*len(p)
		for _, c := range p {
			score -= int(c.Rank)
		}
		scored = append(scored, scoredPlay{cards: p, score: score})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return Move{Cards: scored[0].cards}, nil
}

func (b *SmartBot) resolve(game *domain.Game, seat int) (Move, error) {
	options := game.ChoiceOptions()
	if len(options) == 0 {
		return Move{}, fmt.Errorf("bot: no options for %s", game.Pending.Expects())
	}
	pend := game.Pending
	player := game.Player(seat)

	best := options[0]
	switch pend.Expects() {
	case domain.ChoiceFort:
		// Now costs the opponent fewer cards. Deferring gives an opponent near empty one
		// more turn to go out before the draw lands.
		best = domain.FortChoice(domain.FortNow)
		for _, opp := range game.Opponents(seat) {
			if len(game.Player(opp).Hand) <= 2 {
				best = domain.FortChoice(domain.FortDefer)
			}
		}
	case domain.ChoiceTarget:
		// Two cards matter least to the biggest hand.
		most := -1
		for _, o := range options {
			n := len(game.Player(*o.Index).Hand)
			if n > most {
				most, best = n, o
			}
		}
	case domain.ChoiceSalvageTake:
		// A card that pairs with the hand is worth more than a high single.
		bestScore := -1
		for _, o := range options {
			score := int(o.Card.Rank)
			for _, c := range player.Hand {
				if c.Rank == o.Card.Rank {
					score += 20
				}
			}
			if score > bestScore {
				bestScore, best = score, o
			}
		}
	case domain.ChoiceSalvageDiscard, domain.ChoiceDeckSwap:
		best = cheapestOption(options, player.Hand)
	case domain.ChoiceDeckPick:
		bestScore := -1
		for _, o := range options {
			c := pend.Candidates[*o.Index]
			score := 0
			for _, h := range player.Hand {
				if h.Rank == c.Rank {
					score += 10
				}
			}
			if score > bestScore {
				bestScore, best = score, o
			}
		}
	}
	return Move{Choice: &best}, nil
}

// cheapestOption gives up the card least likely to form a pair.
func cheapestOption(options []domain.Choice, hand []domain.Card) domain.Choice {
	counts := make(map[domain.Rank]int)
	for _, c := range hand {
		counts[c.Rank]++
	}
	best := options[0]
	for _, o := range options[1:] {
		bc, oc := counts[best.Card.Rank], counts[o.Card.Rank]
		if oc < bc || (oc == bc && shedCost(*o.Card) < shedCost(*best.Card)) {
			best = o
		}
	}
	return best
}

// pickRuler prefers the ruler whose passive covers most of the remaining hand.
func pickRuler(hand []domain.Card) domain.Card {
	best, bestScore := hand[0], -1
	for i, c := range hand {
		ability := domain.RulerAbilityFor(c)
		score := 0
		switch {
		case ability.Wild != nil:
			for j, other := range hand {
				if j != i && ability.Wild(other) {
					score += 2
				}
			}
		case ability.LockImmune:
			score = 3
		case ability.ForcedDrawReduction > 0, ability.DrawDiscount > 0:
			score = 1
		}
		// Keep pairs together.
		for j, other := range hand {
			if j != i && other.Rank == c.Rank {
				score--
			}
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}
