package app

import (
	"rogueace/internal/domain"
)

// applyAbility runs the effect of a pair or three-of-a-kind played by seat. played is the
// number of cards the play put on the discard pile.
func (m *move) applyAbility(seat int, ability domain.PlayAbility, played int) {
	g := m.g
	if bonus := domain.RulerAbilityOf(g.Players[seat].Ruler).MultiPlayBonus; bonus > 0 {
		for _, opp := range g.Opponents(seat) {
			m.forcedDraw(opp, bonus, "Tyrant")
		}
	}

	switch ability.Kind {
	case domain.AbilityForcedDraw:
		for _, opp := range g.Opponents(seat) {
			m.forcedDraw(opp, ability.Draw, ability.Name)
		}
	case domain.AbilityLock:
		for _, opp := range g.Opponents(seat) {
			g.Players[opp].Lock = ability.Lock
			m.emit(EventLockApplied, opp, nil, "Seat %d is under a %s lock.", opp, ability.Lock)
		}
	case domain.AbilityFreeStep:
		g.Players[seat].FreeStep = true
	case domain.AbilityRecycle:
		m.recycle()
	case domain.AbilitySalvage:
		candidates := salvageWindow(g.Discard, played, g.Rules.SalvageWindow)
		if len(candidates) == 0 {
			m.emit(EventAbilityFizzled, seat, nil, "Nothing to salvage.")
			break
		}
		g.Pending = &domain.PendingChoice{Kind: domain.PendingSalvage, Player: seat, Candidates: candidates}
	case domain.AbilityTarget:
		g.Pending = &domain.PendingChoice{Kind: domain.PendingTarget, Player: seat}
	case domain.AbilityDeckSwap:
		candidates := g.Deck.Peek(domain.DeckSwapReach)
		if len(candidates) == 0 {
			m.emit(EventAbilityFizzled, seat, nil, "The deck is empty, nothing to swap.")
			break
		}
		g.Pending = &domain.PendingChoice{Kind: domain.PendingDeckSwap, Player: seat, Candidates: candidates}
	case domain.AbilityFort:
		g.Pending = &domain.PendingChoice{Kind: domain.PendingFort, Player: seat}
	}

	if m.checkWin() {
		return
	}
	if g.Pending != nil {
		g.Phase = domain.PhaseResolving
		m.emit(EventAbilityPending, seat, g.Pending.Candidates, "Seat %d: choose %s.", seat, g.Pending.Expects())
		return
	}
	m.advanceTurn()
}

// salvageWindow returns up to size distinct cards beneath the first skip discards, most
// recent first.
func salvageWindow(discard []domain.Card, skip, size int) []domain.Card {
	if skip > len(discard) {
		skip = len(discard)
	}
	var out []domain.Card
	for _, c := range discard[skip:] {
		if len(out) == size {
			break
		}
		if !domain.ContainsCard(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// recycle shuffles every discard except the top back into the deck.
func (m *move) recycle() int {
	n := m.g.Recyclable()
	if n == 0 {
		return 0
	}
	rest := m.g.Discard[1:]
	m.g.Discard = []domain.Card{m.g.Discard[0]}
	m.g.Deck.ReturnAndReshuffle(rest, m.svc.rng)
	m.emit(EventRecycled, -1, nil, "%d discards shuffled back into the deck.", n)
	return n
}

// forcedDraw makes seat draw n as a penalty. It takes whatever the deck can supply after
// recycling and never fails.
func (m *move) forcedDraw(seat, n int, source string) int {
	p := &m.g.Players[seat]
	n -= domain.RulerAbilityOf(p.Ruler).ForcedDrawReduction
	if n <= 0 {
		m.emit(EventForcedDraw, seat, nil, "Seat %d shrugged off %s.", seat, source)
		return 0
	}
	if m.g.Deck.Len() < n {
		m.recycle()
	}
	if n > m.g.Deck.Len() {
		n = m.g.Deck.Len()
	}
	if n == 0 {
		return 0
	}
	cards, err := m.g.Deck.Draw(n)
	if err != nil {
		return 0
	}
	p.Hand = append(p.Hand, cards...)
	m.emitPrivate(EventForcedDraw, seat, cards, "%s: seat %d draws %d.", source, seat, n)
	return n
}

// advanceTurn clears any pending state, passes the turn, and fires the deferred Fort of the
// player whose turn begins.
func (m *move) advanceTurn() {
	g := m.g
	g.Pending = nil
	g.Phase = domain.PhasePlaying
	g.Turn = g.NextSeat(g.Turn)

	p := g.Current()
	if p.DeferredFort {
		p.DeferredFort = false
		m.emit(EventFortFired, p.Seat, nil, "Seat %d's Fort fires.", p.Seat)
		for _, opp := range g.Opponents(p.Seat) {
			m.forcedDraw(opp, domain.FortDeferDraw, "Fort")
		}
	}
	m.emit(EventTurnAdvanced, g.Turn, nil, "Seat %d to play.", g.Turn)
}
