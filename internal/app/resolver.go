package app

import (
	"rogueace/internal/domain"
)

func (m *move) resolveChoice(seat int, choice *domain.Choice) error {
	if _, err := m.player(seat); err != nil {
		return err
	}
	g := m.g
	if g.Phase == domain.PhaseFinished {
		return domain.ErrGameOver
	}
	pend := g.Pending
	if pend == nil {
		return domain.Errorf(domain.KindUnexpectedAction, "no choice is pending")
	}
	if seat != pend.Player {
		return domain.Errorf(domain.KindNotYourTurn, "seat %d owns the pending %s", pend.Player, pend.Kind)
	}
	if choice == nil {
		return domain.Errorf(domain.KindInvalidChoice, "missing choice payload")
	}
	if want := pend.Expects(); choice.Kind != want {
		return domain.Errorf(domain.KindUnexpectedAction, "expected %s, got %q", want, choice.Kind)
	}

	switch choice.Kind {
	case domain.ChoiceSalvageTake:
		return m.salvageTake(pend, choice)
	case domain.ChoiceSalvageDiscard:
		return m.salvageDiscard(pend, choice)
	case domain.ChoiceDeckPick:
		return m.deckPick(pend, choice)
	case domain.ChoiceDeckSwap:
		return m.deckSwap(pend, choice)
	case domain.ChoiceTarget:
		return m.target(pend, choice)
	case domain.ChoiceFort:
		return m.fort(pend, choice)
	}
	return domain.Errorf(domain.KindUnexpectedAction, "unknown choice %q", choice.Kind)
}

func (m *move) salvageTake(pend *domain.PendingChoice, choice *domain.Choice) error {
	if choice.Card == nil {
		return domain.Errorf(domain.KindInvalidChoice, "salvage_take needs a card")
	}
	c := *choice.Card
	idx := domain.IndexOfCard(m.g.Discard, c)
	if !domain.ContainsCard(pend.Candidates, c) || idx < 0 {
		return domain.Errorf(domain.KindInvalidChoice, "%s is not available to salvage", c)
	}

	m.g.Discard = append(m.g.Discard[:idx:idx], m.g.Discard[idx+1:]...)
	p := &m.g.Players[pend.Player]
	p.Hand = append(p.Hand, c)
	pend.Selections = []domain.Card{c}
	pend.Step++
	m.emit(EventChoiceResolved, pend.Player, []domain.Card{c}, "Seat %d salvaged %s. Discard a matching card.", pend.Player, c.Pretty())
	return nil
}

func (m *move) salvageDiscard(pend *domain.PendingChoice, choice *domain.Choice) error {
	if choice.Card == nil {
		return domain.Errorf(domain.KindInvalidChoice, "salvage_discard needs a card")
	}
	c := *choice.Card
	p := &m.g.Players[pend.Player]
	if !domain.ContainsCard(p.Hand, c) {
		return domain.Errorf(domain.KindInvalidChoice, "%s is not in hand", c)
	}
	salvaged := pend.Selections[0]
	if !domain.Matches(c, salvaged) {
		return domain.Errorf(domain.KindInvalidChoice, "%s does not match the salvaged %s", c, salvaged)
	}

	p.Hand = domain.RemoveCards(p.Hand, []domain.Card{c})
	m.g.Discard = append([]domain.Card{c}, m.g.Discard...)
	m.emit(EventChoiceResolved, pend.Player, []domain.Card{c}, "Seat %d discarded %s.", pend.Player, c.Pretty())
	m.complete()
	return nil
}

func (m *move) deckPick(pend *domain.PendingChoice, choice *domain.Choice) error {
	if choice.Index == nil {
		return domain.Errorf(domain.KindInvalidChoice, "deck_pick needs an index")
	}
	i := *choice.Index
	if i < 0 || i >= len(pend.Candidates) {
		return domain.Errorf(domain.KindInvalidChoice, "deck_pick index %d out of range 0..%d", i, len(pend.Candidates)-1)
	}
	if peek := m.g.Deck.Peek(i + 1); len(peek) <= i || peek[i] != pend.Candidates[i] {
		return domain.Errorf(domain.KindInvalidChoice, "deck card %d changed", i)
	}

	pend.Index = i
	pend.Selections = []domain.Card{pend.Candidates[i]}
	pend.Step++
	m.emit(EventChoiceResolved, pend.Player, pend.Selections, "Seat %d picked %s from the deck. Choose a hand card to swap.", pend.Player, pend.Candidates[i].Pretty())
	return nil
}

func (m *move) deckSwap(pend *domain.PendingChoice, choice *domain.Choice) error {
	if choice.Card == nil {
		return domain.Errorf(domain.KindInvalidChoice, "deck_swap needs a card")
	}
	c := *choice.Card
	p := &m.g.Players[pend.Player]
	idx := domain.IndexOfCard(p.Hand, c)
	if idx < 0 {
		return domain.Errorf(domain.KindInvalidChoice, "%s is not in hand", c)
	}

	taken, err := m.g.Deck.ReplaceAt(pend.Index, c)
	if err != nil {
		return domain.Errorf(domain.KindInvalidChoice, "%v", err)
	}
	p.Hand[idx] = taken
	m.emitPrivate(EventChoiceResolved, pend.Player, []domain.Card{c, taken}, "Seat %d swapped a card with the deck.", pend.Player)
	m.complete()
	return nil
}

func (m *move) target(pend *domain.PendingChoice, choice *domain.Choice) error {
	if choice.Index == nil {
		return domain.Errorf(domain.KindInvalidChoice, "target needs a seat index")
	}
	seat := *choice.Index
	if seat == pend.Player || m.g.Player(seat) == nil {
		return domain.Errorf(domain.KindInvalidChoice, "seat %d is not an opponent", seat)
	}

	m.emit(EventChoiceResolved, pend.Player, nil, "Seat %d marked seat %d.", pend.Player, seat)
	m.forcedDraw(seat, domain.TargetDraw, "Marked Target")
	m.complete()
	return nil
}

func (m *move) fort(pend *domain.PendingChoice, choice *domain.Choice) error {
	switch choice.Option {
	case domain.FortNow:
		m.emit(EventChoiceResolved, pend.Player, nil, "Seat %d raised the Fort now.", pend.Player)
		for _, opp := range m.g.Opponents(pend.Player) {
			m.forcedDraw(opp, domain.FortNowDraw, "Fort")
		}
	case domain.FortDefer:
		m.g.Players[pend.Player].DeferredFort = true
		m.emit(EventChoiceResolved, pend.Player, nil, "Seat %d deferred the Fort to their next turn.", pend.Player)
	default:
		return domain.Errorf(domain.KindInvalidChoice, "fort option must be %q or %q, got %q", domain.FortNow, domain.FortDefer, choice.Option)
	}
	m.complete()
	return nil
}

// complete ends the pending ability and moves play on.
func (m *move) complete() {
	m.g.Pending = nil
	if m.checkWin() {
		return
	}
	m.advanceTurn()
}
