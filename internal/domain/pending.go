package domain

// PendingKind names the ability that is waiting on a choice.
type PendingKind string

const (
	PendingSalvage  PendingKind = "pair5"
	PendingTarget   PendingKind = "pair6"
	PendingDeckSwap PendingKind = "pair7"
	PendingFort     PendingKind = "fort"
)

// ChoiceKind names one resolution step.
type ChoiceKind string

const (
	ChoiceSalvageTake    ChoiceKind = "salvage_take"
	ChoiceSalvageDiscard ChoiceKind = "salvage_discard"
	ChoiceDeckPick       ChoiceKind = "deck_pick"
	ChoiceDeckSwap       ChoiceKind = "deck_swap"
	ChoiceTarget         ChoiceKind = "target"
	ChoiceFort           ChoiceKind = "fort"
)

// Fort options.
const (
	FortNow   = "now"
	FortDefer = "defer"
)

// Choice is the payload of one resolution step. Which field is read depends on Kind.
type Choice struct {
	Kind   ChoiceKind `json:"kind"`
	Card   *Card      `json:"card,omitempty"`
	Index  *int       `json:"index,omitempty"`
	Option string     `json:"option,omitempty"`
}

// CardChoice builds a choice that names a card.
func CardChoice(kind ChoiceKind, c Card) Choice { return Choice{Kind: kind, Card: &c} }

// IndexChoice builds a choice that names a position or seat.
func IndexChoice(kind ChoiceKind, i int) Choice { return Choice{Kind: kind, Index: &i} }

// FortChoice builds a fort choice.
func FortChoice(option string) Choice { return Choice{Kind: ChoiceFort, Option: option} }

// PendingChoice is the single in-flight multi-step ability of a game.
type PendingChoice struct {
	Kind   PendingKind
	Player int
	// Step counts completed steps.
	Step int
	// Candidates are the cards on offer: recent discards for Salvage, the revealed deck
	// cards for Deck Swap.
	Candidates []Card
	// Selections records what earlier steps chose.
	Selections []Card
	// Index is the deck position picked in the first Deck Swap step.
	Index int
}

// Steps returns how many choices the ability needs in total.
func (p *PendingChoice) Steps() int {
	switch p.Kind {
	case PendingSalvage, PendingDeckSwap:
		return 2
	default:
		return 1
	}
}

// Expects returns the choice kind accepted at the current step.
func (p *PendingChoice) Expects() ChoiceKind {
	switch p.Kind {
	case PendingSalvage:
		if p.Step == 0 {
			return ChoiceSalvageTake
		}
		return ChoiceSalvageDiscard
	case PendingDeckSwap:
		if p.Step == 0 {
			return ChoiceDeckPick
		}
		return ChoiceDeckSwap
	case PendingTarget:
		return ChoiceTarget
	case PendingFort:
		return ChoiceFort
	}
	return ""
}

// Clone returns a deep copy; nil stays nil.
func (p *PendingChoice) Clone() *PendingChoice {
	if p == nil {
		return nil
	}
	c := *p
	c.Candidates = append([]Card(nil), p.Candidates...)
	c.Selections = append([]Card(nil), p.Selections...)
	return &c
}

// ChoiceOptions enumerates every payload the pending step accepts.
func (g *Game) ChoiceOptions() []Choice {
	p := g.Pending
	if p == nil {
		return nil
	}
	actor := g.Player(p.Player)
	var out []Choice
	switch kind := p.Expects(); kind {
	case ChoiceSalvageTake:
		for _, c := range p.Candidates {
			out = append(out, CardChoice(kind, c))
		}
	case ChoiceSalvageDiscard:
		salvaged := p.Selections[0]
		for _, c := range actor.Hand {
			if Matches(c, salvaged) {
				out = append(out, CardChoice(kind, c))
			}
		}
	case ChoiceDeckPick:
		for i := range p.Candidates {
			out = append(out, IndexChoice(kind, i))
		}
	case ChoiceDeckSwap:
		for _, c := range actor.Hand {
			out = append(out, CardChoice(kind, c))
		}
	case ChoiceTarget:
		for _, seat := range g.Opponents(p.Player) {
			out = append(out, IndexChoice(kind, seat))
		}
	case ChoiceFort:
		out = append(out, FortChoice(FortNow), FortChoice(FortDefer))
	}
	return out
}
