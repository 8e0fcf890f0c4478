package domain

import "sort"

// PlayKind is the shape of a submitted play.
type PlayKind int

const (
	PlayInvalid PlayKind = iota
	PlaySingle
	PlayPair
	PlayThreeOfAKind
)

func (k PlayKind) String() string {
	switch k {
	case PlaySingle:
		return "single"
	case PlayPair:
		return "pair"
	case PlayThreeOfAKind:
		return "three_of_a_kind"
	default:
		return "invalid"
	}
}

// LockKind narrows single-card matching to one test.
type LockKind string

const (
	LockNone   LockKind = ""
	LockParity LockKind = "parity"
	LockColor  LockKind = "color"
	LockRank   LockKind = "rank"
)

// Allows reports whether c passes the lock against top.
func (l LockKind) Allows(c, top Card) bool {
	switch l {
	case LockParity:
		return c.Parity() == top.Parity()
	case LockColor:
		return c.Color() == top.Color()
	case LockRank:
		return c.Rank == top.Rank
	default:
		return Matches(c, top)
	}
}

// Matches is the base single-card test: same color, same rank or same parity.
func Matches(c, top Card) bool {
	return c.Color() == top.Color() || c.Rank == top.Rank || c.Parity() == top.Parity()
}

// ClassifyPlay returns the shape of cards. Rank equality alone decides pairs and
// three-of-a-kind.
func ClassifyPlay(cards []Card) PlayKind {
	switch len(cards) {
	case 1:
		return PlaySingle
	case 2, 3:
		if HasDuplicates(cards) || !allSameRank(cards) {
			return PlayInvalid
		}
		if len(cards) == 2 {
			return PlayPair
		}
		return PlayThreeOfAKind
	default:
		return PlayInvalid
	}
}

func allSameRank(cards []Card) bool {
	for _, c := range cards[1:] {
		if c.Rank != cards[0].Rank {
			return false
		}
	}
	return true
}

// CanPlaySingle applies the modifiers in order: lock (unless immune), free step, ruler
// wildcard, then the base match.
func CanPlaySingle(p *Player, c, top Card) bool {
	ruler := RulerAbilityOf(p.Ruler)
	if p.Lock != LockNone && !ruler.LockImmune {
		return p.Lock.Allows(c, top)
	}
	if p.FreeStep {
		return true
	}
	if ruler.Wild != nil && ruler.Wild(c) {
		return true
	}
	return Matches(c, top)
}

// EvaluatePlay checks a play by seat against the current top and returns its shape.
func (g *Game) EvaluatePlay(seat int, cards []Card) (PlayKind, error) {
	p := g.Player(seat)
	if p == nil {
		return PlayInvalid, errorf(KindInvalidAction, "no player at seat %d", seat)
	}
	if len(cards) == 0 || len(cards) > 3 {
		return PlayInvalid, errorf(KindIllegalPlay, "a play is 1 to 3 cards, got %d", len(cards))
	}
	if HasDuplicates(cards) {
		return PlayInvalid, errorf(KindIllegalPlay, "duplicate card in play %s", FormatCards(cards))
	}
	if !ContainsAll(p.Hand, cards) {
		return PlayInvalid, errorf(KindCardNotInHand, "%s is not all in hand", FormatCards(cards))
	}

	kind := ClassifyPlay(cards)
	switch kind {
	case PlayInvalid:
		return kind, errorf(KindIllegalPlay, "%s is not a pair or three of a kind", FormatCards(cards))
	case PlaySingle:
		top, ok := g.Top()
		if ok && !CanPlaySingle(p, cards[0], top) {
			return PlayInvalid, errorf(KindIllegalPlay, "%s does not match %s", cards[0], top)
		}
	}
	return kind, nil
}

// LegalPlays enumerates every legal play for seat: singles in hand order, then pairs and
// three-of-a-kind grouped by rank.
func (g *Game) LegalPlays(seat int) [][]Card {
	p := g.Player(seat)
	if p == nil {
		return nil
	}
	var plays [][]Card
	top, hasTop := g.Top()
	for _, c := range p.Hand {
		if !hasTop || CanPlaySingle(p, c, top) {
			plays = append(plays, []Card{c})
		}
	}

	byRank := make(map[Rank][]Card)
	for _, c := range p.Hand {
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	ranks := make([]int, 0, len(byRank))
	for r := range byRank {
		ranks = append(ranks, int(r))
	}
	sort.Ints(ranks)
	for _, r := range ranks {
		group := byRank[Rank(r)]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				plays = append(plays, []Card{group[i], group[j]})
				for k := j + 1; k < len(group); k++ {
					plays = append(plays, []Card{group[i], group[j], group[k]})
				}
			}
		}
	}
	return plays
}

// HasLegalPlay reports whether seat can play anything at all.
func (g *Game) HasLegalPlay(seat int) bool {
	return len(g.LegalPlays(seat)) > 0
}
