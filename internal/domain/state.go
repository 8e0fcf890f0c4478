package domain

import (
	"fmt"
	"math/rand"
)

// Phase represents the lifecycle stage of a Rogue Ace hand.
type Phase string

const (
	// PhaseSetup is the ruler-selection stage right after the deal.
	PhaseSetup Phase = "setup"
	// PhasePlaying is the normal turn loop.
	PhasePlaying Phase = "playing"
	// PhaseResolving means a multi-step ability is waiting on its owner.
	PhaseResolving Phase = "resolving"
	// PhaseFinished is terminal for the hand; only reset is accepted.
	PhaseFinished Phase = "finished"
)

// Rules are the per-game numeric knobs.
type Rules struct {
	HandSize      int `json:"hand_size"`
	DrawCount     int `json:"draw_count"`
	Players       int `json:"players"`
	SalvageWindow int `json:"salvage_window"`
}

// DefaultRules returns the standard two-player table.
func DefaultRules() Rules {
	return Rules{HandSize: 5, DrawCount: 2, Players: 2, SalvageWindow: 5}
}

// Player holds the state for one seat.
type Player struct {
	Seat  int
	Hand  []Card
	Ruler *Card

	// Lock restricts this player's next single play.
	Lock LockKind
	// FreeStep lets this player's next single play ignore matching.
	FreeStep bool
	// DeferredFort fires when this player's next turn begins.
	DeferredFort bool
}

// Game is the authoritative state of a single hand.
type Game struct {
	ID      string
	Rules   Rules
	Deck    *Deck
	Discard []Card // index 0 is the top
	Players []Player
	Turn    int
	Phase   Phase
	Pending *PendingChoice
	Winner  int // -1 until the hand is finished
}

// NewGame shuffles a fresh deck and deals every seat. The game starts in setup.
func NewGame(id string, rules Rules, rng *rand.Rand) (*Game, error) {
	if rules.Players < 2 {
		return nil, fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidAction, rules.Players)
	}
	if rules.HandSize < 2 || rules.HandSize*rules.Players >= DeckSize {
		return nil, errorf(KindInsufficientCards, "hand size %d does not fit %d players", rules.HandSize, rules.Players)
	}

	deck := NewDeck()
	deck.Shuffle(rng)

	g := &Game{
		ID:      id,
		Rules:   rules,
		Deck:    deck,
		Players: make([]Player, rules.Players),
		Phase:   PhaseSetup,
		Winner:  -1,
	}
	for seat := range g.Players {
		hand, err := DealHand(deck, rules.HandSize, rng)
		if err != nil {
			return nil, err
		}
		g.Players[seat] = Player{Seat: seat, Hand: hand}
	}
	return g, nil
}

// DealHand draws n cards and enforces the one-Ace limit: surplus Aces go back into the
// deck, the deck is reshuffled, and replacements are drawn until the hand holds at most one.
func DealHand(deck *Deck, n int, rng *rand.Rand) ([]Card, error) {
	hand, err := deck.Deal(n)
	if err != nil {
		return nil, err
	}
	for CountAces(hand) > 1 {
		var keep, extra []Card
		seenAce := false
		for _, c := range hand {
			if c.Rank == Ace && seenAce {
				extra = append(extra, c)
				continue
			}
			if c.Rank == Ace {
				seenAce = true
			}
			keep = append(keep, c)
		}
		if deck.countWhere(func(c Card) bool { return c.Rank != Ace }) < len(extra) {
			return nil, errorf(KindInsufficientCards, "not enough non-Ace cards to replace %d Aces", len(extra))
		}
		deck.ReturnAndReshuffle(extra, rng)
		more, err := deck.Deal(len(extra))
		if err != nil {
			return nil, err
		}
		hand = append(keep, more...)
	}
	return hand, nil
}

// NewArrangedGame builds a game in the playing phase from a fixed layout. Every card not
// placed in a hand, ruler or the discard pile goes into the deck in FullDeck order.
// Duplicate placements are rejected.
func NewArrangedGame(id string, rules Rules, hands [][]Card, rulers []Card, discard []Card) (*Game, error) {
	if len(hands) != rules.Players || len(rulers) != rules.Players {
		return nil, fmt.Errorf("%w: layout needs %d hands and rulers", ErrInvalidAction, rules.Players)
	}
	used := make(map[Card]bool, DeckSize)
	place := func(cards ...Card) error {
		for _, c := range cards {
			if used[c] {
				return fmt.Errorf("%w: card %s placed twice", ErrInvalidAction, c)
			}
			used[c] = true
		}
		return nil
	}

	g := &Game{
		ID:      id,
		Rules:   rules,
		Players: make([]Player, rules.Players),
		Discard: append([]Card(nil), discard...),
		Phase:   PhasePlaying,
		Winner:  -1,
	}
	if err := place(discard...); err != nil {
		return nil, err
	}
	for seat := range hands {
		ruler := rulers[seat]
		if err := place(append([]Card{ruler}, hands[seat]...)...); err != nil {
			return nil, err
		}
		g.Players[seat] = Player{Seat: seat, Hand: append([]Card(nil), hands[seat]...), Ruler: &ruler}
	}

	var rest []Card
	for _, c := range FullDeck() {
		if !used[c] {
			rest = append(rest, c)
		}
	}
	g.Deck = NewDeckOf(rest)
	return g, nil
}

// Current returns the player whose turn it is.
func (g *Game) Current() *Player { return &g.Players[g.Turn] }

// Player returns the player at seat, or nil when out of range.
func (g *Game) Player(seat int) *Player {
	if seat < 0 || seat >= len(g.Players) {
		return nil
	}
	return &g.Players[seat]
}

// Opponents returns every seat except seat, in seat order.
func (g *Game) Opponents(seat int) []int {
	out := make([]int, 0, len(g.Players)-1)
	for i := range g.Players {
		if i != seat {
			out = append(out, i)
		}
	}
	return out
}

// Top returns the discard top.
func (g *Game) Top() (Card, bool) {
	if len(g.Discard) == 0 {
		return Card{}, false
	}
	return g.Discard[0], true
}

// NextSeat returns the seat after seat.
func (g *Game) NextSeat(seat int) int { return (seat + 1) % len(g.Players) }

// DrawCount is how many cards the Draw action gives seat, never below one.
func (g *Game) DrawCount(seat int) int {
	n := g.Rules.DrawCount
	if p := g.Player(seat); p != nil {
		n -= RulerAbilityOf(p.Ruler).DrawDiscount
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Recyclable is the number of discards a recycle would return to the deck. The top stays.
func (g *Game) Recyclable() int {
	if len(g.Discard) <= 1 {
		return 0
	}
	return len(g.Discard) - 1
}

// CanDraw reports whether deck and recyclable discards can cover seat's Draw.
func (g *Game) CanDraw(seat int) bool {
	return g.Deck.Len()+g.Recyclable() >= g.DrawCount(seat)
}

// RulersChosen reports whether every player has picked a ruler.
func (g *Game) RulersChosen() bool {
	for _, p := range g.Players {
		if p.Ruler == nil {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the game.
func (g *Game) Clone() *Game {
	c := *g
	c.Deck = g.Deck.Clone()
	c.Discard = append([]Card(nil), g.Discard...)
	c.Players = make([]Player, len(g.Players))
	for i, p := range g.Players {
		p.Hand = append([]Card(nil), p.Hand...)
		if p.Ruler != nil {
			r := *p.Ruler
			p.Ruler = &r
		}
		c.Players[i] = p
	}
	c.Pending = g.Pending.Clone()
	return &c
}

// CheckConservation verifies that deck, hands, rulers and discard together hold the 52
// distinct cards exactly once.
func (g *Game) CheckConservation() error {
	seen := make(map[Card]int, DeckSize)
	count := func(cards []Card) {
		for _, c := range cards {
			seen[c]++
		}
	}
	count(g.Deck.Cards())
	count(g.Discard)
	for _, p := range g.Players {
		count(p.Hand)
		if p.Ruler != nil {
			count([]Card{*p.Ruler})
		}
	}
	total := 0
	for c, n := range seen {
		if n > 1 {
			return fmt.Errorf("card %s appears %d times", c, n)
		}
		total += n
	}
	if total != DeckSize {
		return fmt.Errorf("card count is %d, want %d", total, DeckSize)
	}
	return nil
}
