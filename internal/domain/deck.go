package domain

import (
	"math/rand"
)

// DeckSize is the number of cards in a full deck.
const DeckSize = 52

// FullDeck returns the 52 cards in a fixed order (suit-major, ascending rank).
func FullDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := Ace; r <= King; r++ {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return cards
}

// Deck is the ordered sequence of undealt cards. Index 0 is the top.
type Deck struct {
	cards []Card
}

// NewDeck returns an unshuffled 52-card deck.
func NewDeck() *Deck {
	return &Deck{cards: FullDeck()}
}

// NewDeckOf returns a deck holding exactly the given cards, top first.
func NewDeckOf(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// Len returns the number of remaining cards.
func (d *Deck) Len() int { return len(d.cards) }

// Cards returns a copy of the remaining cards, top first.
func (d *Deck) Cards() []Card { return append([]Card(nil), d.cards...) }

// Shuffle permutes the deck in place with Fisher–Yates.
func (d *Deck) Shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top n cards. It never truncates: asking for more than
// remain fails with ErrInsufficientCards and leaves the deck untouched.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, errorf(KindInsufficientCards, "cannot take %d cards, %d left in deck", n, len(d.cards))
	}
	out := append([]Card(nil), d.cards[:n]...)
	d.cards = append([]Card(nil), d.cards[n:]...)
	return out, nil
}

// Draw is Deal under its mid-game name.
func (d *Deck) Draw(n int) ([]Card, error) { return d.Deal(n) }

// ReturnAndReshuffle puts cards back into the deck and reshuffles the whole deck.
func (d *Deck) ReturnAndReshuffle(cards []Card, rng *rand.Rand) {
	d.cards = append(d.cards, cards...)
	d.Shuffle(rng)
}

// Peek returns up to n cards from the top without removing them.
func (d *Deck) Peek(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	return append([]Card(nil), d.cards[:n]...)
}

// ReplaceAt swaps the card at position i for c and returns the card that was there.
func (d *Deck) ReplaceAt(i int, c Card) (Card, error) {
	if i < 0 || i >= len(d.cards) {
		return Card{}, errorf(KindInsufficientCards, "deck position %d out of range (%d cards)", i, len(d.cards))
	}
	old := d.cards[i]
	d.cards[i] = c
	return old, nil
}

// Clone returns an independent copy of the deck.
func (d *Deck) Clone() *Deck {
	if d == nil {
		return nil
	}
	return &Deck{cards: append([]Card(nil), d.cards...)}
}

func (d *Deck) countWhere(pred func(Card) bool) int {
	n := 0
	for _, c := range d.cards {
		if pred(c) {
			n++
		}
	}
	return n
}
