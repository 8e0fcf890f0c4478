package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit is one of the four French suits.
type Suit int

const (
	Diamonds Suit = iota
	Hearts
	Spades
	Clubs
)

// Suits lists every suit in deck order.
var Suits = [...]Suit{Diamonds, Hearts, Spades, Clubs}

// Rank is the card rank; its integer value is also the numeric card value (A=1, J=11, Q=12, K=13).
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Color is the color family of a suit.
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
)

// Card is an immutable playing card. Equality is struct equality, never the string form.
type Card struct {
	Rank Rank
	Suit Suit
}

// Color returns red for Diamonds and Hearts, black otherwise.
func (s Suit) Color() Color {
	if s == Diamonds || s == Hearts {
		return Red
	}
	return Black
}

// Letter returns the one-letter code used in card strings.
func (s Suit) Letter() string {
	switch s {
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	case Clubs:
		return "C"
	default:
		return "?"
	}
}

// Symbol returns the unicode suit symbol.
func (s Suit) Symbol() string {
	switch s {
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

func (s Suit) String() string {
	switch s {
	case Diamonds:
		return "Diamonds"
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	case Clubs:
		return "Clubs"
	default:
		return "Suit(" + strconv.Itoa(int(s)) + ")"
	}
}

// Valid reports whether r is one of the thirteen ranks.
func (r Rank) Valid() bool { return r >= Ace && r <= King }

// Parity returns the numeric value mod 2 (1 for odd ranks).
func (r Rank) Parity() int { return int(r) % 2 }

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return strconv.Itoa(int(r))
	}
}

// Color returns the color family of the card's suit.
func (c Card) Color() Color { return c.Suit.Color() }

// Parity returns the parity of the card's rank.
func (c Card) Parity() int { return c.Rank.Parity() }

// String returns the canonical boundary encoding, e.g. "10H", "AS", "QD".
func (c Card) String() string { return c.Rank.String() + c.Suit.Letter() }

// Pretty renders the card with its suit symbol, e.g. "7♦".
func (c Card) Pretty() string { return c.Rank.String() + c.Suit.Symbol() }

// MarshalText encodes the card as its canonical string so JSON carries "10H" rather than a struct.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Rank.Valid() || c.Suit < Diamonds || c.Suit > Clubs {
		return nil, fmt.Errorf("invalid card %d/%d", c.Rank, c.Suit)
	}
	return []byte(c.String()), nil
}

// UnmarshalText parses the canonical string form.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses "10H", "as", "Qd" and the like. The last character is the suit, everything
// before it is the rank, so "10" never collides with single-character ranks.
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 || len(s) > 3 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	var suit Suit
	switch s[len(s)-1] {
	case 'D':
		suit = Diamonds
	case 'H':
		suit = Hearts
	case 'S':
		suit = Spades
	case 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	var rank Rank
	switch r := s[:len(s)-1]; r {
	case "A", "1":
		rank = Ace
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		n, err := strconv.Atoi(r)
		if err != nil || n < 2 || n > 10 {
			return Card{}, fmt.Errorf("invalid rank in card %q", s)
		}
		rank = Rank(n)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// MustParseCards parses a list of card strings and panics on error. Intended for fixtures.
func MustParseCards(codes ...string) []Card {
	out := make([]Card, 0, len(codes))
	for _, code := range codes {
		c, err := ParseCard(code)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

// FormatCards joins the canonical strings of cards with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// PrettyCards joins the suit-symbol forms of cards with spaces.
func PrettyCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Pretty()
	}
	return strings.Join(parts, " ")
}
