package domain

import (
	"encoding/json"
	"testing"
)

func TestCardStringRoundTrip(t *testing.T) {
	for _, c := range FullDeck() {
		parsed, err := ParseCard(c.String())
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", c.String(), err)
		}
		if parsed != c {
			t.Fatalf("round trip of %v gave %v", c, parsed)
		}
	}
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		in      string
		want    Card
		wantErr bool
	}{
		{in: "10H", want: Card{Rank: Ten, Suit: Hearts}},
		{in: "as", want: Card{Rank: Ace, Suit: Spades}},
		{in: " Qd ", want: Card{Rank: Queen, Suit: Diamonds}},
		{in: "7C", want: Card{Rank: Seven, Suit: Clubs}},
		{in: "1C", want: Card{Rank: Ace, Suit: Clubs}},
		{in: "11H", wantErr: true},
		{in: "ZZ", wantErr: true},
		{in: "7X", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCard(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCard(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseCard(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCardColorAndParity(t *testing.T) {
	if card("7D").Color() != Red || card("7H").Color() != Red {
		t.Fatalf("diamonds and hearts must be red")
	}
	if card("7S").Color() != Black || card("7C").Color() != Black {
		t.Fatalf("spades and clubs must be black")
	}
	if card("AS").Parity() != 1 || card("KS").Parity() != 1 || card("QS").Parity() != 0 {
		t.Fatalf("parity follows the numeric value")
	}
}

func TestFormatAndPrettyCards(t *testing.T) {
	hand := MustParseCards("10H", "AS", "3C")
	if got := FormatCards(hand); got != "10H AS 3C" {
		t.Fatalf("FormatCards = %q", got)
	}
	if got := PrettyCards(hand); got != "10♥ A♠ 3♣" {
		t.Fatalf("PrettyCards = %q", got)
	}
	if PrettyCards(nil) != "" {
		t.Fatalf("PrettyCards of no cards should be empty")
	}
}

func TestCardJSON(t *testing.T) {
	data, err := json.Marshal(MustParseCards("10H", "AS"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["10H","AS"]` {
		t.Fatalf("marshal = %s", data)
	}

	var back []Card
	if err := json.Unmarshal([]byte(`["qd","7c"]`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 2 || back[0] != card("QD") || back[1] != card("7C") {
		t.Fatalf("unmarshal = %v", back)
	}

	if err := json.Unmarshal([]byte(`["1X"]`), &back); err == nil {
		t.Fatalf("expected error for invalid card")
	}
}
