package domain

// LowestAvailableSeat returns the first free seat index (0-based), or -1 when every seat is taken.
func LowestAvailableSeat(seats []string) int {
	for i := 0; i < len(seats); i++ {
		if seats[i] == "" {
			return i
		}
	}
	return -1
}

// LabelPayload is the match label advertised to the lobby.
type LabelPayload struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// ComputeLabel derives the advertised label from the game and its seat list.
func ComputeLabel(g *Game, seats []string) LabelPayload {
	phase := PhaseSetup
	if g != nil {
		phase = g.Phase
	}
	open := phase == PhaseSetup && LowestAvailableSeat(seats) >= 0
	return LabelPayload{Open: open, Game: "rogueace", Phase: string(phase)}
}

// RemoveCards removes the provided cards from a hand, one occurrence each.
func RemoveCards(hand []Card, played []Card) []Card {
	out := append([]Card{}, hand...)
	for _, pc := range played {
		for i := 0; i < len(out); i++ {
			if out[i] == pc {
				out = append(out[:i], out[i+1:]...)
				break
			}
		}
	}
	return out
}

// ContainsCard reports whether c is in cards.
func ContainsCard(cards []Card, c Card) bool {
	return IndexOfCard(cards, c) >= 0
}

// IndexOfCard returns the position of c in cards, or -1.
func IndexOfCard(cards []Card, c Card) int {
	for i, x := range cards {
		if x == c {
			return i
		}
	}
	return -1
}

// ContainsAll reports whether every card of want is present in hand.
func ContainsAll(hand []Card, want []Card) bool {
	for _, c := range want {
		if !ContainsCard(hand, c) {
			return false
		}
	}
	return true
}

// HasDuplicates reports whether any card appears twice.
func HasDuplicates(cards []Card) bool {
	seen := make(map[Card]struct{}, len(cards))
	for _, c := range cards {
		if _, ok := seen[c]; ok {
			return true
		}
		seen[c] = struct{}{}
	}
	return false
}

// CountAces returns the number of Aces in cards.
func CountAces(cards []Card) int {
	n := 0
	for _, c := range cards {
		if c.Rank == Ace {
			n++
		}
	}
	return n
}
