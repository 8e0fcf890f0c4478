package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestLowestAvailableSeat(t *testing.T) {
	tests := []struct {
		name  string
		seats []string
		want  int
	}{
		{name: "all empty", seats: []string{"", ""}, want: 0},
		{name: "first taken", seats: []string{"u1", ""}, want: 1},
		{name: "full", seats: []string{"u1", "u2"}, want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LowestAvailableSeat(tt.seats); got != tt.want {
				t.Fatalf("LowestAvailableSeat() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeLabel(t *testing.T) {
	g := &Game{Phase: PhaseSetup}
	label := ComputeLabel(g, []string{"a", ""})
	if !label.Open || label.Game != "rogueace" || label.Phase != string(PhaseSetup) {
		t.Fatalf("unexpected label: %+v", label)
	}

	label = ComputeLabel(g, []string{"a", "b"})
	if label.Open {
		t.Fatalf("expected label.Open=false for a full table")
	}

	g.Phase = PhasePlaying
	label = ComputeLabel(g, []string{"a", ""})
	if label.Open {
		t.Fatalf("expected label.Open=false once play has started")
	}

	if _, err := json.Marshal(label); err != nil {
		t.Fatalf("label should marshal: %v", err)
	}
}

func TestRemoveCards(t *testing.T) {
	hand := MustParseCards("3C", "4H", "5D", "6S")
	played := MustParseCards("4H", "6S")

	got := RemoveCards(hand, played)
	want := MustParseCards("3C", "5D")

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RemoveCards() = %v, want %v", got, want)
	}
	if len(hand) != 4 {
		t.Fatalf("RemoveCards mutated the input hand: %v", hand)
	}
}

func TestContainsAllAndDuplicates(t *testing.T) {
	hand := MustParseCards("3C", "4H", "5D")
	if !ContainsAll(hand, MustParseCards("5D", "3C")) {
		t.Fatalf("ContainsAll should find both cards")
	}
	if ContainsAll(hand, MustParseCards("5D", "5H")) {
		t.Fatalf("ContainsAll should not find 5H")
	}
	if HasDuplicates(hand) {
		t.Fatalf("HasDuplicates reported a duplicate in %v", hand)
	}
	if !HasDuplicates(MustParseCards("3C", "3C")) {
		t.Fatalf("HasDuplicates missed a duplicate")
	}
}
