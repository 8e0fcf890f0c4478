package main

import (
	"math/rand"
	"strings"
	"testing"

	"rogueace/internal/app"
	"rogueace/internal/domain"
)

func arranged(t *testing.T, hand0, hand1 []domain.Card, top string) *domain.Game {
	t.Helper()
	g, err := domain.NewArrangedGame("cli", domain.DefaultRules(), [][]domain.Card{hand0, hand1},
		domain.MustParseCards("QS", "QH"), domain.MustParseCards(top))
	if err != nil {
		t.Fatalf("NewArrangedGame: %v", err)
	}
	return g
}

func kinds(opts []option) map[app.ActionKind]int {
	out := map[app.ActionKind]int{}
	for _, o := range opts {
		out[o.Action.Kind]++
	}
	return out
}

func TestMenu_Setup(t *testing.T) {
	g, err := domain.NewGame("cli", domain.DefaultRules(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if seat := actingSeat(g); seat != 0 {
		t.Fatalf("actingSeat = %d, want 0", seat)
	}
	opts := menu(g, 0)
	if len(opts) != len(g.Players[0].Hand) || kinds(opts)[app.ActionPickRuler] != len(opts) {
		t.Fatalf("setup menu should offer one ruler per card: %+v", opts)
	}
}

func TestMenu_Playing(t *testing.T) {
	g := arranged(t, domain.MustParseCards("KS", "KC", "2D"), domain.MustParseCards("4C"), "7H")
	opts := menu(g, 0)
	k := kinds(opts)
	if k[app.ActionDraw] != 1 || k[app.ActionPass] != 0 || k[app.ActionPlay] == 0 {
		t.Fatalf("unexpected menu %+v", opts)
	}
	found := false
	for _, o := range opts {
		if strings.Contains(o.Label, "Royal Decree") {
			found = true
		}
	}
	if !found {
		t.Fatalf("the king pair should be labelled with its ability: %+v", opts)
	}
}

func TestMenu_PassOnlyWhenStuck(t *testing.T) {
	g := arranged(t, domain.MustParseCards("2S", "4C"), domain.MustParseCards("4D"), "7H")
	g.Deck = domain.NewDeckOf(nil)
	opts := menu(g, 0)
	if len(opts) != 1 || opts[0].Action.Kind != app.ActionPass {
		t.Fatalf("stuck seat should only pass: %+v", opts)
	}
}

func TestMenu_Resolving(t *testing.T) {
	g := arranged(t, domain.MustParseCards("3H"), domain.MustParseCards("4C", "6D"), "7H")
	g.Phase = domain.PhaseResolving
	g.Pending = &domain.PendingChoice{Kind: domain.PendingFort, Player: 0}

	opts := menu(g, 0)
	if len(opts) != 2 || kinds(opts)[app.ActionResolveChoice] != 2 {
		t.Fatalf("fort should offer two choices: %+v", opts)
	}
	if !strings.HasPrefix(opts[0].Label, "Fort now") || !strings.HasPrefix(opts[1].Label, "Fort later") {
		t.Fatalf("labels = %q, %q", opts[0].Label, opts[1].Label)
	}
	if seat := actingSeat(g); seat != 0 {
		t.Fatalf("actingSeat = %d, want the pending owner", seat)
	}
}
