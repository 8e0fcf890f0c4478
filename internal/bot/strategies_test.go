package bot

import (
	"math/rand"
	"reflect"
	"testing"

	"rogueace/internal/app"
	"rogueace/internal/domain"
)

func cards(codes ...string) []domain.Card { return domain.MustParseCards(codes...) }

func arranged(t *testing.T, hand0, hand1 []domain.Card, top string) *domain.Game {
	t.Helper()
	g, err := domain.NewArrangedGame("bot", domain.DefaultRules(), [][]domain.Card{hand0, hand1}, cards("QS", "QH"), cards(top))
	if err != nil {
		t.Fatalf("NewArrangedGame: %v", err)
	}
	return g
}

func setupGame(t *testing.T, hand0 []domain.Card) *domain.Game {
	t.Helper()
	g, err := domain.NewGame("setup", domain.DefaultRules(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.Players[0].Hand = hand0
	return g
}

func TestGoodBot_CalculateMove(t *testing.T) {
	tests := []struct {
		name  string
		game  func(t *testing.T) *domain.Game
		want  app.ActionKind
		cards []domain.Card
	}{
		{
			name:  "plays lowest matching single",
			game:  func(t *testing.T) *domain.Game { return arranged(t, cards("9H", "3H", "KS", "5S"), cards("2D"), "7H") },
			want:  app.ActionPlay,
			cards: cards("3H"),
		},
		{
			name: "draws without a play",
			game: func(t *testing.T) *domain.Game { return arranged(t, cards("2S", "4C"), cards("2D"), "7H") },
			want: app.ActionDraw,
		},
		{
			name: "passes on an empty deck",
			game: func(t *testing.T) *domain.Game {
				g := arranged(t, cards("2S", "4C"), cards("2D"), "7H")
				g.Deck = domain.NewDeckOf(nil)
				return g
			},
			want: app.ActionPass,
		},
		{
			name:  "picks an ace ruler",
			game:  func(t *testing.T) *domain.Game { return setupGame(t, cards("3C", "AS", "9H")) },
			want:  app.ActionPickRuler,
			cards: cards("AS"),
		},
	}

	bot := &GoodBot{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			move, err := bot.CalculateMove(tt.game(t), 0)
			if err != nil {
				t.Fatalf("CalculateMove failed: %v", err)
			}
			act := move.Action(0)
			if act.Kind != tt.want {
				t.Fatalf("action = %s, want %s", act.Kind, tt.want)
			}
			if tt.cards != nil && !reflect.DeepEqual(act.Cards, tt.cards) {
				t.Fatalf("cards = %v, want %v", act.Cards, tt.cards)
			}
		})
	}
}

func TestBotsWaitTheirTurn(t *testing.T) {
	g := arranged(t, cards("3H"), cards("2D"), "7H")
	for _, brain := range []Brain{&GoodBot{}, &SmartBot{}} {
		if _, err := brain.CalculateMove(g, 1); err != ErrNoMove {
			t.Fatalf("%T err = %v, want ErrNoMove", brain, err)
		}
	}
}

func TestSmartBot_AvoidsPaddingOpponent(t *testing.T) {
	// Royal Decree would give the opponent four cards.
	g := arranged(t, cards("KS", "KC", "3H", "9D"), cards("2D", "4C"), "7H")
	for _, brain := range []Brain{&SmartBot{}, &GoodBot{}} {
		move, err := brain.CalculateMove(g, 0)
		if err != nil {
			t.Fatalf("%T CalculateMove failed: %v", brain, err)
		}
		if !reflect.DeepEqual(move.Cards, cards("3H")) {
			t.Fatalf("%T should shed 3H, played %v", brain, move.Cards)
		}
	}
}

func TestSmartBot_PrefersFreeStep(t *testing.T) {
	g := arranged(t, cards("4S", "4C", "9D"), cards("2D", "4D"), "7H")

	move, err := (&SmartBot{}).CalculateMove(g, 0)
	if err != nil {
		t.Fatalf("CalculateMove failed: %v", err)
	}
	if !reflect.DeepEqual(move.Cards, cards("4S", "4C")) {
		t.Fatalf("smart bot should play the Free Step pair, played %v", move.Cards)
	}

	good, _ := (&GoodBot{}).CalculateMove(g, 0)
	if !reflect.DeepEqual(good.Cards, cards("9D")) {
		t.Fatalf("good bot should shed 9D, played %v", good.Cards)
	}
}

func TestBotsOnlyGoOutWhenForced(t *testing.T) {
	tests := []struct {
		name    string
		hand    []domain.Card
		dryDeck bool
		want    app.ActionKind
	}{
		{"draws instead of playing the last pair", cards("4S", "4C"), false, app.ActionDraw},
		{"draws instead of playing the last single", cards("3H"), false, app.ActionDraw},
		{"plays the last pair with a dry deck", cards("4S", "4C"), true, app.ActionPlay},
		{"plays the last single with a dry deck", cards("3H"), true, app.ActionPlay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, brain := range []Brain{&SmartBot{}, &GoodBot{}} {
				g := arranged(t, tt.hand, cards("2D", "4D"), "7H")
				if tt.dryDeck {
					g.Deck = domain.NewDeckOf(nil)
				}
				move, err := brain.CalculateMove(g, 0)
				if err != nil {
					t.Fatalf("%T CalculateMove failed: %v", brain, err)
				}
				if got := move.Action(0).Kind; got != tt.want {
					t.Fatalf("%T action = %s, want %s", brain, got, tt.want)
				}
			}
		})
	}
}

func TestForcedGoOutLosesTheHand(t *testing.T) {
	for _, brain := range []Brain{&SmartBot{}, &GoodBot{}} {
		g := arranged(t, cards("3H"), cards("2D", "4D"), "7H")
		g.Deck = domain.NewDeckOf(nil)
		move, err := brain.CalculateMove(g, 0)
		if err != nil {
			t.Fatalf("%T CalculateMove failed: %v", brain, err)
		}
		if _, err := app.NewService(rand.New(rand.NewSource(1)), nil).Apply(g, move.Action(0)); err != nil {
			t.Fatalf("%T move rejected: %v", brain, err)
		}
		if g.Phase != domain.PhaseFinished || g.Winner != 1 {
			t.Fatalf("%T: phase=%s winner=%d, want finished with seat 1 winning", brain, g.Phase, g.Winner)
		}
	}
}

func TestSmartBot_FortTiming(t *testing.T) {
	tests := []struct {
		opponent []domain.Card
		want     string
	}{
		{cards("2D", "4C"), domain.FortDefer},
		{cards("2D", "4C", "6H"), domain.FortNow},
	}
	for _, tt := range tests {
		g := arranged(t, cards("3H"), tt.opponent, "7H")
		g.Phase = domain.PhaseResolving
		g.Pending = &domain.PendingChoice{Kind: domain.PendingFort, Player: 0}

		move, err := (&SmartBot{}).CalculateMove(g, 0)
		if err != nil {
			t.Fatalf("CalculateMove failed: %v", err)
		}
		if move.Choice == nil || move.Choice.Option != tt.want {
			t.Fatalf("opponent with %d cards: choice = %+v, want %s", len(tt.opponent), move.Choice, tt.want)
		}
	}
}

func TestSmartBot_SalvageBuildsPairs(t *testing.T) {
	g := arranged(t, cards("9H", "2C"), cards("2D"), "7H")
	g.Phase = domain.PhaseResolving
	g.Pending = &domain.PendingChoice{Kind: domain.PendingSalvage, Player: 0, Candidates: cards("KD", "9S")}

	move, err := (&SmartBot{}).CalculateMove(g, 0)
	if err != nil {
		t.Fatalf("CalculateMove failed: %v", err)
	}
	if move.Choice == nil || move.Choice.Kind != domain.ChoiceSalvageTake || *move.Choice.Card != cards("9S")[0] {
		t.Fatalf("expected to salvage 9S, got %+v", move.Choice)
	}
}

func TestPickRuler(t *testing.T) {
	// Black Sovereign makes the three other black cards wild.
	got := pickRuler(cards("AS", "2C", "4S", "6C", "3H"))
	if got != cards("AS")[0] {
		t.Fatalf("pickRuler = %v, want AS", got)
	}
}

func TestNeedsMove(t *testing.T) {
	g := arranged(t, cards("3H"), cards("2D"), "7H")
	if !NeedsMove(g, 0) || NeedsMove(g, 1) || NeedsMove(g, 5) {
		t.Fatalf("only seat 0 should owe a move")
	}
	g.Phase = domain.PhaseResolving
	g.Pending = &domain.PendingChoice{Kind: domain.PendingTarget, Player: 1}
	if NeedsMove(g, 0) || !NeedsMove(g, 1) {
		t.Fatalf("pending owner should owe the move")
	}
	g.Phase = domain.PhaseFinished
	if NeedsMove(g, 1) {
		t.Fatalf("nobody moves once the hand is over")
	}
}

func TestMoveAction(t *testing.T) {
	ruler := cards("AS")[0]
	choice := domain.FortChoice(domain.FortNow)
	tests := []struct {
		move Move
		want app.ActionKind
	}{
		{Move{Ruler: &ruler}, app.ActionPickRuler},
		{Move{Cards: cards("3H")}, app.ActionPlay},
		{Move{Choice: &choice}, app.ActionResolveChoice},
		{Move{Draw: true}, app.ActionDraw},
		{Move{Pass: true}, app.ActionPass},
	}
	for _, tt := range tests {
		if got := tt.move.Action(1); got.Kind != tt.want || got.Seat != 1 {
			t.Fatalf("%+v -> %+v, want %s", tt.move, got, tt.want)
		}
	}
}

func TestNewBrain(t *testing.T) {
	for _, name := range []string{"easy", "medium", "hard", "Smart"} {
		level, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if _, err := NewBrain(level); err != nil {
			t.Fatalf("NewBrain(%d): %v", level, err)
		}
	}
	if _, err := ParseLevel("god"); err == nil {
		t.Fatalf("expected error for unknown difficulty")
	}
	if _, err := NewBrain(BotLevel(99)); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
