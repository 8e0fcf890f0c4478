package app

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"rogueace/internal/config"
	"rogueace/internal/domain"
)

func seededStore(t *testing.T, seed int64) *Store {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = seed
	st, err := NewStore(cfg, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return st
}

func TestStoreCreatesOnMiss(t *testing.T) {
	st := seededStore(t, 3)
	ctx := context.Background()

	snap, err := st.State(ctx, "table-1")
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if snap.SessionID != "table-1" || snap.Phase != domain.PhaseSetup {
		t.Fatalf("unexpected fresh snapshot %+v", snap)
	}
	if len(snap.Wins) != 2 || snap.Wins[0] != 0 || snap.Wins[1] != 0 {
		t.Fatalf("wins = %v", snap.Wins)
	}

	snap, err = st.State(ctx, "  ")
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if snap.SessionID != DefaultSessionID {
		t.Fatalf("blank id should map to %q, got %q", DefaultSessionID, snap.SessionID)
	}
	if got := st.IDs(); !reflect.DeepEqual(got, []string{DefaultSessionID, "table-1"}) {
		t.Fatalf("IDs() = %v", got)
	}
}

func TestStateIsIdempotent(t *testing.T) {
	st := seededStore(t, 5)
	ctx := context.Background()
	first, err := st.State(ctx, "a")
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	second, err := st.State(ctx, "a")
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated reads differ:\n%+v\n%+v", first, second)
	}

	first.Players[0].Hand[0] = domain.Card{Rank: domain.King, Suit: domain.Clubs}
	first.History[0].Detail = "changed"
	third, _ := st.State(ctx, "a")
	if !reflect.DeepEqual(second, third) {
		t.Fatalf("mutating a snapshot leaked into the session")
	}
}

func TestStoreSeedReproducible(t *testing.T) {
	a, _ := seededStore(t, 11).State(context.Background(), "x")
	b, _ := seededStore(t, 11).State(context.Background(), "x")
	if !reflect.DeepEqual(a.Hand(0), b.Hand(0)) || !reflect.DeepEqual(a.Hand(1), b.Hand(1)) {
		t.Fatalf("same seed dealt different hands: %v vs %v", a.Hand(0), b.Hand(0))
	}
}

func TestStoreApplyAndRemove(t *testing.T) {
	st := seededStore(t, 9)
	ctx := context.Background()

	snap, err := st.State(ctx, "r")
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	snap, err = st.Apply(ctx, "r", PickRuler(0, snap.Hand(0)[0]))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if snap.Players[0].Ruler == nil {
		t.Fatalf("ruler not recorded")
	}
	if _, err := st.Apply(ctx, "r", PickRuler(0, snap.Hand(0)[0])); domain.KindOf(err) != domain.KindInvalidRulerSelection {
		t.Fatalf("second pick err = %v", err)
	}

	if err := st.Remove("r"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := st.Lookup("r"); ok {
		t.Fatalf("session still present after Remove")
	}
	err = st.Remove("r")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("Remove missing err = %v, want SessionNotFound", err)
	}
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	st := seededStore(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := st.State(ctx, "c"); !errors.Is(err, context.Canceled) {
		t.Fatalf("State err = %v, want context.Canceled", err)
	}
	if _, err := st.Apply(ctx, "c", Reset()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Apply err = %v, want context.Canceled", err)
	}
	if len(st.IDs()) != 0 {
		t.Fatalf("cancelled calls must not create sessions")
	}
}

func TestNewStoreRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Players = 4
	if _, err := NewStore(cfg, nil); err == nil {
		t.Fatalf("expected error for 4 players")
	}
}

func TestStoreConcurrentSessions(t *testing.T) {
	st := seededStore(t, 21)
	ctx := context.Background()
	ids := []string{"s1", "s2", "s3", "s4"}

	var wg sync.WaitGroup
	for _, id := range ids {
		for worker := 0; worker < 4; worker++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				for i := 0; i < 20; i++ {
					snap, err := st.State(ctx, id)
					if err != nil {
						t.Errorf("State(%s): %v", id, err)
						return
					}
					for _, p := range snap.Players {
						if p.Ruler == nil && len(p.Hand) > 0 {
							// racing pickers: only one wins per seat
							_, _ = st.Apply(ctx, id, PickRuler(p.Seat, p.Hand[0]))
						}
					}
					_, _ = st.Apply(ctx, id, Draw(snap.Turn))
				}
			}(id)
		}
	}
	wg.Wait()

	for _, id := range ids {
		s, ok := st.Lookup(id)
		if !ok {
			t.Fatalf("session %s missing", id)
		}
		g := s.Game()
		if err := g.CheckConservation(); err != nil {
			t.Fatalf("session %s: %v", id, err)
		}
		if !g.RulersChosen() {
			t.Fatalf("session %s: rulers not chosen", id)
		}
	}
}

func TestWinsAreSessionScoped(t *testing.T) {
	st := seededStore(t, 2)
	a, _ := st.Session("a")
	b, _ := st.Session("b")

	a.mu.Lock()
	g, err := domain.NewArrangedGame("fixed", domain.DefaultRules(),
		[][]domain.Card{cards("3C"), cards("2D")}, cards("KS", "KH"), cards("7D"))
	if err != nil {
		a.mu.Unlock()
		t.Fatalf("NewArrangedGame: %v", err)
	}
	a.game = g
	a.mu.Unlock()

	snap, err := st.Apply(context.Background(), "a", Play(0, one("3C")))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if snap.Wins[1] != 1 {
		t.Fatalf("wins = %v", snap.Wins)
	}
	if other := b.Snapshot(); other.Wins[0] != 0 || other.Wins[1] != 0 {
		t.Fatalf("wins leaked to another session: %v", other.Wins)
	}
}
