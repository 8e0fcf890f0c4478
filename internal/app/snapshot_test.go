package app

import (
	"encoding/json"
	"strings"
	"testing"

	"rogueace/internal/domain"
)

func TestForSeatHidesOpponentHand(t *testing.T) {
	s := newTestSession(arranged(t, cards("3C", "4S"), cards("2D", "6C", "10C"), tyrants, "7D"))
	mustApply(t, s, Draw(0))
	full := s.Snapshot()

	view := full.ForSeat(0)
	if *view.Viewer != 0 {
		t.Fatalf("viewer = %d", *view.Viewer)
	}
	if len(view.Players[0].Hand) != 4 || view.Players[0].Hidden {
		t.Fatalf("own hand should stay visible: %+v", view.Players[0])
	}
	if view.Players[1].Hand != nil || !view.Players[1].Hidden || view.Players[1].HandCount != 3 {
		t.Fatalf("opponent hand should be a count: %+v", view.Players[1])
	}
	if view.Players[1].Ruler == nil {
		t.Fatalf("rulers are public")
	}

	other := full.ForSeat(1)
	for _, e := range other.History {
		if e.Kind == EventCardsDrawn && e.Cards != nil {
			t.Fatalf("seat 1 can see seat 0's drawn cards: %+v", e)
		}
	}
	mine := full.ForSeat(0)
	found := false
	for _, e := range mine.History {
		if e.Kind == EventCardsDrawn && len(e.Cards) == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("seat 0 should see its own draw")
	}

	if len(full.Players[1].Hand) != 3 {
		t.Fatalf("ForSeat must not modify the original snapshot")
	}
}

func TestSpectatorView(t *testing.T) {
	s := newTestSession(arranged(t, cards("3C"), cards("2D"), tyrants, "7D"))
	view := s.Snapshot().ForSeat(-1)
	if *view.Viewer != -1 {
		t.Fatalf("viewer = %d, want -1", *view.Viewer)
	}
	for _, p := range view.Players {
		if p.Hand != nil || !p.Hidden {
			t.Fatalf("spectators see no hands: %+v", p)
		}
	}
}

func TestSnapshotJSON(t *testing.T) {
	s := newTestSession(arranged(t, cards("5H", "5S", "9C"), cards("3S"), merchants, "7D", "3C"))
	snap := mustApply(t, s, Play(0, one("5H"), one("5S")))

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	for _, want := range []string{`"phase":"resolving"`, `"kind":"pair5"`, `"expects":"salvage_take"`, `"discard_top":"5H"`, `"candidates":["7D","3C"]`} {
		if !strings.Contains(body, want) {
			t.Fatalf("snapshot JSON missing %s: %s", want, body)
		}
	}

	var back Snapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Pending == nil || back.Pending.Kind != domain.PendingSalvage {
		t.Fatalf("pending lost in round trip: %+v", back.Pending)
	}
}

func TestStatusDescribesNextStep(t *testing.T) {
	s := newTestSession(arranged(t, cards("3C", "4S"), cards("2D"), tyrants, "7D"))
	snap := mustApply(t, s, Play(0, one("3C")))
	if !strings.Contains(snap.Status, "Seat 0 played") || !strings.Contains(snap.Status, "Seat 1 to play") {
		t.Fatalf("status = %q", snap.Status)
	}
	if len(snap.History) == 0 || snap.History[0].Seq != 1 || snap.History[0].ID == "" {
		t.Fatalf("history entries should be stamped: %+v", snap.History)
	}
}
