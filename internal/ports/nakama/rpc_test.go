package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"

	"rogueace/internal/app"
	"rogueace/internal/config"
	"rogueace/internal/domain"
)

func testStore(t *testing.T) *app.Store {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 3
	store, err := app.NewStore(cfg, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func runtimeCode(t *testing.T, err error) int {
	t.Helper()
	var rtErr *runtime.Error
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *runtime.Error, got %T (%v)", err, err)
	}
	return rtErr.Code
}

func TestRpcState(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	out, err := rpcState(store)(ctx, noopLogger{}, nil, nil, `{"session_id":"t1","seat":0}`)
	if err != nil {
		t.Fatalf("rpcState: %v", err)
	}
	var snap app.Snapshot
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap.SessionID != "t1" || snap.Viewer == nil || *snap.Viewer != 0 || !snap.Players[1].Hidden {
		t.Fatalf("unexpected scoped state %+v", snap)
	}

	out, err = rpcState(store)(ctx, noopLogger{}, nil, nil, "")
	if err != nil {
		t.Fatalf("rpcState with empty payload: %v", err)
	}
	if !strings.Contains(out, fmt.Sprintf(`"session_id":%q`, app.DefaultSessionID)) {
		t.Fatalf("empty payload should read the default session: %s", out)
	}

	if _, err := rpcState(store)(ctx, noopLogger{}, nil, nil, "{"); runtimeCode(t, err) != codeInvalidArgument {
		t.Fatalf("malformed payload should be INVALID_ARGUMENT")
	}
}

func TestRpcAction(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	snap, _ := store.State(ctx, "t2")

	req, _ := json.Marshal(ActionRequest{SessionID: "t2", Action: app.PickRuler(0, snap.Hand(0)[0])})
	out, err := rpcAction(store)(ctx, noopLogger{}, nil, nil, string(req))
	if err != nil {
		t.Fatalf("rpcAction: %v", err)
	}
	if !strings.Contains(out, `"ruler_name"`) {
		t.Fatalf("ruler missing from response: %s", out)
	}

	// Drawing during setup is rejected with the state untouched.
	req, _ = json.Marshal(ActionRequest{SessionID: "t2", Action: app.Draw(0)})
	_, err = rpcAction(store)(ctx, noopLogger{}, nil, nil, string(req))
	if code := runtimeCode(t, err); code != codeFailedPrecondition {
		t.Fatalf("code = %d, want %d", code, codeFailedPrecondition)
	}
	var gameErr GameError
	if jerr := json.Unmarshal([]byte(err.Error()), &gameErr); jerr != nil || gameErr.Kind != domain.KindUnexpectedAction {
		t.Fatalf("error payload = %q", err.Error())
	}

	if _, err := rpcAction(store)(ctx, noopLogger{}, nil, nil, `{"session_id":"t2"}`); runtimeCode(t, err) != codeInvalidArgument {
		t.Fatalf("missing action kind should be INVALID_ARGUMENT")
	}
}

func TestRpcRemove(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	if _, err := store.State(ctx, "gone"); err != nil {
		t.Fatalf("State: %v", err)
	}
	if _, err := rpcRemove(store)(ctx, noopLogger{}, nil, nil, `{"session_id":"gone"}`); err != nil {
		t.Fatalf("rpcRemove: %v", err)
	}
	if _, err := rpcRemove(store)(ctx, noopLogger{}, nil, nil, `{"session_id":"gone"}`); runtimeCode(t, err) != codeNotFound {
		t.Fatalf("second remove should be NOT_FOUND")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		kind domain.ErrorKind
		want int
	}{
		{domain.KindSessionNotFound, codeNotFound},
		{domain.KindIllegalPlay, codeInvalidArgument},
		{domain.KindCardNotInHand, codeInvalidArgument},
		{domain.KindNotYourTurn, codeFailedPrecondition},
		{domain.KindChoicePending, codeFailedPrecondition},
		{"", codeInternal},
	}
	for _, test := range tests {
		if got := errorCode(test.kind); got != test.want {
			t.Fatalf("errorCode(%q) = %d, want %d", test.kind, got, test.want)
		}
	}
}

// fakeNakama implements only the module calls quick match makes.
type fakeNakama struct {
	runtime.NakamaModule
	open    []*api.Match
	query   string
	created int
	listErr error
}

func (f *fakeNakama) MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error) {
	f.query = query
	return f.open, f.listErr
}

func (f *fakeNakama) MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error) {
	f.created++
	return fmt.Sprintf("%s-%d", module, f.created), nil
}

func TestRpcQuickMatch(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		nk      *fakeNakama
		payload string
		want    QuickMatchResponse
		created int
	}{
		{"joins an open table", &fakeNakama{open: []*api.Match{{MatchId: "m-1"}}}, "", QuickMatchResponse{MatchID: "m-1"}, 0},
		{"creates when none open", &fakeNakama{}, "", QuickMatchResponse{MatchID: MatchName + "-1", IsNew: true}, 1},
		{"fresh skips the search", &fakeNakama{open: []*api.Match{{MatchId: "m-1"}}}, `{"fresh":true}`, QuickMatchResponse{MatchID: MatchName + "-1", IsNew: true}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := rpcQuickMatch(ctx, noopLogger{}, nil, tt.nk, tt.payload)
			if err != nil {
				t.Fatalf("rpcQuickMatch: %v", err)
			}
			var got QuickMatchResponse
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tt.want || tt.nk.created != tt.created {
				t.Fatalf("got %+v (created %d), want %+v (created %d)", got, tt.nk.created, tt.want, tt.created)
			}
		})
	}

	nk := &fakeNakama{listErr: errors.New("db down")}
	if _, err := rpcQuickMatch(ctx, noopLogger{}, nil, nk, ""); runtimeCode(t, err) != codeInternal {
		t.Fatalf("list failure should map to an internal error")
	}
	if !strings.Contains(nk.query, "+label.phase:setup") {
		t.Fatalf("query %q should only match tables in setup", nk.query)
	}
	if _, err := rpcQuickMatch(ctx, noopLogger{}, nil, &fakeNakama{}, "{"); runtimeCode(t, err) != codeInvalidArgument {
		t.Fatalf("bad payload should be rejected")
	}
}
