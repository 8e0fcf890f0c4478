package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/heroiclabs/nakama-common/runtime"

	"rogueace/internal/app"
)

// StateRequest is the rogueace_state payload. Seat scopes the view when set.
type StateRequest struct {
	SessionID string `json:"session_id"`
	Seat      *int   `json:"seat,omitempty"`
}

// ActionRequest is the rogueace_action payload.
type ActionRequest struct {
	SessionID string     `json:"session_id"`
	Action    app.Action `json:"action"`
	Seat      *int       `json:"seat,omitempty"`
}

// RemoveRequest is the rogueace_remove payload.
type RemoveRequest struct {
	SessionID string `json:"session_id"`
}

// RegisterRPCs registers Nakama RPC endpoints backed by store.
func RegisterRPCs(initializer runtime.Initializer, store *app.Store) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcState, rpcState(store)); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcAction, rpcAction(store)); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcRemove, rpcRemove(store))
}

type rpcFunc func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error)

func decodePayload(payload string, v interface{}) error {
	if strings.TrimSpace(payload) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return runtime.NewError("Invalid payload", codeInvalidArgument)
	}
	return nil
}

func encodeView(snap app.Snapshot, seat *int) (string, error) {
	if seat != nil {
		snap = snap.ForSeat(*seat)
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return "", runtime.NewError("Internal error", codeInternal)
	}
	return string(b), nil
}

func rpcState(store *app.Store) rpcFunc {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		var req StateRequest
		if err := decodePayload(payload, &req); err != nil {
			return "", err
		}
		snap, err := store.State(ctx, req.SessionID)
		if err != nil {
			logger.Error("rpcState: Failed to read session %q: %v", req.SessionID, err)
			return "", toRuntimeError(err)
		}
		return encodeView(snap, req.Seat)
	}
}

func rpcAction(store *app.Store) rpcFunc {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		var req ActionRequest
		if err := decodePayload(payload, &req); err != nil {
			return "", err
		}
		if req.Action.Kind == "" {
			return "", runtime.NewError("Action kind required", codeInvalidArgument)
		}
		snap, err := store.Apply(ctx, req.SessionID, req.Action)
		if err != nil {
			logger.Warn("rpcAction: Session %q rejected %s from seat %d: %v", req.SessionID, req.Action.Kind, req.Action.Seat, err)
			return "", toRuntimeError(err)
		}
		return encodeView(snap, req.Seat)
	}
}

func rpcRemove(store *app.Store) rpcFunc {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		var req RemoveRequest
		if err := decodePayload(payload, &req); err != nil {
			return "", err
		}
		if err := store.Remove(req.SessionID); err != nil {
			return "", toRuntimeError(err)
		}
		logger.Info("rpcRemove: Session %q removed", req.SessionID)
		return "{}", nil
	}
}
