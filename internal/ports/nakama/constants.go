package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a match with a free seat.
	RpcQuickMatch = "rogueace_quick_match"

	// RpcState returns the snapshot of a store session.
	RpcState = "rogueace_state"

	// RpcAction applies one action to a store session.
	RpcAction = "rogueace_action"

	// RpcRemove drops a store session.
	RpcRemove = "rogueace_remove"

	// MatchName is the authoritative match handler name registered with Nakama.
	MatchName = "rogueace_match"
)

// Op codes for client messages and server events. Payloads are JSON.
const (
	// Client -> Server
	OpAction       int64 = 1 // app.Action; the seat is taken from the sender
	OpRequestState int64 = 2

	// Server -> Client events
	OpMatchState int64 = 101 // seats and names
	OpGameState  int64 = 102 // snapshot scoped to the recipient's seat
	OpGameError  int64 = 103 // send privately
)

// Nakama error codes (gRPC numbering).
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codeFailedPrecondition = 9
	codeInternal           = 13
)
