package nakama

import (
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"rogueace/internal/domain"
)

// GameError is the payload of OpGameError and of failed RPC responses.
type GameError struct {
	Kind    domain.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

// errorCode maps a rule error kind onto the Nakama error code clients see.
func errorCode(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindSessionNotFound:
		return codeNotFound
	case domain.KindInvalidAction, domain.KindInvalidChoice, domain.KindInvalidRulerSelection,
		domain.KindCardNotInHand, domain.KindIllegalPlay:
		return codeInvalidArgument
	case domain.KindNotYourTurn, domain.KindEmptyDeck, domain.KindChoicePending,
		domain.KindUnexpectedAction, domain.KindGameOver, domain.KindInsufficientCards:
		return codeFailedPrecondition
	default:
		return codeInternal
	}
}

// toRuntimeError wraps err for an RPC response.
func toRuntimeError(err error) error {
	kind := domain.KindOf(err)
	payload, _ := json.Marshal(GameError{Kind: kind, Message: err.Error()})
	return runtime.NewError(string(payload), errorCode(kind))
}

// encodeLabel builds the match label advertised to MatchList queries.
func encodeLabel(g *domain.Game, seats []string) (string, error) {
	label := domain.ComputeLabel(g, seats)
	open := 0
	for _, s := range seats {
		if s == "" {
			open++
		}
	}
	st, err := structpb.NewStruct(map[string]interface{}{
		"open":       label.Open,
		"game":       label.Game,
		"phase":      label.Phase,
		"open_seats": open,
	})
	if err != nil {
		return "", err
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(st)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
