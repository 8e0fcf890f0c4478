package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a rejected action. Transports map kinds to their own status codes.
type ErrorKind string

const (
	KindInsufficientCards     ErrorKind = "InsufficientCards"
	KindInvalidRulerSelection ErrorKind = "InvalidRulerSelection"
	KindCardNotInHand         ErrorKind = "CardNotInHand"
	KindIllegalPlay           ErrorKind = "IllegalPlay"
	KindNotYourTurn           ErrorKind = "NotYourTurn"
	KindEmptyDeck             ErrorKind = "EmptyDeck"
	KindChoicePending         ErrorKind = "ChoicePending"
	KindUnexpectedAction      ErrorKind = "UnexpectedAction"
	KindGameOver              ErrorKind = "GameOver"
	KindSessionNotFound       ErrorKind = "SessionNotFound"
	KindInvalidChoice         ErrorKind = "InvalidChoice"
	KindInvalidAction         ErrorKind = "InvalidAction"
)

// Error is a rule violation. Two errors are equal under errors.Is when their kinds match.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches any *Error of the same kind, so errors.Is(err, ErrIllegalPlay) works for
// every detailed IllegalPlay error.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInsufficientCards     = &Error{Kind: KindInsufficientCards, Message: "not enough cards in deck"}
	ErrInvalidRulerSelection = &Error{Kind: KindInvalidRulerSelection, Message: "invalid ruler selection"}
	ErrCardNotInHand         = &Error{Kind: KindCardNotInHand, Message: "card not in hand"}
	ErrIllegalPlay           = &Error{Kind: KindIllegalPlay, Message: "illegal play"}
	ErrNotYourTurn           = &Error{Kind: KindNotYourTurn, Message: "not your turn"}
	ErrEmptyDeck             = &Error{Kind: KindEmptyDeck, Message: "deck is empty"}
	ErrChoicePending         = &Error{Kind: KindChoicePending, Message: "a choice is pending"}
	ErrUnexpectedAction      = &Error{Kind: KindUnexpectedAction, Message: "unexpected action"}
	ErrGameOver              = &Error{Kind: KindGameOver, Message: "game is over"}
	ErrSessionNotFound       = &Error{Kind: KindSessionNotFound, Message: "session not found"}
	ErrInvalidChoice         = &Error{Kind: KindInvalidChoice, Message: "invalid choice"}
	ErrInvalidAction         = &Error{Kind: KindInvalidAction, Message: "invalid action"}
)

func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Errorf builds a detailed error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) error {
	return errorf(kind, format, args...)
}

// KindOf returns the kind of a rule error, or "" for anything else.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
