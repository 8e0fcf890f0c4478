package app

// DefaultSessionID is used when a caller does not name a session.
const DefaultSessionID = "default"

// MaxHistory caps the move history kept per hand; older entries are dropped first.
const MaxHistory = 200
