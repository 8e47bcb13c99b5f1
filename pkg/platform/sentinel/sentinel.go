package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so callers can translate them into domain errors.
var (
	ErrNotFound = errors.New("not found")
	ErrExpired  = errors.New("expired")
)
