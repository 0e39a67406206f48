package model

import "errors"

// Common errors used across the application. All lookups fail closed: a
// rejected intent never leaves a partial mutation behind.
var (
	// Session errors
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionNotActive    = errors.New("session is no longer in progress")
	ErrNotInSession        = errors.New("connection does not belong to this session")
	ErrOutOfTurn           = errors.New("not this participant's turn")
	ErrIllegalMove         = errors.New("column is out of range or full")
	ErrParticipantNotFound = errors.New("participant not found")

	// Queue errors
	ErrNotQueued          = errors.New("participant is not queued")
	ErrAlreadyInSession   = errors.New("connection is already in a live session")
	ErrConnectionRequired = errors.New("a connected event stream is required")

	// Archive errors
	ErrRecordNotFound = errors.New("session record not found")
	ErrStatsNotFound  = errors.New("stats not found")
)
