package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session does not exist or has expired.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrInvalidCategory is returned for a category outside the closed set or not offered
	// by the current question.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidTransition is returned when a call is not allowed in the current quiz state,
	// e.g. answering after the result is known.
	ErrInvalidTransition = errors.New("invalid quiz transition")
	// ErrCorruptState indicates a stored snapshot that violates the quiz invariants.
	ErrCorruptState = errors.New("corrupt quiz state")
)
