package interview

import "errors"

var (
	// ErrRetrievalUnavailable wraps a failed exemplar search
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
	// ErrCompletionUnavailable wraps a failed completion call
	ErrCompletionUnavailable = errors.New("completion unavailable")
	// ErrSessionNotFound is returned for an unknown, expired or nil session
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidTransition is returned when an answer is submitted to a terminated interview
	ErrInvalidTransition = errors.New("invalid transition: interview has ended")
)
