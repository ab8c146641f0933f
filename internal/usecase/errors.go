package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Upstream battle log API failure classes. Each maps to a distinct HTTP
	// status and error reason at the API layer.
	ErrUpstreamAuth      = errors.New("upstream authentication failed")
	ErrUpstreamThrottled = errors.New("upstream rate limited")
	ErrUpstreamPayload   = errors.New("upstream payload malformed")
)
