package domain

import "errors"

var (
	// ErrMissingUsername rejects requests without a username.
	ErrMissingUsername = errors.New("username is required")

	// ErrUserNotFound means the primary identity lookup confirmed the
	// account does not exist.
	ErrUserNotFound = errors.New("github user not found")

	// ErrUpstreamUnavailable means the primary lookup could not be
	// completed (network failure or a 5xx from GitHub).
	ErrUpstreamUnavailable = errors.New("github is unavailable")

	// ErrRenderFailure wraps errors from the card renderer.
	ErrRenderFailure = errors.New("card render failed")
)
