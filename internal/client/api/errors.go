package api

import "errors"

var (
	// ErrTransport covers network failures, timeouts, and non-2xx
	// responses. The caller shows a generic message; there is no
	// automatic retry.
	ErrTransport = errors.New("transport error")

	// ErrProtocol covers syntactically or structurally unexpected
	// responses (malformed JSON, missing required fields). Treated like
	// ErrTransport for user messaging but logged distinctly.
	ErrProtocol = errors.New("protocol error")

	// ErrCredentialsRejected is a well-formed auth response with
	// success=false.
	ErrCredentialsRejected = errors.New("credentials rejected")
)
