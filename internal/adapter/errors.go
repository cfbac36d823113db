package adapter

import "errors"

var (
	// ErrTransport marks transient network failures (timeouts, refused
	// connections, gateway errors). Callers retry these via the backoff
	// policy; no client state is mutated when a call fails this way.
	ErrTransport = errors.New("transport failure")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("version conflict")
	ErrInternalServerError = errors.New("internal server error")

	// ErrTokenExpired is raised before a network call when the stored bearer
	// token has an exp claim in the past. It wraps ErrUnauthorized so callers
	// handling 401 handle it too.
	ErrTokenExpired = errors.New("bearer token expired")
)
