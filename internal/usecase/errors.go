package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrUpstreamUnavailable   = errors.New("upstream provider unavailable")
	ErrUpstreamNotFound      = errors.New("upstream data not found")
	ErrSyncInProgress        = errors.New("sync already in progress")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
