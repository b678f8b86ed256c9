package services

import "errors"

var (
	// ErrNotFound means the id did not resolve under the caller's client
	// scope.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument means the request was rejected before any write.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrProviderUnavailable means an external collaborator failed and no
	// local fallback exists for the operation.
	ErrProviderUnavailable = errors.New("provider unavailable")
)
