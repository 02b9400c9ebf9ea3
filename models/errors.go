package models

import "errors"

// Sentinel errors shared by repositories and services. Handlers map these
// to HTTP status codes with errors.Is.
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrNotOwner     = errors.New("not the project owner")
	ErrNotFound     = errors.New("record not found")
	ErrFetch        = errors.New("fetch failed")
	ErrPersist      = errors.New("persist failed")
)
