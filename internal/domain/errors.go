package domain

import "errors"

// Sentinel errors. Check with errors.Is.
var (
	ErrEmptyPool       = errors.New("pool is empty")
	ErrMalformedRecord = errors.New("malformed record")
	ErrFileUnavailable = errors.New("pool file unavailable")
	ErrWordNotFound    = errors.New("word not found")
	ErrUnknownPool     = errors.New("unknown pool")
	ErrUnknownMode     = errors.New("unknown mode")
	ErrInvalidOutcome  = errors.New("invalid outcome")
)
