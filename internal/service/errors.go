package service

import "errors"

// Sentinel errors surfaced by wishlist operations.
var (
	// ErrInvalidURL means user input was rejected at add time: empty after
	// trimming, or not an absolute URL with both scheme and host.
	// Recoverable; shown to the user as a transient message.
	ErrInvalidURL = errors.New("invalid url")

	// ErrIndexOutOfRange guards update/delete against a stale or buggy item
	// index. In a correct integration it never fires.
	ErrIndexOutOfRange = errors.New("item index out of range")
)
