package domain

import "errors"

var (
	// ErrNotFound signals a missing catalog item.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals a malformed caller request (empty query, bad id, bad page).
	ErrInvalidInput = errors.New("invalid input")
	// ErrRateLimited signals that the catalog rejected the call for quota reasons.
	ErrRateLimited = errors.New("rate limited")
	// ErrCatalogUnavailable signals a catalog transport, status, decode or breaker failure.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrInterpreterUnavailable signals a language-interpretation service failure.
	ErrInterpreterUnavailable = errors.New("interpreter unavailable")
	// ErrBudgetExhausted signals that the interpreter token budget is spent.
	ErrBudgetExhausted = errors.New("token budget exhausted")
)
