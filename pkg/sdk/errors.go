package cinefind

import "github.com/kailas-cloud/cinefind/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound               = domain.ErrNotFound
	ErrInvalidInput           = domain.ErrInvalidInput
	ErrRateLimited            = domain.ErrRateLimited
	ErrCatalogUnavailable     = domain.ErrCatalogUnavailable
	ErrInterpreterUnavailable = domain.ErrInterpreterUnavailable
)
