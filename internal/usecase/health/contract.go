package health

import "context"

// CatalogPinger checks content catalog availability.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// InterpreterChecker checks language-interpretation service availability.
type InterpreterChecker interface {
	HealthCheck(ctx context.Context) error
}
