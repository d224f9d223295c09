package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	catalog     CatalogPinger
	interpreter InterpreterChecker
}

// New creates a Service. interpreter can be nil when no interpretation service is configured.
func New(catalog CatalogPinger, interpreter InterpreterChecker) *Service {
	return &Service{catalog: catalog, interpreter: interpreter}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.catalog.Ping(ctx); err != nil {
		checks["catalog"] = CheckError
	} else {
		checks["catalog"] = CheckOK
	}

	if s.interpreter != nil {
		if err := s.interpreter.HealthCheck(ctx); err != nil {
			checks["interpreter"] = CheckError
		} else {
			checks["interpreter"] = CheckOK
		}
	}

	// Catalog failure is fatal, interpreter failure only degrades.
	status := Healthy
	switch {
	case checks["catalog"] == CheckError:
		status = Unhealthy
	case checks["interpreter"] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
