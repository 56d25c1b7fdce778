package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
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

// Service coordinates health checks. A failing source degrades the
// report but never fails it: search still answers from the other source.
type Service struct {
	content ContentChecker
	catalog CatalogChecker
}

// New creates a Service. Either checker can be nil.
func New(content ContentChecker, catalog CatalogChecker) *Service {
	return &Service{content: content, catalog: catalog}
}

// Check runs health checks against both upstream sources.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.content != nil {
		if err := s.content.HealthCheck(ctx); err != nil {
			checks["content"] = CheckError
		} else {
			checks["content"] = CheckOK
		}
	}

	if s.catalog != nil {
		if err := s.catalog.HealthCheck(ctx); err != nil {
			checks["catalog"] = CheckError
		} else {
			checks["catalog"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
