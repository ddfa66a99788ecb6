package health

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all dependencies answer.
	Healthy Status = "ok"
	// Degraded indicates at least one dependency failed its check.
	Degraded Status = "degraded"
)

// CheckResult represents an individual dependency check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing check.
	CheckError CheckResult = "error"
)

// Report aggregates check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

const defaultCheckTimeout = 5 * time.Second

// Service checks the remote dependencies a lookup needs.
type Service struct {
	deps    map[string]Pinger
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a Service with no dependencies; it reports healthy until some are added.
func New(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{deps: make(map[string]Pinger), timeout: defaultCheckTimeout, logger: logger}
}

// WithDependency registers a named dependency. A nil pinger is ignored.
func (s *Service) WithDependency(name string, p Pinger) *Service {
	if p != nil {
		s.deps[name] = p
	}
	return s
}

// WithTimeout bounds each individual check.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Check pings every dependency in name order.
func (s *Service) Check(ctx context.Context) Report {
	names := make([]string, 0, len(s.deps))
	for name := range s.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]CheckResult, len(names))
	status := Healthy
	for _, name := range names {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.deps[name].Ping(cctx)
		cancel()
		if err != nil {
			s.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			checks[name] = CheckError
			status = Degraded
			continue
		}
		checks[name] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}
