package health

import (
	"context"
	"fmt"
	"sync"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report is the per-dependency outcome of a readiness check.
type Report map[string]string

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) (Report, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers. Nil checkers are skipped.
func NewService(checkers ...Checker) ReadinessUseCase {
	s := &service{}
	for _, ch := range checkers {
		if ch != nil {
			s.checkers = append(s.checkers, ch)
		}
	}
	return s
}

// Ready runs every checker concurrently; the error names the first failing one in registration order.
func (s *service) Ready(ctx context.Context) (Report, error) {
	errs := make([]error, len(s.checkers))
	var wg sync.WaitGroup
	for i, ch := range s.checkers {
		wg.Add(1)
		go func(i int, ch Checker) {
			defer wg.Done()
			errs[i] = ch.Check(ctx)
		}(i, ch)
	}
	wg.Wait()

	report := make(Report, len(s.checkers))
	var first error
	for i, ch := range s.checkers {
		if errs[i] != nil {
			report[ch.Name()] = errs[i].Error()
			if first == nil {
				first = fmt.Errorf("%s: %w", ch.Name(), errs[i])
			}
			continue
		}
		report[ch.Name()] = "ok"
	}
	return report, first
}
