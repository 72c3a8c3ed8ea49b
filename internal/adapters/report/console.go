// Package report provides the console test reporter.
package report

import (
	"sync"

	"github.com/lotoze/ktrun/internal/core/domain"
	"github.com/lotoze/ktrun/internal/core/ports"
	"go.trai.ch/zerr"
)

// Console implements ports.Reporter by logging events and accumulating a
// run summary. Safe for concurrent use, targets report in parallel.
type Console struct {
	logger ports.Logger

	mu      sync.Mutex
	summary domain.RunSummary
	// running tracks tests between testStarted and testFinished; the
	// protocol permits testIgnored after testStarted, which must not count
	// the test twice.
	running map[string]bool
}

// NewConsole creates a new Console reporter.
func NewConsole(logger ports.Logger) *Console {
	return &Console{logger: logger, running: make(map[string]bool)}
}

var _ ports.Reporter = (*Console)(nil)

// Report consumes a single test event.
func (r *Console) Report(ev domain.TestEvent) {
	switch ev.Kind {
	case domain.EventTestStarted:
		r.update(func(s *domain.RunSummary) {
			s.Total++
			r.running[testKey(ev)] = true
		})
	case domain.EventTestFailed:
		r.update(func(s *domain.RunSummary) { s.Failed++ })
		err := zerr.With(zerr.With(zerr.New("test failed"), "test", ev.Name), "message", ev.Message)
		if ev.Details != "" {
			err = zerr.With(err, "details", ev.Details)
		}
		r.logger.Error(err)
	case domain.EventTestIgnored:
		r.update(func(s *domain.RunSummary) {
			// Already counted if a testStarted preceded the ignore.
			if !r.running[testKey(ev)] {
				s.Total++
			}
			s.Ignored++
		})
		r.logger.Info("ignored: " + ev.Name)
	case domain.EventTestFinished:
		r.update(func(s *domain.RunSummary) {
			s.Duration += ev.Duration
			delete(r.running, testKey(ev))
		})
	case domain.EventOutput:
		r.logger.Info(ev.Line)
	case domain.EventSuiteStarted, domain.EventSuiteFinished:
		// Suites contribute structure, not counts.
	}
}

// Summary returns the aggregate of everything reported so far.
func (r *Console) Summary() domain.RunSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.summary
	s.Passed = s.Total - s.Failed - s.Ignored
	return s
}

func (r *Console) update(fn func(*domain.RunSummary)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.summary)
}

// testKey identifies a test across its started/ignored/finished events.
// Targets report in parallel, so the suite path disambiguates equal names.
func testKey(ev domain.TestEvent) string {
	return ev.Suite + "/" + ev.Name
}
