package ports

import "github.com/lotoze/ktrun/internal/core/domain"

// Reporter consumes structured test events and aggregates them into a run
// summary. Implementations must be safe for concurrent use, targets run in
// parallel.
//
//go:generate go run go.uber.org/mock/mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Report consumes a single test event.
	Report(ev domain.TestEvent)
	// Summary returns the aggregate of everything reported so far.
	Summary() domain.RunSummary
}
