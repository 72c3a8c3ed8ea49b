package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingConfiguration is returned when a required configuration
	// field, such as the simulator device id, is absent.
	ErrMissingConfiguration = zerr.New("missing configuration")

	// ErrNoTargets is returned when the manifest contains no targets
	// matching the requested names.
	ErrNoTargets = zerr.New("no matching test targets")

	// ErrTestsFailed is returned by the application when the run summary
	// contains failed tests. Process exit codes never carry this signal,
	// the output protocol does.
	ErrTestsFailed = zerr.New("tests failed")
)
