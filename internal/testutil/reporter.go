package testutil

import (
	"context"
	"sync"
)

// RecordingReporter records captured faults
type RecordingReporter struct {
	mu     sync.Mutex
	errors []error
}

func (r *RecordingReporter) CaptureException(_ context.Context, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

// Errors returns the captured faults
func (r *RecordingReporter) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errors...)
}
