package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"sysprobe/internal/probes/domain"
)

type fakeResult struct {
	output string
	err    error
}

// fakeRunner returns canned results per command. Results are consumed in
// order, the last one repeats.
type fakeRunner struct {
	mu      sync.Mutex
	results map[string][]fakeResult
	calls   map[string]int
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		results: make(map[string][]fakeResult),
		calls:   make(map[string]int),
	}
}

func (f *fakeRunner) on(command string, results ...fakeResult) *fakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[command] = results
	return f
}

func (f *fakeRunner) Run(ctx context.Context, command string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.calls[command]
	f.calls[command]++

	results := f.results[command]
	if len(results) == 0 {
		return "", &domain.CommandError{Command: command, ExitCode: -1, Err: errors.New("executable file not found")}
	}
	if n >= len(results) {
		n = len(results) - 1
	}
	return results[n].output, results[n].err
}

func (f *fakeRunner) callCount(command string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[command]
}

// blockingRunner never returns before its context is cancelled
type blockingRunner struct{}

func (blockingRunner) Run(ctx context.Context, command string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// stallingRunner blocks on the listed commands until their context is
// cancelled and hands every other command to next
type stallingRunner struct {
	stalled map[string]bool
	next    domain.CommandRunner
}

func (r stallingRunner) Run(ctx context.Context, command string) (string, error) {
	if r.stalled[command] {
		<-ctx.Done()
		return "", &domain.CommandError{Command: command, ExitCode: -1, Err: ctx.Err()}
	}
	return r.next.Run(ctx, command)
}

type fakeReader map[string]domain.Value

func (f fakeReader) Lookup(name string) (domain.Value, bool) {
	v, ok := f[name]
	return v, ok
}

// fakeRepository records the mirrored entries
type fakeRepository struct {
	mu      sync.Mutex
	entries map[string]domain.Entry
	saves   int
	err     error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{entries: make(map[string]domain.Entry)}
}

func (r *fakeRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.err != nil {
		return r.err
	}
	r.entries[entry.Name] = entry
	return nil
}

func (r *fakeRepository) DeleteEntry(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
	return nil
}

func (r *fakeRepository) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e)
	}
	return result, nil
}

func (r *fakeRepository) get(name string) (domain.Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	return e, ok
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
