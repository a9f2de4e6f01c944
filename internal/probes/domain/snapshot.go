package domain

import (
	"context"
	"time"
)

// Entry is the published state of one probe
type Entry struct {
	ProbeID   string
	Name      string
	Type      string
	Value     Value
	UpdatedAt time.Time
	Runs      int64
	Failures  int64
	LastError string
}

// Publisher receives fully formed values from probe tasks
type Publisher interface {
	Publish(ctx context.Context, name string, value Value) error
}

// SnapshotReader gives probes read-only access to other probes' published values
type SnapshotReader interface {
	Lookup(name string) (Value, bool)
}

// Repository mirrors the latest entry per probe outside the process.
// It never stores more than one entry per probe.
type Repository interface {
	SaveEntry(ctx context.Context, entry Entry) error
	DeleteEntry(ctx context.Context, name string) error
	ListEntries(ctx context.Context) ([]Entry, error)
}

// SnapshotSource is the read side of the snapshot used by display layers
type SnapshotSource interface {
	Entries() []Entry
	Entry(name string) (Entry, bool)
}

// ProbeInfo describes a registered probe task
type ProbeInfo struct {
	ID        string
	Name      string
	Type      string
	Interval  time.Duration
	RunID     string
	StartedAt time.Time
}

// Registry exposes the probe tasks owned by the scheduler
type Registry interface {
	// Count returns the number of probe tasks currently running
	Count() int
	Probes() []ProbeInfo
}
