package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"sysprobe/internal/probes/domain"
	sharedlogger "sysprobe/internal/shared/logger"
)

var ErrUnknownProbe = errors.New("probe is not registered")

var (
	_ domain.Publisher      = (*Snapshot)(nil)
	_ domain.SnapshotReader = (*Snapshot)(nil)
	_ domain.SnapshotSource = (*Snapshot)(nil)
)

// Snapshot holds the latest published entry of every registered probe.
// Entries are replaced whole under the lock and handed out as deep copies.
// When a repository is set, every change is mirrored to it outside of the
// lock. Changes carry a sequence number so a late write never replaces a
// newer one.
type Snapshot struct {
	logger sharedlogger.Logger
	repo   domain.Repository
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]domain.Entry
	seq     uint64

	mirrorMu sync.Mutex
	// last sequence number written to the repository per probe name
	mirrored map[string]uint64
}

// NewSnapshot creates an empty snapshot. repo may be nil.
func NewSnapshot(logger sharedlogger.Logger, repo domain.Repository) *Snapshot {
	return &Snapshot{
		logger:  logger,
		repo:    repo,
		now:     time.Now,
		entries:  make(map[string]domain.Entry),
		mirrored: make(map[string]uint64),
	}
}

// Register seeds the entry of a probe with its default value, replacing
// whatever was published under that name before.
func (s *Snapshot) Register(ctx context.Context, probeID, name, probeType string, def domain.Value) {
	entry := domain.Entry{
		ProbeID: probeID,
		Name:    name,
		Type:    probeType,
		Value:   def.Clone(),
	}

	s.mu.Lock()
	s.entries[name] = entry
	seq := s.nextSeq()
	s.mu.Unlock()

	s.mirror(ctx, seq, entry)
}

// Publish replaces the value of a registered probe. Values published with a
// cancelled context are dropped, so a torn down task never overwrites the
// entry of its replacement.
func (s *Snapshot) Publish(ctx context.Context, name string, value domain.Value) error {
	s.mu.Lock()
	if err := ctx.Err(); err != nil {
		s.mu.Unlock()
		return err
	}

	entry, ok := s.entries[name]
	if !ok {
		s.mu.Unlock()
		return ErrUnknownProbe
	}
	entry.Value = value.Clone()
	entry.UpdatedAt = s.now()
	entry.Runs++
	entry.LastError = ""
	s.entries[name] = entry
	seq := s.nextSeq()
	s.mu.Unlock()

	s.mirror(ctx, seq, entry)
	return nil
}

// RecordFailure counts a failed run. The published value stays as it was.
func (s *Snapshot) RecordFailure(ctx context.Context, name string, runErr error) error {
	s.mu.Lock()
	if err := ctx.Err(); err != nil {
		s.mu.Unlock()
		return err
	}

	entry, ok := s.entries[name]
	if !ok {
		s.mu.Unlock()
		return ErrUnknownProbe
	}
	entry.Runs++
	entry.Failures++
	entry.LastError = runErr.Error()
	s.entries[name] = entry
	seq := s.nextSeq()
	s.mu.Unlock()

	s.mirror(ctx, seq, entry)
	return nil
}

// Delete drops the entry of a probe that was removed from the configuration
func (s *Snapshot) Delete(ctx context.Context, name string) {
	s.mu.Lock()
	delete(s.entries, name)
	seq := s.nextSeq()
	s.mu.Unlock()

	if s.repo == nil {
		return
	}

	s.mirrorMu.Lock()
	defer s.mirrorMu.Unlock()

	if !s.claimUnsynced(name, seq) {
		return
	}
	if err := s.repo.DeleteEntry(context.WithoutCancel(ctx), name); err != nil {
		s.logger.Warn("Failed to delete mirrored snapshot entry", "name", name, "err", err)
	}
}

// nextSeq must be called with mu held
func (s *Snapshot) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// mirror writes entry to the repository unless a newer change of the same
// probe was written already. It must be called without holding mu.
func (s *Snapshot) mirror(ctx context.Context, seq uint64, entry domain.Entry) {
	if s.repo == nil {
		return
	}

	s.mirrorMu.Lock()
	defer s.mirrorMu.Unlock()

	if !s.claimUnsynced(entry.Name, seq) {
		return
	}
	if err := s.repo.SaveEntry(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Warn("Failed to mirror snapshot entry", "name", entry.Name, "err", err)
	}
}

// claimUnsynced records seq as the latest write of name. It reports false
// for a change older than the one already written.
func (s *Snapshot) claimUnsynced(name string, seq uint64) bool {
	if seq < s.mirrored[name] {
		return false
	}
	s.mirrored[name] = seq
	return true
}

// Lookup returns the published value of a probe
func (s *Snapshot) Lookup(name string) (domain.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[name]
	if !ok {
		return domain.Value{}, false
	}
	return entry.Value.Clone(), true
}

// Entry returns a copy of the entry of a probe
func (s *Snapshot) Entry(name string) (domain.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[name]
	if !ok {
		return domain.Entry{}, false
	}
	entry.Value = entry.Value.Clone()
	return entry, true
}

// Entries returns a copy of every entry sorted by probe name
func (s *Snapshot) Entries() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		entry.Value = entry.Value.Clone()
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
