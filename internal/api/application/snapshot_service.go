package application

import (
	"errors"
	"time"

	probesdomain "sysprobe/internal/probes/domain"
)

var ErrEntryNotFound = errors.New("snapshot entry not found")

// SnapshotService handles snapshot queries
type SnapshotService struct {
	source probesdomain.SnapshotSource
	now    func() time.Time
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(source probesdomain.SnapshotSource) *SnapshotService {
	return &SnapshotService{
		source: source,
		now:    time.Now,
	}
}

// ListEntries returns every snapshot entry sorted by probe name
func (s *SnapshotService) ListEntries() []SnapshotEntryResponse {
	now := s.now()
	entries := s.source.Entries()

	responses := make([]SnapshotEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToSnapshotEntryResponse(entry, now)
	}
	return responses
}

// GetEntry returns the snapshot entry of one probe
func (s *SnapshotService) GetEntry(name string) (SnapshotEntryResponse, error) {
	entry, ok := s.source.Entry(name)
	if !ok {
		return SnapshotEntryResponse{}, ErrEntryNotFound
	}
	return ToSnapshotEntryResponse(entry, s.now()), nil
}
