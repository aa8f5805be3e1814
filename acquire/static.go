package acquire

import (
	"context"

	"github.com/poiesic/bidmatch/core"
)

// StaticSource serves a fixed set of tender records. It backs offline
// operation and tests.
type StaticSource struct {
	name    string
	records []core.TenderRecord
}

// NewStaticSource creates a source that always returns the given
// records.
func NewStaticSource(name string, records []core.TenderRecord) *StaticSource {
	return &StaticSource{name: name, records: records}
}

func (s *StaticSource) Name() string {
	return s.name
}

// Fetch returns a copy of the configured records so callers cannot
// mutate the source.
func (s *StaticSource) Fetch(_ context.Context) ([]core.TenderRecord, error) {
	out := make([]core.TenderRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}
