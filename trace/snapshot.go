package trace

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hupe1980/adaptgo/core"
)

// snapshotVersion is bumped on incompatible layout changes.
const snapshotVersion = 1

// Snapshot is the serializable form of a Trace.
type Snapshot struct {
	Version   int                  `json:"version"`
	CreatedAt time.Time            `json:"createdAt"`
	Series    map[string][]float64 `json:"series,omitempty"`
	Params    [][]core.Parameter   `json:"params,omitempty"`
	Counters  map[string]int       `json:"counters,omitempty"`
}

// Snapshot returns a deep-copied serializable view of the trace.
func (t *Trace) Snapshot() *Snapshot {
	s := &Snapshot{
		Version:   snapshotVersion,
		CreatedAt: time.Now().UTC(),
		Series:    make(map[string][]float64, len(t.series)),
		Params:    make([][]core.Parameter, len(t.params)),
		Counters:  make(map[string]int, len(t.counters)),
	}
	for k, vs := range t.series {
		s.Series[k] = append([]float64(nil), vs...)
	}
	for i, row := range t.params {
		s.Params[i] = append([]core.Parameter(nil), row...)
	}
	for k, v := range t.counters {
		s.Counters[k] = v
	}
	return s
}

// FromSnapshot rebuilds a Trace from a snapshot.
func FromSnapshot(s *Snapshot) (*Trace, error) {
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported trace snapshot version %d", s.Version)
	}
	t := New()
	for k, vs := range s.Series {
		t.series[k] = append([]float64(nil), vs...)
	}
	for _, row := range s.Params {
		t.AppendParams(row)
	}
	for k, v := range s.Counters {
		t.counters[k] = v
	}
	return t, nil
}

// Marshal encodes the snapshot as JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSnapshot decodes a JSON snapshot.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode trace snapshot: %w", err)
	}
	return &s, nil
}
