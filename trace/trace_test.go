package trace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/trace"
)

func TestAppendAndSeries(t *testing.T) {
	tr := trace.New()
	assert.Nil(t, tr.Series(trace.KeyEnergy))
	assert.Equal(t, 0, tr.Len(trace.KeyEnergy))

	tr.Append(trace.KeyEnergy, -1.5)
	tr.Append(trace.KeyEnergy, -2.0)
	tr.Append(trace.KeyScore, 0.3)

	assert.Equal(t, []float64{-1.5, -2.0}, tr.Series(trace.KeyEnergy))
	assert.Equal(t, 2, tr.Len(trace.KeyEnergy))
	assert.Equal(t, []string{trace.KeyEnergy, trace.KeyScore}, tr.Keys())

	last, ok := tr.Last(trace.KeyEnergy)
	require.True(t, ok)
	assert.Equal(t, -2.0, last)

	_, ok = tr.Last("missing")
	assert.False(t, ok)
}

func TestParamsTrajectoryCopiesRows(t *testing.T) {
	tr := trace.New()

	row := []core.Parameter{0.1, 0.2}
	tr.AppendParams(row)
	row[0] = 99
	tr.AppendParams([]core.Parameter{0.1, 0.2, 0.3})

	got := tr.Params()
	require.Len(t, got, 2)
	assert.Equal(t, []core.Parameter{0.1, 0.2}, got[0])
	assert.Equal(t, []core.Parameter{0.1, 0.2, 0.3}, got[1])
}

func TestCounters(t *testing.T) {
	tr := trace.New()
	assert.Equal(t, 0, tr.Counter(trace.KeyIteration))
	assert.Equal(t, 1, tr.Increment(trace.KeyIteration))
	assert.Equal(t, 2, tr.Increment(trace.KeyIteration))
	assert.Equal(t, 2, tr.Counter(trace.KeyIteration))
	assert.Equal(t, 0, tr.Counter(trace.KeyAdaptation))
}

func TestSnapshotRoundTrip(t *testing.T) {
	tr := trace.New()
	tr.Append(trace.KeyEnergy, -1)
	tr.Append(trace.KeyEnergy, -2)
	tr.AppendParams([]core.Parameter{0.5})
	tr.Increment(trace.KeyAdaptation)

	snap := tr.Snapshot()
	data, err := snap.Marshal()
	require.NoError(t, err)

	decoded, err := trace.UnmarshalSnapshot(data)
	require.NoError(t, err)

	restored, err := trace.FromSnapshot(decoded)
	require.NoError(t, err)

	assert.Equal(t, tr.Series(trace.KeyEnergy), restored.Series(trace.KeyEnergy))
	assert.Equal(t, tr.Params(), restored.Params())
	assert.Equal(t, 1, restored.Counter(trace.KeyAdaptation))
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	tr := trace.New()
	tr.Append(trace.KeyEnergy, -1)

	snap := tr.Snapshot()
	tr.Append(trace.KeyEnergy, -2)

	assert.Equal(t, []float64{-1}, snap.Series[trace.KeyEnergy])
}

func TestFromSnapshotRejectsUnknownVersion(t *testing.T) {
	_, err := trace.FromSnapshot(&trace.Snapshot{Version: 99})
	assert.Error(t, err)
}
