package callback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/trace"
)

func TestDeadlineStopper(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := &DeadlineStopper{Deadline: base.Add(time.Minute)}
	a := ansatz.NewBasic(2)
	tr := trace.New()

	s.now = func() time.Time { return base }
	assert.False(t, s.OnIteration(nil, a, tr))
	assert.False(t, s.OnAdaptation(nil, a, tr))

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	assert.True(t, s.OnIteration(nil, a, tr))
	assert.True(t, s.OnAdaptation(nil, a, tr))

	// Termination is forced via the return value, never via the flags.
	assert.False(t, a.Converged())
	assert.False(t, a.Optimized())
}
