package callback

import (
	"log/slog"
	"os"

	"golang.org/x/time/rate"

	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/trace"
)

// Printer logs run progress through slog. Output is rate-limited so tight
// optimizer loops cannot flood the log; adaptation events are infrequent and
// always printed. Printer mutates nothing.
type Printer struct {
	logger  *slog.Logger
	limiter *rate.Limiter
}

var _ Callback = (*Printer)(nil)

// NewPrinter returns a Printer writing through logger, emitting at most
// perSecond iteration lines per second. A nil logger falls back to a text
// handler on stderr; perSecond <= 0 disables the limit.
func NewPrinter(logger *slog.Logger, perSecond float64) *Printer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Printer{
		logger:  logger,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// OnIteration implements Callback.
func (c *Printer) OnIteration(d *Data, a ansatz.Ansatz, tr *trace.Trace) bool {
	if !c.limiter.Allow() {
		return false
	}
	energy, _ := d.Energy()
	c.logger.Info("optimization iteration",
		"iteration", tr.Counter(trace.KeyIteration),
		"energy", energy,
		"parameters", a.Len(),
	)
	return false
}

// OnAdaptation implements Callback.
func (c *Printer) OnAdaptation(d *Data, a ansatz.Ansatz, tr *trace.Trace) bool {
	c.logger.Info("adaptation step",
		"adaptation", tr.Counter(trace.KeyAdaptation),
		"selected", len(d.Selected()),
		"max_score", d.MaxAbsScore(),
		"ansatz_len", a.Len(),
	)
	return false
}
