// Package numbering produces the human-readable document numbers used on
// loads, quotes and invoices. The authoritative source is a per-company
// sequence service; when it is unreachable the generator falls back to a
// locally computed candidate. The fallback is not globally unique; a
// collision surfaces as a unique violation at insert time, which callers
// report as a conflict.
package numbering

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/nkwe-logistics/fleetflow-api/pkg/retry"
)

// DocType selects the number format.
type DocType string

// Supported document types and their prefixes.
const (
	TypeLoad    DocType = "load"
	TypeQuote   DocType = "quote"
	TypeInvoice DocType = "invoice"
)

func prefix(t DocType) string {
	switch t {
	case TypeLoad:
		return "LD"
	case TypeQuote:
		return "QT"
	case TypeInvoice:
		return "INV"
	}
	return "DOC"
}

// Sequencer is the authoritative counter. period is the YYMM bucket; the
// returned value is the next 1-based sequence within it.
type Sequencer interface {
	Next(ctx context.Context, companyID string, docType DocType, period string) (int64, error)
}

// Generator combines the sequencer with the local fallback.
type Generator struct {
	seq   Sequencer
	retry retry.Policy
	now   func() time.Time
	randN func(n int) int
}

// Option tweaks a Generator (used by tests to pin time and randomness).
type Option func(*Generator)

// WithClock fixes the generator's clock.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithRand fixes the fallback's random source.
func WithRand(randN func(n int) int) Option {
	return func(g *Generator) { g.randN = randN }
}

// NewGenerator builds a Generator. seq may be nil, in which case every call
// takes the fallback path.
func NewGenerator(seq Sequencer, opts ...Option) *Generator {
	g := &Generator{
		seq:   seq,
		retry: retry.Default,
		now:   time.Now,
		randN: rand.IntN,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns the next document number. customerName is only consulted for
// load numbers (LD-{code}-YYMM-NNN); quotes and invoices omit the code part.
func (g *Generator) Next(ctx context.Context, docType DocType, companyID, customerName string) (string, error) {
	period := g.now().Format("0601") // YYMM

	if g.seq != nil {
		var n int64
		err := g.retry.Do(ctx, func() (bool, error) {
			var seqErr error
			n, seqErr = g.seq.Next(ctx, companyID, docType, period)
			return true, seqErr
		})
		if err == nil && n > 0 {
			return g.format(docType, customerName, period, fmt.Sprintf("%03d", n)), nil
		}
	}

	// Sequence service down or empty: locally computed candidate.
	return g.format(docType, customerName, period, fmt.Sprintf("%03d", g.randN(1000))), nil
}

func (g *Generator) format(docType DocType, customerName, period, suffix string) string {
	if docType == TypeLoad {
		return fmt.Sprintf("%s-%s-%s-%s", prefix(docType), CustomerCode(customerName), period, suffix)
	}
	return fmt.Sprintf("%s-%s-%s", prefix(docType), period, suffix)
}

// CustomerCode derives the 3-character code embedded in load numbers: the
// first three alphanumerics of the name, upper-cased, padded with 'X'.
func CustomerCode(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 3 {
				break
			}
		}
	}
	for b.Len() < 3 {
		b.WriteByte('X')
	}
	return b.String()
}
