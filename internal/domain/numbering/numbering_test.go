package numbering_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkwe-logistics/fleetflow-api/internal/domain/numbering"
)

type stubSequencer struct {
	n     int64
	err   error
	calls int
}

func (s *stubSequencer) Next(_ context.Context, _ string, _ numbering.DocType, _ string) (int64, error) {
	s.calls++
	return s.n, s.err
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	}
}

func TestCustomerCode(t *testing.T) {
	cases := map[string]string{
		"Acme Hauling":     "ACM",
		"A.B. Haulage":     "ABH",
		"Jo":               "JOX",
		"":                 "XXX",
		"  --- ":           "XXX",
		"3rd Street Cargo": "3RD",
		"kalahari":         "KAL",
	}
	for in, want := range cases {
		assert.Equal(t, want, numbering.CustomerCode(in), "input %q", in)
	}
}

func TestNext_SequenceServiceWins(t *testing.T) {
	seq := &stubSequencer{n: 42}
	gen := numbering.NewGenerator(seq, numbering.WithClock(fixedClock()))

	got, err := gen.Next(context.Background(), numbering.TypeLoad, "c1", "Acme Hauling")
	require.NoError(t, err)
	assert.Equal(t, "LD-ACM-2603-042", got)
	assert.Equal(t, 1, seq.calls)
}

func TestNext_QuoteOmitsCustomerCode(t *testing.T) {
	gen := numbering.NewGenerator(&stubSequencer{n: 7}, numbering.WithClock(fixedClock()))

	got, err := gen.Next(context.Background(), numbering.TypeQuote, "c1", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "QT-2603-007", got)
}

func TestNext_FallbackOnSequencerError(t *testing.T) {
	seq := &stubSequencer{err: errors.New("redis: connection refused")}
	gen := numbering.NewGenerator(seq,
		numbering.WithClock(fixedClock()),
		numbering.WithRand(func(int) int { return 5 }),
	)

	got, err := gen.Next(context.Background(), numbering.TypeLoad, "c1", "Acme Hauling")
	require.NoError(t, err)
	assert.Equal(t, "LD-ACM-2603-005", got)
	// Dependency failures are retried before giving up on the sequencer.
	assert.Equal(t, 3, seq.calls)
}

func TestNext_FallbackMatchesDocumentedPattern(t *testing.T) {
	gen := numbering.NewGenerator(nil, numbering.WithClock(fixedClock()))

	pattern := regexp.MustCompile(`^LD-[A-Z0-9X]{3}-\d{4}-\d{3}$`)
	for i := 0; i < 50; i++ {
		got, err := gen.Next(context.Background(), numbering.TypeLoad, "c1", "Okavango Freight")
		require.NoError(t, err)
		assert.Regexp(t, pattern, got)
	}

	quotePattern := regexp.MustCompile(`^QT-\d{4}-\d{3}$`)
	got, err := gen.Next(context.Background(), numbering.TypeQuote, "c1", "")
	require.NoError(t, err)
	assert.Regexp(t, quotePattern, got)
}

func TestNext_FallbackOnZeroReply(t *testing.T) {
	gen := numbering.NewGenerator(&stubSequencer{n: 0},
		numbering.WithClock(fixedClock()),
		numbering.WithRand(func(int) int { return 999 }),
	)

	got, err := gen.Next(context.Background(), numbering.TypeInvoice, "c1", "")
	require.NoError(t, err)
	assert.Equal(t, "INV-2603-999", got)
}
