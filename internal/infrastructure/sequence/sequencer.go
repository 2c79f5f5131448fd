package sequence

import (
	"context"
	"fmt"
	"time"
)

// Sequencer hands out strictly increasing counter values for a series within
// a period. Implementations must be safe for concurrent use across requests
// (and, for Redis, across process instances).
type Sequencer interface {
	// Next returns the next counter value for the series/period pair,
	// starting at 1
	Next(ctx context.Context, series, period string) (int64, error)

	// Current returns the last value handed out, 0 if none
	Current(ctx context.Context, series, period string) (int64, error)

	Close() error
}

// Document series prefixes
const (
	SeriesQuotation     = "Q"
	SeriesSupplierOrder = "OP"
)

// Generator formats document numbers like Q-202609-001 from sequencer values.
// The counter resets each calendar month because the period is part of the key.
type Generator struct {
	seq Sequencer
}

// NewGenerator creates a document number generator on top of a sequencer
func NewGenerator(seq Sequencer) *Generator {
	return &Generator{seq: seq}
}

// NextNumber returns the next document number for a series at the given time
func (g *Generator) NextNumber(ctx context.Context, series string, at time.Time) (string, error) {
	period := at.Format("200601")

	n, err := g.seq.Next(ctx, series, period)
	if err != nil {
		return "", fmt.Errorf("failed to advance sequence %s/%s: %w", series, period, err)
	}

	return fmt.Sprintf("%s-%s-%03d", series, period, n), nil
}
