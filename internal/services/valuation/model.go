// Package valuation resolves a company's industry and sector to a reference
// price-to-earnings multiple from a static bucket table, with fallback and
// clamping rules that keep the output inside a realistic band.
package valuation

import (
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dhandho/internal/common"
)

const fallbackBucket = "Total Market"

// Model computes industry-reference multiples. Read-only after creation,
// safe for concurrent use.
type Model struct {
	defaultMultiple float64
	floor           float64
	ceiling         float64
	blendFactor     float64
	logger          arbor.ILogger
}

// ModelOption configures the Model.
type ModelOption func(*Model)

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ModelOption {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithBounds overrides the default multiple, floor and ceiling.
func WithBounds(defaultMultiple, floor, ceiling float64) ModelOption {
	return func(m *Model) {
		m.defaultMultiple = defaultMultiple
		m.floor = floor
		m.ceiling = ceiling
	}
}

// WithBlendFactor overrides the trailing-P/E blend factor.
func WithBlendFactor(factor float64) ModelOption {
	return func(m *Model) {
		m.blendFactor = factor
	}
}

// NewModel creates a valuation model with the standard bounds.
func NewModel(opts ...ModelOption) *Model {
	m := &Model{
		defaultMultiple: 20.0,
		floor:           15.0,
		ceiling:         30.0,
		blendFactor:     1.2,
		logger:          common.GetLogger(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// ReferenceMultiple resolves the reference P/E for the given industry and
// sector. trailingPE, when positive, anchors table values that exceed the
// ceiling to the company's own market pricing. Output is always within
// [floor, ceiling].
func (m *Model) ReferenceMultiple(industry, sector string, trailingPE float64) float64 {
	multiple, bucket := m.lookup(industry, sector)

	if multiple > m.ceiling && trailingPE > 0 {
		bound := clamp(trailingPE*m.blendFactor, m.floor, m.ceiling)
		m.logger.Info().
			Str("bucket", bucket).
			Float64("table_multiple", multiple).
			Float64("adjusted_multiple", bound).
			Float64("trailing_pe", trailingPE).
			Msg("Reference multiple anchored to trailing P/E")
		return bound
	}

	return clamp(multiple, m.floor, m.ceiling)
}

// lookup resolves industry then sector to a bucket multiple, falling back
// to the default when neither maps.
func (m *Model) lookup(industry, sector string) (float64, string) {
	if bucket, ok := industryBuckets[industry]; ok {
		if multiple, ok := bucketMultiples[bucket]; ok {
			return multiple, bucket
		}
	}

	bucket, ok := sectorBuckets[sector]
	if !ok {
		bucket = fallbackBucket
	}
	if multiple, ok := bucketMultiples[bucket]; ok {
		return multiple, bucket
	}

	return m.defaultMultiple, bucket
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
