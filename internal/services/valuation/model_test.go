package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceMultipleKnownIndustry(t *testing.T) {
	m := NewModel()

	got := m.ReferenceMultiple("Consumer Electronics", "Technology", 0)
	assert.Equal(t, 19.5, got)
}

func TestReferenceMultipleSectorFallback(t *testing.T) {
	m := NewModel()

	// Unmapped industry, known sector
	got := m.ReferenceMultiple("Made Up Industry", "Utilities", 0)
	assert.Equal(t, 18.6, got)
}

func TestReferenceMultipleUnknownEverything(t *testing.T) {
	m := NewModel()

	// Falls to Total Market
	got := m.ReferenceMultiple("Made Up Industry", "Made Up Sector", 0)
	assert.Equal(t, 20.0, got)
}

func TestReferenceMultipleTrailingPEAnchor(t *testing.T) {
	m := NewModel()

	// Table multiple 40 with trailingPE 10: anchor to clamp(10*1.2, 15, 30)
	tests := []struct {
		name       string
		industry   string
		trailingPE float64
		want       float64
	}{
		{"low trailing PE floors", "Internet Content & Information", 10, 15.0}, // table 41.5
		{"mid trailing PE blends", "Internet Content & Information", 20, 24.0},
		{"high trailing PE ceils", "Internet Content & Information", 50, 30.0},
		{"no trailing PE caps at ceiling", "Internet Content & Information", 0, 30.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.ReferenceMultiple(tt.industry, "Communication Services", tt.trailingPE)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestReferenceMultipleWithinBounds(t *testing.T) {
	m := NewModel()

	inputs := []struct {
		industry   string
		sector     string
		trailingPE float64
	}{
		{"Steel", "Basic Materials", 0},        // table below floor
		{"Semiconductors", "Technology", 0},    // table above ceiling
		{"Semiconductors", "Technology", 8},    // anchored below floor
		{"Semiconductors", "Technology", 100},  // anchored above ceiling
		{"Banks - Regional", "", 0},            // table below floor
		{"", "", 0},                            // defaults
		{"nonsense", "nonsense", 9999},
	}

	for _, in := range inputs {
		got := m.ReferenceMultiple(in.industry, in.sector, in.trailingPE)
		assert.GreaterOrEqual(t, got, 15.0, "industry=%q sector=%q", in.industry, in.sector)
		assert.LessOrEqual(t, got, 30.0, "industry=%q sector=%q", in.industry, in.sector)
	}
}

func TestReferenceMultipleCustomBounds(t *testing.T) {
	m := NewModel(WithBounds(18.0, 10.0, 25.0))

	got := m.ReferenceMultiple("unknown", "unknown", 0)
	assert.Equal(t, 18.0, got)

	// Table 41.5 anchored: clamp(20*1.2, 10, 25) = 24
	got = m.ReferenceMultiple("Internet Content & Information", "", 20)
	assert.InDelta(t, 24.0, got, 1e-9)
}
