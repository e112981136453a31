package models

// Analysis is the analyzer's output for one ticker. Every numeric field is
// a pure function of the price series, fundamentals snapshot and valuation
// multiple; the analyzer returns either a complete record or nothing.
// Percentage and currency fields are rounded to two decimal places.
type Analysis struct {
	Ticker string `json:"ticker"`

	CurrentPrice   float64 `json:"current_price"`
	TrailingPE     float64 `json:"trailing_pe"`
	IndustryPE     float64 `json:"industry_pe"`
	IntrinsicValue float64 `json:"intrinsic_value"`
	SafetyMargin   float64 `json:"safety_margin"` // percent
	PEDiscount     float64 `json:"pe_discount"`   // percent

	Moat        bool    `json:"moat"`
	Consistency bool    `json:"consistency"`
	TrackRecord bool    `json:"track_record"`
	CAGR        float64 `json:"cagr"` // percent, annualized over the observed window
	Score       float64 `json:"score"`

	BuyRecommendation bool `json:"buy_recommendation"`

	InNasdaq100 bool `json:"in_nasdaq100"`
	InSP500     bool `json:"in_sp500"`

	Description string `json:"description,omitempty"`
}
