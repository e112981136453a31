package eodhd

import (
	"time"
)

// EODData represents a single day's end-of-day price data.
type EODData struct {
	Date          time.Time `json:"-"`
	DateStr       string    `json:"date"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	AdjustedClose float64   `json:"adjusted_close"`
	Volume        int64     `json:"volume"`
}

// EODResponse is a slice of EODData.
type EODResponse []EODData

// FundamentalsResponse holds the slices of the fundamentals payload the
// analyzer consumes. Numeric fields the provider reports as null decode
// to nil pointers; absence and zero are distinct.
type FundamentalsResponse struct {
	General    *GeneralInfo `json:"General"`
	Highlights *Highlights  `json:"Highlights"`
	Valuation  *Valuation   `json:"Valuation"`
}

// GeneralInfo contains general company information.
type GeneralInfo struct {
	Code        string `json:"Code"`
	Name        string `json:"Name"`
	Exchange    string `json:"Exchange"`
	Sector      string `json:"Sector"`
	Industry    string `json:"Industry"`
	Description string `json:"Description"`
}

// Highlights contains the profitability fields used for scoring.
type Highlights struct {
	EarningsShare        *float64 `json:"EarningsShare"`     // trailing EPS
	ProfitMargin         *float64 `json:"ProfitMargin"`      // fractional
	ReturnOnEquityTTM    *float64 `json:"ReturnOnEquityTTM"` // fractional
	MarketCapitalization *float64 `json:"MarketCapitalization"`
}

// Valuation contains valuation metrics.
type Valuation struct {
	TrailingPE *float64 `json:"TrailingPE"`
	ForwardPE  *float64 `json:"ForwardPE"`
}
