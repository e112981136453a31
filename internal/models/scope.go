// Package models defines the value objects passed between services.
// All types here are immutable by convention: they are built once by the
// producing service and passed by value or read-only reference.
package models

import (
	"fmt"
	"strings"
)

// Index identifies one of the screened equity indices.
type Index string

const (
	IndexNasdaq100 Index = "nasdaq100"
	IndexSP500     Index = "sp500"
)

// DisplayName returns the human-readable index name for report output.
func (i Index) DisplayName() string {
	switch i {
	case IndexNasdaq100:
		return "Nasdaq-100"
	case IndexSP500:
		return "S&P 500"
	default:
		return string(i)
	}
}

// Scope selects which indices a screening run covers.
type Scope string

const (
	ScopeAll    Scope = "all"
	ScopeNasdaq Scope = "nasdaq"
	ScopeSP500  Scope = "sp500"
)

// ParseScope parses a user-supplied scope argument.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ScopeAll, nil
	case "nasdaq":
		return ScopeNasdaq, nil
	case "sp500":
		return ScopeSP500, nil
	default:
		return "", fmt.Errorf("invalid scope %q: must be all, nasdaq or sp500", s)
	}
}

// Indices returns the indices covered by the scope, in report order.
func (s Scope) Indices() []Index {
	switch s {
	case ScopeNasdaq:
		return []Index{IndexNasdaq100}
	case ScopeSP500:
		return []Index{IndexSP500}
	default:
		return []Index{IndexNasdaq100, IndexSP500}
	}
}
