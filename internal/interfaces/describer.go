package interfaces

import (
	"context"
)

// Describer produces a one-sentence natural-language company summary from
// an external text-generation service. The contract is result-with-fallback:
// Describe always returns a usable string. Missing credentials, timeouts and
// API errors degrade to a fixed placeholder and are captured only in logs.
type Describer interface {
	Describe(ctx context.Context, ticker string) string

	// Close releases provider resources.
	Close() error
}
