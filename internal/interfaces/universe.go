package interfaces

import (
	"context"

	"github.com/ternarybob/dhandho/internal/models"
)

// UniverseService retrieves the current constituent tickers for an index.
// On any retrieval or parse error it logs and returns an empty slice -
// callers must treat that as "universe unavailable this run", not as zero
// constituents. Returned symbols are normalized to the market-data
// provider's format.
type UniverseService interface {
	Fetch(ctx context.Context, index models.Index) []string
}
