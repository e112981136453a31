// Package universe resolves the constituent tickers of the screened
// indices from their Wikipedia list pages.
package universe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dhandho/internal/common"
	"github.com/ternarybob/dhandho/internal/interfaces"
	"github.com/ternarybob/dhandho/internal/models"
)

const (
	sp500URL     = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"
	nasdaq100URL = "https://en.wikipedia.org/wiki/Nasdaq-100"

	userAgent = "dhandho-bot/1.0 (stock screener)"
)

// symbolHeaders are the column headings that identify the ticker column.
// Matched case-insensitively so header edits on the page do not break us.
var symbolHeaders = []string{"symbol", "ticker"}

// companionHeaders distinguish the constituents table from the
// yearly-changes tables, which also carry a ticker column but never name
// the company next to it.
var companionHeaders = []string{"company", "security"}

// Service scrapes index constituent lists. Any fetch or parse failure is
// logged and reported as an empty universe.
type Service struct {
	httpClient *http.Client
	logger     arbor.ILogger
	urls       map[models.Index]string
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithIndexURL overrides the source URL for an index.
func WithIndexURL(index models.Index, url string) ServiceOption {
	return func(s *Service) {
		s.urls[index] = url
	}
}

// NewService creates a new universe service.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     common.GetLogger(),
		urls: map[models.Index]string{
			models.IndexSP500:     sp500URL,
			models.IndexNasdaq100: nasdaq100URL,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Fetch returns the normalized constituent tickers for the index, or an
// empty slice when the source is unreachable or unparseable.
func (s *Service) Fetch(ctx context.Context, index models.Index) []string {
	url, ok := s.urls[index]
	if !ok {
		s.logger.Warn().
			Str("index", string(index)).
			Msg("No constituent source configured for index")
		return []string{}
	}

	tickers, err := s.fetch(ctx, url)
	if err != nil {
		s.logger.Warn().
			Str("index", string(index)).
			Str("url", url).
			Err(err).
			Msg("Failed to fetch index constituents")
		return []string{}
	}

	s.logger.Info().
		Str("index", string(index)).
		Int("count", len(tickers)).
		Msg("Fetched index constituents")

	return tickers
}

func (s *Service) fetch(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	tickers := extractTickers(doc)
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no constituent table with a symbol column found")
	}

	return tickers, nil
}

// extractTickers locates the constituents table and collects its ticker
// column. Both list pages mark that table with id="constituents", so it is
// tried first; the fallback scans every wikitable but only accepts one
// whose header row pairs the symbol with a Company or Security column,
// which keeps the yearly-changes tables from matching.
func extractTickers(doc *goquery.Document) []string {
	if table := doc.Find("table#constituents").First(); table.Length() > 0 {
		if tickers := tableTickers(table); len(tickers) > 0 {
			return tickers
		}
	}

	var tickers []string
	doc.Find("table.wikitable").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if !hasCompanionHeader(table) {
			return true // keep scanning
		}
		tickers = tableTickers(table)
		return len(tickers) == 0
	})

	return tickers
}

// tableTickers collects the ticker column of one table, or nil when the
// table has no symbol header.
func tableTickers(table *goquery.Selection) []string {
	col := symbolColumn(table)
	if col < 0 {
		return nil
	}

	var tickers []string
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		// Header rows carry th cells only and fall out here
		cells := row.Find("td")
		if cells.Length() <= col {
			return
		}
		raw := strings.TrimSpace(cells.Eq(col).Text())
		if raw == "" || !common.IsTickerLike(raw) {
			return
		}
		tickers = append(tickers, common.NormalizeTicker(raw))
	})

	return tickers
}

// hasCompanionHeader reports whether the table's header row carries a
// Company or Security column.
func hasCompanionHeader(table *goquery.Selection) bool {
	found := false
	table.Find("tr").First().Find("th").Each(func(_ int, th *goquery.Selection) {
		header := strings.ToLower(strings.TrimSpace(th.Text()))
		for _, want := range companionHeaders {
			if strings.Contains(header, want) {
				found = true
				return
			}
		}
	})
	return found
}

// symbolColumn returns the index of the ticker column in the table header,
// or -1 when the table has none.
func symbolColumn(table *goquery.Selection) int {
	col := -1
	table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		if col >= 0 {
			return
		}
		header := strings.ToLower(strings.TrimSpace(th.Text()))
		for _, want := range symbolHeaders {
			if strings.Contains(header, want) {
				col = i
				return
			}
		}
	})
	return col
}

// Ensure Service implements the universe interface
var _ interfaces.UniverseService = (*Service)(nil)
