package universe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/dhandho/internal/models"
)

const sp500Page = `<html><body>
<table class="wikitable"><tbody>
<tr><th>Date</th><th>Added</th><th>Removed</th></tr>
<tr><td>2024-01-02</td><td>FOO</td><td>BAR</td></tr>
</tbody></table>
<table class="wikitable sortable"><tbody>
<tr><th>Symbol</th><th>Security</th><th>GICS Sector</th></tr>
<tr><td>MMM</td><td>3M</td><td>Industrials</td></tr>
<tr><td>AAPL</td><td>Apple Inc.</td><td>Information Technology</td></tr>
<tr><td>BRK.B</td><td>Berkshire Hathaway</td><td>Financials</td></tr>
</tbody></table>
</body></html>`

const nasdaqPage = `<html><body>
<table class="wikitable"><tbody>
<tr><th>Company</th><th>Ticker</th></tr>
<tr><td>Adobe Inc.</td><td>ADBE</td></tr>
<tr><td>Apple Inc.</td><td>AAPL</td></tr>
</tbody></table>
</body></html>`

func TestFetchSP500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sp500Page))
	}))
	defer server.Close()

	svc := NewService(WithIndexURL(models.IndexSP500, server.URL))

	tickers := svc.Fetch(context.Background(), models.IndexSP500)
	require.Len(t, tickers, 3)
	assert.Equal(t, []string{"MMM", "AAPL", "BRK-B"}, tickers)
}

func TestFetchTickerHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(nasdaqPage))
	}))
	defer server.Close()

	svc := NewService(WithIndexURL(models.IndexNasdaq100, server.URL))

	tickers := svc.Fetch(context.Background(), models.IndexNasdaq100)
	assert.Equal(t, []string{"ADBE", "AAPL"}, tickers)
}

func TestFetchPrefersConstituentsTable(t *testing.T) {
	// Changes table with a ticker column comes first, as on the live
	// Nasdaq-100 page; the id-tagged constituents table must win.
	page := `<html><body>
	<table class="wikitable"><tbody>
	<tr><th>Date</th><th>Added ticker</th><th>Removed ticker</th></tr>
	<tr><td>2024-01-02</td><td>FOO</td><td>BAR</td></tr>
	</tbody></table>
	<table class="wikitable" id="constituents"><tbody>
	<tr><th>Ticker</th><th>Company</th></tr>
	<tr><td>ADBE</td><td>Adobe Inc.</td></tr>
	<tr><td>AAPL</td><td>Apple Inc.</td></tr>
	</tbody></table>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	svc := NewService(WithIndexURL(models.IndexNasdaq100, server.URL))

	tickers := svc.Fetch(context.Background(), models.IndexNasdaq100)
	assert.Equal(t, []string{"ADBE", "AAPL"}, tickers)
}

func TestFetchSkipsChangesTableWithoutCompanyColumn(t *testing.T) {
	// No id on any table; the changes table is rejected for lacking a
	// Company or Security header.
	page := `<html><body>
	<table class="wikitable"><tbody>
	<tr><th>Date</th><th>Added ticker</th><th>Removed ticker</th></tr>
	<tr><td>2024-01-02</td><td>FOO</td><td>BAR</td></tr>
	</tbody></table>
	<table class="wikitable"><tbody>
	<tr><th>Ticker</th><th>Company</th></tr>
	<tr><td>MSFT</td><td>Microsoft Corp.</td></tr>
	</tbody></table>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	svc := NewService(WithIndexURL(models.IndexNasdaq100, server.URL))

	tickers := svc.Fetch(context.Background(), models.IndexNasdaq100)
	assert.Equal(t, []string{"MSFT"}, tickers)
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewService(WithIndexURL(models.IndexSP500, server.URL))

	tickers := svc.Fetch(context.Background(), models.IndexSP500)
	assert.Empty(t, tickers)
}

func TestFetchNoSymbolColumn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><table class="wikitable"><tbody>
			<tr><th>Company</th><th>Sector</th></tr>
			<tr><td>Apple</td><td>Tech</td></tr>
		</tbody></table></body></html>`))
	}))
	defer server.Close()

	svc := NewService(WithIndexURL(models.IndexSP500, server.URL))

	tickers := svc.Fetch(context.Background(), models.IndexSP500)
	assert.Empty(t, tickers)
}

func TestFetchUnreachable(t *testing.T) {
	svc := NewService(WithIndexURL(models.IndexSP500, "http://127.0.0.1:1"))

	tickers := svc.Fetch(context.Background(), models.IndexSP500)
	assert.Empty(t, tickers)
}
