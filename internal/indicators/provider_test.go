package indicators

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rpgo/wealth-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ipcaBody = `[{"data":"01/01/2024","valor":"0.42"},{"data":"01/02/2024","valor":"0.83"},{"data":"01/03/2024","valor":"0.16"}]`

func chartBody(closes ...string) string {
	return fmt.Sprintf(`{"chart":{"result":[{"indicators":{"quote":[{"close":[%s]}]}}],"error":null}}`, strings.Join(closes, ","))
}

// indicatorServer answers the IPCA path and the two chart symbols.
func indicatorServer(t *testing.T, hits *int32, ipca, irx, bvsp string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/ipca"):
			fmt.Fprint(w, ipca)
		case strings.Contains(r.URL.Path, "IRX"):
			assert.Equal(t, "1y", r.URL.Query().Get("range"))
			fmt.Fprint(w, irx)
		case strings.Contains(r.URL.Path, "BVSP"):
			assert.Equal(t, "2y", r.URL.Query().Get("range"))
			fmt.Fprint(w, bvsp)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testProvider(srv *httptest.Server) *Provider {
	return NewProvider(Config{
		BCBURL:   srv.URL + "/ipca",
		ChartURL: srv.URL + "/chart",
		Timeout:  2 * time.Second,
	}, nil)
}

func TestProvider_ParsesLivePayloads(t *testing.T) {
	var hits int32
	srv := indicatorServer(t, &hits, ipcaBody,
		chartBody("0.4", "null", "0.6"),
		chartBody("100", "110", "null", "121"),
		http.StatusOK)

	s := testProvider(srv).Assumptions(context.Background())

	assert.True(t, s.Live())
	assert.Empty(t, s.Fallbacks)
	assert.InDelta(t, (0.42+0.83+0.16)/3/100, s.Assumptions.Inflation, 1e-12)
	assert.InDelta(t, math.Pow(1.005, 12)-1, s.FixedIncome, 1e-12)
	assert.InDelta(t, math.Sqrt(1.21)-1, s.EquityReturn, 1e-12)
	// Daily changes are both 10%, so the sample deviation is zero.
	assert.InDelta(t, 0, s.Assumptions.Volatility, 1e-12)
	assert.InDelta(t, 0.6*s.FixedIncome+0.4*s.EquityReturn, s.Assumptions.MeanReturn, 1e-12)
	assert.Equal(t, domain.DefaultSalaryGrowth, s.Assumptions.SalaryGrowth)
	assert.Equal(t, domain.DefaultSavingsRate, s.Assumptions.SavingsRate)
}

func TestProvider_FallbacksPerSeries(t *testing.T) {
	tests := []struct {
		name      string
		ipca      string
		irx       string
		bvsp      string
		status    int
		fallbacks []string
	}{
		{"http 500", ipcaBody, chartBody("1"), chartBody("1", "2", "3"), http.StatusInternalServerError,
			[]string{SeriesInflation, SeriesFixedIncome, SeriesEquity, SeriesVolatility}},
		{"malformed ipca", `{"oops"`, chartBody("1"), chartBody("1", "2", "3"), http.StatusOK,
			[]string{SeriesInflation}},
		{"non numeric ipca", `[{"valor":"n/a"}]`, chartBody("1"), chartBody("1", "2", "3"), http.StatusOK,
			[]string{SeriesInflation}},
		{"empty rate series", ipcaBody, chartBody("null"), chartBody("1", "2", "3"), http.StatusOK,
			[]string{SeriesFixedIncome}},
		{"short index series", ipcaBody, chartBody("1"), chartBody("1", "2"), http.StatusOK,
			[]string{SeriesEquity, SeriesVolatility}},
		{"chart error", ipcaBody, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data"}}}`, chartBody("1", "2", "3"), http.StatusOK,
			[]string{SeriesFixedIncome}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			srv := indicatorServer(t, &hits, tt.ipca, tt.irx, tt.bvsp, tt.status)
			s := testProvider(srv).Assumptions(context.Background())

			assert.ElementsMatch(t, tt.fallbacks, s.Fallbacks)
			assert.False(t, s.Live())
			if s.UsedFallback(SeriesInflation) {
				assert.Equal(t, domain.FallbackInflation, s.Assumptions.Inflation)
			}
			if s.UsedFallback(SeriesEquity) {
				assert.Equal(t, domain.FallbackVolatility, s.Assumptions.Volatility)
				assert.Equal(t, domain.FallbackEquityReturn, s.EquityReturn)
			}
		})
	}
}

func TestProvider_UnreachableHost(t *testing.T) {
	p := NewProvider(Config{
		BCBURL:   "http://127.0.0.1:1/ipca",
		ChartURL: "http://127.0.0.1:1/chart",
		Timeout:  time.Second,
	}, nil)

	s := p.Assumptions(context.Background())
	assert.Len(t, s.Fallbacks, 4)
	assert.Equal(t, domain.DefaultMarketAssumptions(), s.Assumptions)
}

func TestProvider_CachesSnapshot(t *testing.T) {
	var hits int32
	srv := indicatorServer(t, &hits, ipcaBody, chartBody("1"), chartBody("1", "2", "3"), http.StatusOK)
	p := testProvider(srv)

	first := p.Assumptions(context.Background())
	require.Equal(t, int32(3), atomic.LoadInt32(&hits))
	second := p.Assumptions(context.Background())
	assert.Equal(t, first, second)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits), "second call served from cache")

	p.Invalidate()
	p.Assumptions(context.Background())
	assert.Equal(t, int32(6), atomic.LoadInt32(&hits))
}

func TestProvider_CancelledContextNotCached(t *testing.T) {
	var hits int32
	srv := indicatorServer(t, &hits, ipcaBody, chartBody("1"), chartBody("1", "2", "3"), http.StatusOK)
	p := testProvider(srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := p.Assumptions(ctx)
	assert.Len(t, s.Fallbacks, 4)
	assert.Zero(t, p.cache.Len())
}

func TestProvider_Offline(t *testing.T) {
	p := NewProvider(Config{Offline: true}, nil)
	s := p.Assumptions(context.Background())
	assert.True(t, s.Offline)
	assert.False(t, s.Live())
	assert.Equal(t, domain.DefaultMarketAssumptions(), s.Assumptions)
}

func TestProvider_ClampsExtremeValues(t *testing.T) {
	var hits int32
	// A tripling index gives a 73% annual return, above the cap.
	srv := indicatorServer(t, &hits, ipcaBody, chartBody("30"), chartBody("100", "50", "300"), http.StatusOK)
	s := testProvider(srv).Assumptions(context.Background())

	assert.LessOrEqual(t, s.Assumptions.MeanReturn, domain.MaxMeanReturn)
	assert.LessOrEqual(t, s.Assumptions.Volatility, domain.MaxVolatility)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvBCBURL, "http://example.test/ipca")
	t.Setenv(EnvOffline, "true")
	cfg := ConfigFromEnv()
	assert.Equal(t, "http://example.test/ipca", cfg.BCBURL)
	assert.Equal(t, DefaultChartURL, cfg.ChartURL)
	assert.True(t, cfg.Offline)
}
