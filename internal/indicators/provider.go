// Package indicators fetches the macro series behind the market assumptions.
// Every series is best effort: failures fall back to fixed values and are
// recorded on the Snapshot.
package indicators

import (
	"context"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rpgo/wealth-projector/internal/domain"
	"github.com/rpgo/wealth-projector/internal/log"
	"golang.org/x/sync/errgroup"
)

// Default endpoints and symbols.
const (
	DefaultBCBURL      = "https://api.bcb.gov.br/dados/serie/bcdata.sgs.433/dados/ultimos/12?formato=json"
	DefaultChartURL    = "https://query1.finance.yahoo.com/v8/finance/chart"
	FixedIncomeSymbol  = "^IRX"
	EquityIndexSymbol  = "^BVSP"
	DefaultTimeout     = 10 * time.Second
	DefaultCacheTTL    = 24 * time.Hour
	snapshotCacheKey   = "market-assumptions"
	snapshotCacheSlots = 4
)

// Series names recorded in Snapshot.Fallbacks.
const (
	SeriesInflation   = "inflation"
	SeriesFixedIncome = "fixed_income"
	SeriesEquity      = "equity_return"
	SeriesVolatility  = "volatility"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvBCBURL   = "WEALTHSIM_BCB_URL"
	EnvChartURL = "WEALTHSIM_CHART_URL"
	EnvOffline  = "WEALTHSIM_OFFLINE"
)

// Config controls where and how indicators are fetched.
type Config struct {
	BCBURL   string
	ChartURL string
	Timeout  time.Duration
	CacheTTL time.Duration
	// Offline skips the network and returns fallbacks.
	Offline bool
}

// DefaultConfig points at the public endpoints.
func DefaultConfig() Config {
	return Config{
		BCBURL:   DefaultBCBURL,
		ChartURL: DefaultChartURL,
		Timeout:  DefaultTimeout,
		CacheTTL: DefaultCacheTTL,
	}
}

// ConfigFromEnv starts from DefaultConfig and applies WEALTHSIM_* overrides.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv(EnvBCBURL); v != "" {
		cfg.BCBURL = v
	}
	if v := os.Getenv(EnvChartURL); v != "" {
		cfg.ChartURL = v
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvOffline)); err == nil {
		cfg.Offline = v
	}
	return cfg
}

// Snapshot is one resolved set of market assumptions.
type Snapshot struct {
	Assumptions  domain.MarketAssumptions `json:"assumptions"`
	FixedIncome  float64                  `json:"fixed_income"`
	EquityReturn float64                  `json:"equity_return"`
	Fallbacks    []string                 `json:"fallbacks,omitempty"`
	FetchedAt    time.Time                `json:"fetched_at"`
	Offline      bool                     `json:"offline,omitempty"`
}

// Live reports whether every series came from the network.
func (s Snapshot) Live() bool { return !s.Offline && len(s.Fallbacks) == 0 }

// UsedFallback reports whether series was replaced by its fallback.
func (s Snapshot) UsedFallback(series string) bool {
	for _, f := range s.Fallbacks {
		if f == series {
			return true
		}
	}
	return false
}

// Provider resolves market assumptions from live indicators.
type Provider struct {
	cfg    Config
	client *client
	cache  *TTLCache[Snapshot]
	logger *log.Logger
	now    func() time.Time
}

// NewProvider creates a provider; a nil logger discards output.
func NewProvider(cfg Config, logger *log.Logger) *Provider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.BCBURL == "" {
		cfg.BCBURL = DefaultBCBURL
	}
	if cfg.ChartURL == "" {
		cfg.ChartURL = DefaultChartURL
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Provider{
		cfg:    cfg,
		client: newClient(cfg.Timeout),
		cache:  NewTTLCache[Snapshot](snapshotCacheSlots, cfg.CacheTTL),
		logger: logger.WithComponent(log.ComponentIndicators),
		now:    time.Now,
	}
}

// Fallback returns the snapshot used when nothing can be fetched.
func Fallback(at time.Time) Snapshot {
	return Snapshot{
		Assumptions:  domain.DefaultMarketAssumptions(),
		FixedIncome:  domain.FallbackFixedIncome,
		EquityReturn: domain.FallbackEquityReturn,
		Fallbacks:    []string{SeriesInflation, SeriesFixedIncome, SeriesEquity, SeriesVolatility},
		FetchedAt:    at,
	}
}

// Assumptions fetches (or reuses a cached) snapshot. It never fails: series
// that cannot be fetched use their fallback values.
func (p *Provider) Assumptions(ctx context.Context) Snapshot {
	if p.cfg.Offline {
		s := Fallback(p.now())
		s.Offline = true
		return s
	}
	if s, ok := p.cache.Get(snapshotCacheKey); ok {
		return s
	}

	var (
		inflation, fixedIncome, equityRet, vol float64
		infErr, fiErr, eqErr                   error
		g                                      errgroup.Group
	)
	g.Go(func() error {
		inflation, infErr = p.fetchInflation(ctx)
		return nil
	})
	g.Go(func() error {
		fixedIncome, fiErr = p.fetchFixedIncome(ctx)
		return nil
	})
	g.Go(func() error {
		equityRet, vol, eqErr = p.fetchEquity(ctx)
		return nil
	})
	_ = g.Wait()

	s := Snapshot{FetchedAt: p.now()}
	if infErr != nil {
		inflation = domain.FallbackInflation
		s.Fallbacks = append(s.Fallbacks, SeriesInflation)
		p.warnFallback(SeriesInflation, inflation, infErr)
	}
	if fiErr != nil {
		fixedIncome = domain.FallbackFixedIncome
		s.Fallbacks = append(s.Fallbacks, SeriesFixedIncome)
		p.warnFallback(SeriesFixedIncome, fixedIncome, fiErr)
	}
	if eqErr != nil {
		equityRet, vol = domain.FallbackEquityReturn, domain.FallbackVolatility
		s.Fallbacks = append(s.Fallbacks, SeriesEquity, SeriesVolatility)
		p.warnFallback(SeriesEquity, equityRet, eqErr)
	}

	s.FixedIncome = fixedIncome
	s.EquityReturn = equityRet
	s.Assumptions = domain.MarketAssumptions{
		Inflation:    inflation,
		SalaryGrowth: domain.DefaultSalaryGrowth,
		MeanReturn:   domain.BlendedReturn(fixedIncome, equityRet),
		Volatility:   vol,
		SavingsRate:  domain.DefaultSavingsRate,
	}.Clamp()

	// A cancelled fetch is not cached so the next caller retries.
	if ctx.Err() == nil {
		p.cache.Set(snapshotCacheKey, s)
	}
	p.logger.Info("market assumptions resolved",
		"inflation", s.Assumptions.Inflation,
		"mean_return", s.Assumptions.MeanReturn,
		"volatility", s.Assumptions.Volatility,
		log.FieldFallback, strings.Join(s.Fallbacks, ","))
	return s
}

// Invalidate drops the cached snapshot.
func (p *Provider) Invalidate() { p.cache.Delete(snapshotCacheKey) }

func (p *Provider) warnFallback(series string, value float64, err error) {
	p.logger.Warn("indicator unavailable, using fallback",
		log.FieldSeries, series, log.FieldFallback, value, log.FieldError, err.Error())
}

func (p *Provider) fetchInflation(ctx context.Context) (float64, error) {
	var points []bcbPoint
	if err := p.client.getJSON(ctx, p.cfg.BCBURL, &points); err != nil {
		return 0, err
	}
	return inflationFromIPCA(points)
}

func (p *Provider) fetchFixedIncome(ctx context.Context) (float64, error) {
	closes, err := p.fetchCloses(ctx, FixedIncomeSymbol, "1y")
	if err != nil {
		return 0, err
	}
	return fixedIncomeFromRate(closes)
}

func (p *Provider) fetchEquity(ctx context.Context) (float64, float64, error) {
	closes, err := p.fetchCloses(ctx, EquityIndexSymbol, "2y")
	if err != nil {
		return 0, 0, err
	}
	return equityFromIndex(closes)
}

func (p *Provider) fetchCloses(ctx context.Context, symbol, period string) ([]float64, error) {
	var resp chartResponse
	if err := p.client.getJSON(ctx, p.chartURL(symbol, period), &resp); err != nil {
		return nil, err
	}
	return resp.closes()
}

func (p *Provider) chartURL(symbol, period string) string {
	q := url.Values{}
	q.Set("range", period)
	q.Set("interval", "1d")
	return strings.TrimRight(p.cfg.ChartURL, "/") + "/" + url.PathEscape(symbol) + "?" + q.Encode()
}
