package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/wealth-projector/internal/api/middleware"
	"github.com/rpgo/wealth-projector/internal/api/models"
	"github.com/rpgo/wealth-projector/internal/domain"
	"github.com/rpgo/wealth-projector/internal/indicators"
)

type fakeProvider struct {
	snapshot    indicators.Snapshot
	calls       int
	invalidated int
}

func (f *fakeProvider) Assumptions(context.Context) indicators.Snapshot {
	f.calls++
	return f.snapshot
}

func (f *fakeProvider) Invalidate() { f.invalidated++ }

func newTestRouter(t *testing.T, provider *fakeProvider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	deps := Dependencies{MaxTrials: 500}
	if provider != nil {
		deps.Provider = provider
	}
	return NewRouter(deps)
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{
  "profile": {"initial_wealth": 3000, "initial_salary": 3000, "horizon_months": 12},
  "spending": {"housing": {"preset": "studio"}, "transport": {"amount": 300}},
  "simulation": {"trials": 20, "seed": 7}
}`

func TestHealth(t *testing.T) {
	w := doJSON(t, newTestRouter(t, nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestCreateProjection(t *testing.T) {
	w := doJSON(t, newTestRouter(t, nil), http.MethodPost, "/api/v1/projections", validBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	var resp struct {
		Status           string `json:"status"`
		AssumptionSource string `json:"assumption_source"`
		Projection       struct {
			HorizonMonths int `json:"horizon_months"`
			Ensemble      struct {
				Trials int `json:"trials"`
				Bands  []struct {
					Month int `json:"month"`
				} `json:"bands"`
			} `json:"ensemble"`
			Ideal []float64 `json:"ideal"`
		} `json:"projection"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, domain.AssumptionSourceDefaults, resp.AssumptionSource)
	assert.Equal(t, 12, resp.Projection.HorizonMonths)
	assert.Equal(t, 20, resp.Projection.Ensemble.Trials)
	assert.Len(t, resp.Projection.Ensemble.Bands, 13)
	assert.Len(t, resp.Projection.Ideal, 13)
	assert.InDelta(t, 3000.0, resp.Projection.Ideal[0], 1e-9)
}

func TestCreateProjectionIsReproducible(t *testing.T) {
	r := newTestRouter(t, nil)
	first := doJSON(t, r, http.MethodPost, "/api/v1/projections", validBody)
	second := doJSON(t, r, http.MethodPost, "/api/v1/projections", validBody)
	require.Equal(t, http.StatusOK, first.Code)

	var a, b map[string]any
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.Equal(t,
		a["projection"].(map[string]any)["ensemble"],
		b["projection"].(map[string]any)["ensemble"])
}

func TestCreateProjectionRequestID(t *testing.T) {
	r := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projections", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.HeaderRequestID))
}

func TestCreateProjectionErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
		field  string
	}{
		{
			name:   "malformed json",
			body:   `{"profile": `,
			status: http.StatusBadRequest,
			code:   models.CodeInvalidRequest,
		},
		{
			name:   "zero horizon",
			body:   `{"profile": {"initial_wealth": 1000, "initial_salary": 3000}}`,
			status: http.StatusBadRequest,
			code:   models.CodeInvalidConfiguration,
			field:  "profile.horizon_months",
		},
		{
			name:   "horizon too long",
			body:   `{"profile": {"initial_wealth": 0, "initial_salary": 3000, "horizon_months": 2000000000}}`,
			status: http.StatusBadRequest,
			code:   models.CodeInvalidConfiguration,
			field:  "profile.horizon_months",
		},
		{
			name:   "horizon years overflow",
			body:   `{"profile": {"initial_wealth": 0, "initial_salary": 3000, "horizon_years": 4611686018427387905}}`,
			status: http.StatusBadRequest,
			code:   models.CodeInvalidConfiguration,
			field:  "profile.horizon_years",
		},
		{
			name:   "negative wealth",
			body:   `{"profile": {"initial_wealth": -1, "initial_salary": 3000, "horizon_months": 12}}`,
			status: http.StatusBadRequest,
			code:   models.CodeInvalidConfiguration,
			field:  "profile.initial_wealth",
		},
		{
			name:   "unknown preset",
			body:   `{"profile": {"initial_wealth": 0, "initial_salary": 3000, "horizon_months": 12}, "spending": {"housing": {"preset": "castle"}}}`,
			status: http.StatusBadRequest,
			code:   models.CodeInvalidConfiguration,
			field:  "spending.housing",
		},
		{
			name:   "too many trials",
			body:   `{"profile": {"initial_wealth": 0, "initial_salary": 3000, "horizon_months": 12}, "simulation": {"trials": 100000}}`,
			status: http.StatusBadRequest,
			code:   models.CodeInvalidConfiguration,
			field:  "simulation.trials",
		},
		{
			name:   "unsupported format",
			body:   `{"profile": {"initial_wealth": 0, "initial_salary": 3000, "horizon_months": 12}, "format": "pdf"}`,
			status: http.StatusBadRequest,
			code:   models.CodeUnsupportedFormat,
		},
	}

	r := newTestRouter(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/projections", tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			if tt.field != "" {
				assert.Equal(t, tt.field, resp.Error.Details["field"])
			}
		})
	}
}

func TestCreateProjectionCSV(t *testing.T) {
	body := strings.Replace(validBody, `"simulation"`, `"format": "csv", "simulation"`, 1)
	w := doJSON(t, newTestRouter(t, nil), http.MethodPost, "/api/v1/projections", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Equal(t, "month,median,p10,p90,ideal,savings", lines[0])
	assert.Len(t, lines, 14)
}

func TestCreateProjectionLiveAssumptions(t *testing.T) {
	snap := indicators.Fallback(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	snap.Fallbacks = []string{indicators.SeriesEquity}
	snap.Assumptions.Inflation = 0.05
	provider := &fakeProvider{snapshot: snap}

	body := strings.Replace(validBody, `"simulation"`, `"assumptions": {"source": "live"}, "simulation"`, 1)
	w := doJSON(t, newTestRouter(t, provider), http.MethodPost, "/api/v1/projections", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, provider.calls)

	var resp struct {
		AssumptionSource string   `json:"assumption_source"`
		Fallbacks        []string `json:"fallbacks"`
		Projection       struct {
			Assumptions domain.MarketAssumptions `json:"assumptions"`
		} `json:"projection"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.AssumptionSourceLive, resp.AssumptionSource)
	assert.Equal(t, []string{indicators.SeriesEquity}, resp.Fallbacks)
	assert.InDelta(t, 0.05, resp.Projection.Assumptions.Inflation, 1e-12)
}

func TestGetAssumptions(t *testing.T) {
	provider := &fakeProvider{snapshot: indicators.Snapshot{Assumptions: domain.DefaultMarketAssumptions()}}
	r := newTestRouter(t, provider)

	w := doJSON(t, r, http.MethodGet, "/api/v1/assumptions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"live":true`)
	assert.Equal(t, 0, provider.invalidated)

	w = doJSON(t, r, http.MethodGet, "/api/v1/assumptions?refresh=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, provider.invalidated)
	assert.Equal(t, 2, provider.calls)
}

func TestGetAssumptionsWithoutProvider(t *testing.T) {
	w := doJSON(t, newTestRouter(t, nil), http.MethodGet, "/api/v1/assumptions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"live":false`)
}

func TestListPresetsAndFormats(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/presets", "")
	require.Equal(t, http.StatusOK, w.Code)
	var presets struct {
		Presets map[string][]map[string]any `json:"presets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &presets))
	assert.Len(t, presets.Presets, len(domain.Categories))

	w = doJSON(t, r, http.MethodGet, "/api/v1/formats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"yearly-csv"`)
}

func TestNotFound(t *testing.T) {
	w := doJSON(t, newTestRouter(t, nil), http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), models.CodeNotFound)
}

func TestPanicRecovery(t *testing.T) {
	r := newTestRouter(t, nil)
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := doJSON(t, r, http.MethodGet, "/boom", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.CodeInternalError, resp.Error.Code)
	assert.Equal(t, "kaboom", resp.Error.Message)
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/projections", bytes.NewReader(nil))
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", Dependencies{}) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestPortFromEnv(t *testing.T) {
	t.Setenv("WEALTHSIM_PORT", "")
	assert.Equal(t, DefaultPort, PortFromEnv())
	t.Setenv("WEALTHSIM_PORT", "9090")
	assert.Equal(t, "9090", PortFromEnv())
}
