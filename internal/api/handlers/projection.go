package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rpgo/wealth-projector/internal/api/models"
	"github.com/rpgo/wealth-projector/internal/calculation"
	"github.com/rpgo/wealth-projector/internal/config"
	"github.com/rpgo/wealth-projector/internal/domain"
	"github.com/rpgo/wealth-projector/internal/indicators"
	"github.com/rpgo/wealth-projector/internal/log"
	"github.com/rpgo/wealth-projector/internal/output"
)

// DefaultMaxTrials caps the ensemble size a single request may ask for.
const DefaultMaxTrials = 20000

// AssumptionProvider supplies live market assumptions.
type AssumptionProvider interface {
	Assumptions(ctx context.Context) indicators.Snapshot
	Invalidate()
}

// ProjectionHandler handles projection requests
type ProjectionHandler struct {
	engine    *calculation.ProjectionEngine
	provider  AssumptionProvider
	parser    *config.InputParser
	MaxTrials int
}

// NewProjectionHandler creates a new projection handler. provider may be nil,
// in which case live assumptions resolve to the fallback record.
func NewProjectionHandler(engine *calculation.ProjectionEngine, provider AssumptionProvider) *ProjectionHandler {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	return &ProjectionHandler{
		engine:    engine,
		provider:  provider,
		parser:    config.NewInputParser(),
		MaxTrials: DefaultMaxTrials,
	}
}

// CreateProjection handles POST /api/v1/projections
func (h *ProjectionHandler) CreateProjection(c *gin.Context) {
	var req models.ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error()))
		return
	}
	if err := h.parser.ValidateConfiguration(&req.Configuration); err != nil {
		writeError(c, err)
		return
	}
	if req.Simulation.Trials > h.MaxTrials {
		writeError(c, domain.NewConfigurationError("simulation.trials", "at most %d trials per request, got %d", h.MaxTrials, req.Simulation.Trials))
		return
	}

	var formatter output.Formatter
	if req.Format != "" && output.NormalizeFormatName(req.Format) != "json" {
		f, err := output.NewFormatter(req.Format, output.Options{Currency: req.Report.Currency})
		if err != nil {
			c.JSON(http.StatusBadRequest, models.NewError(models.CodeUnsupportedFormat, err.Error()))
			return
		}
		formatter = f
	}

	ctx := c.Request.Context()
	base := domain.DefaultMarketAssumptions()
	source := domain.AssumptionSourceDefaults
	var fallbacks []string
	if config.UsesLiveAssumptions(&req.Configuration) {
		source = domain.AssumptionSourceLive
		if h.provider != nil {
			snap := h.provider.Assumptions(ctx)
			base, fallbacks = snap.Assumptions, snap.Fallbacks
		} else {
			fallbacks = indicators.Fallback(time.Now()).Fallbacks
		}
	}

	preq, err := config.BuildRequest(&req.Configuration, base)
	if err != nil {
		writeError(c, err)
		return
	}
	projection, err := h.engine.Run(ctx, preq)
	if err != nil {
		writeError(c, err)
		return
	}

	if formatter != nil {
		body, err := formatter.Format(projection)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Data(http.StatusOK, contentType(formatter.Extension()), body)
		return
	}
	c.JSON(http.StatusOK, models.ProjectionResponse{
		Status:           "ok",
		AssumptionSource: source,
		Fallbacks:        fallbacks,
		Projection:       projection,
	})
}

// writeError maps engine and configuration errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	if ce, ok := domain.AsConfigurationError(err); ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    models.CodeInvalidConfiguration,
				Message: err.Error(),
				Details: map[string]interface{}{"field": ce.Field},
			},
		})
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusServiceUnavailable, models.NewError(models.CodeRequestCancelled, err.Error()))
		return
	}
	log.FromContext(c.Request.Context()).Error("projection failed", log.FieldError, err.Error())
	c.JSON(http.StatusInternalServerError, models.NewError(models.CodeProjectionError, err.Error()))
}

func contentType(ext string) string {
	switch ext {
	case "csv":
		return "text/csv; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	case "json":
		return "application/json; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
