package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rpgo/wealth-projector/internal/api/models"
	"github.com/rpgo/wealth-projector/internal/config"
	"github.com/rpgo/wealth-projector/internal/indicators"
	"github.com/rpgo/wealth-projector/internal/output"
)

// AssumptionsHandler exposes the current market assumptions.
type AssumptionsHandler struct {
	provider AssumptionProvider
}

// NewAssumptionsHandler creates a handler; a nil provider always reports fallbacks.
func NewAssumptionsHandler(provider AssumptionProvider) *AssumptionsHandler {
	return &AssumptionsHandler{provider: provider}
}

// GetAssumptions handles GET /api/v1/assumptions. ?refresh=true drops the cache first.
func (h *AssumptionsHandler) GetAssumptions(c *gin.Context) {
	if h.provider == nil {
		snap := indicators.Fallback(time.Now())
		c.JSON(http.StatusOK, models.AssumptionsResponse{Snapshot: snap, Live: false})
		return
	}
	if refresh, _ := strconv.ParseBool(c.Query("refresh")); refresh {
		h.provider.Invalidate()
	}
	snap := h.provider.Assumptions(c.Request.Context())
	c.JSON(http.StatusOK, models.AssumptionsResponse{Snapshot: snap, Live: snap.Live()})
}

// ListPresets handles GET /api/v1/presets
func ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": config.PresetCatalog()})
}

// ListFormats handles GET /api/v1/formats
func ListFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats": output.AvailableFormatterNames(),
		"aliases": output.AvailableFormatAliases(),
	})
}
