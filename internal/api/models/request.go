package models

import "github.com/rpgo/wealth-projector/internal/domain"

// ProjectionRequest is the body of POST /api/v1/projections. It accepts the
// same document as a JSON configuration file.
type ProjectionRequest struct {
	domain.Configuration
	// Format selects the response body: json (default), csv, yearly-csv or html.
	Format string `json:"format,omitempty"`
}
