package models

import (
	"github.com/rpgo/wealth-projector/internal/domain"
	"github.com/rpgo/wealth-projector/internal/indicators"
)

// ProjectionResponse wraps a projection with the origin of its assumptions.
type ProjectionResponse struct {
	Status           string             `json:"status"`
	AssumptionSource string             `json:"assumption_source"`
	Fallbacks        []string           `json:"fallbacks,omitempty"`
	Projection       *domain.Projection `json:"projection"`
}

// AssumptionsResponse is returned by GET /api/v1/assumptions.
type AssumptionsResponse struct {
	Snapshot indicators.Snapshot `json:"snapshot"`
	Live     bool                `json:"live"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes.
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeUnsupportedFormat    = "UNSUPPORTED_FORMAT"
	CodeProjectionError      = "PROJECTION_ERROR"
	CodeRequestCancelled     = "REQUEST_CANCELLED"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeNotFound             = "NOT_FOUND"
)

// NewError builds an ErrorResponse without details.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
