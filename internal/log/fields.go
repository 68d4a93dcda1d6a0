package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldSeries     = "series"
	FieldFallback   = "fallback"
	FieldTrials     = "trials"
	FieldMonths     = "months"
)

// Component names
const (
	ComponentApp        = "app"
	ComponentCLI        = "cli"
	ComponentAPI        = "api"
	ComponentEngine     = "engine"
	ComponentIndicators = "indicators"
)
