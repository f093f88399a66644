package config

import "errors"

// Sentinel errors for configuration validation, checked by Config.Validate.
var (
	ErrInvalidExecutionTime     = errors.New("invalid max execution time: must be non-negative")
	ErrInvalidNodeExecutionTime = errors.New("invalid max node execution time: must be non-negative")
	ErrInvalidHTTPTimeout       = errors.New("invalid HTTP timeout: must be non-negative")
	ErrInvalidMaxRedirects      = errors.New("invalid max redirects: must be non-negative")
	ErrInvalidMaxResponseSize   = errors.New("invalid max response size: must be non-negative")
)
