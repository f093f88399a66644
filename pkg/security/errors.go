package security

import "errors"

// Sentinel errors returned by SSRFProtection.ValidateURL, wrapped with
// fmt.Errorf("%w: ...") for the offending host/scheme.
var (
	ErrInvalidFormat    = errors.New("invalid URL format")
	ErrInvalidProtocol  = errors.New("invalid or disallowed protocol")
	ErrURLNotAllowed    = errors.New("URL not allowed by security policy")
	ErrLocalhostBlocked = errors.New("access to localhost blocked")
	ErrPrivateIPBlocked = errors.New("access to private IP blocked")
	ErrMetadataBlocked  = errors.New("access to cloud metadata blocked")
)
