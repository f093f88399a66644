// Package security implements SSRF (server-side request forgery) protection
// for outbound HTTP calls made by dataflow nodes: the node catalog accepts
// caller-supplied URLs (pkg/examplenodes' http_request node) that must never
// be allowed to reach internal infrastructure.
//
// # Basic Usage
//
//	protection := security.NewSSRFProtectionWithConfig(security.SSRFConfig{
//	    AllowedSchemes:     []string{"http", "https"},
//	    BlockPrivateIPs:    true,
//	    BlockLocalhost:     true,
//	    BlockLinkLocal:     true,
//	    BlockCloudMetadata: true,
//	})
//	if err := protection.ValidateURL(url); err != nil {
//	    return fmt.Errorf("URL not allowed: %w", err)
//	}
//
// pkg/httpclient.Builder wraps this with pkg/config's Allow* policy fields
// so callers rarely construct an SSRFConfig directly.
//
// # What ValidateURL Checks
//
//   - Scheme is in AllowedSchemes
//   - An IP-literal host, or every IP a hostname resolves to, clears the
//     Block* checks; a hostname that does not resolve passes once the
//     hostname checks have passed
//   - Private (RFC 1918), loopback, link-local, and cloud metadata
//     (169.254.169.254 and friends) addresses are blocked independently,
//     so a policy can permit private IPs while still blocking metadata
//   - AllowedDomains, when non-empty, restricts hosts to that allowlist
//
// # Thread Safety
//
// SSRFProtection holds no mutable state after construction and is safe for
// concurrent use.
package security
