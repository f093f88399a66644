// Package httpclient builds *http.Client instances for dataflow nodes that
// reach out over the network, with SSRF checks derived from pkg/config's
// Allow* policy. Build checks every redirect hop itself; the first request
// URL is checked by the caller through Builder.ValidateURL.
//
// # Features
//
//   - Authentication: None (default), Basic Auth, Bearer Token
//   - Configurable timeouts, connection pooling, and network settings
//   - Default headers and query parameters
//   - SSRF protection on both the initial request and every redirect hop
//   - A Registry for SDK consumers that need several named client profiles
//
// # Authentication Types
//
// The package supports three authentication types:
//
//   - None: No authentication (default)
//   - Basic: HTTP Basic Authentication with username and password
//   - Bearer: Bearer Token authentication
//
// # Example Usage
//
//	clientConfig := httpclient.DefaultClientConfig("http_request", engineConfig)
//	clientConfig.AuthType = httpclient.AuthTypeBearer
//	clientConfig.Token = "your-api-token"
//
//	builder := httpclient.NewBuilder(*engineConfig)
//	client, err := builder.Build(clientConfig)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// ValidateURL must be called on any caller-supplied URL before it is
//	// dialed — Build only wires redirect-time validation automatically.
//	if err := builder.ValidateURL(url); err != nil {
//	    return err
//	}
//
// # Security Considerations
//
//   - Builder.ValidateURL must be called explicitly on the first request URL;
//     Build only wires SSRF validation into the client's CheckRedirect hook
//   - Credentials should be passed via environment variables, not hardcoded
//   - ClientConfig.MaxResponseSize carries a body-size limit; Build does not
//     cap response bodies, so the reader applies it (the http_request node
//     reads through io.LimitReader)
//   - Redirect validation prevents redirect-based SSRF attacks
//   - Connection pooling limits prevent resource exhaustion
package httpclient
