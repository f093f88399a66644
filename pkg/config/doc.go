// Package config provides configuration for the dataflow engine: the
// execution limits scheduler.Executor enforces per run and per node
// firing, and the zero-trust network policy pkg/httpclient and
// pkg/security enforce on every HTTP node.
//
// # Basic Usage
//
//	import "github.com/flowmesh/dataflow/pkg/config"
//
//	cfg := config.Default()
//	cfg.AllowHTTP = true
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	server, err := server.New(server.Config{Address: ":8080"}, cfg)
//
// # Presets
//
// Default, Development, Production, and Testing return a *Config tuned
// for that environment; Development/Testing relax the network policy
// (AllowHTTP, AllowPrivateIPs, AllowLocalhost) for local work against
// loopback services, while still blocking cloud metadata endpoints.
//
// # Zero Trust Network Policy
//
// All network access is denied by default; the Allow* fields on Config
// opt back in explicitly, mirroring pkg/security's SSRF guard:
//
//	AllowHTTP: false (HTTPS only)
//	AllowPrivateIPs: false (BLOCKED)
//	AllowLocalhost: false (BLOCKED)
//	AllowLinkLocal: false (BLOCKED)
//	AllowCloudMetadata: false (BLOCKED)
//
// # Thread Safety
//
// Config is a plain struct; callers that mutate a shared *Config after
// handing copies to multiple goroutines should Clone() first.
package config
