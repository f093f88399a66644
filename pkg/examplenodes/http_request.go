package examplenodes

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/flowmesh/dataflow/pkg/config"
	"github.com/flowmesh/dataflow/pkg/handler"
	"github.com/flowmesh/dataflow/pkg/httpclient"
	"github.com/flowmesh/dataflow/pkg/registry"
	"github.com/flowmesh/dataflow/pkg/types"
)

// registerHTTPRequest registers "http_request", grounded on
// pkg/httpclient.Builder and pkg/config's zero-trust SSRF defaults —
// the domain-stack HTTP component SPEC_FULL.md adds beyond spec.md's
// pure in-process node catalog. It issues one GET per firing and yields
// the response body on "body" or the error message on "error".
func registerHTTPRequest(r *registry.Registry) {
	engineConfig := config.Default()
	builder := httpclient.NewBuilder(*engineConfig)

	// One client, reused across firings; httpclient.Registry exists for
	// SDK consumers juggling multiple named profiles (auth, timeouts),
	// but this node only ever needs the zero-trust default profile.
	clients := httpclient.NewRegistry()
	clientConfig := httpclient.DefaultClientConfig("http_request", engineConfig)
	client, err := builder.Build(clientConfig)
	if err != nil {
		panic(fmt.Sprintf("http_request: building default client: %v", err))
	}
	_ = clients.Register("default", client)

	r.Define("http_request").
		Category("Integration").
		Input("url", "string").
		Output("body", "string").
		Output("status", "int").
		Output("error", "string").
		Handler(handler.FromOneShot(func(ctx context.Context, args map[string]types.Value) ([]types.Item, error) {
			url, _ := args["url"].Str()

			// The request's own target, not just redirects, must clear the
			// zero-trust SSRF policy before anything dials it.
			if err := builder.ValidateURL(url); err != nil {
				return []types.Item{{Branch: "error", Value: types.String(err.Error())}}, nil
			}

			client, err := clients.Get("default")
			if err != nil {
				return []types.Item{{Branch: "error", Value: types.String(err.Error())}}, nil
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return []types.Item{{Branch: "error", Value: types.String(err.Error())}}, nil
			}

			resp, err := client.Do(req)
			if err != nil {
				return []types.Item{{Branch: "error", Value: types.String(err.Error())}}, nil
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(io.LimitReader(resp.Body, client.GetConfig().MaxResponseSize))
			if err != nil {
				return []types.Item{{Branch: "error", Value: types.String(err.Error())}}, nil
			}

			return []types.Item{
				{Branch: "status", Value: types.Int(int64(resp.StatusCode))},
				{Branch: "body", Value: types.String(string(body))},
			}, nil
		})).
		Register()
}
