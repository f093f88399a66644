// Command server starts the dataflow graph execution engine's HTTP API.
//
// Usage:
//
//	server [flags]
//
// Flags:
//
//	-addr string
//	    Server address (default ":8080")
//	-read-timeout duration
//	    HTTP read timeout (default 30s)
//	-write-timeout duration
//	    HTTP write timeout (default 30s)
//	-rps float
//	    Control-surface requests per second (default 50)
//
// The server exposes the endpoints in spec.md §6: GET /nodes, POST
// /graph, POST /run, POST /export, POST /upload-nodes, POST
// /clear-custom-nodes, POST /reload-nodes, GET /examples, GET
// /examples/{key}, WS /ws/events, plus /health, /health/live,
// /health/ready, and /metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flowmesh/dataflow/pkg/config"
	"github.com/flowmesh/dataflow/pkg/server"
)

func main() {
	addr := flag.String("addr", ":8080", "Server address")
	readTimeout := flag.Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	rps := flag.Float64("rps", 50, "Control-surface requests per second")
	allowHTTP := flag.Bool("allow-http", true, "Allow http_request nodes to dial HTTP")

	flag.Parse()

	serverConfig := server.DefaultConfig()
	serverConfig.Address = *addr
	serverConfig.ReadTimeout = *readTimeout
	serverConfig.WriteTimeout = *writeTimeout
	serverConfig.RequestsPerSecond = *rps

	engineConfig := config.Default()
	engineConfig.AllowHTTP = *allowHTTP

	srv, err := server.New(serverConfig, engineConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create server: %v\n", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		fmt.Printf("dataflow engine listening on %s\n", *addr)
		fmt.Printf("health:  http://localhost%s/health\n", *addr)
		fmt.Printf("metrics: http://localhost%s/metrics\n", *addr)
		fmt.Printf("nodes:   http://localhost%s/nodes\n", *addr)
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	case sig := <-sigChan:
		fmt.Printf("received signal: %v, shutting down\n", sig)

		ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("server stopped")
	}
}
