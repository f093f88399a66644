// Package logging provides structured logging for the dataflow engine,
// built on Go's log/slog.
//
// # Overview
//
// Logger wraps a *slog.Logger and adds a chainable With* API for
// attaching run/node context to a line before it's emitted, plus a
// context.Context carrier so that context flows from Executor.Run down
// into node handler invocations without a direct field.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  "info",
//	    Output: os.Stdout,
//	})
//
//	logger.WithField("address", addr).Info("starting server")
//	logger.WithError(err).Error("request failed")
//
// # Context Integration
//
// Executor.SetLogger attaches a logger to a scheduler.Executor; Run
// stamps it with the current runID and stores it on the run's
// context.Context, so node handlers and internal helpers can retrieve a
// run-scoped logger without threading it through every call:
//
//	ctx = logger.WithRunID(runID).WithContext(ctx)
//	// ... later, anywhere that holds ctx:
//	logging.FromContext(ctx).WithNodeID(nodeID).Debug("node firing")
//
// # Structured Fields
//
// WithField/WithFields attach arbitrary key/value pairs; WithRunID,
// WithNodeID, and WithNodeType attach the fields the scheduler uses to
// correlate a line with one run and one firing:
//
//	logger.WithRunID(runID).WithNodeID(nodeID).WithNodeType(nodeType).
//	    Info("node firing")
//
// # Output Formats
//
// JSON (default):
//
//	{"time":"2026-01-15T10:30:00Z","level":"INFO","msg":"run started","run_id":"r-1"}
//
// Pretty (Config.Pretty = true) uses slog's text handler instead, for
// local development.
//
// # Configuration
//
//	cfg := logging.Config{
//	    Level:         "debug",    // debug, info, warn, error
//	    Output:        os.Stdout,
//	    Pretty:        false,      // JSON unless true
//	    IncludeCaller: true,       // include file:line
//	}
//
// # Thread Safety
//
// All logger operations are safe for concurrent use. Each With* call
// returns a new *Logger sharing the underlying slog handler, so a base
// logger can be reused as a template for many request- or run-scoped
// loggers without interference between them.
package logging
