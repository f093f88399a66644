package scheduler

import "time"

// Config carries the scheduler's concurrency and timeout limits.
// RunTimeout and PerNodeTimeout are populated from pkg/config.Config's
// MaxExecutionTime/MaxNodeExecutionTime by pkg/server's /run handler.
type Config struct {
	// MaxConcurrencyPerNode bounds concurrent firings of one node.
	// spec.md §4.2.2 defaults this to 1 and every invariant in §8
	// depends on that default; raising it is a documented future
	// extension (spec.md §9) that would require rethinking the
	// positional fan-in pairing semantics.
	MaxConcurrencyPerNode int

	// RunTimeout bounds the lifetime of one Run call; zero means
	// unbounded.
	RunTimeout time.Duration

	// PerNodeTimeout bounds a single handler invocation; zero means
	// unbounded. Exceeding it fails that firing with context.DeadlineExceeded,
	// isolated the same way any other handler error is (spec.md §7 category 2).
	PerNodeTimeout time.Duration

	// MaxFirings is a runaway-graph circuit breaker: once the run has
	// made this many firings, a node becoming ready for one more is
	// treated as a scheduler error (spec.md §7 category 3) and
	// surfaces run_error. Zero means unbounded.
	MaxFirings int
}

// DefaultConfig returns the spec-mandated defaults.
func DefaultConfig() Config {
	return Config{MaxConcurrencyPerNode: 1}
}
