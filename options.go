package timerservice

import "github.com/rs/zerolog"

// serviceOptions holds configuration resolved from a list of Option values.
type serviceOptions struct {
	logger        *zerolog.Logger
	hints         HintSource
	clock         *Clock
	freelistBatch int
}

// Option configures a Service at construction.
type Option interface {
	apply(*serviceOptions)
}

type optionFunc func(*serviceOptions)

func (f optionFunc) apply(o *serviceOptions) { f(o) }

// WithLogger sets the structured logger used for lifecycle transitions,
// timer creations rejected for invalid parameters, resolution-controller
// best-effort failures, and recovered callback panics. Default is a no-op
// logger.
func WithLogger(logger zerolog.Logger) Option {
	return optionFunc(func(o *serviceOptions) {
		o.logger = &logger
	})
}

// WithHints supplies the hint-subsystem collaborator the resolution
// controller subscribes to for "TIMER_RESOLUTION". Default is an empty
// in-memory HintSource (period defaults to 1ms).
func WithHints(hints HintSource) Option {
	return optionFunc(func(o *serviceOptions) {
		o.hints = hints
	})
}

// WithClock injects a Clock, for deterministic tests. Default is a Clock
// over the real system performance counter.
func WithClock(clock *Clock) Option {
	return optionFunc(func(o *serviceOptions) {
		o.clock = clock
	})
}

// WithFreelistBatch sets a hint for how large a locally-accumulated
// freelist batch the worker should gather before splicing it onto the
// shared freelist. 0 (default) splices every
// iteration; this option only affects amortization, never correctness.
func WithFreelistBatch(n int) Option {
	return optionFunc(func(o *serviceOptions) {
		o.freelistBatch = n
	})
}

// resolveOptions applies opts over defaults.
func resolveOptions(opts []Option) *serviceOptions {
	nop := zerolog.Nop()
	cfg := &serviceOptions{
		logger: &nop,
		hints:  NewMemoryHints(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(cfg)
		}
	}
	return cfg
}
