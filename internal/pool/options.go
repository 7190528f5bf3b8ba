package pool

import "github.com/rs/zerolog"

type options struct {
	logger   zerolog.Logger
	afterPop func()
}

// Option configures a Pool.
type Option func(*options)

// WithLogger sets the logger used for lifecycle and panic diagnostics.
// The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func resolveOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
