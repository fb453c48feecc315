package flatstore

import (
	"path/filepath"
	"strings"

	"github.com/dd0wney/cluso-launcher/pkg/logging"
	"github.com/dd0wney/cluso-launcher/pkg/metrics"
)

type options struct {
	name     string
	logger   logging.Logger
	metrics  *metrics.Registry
	maxBytes int64
}

// Option configures Load and Open.
type Option func(*options)

// WithLogger sets the logger. Stores log nothing by default.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records loads, flushes and lookups in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(o *options) {
		o.metrics = r
	}
}

// WithName sets the store label used in logs and metrics. It defaults to the
// file name without its extension.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithMaxBytes caps the record bytes a load may allocate and Append may grow a
// store to. Zero or less keeps DefaultMaxBytes.
func WithMaxBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBytes = n
		}
	}
}

func newOptions(path string, opts []Option) *options {
	base := filepath.Base(path)
	o := &options{
		name:     strings.TrimSuffix(base, filepath.Ext(base)),
		logger:   logging.NewNopLogger(),
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With(logging.Component("flatstore"), logging.Store(o.name))
	return o
}
