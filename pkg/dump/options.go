package dump

import (
	"github.com/oneconcern/assetic/pkg/placeholder"
	"go.uber.org/zap"
)

// Option for the dumper
type Option func(*Dumper)

// WithResolver sets the placeholder resolver applied to manifests
func WithResolver(r *placeholder.Resolver) Option {
	return func(d *Dumper) {
		d.resolver = r
	}
}

// WithReporter sets the progress reporter. By default, progress is discarded.
func WithReporter(r Reporter) Option {
	return func(d *Dumper) {
		if r != nil {
			d.reporter = r
		}
	}
}

// WithLogger sets a logger
func WithLogger(l *zap.Logger) Option {
	return func(d *Dumper) {
		if l != nil {
			d.l = l
		}
	}
}

// WithDryRun reports what would be dumped without writing anything
func WithDryRun(dryRun bool) Option {
	return func(d *Dumper) {
		d.dryRun = dryRun
	}
}

// WithSkip sets the names ignored when copying static directories
func WithSkip(names []string) Option {
	return func(d *Dumper) {
		if names != nil {
			d.skip = names
		}
	}
}
