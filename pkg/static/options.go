package static

import (
	"os"

	"go.uber.org/zap"
)

// Option for the static copier
type Option func(*Copier)

// WithSkip sets the names ignored when copying a matched directory
func WithSkip(names []string) Option {
	return func(c *Copier) {
		c.skip = make(map[string]bool, len(names))
		for _, name := range names {
			if name != "" {
				c.skip[name] = true
			}
		}
	}
}

// WithDryRun reports matches without copying anything
func WithDryRun(dryRun bool) Option {
	return func(c *Copier) {
		c.dryRun = dryRun
	}
}

// WithDirMode sets the permissions of created directories
func WithDirMode(mode os.FileMode) Option {
	return func(c *Copier) {
		if mode != 0 {
			c.dirMode = mode
		}
	}
}

// WithLogger injects a logger in the copier
func WithLogger(l *zap.Logger) Option {
	return func(c *Copier) {
		if l != nil {
			c.l = l
		}
	}
}
