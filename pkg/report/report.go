// Package report prints dump progress on the console.
//
// Informative markers are printed in green and warnings in yellow, unless
// colors are disabled.
package report

import (
	"fmt"
	"io"

	units "github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/oneconcern/assetic/pkg/model"
)

// Reporter writes human-readable progress to an output
type Reporter struct {
	out     io.Writer
	verbose bool
	dryRun  bool
	info    *color.Color
	warning *color.Color
}

// Option for the reporter
type Option func(*Reporter)

// WithVerbose enables verbose-only messages
func WithVerbose(verbose bool) Option {
	return func(r *Reporter) {
		r.verbose = verbose
	}
}

// WithColor forces colors on or off. By default, colors follow the terminal's capabilities.
func WithColor(enabled bool) Option {
	return func(r *Reporter) {
		for _, c := range []*color.Color{r.info, r.warning} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// WithDryRun flags summaries as simulated
func WithDryRun(dryRun bool) Option {
	return func(r *Reporter) {
		r.dryRun = dryRun
	}
}

// New reporter writing to out
func New(out io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		out:     out,
		info:    color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

// Line prints a plain line
func (r *Reporter) Line(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

// Info prints an informative line
func (r *Reporter) Info(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(r.out, r.info.Sprintf(format, args...))
}

// Highlight renders s as informative text, to be embedded in a line
func (r *Reporter) Highlight(s string) string {
	return r.info.Sprint(s)
}

// Start announces the dump of a source
func (r *Reporter) Start(name string) {
	r.Line("")
	r.Info(`Start dumping "%s" assets:`, name)
}

// Mapping reports that src has been published to dst
func (r *Reporter) Mapping(src, dst string) {
	_, _ = fmt.Fprintf(r.out, "%s %s %s\n", src, r.info.Sprint(" >>> "), dst)
}

// Warn prints a warning
func (r *Reporter) Warn(msg string) {
	_, _ = fmt.Fprintln(r.out, r.warning.Sprint(msg))
}

// Verbose prints a warning only in verbose mode
func (r *Reporter) Verbose(msg string) {
	if r.verbose {
		r.Warn(msg)
	}
}

// End closes the dump of a source, with a summary of what was written
func (r *Reporter) End(stats model.Stats) {
	verb := "written"
	if r.dryRun {
		verb = "to write, dry run"
	}
	_, _ = fmt.Fprintf(r.out, "%s (%s, %s %s)\n", r.info.Sprint("End"), files(stats.Files), units.HumanSize(float64(stats.Bytes)), verb)
}

func files(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}
