// Package dump publishes the assets declared by manifests into the web root.
//
// For every source, managed assets are registered in an asset manager and
// written by an asset writer rooted at the web root, then static entries are
// copied with their glob semantics.
package dump

import (
	"context"
	"fmt"

	"github.com/oneconcern/assetic/pkg/asset"
	"github.com/oneconcern/assetic/pkg/manifest"
	"github.com/oneconcern/assetic/pkg/model"
	"github.com/oneconcern/assetic/pkg/placeholder"
	"github.com/oneconcern/assetic/pkg/static"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Reporter receives the progress of a dump
type Reporter interface {
	Start(name string)
	Mapping(src, dst string)
	Warn(msg string)
	Verbose(msg string)
	End(stats model.Stats)
}

// Dumper dumps sources into a web root
type Dumper struct {
	fs       afero.Fs
	webroot  string
	resolver *placeholder.Resolver
	reporter Reporter
	l        *zap.Logger
	dryRun   bool
	skip     []string
}

// New dumper writing into webroot
func New(fs afero.Fs, webroot string, opts ...Option) *Dumper {
	d := &Dumper{
		fs:       fs,
		webroot:  webroot,
		reporter: nopReporter{},
		l:        zap.NewNop(),
		skip:     static.DefaultSkip,
	}
	for _, apply := range opts {
		apply(d)
	}
	if d.resolver == nil {
		d.resolver = placeholder.New(nil, placeholder.WithLogger(d.l))
	}
	return d
}

// Webroot is the directory assets are dumped into
func (d *Dumper) Webroot() string {
	return d.webroot
}

// DumpAll dumps every source in order. Sources without a manifest are only
// mentioned in verbose mode.
func (d *Dumper) DumpAll(ctx context.Context, sources []model.Source) (model.Stats, error) {
	var total model.Stats
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		ok, err := manifest.Exists(d.fs, src)
		if err != nil {
			return total, err
		}
		if !ok {
			d.reporter.Verbose(manifest.MissingMessage(src))
			continue
		}

		stats, err := d.DumpSource(ctx, src)
		total.Add(stats)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// DumpSource dumps the manifest of a single source
func (d *Dumper) DumpSource(ctx context.Context, src model.Source) (model.Stats, error) {
	var stats model.Stats
	d.reporter.Start(src.Name)

	m, err := manifest.Read(d.fs, src.Manifest, d.resolver)
	if err != nil {
		return stats, err
	}
	d.l.Debug("manifest loaded",
		zap.String("source", src.Name),
		zap.String("manifest", m.Path),
		zap.Int("assets", len(m.Assets)),
		zap.Int("static", len(m.Static)),
	)

	managed, err := d.writeAssets(ctx, m)
	stats.Add(managed)
	if err != nil {
		return stats, fmt.Errorf("dumping %s assets: %w", src.Name, err)
	}

	copier := static.NewCopier(d.fs,
		static.WithSkip(d.skip),
		static.WithDryRun(d.dryRun),
		static.WithLogger(d.l),
	)
	for _, entry := range m.Static {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		d.logUnresolved(entry.Source)
		copied, err := copier.Copy(ctx, entry, d.webroot, d.reporter)
		stats.Add(copied)
		if err != nil {
			return stats, fmt.Errorf("dumping %s static files: %w", src.Name, err)
		}
	}

	d.reporter.End(stats)
	return stats, nil
}

func (d *Dumper) writeAssets(ctx context.Context, m *model.Manifest) (model.Stats, error) {
	am := asset.NewManager()
	for _, a := range m.Assets {
		if err := am.Set(a.Name, asset.NewFileAsset(a.Source, a.Destination)); err != nil {
			return model.Stats{}, err
		}
		d.logUnresolved(a.Source)
		d.reporter.Mapping(a.Source, model.WebPath(d.webroot, a.Destination))
	}

	w := asset.NewWriter(d.fs, d.webroot,
		asset.WriterLogger(d.l),
		asset.WriterDryRun(d.dryRun),
	)
	return w.WriteManagerAssets(ctx, am)
}

func (d *Dumper) logUnresolved(pth string) {
	if tokens := d.resolver.Unresolved(pth); len(tokens) > 0 {
		d.l.Debug("path keeps unknown placeholders", zap.String("path", pth), zap.Strings("placeholders", tokens))
	}
}

type nopReporter struct{}

func (nopReporter) Start(string)        {}
func (nopReporter) Mapping(_, _ string) {}
func (nopReporter) Warn(string)         {}
func (nopReporter) Verbose(string)      {}
func (nopReporter) End(model.Stats)     {}
