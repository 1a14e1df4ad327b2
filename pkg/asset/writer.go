package asset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oneconcern/assetic/pkg/errors"
	"github.com/oneconcern/assetic/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrSourceNotFound is returned when an asset's source file is missing
var ErrSourceNotFound = errors.New("asset source not found")

const (
	defaultDirMode  = 0777
	defaultFileMode = 0666
)

// Writer dumps assets under a root directory
type Writer struct {
	fs      afero.Fs
	dir     string
	dryRun  bool
	dirMode uint32
	l       *zap.Logger
}

// NewWriter builds a writer dumping assets under dir
func NewWriter(fs afero.Fs, dir string, opts ...WriterOption) *Writer {
	w := &Writer{
		fs:      fs,
		dir:     dir,
		dirMode: defaultDirMode,
		l:       zap.NewNop(),
	}
	for _, apply := range opts {
		apply(w)
	}
	return w
}

// Dir is the root directory of this writer
func (w *Writer) Dir() string {
	return w.dir
}

// WriteManagerAssets writes all assets registered in a manager, in registration order
func (w *Writer) WriteManagerAssets(ctx context.Context, m *Manager) (model.Stats, error) {
	var stats model.Stats
	for _, name := range m.Names() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		a, _ := m.Get(name)
		n, err := w.WriteAsset(a)
		if err != nil {
			return stats, fmt.Errorf("writing asset %q: %w", name, err)
		}
		stats.AddFile(n)
	}
	return stats, nil
}

// WriteAsset writes a single asset at its target path and returns the number of bytes written
func (w *Writer) WriteAsset(a *FileAsset) (int64, error) {
	info, err := w.fs.Stat(a.SourcePath)
	if err != nil || info.IsDir() {
		if err == nil || os.IsNotExist(err) {
			return 0, ErrSourceNotFound.Wrapf("The source file %q does not exist.", a.SourcePath)
		}
		return 0, err
	}

	target := model.WebPath(w.dir, a.TargetPath)
	if w.dryRun {
		w.l.Debug("dry run: skipping asset write", zap.String("source", a.SourcePath), zap.String("target", target))
		return info.Size(), nil
	}

	if err := w.fs.MkdirAll(filepath.Dir(target), os.FileMode(w.dirMode)); err != nil {
		return 0, fmt.Errorf("ensuring directories for %q: %w", target, err)
	}

	src, err := w.fs.Open(a.SourcePath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = src.Close() }()

	dst, err := w.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, defaultFileMode)
	if err != nil {
		return 0, fmt.Errorf("create %q: %w", target, err)
	}
	n, err := io.Copy(dst, src)
	if err != nil {
		_ = dst.Close()
		return n, fmt.Errorf("write %q: %w", target, err)
	}
	if err := dst.Close(); err != nil {
		return n, err
	}

	w.l.Debug("asset written", zap.String("source", a.SourcePath), zap.String("target", target), zap.Int64("bytes", n))
	return n, nil
}
