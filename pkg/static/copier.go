// Package static copies the static file entries of a manifest into the web root.
//
// Each entry is a glob: matched files land in the destination directory
// under their own name, matched directories have their content merged
// recursively into the destination directory.
package static

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oneconcern/assetic/pkg/glob"
	"github.com/oneconcern/assetic/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const defaultDirMode = 0777

// DefaultSkip lists the names never copied from a matched directory
var DefaultSkip = []string{".svn"}

// Observer is told about every copied match
type Observer interface {
	Mapping(src, dst string)
	Warn(msg string)
}

// Copier copies static entries
type Copier struct {
	fs      afero.Fs
	skip    map[string]bool
	dryRun  bool
	dirMode os.FileMode
	l       *zap.Logger
}

// NewCopier builds a copier for static entries
func NewCopier(fs afero.Fs, opts ...Option) *Copier {
	c := &Copier{
		fs:      fs,
		dirMode: defaultDirMode,
		l:       zap.NewNop(),
	}
	WithSkip(DefaultSkip)(c)
	for _, apply := range opts {
		apply(c)
	}
	return c
}

// Copy the matches of a static entry into <webroot>/<destination>
func (c *Copier) Copy(ctx context.Context, entry model.StaticFile, webroot string, obs Observer) (model.Stats, error) {
	var stats model.Stats

	flags, err := glob.ParseFlags(entry.Flag)
	if err != nil {
		return stats, err
	}

	dest := model.WebPath(webroot, entry.Destination)
	if !c.dryRun {
		if err := c.fs.MkdirAll(dest, c.dirMode); err != nil {
			return stats, fmt.Errorf("ensuring destination %q: %w", dest, err)
		}
	}

	matches, err := glob.Glob(c.fs, entry.Source, flags)
	if err != nil {
		return stats, err
	}
	if len(matches) == 0 {
		c.l.Debug("static source matched nothing", zap.String("source", entry.Source), zap.Stringer("flags", flags))
	}

	for _, match := range matches {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		src := filepath.Clean(match)
		info, err := c.fs.Stat(src)
		if err != nil {
			if os.IsNotExist(err) {
				obs.Warn(fmt.Sprintf("%s does not exist, skipped", match))
				continue
			}
			return stats, err
		}

		var copied model.Stats
		if info.IsDir() {
			copied, err = c.copyDir(src, dest, []os.FileInfo{info})
		} else {
			var n int64
			n, err = c.copyFile(src, filepath.Join(dest, filepath.Base(src)), info.Mode())
			copied.AddFile(n)
		}
		if err != nil {
			return stats, fmt.Errorf("copying %q: %w", src, err)
		}
		stats.Add(copied)

		obs.Mapping(match, dest)
	}
	return stats, nil
}

// copyDir merges src into dest. Symlinked directories are followed, unless
// they resolve to one of the directories being copied.
func (c *Copier) copyDir(src, dest string, walking []os.FileInfo) (model.Stats, error) {
	var stats model.Stats
	// the trailing separator makes the walk enter a symlinked root
	root := src + string(filepath.Separator)
	err := afero.Walk(c.fs, root, func(pth string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if pth == root {
			return nil
		}
		if c.skip[info.Name()] {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(src, pth)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if info.Mode()&os.ModeSymlink != 0 {
			resolved, err := c.fs.Stat(pth)
			if err != nil {
				return err
			}
			info = resolved
			if info.IsDir() {
				if onStack(walking, resolved) {
					c.l.Warn("skipped symlink loop", zap.String("link", pth))
					return nil
				}
				linked, err := c.copyDir(pth, target, append(walking[:len(walking):len(walking)], resolved))
				stats.Add(linked)
				return err
			}
		}

		if info.IsDir() {
			if c.dryRun {
				return nil
			}
			return c.fs.MkdirAll(target, c.dirMode)
		}

		n, err := c.copyFile(pth, target, info.Mode())
		if err != nil {
			return err
		}
		stats.AddFile(n)
		return nil
	})
	return stats, err
}

func onStack(walking []os.FileInfo, info os.FileInfo) bool {
	for _, visited := range walking {
		if os.SameFile(visited, info) {
			return true
		}
	}
	return false
}

func (c *Copier) copyFile(src, dst string, mode os.FileMode) (int64, error) {
	if c.dryRun {
		info, err := c.fs.Stat(src)
		if err != nil {
			return 0, err
		}
		return info.Size(), nil
	}

	if err := c.fs.MkdirAll(filepath.Dir(dst), c.dirMode); err != nil {
		return 0, err
	}

	in, err := c.fs.Open(src)
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	out, err := c.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return n, err
	}
	if err := out.Close(); err != nil {
		return n, err
	}

	c.l.Debug("copied", zap.String("source", src), zap.String("target", dst), zap.Int64("bytes", n))
	return n, nil
}
