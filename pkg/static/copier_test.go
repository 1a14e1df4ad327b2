package static

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oneconcern/assetic/pkg/errors"
	"github.com/oneconcern/assetic/pkg/glob"
	"github.com/oneconcern/assetic/pkg/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mappings [][2]string
	warnings []string
}

func (r *recorder) Mapping(src, dst string) { r.mappings = append(r.mappings, [2]string{src, dst}) }
func (r *recorder) Warn(msg string)         { r.warnings = append(r.warnings, msg) }

func vendorFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	for f, content := range map[string]string{
		"/vendor/fa/fonts/fa.woff":       "woff",
		"/vendor/fa/fonts/fa.ttf":        "ttf",
		"/vendor/fa/fonts/.svn/entries":  "svn",
		"/vendor/fa/css/fa.css":          "css",
		"/vendor/fa/css/nested/more.css": "more",
		"/vendor/img/logo.png":           "png",
		"/vendor/img/icon.png":           "icon",
	} {
		require.NoError(t, fs.MkdirAll(filepath.Dir(f), 0755))
		require.NoError(t, afero.WriteFile(fs, f, []byte(content), 0644))
	}
	return fs
}

func readString(t *testing.T, fs afero.Fs, pth string) string {
	b, err := afero.ReadFile(fs, pth)
	require.NoError(t, err)
	return string(b)
}

func TestCopyFiles(t *testing.T) {
	fs := vendorFs(t)
	rec := &recorder{}

	stats, err := NewCopier(fs).Copy(context.Background(), model.StaticFile{
		Source:      "/vendor/img/*.png",
		Destination: "img",
	}, "/webroot", rec)
	require.NoError(t, err)

	assert.Equal(t, model.Stats{Files: 2, Bytes: int64(len("png") + len("icon"))}, stats)
	assert.Equal(t, "png", readString(t, fs, "/webroot/img/logo.png"))
	assert.Equal(t, "icon", readString(t, fs, "/webroot/img/icon.png"))
	assert.Equal(t, [][2]string{
		{"/vendor/img/icon.png", "/webroot/img"},
		{"/vendor/img/logo.png", "/webroot/img"},
	}, rec.mappings)
}

func TestCopyDirectoriesWithBrace(t *testing.T) {
	fs := vendorFs(t)
	rec := &recorder{}

	stats, err := NewCopier(fs).Copy(context.Background(), model.StaticFile{
		Source:      "/vendor/fa/{fonts,css}",
		Destination: "vendor/fa",
		Flag:        "GLOB_BRACE",
	}, "/webroot", rec)
	require.NoError(t, err)

	// directory contents are merged into the destination
	assert.Equal(t, "woff", readString(t, fs, "/webroot/vendor/fa/fa.woff"))
	assert.Equal(t, "ttf", readString(t, fs, "/webroot/vendor/fa/fa.ttf"))
	assert.Equal(t, "css", readString(t, fs, "/webroot/vendor/fa/fa.css"))
	assert.Equal(t, "more", readString(t, fs, "/webroot/vendor/fa/nested/more.css"))
	assert.Equal(t, 4, stats.Files)

	skipped, err := afero.Exists(fs, "/webroot/vendor/fa/.svn")
	require.NoError(t, err)
	assert.False(t, skipped)

	assert.Len(t, rec.mappings, 2)
	assert.Empty(t, rec.warnings)
}

func TestCopyBraceAlternativesInOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	for f, content := range map[string]string{
		"/v/fonts/a.txt": "from-fonts",
		"/v/css/a.txt":   "from-css",
	} {
		require.NoError(t, fs.MkdirAll(filepath.Dir(f), 0755))
		require.NoError(t, afero.WriteFile(fs, f, []byte(content), 0644))
	}
	rec := &recorder{}

	_, err := NewCopier(fs).Copy(context.Background(), model.StaticFile{
		Source:      "/v/{fonts,css}",
		Destination: "d",
		Flag:        "GLOB_BRACE",
	}, "/w", rec)
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{"/v/fonts", "/w/d"},
		{"/v/css", "/w/d"},
	}, rec.mappings)
	// last alternative wins
	assert.Equal(t, "from-css", readString(t, fs, "/w/d/a.txt"))
}

func TestCopySymlinkLoop(t *testing.T) {
	root := t.TempDir()
	vendor := filepath.Join(root, "vendor")
	require.NoError(t, os.MkdirAll(filepath.Join(vendor, "lib", "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(vendor, "lib", "sub", "x.js"), []byte("x"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(vendor, "lib"), filepath.Join(vendor, "lib", "sub", "up")))
	require.NoError(t, os.Symlink(filepath.Join(vendor, "lib", "sub"), filepath.Join(vendor, "lib", "down")))

	fs := afero.NewOsFs()
	webroot := filepath.Join(root, "webroot")
	stats, err := NewCopier(fs).Copy(context.Background(), model.StaticFile{
		Source:      filepath.Join(vendor, "lib"),
		Destination: "lib",
	}, webroot, &recorder{})
	require.NoError(t, err)

	assert.Equal(t, "x", readString(t, fs, filepath.Join(webroot, "lib", "sub", "x.js")))
	assert.Equal(t, "x", readString(t, fs, filepath.Join(webroot, "lib", "down", "x.js")))
	assert.Equal(t, 2, stats.Files)

	looped, err := afero.Exists(fs, filepath.Join(webroot, "lib", "sub", "up"))
	require.NoError(t, err)
	assert.False(t, looped)
}

func TestCopyCreatesDestinationEvenWithoutMatch(t *testing.T) {
	fs := vendorFs(t)
	rec := &recorder{}

	stats, err := NewCopier(fs).Copy(context.Background(), model.StaticFile{
		Source:      "/vendor/none/*",
		Destination: "empty",
	}, "/webroot", rec)
	require.NoError(t, err)
	assert.Zero(t, stats.Files)

	isDir, err := afero.IsDir(fs, "/webroot/empty")
	require.NoError(t, err)
	assert.True(t, isDir)
	assert.Empty(t, rec.mappings)
}

func TestCopyInvalidFlag(t *testing.T) {
	fs := vendorFs(t)

	_, err := NewCopier(fs).Copy(context.Background(), model.StaticFile{
		Source:      "/vendor/img/*",
		Destination: "img",
		Flag:        "GLOB_PERIOD",
	}, "/webroot", &recorder{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, glob.ErrInvalidFlag))
	assert.Contains(t, err.Error(), `This flag "GLOB_PERIOD" not valid.`)

	created, err := afero.Exists(fs, "/webroot/img")
	require.NoError(t, err)
	assert.False(t, created, "nothing must be done when the flag is invalid")
}

func TestCopyNoCheckWarnsOnMissing(t *testing.T) {
	fs := vendorFs(t)
	rec := &recorder{}

	_, err := NewCopier(fs).Copy(context.Background(), model.StaticFile{
		Source:      "/vendor/none/*.js",
		Destination: "js",
		Flag:        "GLOB_NOCHECK",
	}, "/webroot", rec)
	require.NoError(t, err)
	require.Len(t, rec.warnings, 1)
	assert.Contains(t, rec.warnings[0], "/vendor/none/*.js")
	assert.Empty(t, rec.mappings)
}

func TestCopyMarkedDirectory(t *testing.T) {
	fs := vendorFs(t)
	rec := &recorder{}

	_, err := NewCopier(fs).Copy(context.Background(), model.StaticFile{
		Source:      "/vendor/im*",
		Destination: "images",
		Flag:        "GLOB_MARK",
	}, "/webroot", rec)
	require.NoError(t, err)
	assert.Equal(t, "png", readString(t, fs, "/webroot/images/logo.png"))
	assert.Equal(t, [][2]string{{"/vendor/img/", "/webroot/images"}}, rec.mappings)
}

func TestCopyDryRun(t *testing.T) {
	fs := vendorFs(t)
	rec := &recorder{}

	stats, err := NewCopier(fs, WithDryRun(true)).Copy(context.Background(), model.StaticFile{
		Source:      "/vendor/fa/css",
		Destination: "css",
	}, "/webroot", rec)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Files)
	assert.Len(t, rec.mappings, 1)

	exists, err := afero.Exists(fs, "/webroot")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCopyCustomSkip(t *testing.T) {
	fs := vendorFs(t)

	_, err := NewCopier(fs, WithSkip([]string{"nested"})).Copy(context.Background(), model.StaticFile{
		Source:      "/vendor/fa/css",
		Destination: "css",
	}, "/webroot", &recorder{})
	require.NoError(t, err)

	exists, err := afero.Exists(fs, "/webroot/css/nested")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "css", readString(t, fs, "/webroot/css/fa.css"))
}

func TestCopyOverwrites(t *testing.T) {
	fs := vendorFs(t)
	require.NoError(t, afero.WriteFile(fs, "/webroot/img/logo.png", []byte("old and longer"), 0644))

	_, err := NewCopier(fs).Copy(context.Background(), model.StaticFile{
		Source:      "/vendor/img/logo.png",
		Destination: "img",
	}, "/webroot", &recorder{})
	require.NoError(t, err)
	assert.Equal(t, "png", readString(t, fs, "/webroot/img/logo.png"))
}
