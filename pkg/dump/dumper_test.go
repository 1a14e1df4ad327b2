package dump

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/oneconcern/assetic/pkg/asset"
	"github.com/oneconcern/assetic/pkg/errors"
	"github.com/oneconcern/assetic/pkg/glob"
	"github.com/oneconcern/assetic/pkg/model"
	"github.com/oneconcern/assetic/pkg/placeholder"
	"github.com/oneconcern/assetic/pkg/report"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	appManifest = `<assetic>
	<assets>
		<asset name="jquery">
			<source>%bower_asset_path%/jquery/dist/jquery.js</source>
			<destination>js/jquery.js</destination>
		</asset>
	</assets>
	<static>
		<files>
			<file>
				<source flag="GLOB_BRACE">%npm_asset_path%/fa/{fonts,css}</source>
				<destination>vendor/fa</destination>
			</file>
		</files>
	</static>
</assetic>`

	blogManifest = `<assetic>
	<static>
		<files>
			<file>
				<source>/app/plugins/Blog/assets/*.png</source>
				<destination>img/blog</destination>
			</file>
		</files>
	</static>
</assetic>`
)

var (
	appSource  = model.Source{Name: "App", Root: "/app", Manifest: "/app/config/assets.xml"}
	blogSource = model.Source{Name: "Blog", Root: "/app/plugins/Blog", Manifest: "/app/plugins/Blog/config/assets.xml"}
	shopSource = model.Source{Name: "Shop", Root: "/app/plugins/Shop", Manifest: "/app/plugins/Shop/config/assets.xml"}
)

func write(t *testing.T, fs afero.Fs, pth, content string) {
	require.NoError(t, fs.MkdirAll(filepath.Dir(pth), 0755))
	require.NoError(t, afero.WriteFile(fs, pth, []byte(content), 0644))
}

func fixture(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	write(t, fs, appSource.Manifest, appManifest)
	write(t, fs, blogSource.Manifest, blogManifest)
	write(t, fs, "/vendor/bower/jquery/dist/jquery.js", "jq")
	write(t, fs, "/vendor/npm/fa/fonts/a.woff", "woff")
	write(t, fs, "/vendor/npm/fa/css/fa.css", "body{}")
	write(t, fs, "/vendor/npm/fa/css/.svn/entries", "svn")
	write(t, fs, "/app/plugins/Blog/assets/logo.png", "png")
	return fs
}

func testDumper(fs afero.Fs, out *bytes.Buffer, opts ...Option) *Dumper {
	resolver := placeholder.New(map[string]string{
		placeholder.Bower: "/vendor/bower",
		placeholder.Npm:   "/vendor/npm",
	})
	return New(fs, "/app/webroot", append([]Option{
		WithResolver(resolver),
		WithReporter(report.New(out, report.WithColor(false), report.WithVerbose(true))),
	}, opts...)...)
}

func TestDumpSource(t *testing.T) {
	fs := fixture(t)
	var out bytes.Buffer

	stats, err := testDumper(fs, &out).DumpSource(context.Background(), appSource)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{Files: 3, Bytes: 12}, stats)

	webroot := filepath.FromSlash("/app/webroot")
	assert.Equal(t, "\n"+
		`Start dumping "App" assets:`+"\n"+
		"/vendor/bower/jquery/dist/jquery.js  >>>  "+filepath.Join(webroot, "js", "jquery.js")+"\n"+
		"/vendor/npm/fa/fonts  >>>  "+filepath.Join(webroot, "vendor", "fa")+"\n"+
		"/vendor/npm/fa/css  >>>  "+filepath.Join(webroot, "vendor", "fa")+"\n"+
		"End (3 files, 12B written)\n",
		out.String())

	for pth, content := range map[string]string{
		"/app/webroot/js/jquery.js":    "jq",
		"/app/webroot/vendor/fa/a.woff": "woff",
		"/app/webroot/vendor/fa/fa.css": "body{}",
	} {
		data, err := afero.ReadFile(fs, pth)
		require.NoError(t, err, pth)
		assert.Equal(t, content, string(data))
	}
	exists, err := afero.Exists(fs, "/app/webroot/vendor/fa/.svn")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDumpAll(t *testing.T) {
	fs := fixture(t)
	var out bytes.Buffer

	stats, err := testDumper(fs, &out).DumpAll(context.Background(), []model.Source{appSource, shopSource, blogSource})
	require.NoError(t, err)
	assert.Equal(t, model.Stats{Files: 4, Bytes: 15}, stats)

	assert.Contains(t, out.String(), `Plugin "Shop" have not assets.xml file.`)
	assert.Contains(t, out.String(), `Start dumping "Blog" assets:`)
	assert.Less(t,
		bytes.Index(out.Bytes(), []byte(`"App"`)),
		bytes.Index(out.Bytes(), []byte(`"Shop"`)),
	)
	assert.Less(t,
		bytes.Index(out.Bytes(), []byte(`"Shop"`)),
		bytes.Index(out.Bytes(), []byte(`"Blog"`)),
	)

	data, err := afero.ReadFile(fs, "/app/webroot/img/blog/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestDumpAllQuietWithoutVerbose(t *testing.T) {
	fs := fixture(t)
	var out bytes.Buffer
	d := New(fs, "/app/webroot", WithReporter(report.New(&out, report.WithColor(false))))

	_, err := d.DumpAll(context.Background(), []model.Source{shopSource})
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestDumpDryRun(t *testing.T) {
	fs := fixture(t)
	var out bytes.Buffer

	stats, err := testDumper(fs, &out, WithDryRun(true)).DumpSource(context.Background(), appSource)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{Files: 3, Bytes: 12}, stats)

	exists, err := afero.Exists(fs, "/app/webroot")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDumpErrors(t *testing.T) {
	for _, toPin := range []struct {
		name     string
		manifest string
		target   error
		contains string
	}{
		{
			name: "invalid flag",
			manifest: `<assetic><static><files><file>
				<source flag="GLOB_PERIOD">/vendor/*</source><destination>x</destination>
			</file></files></static></assetic>`,
			target:   glob.ErrInvalidFlag,
			contains: `This flag "GLOB_PERIOD" not valid.`,
		},
		{
			name: "invalid asset name",
			manifest: `<assetic><assets><asset name="jquery-ui">
				<source>/vendor/bower/jquery/dist/jquery.js</source><destination>js/ui.js</destination>
			</asset></assets></assetic>`,
			target:   asset.ErrInvalidName,
			contains: `The asset name "jquery-ui" is invalid.`,
		},
		{
			name: "missing asset source",
			manifest: `<assetic><assets><asset name="gone">
				<source>/vendor/gone.js</source><destination>js/gone.js</destination>
			</asset></assets></assetic>`,
			target:   asset.ErrSourceNotFound,
			contains: `The source file "/vendor/gone.js" does not exist.`,
		},
	} {
		testCase := toPin
		t.Run(testCase.name, func(t *testing.T) {
			fs := fixture(t)
			write(t, fs, appSource.Manifest, testCase.manifest)
			var out bytes.Buffer

			_, err := testDumper(fs, &out).DumpAll(context.Background(), []model.Source{appSource, blogSource})
			require.Error(t, err)
			assert.True(t, errors.Is(err, testCase.target))
			assert.Contains(t, err.Error(), testCase.contains)
			assert.NotContains(t, out.String(), `"Blog"`)
		})
	}
}

func TestDumpCancelled(t *testing.T) {
	fs := fixture(t)
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testDumper(fs, &out).DumpAll(ctx, []model.Source{appSource})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}
