package report

import (
	"bytes"
	"testing"

	"github.com/oneconcern/assetic/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, WithColor(false))

	r.Start("App")
	r.Mapping("/vendor/jquery.js", "webroot/js/jquery.js")
	r.Verbose("hidden")
	r.Warn("careful")
	r.End(model.Stats{Files: 2, Bytes: 2048})

	assert.Equal(t, "\n"+
		`Start dumping "App" assets:`+"\n"+
		"/vendor/jquery.js  >>>  webroot/js/jquery.js\n"+
		"careful\n"+
		"End (2 files, 2.048kB written)\n",
		buf.String())
}

func TestReporterVerboseAndDryRun(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, WithColor(false), WithVerbose(true), WithDryRun(true))

	r.Verbose(`Plugin "Blog" have not assets.xml file.`)
	r.End(model.Stats{Files: 1, Bytes: 10})

	assert.Equal(t, `Plugin "Blog" have not assets.xml file.`+"\n"+
		"End (1 file, 10B to write, dry run)\n", buf.String())
}

func TestReporterColors(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, WithColor(true))
	r.Info("ok")
	assert.Contains(t, buf.String(), "\x1b[32m")
}

func TestReporterHighlight(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, WithColor(false))
	r.Line("By using %s you can invoke a task.", r.Highlight("assetic [name]"))
	assert.Equal(t, "By using assetic [name] you can invoke a task.\n", buf.String())
}
