package cmd

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/assetic/pkg/manifest"
	"github.com/oneconcern/assetic/pkg/model"
	"github.com/oneconcern/assetic/pkg/placeholder"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"

	maxColWidth = 80
)

// sourceInfo describes a source and the content of its manifest
type sourceInfo struct {
	model.Source `yaml:",inline"`
	Found        bool   `json:"found" yaml:"found"`
	Assets       int    `json:"assets" yaml:"assets"`
	Static       int    `json:"static" yaml:"static"`
	Error        string `json:"error,omitempty" yaml:"error,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the manifests of the app and plugins.",
	Long: `List the application and its plugins, in dump order, with the number of
assets and static entries declared by their assets.xml file.

Manifests that cannot be read are listed with the reason.
`,
	Example: `% assetic list
% assetic list -o json`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{taskAnnotation: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := listSources()
		if err != nil {
			wrapFatalln("locating manifests", err)
			return
		}

		infos, err := describeSources(sources)
		if err != nil {
			wrapFatalln("reading manifests", err)
			return
		}

		if err := printSources(cmd.OutOrStdout(), asseticFlags.list.output, infos); err != nil {
			wrapFatalln("listing sources", err)
			return
		}
	},
}

func describeSources(sources []model.Source) ([]sourceInfo, error) {
	resolver := placeholder.New(config.placeholders(), placeholder.WithLogger(logger))
	infos := make([]sourceInfo, 0, len(sources))
	for _, src := range sources {
		info := sourceInfo{Source: src}
		ok, err := manifest.Exists(appFs, src)
		if err != nil {
			return nil, err
		}
		if ok {
			info.Found = true
			m, err := manifest.Read(appFs, src.Manifest, resolver)
			if err != nil {
				info.Error = err.Error()
			} else {
				info.Assets = len(m.Assets)
				info.Static = len(m.Static)
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func printSources(w io.Writer, output string, infos []sourceInfo) error {
	switch output {
	case outputJSON:
		o, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(o))
		return err

	case outputYAML:
		o, err := yaml.Marshal(infos)
		if err != nil {
			return err
		}
		_, err = w.Write(o)
		return err

	case outputTable, "":
		table := uitable.New()
		table.MaxColWidth = maxColWidth
		table.Wrap = true
		table.AddRow("NAME", "MANIFEST", "ASSETS", "STATIC", "STATUS")
		for _, info := range infos {
			status := "ok"
			switch {
			case !info.Found:
				status = "missing"
			case info.Error != "":
				status = info.Error
			}
			table.AddRow(info.Name, info.Manifest, info.Assets, info.Static, status)
		}
		_, err := fmt.Fprintln(w, table)
		return err

	default:
		return fmt.Errorf("unsupported output format %q: expected one of %s, %s or %s", output, outputTable, outputJSON, outputYAML)
	}
}

func init() {
	addOutputFlag(listCmd)
	rootCmd.AddCommand(listCmd)
}
