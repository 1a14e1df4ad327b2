package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

const docExt = ".md"

// usageHeader opens every generated page with the command it documents
func usageHeader(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), docExt)
	return fmt.Sprintf("<!-- generated by assetic usage: %s -->\n**Version: %s**\n\n",
		strings.ReplaceAll(name, "_", " "), NewVersionInfo().Version)
}

// usageLink points to sibling pages without their extension, the way wiki pages are addressed
func usageLink(name string) string {
	return "./" + strings.TrimSuffix(name, docExt)
}

// docCmd is a doc generation command powered by cobra
var docCmd = &cobra.Command{
	Use:   "usage",
	Short: "Generates documentation",
	Long: `Generates usage documentation, as one markdown page per command.

Pages link to each other by name, without extension.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := doc.GenMarkdownTreeCustom(rootCmd, asseticFlags.doc.docTarget, usageHeader, usageLink); err != nil {
			wrapFatalln("failed to generate doc", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(docCmd)
	addTargetFlag(docCmd)
}
