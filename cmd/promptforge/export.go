package main

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
)

var (
	exportFormat string
	exportFile   string
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export <template-id>",
	Short: "Export a template to stdout or to a file",
	Long: `Export a template.

Without --file the template is written to stdout as JSON (--format json)
or as the current version's rendered prompt text (--format text).

With --file the current version's components are written to disk in the
given format: md, json, yaml, or pdf.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportFile == "" {
			out, err := svc.ExportTemplate(args[0], exportFormat)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}

		t, err := svc.LoadTemplate(args[0])
		if err != nil {
			return err
		}
		if t == nil {
			return apperrors.NotFoundError(fmt.Sprintf("Template '%s'", args[0]))
		}
		current := t.Current()
		if current == nil {
			return apperrors.ValidationError(fmt.Sprintf("Template '%s' has no versions", t.Name))
		}

		path, err := svc.ExportComponentFile(current.Components, exportFormat, exportFile, exportDir)
		if err != nil {
			return err
		}

		fmt.Printf("exported to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format (stdout: json, text; file: md, json, yaml, pdf)")
	exportCmd.Flags().StringVar(&exportFile, "file", "", "write to a file with this name (extension is added)")
	exportCmd.Flags().StringVar(&exportDir, "dir", ".", "output directory for file exports")
}
