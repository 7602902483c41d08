package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
)

var showVersion int

var showCmd = &cobra.Command{
	Use:   "show <template-id>",
	Short: "Show a template's current version and rendered prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := svc.LoadTemplate(args[0])
		if err != nil {
			return err
		}
		if t == nil {
			return apperrors.NotFoundError(fmt.Sprintf("Template '%s'", args[0]))
		}

		version := t.Current()
		if showVersion > 0 {
			version = t.VersionByNumber(showVersion)
			if version == nil {
				return apperrors.NotFoundError(fmt.Sprintf("Version %d of template '%s'", showVersion, t.Name))
			}
		}

		fmt.Println(titleStyle.Render(t.Name))
		printField("ID", t.TemplateID)
		printField("Category", string(t.Category))
		if len(t.Tags) > 0 {
			printField("Tags", tagStyle.Render(strings.Join(t.Tags, ", ")))
		}
		if version != nil {
			printField("Version", fmt.Sprintf("%d of %d", version.Version, len(t.Versions)))
			if version.Description != "" {
				printField("Description", version.Description)
			}
			fmt.Println()
			fmt.Println(version.GeneratedPrompt)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().IntVar(&showVersion, "version", 0, "show a specific version (default: current)")
}
