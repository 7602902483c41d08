package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptforge/prompt-forge/internal/generator"
	"github.com/promptforge/prompt-forge/internal/models"
)

var (
	renderFormat   string
	renderGoal     string
	renderRoles    []string
	renderContexts []string
	renderDocument string
	renderOutput   string
	renderRules    []string
	renderPreview  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a one-off prompt from components without saving",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		component, err := models.NewComponent(models.ComponentDraft{
			Role:     renderRoles,
			Goal:     renderGoal,
			Context:  renderContexts,
			Document: renderDocument,
			Output:   renderOutput,
			Rule:     renderRules,
		})
		if err != nil {
			return err
		}

		format := generator.FormatXML
		if renderFormat == "markdown" || renderFormat == "md" {
			format = generator.FormatMarkdown
		}

		prompt, err := svc.GeneratePromptAs(component, format)
		if err != nil {
			return err
		}

		if renderPreview && format == generator.FormatMarkdown {
			fmt.Print(renderMarkdown(prompt))
			return nil
		}
		fmt.Println(prompt)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "xml", "prompt format: xml or markdown")
	renderCmd.Flags().StringVarP(&renderGoal, "goal", "g", "", "goal of the prompt (required)")
	renderCmd.Flags().StringSliceVar(&renderRoles, "role", nil, "role entries")
	renderCmd.Flags().StringSliceVar(&renderContexts, "context", nil, "context entries")
	renderCmd.Flags().StringVar(&renderDocument, "document", "", "reference document text")
	renderCmd.Flags().StringVar(&renderOutput, "output", "", "expected output description")
	renderCmd.Flags().StringSliceVar(&renderRules, "rule", nil, "rule entries")
	renderCmd.Flags().BoolVarP(&renderPreview, "preview", "p", false, "pretty-print markdown output for the terminal")
	renderCmd.MarkFlagRequired("goal")
}
