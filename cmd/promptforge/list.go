package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptforge/prompt-forge/internal/models"
)

var (
	listCategory string
	listTags     []string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored templates, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summaries, err := svc.ListTemplates(listCategory, listTags)
		if err != nil {
			return err
		}

		printSummaries(summaries)
		return nil
	},
}

func printSummaries(summaries []models.TemplateSummary) {
	if len(summaries) == 0 {
		fmt.Println(dimStyle.Render("no templates found"))
		return
	}

	for _, s := range summaries {
		line := fmt.Sprintf("%s  %s", titleStyle.Render(s.Name), dimStyle.Render(s.TemplateID))
		fmt.Println(line)

		details := fmt.Sprintf("  %s | v%d/%d", s.Category, s.CurrentVersion, s.VersionCount)
		if s.UpdatedAt != nil {
			details += " | " + s.UpdatedAt.Format("2006-01-02 15:04")
		}
		fmt.Println(dimStyle.Render(details))

		if len(s.Tags) > 0 {
			fmt.Println("  " + tagStyle.Render("#"+strings.Join(s.Tags, " #")))
		}
	}
	fmt.Printf("\n%d template(s)\n", len(summaries))
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "filter by category")
	listCmd.Flags().StringSliceVarP(&listTags, "tag", "t", nil, "filter by tag (any match)")
}
