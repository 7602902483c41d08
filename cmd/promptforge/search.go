package main

import (
	"github.com/spf13/cobra"

	"github.com/promptforge/prompt-forge/internal/models"
)

var searchFuzzy bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search templates by name, tag, or prompt text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			summaries []models.TemplateSummary
			err       error
		)
		if searchFuzzy {
			summaries, err = svc.FuzzySearchTemplates(args[0])
		} else {
			summaries, err = svc.SearchTemplates(args[0])
		}
		if err != nil {
			return err
		}

		printSummaries(summaries)
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVarP(&searchFuzzy, "fuzzy", "f", false, "rank by fuzzy match over names and tags")
}
