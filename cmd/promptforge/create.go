package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptforge/prompt-forge/internal/models"
)

var (
	createCategory    string
	createGoal        string
	createRoles       []string
	createContexts    []string
	createDocument    string
	createOutput      string
	createRules       []string
	createTags        []string
	createDescription string
	createOverwrite   bool
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create and save a new prompt template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		component, err := models.NewComponent(models.ComponentDraft{
			Role:     createRoles,
			Goal:     createGoal,
			Context:  createContexts,
			Document: createDocument,
			Output:   createOutput,
			Rule:     createRules,
		})
		if err != nil {
			return err
		}

		t, err := svc.CreateTemplate(args[0], createCategory, component, createDescription, createTags)
		if err != nil {
			return err
		}

		if err := svc.SaveTemplate(t, createOverwrite); err != nil {
			return err
		}

		fmt.Printf("%s %s\n", titleStyle.Render("Created"), t.Name)
		printField("ID", t.TemplateID)
		printField("Category", string(t.Category))
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createCategory, "category", "c", "전체", "category (기획, 프로그램, 아트, QA, 전체)")
	createCmd.Flags().StringVarP(&createGoal, "goal", "g", "", "goal of the prompt (required)")
	createCmd.Flags().StringSliceVar(&createRoles, "role", nil, "role entries")
	createCmd.Flags().StringSliceVar(&createContexts, "context", nil, "context entries")
	createCmd.Flags().StringVar(&createDocument, "document", "", "reference document text")
	createCmd.Flags().StringVar(&createOutput, "output", "", "expected output description")
	createCmd.Flags().StringSliceVar(&createRules, "rule", nil, "rule entries")
	createCmd.Flags().StringSliceVarP(&createTags, "tag", "t", nil, "tags")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "version description")
	createCmd.Flags().BoolVar(&createOverwrite, "overwrite", false, "overwrite an existing template with the same id")
	createCmd.MarkFlagRequired("goal")
}
