package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var copyCategory string

var copyCmd = &cobra.Command{
	Use:   "copy <template-id> <new-name>",
	Short: "Duplicate a template's current version under a new name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		copied, err := svc.CopyTemplate(args[0], args[1], copyCategory)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", titleStyle.Render("Copied to"), copied.Name)
		printField("ID", copied.TemplateID)
		printField("Category", string(copied.Category))
		return nil
	},
}

func init() {
	copyCmd.Flags().StringVarP(&copyCategory, "category", "c", "", "category for the copy (default: same as source)")
}
