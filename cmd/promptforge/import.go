package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
)

var importValidateOnly bool

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a template document from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return apperrors.StorageError("read import file", err)
		}

		if importValidateOnly {
			if err := svc.ValidateTemplateDocument(data); err != nil {
				return err
			}
			fmt.Println("document is valid")
			return nil
		}

		t, err := svc.ImportTemplateFromJSON(data)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", titleStyle.Render("Imported"), t.Name)
		printField("ID", t.TemplateID)
		printField("Versions", fmt.Sprintf("%d", len(t.Versions)))
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importValidateOnly, "validate", false, "validate the document without saving it")
}
