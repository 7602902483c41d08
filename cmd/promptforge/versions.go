package main

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
)

var (
	versionsSwitch int
	versionsDelete int
)

var versionsCmd = &cobra.Command{
	Use:   "versions <template-id>",
	Short: "List, switch, or delete a template's versions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := svc.LoadTemplate(args[0])
		if err != nil {
			return err
		}
		if t == nil {
			return apperrors.NotFoundError(fmt.Sprintf("Template '%s'", args[0]))
		}

		changed := false

		if versionsDelete > 0 {
			if !t.DeleteVersion(versionsDelete) {
				return apperrors.ValidationError(fmt.Sprintf(
					"Cannot delete version %d: not found or last remaining version", versionsDelete))
			}
			fmt.Printf("deleted version %d\n", versionsDelete)
			changed = true
		}

		if versionsSwitch > 0 {
			if !t.SetCurrent(versionsSwitch) {
				return apperrors.NotFoundError(fmt.Sprintf("Version %d of template '%s'", versionsSwitch, t.Name))
			}
			fmt.Printf("current version is now %d\n", versionsSwitch)
			changed = true
		}

		if changed {
			if err := svc.SaveTemplate(t, true); err != nil {
				return err
			}
		}

		fmt.Println(titleStyle.Render(t.Name))
		for _, v := range t.Versions {
			marker := "  "
			if v.Version == t.CurrentVersion {
				marker = "* "
			}
			line := fmt.Sprintf("%sv%d  %s", marker, v.Version, v.CreatedAt.Format("2006-01-02 15:04"))
			if v.Description != "" {
				line += "  " + dimStyle.Render(v.Description)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	versionsCmd.Flags().IntVar(&versionsSwitch, "switch", 0, "make the given version current")
	versionsCmd.Flags().IntVar(&versionsDelete, "delete", 0, "delete the given version")
}
