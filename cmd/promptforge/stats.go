package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats := svc.ServiceStats()

		fmt.Println(titleStyle.Render("PromptForge"))
		printField("Home", svc.BaseDir())
		printField("Templates", fmt.Sprintf("%d", stats.TotalTemplates))
		printField("Cached", fmt.Sprintf("%d", stats.CacheSize))
		return nil
	},
}
