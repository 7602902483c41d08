package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Show the configured keyword and category catalogs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keywords := svc.Keywords()

		sections := make([]string, 0, len(keywords))
		for section := range keywords {
			sections = append(sections, section)
		}
		sort.Strings(sections)

		for _, section := range sections {
			fmt.Println(labelStyle.Render(section))
			for _, kw := range keywords[section] {
				fmt.Printf("  - %s\n", kw)
			}
		}

		fmt.Println(labelStyle.Render("categories"))
		fmt.Printf("  %s\n", strings.Join(svc.Categories(), ", "))
		return nil
	},
}
