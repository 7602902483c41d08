package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/promptforge/prompt-forge/internal/errors"
	"github.com/promptforge/prompt-forge/internal/service"
)

var (
	homeDir string
	verbose bool

	svc          *service.Service
	errorHandler = apperrors.NewCLIErrorHandler(false)
)

var rootCmd = &cobra.Command{
	Use:   "promptforge",
	Short: "Versioned prompt templates for game development teams",
	Long: `PromptForge builds structured AI prompts from reusable components
(role, goal, context, document, output, rules) and manages them as
versioned templates on disk.

Templates are stored as JSON documents under the home directory
(default: ~/.prompt-forge) and can be listed, searched, copied,
rendered, and exported as Markdown, JSON, YAML, or PDF.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "data directory (default: ~/.prompt-forge)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "verbose output and debug logging",
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		errorHandler = apperrors.NewCLIErrorHandler(verbose)

		var err error
		svc, err = service.New(homeDir, logger)
		return err
	}

	rootCmd.AddCommand(
		createCmd,
		listCmd,
		searchCmd,
		showCmd,
		renderCmd,
		versionsCmd,
		copyCmd,
		deleteCmd,
		exportCmd,
		importCmd,
		keywordsCmd,
		statsCmd,
	)
}
