// Package main is the entry point for hubctl, the operations CLI of the hub services.
// It issues access tokens for local testing and runs database maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/hubverse/hub-services/cmd/hubctl/internal/commands"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := commands.NewRootCommand()
	log := commands.NewLogger(os.Stderr)

	if err := initializeCommands(rootCmd, log); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	return rootCmd.Execute()
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command, log logger.Logger) error {
	if err := commands.InitTokenCommands(rootCmd, log); err != nil {
		return fmt.Errorf("failed to initialize token commands: %w", err)
	}
	if err := commands.InitDBCommands(rootCmd, log); err != nil {
		return fmt.Errorf("failed to initialize db commands: %w", err)
	}
	return nil
}
