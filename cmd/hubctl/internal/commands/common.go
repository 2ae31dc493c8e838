package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the hubctl root command. Errors are returned to main
// instead of being printed with the usage text.
func NewRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hubctl",
		Short: "Operations CLI for the hub services",
		Long: `hubctl issues access tokens for local testing and maintains service databases.

Token commands read JWT_SECRET, JWT_ISSUER and JWT_TTL. Database commands take --dsn
or fall back to DATABASE_URL. A .env file in the working directory is loaded first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

// NewLogger creates the CLI logger at LOG_LEVEL. Pass stderr so stdout only carries command output.
func NewLogger(w io.Writer) logger.Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = config.LogLevelInfo
	}
	return logger.NewWriterLogger(level, w)
}

// loadDotEnv reads an optional .env file from the working directory.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
