// Package cmd implements the rostersync command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFiles []string

	// Version information set by main.
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

var rootCmd = &cobra.Command{
	Use:   "rostersync",
	Short: "Sync a Google Sheets roster into Discord nicknames and roles",
	Long: `rostersync matches the rows of a registration spreadsheet against the
members of every Discord server the bot is in, sets each matched member's
nickname and grants the server's verified role.

Configuration comes from the environment. .env files are loaded first and
never override variables that are already set.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvFiles,
}

// Execute runs the root command and exits non-zero on failure.
func Execute(version, date, commit string) {
	Version, Date, Commit = version, date, commit
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", Version, Date, Commit)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newAdminCmd())
}

// loadEnvFiles loads each existing dotenv file. Missing files are skipped.
func loadEnvFiles(_ *cobra.Command, _ []string) error {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
