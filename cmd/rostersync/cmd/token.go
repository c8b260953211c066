package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dtroode/rostersync/internal/config"
	"github.com/dtroode/rostersync/internal/token"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin API token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			if ttl == 0 {
				ttl = cfg.JWT.TTL
			}

			tok, err := token.NewJWT(cfg.JWT.Secret, ttl).GenerateAdminToken(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "who the token is issued to; recorded in the API logs")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_TTL)")
	return cmd
}
