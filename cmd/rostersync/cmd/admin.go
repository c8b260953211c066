package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dtroode/rostersync/internal/api/grpc/client"
	"github.com/dtroode/rostersync/internal/api/grpc/handler"
)

const callTimeout = 30 * time.Second

type adminFlags struct {
	addr       string
	token      string
	tls        bool
	skipVerify bool
}

// adminCall maps positional arguments onto request fields.
type adminCall struct {
	use    string
	short  string
	method string
	fields []string
	// rest joins the remaining arguments into the last field.
	rest bool
}

var adminCalls = []adminCall{
	{use: "status", short: "Show the reconciliation loop state", method: handler.MethodStatus},
	{use: "start", short: "Start the reconciliation loop", method: handler.MethodStart},
	{use: "stop", short: "Stop the reconciliation loop", method: handler.MethodStop},
	{use: "sync", short: "Run a pass now", method: handler.MethodSync},
	{use: "config <community>", short: "Show a community's configuration", method: handler.MethodGetConfig,
		fields: []string{"community_id"}},
	{use: "verify <community> <role>", short: "Set the verified role and start the loop", method: handler.MethodSetVerifiedRole,
		fields: []string{"community_id", "role_id"}},
	{use: "unverify <community>", short: "Clear the verified role", method: handler.MethodClearVerifiedRole,
		fields: []string{"community_id"}},
	{use: "override <community> <member> <nickname>", short: "Force a member's nickname", method: handler.MethodAddOverride,
		fields: []string{"community_id", "member_id", "nickname"}, rest: true},
	{use: "unoverride <community> <member>", short: "Drop a forced nickname", method: handler.MethodRemoveOverride,
		fields: []string{"community_id", "member_id"}},
	{use: "ignore <community> <user|role> <id>", short: "Exclude a user or role", method: handler.MethodAddIgnore,
		fields: []string{"community_id", "kind", "target_id"}},
	{use: "unignore <community> <user|role> <id>", short: "Include a user or role again", method: handler.MethodRemoveIgnore,
		fields: []string{"community_id", "kind", "target_id"}},
	{use: "revoke <community> <member>", short: "Take the verified role away and ignore the member", method: handler.MethodRevoke,
		fields: []string{"community_id", "member_id"}},
}

func newAdminCmd() *cobra.Command {
	flags := &adminFlags{}

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Call the admin API of a running server",
	}
	cmd.PersistentFlags().StringVar(&flags.addr, "addr", "localhost:50051", "admin API address")
	cmd.PersistentFlags().StringVar(&flags.token, "token", os.Getenv("ROSTERSYNC_TOKEN"), "admin token (defaults to ROSTERSYNC_TOKEN)")
	cmd.PersistentFlags().BoolVar(&flags.tls, "tls", false, "connect with TLS")
	cmd.PersistentFlags().BoolVar(&flags.skipVerify, "insecure-skip-verify", false, "skip TLS certificate verification")

	for _, call := range adminCalls {
		cmd.AddCommand(newAdminCallCmd(flags, call))
	}
	return cmd
}

func newAdminCallCmd(flags *adminFlags, call adminCall) *cobra.Command {
	args := cobra.ExactArgs(len(call.fields))
	if call.rest {
		args = cobra.MinimumNArgs(len(call.fields))
	}

	return &cobra.Command{
		Use:   call.use,
		Short: call.short,
		Args:  args,
		RunE: func(cmd *cobra.Command, positional []string) error {
			req := buildRequest(call, positional)

			var opts []client.Option
			if flags.tls {
				opts = append(opts, client.WithTLS(flags.skipVerify))
			}
			c, err := client.New(flags.addr, flags.token, opts...)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := contextWithTimeout(cmd, callTimeout)
			defer cancel()

			resp, err := c.Call(ctx, call.method, req)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to format response: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func buildRequest(call adminCall, positional []string) map[string]interface{} {
	req := make(map[string]interface{}, len(call.fields))
	for i, field := range call.fields {
		if call.rest && i == len(call.fields)-1 {
			req[field] = strings.Join(positional[i:], " ")
			break
		}
		req[field] = positional[i]
	}
	return req
}
