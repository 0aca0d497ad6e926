package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tourney/internal/config"
)

// NewRootCmd builds the command tree. Each call returns a fresh tree so flag
// state never leaks between executions.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tourney",
		Short: "Terminal client for the tournament platform",
		Long: `tourney is a terminal client for the sports tournament platform.

It keeps a signed-in session on disk, checks every screen and command
against the platform's role rules, and talks to the tournament API for
matches, scores, teams, players and notifications.

Run 'tourney ui' for the interactive client, or use the subcommands
for scripting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default "+config.DefaultFile()+")")
	pf.String("api-url", "", "tournament API base URL")
	pf.Duration("api-timeout", 0, "per-request timeout")
	pf.Int("api-retries", 0, "retries for idempotent requests after a network failure")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (text, json)")
	pf.String("state-dir", "", "directory holding the saved session")
	pf.StringP("output", "o", "", "output format (text, json, yaml)")
	pf.Bool("plain", false, "disable colour and table borders")
	pf.Bool("ephemeral", false, "keep the session in memory only")

	root.AddCommand(
		newAuthCmd(),
		newRouteCmd(),
		newMatchesCmd(),
		newTournamentsCmd(),
		newNotificationsCmd(),
		newUsersCmd(),
		newInstitutionsCmd(),
		newTeamsCmd(),
		newPlayersCmd(),
		newVenuesCmd(),
		newSportsCmd(),
		newSchedulesCmd(),
		newStatsCmd(),
		newConfigCmd(),
		newUICmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with a context that is cancelled
// on interrupt
func ExecuteContext(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
