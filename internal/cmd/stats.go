package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tourney/internal/domain"
	"github.com/felixgeelhaar/tourney/internal/router"
	"github.com/felixgeelhaar/tourney/internal/ux"
)

func newStatsCmd() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show player and team statistics",
		Long: `Show player and team statistics.

The shape of the statistics depends on the sport, so they are shown as
key/value rows.

Examples:
  tourney stats me
  tourney stats player 12
  tourney stats team 4 -o json`,
		RunE: helpRunE,
	}

	statsCmd.AddCommand(
		&cobra.Command{
			Use:   "me",
			Short: "Show your own statistics (player)",
			RunE: func(cmd *cobra.Command, args []string) error {
				cc, err := NewCommandContext(cmd)
				if err != nil {
					return err
				}
				if err := cc.Require("player-statistics", nil); err != nil {
					return err
				}
				doc, err := cc.Client.GetMyStatistics(cmd.Context())
				if err != nil {
					return cc.Fail(err, "fetching statistics")
				}
				return cc.Render(ux.DocumentTable(doc))
			},
		},
		&cobra.Command{
			Use:   "player <player-id>",
			Short: "Show statistics of a player",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDocument(cmd, args[0], "player", func(cc *CommandContext, id int64) (domain.Document, error) {
					return cc.Client.GetPlayerStatistics(cmd.Context(), id)
				})
			},
		},
		&cobra.Command{
			Use:   "team <team-id>",
			Short: "Show statistics of a team",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDocument(cmd, args[0], "team", func(cc *CommandContext, id int64) (domain.Document, error) {
					return cc.Client.GetTeamStatistics(cmd.Context(), id)
				})
			},
		},
	)
	return statsCmd
}

// runDocument fetches a per-id document for any signed-in user
func runDocument(cmd *cobra.Command, raw, what string, fetch func(*CommandContext, int64) (domain.Document, error)) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(raw, what)
	if err != nil {
		return err
	}
	if err := cc.Require(router.NameDashboard, nil); err != nil {
		return err
	}
	doc, err := fetch(cc, id)
	if err != nil {
		return cc.Fail(err, "fetching "+what+" statistics")
	}
	return cc.Render(ux.DocumentTable(doc))
}
