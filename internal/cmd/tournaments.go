package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tourney/internal/platform"
	"github.com/felixgeelhaar/tourney/internal/ux"
)

func newTournamentsCmd() *cobra.Command {
	tournamentsCmd := &cobra.Command{
		Use:   "tournaments",
		Short: "Browse tournaments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tournaments",
		Long: `List tournaments.

Without flags every tournament visible to the session is listed.
--public limits the list to public tournaments and needs no session.
--institution and --all need an organizer or admin session.

Examples:
  tourney tournaments list --public
  tourney tournaments list --institution 3
  tourney tournaments list --all --limit 50`,
		RunE: runTournamentsList,
	}
	listCmd.Flags().Bool("public", false, "only public tournaments")
	listCmd.Flags().Int64("institution", 0, "only tournaments of this institution")
	listCmd.Flags().Bool("all", false, "every tournament on the platform (admin)")
	listCmd.Flags().Int("skip", 0, "with --all, number of tournaments to skip")
	listCmd.Flags().Int("limit", 0, "with --all, maximum number of tournaments")

	tournamentsCmd.AddCommand(listCmd)
	return tournamentsCmd
}

func runTournamentsList(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if all, _ := cmd.Flags().GetBool("all"); all {
		if err := cc.Require("admin-tournaments", nil); err != nil {
			return err
		}
		skip, _ := cmd.Flags().GetInt("skip")
		limit, _ := cmd.Flags().GetInt("limit")
		ts, err := cc.Client.ListAdminTournaments(cmd.Context(), skip, limit)
		if err != nil {
			return cc.Fail(err, "listing tournaments")
		}
		return cc.Render(ux.TournamentsTable(ts))
	}

	filter := platform.TournamentFilter{Public: optionalBool(cmd, "public")}
	filter.InstitutionID, _ = cmd.Flags().GetInt64("institution")
	route := "viewer-tournaments"
	if filter.InstitutionID != 0 {
		route = "organizer-tournaments"
	}
	if err := cc.Require(route, nil); err != nil {
		return err
	}

	ts, err := cc.Client.ListTournaments(cmd.Context(), filter)
	if err != nil {
		return cc.Fail(err, "listing tournaments")
	}
	return cc.Render(ux.TournamentsTable(ts))
}
