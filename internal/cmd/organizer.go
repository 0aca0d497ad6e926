package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tourney/internal/domain"
	"github.com/felixgeelhaar/tourney/internal/platform"
	"github.com/felixgeelhaar/tourney/internal/ux"
)

// institutionFlag returns --institution, defaulting to the signed-in
// user's institution
func institutionFlag(cmd *cobra.Command, cc *CommandContext) int64 {
	if id, _ := cmd.Flags().GetInt64("institution"); id != 0 {
		return id
	}
	if u := cc.Session.Snapshot().Identity; u != nil && u.InstitutionID != nil {
		return *u.InstitutionID
	}
	return 0
}

func helpRunE(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

func newTeamsCmd() *cobra.Command {
	teamsCmd := &cobra.Command{Use: "teams", Short: "Browse teams", RunE: helpRunE}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List teams of an institution",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			if err := cc.Require("coach-teams", nil); err != nil {
				return err
			}
			sport, _ := cmd.Flags().GetInt64("sport")
			teams, err := cc.Client.ListTeams(cmd.Context(), platform.TeamFilter{
				SportID:       sport,
				InstitutionID: institutionFlag(cmd, cc),
			})
			if err != nil {
				return cc.Fail(err, "listing teams")
			}
			return cc.Render(ux.TeamsTable(teams))
		},
	}
	listCmd.Flags().Int64("sport", 0, "filter by sport id")
	listCmd.Flags().Int64("institution", 0, "institution id (default: your own)")

	teamsCmd.AddCommand(listCmd)
	return teamsCmd
}

func newPlayersCmd() *cobra.Command {
	playersCmd := &cobra.Command{Use: "players", Short: "Browse players and your player profile", RunE: helpRunE}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List players (organizer)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			if err := cc.Require("organizer-players", nil); err != nil {
				return err
			}
			team, _ := cmd.Flags().GetInt64("team")
			players, err := cc.Client.ListPlayers(cmd.Context(), team)
			if err != nil {
				return cc.Fail(err, "listing players")
			}
			return cc.Render(ux.PlayersTable(players))
		},
	}
	listCmd.Flags().Int64("team", 0, "filter by team id")

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show your player profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			if err := cc.Require("player-profile", nil); err != nil {
				return err
			}
			p, err := cc.Client.GetMyProfile(cmd.Context())
			if err != nil {
				return cc.Fail(err, "fetching profile")
			}
			return cc.Render(ux.PlayersTable([]domain.Player{*p}))
		},
	}

	joinCmd := &cobra.Command{
		Use:   "join <team-id>",
		Short: "Join a team as a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0], "team")
			if err != nil {
				return err
			}
			if err := cc.Require("player-profile", nil); err != nil {
				return err
			}
			p, err := cc.Client.JoinTeam(cmd.Context(), id)
			if err != nil {
				return cc.Fail(err, "joining team")
			}
			return cc.Render(ux.PlayersTable([]domain.Player{*p}))
		},
	}

	playersCmd.AddCommand(listCmd, meCmd, joinCmd)
	return playersCmd
}

func newVenuesCmd() *cobra.Command {
	venuesCmd := &cobra.Command{Use: "venues", Short: "Browse venues", RunE: helpRunE}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List venues of an institution",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			if err := cc.Require("organizer-venues", nil); err != nil {
				return err
			}
			venues, err := cc.Client.ListVenues(cmd.Context(), institutionFlag(cmd, cc))
			if err != nil {
				return cc.Fail(err, "listing venues")
			}
			return cc.Render(ux.VenuesTable(venues))
		},
	}
	listCmd.Flags().Int64("institution", 0, "institution id (default: your own)")
	venuesCmd.AddCommand(listCmd)
	return venuesCmd
}

func newSportsCmd() *cobra.Command {
	sportsCmd := &cobra.Command{Use: "sports", Short: "Browse sports", RunE: helpRunE}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sports of an institution",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			if err := cc.Require("organizer-sports", nil); err != nil {
				return err
			}
			sports, err := cc.Client.ListSports(cmd.Context(), institutionFlag(cmd, cc))
			if err != nil {
				return cc.Fail(err, "listing sports")
			}
			return cc.Render(ux.SportsTable(sports))
		},
	}
	listCmd.Flags().Int64("institution", 0, "institution id (default: your own)")

	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "List the sport templates new sports can start from",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			if err := cc.Require("organizer-sports", nil); err != nil {
				return err
			}
			docs, err := cc.Client.ListSportTemplates(cmd.Context())
			if err != nil {
				return cc.Fail(err, "listing sport templates")
			}
			return cc.Render(ux.DocumentsTable(docs))
		},
	}

	sportsCmd.AddCommand(listCmd, templatesCmd)
	return sportsCmd
}

func newSchedulesCmd() *cobra.Command {
	schedulesCmd := &cobra.Command{Use: "schedules", Short: "Browse schedules", RunE: helpRunE}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			if err := cc.Require("organizer-schedules", nil); err != nil {
				return err
			}
			sport, _ := cmd.Flags().GetInt64("sport")
			schedules, err := cc.Client.ListSchedules(cmd.Context(), sport)
			if err != nil {
				return cc.Fail(err, "listing schedules")
			}
			return cc.Render(ux.SchedulesTable(schedules))
		},
	}
	listCmd.Flags().Int64("sport", 0, "filter by sport id")
	schedulesCmd.AddCommand(listCmd)
	return schedulesCmd
}
