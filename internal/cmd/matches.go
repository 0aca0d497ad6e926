package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tourney/internal/domain"
	"github.com/felixgeelhaar/tourney/internal/platform"
	"github.com/felixgeelhaar/tourney/internal/ux"
)

func newMatchesCmd() *cobra.Command {
	matchesCmd := &cobra.Command{
		Use:     "matches",
		Aliases: []string{"match"},
		Short:   "Browse matches and scores",
		Long: `Browse matches and scores.

Listing and viewing matches needs no session. Live score entry and
ending a match need a coach, organizer or admin session.

Examples:
  tourney matches list --status live
  tourney matches get 42
  tourney matches history 42
  tourney matches set-score 42 --home 2 --away 1 --period "2nd half"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List matches",
		RunE:  runMatchesList,
	}
	listCmd.Flags().String("status", "", "filter by status (scheduled, live, completed, cancelled, postponed)")
	listCmd.Flags().Int64("sport", 0, "filter by sport id")
	listCmd.Flags().Int64("schedule", 0, "filter by schedule id")

	setScoreCmd := &cobra.Command{
		Use:   "set-score <match-id>",
		Short: "Record the live score of a match",
		Args:  cobra.ExactArgs(1),
		RunE:  runMatchesSetScore,
	}
	setScoreCmd.Flags().Int("home", 0, "home score")
	setScoreCmd.Flags().Int("away", 0, "away score")
	setScoreCmd.Flags().String("period", "", "period, e.g. \"2nd half\"")
	setScoreCmd.Flags().String("info", "", "additional information")

	endCmd := &cobra.Command{
		Use:   "end <match-id>",
		Short: "Mark a live match as completed",
		Args:  cobra.ExactArgs(1),
		RunE:  runMatchesEnd,
	}
	endCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	matchesCmd.AddCommand(
		listCmd,
		&cobra.Command{
			Use:   "get <match-id>",
			Short: "Show a match with its current score",
			Args:  cobra.ExactArgs(1),
			RunE:  runMatchesGet,
		},
		&cobra.Command{
			Use:   "history <match-id>",
			Short: "Show the score history of a match",
			Args:  cobra.ExactArgs(1),
			RunE:  runMatchesHistory,
		},
		&cobra.Command{
			Use:   "live <match-id>",
			Short: "Show the coach score sheet of a match",
			Args:  cobra.ExactArgs(1),
			RunE:  runMatchesLive,
		},
		&cobra.Command{
			Use:   "players <match-id>",
			Short: "List the players eligible for a match",
			Args:  cobra.ExactArgs(1),
			RunE:  runMatchesPlayers,
		},
		setScoreCmd,
		endCmd,
	)
	return matchesCmd
}

var matchStatuses = []domain.MatchStatus{
	domain.MatchScheduled, domain.MatchLive, domain.MatchCompleted, domain.MatchCancelled, domain.MatchPostponed,
}

func parseStatus(raw string) (domain.MatchStatus, error) {
	if raw == "" {
		return "", nil
	}
	for _, s := range matchStatuses {
		if string(s) == strings.ToLower(raw) {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid status %q (valid: scheduled, live, completed, cancelled, postponed)", raw)
}

func runMatchesList(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := cc.Require("viewer-matches", nil); err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetString("status")
	status, err := parseStatus(raw)
	if err != nil {
		return err
	}
	sport, _ := cmd.Flags().GetInt64("sport")
	schedule, _ := cmd.Flags().GetInt64("schedule")

	matches, err := cc.Client.ListMatches(cmd.Context(), platform.MatchFilter{
		SportID: sport, ScheduleID: schedule, Status: status,
	})
	if err != nil {
		return cc.Fail(err, "listing matches")
	}
	return cc.Render(ux.MatchesTable(matches))
}

// matchTarget parses the match id and checks the named route for it
func matchTarget(cc *CommandContext, route, raw string) (int64, error) {
	id, err := parseID(raw, "match")
	if err != nil {
		return 0, err
	}
	if err := cc.Require(route, idParams(raw)); err != nil {
		return 0, err
	}
	return id, nil
}

func runMatchesGet(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	id, err := matchTarget(cc, "match-detail", args[0])
	if err != nil {
		return err
	}

	m, err := cc.Client.GetMatch(cmd.Context(), id)
	if err != nil {
		return cc.Fail(err, "fetching match")
	}
	summary := ux.MatchSummary{Match: *m}
	score, err := cc.Client.GetScore(cmd.Context(), id)
	switch {
	case err == nil:
		summary.Score = score
	case platform.IsNotFound(err):
		cc.Logger.Debug("match has no score yet", "match_id", id)
	default:
		return cc.Fail(err, "fetching score")
	}
	return cc.Render(summary)
}

func runMatchesHistory(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	id, err := matchTarget(cc, "match-detail", args[0])
	if err != nil {
		return err
	}
	history, err := cc.Client.GetScoreHistory(cmd.Context(), id)
	if err != nil {
		return cc.Fail(err, "fetching score history")
	}
	return cc.Render(ux.DocumentsTable(history))
}

type scoreSheet struct {
	MatchID int64               `json:"match_id" yaml:"match_id"`
	Details domain.ScoreDetails `json:"details" yaml:"details"`
}

func (s scoreSheet) String() string {
	d := s.Details
	out := fmt.Sprintf("Match %d (%s)\nScore: %d - %d", s.MatchID, d.SportName, d.HomeScore, d.AwayScore)
	if d.Period != nil {
		out += " (" + *d.Period + ")"
	}
	return out
}

func runMatchesLive(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	id, err := matchTarget(cc, "coach-live-score", args[0])
	if err != nil {
		return err
	}
	d, err := cc.Client.GetScoreDetails(cmd.Context(), id)
	if err != nil {
		return cc.Fail(err, "fetching score sheet")
	}
	return cc.Render(scoreSheet{MatchID: id, Details: *d})
}

func runMatchesPlayers(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	id, err := matchTarget(cc, "coach-live-score", args[0])
	if err != nil {
		return err
	}
	players, err := cc.Client.ListMatchPlayers(cmd.Context(), id)
	if err != nil {
		return cc.Fail(err, "listing match players")
	}
	return cc.Render(ux.PlayersTable(players))
}

func runMatchesSetScore(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	id, err := matchTarget(cc, "coach-live-score", args[0])
	if err != nil {
		return err
	}

	update := domain.LiveScoreUpdate{
		ScoreUpdate: domain.ScoreUpdate{
			HomeScore: optionalInt(cmd, "home"),
			AwayScore: optionalInt(cmd, "away"),
			Period:    optionalString(cmd, "period"),
		},
		AdditionalInfo: optionalString(cmd, "info"),
	}
	if update.HomeScore == nil && update.AwayScore == nil && update.Period == nil && update.AdditionalInfo == nil {
		return fmt.Errorf("nothing to update: set at least one of --home, --away, --period or --info")
	}

	score, err := cc.Client.UpdateMatchScore(cmd.Context(), id, update)
	if err != nil {
		return cc.Fail(err, "updating score")
	}
	cc.Logger.Info("score updated", "match_id", id, "home", score.HomeScore, "away", score.AwayScore)
	m, err := cc.Client.GetMatch(cmd.Context(), id)
	if err != nil {
		return cc.Fail(err, "fetching match")
	}
	return cc.Render(ux.MatchSummary{Match: *m, Score: score})
}

func runMatchesEnd(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	id, err := matchTarget(cc, "coach-live-score", args[0])
	if err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		ok, err := ux.Confirm(fmt.Sprintf("End match %d? The score becomes final.", id), false)
		if err != nil {
			return err
		}
		if !ok {
			cc.Printf("Aborted.\n")
			return nil
		}
	}

	res, err := cc.Client.EndMatch(cmd.Context(), id)
	if err != nil {
		return cc.Fail(err, "ending match")
	}
	cc.Printf("%s\n", res.Message)
	return nil
}
