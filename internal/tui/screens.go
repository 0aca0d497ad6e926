package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/tourney/internal/domain"
	terrors "github.com/felixgeelhaar/tourney/internal/errors"
	"github.com/felixgeelhaar/tourney/internal/platform"
	"github.com/felixgeelhaar/tourney/internal/router"
	"github.com/felixgeelhaar/tourney/internal/session"
	"github.com/felixgeelhaar/tourney/internal/ux"
)

// loader fetches the content of one screen. The result is a ux.Tabular,
// a fmt.Stringer or a string.
type loader func(ctx context.Context, c *platform.Client, loc router.Location, s session.Snapshot) (any, error)

// screens maps route names to their data. Routes without an entry are
// menus.
var screens = map[string]loader{
	router.NameDashboard:          unread,
	router.NameAdminDashboard:     unread,
	router.NameOrganizerDashboard: unread,
	router.NameCoachDashboard:     unread,
	router.NamePlayerDashboard:    unread,

	"admin-users": func(ctx context.Context, c *platform.Client, _ router.Location, _ session.Snapshot) (any, error) {
		users, err := c.ListUsers(ctx)
		return ux.UsersTable(users), err
	},
	"admin-institutions": func(ctx context.Context, c *platform.Client, _ router.Location, _ session.Snapshot) (any, error) {
		insts, err := c.ListInstitutions(ctx)
		return ux.InstitutionsTable(insts), err
	},
	"admin-tournaments": func(ctx context.Context, c *platform.Client, _ router.Location, _ session.Snapshot) (any, error) {
		ts, err := c.ListAdminTournaments(ctx, 0, 0)
		return ux.TournamentsTable(ts), err
	},

	"organizer-institution": func(ctx context.Context, c *platform.Client, _ router.Location, _ session.Snapshot) (any, error) {
		inst, err := c.GetMyInstitution(ctx)
		if err != nil {
			return nil, err
		}
		return ux.InstitutionsTable([]domain.Institution{*inst}), nil
	},
	"organizer-sports": func(ctx context.Context, c *platform.Client, _ router.Location, s session.Snapshot) (any, error) {
		sports, err := c.ListSports(ctx, institutionOf(s))
		return ux.SportsTable(sports), err
	},
	"organizer-teams": teams,
	"organizer-players": func(ctx context.Context, c *platform.Client, _ router.Location, _ session.Snapshot) (any, error) {
		players, err := c.ListPlayers(ctx, 0)
		return ux.PlayersTable(players), err
	},
	"organizer-venues": func(ctx context.Context, c *platform.Client, _ router.Location, s session.Snapshot) (any, error) {
		venues, err := c.ListVenues(ctx, institutionOf(s))
		return ux.VenuesTable(venues), err
	},
	"organizer-tournaments": func(ctx context.Context, c *platform.Client, _ router.Location, s session.Snapshot) (any, error) {
		ts, err := c.ListTournaments(ctx, platform.TournamentFilter{InstitutionID: institutionOf(s)})
		return ux.TournamentsTable(ts), err
	},
	"organizer-schedules": func(ctx context.Context, c *platform.Client, _ router.Location, _ session.Snapshot) (any, error) {
		schedules, err := c.ListSchedules(ctx, 0)
		return ux.SchedulesTable(schedules), err
	},

	"coach-teams":   teams,
	"coach-lineups": matchesWithStatus(domain.MatchScheduled),
	"coach-live-score": func(ctx context.Context, c *platform.Client, loc router.Location, _ session.Snapshot) (any, error) {
		id, err := matchID(loc)
		if err != nil {
			return nil, err
		}
		d, err := c.GetScoreDetails(ctx, id)
		if err != nil {
			return nil, err
		}
		out := fmt.Sprintf("%s\nScore: %d - %d", d.SportName, d.HomeScore, d.AwayScore)
		if d.Period != nil {
			out += " (" + *d.Period + ")"
		}
		return out, nil
	},

	"player-profile": func(ctx context.Context, c *platform.Client, _ router.Location, _ session.Snapshot) (any, error) {
		p, err := c.GetMyProfile(ctx)
		if err != nil {
			return nil, err
		}
		return ux.PlayersTable([]domain.Player{*p}), nil
	},
	"player-matches": matchesWithStatus(""),
	"player-statistics": func(ctx context.Context, c *platform.Client, _ router.Location, _ session.Snapshot) (any, error) {
		doc, err := c.GetMyStatistics(ctx)
		return ux.DocumentTable(doc), err
	},

	"viewer-matches": matchesWithStatus(""),
	"viewer-tournaments": func(ctx context.Context, c *platform.Client, _ router.Location, _ session.Snapshot) (any, error) {
		public := true
		ts, err := c.ListTournaments(ctx, platform.TournamentFilter{Public: &public})
		return ux.TournamentsTable(ts), err
	},
	"viewer-live-scores": matchesWithStatus(domain.MatchLive),

	"match-detail": func(ctx context.Context, c *platform.Client, loc router.Location, _ session.Snapshot) (any, error) {
		id, err := matchID(loc)
		if err != nil {
			return nil, err
		}
		m, err := c.GetMatch(ctx, id)
		if err != nil {
			return nil, err
		}
		summary := ux.MatchSummary{Match: *m}
		score, err := c.GetScore(ctx, id)
		switch {
		case err == nil:
			summary.Score = score
		case !platform.IsNotFound(err):
			return nil, err
		}
		return summary, nil
	},
}

func unread(ctx context.Context, c *platform.Client, _ router.Location, s session.Snapshot) (any, error) {
	n, err := c.GetUnreadCount(ctx)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Welcome, %s.\nYou have %d unread notification(s).",
		s.Identity.DisplayName(), n.UnreadCount), nil
}

func teams(ctx context.Context, c *platform.Client, _ router.Location, s session.Snapshot) (any, error) {
	ts, err := c.ListTeams(ctx, platform.TeamFilter{InstitutionID: institutionOf(s)})
	return ux.TeamsTable(ts), err
}

func matchesWithStatus(status domain.MatchStatus) loader {
	return func(ctx context.Context, c *platform.Client, _ router.Location, _ session.Snapshot) (any, error) {
		ms, err := c.ListMatches(ctx, platform.MatchFilter{Status: status})
		return ux.MatchesTable(ms), err
	}
}

func institutionOf(s session.Snapshot) int64 {
	if s.Identity == nil || s.Identity.InstitutionID == nil {
		return 0
	}
	return *s.Identity.InstitutionID
}

func matchID(loc router.Location) (int64, error) {
	raw := loc.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, terrors.New(terrors.ErrCodeRouteNotFound, fmt.Sprintf("invalid match id %q", raw))
	}
	return id, nil
}

// render turns loader output into screen text
func render(v any, plain bool) string {
	switch c := v.(type) {
	case nil:
		return ""
	case ux.Tabular:
		if len(c.Rows()) == 0 {
			return "Nothing to show."
		}
		return ux.RenderTable(c, plain)
	case fmt.Stringer:
		return c.String()
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}
