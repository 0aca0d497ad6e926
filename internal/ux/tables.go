package ux

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

const timeLayout = "2006-01-02 15:04"

func id(v int64) string { return strconv.FormatInt(v, 10) }

func optID(v *int64) string {
	if v == nil {
		return "-"
	}
	return id(*v)
}

func opt(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func when(ts domain.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(timeLayout)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// UsersTable lists accounts
func UsersTable(users []domain.User) Table {
	t := Table{Head: []string{"ID", "EMAIL", "USERNAME", "NAME", "ROLE", "ACTIVE", "INSTITUTION"}, Records: users}
	for _, u := range users {
		t.Body = append(t.Body, []string{id(u.ID), u.Email, u.Username, opt(u.FullName), u.Role.String(), yesNo(u.IsActive), optID(u.InstitutionID)})
	}
	return t
}

// InstitutionsTable lists institutions
func InstitutionsTable(insts []domain.Institution) Table {
	t := Table{Head: []string{"ID", "CODE", "NAME", "EMAIL", "ACTIVE"}, Records: insts}
	for _, in := range insts {
		t.Body = append(t.Body, []string{id(in.ID), in.Code, in.Name, opt(in.ContactEmail), yesNo(in.IsActive)})
	}
	return t
}

// TournamentsTable lists tournaments
func TournamentsTable(ts []domain.Tournament) Table {
	t := Table{Head: []string{"ID", "NAME", "STATUS", "START", "PUBLIC", "INSTITUTION"}, Records: ts}
	for _, tr := range ts {
		t.Body = append(t.Body, []string{id(tr.ID), tr.Name, string(tr.Status), when(tr.StartDate), yesNo(tr.IsPublic), id(tr.InstitutionID)})
	}
	return t
}

// SportsTable lists sports
func SportsTable(sports []domain.Sport) Table {
	t := Table{Head: []string{"ID", "CODE", "NAME", "TYPE", "PLAYERS", "ACTIVE"}, Records: sports}
	for _, s := range sports {
		players := optInt(s.MinPlayersPerTeam) + "-" + optInt(s.MaxPlayersPerTeam)
		t.Body = append(t.Body, []string{id(s.ID), s.Code, s.Name, string(s.SportType), players, yesNo(s.IsActive)})
	}
	return t
}

// TeamsTable lists teams
func TeamsTable(teams []domain.Team) Table {
	t := Table{Head: []string{"ID", "NAME", "CODE", "SPORT", "COACH", "ACTIVE"}, Records: teams}
	for _, tm := range teams {
		t.Body = append(t.Body, []string{id(tm.ID), tm.Name, opt(tm.Code), id(tm.SportID), optID(tm.CoachID), yesNo(tm.IsActive)})
	}
	return t
}

// PlayersTable lists players
func PlayersTable(players []domain.Player) Table {
	t := Table{Head: []string{"ID", "USER", "TEAM", "JERSEY", "POSITION", "ACTIVE"}, Records: players}
	for _, p := range players {
		t.Body = append(t.Body, []string{id(p.ID), id(p.UserID), optID(p.TeamID), optInt(p.JerseyNumber), opt(p.Position), yesNo(p.IsActive)})
	}
	return t
}

// VenuesTable lists venues
func VenuesTable(venues []domain.Venue) Table {
	t := Table{Head: []string{"ID", "NAME", "ADDRESS", "CAPACITY", "ACTIVE"}, Records: venues}
	for _, v := range venues {
		t.Body = append(t.Body, []string{id(v.ID), v.Name, opt(v.Address), optInt(v.Capacity), yesNo(v.IsActive)})
	}
	return t
}

// SchedulesTable lists schedules
func SchedulesTable(schedules []domain.Schedule) Table {
	t := Table{Head: []string{"ID", "NAME", "TYPE", "SPORT", "START", "ACTIVE"}, Records: schedules}
	for _, s := range schedules {
		t.Body = append(t.Body, []string{id(s.ID), s.Name, string(s.ScheduleType), id(s.SportID), when(s.StartDate), yesNo(s.IsActive)})
	}
	return t
}

func teamName(team *domain.Team, teamID *int64) string {
	if team != nil && team.Name != "" {
		return team.Name
	}
	if teamID == nil {
		return "TBD"
	}
	return "#" + id(*teamID)
}

// MatchesTable lists matches
func MatchesTable(matches []domain.Match) Table {
	t := Table{Head: []string{"ID", "NO", "WHEN", "STATUS", "HOME", "AWAY", "VENUE"}, Records: matches}
	for _, m := range matches {
		t.Body = append(t.Body, []string{
			id(m.ID), opt(m.MatchNumber), when(m.ScheduledTime), string(m.Status),
			teamName(m.HomeTeam, m.HomeTeamID), teamName(m.AwayTeam, m.AwayTeamID), opt(m.VenueName),
		})
	}
	return t
}

// NotificationsTable lists notifications
func NotificationsTable(ns []domain.Notification) Table {
	t := Table{Head: []string{"ID", "READ", "TYPE", "TITLE", "MESSAGE", "CREATED"}, Records: ns}
	for _, n := range ns {
		t.Body = append(t.Body, []string{id(n.ID), yesNo(n.IsRead), n.NotificationType, n.Title, n.Message, when(n.CreatedAt)})
	}
	return t
}

// DocumentTable renders a loosely typed payload as key/value rows
func DocumentTable(doc domain.Document) Table {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := Table{Head: []string{"KEY", "VALUE"}, Records: doc}
	for _, k := range keys {
		t.Body = append(t.Body, []string{k, fmt.Sprint(doc[k])})
	}
	return t
}

// DocumentsTable renders a list of loosely typed payloads. Columns are the
// union of keys, sorted.
func DocumentsTable(docs []domain.Document) Table {
	seen := map[string]bool{}
	var keys []string
	for _, d := range docs {
		for k := range d {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)

	t := Table{Head: keys, Records: docs}
	for _, d := range docs {
		row := make([]string, len(keys))
		for i, k := range keys {
			if v, ok := d[k]; ok && v != nil {
				row[i] = fmt.Sprint(v)
			} else {
				row[i] = "-"
			}
		}
		t.Body = append(t.Body, row)
	}
	return t
}

// MatchSummary is the detail view of one match with its score
type MatchSummary struct {
	Match domain.Match  `json:"match" yaml:"match"`
	Score *domain.Score `json:"score,omitempty" yaml:"score,omitempty"`
}

// String renders the summary for text output
func (s MatchSummary) String() string {
	m := s.Match
	out := fmt.Sprintf("Match %d %s\n%s vs %s\nStatus: %s\nScheduled: %s\nVenue: %s",
		m.ID, opt(m.MatchNumber),
		teamName(m.HomeTeam, m.HomeTeamID), teamName(m.AwayTeam, m.AwayTeamID),
		m.Status, when(m.ScheduledTime), opt(m.VenueName))
	if s.Score != nil {
		out += fmt.Sprintf("\nScore: %d - %d", s.Score.HomeScore, s.Score.AwayScore)
		if s.Score.Period != nil {
			out += " (" + *s.Score.Period + ")"
		}
	}
	return out
}
