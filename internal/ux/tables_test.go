package ux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

func TestMatchesTable(t *testing.T) {
	home := int64(3)
	no := "M-1"
	matches := []domain.Match{
		{ID: 1, MatchNumber: &no, Status: domain.MatchLive, HomeTeamID: &home, HomeTeam: &domain.Team{Name: "Falcons"}},
		{ID: 2, Status: domain.MatchScheduled, HomeTeamID: &home},
	}

	tbl := MatchesTable(matches)
	require.Len(t, tbl.Body, 2)
	assert.Equal(t, []string{"1", "M-1", "-", "live", "Falcons", "TBD", "-"}, tbl.Body[0])
	assert.Equal(t, "#3", tbl.Body[1][4])
	assert.Equal(t, matches, tbl.Records)
}

func TestDocumentsTable_UnionOfKeys(t *testing.T) {
	tbl := DocumentsTable([]domain.Document{
		{"home_score": 1.0, "period": "Q1"},
		{"home_score": 2.0, "away_score": 1.0},
	})
	assert.Equal(t, []string{"away_score", "home_score", "period"}, tbl.Head)
	assert.Equal(t, []string{"-", "1", "Q1"}, tbl.Body[0])
	assert.Equal(t, []string{"1", "2", "-"}, tbl.Body[1])
}

func TestMatchSummary_String(t *testing.T) {
	period := "2nd half"
	s := MatchSummary{
		Match: domain.Match{ID: 9, Status: domain.MatchCompleted},
		Score: &domain.Score{HomeScore: 2, AwayScore: 1, Period: &period},
	}
	out := s.String()
	assert.Contains(t, out, "Match 9")
	assert.Contains(t, out, "TBD vs TBD")
	assert.Contains(t, out, "Score: 2 - 1 (2nd half)")
}
