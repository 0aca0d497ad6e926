package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

// MatchFilter narrows ListMatches
type MatchFilter struct {
	SportID    int64
	ScheduleID int64
	Status     domain.MatchStatus
}

// CreateSchedule creates a fixture schedule
func (c *Client) CreateSchedule(ctx context.Context, in domain.Schedule) (*domain.Schedule, error) {
	s, err := send[domain.Schedule](ctx, c, http.MethodPost, "/matches/schedules", in)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSchedules returns schedules, optionally of one sport
func (c *Client) ListSchedules(ctx context.Context, sportID int64) ([]domain.Schedule, error) {
	q := url.Values{}
	setID(q, "sport_id", sportID)
	return get[[]domain.Schedule](ctx, c, "/matches/schedules", q)
}

// ListMatches returns matches matching the filter
func (c *Client) ListMatches(ctx context.Context, f MatchFilter) ([]domain.Match, error) {
	q := url.Values{}
	setID(q, "sport_id", f.SportID)
	setID(q, "schedule_id", f.ScheduleID)
	setString(q, "status", string(f.Status))
	return get[[]domain.Match](ctx, c, "/matches", q)
}

// GetMatch returns one match
func (c *Client) GetMatch(ctx context.Context, matchID int64) (*domain.Match, error) {
	m, err := get[domain.Match](ctx, c, fmt.Sprintf("/matches/%d", matchID), nil)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMatch patches a match
func (c *Client) UpdateMatch(ctx context.Context, matchID int64, fields map[string]any) (*domain.Match, error) {
	m, err := send[domain.Match](ctx, c, http.MethodPatch, fmt.Sprintf("/matches/%d", matchID), fields)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateScore records a score change
func (c *Client) UpdateScore(ctx context.Context, matchID int64, in domain.ScoreUpdate) (*domain.Score, error) {
	s, err := send[domain.Score](ctx, c, http.MethodPost, fmt.Sprintf("/matches/%d/score", matchID), in)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetScore returns the current score of a match
func (c *Client) GetScore(ctx context.Context, matchID int64) (*domain.Score, error) {
	s, err := get[domain.Score](ctx, c, fmt.Sprintf("/matches/%d/score", matchID), nil)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetScoreHistory returns every recorded score update of a match
func (c *Client) GetScoreHistory(ctx context.Context, matchID int64) ([]domain.Document, error) {
	return get[[]domain.Document](ctx, c, fmt.Sprintf("/matches/%d/score/history", matchID), nil)
}
