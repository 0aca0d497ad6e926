package platform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

// UpdateMatchScore applies a live scoring action
func (c *Client) UpdateMatchScore(ctx context.Context, matchID int64, in domain.LiveScoreUpdate) (*domain.Score, error) {
	s, err := send[domain.Score](ctx, c, http.MethodPost, fmt.Sprintf("/coach/matches/%d/score", matchID), in)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetScoreDetails returns the sport-specific score state of a match
func (c *Client) GetScoreDetails(ctx context.Context, matchID int64) (*domain.ScoreDetails, error) {
	d, err := get[domain.ScoreDetails](ctx, c, fmt.Sprintf("/coach/matches/%d/score/details", matchID), nil)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// EndMatch marks a live match as completed
func (c *Client) EndMatch(ctx context.Context, matchID int64) (*domain.MatchEnded, error) {
	e, err := send[domain.MatchEnded](ctx, c, http.MethodPatch, fmt.Sprintf("/coach/matches/%d/end", matchID), nil)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListMatchPlayers returns the players eligible for a match
func (c *Client) ListMatchPlayers(ctx context.Context, matchID int64) ([]domain.Player, error) {
	return get[[]domain.Player](ctx, c, fmt.Sprintf("/coach/matches/%d/players", matchID), nil)
}
