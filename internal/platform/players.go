package platform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

// JoinTeam adds the current player to a team
func (c *Client) JoinTeam(ctx context.Context, teamID int64) (*domain.Player, error) {
	p, err := send[domain.Player](ctx, c, http.MethodPost, fmt.Sprintf("/players/teams/%d/join", teamID), nil)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetMyProfile returns the current user's player profile
func (c *Client) GetMyProfile(ctx context.Context) (*domain.Player, error) {
	p, err := get[domain.Player](ctx, c, "/players/me", nil)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPlayerStatistics returns aggregated statistics of a player
func (c *Client) GetPlayerStatistics(ctx context.Context, playerID int64) (domain.Document, error) {
	return get[domain.Document](ctx, c, fmt.Sprintf("/statistics/players/%d", playerID), nil)
}

// GetTeamStatistics returns aggregated statistics of a team
func (c *Client) GetTeamStatistics(ctx context.Context, teamID int64) (domain.Document, error) {
	return get[domain.Document](ctx, c, fmt.Sprintf("/statistics/teams/%d", teamID), nil)
}

// GetMyStatistics returns the current player's statistics
func (c *Client) GetMyStatistics(ctx context.Context) (domain.Document, error) {
	return get[domain.Document](ctx, c, "/statistics/players/me", nil)
}
