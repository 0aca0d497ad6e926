package platform

import (
	"context"
	"net/http"
	"net/url"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

// TeamFilter narrows ListTeams
type TeamFilter struct {
	SportID       int64
	InstitutionID int64
}

// GetMyInstitution returns the organizer's own institution
func (c *Client) GetMyInstitution(ctx context.Context) (*domain.Institution, error) {
	inst, err := get[domain.Institution](ctx, c, "/organizer/institution", nil)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// UpdateMyInstitution patches the organizer's own institution
func (c *Client) UpdateMyInstitution(ctx context.Context, fields map[string]any) (*domain.Institution, error) {
	inst, err := send[domain.Institution](ctx, c, http.MethodPatch, "/organizer/institution", fields)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// ListSports returns sports, optionally for one institution
func (c *Client) ListSports(ctx context.Context, institutionID int64) ([]domain.Sport, error) {
	q := url.Values{}
	setID(q, "institution_id", institutionID)
	return get[[]domain.Sport](ctx, c, "/organizer/sports", q)
}

// CreateSport creates a sport for the organizer's institution
func (c *Client) CreateSport(ctx context.Context, fields map[string]any) (*domain.Sport, error) {
	sport, err := send[domain.Sport](ctx, c, http.MethodPost, "/organizer/sports", fields)
	if err != nil {
		return nil, err
	}
	return &sport, nil
}

// ListSportTemplates returns the built-in sport templates
func (c *Client) ListSportTemplates(ctx context.Context) ([]domain.Document, error) {
	return get[[]domain.Document](ctx, c, "/organizer/sports/templates", nil)
}

// ListTeams returns teams matching the filter
func (c *Client) ListTeams(ctx context.Context, f TeamFilter) ([]domain.Team, error) {
	q := url.Values{}
	setID(q, "sport_id", f.SportID)
	setID(q, "institution_id", f.InstitutionID)
	return get[[]domain.Team](ctx, c, "/organizer/teams", q)
}

// ListPlayers returns players, optionally of one team
func (c *Client) ListPlayers(ctx context.Context, teamID int64) ([]domain.Player, error) {
	q := url.Values{}
	setID(q, "team_id", teamID)
	return get[[]domain.Player](ctx, c, "/organizer/players", q)
}

// CreatePlayer registers a player
func (c *Client) CreatePlayer(ctx context.Context, fields map[string]any) (*domain.Player, error) {
	player, err := send[domain.Player](ctx, c, http.MethodPost, "/organizer/players", fields)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// ListVenues returns venues, optionally of one institution
func (c *Client) ListVenues(ctx context.Context, institutionID int64) ([]domain.Venue, error) {
	q := url.Values{}
	setID(q, "institution_id", institutionID)
	return get[[]domain.Venue](ctx, c, "/venues", q)
}

// CreateVenue creates a venue
func (c *Client) CreateVenue(ctx context.Context, in domain.Venue) (*domain.Venue, error) {
	venue, err := send[domain.Venue](ctx, c, http.MethodPost, "/venues", in)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}
