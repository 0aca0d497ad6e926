package platform

import (
	"context"
	"net/http"
	"net/url"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

// TournamentFilter narrows ListTournaments
type TournamentFilter struct {
	InstitutionID int64
	Public        *bool
}

// CreateTournament creates a tournament
func (c *Client) CreateTournament(ctx context.Context, in domain.Tournament) (*domain.Tournament, error) {
	t, err := send[domain.Tournament](ctx, c, http.MethodPost, "/tournaments", in)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTournaments returns tournaments matching the filter
func (c *Client) ListTournaments(ctx context.Context, f TournamentFilter) ([]domain.Tournament, error) {
	q := url.Values{}
	setID(q, "institution_id", f.InstitutionID)
	setBool(q, "is_public", f.Public)
	return get[[]domain.Tournament](ctx, c, "/tournaments", q)
}
