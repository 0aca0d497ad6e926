package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

// ListUsers returns every account (admin only)
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	return get[[]domain.User](ctx, c, "/admin/users", nil)
}

// CreateUser creates an account (admin only). Self-registration is disabled
// on the platform; accounts are provisioned here.
func (c *Client) CreateUser(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	user, err := send[domain.User](ctx, c, http.MethodPost, "/admin/users", in)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser patches an account (admin only)
func (c *Client) UpdateUser(ctx context.Context, userID int64, in domain.UserInput) (*domain.User, error) {
	user, err := send[domain.User](ctx, c, http.MethodPatch, fmt.Sprintf("/admin/users/%d", userID), in)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account (admin only)
func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/admin/users/%d", userID)}, nil)
}

// ListInstitutions returns every institution (admin only)
func (c *Client) ListInstitutions(ctx context.Context) ([]domain.Institution, error) {
	return get[[]domain.Institution](ctx, c, "/admin/institutions", nil)
}

// GetInstitution returns one institution (admin only)
func (c *Client) GetInstitution(ctx context.Context, institutionID int64) (*domain.Institution, error) {
	inst, err := get[domain.Institution](ctx, c, fmt.Sprintf("/admin/institutions/%d", institutionID), nil)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// CreateInstitution creates an institution (admin only)
func (c *Client) CreateInstitution(ctx context.Context, in domain.Institution) (*domain.Institution, error) {
	inst, err := send[domain.Institution](ctx, c, http.MethodPost, "/admin/institutions", in)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// UpdateInstitution patches an institution (admin only)
func (c *Client) UpdateInstitution(ctx context.Context, institutionID int64, fields map[string]any) (*domain.Institution, error) {
	inst, err := send[domain.Institution](ctx, c, http.MethodPatch, fmt.Sprintf("/admin/institutions/%d", institutionID), fields)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// DeleteInstitution removes an institution (admin only)
func (c *Client) DeleteInstitution(ctx context.Context, institutionID int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/admin/institutions/%d", institutionID)}, nil)
}

// ListAdminTournaments pages through all tournaments (admin only)
func (c *Client) ListAdminTournaments(ctx context.Context, skip, limit int) ([]domain.Tournament, error) {
	if limit <= 0 {
		limit = 100
	}
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	return get[[]domain.Tournament](ctx, c, "/admin/tournaments", q)
}

// DeleteAdminTournament removes a tournament (admin only)
func (c *Client) DeleteAdminTournament(ctx context.Context, tournamentID int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/admin/tournaments/%d", tournamentID)}, nil)
}
