package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

// ListNotifications returns the current user's notifications; isRead
// filters by read state when non-nil.
func (c *Client) ListNotifications(ctx context.Context, isRead *bool) ([]domain.Notification, error) {
	q := url.Values{}
	setBool(q, "is_read", isRead)
	return get[[]domain.Notification](ctx, c, "/notifications", q)
}

// MarkNotificationRead marks one notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID int64) (*domain.Notification, error) {
	n, err := send[domain.Notification](ctx, c, http.MethodPost, fmt.Sprintf("/notifications/%d/read", notificationID), nil)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetUnreadCount returns the unread notification counter
func (c *Client) GetUnreadCount(ctx context.Context) (*domain.UnreadCount, error) {
	n, err := get[domain.UnreadCount](ctx, c, "/notifications/unread/count", nil)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
