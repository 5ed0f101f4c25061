/* announcements.go
 * Contains the announcement endpoints. Announcements are scoped to a tournament but independent of its progression
 */

package external

import (
	"context"
	"fmt"
	"net/http"

	"chess-tournament-ui/api/shared"
)

func (c *Client) ListAnnouncements(ctx context.Context, tournamentID int) ([]shared.Announcement, error) {
	var as []shared.Announcement
	err := c.do(ctx, http.MethodGet, tournamentPath(tournamentID, "/announcements"), nil, nil, &as)
	return as, err
}

func (c *Client) CreateAnnouncement(ctx context.Context, tournamentID int, input shared.AnnouncementInput) (shared.Announcement, error) {
	var a shared.Announcement
	err := c.do(ctx, http.MethodPost, tournamentPath(tournamentID, "/announcements"), nil, input, &a)
	return a, err
}

func (c *Client) UpdateAnnouncement(ctx context.Context, tournamentID int, id int, input shared.AnnouncementInput) (shared.Announcement, error) {
	var a shared.Announcement
	err := c.do(ctx, http.MethodPut, tournamentPath(tournamentID, fmt.Sprintf("/announcements/%d", id)), nil, input, &a)
	return a, err
}

func (c *Client) DeleteAnnouncement(ctx context.Context, tournamentID int, id int) error {
	return c.do(ctx, http.MethodDelete, tournamentPath(tournamentID, fmt.Sprintf("/announcements/%d", id)), nil, nil, nil)
}
