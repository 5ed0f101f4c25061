/* teams.go
 * Contains the team and player endpoints
 */

package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"chess-tournament-ui/api/shared"
)

func (c *Client) ListTeams(ctx context.Context, tournamentID int) ([]shared.Team, error) {
	query := url.Values{}
	if tournamentID > 0 {
		query.Set("tournament_id", strconv.Itoa(tournamentID))
	}
	var teams []shared.Team
	err := c.do(ctx, http.MethodGet, "/teams", query, nil, &teams)
	return teams, err
}

func (c *Client) GetTeam(ctx context.Context, id int) (shared.Team, error) {
	var team shared.Team
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/teams/%d", id), nil, nil, &team)
	return team, err
}

func (c *Client) UpdateTeam(ctx context.Context, id int, update shared.TeamUpdate) (shared.Team, error) {
	var team shared.Team
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/teams/%d", id), nil, update, &team)
	return team, err
}

func (c *Client) ListPlayers(ctx context.Context, filter PlayerFilter) ([]shared.Player, error) {
	query := url.Values{}
	if filter.TeamID > 0 {
		query.Set("team_id", strconv.Itoa(filter.TeamID))
	}
	if filter.TournamentID > 0 {
		query.Set("tournament_id", strconv.Itoa(filter.TournamentID))
	}
	var players []shared.Player
	err := c.do(ctx, http.MethodGet, "/players", query, nil, &players)
	return players, err
}

func (c *Client) GetPlayer(ctx context.Context, id int) (shared.Player, error) {
	var player shared.Player
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/players/%d", id), nil, nil, &player)
	return player, err
}

func (c *Client) CreatePlayer(ctx context.Context, input shared.PlayerInput) (shared.Player, error) {
	var player shared.Player
	err := c.do(ctx, http.MethodPost, "/players", nil, input, &player)
	return player, err
}

func (c *Client) UpdatePlayer(ctx context.Context, id int, update shared.PlayerUpdate) (shared.Player, error) {
	var player shared.Player
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/players/%d", id), nil, update, &player)
	return player, err
}

func (c *Client) DeletePlayer(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/players/%d", id), nil, nil, nil)
}
