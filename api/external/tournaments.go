/* tournaments.go
 * Contains the tournament endpoints, including progression (start, complete round, complete tournament),
 * standings, best players and their tiebreak operations
 */

package external

import (
	"context"
	"fmt"
	"net/http"

	"chess-tournament-ui/api/shared"
)

func tournamentPath(id int, suffix string) string {
	return fmt.Sprintf("/tournaments/%d%s", id, suffix)
}

func (c *Client) GetCurrentTournament(ctx context.Context) (shared.Tournament, error) {
	var t shared.Tournament
	err := c.do(ctx, http.MethodGet, "/tournaments/current", nil, nil, &t)
	return t, err
}

func (c *Client) ListTournaments(ctx context.Context) ([]shared.Tournament, error) {
	var ts []shared.Tournament
	err := c.do(ctx, http.MethodGet, "/tournaments", nil, nil, &ts)
	return ts, err
}

func (c *Client) CreateTournament(ctx context.Context, input shared.TournamentInput) (shared.Tournament, error) {
	var t shared.Tournament
	err := c.do(ctx, http.MethodPost, "/tournaments", nil, input, &t)
	return t, err
}

func (c *Client) UpdateTournament(ctx context.Context, id int, update shared.TournamentUpdate) (shared.Tournament, error) {
	var t shared.Tournament
	err := c.do(ctx, http.MethodPut, tournamentPath(id, ""), nil, update, &t)
	return t, err
}

func (c *Client) DeleteTournament(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, tournamentPath(id, ""), nil, nil, nil)
}

func (c *Client) SetCurrentTournament(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, tournamentPath(id, "/set-current"), nil, nil, nil)
}

func (c *Client) StartTournament(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, tournamentPath(id, "/start"), nil, nil, nil)
}

func (c *Client) CompleteTournament(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, tournamentPath(id, "/complete"), nil, nil, nil)
}

func (c *Client) GetStandings(ctx context.Context, id int) ([]shared.StandingsEntry, error) {
	var entries []shared.StandingsEntry
	err := c.do(ctx, http.MethodGet, tournamentPath(id, "/standings"), nil, nil, &entries)
	return entries, err
}

func (c *Client) GetBestPlayers(ctx context.Context, id int) ([]shared.BestPlayerEntry, error) {
	var entries []shared.BestPlayerEntry
	err := c.do(ctx, http.MethodGet, tournamentPath(id, "/best-players"), nil, nil, &entries)
	return entries, err
}

func (c *Client) CheckStandingsTies(ctx context.Context, id int) (shared.StandingsTieCheck, error) {
	var check shared.StandingsTieCheck
	err := c.do(ctx, http.MethodGet, tournamentPath(id, "/standings/ties"), nil, nil, &check)
	return check, err
}

func (c *Client) CheckBestPlayersTies(ctx context.Context, id int) (shared.BestPlayersTieCheck, error) {
	var check shared.BestPlayersTieCheck
	err := c.do(ctx, http.MethodGet, tournamentPath(id, "/best-players/ties"), nil, nil, &check)
	return check, err
}

func (c *Client) SwapStandings(ctx context.Context, id int, req shared.StandingsSwapRequest) error {
	return c.do(ctx, http.MethodPost, tournamentPath(id, "/standings/tiebreaker"), nil, req, nil)
}

func (c *Client) SwapBestPlayers(ctx context.Context, id int, req shared.BestPlayersSwapRequest) error {
	return c.do(ctx, http.MethodPost, tournamentPath(id, "/best-players/tiebreaker"), nil, req, nil)
}

func (c *Client) ValidateStandings(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, tournamentPath(id, "/standings/validate"), nil, nil, nil)
}

func (c *Client) ValidateBestPlayers(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, tournamentPath(id, "/best-players/validate"), nil, nil, nil)
}

func (c *Client) RescheduleRound(ctx context.Context, id int, round int, req shared.RescheduleRequest) error {
	return c.do(ctx, http.MethodPost, tournamentPath(id, fmt.Sprintf("/rounds/%d/reschedule", round)), nil, req, nil)
}

func (c *Client) CompleteRound(ctx context.Context, id int, round int) error {
	return c.do(ctx, http.MethodPost, tournamentPath(id, fmt.Sprintf("/rounds/%d/complete", round)), nil, nil, nil)
}
