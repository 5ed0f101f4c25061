/* matches.go
 * Contains the match endpoints: listing by round, result entry and board/colour swaps
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

// ListMatches returns the matches of a tournament. round <= 0 returns every round
func (c *Client) ListMatches(ctx context.Context, tournamentID int, round int) ([]shared.Match, error) {
	query := url.Values{}
	query.Set("tournament_id", strconv.Itoa(tournamentID))
	if round > 0 {
		query.Set("round_number", strconv.Itoa(round))
	}
	var matches []shared.Match
	err := c.do(ctx, http.MethodGet, "/matches", query, nil, &matches)
	return matches, err
}

func (c *Client) SubmitBoardResult(ctx context.Context, matchID int, board int, result string) (shared.Match, error) {
	var match shared.Match
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/matches/%d/games/%d/result", matchID, board), nil, shared.ResultRequest{Result: result}, &match)
	return match, err
}

func (c *Client) SubmitTiebreakerResult(ctx context.Context, matchID int, result string) (shared.Match, error) {
	var match shared.Match
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/matches/%d/tiebreaker", matchID), nil, shared.ResultRequest{Result: result}, &match)
	return match, err
}

func (c *Client) GetSwapCandidates(ctx context.Context, matchID int, board int) ([]shared.SwapCandidate, error) {
	query := url.Values{}
	query.Set("board_number", strconv.Itoa(board))
	var candidates []shared.SwapCandidate
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/matches/%d/swap-candidates", matchID), query, nil, &candidates)
	return candidates, err
}

func (c *Client) SwapPlayers(ctx context.Context, matchID int, req shared.SwapPlayersRequest) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/matches/%d/swap-players", matchID), nil, req, nil)
}

func (c *Client) SwapColors(ctx context.Context, matchID int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/matches/%d/swap-colors", matchID), nil, nil, nil)
}
