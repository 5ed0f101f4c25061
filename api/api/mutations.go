/* mutations.go
 * Contains the schedule actions. Every action re-fetches the whole match list of the tournament on success,
 * because completing a round on the backend can move the tournament to its next stage
 */

package api

import (
	"context"

	"chess-tournament-ui/api/logic"
	"chess-tournament-ui/api/shared"
)

// refreshMatches fetches every round of the tournament after a mutation and announces the change.
// Postconditions: the mutation has already been accepted, so a failed fetch is only logged and yields a nil match
// list; the change is announced either way
func (a *API) refreshMatches(ctx context.Context, tournamentID int, aggregate string) []shared.Match {
	matches, err := a.Client.ListMatches(ctx, tournamentID, 0)
	if err != nil {
		a.Logger.Warn("match refetch after mutation failed", "tournament", tournamentID, "aggregate", aggregate, "error", err)
		matches = nil
	}
	a.publish(tournamentID, aggregate)
	return matches
}

// SubmitBoardResult records the result the operator picked for a board.
// Preconditions: current is the result the board showed when the operator picked chosen
// Postconditions: picking the result the board already has submits pending instead; on success the refreshed
// match list is returned, or nil when the refetch failed
func (a *API) SubmitBoardResult(ctx context.Context, tournamentID int, matchID int, board int, current string, chosen string) ([]shared.Match, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	if err := logic.ValidateBoardResult(chosen); err != nil {
		return nil, err
	}
	result := logic.NextBoardResult(current, chosen)
	if _, err := a.Client.SubmitBoardResult(ctx, matchID, board, result); err != nil {
		return nil, err
	}
	a.Logger.Info("board result submitted", "match", matchID, "board", board, "result", result)
	return a.refreshMatches(ctx, tournamentID, AggregateMatches), nil
}

// SubmitTiebreakerResult records the armageddon winner of a drawn knockout match
func (a *API) SubmitTiebreakerResult(ctx context.Context, tournamentID int, matchID int, result string) ([]shared.Match, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	if err := logic.ValidateTiebreakerResult(result); err != nil {
		return nil, err
	}
	if _, err := a.Client.SubmitTiebreakerResult(ctx, matchID, result); err != nil {
		return nil, err
	}
	a.Logger.Info("tiebreaker result submitted", "match", matchID, "result", result)
	return a.refreshMatches(ctx, tournamentID, AggregateMatches), nil
}

// SwapCandidates lists the players that can replace the player on a board
func (a *API) SwapCandidates(ctx context.Context, matchID int, board int) ([]shared.SwapCandidate, error) {
	return a.Client.GetSwapCandidates(ctx, matchID, board)
}

func (a *API) SwapPlayers(ctx context.Context, tournamentID int, matchID int, req shared.SwapPlayersRequest) ([]shared.Match, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	if req.OutPlayerID == req.InPlayerID {
		return nil, &logic.GuardError{Field: "in_player_id", Message: "Choose a different player to swap in"}
	}
	if err := a.Client.SwapPlayers(ctx, matchID, req); err != nil {
		return nil, err
	}
	a.Logger.Info("players swapped", "match", matchID, "board", req.BoardNumber, "out", req.OutPlayerID, "in", req.InPlayerID)
	return a.refreshMatches(ctx, tournamentID, AggregateMatches), nil
}

func (a *API) SwapColors(ctx context.Context, tournamentID int, matchID int) ([]shared.Match, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	if err := a.Client.SwapColors(ctx, matchID); err != nil {
		return nil, err
	}
	a.Logger.Info("colors swapped", "match", matchID)
	return a.refreshMatches(ctx, tournamentID, AggregateMatches), nil
}

func (a *API) RescheduleRound(ctx context.Context, tournamentID int, round int, date string) ([]shared.Match, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	if date == "" {
		return nil, &logic.GuardError{Field: "date", Message: "Pick a date for the round"}
	}
	if err := a.Client.RescheduleRound(ctx, tournamentID, round, shared.RescheduleRequest{Date: date}); err != nil {
		return nil, err
	}
	a.Logger.Info("round rescheduled", "tournament", tournamentID, "round", round, "date", date)
	return a.refreshMatches(ctx, tournamentID, AggregateMatches), nil
}

// CompleteRound closes a round. The backend may advance the tournament stage as a side effect, so callers should
// reload the tournament as well as the matches
func (a *API) CompleteRound(ctx context.Context, tournamentID int, round int) ([]shared.Match, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	if err := a.Client.CompleteRound(ctx, tournamentID, round); err != nil {
		return nil, err
	}
	a.Logger.Info("round completed", "tournament", tournamentID, "round", round)
	return a.refreshMatches(ctx, tournamentID, AggregateTournament), nil
}

// StartTournament generates the pairings of a tournament
func (a *API) StartTournament(ctx context.Context, tournamentID int) ([]shared.Match, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	if err := a.Client.StartTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	a.Logger.Info("tournament started", "tournament", tournamentID)
	return a.refreshMatches(ctx, tournamentID, AggregateTournament), nil
}

func (a *API) CompleteTournament(ctx context.Context, tournamentID int) ([]shared.Match, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	if err := a.Client.CompleteTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	a.Logger.Info("tournament completed", "tournament", tournamentID)
	return a.refreshMatches(ctx, tournamentID, AggregateTournament), nil
}
