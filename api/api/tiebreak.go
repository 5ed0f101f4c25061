/* tiebreak.go
 * Contains the tiebreak actions for standings and best players. Selection state lives in one reconciler per
 * standings group and one for best players, per tournament
 */

package api

import (
	"context"

	"chess-tournament-ui/api/logic"
	"chess-tournament-ui/api/shared"
)

// standingsReconciler returns the reconciler of a group, creating it on first use. An idle reconciler picks up
// the latest ties; one with a selection keeps its ties until the selection is resolved
func (a *API) standingsReconciler(tournamentID int, group int, ties map[int][]int) *logic.Reconciler {
	a.mu.Lock()
	defer a.mu.Unlock()

	groups, ok := a.standings[tournamentID]
	if !ok {
		groups = make(map[int]*logic.Reconciler)
		a.standings[tournamentID] = groups
	}
	rec, ok := groups[group]
	if !ok {
		rec = logic.NewReconciler(ties)
		groups[group] = rec
		return rec
	}
	if rec.Selection().Phase == logic.Idle {
		rec.Reset(ties)
	}
	return rec
}

func (a *API) bestPlayersReconciler(tournamentID int, ties map[int][]int) *logic.Reconciler {
	a.mu.Lock()
	defer a.mu.Unlock()

	rec, ok := a.bestPlayers[tournamentID]
	if !ok {
		rec = logic.NewReconciler(ties)
		a.bestPlayers[tournamentID] = rec
		return rec
	}
	if rec.Selection().Phase == logic.Idle {
		rec.Reset(ties)
	}
	return rec
}

// errTiebreakClosed is returned for a click while the tiebreak controls are hidden
var errTiebreakClosed = &logic.GuardError{Field: "tiebreak", Message: "Tiebreaks can't be changed right now"}

// tiebreakTable names the table a recorded gate belongs to
type tiebreakTable int

const (
	standingsTable tiebreakTable = iota
	bestPlayersTable
)

// gates returns the recorded gates of a table. The caller holds a.mu
func (a *API) gates(table tiebreakTable) map[int]logic.TiebreakGate {
	if table == standingsTable {
		return a.standingsGate
	}
	return a.bestPlayersGate
}

// recordGate keeps the gate a table was last shown with, so clicks follow what the page offered
func (a *API) recordGate(table tiebreakTable, tournamentID int, gate logic.TiebreakGate) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gates(table)[tournamentID] = gate
}

// tiebreakOpen reports whether the recorded gate of a table still shows the tiebreak controls. Admin mode is read
// live; a table that has not been loaded has no open gate
func (a *API) tiebreakOpen(table tiebreakTable, tournamentID int) bool {
	a.mu.Lock()
	gate, ok := a.gates(table)[tournamentID]
	a.mu.Unlock()
	if !ok {
		return false
	}
	gate.AdminMode = a.Auth.AdminMode()
	return gate.Visible()
}

// updateGate applies change to the recorded gate of a table, if there is one
func (a *API) updateGate(table tiebreakTable, tournamentID int, change func(*logic.TiebreakGate)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	gates := a.gates(table)
	gate, ok := gates[tournamentID]
	if !ok {
		return
	}
	change(&gate)
	gates[tournamentID] = gate
}

// ClickStandings applies a click on a team in a standings group. A click that completes a pair swaps the two teams
// on the backend; on success the ties are fetched again and the group returns to idle, on failure the selection
// from before the click is kept and the backend error is returned.
// Preconditions: the standings were loaded with the tiebreak controls shown
// Postconditions: a swap that the backend accepted is reported as a success even if the ties can't be fetched
// afterwards; the next load picks them up
func (a *API) ClickStandings(ctx context.Context, tournamentID int, group int, teamID int) (logic.Transition, error) {
	if err := a.requireAdmin(); err != nil {
		return logic.Transition{}, err
	}
	if !a.tiebreakOpen(standingsTable, tournamentID) {
		return logic.Transition{}, errTiebreakClosed
	}

	rec := a.existingStandingsReconciler(tournamentID, group)
	transition := rec.Click(teamID)
	if transition.Kind != logic.SwapRequested {
		return transition, nil
	}

	err := rec.Swap(ctx, transition.A, transition.B, func(ctx context.Context, first int, second int) error {
		return a.Client.SwapStandings(ctx, tournamentID, shared.StandingsSwapRequest{
			Group:   group,
			TeamID1: first,
			TeamID2: second,
		})
	})
	if err != nil {
		a.Logger.Info("standings swap rejected", "tournament", tournamentID, "group", group, "error", err)
		return transition, err
	}
	a.Logger.Info("standings swapped", "tournament", tournamentID, "group", group, "a", transition.A, "b", transition.B)

	check, err := a.Client.CheckStandingsTies(ctx, tournamentID)
	if err != nil {
		a.Logger.Warn("standings ties refetch failed", "tournament", tournamentID, "error", err)
	} else {
		rec.Reset(logic.StandingsTies(check)[group])
		a.updateGate(standingsTable, tournamentID, func(g *logic.TiebreakGate) { g.HasTies = check.HasTies })
	}
	a.publish(tournamentID, AggregateStandings)
	return transition, nil
}

// ClickBestPlayer applies a click on a player in the best players table, with the same swap handling as
// ClickStandings
func (a *API) ClickBestPlayer(ctx context.Context, tournamentID int, playerID int) (logic.Transition, error) {
	if err := a.requireAdmin(); err != nil {
		return logic.Transition{}, err
	}
	if !a.tiebreakOpen(bestPlayersTable, tournamentID) {
		return logic.Transition{}, errTiebreakClosed
	}

	rec := a.existingBestPlayersReconciler(tournamentID)
	transition := rec.Click(playerID)
	if transition.Kind != logic.SwapRequested {
		return transition, nil
	}

	err := rec.Swap(ctx, transition.A, transition.B, func(ctx context.Context, first int, second int) error {
		return a.Client.SwapBestPlayers(ctx, tournamentID, shared.BestPlayersSwapRequest{
			PlayerID1: first,
			PlayerID2: second,
		})
	})
	if err != nil {
		a.Logger.Info("best players swap rejected", "tournament", tournamentID, "error", err)
		return transition, err
	}
	a.Logger.Info("best players swapped", "tournament", tournamentID, "a", transition.A, "b", transition.B)

	check, err := a.Client.CheckBestPlayersTies(ctx, tournamentID)
	if err != nil {
		a.Logger.Warn("best players ties refetch failed", "tournament", tournamentID, "error", err)
	} else {
		rec.Reset(logic.PlayerTies(check))
		a.updateGate(bestPlayersTable, tournamentID, func(g *logic.TiebreakGate) { g.HasTies = check.HasTies })
	}
	a.publish(tournamentID, AggregateBestPlayers)
	return transition, nil
}

// existingStandingsReconciler returns the reconciler of a group without touching its ties. A group that has not
// been loaded yet gets an empty reconciler, on which every click is a no-op
func (a *API) existingStandingsReconciler(tournamentID int, group int) *logic.Reconciler {
	a.mu.Lock()
	defer a.mu.Unlock()

	groups, ok := a.standings[tournamentID]
	if !ok {
		groups = make(map[int]*logic.Reconciler)
		a.standings[tournamentID] = groups
	}
	rec, ok := groups[group]
	if !ok {
		rec = logic.NewReconciler(nil)
		groups[group] = rec
	}
	return rec
}

func (a *API) existingBestPlayersReconciler(tournamentID int) *logic.Reconciler {
	a.mu.Lock()
	defer a.mu.Unlock()

	rec, ok := a.bestPlayers[tournamentID]
	if !ok {
		rec = logic.NewReconciler(nil)
		a.bestPlayers[tournamentID] = rec
	}
	return rec
}

// ValidateStandings locks the group standings. Nothing local changes on failure
func (a *API) ValidateStandings(ctx context.Context, tournamentID int) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := a.Client.ValidateStandings(ctx, tournamentID); err != nil {
		return err
	}
	a.Logger.Info("standings validated", "tournament", tournamentID)
	a.updateGate(standingsTable, tournamentID, func(g *logic.TiebreakGate) { g.Validated = true })
	a.publish(tournamentID, AggregateStandings)
	return nil
}

// ValidateBestPlayers locks the best players table. Nothing local changes on failure
func (a *API) ValidateBestPlayers(ctx context.Context, tournamentID int) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := a.Client.ValidateBestPlayers(ctx, tournamentID); err != nil {
		return err
	}
	a.Logger.Info("best players validated", "tournament", tournamentID)
	a.updateGate(bestPlayersTable, tournamentID, func(g *logic.TiebreakGate) { g.Validated = true })
	a.publish(tournamentID, AggregateBestPlayers)
	return nil
}
