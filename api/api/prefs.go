/* prefs.go
 * Contains the per tournament UI preferences: the active tab and which matches are expanded. They only restore
 * layout and are never read as domain data
 */

package api

import (
	"context"
	"errors"
	"fmt"

	"chess-tournament-ui/api/store"
)

var tabs = map[string]bool{
	TabSchedule:    true,
	TabStandings:   true,
	TabTeams:       true,
	TabBestPlayers: true,
	TabAdmin:       true,
}

func tabKey(tournamentID int) store.Key {
	return store.Key{Namespace: "ui.tab", TournamentID: tournamentID, Name: "active"}
}

func expandedKey(tournamentID int) store.Key {
	return store.Key{Namespace: "ui.expanded", TournamentID: tournamentID, Name: "matches"}
}

// ActiveTab returns the last tab opened for a tournament, defaulting to the schedule
func (a *API) ActiveTab(ctx context.Context, tournamentID int) string {
	tab, err := a.Store.Get(ctx, tabKey(tournamentID))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.Logger.Warn("failed to read active tab", "tournament", tournamentID, "error", err)
		}
		return TabSchedule
	}
	if !tabs[tab] {
		return TabSchedule
	}
	return tab
}

func (a *API) SetActiveTab(ctx context.Context, tournamentID int, tab string) error {
	if !tabs[tab] {
		return fmt.Errorf("unknown tab %q", tab)
	}
	return a.Store.Set(ctx, tabKey(tournamentID), tab)
}

// ExpandedMatches returns the ids of the matches shown expanded on the schedule
func (a *API) ExpandedMatches(ctx context.Context, tournamentID int) (map[int]bool, error) {
	ids, err := store.GetIntSet(ctx, a.Store, expandedKey(tournamentID))
	if err != nil {
		return nil, err
	}
	expanded := make(map[int]bool, len(ids))
	for _, id := range ids {
		expanded[id] = true
	}
	return expanded, nil
}

// ToggleExpanded flips the expanded state of one match and returns the new state
func (a *API) ToggleExpanded(ctx context.Context, tournamentID int, matchID int) (bool, error) {
	expanded, err := a.ExpandedMatches(ctx, tournamentID)
	if err != nil {
		a.Logger.Warn("discarding unreadable expanded matches", "tournament", tournamentID, "error", err)
		expanded = make(map[int]bool)
	}

	open := !expanded[matchID]
	ids := make([]int, 0, len(expanded)+1)
	for id := range expanded {
		if id != matchID {
			ids = append(ids, id)
		}
	}
	if open {
		ids = append(ids, matchID)
	}

	if err := store.SetIntSet(ctx, a.Store, expandedKey(tournamentID), ids); err != nil {
		return !open, err
	}
	return open, nil
}
