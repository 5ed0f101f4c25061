/* admin.go
 * Contains the tournament, announcement and team editor actions
 */

package api

import (
	"context"
	"fmt"

	"chess-tournament-ui/api/logic"
	"chess-tournament-ui/api/shared"

	"golang.org/x/sync/errgroup"
)

// region tournaments

func (a *API) CreateTournament(ctx context.Context, input shared.TournamentInput) (shared.Tournament, error) {
	if err := a.requireAdmin(); err != nil {
		return shared.Tournament{}, err
	}
	if err := logic.ValidateTournamentInput(input); err != nil {
		return shared.Tournament{}, err
	}
	t, err := a.Client.CreateTournament(ctx, input)
	if err != nil {
		return shared.Tournament{}, err
	}
	a.Logger.Info("tournament created", "tournament", t.ID, "name", t.Name, "format", t.Format)
	a.publish(t.ID, AggregateTournament)
	return t, nil
}

func (a *API) UpdateTournament(ctx context.Context, id int, update shared.TournamentUpdate) (shared.Tournament, error) {
	if err := a.requireAdmin(); err != nil {
		return shared.Tournament{}, err
	}
	if err := logic.ValidateTournamentUpdate(update); err != nil {
		return shared.Tournament{}, err
	}
	t, err := a.Client.UpdateTournament(ctx, id, update)
	if err != nil {
		return shared.Tournament{}, err
	}
	a.publish(id, AggregateTournament)
	return t, nil
}

// DeleteTournament deletes a tournament. Deleting the current tournament invalidates every open view
func (a *API) DeleteTournament(ctx context.Context, id int) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	current, err := a.CurrentTournament(ctx)
	wasCurrent := err == nil && current.ID == id

	if err := a.Client.DeleteTournament(ctx, id); err != nil {
		return err
	}
	a.Logger.Info("tournament deleted", "tournament", id)
	if wasCurrent {
		a.Invalidate()
	}
	a.publish(id, AggregateTournament)
	return nil
}

// SetCurrentTournament switches the tournament shown by the console
func (a *API) SetCurrentTournament(ctx context.Context, id int) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := a.Client.SetCurrentTournament(ctx, id); err != nil {
		return err
	}
	a.Logger.Info("current tournament changed", "tournament", id)
	a.Invalidate()
	a.publish(id, AggregateTournament)
	return nil
}

// endregion

// region announcements

func (a *API) CreateAnnouncement(ctx context.Context, tournamentID int, input shared.AnnouncementInput) (shared.Announcement, error) {
	if err := a.requireAdmin(); err != nil {
		return shared.Announcement{}, err
	}
	if err := logic.ValidateAnnouncement(input); err != nil {
		return shared.Announcement{}, err
	}
	created, err := a.Client.CreateAnnouncement(ctx, tournamentID, input)
	if err != nil {
		return shared.Announcement{}, err
	}
	a.publish(tournamentID, AggregateNews)
	return created, nil
}

func (a *API) UpdateAnnouncement(ctx context.Context, tournamentID int, id int, input shared.AnnouncementInput) (shared.Announcement, error) {
	if err := a.requireAdmin(); err != nil {
		return shared.Announcement{}, err
	}
	if err := logic.ValidateAnnouncement(input); err != nil {
		return shared.Announcement{}, err
	}
	updated, err := a.Client.UpdateAnnouncement(ctx, tournamentID, id, input)
	if err != nil {
		return shared.Announcement{}, err
	}
	a.publish(tournamentID, AggregateNews)
	return updated, nil
}

func (a *API) DeleteAnnouncement(ctx context.Context, tournamentID int, id int) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := a.Client.DeleteAnnouncement(ctx, tournamentID, id); err != nil {
		return err
	}
	a.publish(tournamentID, AggregateNews)
	return nil
}

// endregion

// region teams and players

// SaveTeam saves the team editor: the team name and every player row are sent concurrently.
// Preconditions: edits holds one entry per roster row shown in the editor
// Postconditions: returns nil only if every request succeeded. A failure is reported as a single error and the
// requests that did succeed are not rolled back
func (a *API) SaveTeam(ctx context.Context, tournamentID int, teamID int, name string, edits []PlayerEdit) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := logic.ValidateTeamName(name); err != nil {
		return err
	}
	for _, edit := range edits {
		if edit.Update.Name != nil {
			if err := logic.ValidatePlayerInput(shared.PlayerInput{Name: *edit.Update.Name, TeamID: teamID}); err != nil {
				return err
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := a.Client.UpdateTeam(gctx, teamID, shared.TeamUpdate{Name: &name})
		return err
	})
	for _, edit := range edits {
		g.Go(func() error {
			if _, err := a.Client.UpdatePlayer(gctx, edit.PlayerID, edit.Update); err != nil {
				return fmt.Errorf("player %d: %w", edit.PlayerID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.Logger.Warn("team editor save failed", "team", teamID, "error", err)
		return err
	}

	a.publish(tournamentID, AggregateTeams)
	return nil
}

// AddPlayer adds a player to a team whose roster currently has rosterSize players
func (a *API) AddPlayer(ctx context.Context, tournamentID int, rosterSize int, input shared.PlayerInput) (shared.Player, error) {
	if err := a.requireAdmin(); err != nil {
		return shared.Player{}, err
	}
	if err := logic.ValidatePlayerInput(input); err != nil {
		return shared.Player{}, err
	}
	if err := logic.ValidateRosterAddition(rosterSize); err != nil {
		return shared.Player{}, err
	}
	p, err := a.Client.CreatePlayer(ctx, input)
	if err != nil {
		return shared.Player{}, err
	}
	a.publish(tournamentID, AggregateTeams)
	return p, nil
}

// RemovePlayer removes a player from a team whose roster currently has rosterSize players
func (a *API) RemovePlayer(ctx context.Context, tournamentID int, rosterSize int, playerID int) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := logic.ValidateRosterRemoval(rosterSize); err != nil {
		return err
	}
	if err := a.Client.DeletePlayer(ctx, playerID); err != nil {
		return err
	}
	a.publish(tournamentID, AggregateTeams)
	return nil
}

// endregion
