/* views.go
 * Contains the loaders for each tab. Each load fetches the current tournament first, then fans out the
 * independent requests and joins them before building the view
 */

package api

import (
	"context"
	"errors"
	"sort"

	"chess-tournament-ui/api/external"
	"chess-tournament-ui/api/logic"
	"chess-tournament-ui/api/shared"

	"golang.org/x/sync/errgroup"
)

// LoadSchedule builds the schedule for the current tournament, filtered by query
func (a *API) LoadSchedule(ctx context.Context, query string) (ScheduleView, error) {
	generation := a.guard.begin()

	t, err := a.CurrentTournament(ctx)
	if err != nil {
		return ScheduleView{}, err
	}

	var (
		matches []shared.Match
		teams   []shared.Team
		players []shared.Player
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = a.Client.ListMatches(gctx, t.ID, 0)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = a.Client.ListTeams(gctx, t.ID)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = a.Client.ListPlayers(gctx, external.PlayerFilter{TournamentID: t.ID})
		return err
	})
	if err := g.Wait(); err != nil {
		return ScheduleView{}, err
	}

	expanded, err := a.ExpandedMatches(ctx, t.ID)
	if err != nil {
		a.Logger.Warn("ignoring unreadable expanded matches", "tournament", t.ID, "error", err)
		expanded = make(map[int]bool)
	}

	if err := a.guard.check(generation); err != nil {
		return ScheduleView{}, err
	}

	playerIndex := make(map[int]shared.Player, len(players))
	for _, p := range players {
		playerIndex[p.ID] = p
	}

	return ScheduleView{
		Tournament:   t,
		Rounds:       logic.GroupByRound(t, logic.FilterMatches(matches, teams, query)),
		Teams:        logic.IndexTeams(teams),
		Players:      playerIndex,
		Query:        query,
		CurrentRound: t.CurrentRound,
		Expanded:     expanded,
		Auth:         a.Auth.Snapshot(),
	}, nil
}

// LoadStandings builds the standings tables with their tiebreak state
func (a *API) LoadStandings(ctx context.Context) (StandingsView, error) {
	generation := a.guard.begin()

	t, err := a.CurrentTournament(ctx)
	if err != nil {
		return StandingsView{}, err
	}

	var (
		entries []shared.StandingsEntry
		check   shared.StandingsTieCheck
		final   []shared.Match
	)
	finalRound := t.FinalGroupRound()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = a.Client.GetStandings(gctx, t.ID)
		return err
	})
	g.Go(func() error {
		var err error
		check, err = a.Client.CheckStandingsTies(gctx, t.ID)
		return err
	})
	g.Go(func() error {
		if finalRound <= 0 {
			return nil
		}
		var err error
		final, err = a.Client.ListMatches(gctx, t.ID, finalRound)
		return err
	})
	if err := g.Wait(); err != nil {
		return StandingsView{}, err
	}

	if err := a.guard.check(generation); err != nil {
		return StandingsView{}, err
	}

	gate := logic.TiebreakGate{
		FinalRoundCompleted: logic.FinalRoundCompleted(final, finalRound),
		Validated:           t.GroupStandingsValidated,
		AdminMode:           a.Auth.AdminMode(),
		HasTies:             check.HasTies,
	}

	a.recordGate(standingsTable, t.ID, gate)

	ties := logic.StandingsTies(check)
	byGroup := make(map[int][]shared.StandingsEntry)
	for _, e := range entries {
		byGroup[e.Group] = append(byGroup[e.Group], e)
	}
	groupIDs := make([]int, 0, len(byGroup))
	for group := range byGroup {
		groupIDs = append(groupIDs, group)
	}
	sort.Ints(groupIDs)

	groups := make([]StandingsGroup, 0, len(groupIDs))
	for _, group := range groupIDs {
		rec := a.standingsReconciler(t.ID, group, ties[group])
		groups = append(groups, StandingsGroup{
			Group:     group,
			Entries:   byGroup[group],
			Ties:      ties[group],
			Selection: rec.Selection(),
		})
	}

	return StandingsView{
		Tournament:   t,
		Groups:       groups,
		Gate:         gate,
		ShowTiebreak: gate.Visible(),
		ShowValidate: gate.ValidateVisible(),
		Auth:         a.Auth.Snapshot(),
	}, nil
}

// LoadBestPlayers builds the best players table with its tiebreak state
func (a *API) LoadBestPlayers(ctx context.Context) (BestPlayersView, error) {
	generation := a.guard.begin()

	t, err := a.CurrentTournament(ctx)
	if err != nil {
		return BestPlayersView{}, err
	}

	var (
		entries []shared.BestPlayerEntry
		check   shared.BestPlayersTieCheck
		final   []shared.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = a.Client.GetBestPlayers(gctx, t.ID)
		return err
	})
	g.Go(func() error {
		var err error
		check, err = a.Client.CheckBestPlayersTies(gctx, t.ID)
		return err
	})
	g.Go(func() error {
		if t.TotalRounds <= 0 {
			return nil
		}
		var err error
		final, err = a.Client.ListMatches(gctx, t.ID, t.TotalRounds)
		return err
	})
	if err := g.Wait(); err != nil {
		return BestPlayersView{}, err
	}

	if err := a.guard.check(generation); err != nil {
		return BestPlayersView{}, err
	}

	gate := logic.TiebreakGate{
		FinalRoundCompleted: logic.FinalRoundCompleted(final, t.TotalRounds),
		Validated:           t.BestPlayersValidated,
		AdminMode:           a.Auth.AdminMode(),
		HasTies:             check.HasTies,
	}
	a.recordGate(bestPlayersTable, t.ID, gate)
	ties := logic.PlayerTies(check)
	rec := a.bestPlayersReconciler(t.ID, ties)

	return BestPlayersView{
		Tournament:   t,
		Entries:      entries,
		Ties:         ties,
		Selection:    rec.Selection(),
		Gate:         gate,
		ShowTiebreak: gate.Visible(),
		ShowValidate: gate.ValidateVisible(),
		Auth:         a.Auth.Snapshot(),
	}, nil
}

// LoadTeams returns every team of the current tournament with its roster
func (a *API) LoadTeams(ctx context.Context) (TeamsView, error) {
	generation := a.guard.begin()

	t, err := a.CurrentTournament(ctx)
	if err != nil {
		return TeamsView{}, err
	}

	var (
		teams   []shared.Team
		players []shared.Player
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = a.Client.ListTeams(gctx, t.ID)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = a.Client.ListPlayers(gctx, external.PlayerFilter{TournamentID: t.ID})
		return err
	})
	if err := g.Wait(); err != nil {
		return TeamsView{}, err
	}

	if err := a.guard.check(generation); err != nil {
		return TeamsView{}, err
	}

	byTeam := make(map[int][]shared.Player)
	for _, p := range players {
		byTeam[p.TeamID] = append(byTeam[p.TeamID], p)
	}

	rosters := make([]TeamRoster, 0, len(teams))
	for _, team := range teams {
		rosters = append(rosters, TeamRoster{Team: team, Players: byTeam[team.ID]})
	}
	sort.SliceStable(rosters, func(i, j int) bool {
		return rosters[i].Team.Name < rosters[j].Team.Name
	})

	return TeamsView{Tournament: t, Teams: rosters, Auth: a.Auth.Snapshot()}, nil
}

// LoadAdmin returns every tournament and the announcements of the current one. Having no current tournament is
// not an error here, since this is where one is created
func (a *API) LoadAdmin(ctx context.Context) (AdminView, error) {
	generation := a.guard.begin()

	var (
		tournaments []shared.Tournament
		current     shared.Tournament
		hasCurrent  bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournaments, err = a.Client.ListTournaments(gctx)
		return err
	})
	g.Go(func() error {
		t, err := a.CurrentTournament(gctx)
		if errors.Is(err, ErrNoTournament) {
			return nil
		}
		if err != nil {
			return err
		}
		current, hasCurrent = t, true
		return nil
	})
	if err := g.Wait(); err != nil {
		return AdminView{}, err
	}

	var announcements []shared.Announcement
	if hasCurrent {
		var err error
		announcements, err = a.Client.ListAnnouncements(ctx, current.ID)
		if err != nil {
			return AdminView{}, err
		}
	}

	if err := a.guard.check(generation); err != nil {
		return AdminView{}, err
	}

	return AdminView{
		Tournaments:   tournaments,
		Current:       current,
		HasCurrent:    hasCurrent,
		Announcements: announcements,
		Auth:          a.Auth.Snapshot(),
	}, nil
}

// LoadAnnouncements returns the announcements of the current tournament, pinned first
func (a *API) LoadAnnouncements(ctx context.Context) ([]shared.Announcement, error) {
	t, err := a.CurrentTournament(ctx)
	if err != nil {
		return nil, err
	}
	announcements, err := a.Client.ListAnnouncements(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(announcements, func(i, j int) bool {
		if announcements[i].Pinned != announcements[j].Pinned {
			return announcements[i].Pinned
		}
		return announcements[i].CreatedAt.After(announcements[j].CreatedAt)
	})
	return announcements, nil
}
