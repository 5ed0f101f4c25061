/* api_test.go
 * Contains unit tests for the API type: loaders, schedule actions and preferences
 */

package api

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"chess-tournament-ui/api/external"
	"chess-tournament-ui/api/logic"
	"chess-tournament-ui/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(tournamentID int, aggregate string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, aggregate)
}

func roundRobinBackend() *MockBackend {
	backend := NewMockBackend(shared.Tournament{
		ID:           1,
		Name:         "Club Championship",
		Format:       shared.FormatRoundRobin,
		Stage:        shared.StageGroup,
		CurrentRound: 1,
		TotalRounds:  3,
	})
	backend.Teams = []shared.Team{
		{ID: 1, Name: "Knights"},
		{ID: 2, Name: "Rooks"},
		{ID: 3, Name: "Bishops"},
		{ID: 4, Name: "Queens"},
	}
	backend.Matches = []shared.Match{
		{ID: 1, RoundNumber: 1, WhiteTeamID: 1, BlackTeamID: 2},
		{ID: 2, RoundNumber: 1, WhiteTeamID: 3, BlackTeamID: 4},
		{ID: 3, RoundNumber: 2, WhiteTeamID: 1, BlackTeamID: 3},
		{ID: 4, RoundNumber: 2, WhiteTeamID: 2, BlackTeamID: 4},
		{ID: 5, RoundNumber: 3, WhiteTeamID: 1, BlackTeamID: 4},
		{ID: 6, RoundNumber: 3, WhiteTeamID: 2, BlackTeamID: 3},
	}
	return backend
}

func newAPI(t *testing.T, backend *MockBackend, admin bool) *API {
	t.Helper()
	a, err := NewMockAPI(context.Background(), backend, admin)
	require.NoError(t, err)
	return a
}

// region NewAPI tests

func TestNewAPI_MissingDependencies(t *testing.T) {
	_, err := NewAPI(nil, nil, nil, nil)
	if err == nil {
		t.Fatal("Expected error when dependencies are missing, got nil")
	}
	if !strings.Contains(err.Error(), "are required") {
		t.Errorf("Expected error message about required dependencies, got: %s", err.Error())
	}
}

// endregion

// region LoadSchedule tests

// TestLoadSchedule_RoundRobin loads a four team, three round tournament
func TestLoadSchedule_RoundRobin(t *testing.T) {
	a := newAPI(t, roundRobinBackend(), false)

	view, err := a.LoadSchedule(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, view.Rounds, 3)
	assert.Equal(t, "Round 1", view.Rounds[0].Title)
	assert.Equal(t, "Round 2", view.Rounds[1].Title)
	assert.Equal(t, "Round 3", view.Rounds[2].Title)
	assert.Equal(t, 1, view.CurrentRound)
	assert.Equal(t, "Knights", view.Teams.TeamName(shared.ResolveTeamRef(1)))
	assert.False(t, view.Auth.AdminMode)
}

// TestLoadSchedule_GroupKnockout loads a five round group_knockout tournament with placeholder teams
func TestLoadSchedule_GroupKnockout(t *testing.T) {
	backend := NewMockBackend(shared.Tournament{
		ID:                    2,
		Format:                shared.FormatGroupKnockout,
		TotalRounds:           5,
		TotalGroupStageRounds: 3,
	})
	for round := 1; round <= 3; round++ {
		backend.Matches = append(backend.Matches, shared.Match{ID: round, RoundNumber: round, WhiteTeamID: 1, BlackTeamID: 2})
	}
	backend.Matches = append(backend.Matches,
		shared.Match{ID: 10, RoundNumber: 4, WhiteTeamID: -1, BlackTeamID: -2, Label: shared.LabelSF1},
		shared.Match{ID: 11, RoundNumber: 4, WhiteTeamID: -3, BlackTeamID: -4, Label: shared.LabelSF2},
		shared.Match{ID: 12, RoundNumber: 5, WhiteTeamID: -5, BlackTeamID: -6, Label: shared.LabelFinal},
		shared.Match{ID: 13, RoundNumber: 5, WhiteTeamID: -7, BlackTeamID: -8, Label: shared.LabelThirdPlace},
	)
	a := newAPI(t, backend, false)

	view, err := a.LoadSchedule(context.Background(), "")

	require.NoError(t, err)
	var titles []string
	for _, r := range view.Rounds {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"Round 1", "Round 2", "Round 3", "Semi Finals", "Finals"}, titles)
	assert.Equal(t, "Winner SF1", view.Teams.TeamName(view.Rounds[4].Matches[0].White()))
}

func TestLoadSchedule_Filter(t *testing.T) {
	a := newAPI(t, roundRobinBackend(), false)

	view, err := a.LoadSchedule(context.Background(), "queens")

	require.NoError(t, err)
	total := 0
	for _, r := range view.Rounds {
		total += len(r.Matches)
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, "queens", view.Query)
}

func TestLoadSchedule_NoTournament(t *testing.T) {
	backend := roundRobinBackend()
	backend.Current = nil
	a := newAPI(t, backend, false)

	_, err := a.LoadSchedule(context.Background(), "")

	assert.ErrorIs(t, err, ErrNoTournament)
	assert.Equal(t, 0, backend.CallCount("ListMatches"))
}

func TestLoadSchedule_FanOutError(t *testing.T) {
	backend := roundRobinBackend()
	backend.SetError("ListPlayers", external.ErrTransport)
	a := newAPI(t, backend, false)

	_, err := a.LoadSchedule(context.Background(), "")

	assert.ErrorIs(t, err, external.ErrTransport)
}

// switchingBackend invalidates the API while the teams are being fetched, like a tournament switch landing while
// a load is in flight
type switchingBackend struct {
	*MockBackend
	api *API
}

func (s *switchingBackend) ListTeams(ctx context.Context, tournamentID int) ([]shared.Team, error) {
	s.api.Invalidate()
	return s.MockBackend.ListTeams(ctx, tournamentID)
}

func TestLoadSchedule_StaleAfterInvalidate(t *testing.T) {
	a := newAPI(t, roundRobinBackend(), false)
	a.Client = &switchingBackend{MockBackend: a.Client.(*MockBackend), api: a}

	_, err := a.LoadSchedule(context.Background(), "")

	assert.ErrorIs(t, err, ErrStaleView)
}

// endregion

// region schedule action tests

// TestSubmitBoardResult_ToggleOff submits white_win twice on the same board; the second submission sends pending
func TestSubmitBoardResult_ToggleOff(t *testing.T) {
	backend := roundRobinBackend()
	a := newAPI(t, backend, true)
	ctx := context.Background()

	matches, err := a.SubmitBoardResult(ctx, 1, 1, 1, shared.ResultPending, shared.ResultWhiteWin)
	require.NoError(t, err)

	game, ok := matches[0].Game(1)
	require.True(t, ok)
	assert.Equal(t, shared.ResultWhiteWin, game.Result)

	matches, err = a.SubmitBoardResult(ctx, 1, 1, 1, game.Result, shared.ResultWhiteWin)
	require.NoError(t, err)

	game, _ = matches[0].Game(1)
	assert.Equal(t, shared.ResultPending, game.Result)
	assert.Equal(t, []string{shared.ResultWhiteWin, shared.ResultPending}, backend.SubmittedResults)
}

// TestSubmitBoardResult_RefetchesAllRounds checks the whole match list comes back after a mutation
func TestSubmitBoardResult_RefetchesAllRounds(t *testing.T) {
	backend := roundRobinBackend()
	publisher := &recordingPublisher{}
	a := newAPI(t, backend, true)
	a.Events = publisher

	matches, err := a.SubmitBoardResult(context.Background(), 1, 3, 2, shared.ResultPending, shared.ResultDraw)

	require.NoError(t, err)
	assert.Len(t, matches, 6)
	assert.Equal(t, []string{AggregateMatches}, publisher.events)
}

func TestSubmitBoardResult_ServerDetail(t *testing.T) {
	backend := roundRobinBackend()
	backend.SetError("SubmitBoardResult", &external.APIError{StatusCode: 400, Detail: "Round is already completed"})
	a := newAPI(t, backend, true)

	_, err := a.SubmitBoardResult(context.Background(), 1, 1, 1, shared.ResultPending, shared.ResultDraw)

	assert.EqualError(t, err, "Round is already completed")
	assert.Equal(t, 0, backend.CallCount("ListMatches"))
}

func TestSubmitBoardResult_GuardSendsNothing(t *testing.T) {
	backend := roundRobinBackend()
	a := newAPI(t, backend, true)

	_, err := a.SubmitBoardResult(context.Background(), 1, 1, 1, shared.ResultPending, "resigned")

	assert.ErrorIs(t, err, logic.ErrGuard)
	assert.Equal(t, 0, backend.CallCount("SubmitBoardResult"))
}

func TestScheduleActions_Refetch(t *testing.T) {
	ctx := context.Background()
	backend := roundRobinBackend()
	a := newAPI(t, backend, true)

	_, err := a.SwapColors(ctx, 1, 2)
	require.NoError(t, err)
	_, err = a.SwapPlayers(ctx, 1, 2, shared.SwapPlayersRequest{BoardNumber: 1, OutPlayerID: 5, InPlayerID: 6})
	require.NoError(t, err)
	_, err = a.RescheduleRound(ctx, 1, 2, "2025-04-01")
	require.NoError(t, err)
	_, err = a.CompleteRound(ctx, 1, 1)
	require.NoError(t, err)
	_, err = a.SubmitTiebreakerResult(ctx, 1, 2, shared.ResultBlackWin)
	require.NoError(t, err)

	assert.Equal(t, 5, backend.CallCount("ListMatches"))
}

// TestSwapColors_RefetchFailureStillSucceeds checks an accepted mutation is not reported as failed when only the
// follow up match fetch fails
func TestSwapColors_RefetchFailureStillSucceeds(t *testing.T) {
	backend := roundRobinBackend()
	publisher := &recordingPublisher{}
	a := newAPI(t, backend, true)
	a.Events = publisher
	backend.SetError("ListMatches", errors.New("backend unreachable"))

	matches, err := a.SwapColors(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Nil(t, matches)
	assert.Equal(t, 1, backend.CallCount("SwapColors"))
	assert.Equal(t, []string{AggregateMatches}, publisher.events)
}

// TestMutations_RequireAdminMode runs every mutation as a viewer, first logged out and then logged in with admin
// mode off; none of them may reach the backend
func TestMutations_RequireAdminMode(t *testing.T) {
	mutations := map[string]func(ctx context.Context, a *API) error{
		"SubmitBoardResult": func(ctx context.Context, a *API) error {
			_, err := a.SubmitBoardResult(ctx, 1, 1, 1, shared.ResultPending, shared.ResultDraw)
			return err
		},
		"SubmitTiebreakerResult": func(ctx context.Context, a *API) error {
			_, err := a.SubmitTiebreakerResult(ctx, 1, 1, shared.ResultWhiteWin)
			return err
		},
		"SwapPlayers": func(ctx context.Context, a *API) error {
			_, err := a.SwapPlayers(ctx, 1, 1, shared.SwapPlayersRequest{BoardNumber: 1, OutPlayerID: 5, InPlayerID: 6})
			return err
		},
		"SwapColors": func(ctx context.Context, a *API) error {
			_, err := a.SwapColors(ctx, 1, 1)
			return err
		},
		"RescheduleRound": func(ctx context.Context, a *API) error {
			_, err := a.RescheduleRound(ctx, 1, 2, "2025-04-01")
			return err
		},
		"CompleteRound": func(ctx context.Context, a *API) error {
			_, err := a.CompleteRound(ctx, 1, 1)
			return err
		},
		"StartTournament": func(ctx context.Context, a *API) error {
			_, err := a.StartTournament(ctx, 1)
			return err
		},
		"CompleteTournament": func(ctx context.Context, a *API) error {
			_, err := a.CompleteTournament(ctx, 1)
			return err
		},
		"CreateTournament": func(ctx context.Context, a *API) error {
			_, err := a.CreateTournament(ctx, shared.TournamentInput{Name: "Open", Format: shared.FormatSwiss, TotalRounds: 5})
			return err
		},
		"UpdateTournament": func(ctx context.Context, a *API) error {
			name := "Renamed"
			_, err := a.UpdateTournament(ctx, 1, shared.TournamentUpdate{Name: &name})
			return err
		},
		"DeleteTournament":     func(ctx context.Context, a *API) error { return a.DeleteTournament(ctx, 1) },
		"SetCurrentTournament": func(ctx context.Context, a *API) error { return a.SetCurrentTournament(ctx, 1) },
		"CreateAnnouncement": func(ctx context.Context, a *API) error {
			_, err := a.CreateAnnouncement(ctx, 1, shared.AnnouncementInput{Title: "Welcome"})
			return err
		},
		"UpdateAnnouncement": func(ctx context.Context, a *API) error {
			_, err := a.UpdateAnnouncement(ctx, 1, 1, shared.AnnouncementInput{Title: "Welcome"})
			return err
		},
		"DeleteAnnouncement": func(ctx context.Context, a *API) error { return a.DeleteAnnouncement(ctx, 1, 1) },
		"SaveTeam": func(ctx context.Context, a *API) error {
			return a.SaveTeam(ctx, 1, 1, "Knights", []PlayerEdit{{PlayerID: 11}})
		},
		"AddPlayer": func(ctx context.Context, a *API) error {
			_, err := a.AddPlayer(ctx, 1, 4, shared.PlayerInput{Name: "Extra", TeamID: 1})
			return err
		},
		"RemovePlayer": func(ctx context.Context, a *API) error { return a.RemovePlayer(ctx, 1, 5, 11) },
	}

	viewers := map[string]func(t *testing.T, backend *MockBackend) *API{
		"logged out": func(t *testing.T, backend *MockBackend) *API {
			return newAPI(t, backend, false)
		},
		"admin mode off": func(t *testing.T, backend *MockBackend) *API {
			a := newAPI(t, backend, true)
			on, err := a.ToggleAdminMode(context.Background())
			require.NoError(t, err)
			require.False(t, on)
			return a
		},
	}

	for viewer, build := range viewers {
		for name, mutate := range mutations {
			t.Run(viewer+"/"+name, func(t *testing.T) {
				backend := roundRobinBackend()
				a := build(t, backend)
				callsBefore := len(backend.Calls)

				err := mutate(context.Background(), a)

				var guardErr *logic.GuardError
				require.True(t, errors.As(err, &guardErr))
				assert.Equal(t, "Admin mode is required", guardErr.Message)
				assert.Len(t, backend.Calls, callsBefore, "no backend call is made")
			})
		}
	}
}

func TestScheduleActions_Guards(t *testing.T) {
	ctx := context.Background()
	backend := roundRobinBackend()
	a := newAPI(t, backend, true)

	_, err := a.SwapPlayers(ctx, 1, 2, shared.SwapPlayersRequest{BoardNumber: 1, OutPlayerID: 5, InPlayerID: 5})
	assert.ErrorIs(t, err, logic.ErrGuard)
	_, err = a.RescheduleRound(ctx, 1, 2, "")
	assert.ErrorIs(t, err, logic.ErrGuard)
	_, err = a.SubmitTiebreakerResult(ctx, 1, 2, shared.ResultDraw)
	assert.ErrorIs(t, err, logic.ErrGuard)

	assert.Equal(t, 0, backend.CallCount("SwapPlayers"))
	assert.Equal(t, 0, backend.CallCount("RescheduleRound"))
	assert.Equal(t, 0, backend.CallCount("SubmitTiebreakerResult"))
}

// endregion

// region auth tests

func TestLogin_FailureKeepsLoggedOut(t *testing.T) {
	backend := roundRobinBackend()
	a := newAPI(t, backend, false)
	backend.SetError("Login", &external.APIError{StatusCode: 401, Detail: "Incorrect username or password"})

	err := a.Login(context.Background(), "bob", "wrong")

	assert.EqualError(t, err, "Incorrect username or password")
	assert.False(t, a.Auth.Authenticated())
}

func TestToggleAdminMode_RequiresLogin(t *testing.T) {
	a := newAPI(t, roundRobinBackend(), false)

	_, err := a.ToggleAdminMode(context.Background())

	assert.ErrorIs(t, err, logic.ErrGuard)
	assert.False(t, a.Auth.AdminMode())
}

func TestLogout_ClearsAdmin(t *testing.T) {
	a := newAPI(t, roundRobinBackend(), true)
	require.True(t, a.Auth.AdminMode())

	require.NoError(t, a.Logout(context.Background()))

	assert.False(t, a.Auth.Authenticated())
	assert.False(t, a.Auth.AdminMode())
}

// endregion

// region preference tests

func TestActiveTab(t *testing.T) {
	ctx := context.Background()
	a := newAPI(t, roundRobinBackend(), false)

	assert.Equal(t, TabSchedule, a.ActiveTab(ctx, 1))

	require.NoError(t, a.SetActiveTab(ctx, 1, TabStandings))
	assert.Equal(t, TabStandings, a.ActiveTab(ctx, 1))
	assert.Equal(t, TabSchedule, a.ActiveTab(ctx, 2))

	assert.Error(t, a.SetActiveTab(ctx, 1, "settings"))
}

func TestToggleExpanded(t *testing.T) {
	ctx := context.Background()
	a := newAPI(t, roundRobinBackend(), false)

	open, err := a.ToggleExpanded(ctx, 1, 4)
	require.NoError(t, err)
	assert.True(t, open)
	_, err = a.ToggleExpanded(ctx, 1, 6)
	require.NoError(t, err)

	expanded, err := a.ExpandedMatches(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{4: true, 6: true}, expanded)

	open, err = a.ToggleExpanded(ctx, 1, 4)
	require.NoError(t, err)
	assert.False(t, open)

	expanded, _ = a.ExpandedMatches(ctx, 1)
	assert.Equal(t, map[int]bool{6: true}, expanded)

	view, err := a.LoadSchedule(ctx, "")
	require.NoError(t, err)
	assert.True(t, view.Expanded[6])
}

// endregion

// region admin tests

func TestCreateTournament_Guard(t *testing.T) {
	backend := roundRobinBackend()
	a := newAPI(t, backend, true)

	_, err := a.CreateTournament(context.Background(), shared.TournamentInput{Format: shared.FormatSwiss, TotalRounds: 5})

	var guardErr *logic.GuardError
	require.True(t, errors.As(err, &guardErr))
	assert.Equal(t, "Tournament name is required", guardErr.Message)
	assert.Equal(t, 0, backend.CallCount("CreateTournament"))
}

func TestSetCurrentTournament_Invalidates(t *testing.T) {
	ctx := context.Background()
	backend := roundRobinBackend()
	backend.Tournaments = append(backend.Tournaments, shared.Tournament{ID: 9, Name: "Rapid Open", Format: shared.FormatSwiss, TotalRounds: 7})
	a := newAPI(t, backend, true)
	before := a.guard.begin()

	require.NoError(t, a.SetCurrentTournament(ctx, 9))

	assert.ErrorIs(t, a.guard.check(before), ErrStaleView)
	view, err := a.LoadSchedule(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Rapid Open", view.Tournament.Name)
}

func TestLoadAdmin_WithoutCurrentTournament(t *testing.T) {
	backend := roundRobinBackend()
	backend.Current = nil
	a := newAPI(t, backend, true)

	view, err := a.LoadAdmin(context.Background())

	require.NoError(t, err)
	assert.False(t, view.HasCurrent)
	assert.Len(t, view.Tournaments, 1)
	assert.Equal(t, 0, backend.CallCount("ListAnnouncements"))
}

func TestAnnouncements(t *testing.T) {
	ctx := context.Background()
	backend := roundRobinBackend()
	a := newAPI(t, backend, true)

	_, err := a.CreateAnnouncement(ctx, 1, shared.AnnouncementInput{Title: "Round 2 moved", Content: "<p>Now on Sunday</p>"})
	require.NoError(t, err)
	_, err = a.CreateAnnouncement(ctx, 1, shared.AnnouncementInput{Title: "Welcome", Pinned: true})
	require.NoError(t, err)
	_, err = a.CreateAnnouncement(ctx, 1, shared.AnnouncementInput{Title: " "})
	assert.ErrorIs(t, err, logic.ErrGuard)

	news, err := a.LoadAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, news, 2)
	assert.Equal(t, "Welcome", news[0].Title)
}

// TestSaveTeam_PartialFailure checks one failing player update fails the whole save with a single error
func TestSaveTeam_PartialFailure(t *testing.T) {
	backend := roundRobinBackend()
	backend.SetError("UpdatePlayer", &external.APIError{StatusCode: 400, Detail: "Rating must be positive"})
	publisher := &recordingPublisher{}
	a := newAPI(t, backend, true)
	a.Events = publisher

	name := "Renamed"
	err := a.SaveTeam(context.Background(), 1, 1, "Knights", []PlayerEdit{
		{PlayerID: 11, Update: shared.PlayerUpdate{Name: &name}},
		{PlayerID: 12, Update: shared.PlayerUpdate{Name: &name}},
	})

	require.Error(t, err)
	assert.Equal(t, "Rating must be positive", external.DetailOf(err))
	assert.Empty(t, publisher.events)
}

func TestSaveTeam_Success(t *testing.T) {
	backend := roundRobinBackend()
	a := newAPI(t, backend, true)

	err := a.SaveTeam(context.Background(), 1, 1, "Knights", []PlayerEdit{{PlayerID: 11}, {PlayerID: 12}})

	require.NoError(t, err)
	assert.Equal(t, 1, backend.CallCount("UpdateTeam"))
	assert.ElementsMatch(t, []int{11, 12}, backend.UpdatedPlayers)
}

func TestRosterGuards(t *testing.T) {
	ctx := context.Background()
	backend := roundRobinBackend()
	a := newAPI(t, backend, true)

	_, err := a.AddPlayer(ctx, 1, 6, shared.PlayerInput{Name: "Extra", TeamID: 1})
	assert.ErrorIs(t, err, logic.ErrGuard)
	err = a.RemovePlayer(ctx, 1, 4, 11)
	assert.ErrorIs(t, err, logic.ErrGuard)
	assert.Equal(t, 0, backend.CallCount("CreatePlayer"))
	assert.Equal(t, 0, backend.CallCount("DeletePlayer"))

	_, err = a.AddPlayer(ctx, 1, 5, shared.PlayerInput{Name: "Extra", TeamID: 1})
	assert.NoError(t, err)
	assert.NoError(t, a.RemovePlayer(ctx, 1, 5, 11))
}

// endregion
