/* test_mocks.go
 * Contains mock structures for testing the API package and its consumers
 */

package api

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"chess-tournament-ui/api/auth"
	"chess-tournament-ui/api/external"
	"chess-tournament-ui/api/shared"
	"chess-tournament-ui/api/store"

	"github.com/golang-jwt/jwt/v4"
)

// MockToken signs a token for subject that expires at expires. The signature is never checked by the console
func MockToken(subject string, expires time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString([]byte("mock-secret"))
	if err != nil {
		panic(err)
	}
	return signed
}

// NewMockAPI creates an API over backend with an in memory preference store. When admin is true the operator is
// logged in with admin mode on
func NewMockAPI(ctx context.Context, backend *MockBackend, admin bool) (*API, error) {
	prefs := store.NewMemoryStore()
	if backend.LoginToken == "" {
		backend.LoginToken = MockToken("admin", time.Now().Add(time.Hour))
	}
	authState := auth.NewState(prefs, backend)

	a, err := NewAPI(backend, prefs, authState, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return nil, err
	}
	if admin {
		if err := a.Login(ctx, "admin", "admin"); err != nil {
			return nil, err
		}
		if _, err := a.ToggleAdminMode(ctx); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// MockBackend implements external.Interface for testing. It keeps enough state to answer the loaders and records
// every call made to it
type MockBackend struct {
	mu sync.Mutex

	// Storage for mock data
	Current         *shared.Tournament
	Tournaments     []shared.Tournament
	Matches         []shared.Match
	Teams           []shared.Team
	Players         []shared.Player
	Standings       []shared.StandingsEntry
	StandingsTies   shared.StandingsTieCheck
	BestPlayers     []shared.BestPlayerEntry
	BestPlayerTies  shared.BestPlayersTieCheck
	Announcements   []shared.Announcement
	SwapCandidateIn []shared.SwapCandidate
	LoginToken      string

	// Error injection for testing error paths, keyed by method name
	Errors map[string]error

	// Calls records the method names in call order
	Calls []string
	// SubmittedResults records the result sent by each SubmitBoardResult call
	SubmittedResults []string
	StandingsSwaps   []shared.StandingsSwapRequest
	PlayerSwaps      []shared.BestPlayersSwapRequest
	UpdatedPlayers   []int
}

// Ensure MockBackend implements external.Interface
var _ external.Interface = (*MockBackend)(nil)

// NewMockBackend creates a MockBackend with a current tournament
func NewMockBackend(t shared.Tournament) *MockBackend {
	return &MockBackend{
		Current:     &t,
		Tournaments: []shared.Tournament{t},
		Errors:      make(map[string]error),
	}
}

func (m *MockBackend) record(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, method)
	return m.Errors[method]
}

// CallCount returns how often method was called
func (m *MockBackend) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.Calls {
		if c == method {
			count++
		}
	}
	return count
}

func (m *MockBackend) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[method] = err
}

func (m *MockBackend) Login(ctx context.Context, username string, password string) (string, error) {
	if err := m.record("Login"); err != nil {
		return "", err
	}
	return m.LoginToken, nil
}

func (m *MockBackend) GetCurrentTournament(ctx context.Context) (shared.Tournament, error) {
	if err := m.record("GetCurrentTournament"); err != nil {
		return shared.Tournament{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Current == nil {
		return shared.Tournament{}, &external.APIError{StatusCode: 404, Detail: "No current tournament"}
	}
	return *m.Current, nil
}

func (m *MockBackend) ListTournaments(ctx context.Context) ([]shared.Tournament, error) {
	if err := m.record("ListTournaments"); err != nil {
		return nil, err
	}
	return m.Tournaments, nil
}

func (m *MockBackend) CreateTournament(ctx context.Context, input shared.TournamentInput) (shared.Tournament, error) {
	if err := m.record("CreateTournament"); err != nil {
		return shared.Tournament{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := shared.Tournament{
		ID:                    len(m.Tournaments) + 1,
		Name:                  input.Name,
		Format:                input.Format,
		Stage:                 shared.StageNotYetStarted,
		TotalRounds:           input.TotalRounds,
		TotalGroupStageRounds: input.TotalGroupStageRounds,
	}
	m.Tournaments = append(m.Tournaments, t)
	return t, nil
}

func (m *MockBackend) UpdateTournament(ctx context.Context, id int, update shared.TournamentUpdate) (shared.Tournament, error) {
	if err := m.record("UpdateTournament"); err != nil {
		return shared.Tournament{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Tournaments {
		if m.Tournaments[i].ID == id {
			if update.Name != nil {
				m.Tournaments[i].Name = *update.Name
			}
			return m.Tournaments[i], nil
		}
	}
	return shared.Tournament{}, &external.APIError{StatusCode: 404, Detail: "Tournament not found"}
}

func (m *MockBackend) DeleteTournament(ctx context.Context, id int) error {
	return m.record("DeleteTournament")
}

func (m *MockBackend) SetCurrentTournament(ctx context.Context, id int) error {
	if err := m.record("SetCurrentTournament"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Tournaments {
		if m.Tournaments[i].ID == id {
			t := m.Tournaments[i]
			m.Current = &t
		}
	}
	return nil
}

func (m *MockBackend) StartTournament(ctx context.Context, id int) error {
	return m.record("StartTournament")
}

func (m *MockBackend) CompleteTournament(ctx context.Context, id int) error {
	return m.record("CompleteTournament")
}

func (m *MockBackend) GetStandings(ctx context.Context, id int) ([]shared.StandingsEntry, error) {
	if err := m.record("GetStandings"); err != nil {
		return nil, err
	}
	return m.Standings, nil
}

func (m *MockBackend) GetBestPlayers(ctx context.Context, id int) ([]shared.BestPlayerEntry, error) {
	if err := m.record("GetBestPlayers"); err != nil {
		return nil, err
	}
	return m.BestPlayers, nil
}

func (m *MockBackend) CheckStandingsTies(ctx context.Context, id int) (shared.StandingsTieCheck, error) {
	if err := m.record("CheckStandingsTies"); err != nil {
		return shared.StandingsTieCheck{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.StandingsTies, nil
}

func (m *MockBackend) CheckBestPlayersTies(ctx context.Context, id int) (shared.BestPlayersTieCheck, error) {
	if err := m.record("CheckBestPlayersTies"); err != nil {
		return shared.BestPlayersTieCheck{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.BestPlayerTies, nil
}

func (m *MockBackend) SwapStandings(ctx context.Context, id int, req shared.StandingsSwapRequest) error {
	if err := m.record("SwapStandings"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StandingsSwaps = append(m.StandingsSwaps, req)
	return nil
}

func (m *MockBackend) SwapBestPlayers(ctx context.Context, id int, req shared.BestPlayersSwapRequest) error {
	if err := m.record("SwapBestPlayers"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerSwaps = append(m.PlayerSwaps, req)
	return nil
}

func (m *MockBackend) ValidateStandings(ctx context.Context, id int) error {
	return m.record("ValidateStandings")
}

func (m *MockBackend) ValidateBestPlayers(ctx context.Context, id int) error {
	return m.record("ValidateBestPlayers")
}

func (m *MockBackend) RescheduleRound(ctx context.Context, id int, round int, req shared.RescheduleRequest) error {
	return m.record("RescheduleRound")
}

func (m *MockBackend) CompleteRound(ctx context.Context, id int, round int) error {
	return m.record("CompleteRound")
}

func (m *MockBackend) ListAnnouncements(ctx context.Context, tournamentID int) ([]shared.Announcement, error) {
	if err := m.record("ListAnnouncements"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]shared.Announcement(nil), m.Announcements...), nil
}

func (m *MockBackend) CreateAnnouncement(ctx context.Context, tournamentID int, input shared.AnnouncementInput) (shared.Announcement, error) {
	if err := m.record("CreateAnnouncement"); err != nil {
		return shared.Announcement{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a := shared.Announcement{
		ID:           len(m.Announcements) + 1,
		TournamentID: tournamentID,
		Title:        input.Title,
		Content:      input.Content,
		Pinned:       input.Pinned,
	}
	m.Announcements = append(m.Announcements, a)
	return a, nil
}

func (m *MockBackend) UpdateAnnouncement(ctx context.Context, tournamentID int, id int, input shared.AnnouncementInput) (shared.Announcement, error) {
	if err := m.record("UpdateAnnouncement"); err != nil {
		return shared.Announcement{}, err
	}
	return shared.Announcement{ID: id, TournamentID: tournamentID, Title: input.Title, Content: input.Content, Pinned: input.Pinned}, nil
}

func (m *MockBackend) DeleteAnnouncement(ctx context.Context, tournamentID int, id int) error {
	return m.record("DeleteAnnouncement")
}

func (m *MockBackend) ListTeams(ctx context.Context, tournamentID int) ([]shared.Team, error) {
	if err := m.record("ListTeams"); err != nil {
		return nil, err
	}
	return m.Teams, nil
}

func (m *MockBackend) GetTeam(ctx context.Context, id int) (shared.Team, error) {
	if err := m.record("GetTeam"); err != nil {
		return shared.Team{}, err
	}
	for _, t := range m.Teams {
		if t.ID == id {
			return t, nil
		}
	}
	return shared.Team{}, &external.APIError{StatusCode: 404, Detail: "Team not found"}
}

func (m *MockBackend) UpdateTeam(ctx context.Context, id int, update shared.TeamUpdate) (shared.Team, error) {
	if err := m.record("UpdateTeam"); err != nil {
		return shared.Team{}, err
	}
	team := shared.Team{ID: id}
	if update.Name != nil {
		team.Name = *update.Name
	}
	return team, nil
}

func (m *MockBackend) ListPlayers(ctx context.Context, filter external.PlayerFilter) ([]shared.Player, error) {
	if err := m.record("ListPlayers"); err != nil {
		return nil, err
	}
	if filter.TeamID == 0 {
		return m.Players, nil
	}
	var players []shared.Player
	for _, p := range m.Players {
		if p.TeamID == filter.TeamID {
			players = append(players, p)
		}
	}
	return players, nil
}

func (m *MockBackend) GetPlayer(ctx context.Context, id int) (shared.Player, error) {
	if err := m.record("GetPlayer"); err != nil {
		return shared.Player{}, err
	}
	for _, p := range m.Players {
		if p.ID == id {
			return p, nil
		}
	}
	return shared.Player{}, &external.APIError{StatusCode: 404, Detail: "Player not found"}
}

func (m *MockBackend) CreatePlayer(ctx context.Context, input shared.PlayerInput) (shared.Player, error) {
	if err := m.record("CreatePlayer"); err != nil {
		return shared.Player{}, err
	}
	return shared.Player{ID: 1000, Name: input.Name, TeamID: input.TeamID, Rating: input.Rating}, nil
}

func (m *MockBackend) UpdatePlayer(ctx context.Context, id int, update shared.PlayerUpdate) (shared.Player, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, "UpdatePlayer")
	m.UpdatedPlayers = append(m.UpdatedPlayers, id)
	err := m.Errors["UpdatePlayer"]
	m.mu.Unlock()
	if err != nil {
		return shared.Player{}, err
	}
	return shared.Player{ID: id}, nil
}

func (m *MockBackend) DeletePlayer(ctx context.Context, id int) error {
	return m.record("DeletePlayer")
}

// ListMatches returns the stored matches of a round, or every match when round is 0
func (m *MockBackend) ListMatches(ctx context.Context, tournamentID int, round int) ([]shared.Match, error) {
	if err := m.record("ListMatches"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var matches []shared.Match
	for _, match := range m.Matches {
		if round <= 0 || match.RoundNumber == round {
			match.Games = append([]shared.Game(nil), match.Games...)
			matches = append(matches, match)
		}
	}
	return matches, nil
}

// SubmitBoardResult stores the result on the board's game, creating the game if needed
func (m *MockBackend) SubmitBoardResult(ctx context.Context, matchID int, board int, result string) (shared.Match, error) {
	if err := m.record("SubmitBoardResult"); err != nil {
		return shared.Match{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubmittedResults = append(m.SubmittedResults, result)
	for i := range m.Matches {
		if m.Matches[i].ID != matchID {
			continue
		}
		for j := range m.Matches[i].Games {
			if m.Matches[i].Games[j].BoardNumber == board {
				m.Matches[i].Games[j].Result = result
				return m.Matches[i], nil
			}
		}
		m.Matches[i].Games = append(m.Matches[i].Games, shared.Game{BoardNumber: board, Result: result})
		return m.Matches[i], nil
	}
	return shared.Match{}, &external.APIError{StatusCode: 404, Detail: "Match not found"}
}

func (m *MockBackend) SubmitTiebreakerResult(ctx context.Context, matchID int, result string) (shared.Match, error) {
	if err := m.record("SubmitTiebreakerResult"); err != nil {
		return shared.Match{}, err
	}
	return shared.Match{ID: matchID, TiebreakerResult: result}, nil
}

func (m *MockBackend) GetSwapCandidates(ctx context.Context, matchID int, board int) ([]shared.SwapCandidate, error) {
	if err := m.record("GetSwapCandidates"); err != nil {
		return nil, err
	}
	return m.SwapCandidateIn, nil
}

func (m *MockBackend) SwapPlayers(ctx context.Context, matchID int, req shared.SwapPlayersRequest) error {
	return m.record("SwapPlayers")
}

func (m *MockBackend) SwapColors(ctx context.Context, matchID int) error {
	return m.record("SwapColors")
}
