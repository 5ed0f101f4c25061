/* interface.go
 * Contains the Interface implemented by Client, used for dependency injection and testing
 */

package external

import (
	"context"

	"chess-tournament-ui/api/shared"
)

// Interface defines every backend operation the console relies on.
// This allows for mocking in tests.
type Interface interface {
	// Auth
	Login(ctx context.Context, username string, password string) (string, error)

	// Tournaments
	GetCurrentTournament(ctx context.Context) (shared.Tournament, error)
	ListTournaments(ctx context.Context) ([]shared.Tournament, error)
	CreateTournament(ctx context.Context, input shared.TournamentInput) (shared.Tournament, error)
	UpdateTournament(ctx context.Context, id int, update shared.TournamentUpdate) (shared.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error
	SetCurrentTournament(ctx context.Context, id int) error
	StartTournament(ctx context.Context, id int) error
	CompleteTournament(ctx context.Context, id int) error
	GetStandings(ctx context.Context, id int) ([]shared.StandingsEntry, error)
	GetBestPlayers(ctx context.Context, id int) ([]shared.BestPlayerEntry, error)
	CheckStandingsTies(ctx context.Context, id int) (shared.StandingsTieCheck, error)
	CheckBestPlayersTies(ctx context.Context, id int) (shared.BestPlayersTieCheck, error)
	SwapStandings(ctx context.Context, id int, req shared.StandingsSwapRequest) error
	SwapBestPlayers(ctx context.Context, id int, req shared.BestPlayersSwapRequest) error
	ValidateStandings(ctx context.Context, id int) error
	ValidateBestPlayers(ctx context.Context, id int) error
	RescheduleRound(ctx context.Context, id int, round int, req shared.RescheduleRequest) error
	CompleteRound(ctx context.Context, id int, round int) error

	// Announcements
	ListAnnouncements(ctx context.Context, tournamentID int) ([]shared.Announcement, error)
	CreateAnnouncement(ctx context.Context, tournamentID int, input shared.AnnouncementInput) (shared.Announcement, error)
	UpdateAnnouncement(ctx context.Context, tournamentID int, id int, input shared.AnnouncementInput) (shared.Announcement, error)
	DeleteAnnouncement(ctx context.Context, tournamentID int, id int) error

	// Teams
	ListTeams(ctx context.Context, tournamentID int) ([]shared.Team, error)
	GetTeam(ctx context.Context, id int) (shared.Team, error)
	UpdateTeam(ctx context.Context, id int, update shared.TeamUpdate) (shared.Team, error)

	// Players
	ListPlayers(ctx context.Context, filter PlayerFilter) ([]shared.Player, error)
	GetPlayer(ctx context.Context, id int) (shared.Player, error)
	CreatePlayer(ctx context.Context, input shared.PlayerInput) (shared.Player, error)
	UpdatePlayer(ctx context.Context, id int, update shared.PlayerUpdate) (shared.Player, error)
	DeletePlayer(ctx context.Context, id int) error

	// Matches
	ListMatches(ctx context.Context, tournamentID int, round int) ([]shared.Match, error)
	SubmitBoardResult(ctx context.Context, matchID int, board int, result string) (shared.Match, error)
	SubmitTiebreakerResult(ctx context.Context, matchID int, result string) (shared.Match, error)
	GetSwapCandidates(ctx context.Context, matchID int, board int) ([]shared.SwapCandidate, error)
	SwapPlayers(ctx context.Context, matchID int, req shared.SwapPlayersRequest) error
	SwapColors(ctx context.Context, matchID int) error
}

// PlayerFilter narrows ListPlayers. Zero values are not sent
type PlayerFilter struct {
	TeamID       int
	TournamentID int
}
