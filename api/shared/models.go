/* models.go
 * This file contains the structs that are shared between sub packages. They mirror the JSON documents returned
 * by the tournament backend; every field here is owned by the server and only ever cached by the console
 */

package shared

import "time"

// Tournament formats
const (
	FormatRoundRobin    = "round_robin"
	FormatGroupKnockout = "group_knockout"
	FormatSwiss         = "swiss"
)

// Tournament stages
const (
	StageNotYetStarted = "not_yet_started"
	StageGroup         = "group"
	StageSemiFinal     = "semi_final"
	StageFinal         = "final"
	StageCompleted     = "completed"
)

// Match and game results
const (
	ResultPending    = "pending"
	ResultWhiteWin   = "white_win"
	ResultBlackWin   = "black_win"
	ResultDraw       = "draw"
	ResultTiebreaker = "tiebreaker"
)

// Match labels used by the knockout stage
const (
	LabelGroup      = "group"
	LabelSF1        = "SF1"
	LabelSF2        = "SF2"
	LabelFinal      = "Final"
	LabelThirdPlace = "3rd Place"
)

// User is the operator currently logged in to the console
type User struct {
	Username string
	Admin    bool
}

type Tournament struct {
	ID                      int    `json:"id"`
	Name                    string `json:"name"`
	Format                  string `json:"format"`
	Stage                   string `json:"stage"`
	CurrentRound            int    `json:"current_round"`
	TotalRounds             int    `json:"total_rounds"`
	TotalGroupStageRounds   int    `json:"total_group_stage_rounds"`
	GroupStandingsValidated bool   `json:"group_standings_validated"`
	BestPlayersValidated    bool   `json:"best_players_validated"`
	IsCurrent               bool   `json:"is_current,omitempty"`
}

// FinalGroupRound is the last round whose results feed the group standings
func (t Tournament) FinalGroupRound() int {
	if t.Format == FormatGroupKnockout && t.TotalGroupStageRounds > 0 {
		return t.TotalGroupStageRounds
	}
	return t.TotalRounds
}

type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	TournamentID int    `json:"tournament_id"`
	Group        int    `json:"group,omitempty"`
}

type Player struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	TeamID int    `json:"team_id"`
	Rating int    `json:"rating,omitempty"`
}

type Game struct {
	ID            int    `json:"id"`
	BoardNumber   int    `json:"board_number"`
	WhitePlayerID int    `json:"white_player_id"`
	BlackPlayerID int    `json:"black_player_id"`
	Result        string `json:"result"`
}

type Match struct {
	ID               int     `json:"id"`
	TournamentID     int     `json:"tournament_id"`
	RoundNumber      int     `json:"round_number"`
	WhiteTeamID      int     `json:"white_team_id"`
	BlackTeamID      int     `json:"black_team_id"`
	Result           string  `json:"result"`
	IsCompleted      bool    `json:"is_completed"`
	WhiteScore       float64 `json:"white_score"`
	BlackScore       float64 `json:"black_score"`
	TiebreakerResult string  `json:"tiebreaker_result,omitempty"`
	Label            string  `json:"label,omitempty"`
	Games            []Game  `json:"games,omitempty"`
}

// White returns the white side of the match as a TeamRef
func (m Match) White() TeamRef {
	return ResolveTeamRef(m.WhiteTeamID)
}

// Black returns the black side of the match as a TeamRef
func (m Match) Black() TeamRef {
	return ResolveTeamRef(m.BlackTeamID)
}

// Game returns the game played on a board, or false if the board has no game yet
func (m Match) Game(board int) (Game, bool) {
	for _, g := range m.Games {
		if g.BoardNumber == board {
			return g, true
		}
	}
	return Game{}, false
}

type StandingsEntry struct {
	Position        int     `json:"position"`
	TeamID          int     `json:"team_id"`
	TeamName        string  `json:"team_name"`
	Group           int     `json:"group,omitempty"`
	MatchesPlayed   int     `json:"matches_played"`
	Wins            int     `json:"wins"`
	Draws           int     `json:"draws"`
	Losses          int     `json:"losses"`
	MatchPoints     float64 `json:"match_points"`
	GamePoints      float64 `json:"game_points"`
	SonnebornBerger float64 `json:"sonneborn_berger"`
}

type BestPlayerEntry struct {
	Position    int     `json:"position"`
	PlayerID    int     `json:"player_id"`
	PlayerName  string  `json:"player_name"`
	TeamID      int     `json:"team_id"`
	TeamName    string  `json:"team_name"`
	GamesPlayed int     `json:"games_played"`
	Points      float64 `json:"points"`
	Percentage  float64 `json:"percentage"`
	BoardNumber int     `json:"board_number,omitempty"`
}

// StandingsTieCheck maps group -> team id -> ids of the teams it is tied with. Keys are strings because they
// arrive as JSON object keys
type StandingsTieCheck struct {
	HasTies bool                        `json:"has_ties"`
	Groups  map[string]map[string][]int `json:"groups"`
}

// BestPlayersTieCheck maps player id -> ids of the players it is tied with
type BestPlayersTieCheck struct {
	HasTies bool             `json:"has_ties"`
	Ties    map[string][]int `json:"ties"`
}

type Announcement struct {
	ID           int       `json:"id"`
	TournamentID int       `json:"tournament_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Pinned       bool      `json:"pinned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SwapCandidate is a player that can be moved onto a board of a match
type SwapCandidate struct {
	PlayerID    int    `json:"player_id"`
	PlayerName  string `json:"player_name"`
	TeamID      int    `json:"team_id"`
	BoardNumber int    `json:"board_number,omitempty"`
}

// Message is the body returned by mutating endpoints that do not return a resource
type Message struct {
	Message string `json:"message"`
}
