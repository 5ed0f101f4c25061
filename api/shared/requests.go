/* requests.go
 * Contains the request bodies sent to the tournament backend
 */

package shared

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type TournamentInput struct {
	Name                  string `json:"name"`
	Format                string `json:"format"`
	TotalRounds           int    `json:"total_rounds"`
	TotalGroupStageRounds int    `json:"total_group_stage_rounds,omitempty"`
}

// TournamentUpdate only sends the fields that are set
type TournamentUpdate struct {
	Name                  *string `json:"name,omitempty"`
	Format                *string `json:"format,omitempty"`
	TotalRounds           *int    `json:"total_rounds,omitempty"`
	TotalGroupStageRounds *int    `json:"total_group_stage_rounds,omitempty"`
}

type TeamUpdate struct {
	Name  *string `json:"name,omitempty"`
	Group *int    `json:"group,omitempty"`
}

type PlayerInput struct {
	Name   string `json:"name"`
	TeamID int    `json:"team_id"`
	Rating int    `json:"rating,omitempty"`
}

type PlayerUpdate struct {
	Name   *string `json:"name,omitempty"`
	TeamID *int    `json:"team_id,omitempty"`
	Rating *int    `json:"rating,omitempty"`
}

type AnnouncementInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Pinned  bool   `json:"pinned"`
}

type ResultRequest struct {
	Result string `json:"result"`
}

type SwapPlayersRequest struct {
	BoardNumber int `json:"board_number"`
	OutPlayerID int `json:"out_player_id"`
	InPlayerID  int `json:"in_player_id"`
}

type StandingsSwapRequest struct {
	Group   int `json:"group"`
	TeamID1 int `json:"team_id_1"`
	TeamID2 int `json:"team_id_2"`
}

type BestPlayersSwapRequest struct {
	PlayerID1 int `json:"player_id_1"`
	PlayerID2 int `json:"player_id_2"`
}

type RescheduleRequest struct {
	Date string `json:"date"`
}
