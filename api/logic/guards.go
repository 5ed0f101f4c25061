/* guards.go
 * Contains the local checks run before a mutation is sent. A failed check never reaches the backend
 */

package logic

import (
	"errors"
	"strings"

	"chess-tournament-ui/api/shared"
)

const (
	MinPlayersPerTeam = 4
	MaxPlayersPerTeam = 6
)

// ErrGuard is matched by every GuardError
var ErrGuard = errors.New("rejected before sending")

// GuardError is a local validation failure. Message is shown to the operator as is
type GuardError struct {
	Field   string
	Message string
}

func (e *GuardError) Error() string {
	return e.Message
}

func (e *GuardError) Is(target error) bool {
	return target == ErrGuard
}

func guard(field string, message string) error {
	return &GuardError{Field: field, Message: message}
}

var formats = map[string]bool{
	shared.FormatRoundRobin:    true,
	shared.FormatGroupKnockout: true,
	shared.FormatSwiss:         true,
}

// ValidateTournamentInput checks a new tournament before it is created
func ValidateTournamentInput(input shared.TournamentInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return guard("name", "Tournament name is required")
	}
	if !formats[input.Format] {
		return guard("format", "Unknown tournament format")
	}
	if input.TotalRounds <= 0 {
		return guard("total_rounds", "Number of rounds must be positive")
	}
	if input.Format == shared.FormatGroupKnockout && input.TotalGroupStageRounds >= input.TotalRounds {
		return guard("total_group_stage_rounds", "Group stage must leave rounds for the knockout stage")
	}
	return nil
}

// ValidateTournamentUpdate checks the fields of an update that are being changed
func ValidateTournamentUpdate(update shared.TournamentUpdate) error {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return guard("name", "Tournament name is required")
	}
	if update.Format != nil && !formats[*update.Format] {
		return guard("format", "Unknown tournament format")
	}
	if update.TotalRounds != nil && *update.TotalRounds <= 0 {
		return guard("total_rounds", "Number of rounds must be positive")
	}
	return nil
}

// ValidateRosterRemoval checks that a team keeps the minimum number of players after removing one
func ValidateRosterRemoval(currentSize int) error {
	if currentSize-1 < MinPlayersPerTeam {
		return guard("players", "A team must have at least 4 players")
	}
	return nil
}

// ValidateRosterAddition checks that a team stays within the maximum number of players after adding one
func ValidateRosterAddition(currentSize int) error {
	if currentSize+1 > MaxPlayersPerTeam {
		return guard("players", "A team can have at most 6 players")
	}
	return nil
}

// ValidatePlayerInput checks a player before it is created
func ValidatePlayerInput(input shared.PlayerInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return guard("name", "Player name is required")
	}
	if input.TeamID <= 0 {
		return guard("team_id", "Player must belong to a team")
	}
	return nil
}

// ValidateTeamName checks a renamed team
func ValidateTeamName(name string) error {
	if strings.TrimSpace(name) == "" {
		return guard("name", "Team name is required")
	}
	return nil
}

// ValidateAnnouncement checks an announcement before it is created or updated
func ValidateAnnouncement(input shared.AnnouncementInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return guard("title", "Announcement title is required")
	}
	return nil
}

// ValidateBoardResult checks a board result before it is submitted
func ValidateBoardResult(result string) error {
	if !ValidBoardResult(result) {
		return guard("result", "Unknown board result")
	}
	return nil
}

// ValidateTiebreakerResult checks a tiebreaker result before it is submitted
func ValidateTiebreakerResult(result string) error {
	if !ValidTiebreakerResult(result) {
		return guard("result", "Tiebreaker must be won by white or black")
	}
	return nil
}
