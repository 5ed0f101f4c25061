/* results_test.go
 * Contains unit tests for results.go and guards.go
 */

package logic

import (
	"errors"
	"testing"

	"chess-tournament-ui/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/xorcare/pointer"
)

// TestNextBoardResult_ToggleOff tests that choosing the same result twice sends the board back to pending
func TestNextBoardResult_ToggleOff(t *testing.T) {
	first := NextBoardResult(shared.ResultPending, shared.ResultWhiteWin)
	assert.Equal(t, shared.ResultWhiteWin, first)

	second := NextBoardResult(first, shared.ResultWhiteWin)
	assert.Equal(t, shared.ResultPending, second)
}

func TestNextBoardResult_Change(t *testing.T) {
	assert.Equal(t, shared.ResultDraw, NextBoardResult(shared.ResultWhiteWin, shared.ResultDraw))
	assert.Equal(t, shared.ResultPending, NextBoardResult(shared.ResultPending, shared.ResultPending))
}

func TestBoardColorOrder(t *testing.T) {
	assert.Equal(t, [2]Side{SideWhite, SideBlack}, BoardColorOrder(1))
	assert.Equal(t, [2]Side{SideBlack, SideWhite}, BoardColorOrder(2))
	assert.Equal(t, [2]Side{SideWhite, SideBlack}, BoardColorOrder(3))
}

// region guard tests

func TestValidateTournamentInput(t *testing.T) {
	tests := []struct {
		name    string
		input   shared.TournamentInput
		wantErr bool
	}{
		{"valid round robin", shared.TournamentInput{Name: "Spring Cup", Format: shared.FormatRoundRobin, TotalRounds: 7}, false},
		{"empty name", shared.TournamentInput{Name: "  ", Format: shared.FormatRoundRobin, TotalRounds: 7}, true},
		{"unknown format", shared.TournamentInput{Name: "Cup", Format: "ladder", TotalRounds: 7}, true},
		{"zero rounds", shared.TournamentInput{Name: "Cup", Format: shared.FormatSwiss}, true},
		{"no knockout rounds left", shared.TournamentInput{Name: "Cup", Format: shared.FormatGroupKnockout, TotalRounds: 5, TotalGroupStageRounds: 5}, true},
		{"valid group knockout", shared.TournamentInput{Name: "Cup", Format: shared.FormatGroupKnockout, TotalRounds: 5, TotalGroupStageRounds: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTournamentInput(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrGuard)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTournamentUpdate(t *testing.T) {
	assert.NoError(t, ValidateTournamentUpdate(shared.TournamentUpdate{}))
	assert.NoError(t, ValidateTournamentUpdate(shared.TournamentUpdate{Name: pointer.String("Renamed")}))
	assert.ErrorIs(t, ValidateTournamentUpdate(shared.TournamentUpdate{Name: pointer.String("")}), ErrGuard)
	assert.ErrorIs(t, ValidateTournamentUpdate(shared.TournamentUpdate{TotalRounds: pointer.Int(0)}), ErrGuard)
}

func TestValidateRoster(t *testing.T) {
	assert.ErrorIs(t, ValidateRosterRemoval(4), ErrGuard)
	assert.NoError(t, ValidateRosterRemoval(5))
	assert.ErrorIs(t, ValidateRosterAddition(6), ErrGuard)
	assert.NoError(t, ValidateRosterAddition(5))
}

func TestGuardError_Message(t *testing.T) {
	err := ValidateAnnouncement(shared.AnnouncementInput{Content: "body only"})

	var guardErr *GuardError
	assert.True(t, errors.As(err, &guardErr))
	assert.Equal(t, "title", guardErr.Field)
	assert.Equal(t, "Announcement title is required", err.Error())
}

func TestValidateResults(t *testing.T) {
	assert.NoError(t, ValidateBoardResult(shared.ResultDraw))
	assert.ErrorIs(t, ValidateBoardResult(shared.ResultTiebreaker), ErrGuard)
	assert.NoError(t, ValidateTiebreakerResult(shared.ResultBlackWin))
	assert.ErrorIs(t, ValidateTiebreakerResult(shared.ResultDraw), ErrGuard)
}

// endregion
