/* results.go
 * Contains the board result entry rules
 */

package logic

import "chess-tournament-ui/api/shared"

var boardResults = map[string]bool{
	shared.ResultPending:  true,
	shared.ResultWhiteWin: true,
	shared.ResultBlackWin: true,
	shared.ResultDraw:     true,
}

// ValidBoardResult reports whether result can be submitted for a single board
func ValidBoardResult(result string) bool {
	return boardResults[result]
}

// NextBoardResult returns the result to submit when the operator picks chosen on a board currently showing
// current. Picking the result the board already has sets it back to pending
func NextBoardResult(current string, chosen string) string {
	if chosen == current && chosen != shared.ResultPending {
		return shared.ResultPending
	}
	return chosen
}

// ValidTiebreakerResult reports whether result can decide a drawn knockout match
func ValidTiebreakerResult(result string) bool {
	return result == shared.ResultWhiteWin || result == shared.ResultBlackWin
}

// Side is a colour shown in a board row
type Side string

const (
	SideWhite Side = "white"
	SideBlack Side = "black"
)

// BoardColorOrder returns the order in which the home team's colours are shown for a board. Odd boards have white
// first and even boards black first
func BoardColorOrder(board int) [2]Side {
	if board%2 == 1 {
		return [2]Side{SideWhite, SideBlack}
	}
	return [2]Side{SideBlack, SideWhite}
}
