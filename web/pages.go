/* pages.go
 * Contains the handlers that render the console pages
 */

package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"chess-tournament-ui/api/api"
	"chess-tournament-ui/api/logic"
	"chess-tournament-ui/api/shared"
)

// swapForm is the data of the player swap page
type swapForm struct {
	MatchID     int
	Board       int
	OutPlayerID int
	Candidates  []shared.SwapCandidate
}

// handleIndex sends the browser to the tab last shown for the current tournament. Without a current tournament
// the operator lands on the tournament list
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	t, err := s.api.CurrentTournament(r.Context())
	if errors.Is(err, api.ErrNoTournament) {
		redirect(w, r, "/"+tabAdmin)
		return
	}
	if err != nil {
		s.logger.Error("failed to load the current tournament", "error", err)
		s.render(w, statusFor(err), "error", page{
			Auth:     s.api.Auth.Snapshot(),
			Error:    classify(err, "load tournament"),
			RetryURL: "/",
		})
		return
	}
	redirect(w, r, "/"+s.api.ActiveTab(r.Context(), t.ID))
}

func (s *Server) handleTab(tab string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderTab(w, r, tab, http.StatusOK, "", nil)
	}
}

// handleSwapForm lists the players that can be moved onto a board
func (s *Server) handleSwapForm(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.Atoi(chi.URLParam(r, "matchID"))
	if err != nil {
		http.Error(w, "Invalid match", http.StatusBadRequest)
		return
	}
	board, err := strconv.Atoi(chi.URLParam(r, "board"))
	if err != nil {
		http.Error(w, "Invalid board", http.StatusBadRequest)
		return
	}

	view, err := s.api.LoadSchedule(r.Context(), "")
	if err != nil {
		s.renderLoadError(w, r, tabSchedule, err)
		return
	}
	out, ok := playerOnBoard(view, matchID, board)
	if !ok {
		http.Error(w, "Board not found", http.StatusNotFound)
		return
	}

	candidates, err := s.api.SwapCandidates(r.Context(), matchID, board)
	if err != nil {
		s.renderLoadError(w, r, tabSchedule, err)
		return
	}

	s.render(w, http.StatusOK, "swap", page{
		Tab:        tabSchedule,
		Tournament: view.Tournament,
		Auth:       view.Auth,
		Data: swapForm{
			MatchID:     matchID,
			Board:       board,
			OutPlayerID: out,
			Candidates:  candidates,
		},
	})
}

// playerOnBoard finds the player of the home team on a board
func playerOnBoard(view api.ScheduleView, matchID int, board int) (int, bool) {
	for _, round := range view.Rounds {
		for _, m := range round.Matches {
			if m.ID != matchID {
				continue
			}
			g, ok := m.Game(board)
			if !ok {
				return 0, false
			}
			if logic.BoardColorOrder(board)[0] == logic.SideWhite {
				return g.WhitePlayerID, true
			}
			return g.BlackPlayerID, true
		}
	}
	return 0, false
}
