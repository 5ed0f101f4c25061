/* actions.go
 * Contains the handlers of the console forms. A successful submission redirects back to its tab, a failed one
 * shows the tab again with the error and the submitted values
 */

package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/xorcare/pointer"

	"chess-tournament-ui/api/api"
	"chess-tournament-ui/api/logic"
	"chess-tournament-ui/api/shared"
)

// region form helpers

// formInt reads a required integer form field
func formInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.PostFormValue(key))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &logic.GuardError{Field: key, Message: fmt.Sprintf("Invalid value for %s", strings.ReplaceAll(key, "_", " "))}
	}
	return v, nil
}

// urlInt reads an integer route parameter
func urlInt(r *http.Request, key string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, key))
	if err != nil {
		return 0, &logic.GuardError{Field: key, Message: "Invalid request"}
	}
	return v, nil
}

// formTab is the tab a form was submitted from, schedule if it is missing or unknown
func formTab(r *http.Request) string {
	tab := r.PostFormValue("tab")
	if _, ok := tabLabels[tab]; ok {
		return tab
	}
	return tabSchedule
}

// ids reads the tournament id form field and the given route parameters
func ids(r *http.Request, params ...string) (int, []int, error) {
	tournamentID, err := formInt(r, "tournament_id")
	if err != nil {
		return 0, nil, err
	}
	values := make([]int, len(params))
	for i, param := range params {
		if values[i], err = urlInt(r, param); err != nil {
			return 0, nil, err
		}
	}
	return tournamentID, values, nil
}

// endregion

// region session

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	tab := formTab(r)
	if err := s.api.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password")); err != nil {
		s.formFailed(w, r, tab, "log in", err)
		return
	}
	redirect(w, r, "/"+tab)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.api.Logout(r.Context()); err != nil {
		s.formFailed(w, r, tabSchedule, "log out", err)
		return
	}
	redirect(w, r, "/")
}

func (s *Server) handleToggleAdminMode(w http.ResponseWriter, r *http.Request) {
	tab := formTab(r)
	if _, err := s.api.ToggleAdminMode(r.Context()); err != nil {
		s.formFailed(w, r, tab, "switch mode", err)
		return
	}
	redirect(w, r, "/"+tab)
}

// endregion

// region schedule

func (s *Server) handleToggleExpanded(w http.ResponseWriter, r *http.Request) {
	tournamentID, v, err := ids(r, "matchID")
	if err != nil {
		s.formFailed(w, r, tabSchedule, "expand match", err)
		return
	}
	if _, err := s.api.ToggleExpanded(r.Context(), tournamentID, v[0]); err != nil {
		s.formFailed(w, r, tabSchedule, "expand match", err)
		return
	}
	redirect(w, r, fmt.Sprintf("/schedule#match-%d", v[0]))
}

func (s *Server) handleBoardResult(w http.ResponseWriter, r *http.Request) {
	tournamentID, v, err := ids(r, "matchID", "board")
	if err != nil {
		s.formFailed(w, r, tabSchedule, "save result", err)
		return
	}
	_, err = s.api.SubmitBoardResult(r.Context(), tournamentID, v[0], v[1], r.PostFormValue("current"), r.PostFormValue("result"))
	if err != nil {
		s.formFailed(w, r, tabSchedule, "save result", err)
		return
	}
	redirect(w, r, fmt.Sprintf("/schedule#match-%d", v[0]))
}

func (s *Server) handleTiebreaker(w http.ResponseWriter, r *http.Request) {
	tournamentID, v, err := ids(r, "matchID")
	if err != nil {
		s.formFailed(w, r, tabSchedule, "save tiebreaker", err)
		return
	}
	if _, err := s.api.SubmitTiebreakerResult(r.Context(), tournamentID, v[0], r.PostFormValue("result")); err != nil {
		s.formFailed(w, r, tabSchedule, "save tiebreaker", err)
		return
	}
	redirect(w, r, fmt.Sprintf("/schedule#match-%d", v[0]))
}

func (s *Server) handleSwapPlayers(w http.ResponseWriter, r *http.Request) {
	tournamentID, v, err := ids(r, "matchID")
	if err != nil {
		s.formFailed(w, r, tabSchedule, "swap players", err)
		return
	}
	var req shared.SwapPlayersRequest
	if req.BoardNumber, err = formInt(r, "board"); err == nil {
		if req.OutPlayerID, err = formInt(r, "out_player_id"); err == nil {
			req.InPlayerID, err = formInt(r, "in_player_id")
		}
	}
	if err != nil {
		s.formFailed(w, r, tabSchedule, "swap players", err)
		return
	}
	if _, err := s.api.SwapPlayers(r.Context(), tournamentID, v[0], req); err != nil {
		s.formFailed(w, r, tabSchedule, "swap players", err)
		return
	}
	redirect(w, r, fmt.Sprintf("/schedule#match-%d", v[0]))
}

func (s *Server) handleSwapColors(w http.ResponseWriter, r *http.Request) {
	tournamentID, v, err := ids(r, "matchID")
	if err != nil {
		s.formFailed(w, r, tabSchedule, "swap colors", err)
		return
	}
	if _, err := s.api.SwapColors(r.Context(), tournamentID, v[0]); err != nil {
		s.formFailed(w, r, tabSchedule, "swap colors", err)
		return
	}
	redirect(w, r, fmt.Sprintf("/schedule#match-%d", v[0]))
}

func (s *Server) handleRescheduleRound(w http.ResponseWriter, r *http.Request) {
	tournamentID, v, err := ids(r, "round")
	if err != nil {
		s.formFailed(w, r, tabSchedule, "reschedule round", err)
		return
	}
	if _, err := s.api.RescheduleRound(r.Context(), tournamentID, v[0], r.PostFormValue("date")); err != nil {
		s.formFailed(w, r, tabSchedule, "reschedule round", err)
		return
	}
	redirect(w, r, fmt.Sprintf("/schedule#round-%d", v[0]))
}

func (s *Server) handleCompleteRound(w http.ResponseWriter, r *http.Request) {
	tournamentID, v, err := ids(r, "round")
	if err != nil {
		s.formFailed(w, r, tabSchedule, "complete round", err)
		return
	}
	if _, err := s.api.CompleteRound(r.Context(), tournamentID, v[0]); err != nil {
		s.formFailed(w, r, tabSchedule, "complete round", err)
		return
	}
	redirect(w, r, "/"+tabSchedule)
}

// endregion

// region tiebreaks

func (s *Server) handleStandingsClick(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := formInt(r, "tournament_id")
	var group, team int
	if err == nil {
		if group, err = formInt(r, "group"); err == nil {
			team, err = formInt(r, "team")
		}
	}
	if err != nil {
		s.formFailed(w, r, tabStandings, "update standings", err)
		return
	}
	if _, err := s.api.ClickStandings(r.Context(), tournamentID, group, team); err != nil {
		s.formFailed(w, r, tabStandings, "update standings", err)
		return
	}
	redirect(w, r, fmt.Sprintf("/standings#group-%d", group))
}

func (s *Server) handleValidateStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := formInt(r, "tournament_id")
	if err == nil {
		err = s.api.ValidateStandings(r.Context(), tournamentID)
	}
	if err != nil {
		s.formFailed(w, r, tabStandings, "lock standings", err)
		return
	}
	redirect(w, r, "/"+tabStandings)
}

func (s *Server) handleBestPlayerClick(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := formInt(r, "tournament_id")
	var player int
	if err == nil {
		player, err = formInt(r, "player")
	}
	if err != nil {
		s.formFailed(w, r, tabBestPlayers, "update best players", err)
		return
	}
	if _, err := s.api.ClickBestPlayer(r.Context(), tournamentID, player); err != nil {
		s.formFailed(w, r, tabBestPlayers, "update best players", err)
		return
	}
	redirect(w, r, "/"+tabBestPlayers)
}

func (s *Server) handleValidateBestPlayers(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := formInt(r, "tournament_id")
	if err == nil {
		err = s.api.ValidateBestPlayers(r.Context(), tournamentID)
	}
	if err != nil {
		s.formFailed(w, r, tabBestPlayers, "lock best players", err)
		return
	}
	redirect(w, r, "/"+tabBestPlayers)
}

// endregion

// region teams

// handleSaveTeam reads the team editor. The player fields are parallel lists with one entry per roster row
func (s *Server) handleSaveTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, v, err := ids(r, "teamID")
	if err != nil {
		s.formFailed(w, r, tabTeams, "save team", err)
		return
	}
	edits, err := playerEdits(r)
	if err != nil {
		s.formFailed(w, r, tabTeams, "save team", err)
		return
	}
	if err := s.api.SaveTeam(r.Context(), tournamentID, v[0], strings.TrimSpace(r.PostFormValue("name")), edits); err != nil {
		s.formFailed(w, r, tabTeams, "save team", err)
		return
	}
	redirect(w, r, fmt.Sprintf("/teams#team-%d", v[0]))
}

func playerEdits(r *http.Request) ([]api.PlayerEdit, error) {
	playerIDs := r.PostForm["player_id"]
	names := r.PostForm["player_name"]
	ratings := r.PostForm["player_rating"]
	if len(names) != len(playerIDs) || len(ratings) != len(playerIDs) {
		return nil, &logic.GuardError{Field: "players", Message: "Invalid request"}
	}

	edits := make([]api.PlayerEdit, 0, len(playerIDs))
	for i := range playerIDs {
		id, err := strconv.Atoi(playerIDs[i])
		if err != nil {
			return nil, &logic.GuardError{Field: "player_id", Message: "Invalid request"}
		}
		update := shared.PlayerUpdate{Name: pointer.String(strings.TrimSpace(names[i]))}
		if raw := strings.TrimSpace(ratings[i]); raw != "" {
			rating, err := strconv.Atoi(raw)
			if err != nil {
				return nil, &logic.GuardError{Field: "player_rating", Message: "Rating must be a number"}
			}
			update.Rating = pointer.Int(rating)
		}
		edits = append(edits, api.PlayerEdit{PlayerID: id, Update: update})
	}
	return edits, nil
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	tournamentID, v, err := ids(r, "teamID")
	var size int
	if err == nil {
		size, err = formInt(r, "roster_size")
	}
	if err != nil {
		s.formFailed(w, r, tabTeams, "add player", err)
		return
	}
	input := shared.PlayerInput{Name: strings.TrimSpace(r.PostFormValue("name")), TeamID: v[0]}
	if raw := strings.TrimSpace(r.PostFormValue("rating")); raw != "" {
		if input.Rating, err = strconv.Atoi(raw); err != nil {
			s.formFailed(w, r, tabTeams, "add player", &logic.GuardError{Field: "rating", Message: "Rating must be a number"})
			return
		}
	}
	if _, err := s.api.AddPlayer(r.Context(), tournamentID, size, input); err != nil {
		s.formFailed(w, r, tabTeams, "add player", err)
		return
	}
	redirect(w, r, fmt.Sprintf("/teams#team-%d", v[0]))
}

func (s *Server) handleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	tournamentID, v, err := ids(r, "playerID")
	var size int
	if err == nil {
		size, err = formInt(r, "roster_size")
	}
	if err == nil {
		err = s.api.RemovePlayer(r.Context(), tournamentID, size, v[0])
	}
	if err != nil {
		s.formFailed(w, r, tabTeams, "remove player", err)
		return
	}
	redirect(w, r, "/"+tabTeams)
}

// endregion

// region tournaments

func (s *Server) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	input := shared.TournamentInput{
		Name:   strings.TrimSpace(r.PostFormValue("name")),
		Format: r.PostFormValue("format"),
	}
	var err error
	if input.TotalRounds, err = formInt(r, "total_rounds"); err != nil {
		s.formFailed(w, r, tabAdmin, "create tournament", err)
		return
	}
	if raw := strings.TrimSpace(r.PostFormValue("total_group_stage_rounds")); raw != "" {
		if input.TotalGroupStageRounds, err = formInt(r, "total_group_stage_rounds"); err != nil {
			s.formFailed(w, r, tabAdmin, "create tournament", err)
			return
		}
	}
	if _, err := s.api.CreateTournament(r.Context(), input); err != nil {
		s.formFailed(w, r, tabAdmin, "create tournament", err)
		return
	}
	redirect(w, r, "/"+tabAdmin)
}

func (s *Server) handleUpdateTournament(w http.ResponseWriter, r *http.Request) {
	id, err := urlInt(r, "tournamentID")
	if err == nil {
		err = r.ParseForm()
	}
	if err != nil {
		s.formFailed(w, r, tabAdmin, "update tournament", err)
		return
	}
	var update shared.TournamentUpdate
	if _, ok := r.PostForm["name"]; ok {
		update.Name = pointer.String(strings.TrimSpace(r.PostFormValue("name")))
	}
	if raw := strings.TrimSpace(r.PostFormValue("total_rounds")); raw != "" {
		rounds, err := formInt(r, "total_rounds")
		if err != nil {
			s.formFailed(w, r, tabAdmin, "update tournament", err)
			return
		}
		update.TotalRounds = pointer.Int(rounds)
	}
	if _, err := s.api.UpdateTournament(r.Context(), id, update); err != nil {
		s.formFailed(w, r, tabAdmin, "update tournament", err)
		return
	}
	redirect(w, r, "/"+tabAdmin)
}

// tournamentAction runs an action on the tournament named in the route
func (s *Server) tournamentAction(action string, tab string, run func(r *http.Request, id int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlInt(r, "tournamentID")
		if err == nil {
			err = run(r, id)
		}
		if err != nil {
			s.formFailed(w, r, tab, action, err)
			return
		}
		redirect(w, r, "/"+tab)
	}
}

func (s *Server) handleDeleteTournament(w http.ResponseWriter, r *http.Request) {
	s.tournamentAction("delete tournament", tabAdmin, func(r *http.Request, id int) error {
		return s.api.DeleteTournament(r.Context(), id)
	})(w, r)
}

func (s *Server) handleSetCurrentTournament(w http.ResponseWriter, r *http.Request) {
	s.tournamentAction("set current tournament", tabAdmin, func(r *http.Request, id int) error {
		return s.api.SetCurrentTournament(r.Context(), id)
	})(w, r)
}

func (s *Server) handleStartTournament(w http.ResponseWriter, r *http.Request) {
	s.tournamentAction("start tournament", tabSchedule, func(r *http.Request, id int) error {
		_, err := s.api.StartTournament(r.Context(), id)
		return err
	})(w, r)
}

func (s *Server) handleCompleteTournament(w http.ResponseWriter, r *http.Request) {
	s.tournamentAction("complete tournament", tabSchedule, func(r *http.Request, id int) error {
		_, err := s.api.CompleteTournament(r.Context(), id)
		return err
	})(w, r)
}

// endregion

// region announcements

func announcementInput(r *http.Request) shared.AnnouncementInput {
	return shared.AnnouncementInput{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Content: strings.TrimSpace(r.PostFormValue("content")),
		Pinned:  r.PostFormValue("pinned") == "true",
	}
}

func (s *Server) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := formInt(r, "tournament_id")
	if err == nil {
		_, err = s.api.CreateAnnouncement(r.Context(), tournamentID, announcementInput(r))
	}
	if err != nil {
		s.formFailed(w, r, tabAdmin, "post announcement", err)
		return
	}
	redirect(w, r, "/"+tabAdmin)
}

func (s *Server) handleUpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	tournamentID, v, err := ids(r, "announcementID")
	if err == nil {
		_, err = s.api.UpdateAnnouncement(r.Context(), tournamentID, v[0], announcementInput(r))
	}
	if err != nil {
		s.formFailed(w, r, tabAdmin, "update announcement", err)
		return
	}
	redirect(w, r, "/"+tabAdmin)
}

func (s *Server) handleDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	tournamentID, v, err := ids(r, "announcementID")
	if err == nil {
		err = s.api.DeleteAnnouncement(r.Context(), tournamentID, v[0])
	}
	if err != nil {
		s.formFailed(w, r, tabAdmin, "delete announcement", err)
		return
	}
	redirect(w, r, "/"+tabAdmin)
}

// endregion
