/* json.go
 * Contains the read-only JSON twins of the public tabs, used by scoreboards and other displays that poll the console
 */

package web

import (
	"encoding/json"
	"net/http"

	"chess-tournament-ui/api/logic"
	"chess-tournament-ui/api/shared"
)

type jsonResponse map[string]any

type roundJSON struct {
	Round       int         `json:"round"`
	Title       string      `json:"title"`
	Type        string      `json:"type"`
	Completable bool        `json:"completable"`
	Pending     int         `json:"pending"`
	Matches     []matchJSON `json:"matches"`
}

type matchJSON struct {
	shared.Match
	WhiteName  string `json:"white_name"`
	BlackName  string `json:"black_name"`
	LabelTitle string `json:"label_title,omitempty"`
}

type scheduleJSON struct {
	Tournament shared.Tournament `json:"tournament"`
	Rounds     []roundJSON       `json:"rounds"`
}

type standingsGroupJSON struct {
	Group   int                     `json:"group"`
	Entries []shared.StandingsEntry `json:"entries"`
}

type standingsJSON struct {
	Tournament shared.Tournament    `json:"tournament"`
	Groups     []standingsGroupJSON `json:"groups"`
	Validated  bool                 `json:"validated"`
}

type bestPlayersJSON struct {
	Tournament shared.Tournament        `json:"tournament"`
	Entries    []shared.BestPlayerEntry `json:"entries"`
	Validated  bool                     `json:"validated"`
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (s *Server) writeJSONError(w http.ResponseWriter, err error, action string) {
	s.logger.Warn("json view failed", "action", action, "error", err)
	if werr := writeJSON(w, statusFor(err), jsonResponse{"detail": classify(err, action)}); werr != nil {
		s.logger.Error("failed to write json error", "error", werr)
	}
}

func (s *Server) handleScheduleJSON(w http.ResponseWriter, r *http.Request) {
	view, err := s.api.LoadSchedule(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeJSONError(w, err, "load schedule")
		return
	}

	out := scheduleJSON{Tournament: view.Tournament, Rounds: make([]roundJSON, 0, len(view.Rounds))}
	for _, bucket := range view.Rounds {
		round := roundJSON{
			Round:       bucket.Round,
			Title:       bucket.Title,
			Type:        string(bucket.Type),
			Completable: bucket.Completable,
			Pending:     bucket.Pending,
			Matches:     make([]matchJSON, 0, len(bucket.Matches)),
		}
		for _, m := range bucket.Matches {
			round.Matches = append(round.Matches, matchJSON{
				Match:      m,
				WhiteName:  view.Teams.TeamName(m.White()),
				BlackName:  view.Teams.TeamName(m.Black()),
				LabelTitle: logic.LabelName(m.Label),
			})
		}
		out.Rounds = append(out.Rounds, round)
	}
	if err := writeJSON(w, http.StatusOK, out); err != nil {
		s.logger.Error("failed to write schedule json", "error", err)
	}
}

func (s *Server) handleStandingsJSON(w http.ResponseWriter, r *http.Request) {
	view, err := s.api.LoadStandings(r.Context())
	if err != nil {
		s.writeJSONError(w, err, "load standings")
		return
	}

	out := standingsJSON{
		Tournament: view.Tournament,
		Groups:     make([]standingsGroupJSON, 0, len(view.Groups)),
		Validated:  view.Tournament.GroupStandingsValidated,
	}
	for _, g := range view.Groups {
		out.Groups = append(out.Groups, standingsGroupJSON{Group: g.Group, Entries: g.Entries})
	}
	if err := writeJSON(w, http.StatusOK, out); err != nil {
		s.logger.Error("failed to write standings json", "error", err)
	}
}

func (s *Server) handleBestPlayersJSON(w http.ResponseWriter, r *http.Request) {
	view, err := s.api.LoadBestPlayers(r.Context())
	if err != nil {
		s.writeJSONError(w, err, "load best players")
		return
	}

	out := bestPlayersJSON{
		Tournament: view.Tournament,
		Entries:    view.Entries,
		Validated:  view.Tournament.BestPlayersValidated,
	}
	if err := writeJSON(w, http.StatusOK, out); err != nil {
		s.logger.Error("failed to write best players json", "error", err)
	}
}
