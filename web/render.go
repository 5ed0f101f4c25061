/* render.go
 * Contains the page model shared by every template and the helpers that load and render a tab
 */

package web

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"chess-tournament-ui/api/api"
	"chess-tournament-ui/api/auth"
	"chess-tournament-ui/api/logic"
	"chess-tournament-ui/api/shared"
)

const (
	tabSchedule    = api.TabSchedule
	tabStandings   = api.TabStandings
	tabTeams       = api.TabTeams
	tabBestPlayers = api.TabBestPlayers
	tabAdmin       = api.TabAdmin
)

var tabLabels = map[string]string{
	tabSchedule:    "schedule",
	tabStandings:   "standings",
	tabTeams:       "teams",
	tabBestPlayers: "best players",
	tabAdmin:       "tournaments",
}

// page is the data passed to every template
type page struct {
	Tab        string
	Tournament shared.Tournament
	Auth       auth.Snapshot
	// Error is an inline message above the tab, set when a form submission failed
	Error string
	// Form holds the values of a failed submission so the operator does not have to type them again
	Form     url.Values
	RetryURL string
	Data     any
}

var templateFuncs = template.FuncMap{
	"teamName": func(teams logic.TeamIndex, ref shared.TeamRef) string {
		return teams.TeamName(ref)
	},
	"playerName": func(players map[int]shared.Player, id int) string {
		if p, ok := players[id]; ok {
			return p.Name
		}
		return fmt.Sprintf("Player %d", id)
	},
	"label": logic.LabelName,
	"whiteFirst": func(board int) bool {
		return logic.BoardColorOrder(board)[0] == logic.SideWhite
	},
	"resultText": func(result string) string {
		switch result {
		case shared.ResultWhiteWin:
			return "1-0"
		case shared.ResultBlackWin:
			return "0-1"
		case shared.ResultDraw:
			return "½-½"
		}
		return "-"
	},
	"boardChoices": func() []string {
		return []string{shared.ResultWhiteWin, shared.ResultDraw, shared.ResultBlackWin}
	},
	"formats": func() []string {
		return []string{shared.FormatRoundRobin, shared.FormatGroupKnockout, shared.FormatSwiss}
	},
	"needsTiebreaker": func(m shared.Match) bool {
		return m.Label != "" && m.Label != shared.LabelGroup && m.IsCompleted &&
			m.WhiteScore == m.BlackScore && m.TiebreakerResult == ""
	},
	"formValue": func(form url.Values, key string, fallback any) string {
		if values, ok := form[key]; ok && len(values) > 0 {
			return values[0]
		}
		return fmt.Sprint(fallback)
	},
	"date": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"tabLabel": func(tab string) string {
		return tabLabels[tab]
	},
}

func parseTemplates() *template.Template {
	return template.Must(template.New("console").Funcs(templateFuncs).Parse(consoleTemplates))
}

// render executes a template into a buffer first so a template error never leaves a half written page
func (s *Server) render(w http.ResponseWriter, status int, name string, p page) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, p); err != nil {
		s.logger.Error("template error", "template", name, "error", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// loadTab fetches the view of a tab
func (s *Server) loadTab(ctx context.Context, tab string, r *http.Request) (any, shared.Tournament, error) {
	switch tab {
	case tabSchedule:
		v, err := s.api.LoadSchedule(ctx, r.URL.Query().Get("q"))
		return v, v.Tournament, err
	case tabStandings:
		v, err := s.api.LoadStandings(ctx)
		return v, v.Tournament, err
	case tabTeams:
		v, err := s.api.LoadTeams(ctx)
		return v, v.Tournament, err
	case tabBestPlayers:
		v, err := s.api.LoadBestPlayers(ctx)
		return v, v.Tournament, err
	case tabAdmin:
		v, err := s.api.LoadAdmin(ctx)
		return v, v.Current, err
	}
	return nil, shared.Tournament{}, fmt.Errorf("unknown tab %q", tab)
}

// renderTab loads and renders a tab. flash and form are set when the tab is shown again after a failed form
// submission; in that case the tab keeps its data and shows the message above it
func (s *Server) renderTab(w http.ResponseWriter, r *http.Request, tab string, status int, flash string, form url.Values) {
	data, t, err := s.loadTab(r.Context(), tab, r)
	if err != nil {
		s.renderLoadError(w, r, tab, err)
		return
	}

	if r.Method == http.MethodGet && t.ID > 0 {
		if err := s.api.SetActiveTab(r.Context(), t.ID, tab); err != nil {
			s.logger.Warn("failed to store active tab", "tab", tab, "error", err)
		}
	}

	s.render(w, status, tab, page{
		Tab:        tab,
		Tournament: t,
		Auth:       s.api.Auth.Snapshot(),
		Error:      flash,
		Form:       form,
		Data:       data,
	})
}

// renderLoadError replaces a tab with an error message and a retry link
func (s *Server) renderLoadError(w http.ResponseWriter, r *http.Request, tab string, err error) {
	s.logger.Warn("failed to load tab", "tab", tab, "error", err)
	retry := "/" + tab
	if r.Method == http.MethodGet {
		retry = r.URL.RequestURI()
	}
	s.render(w, statusFor(err), "error", page{
		Tab:      tab,
		Auth:     s.api.Auth.Snapshot(),
		Error:    classify(err, "load "+tabLabels[tab]),
		RetryURL: retry,
	})
}

// formFailed shows a tab again with the message of a failed submission and the values the operator typed
func (s *Server) formFailed(w http.ResponseWriter, r *http.Request, tab string, action string, err error) {
	s.logger.Info("form submission failed", "path", r.URL.Path, "error", err)
	s.renderTab(w, r, tab, statusFor(err), classify(err, action), r.PostForm)
}

// redirect sends the browser back to a tab after a successful submission
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
