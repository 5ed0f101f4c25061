/* routes.go
 * Contains the router of the web console
 */

package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Routes builds the router. Pages and forms are served same-origin; only the JSON views allow cross-origin reads
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(s.requestLogger)
	router.Use(middleware.Recoverer)

	router.Get("/", s.handleIndex)
	router.Get("/schedule", s.handleTab(tabSchedule))
	router.Get("/standings", s.handleTab(tabStandings))
	router.Get("/teams", s.handleTab(tabTeams))
	router.Get("/best-players", s.handleTab(tabBestPlayers))
	router.Get("/admin", s.handleTab(tabAdmin))
	router.Get("/ws", s.handleWebSocket)

	router.Post("/login", s.handleLogin)
	router.Post("/logout", s.handleLogout)
	router.Post("/admin-mode", s.handleToggleAdminMode)

	router.Route("/matches/{matchID}", func(r chi.Router) {
		r.Post("/toggle", s.handleToggleExpanded)
		r.Post("/boards/{board}/result", s.handleBoardResult)
		r.Get("/boards/{board}/swap", s.handleSwapForm)
		r.Post("/swap-players", s.handleSwapPlayers)
		r.Post("/swap-colors", s.handleSwapColors)
		r.Post("/tiebreaker", s.handleTiebreaker)
	})
	router.Post("/rounds/{round}/reschedule", s.handleRescheduleRound)
	router.Post("/rounds/{round}/complete", s.handleCompleteRound)

	router.Post("/standings/click", s.handleStandingsClick)
	router.Post("/standings/validate", s.handleValidateStandings)
	router.Post("/best-players/click", s.handleBestPlayerClick)
	router.Post("/best-players/validate", s.handleValidateBestPlayers)

	router.Post("/teams/{teamID}", s.handleSaveTeam)
	router.Post("/teams/{teamID}/players", s.handleAddPlayer)
	router.Post("/players/{playerID}/delete", s.handleRemovePlayer)

	router.Post("/tournaments", s.handleCreateTournament)
	router.Route("/tournaments/{tournamentID}", func(r chi.Router) {
		r.Post("/", s.handleUpdateTournament)
		r.Post("/delete", s.handleDeleteTournament)
		r.Post("/set-current", s.handleSetCurrentTournament)
		r.Post("/start", s.handleStartTournament)
		r.Post("/complete", s.handleCompleteTournament)
	})

	router.Post("/announcements", s.handleCreateAnnouncement)
	router.Post("/announcements/{announcementID}", s.handleUpdateAnnouncement)
	router.Post("/announcements/{announcementID}/delete", s.handleDeleteAnnouncement)

	router.Route("/view", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/schedule.json", s.handleScheduleJSON)
		r.Get("/standings.json", s.handleStandingsJSON)
		r.Get("/best-players.json", s.handleBestPlayersJSON)
	})

	return router
}
