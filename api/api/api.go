/* api.go
 * This file contains the API type that ties the backend client, the preference store and the auth state together.
 * The web and bot packages should only call this package, not the sub packages directly
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"chess-tournament-ui/api/auth"
	"chess-tournament-ui/api/external"
	"chess-tournament-ui/api/logic"
	"chess-tournament-ui/api/shared"
	"chess-tournament-ui/api/store"
)

var (
	// ErrNoTournament is returned when the backend has no current tournament
	ErrNoTournament = errors.New("no current tournament")
	// ErrStaleView is returned by a load that was overtaken by a tournament switch or logout
	ErrStaleView = errors.New("view changed while loading")
)

// Publisher is told about every successful mutation so open pages can refresh
type Publisher interface {
	Publish(tournamentID int, aggregate string)
}

type API struct {
	Client external.Interface
	Store  store.Interface
	Auth   *auth.State
	Logger *slog.Logger
	Events Publisher

	guard viewGuard

	mu              sync.Mutex
	standings       map[int]map[int]*logic.Reconciler
	bestPlayers     map[int]*logic.Reconciler
	standingsGate   map[int]logic.TiebreakGate
	bestPlayersGate map[int]logic.TiebreakGate
}

// NewAPI creates a new API instance.
// Preconditions: client, prefs and authState are non nil
// Postconditions: returns an API ready for use, or an error if a dependency is missing
func NewAPI(client external.Interface, prefs store.Interface, authState *auth.State, logger *slog.Logger) (*API, error) {
	if client == nil || prefs == nil || authState == nil {
		return nil, fmt.Errorf("client, preference store and auth state are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		Client:      client,
		Store:       prefs,
		Auth:        authState,
		Logger:      logger,
		standings:       make(map[int]map[int]*logic.Reconciler),
		bestPlayers:     make(map[int]*logic.Reconciler),
		standingsGate:   make(map[int]logic.TiebreakGate),
		bestPlayersGate: make(map[int]logic.TiebreakGate),
	}, nil
}

// viewGuard drops loads that finish after the view they were started for has gone away
type viewGuard struct {
	mu         sync.Mutex
	generation uint64
}

func (g *viewGuard) begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generation
}

func (g *viewGuard) check(generation uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if generation != g.generation {
		return ErrStaleView
	}
	return nil
}

func (g *viewGuard) invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generation++
}

// Invalidate discards in flight loads and every tiebreak selection. Called when the current tournament changes
// and on logout
func (a *API) Invalidate() {
	a.guard.invalidate()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.standings = make(map[int]map[int]*logic.Reconciler)
	a.bestPlayers = make(map[int]*logic.Reconciler)
	a.standingsGate = make(map[int]logic.TiebreakGate)
	a.bestPlayersGate = make(map[int]logic.TiebreakGate)
}

func (a *API) publish(tournamentID int, aggregate string) {
	if a.Events != nil {
		a.Events.Publish(tournamentID, aggregate)
	}
}

// CurrentTournament fetches the tournament the console is showing
func (a *API) CurrentTournament(ctx context.Context) (shared.Tournament, error) {
	t, err := a.Client.GetCurrentTournament(ctx)
	if err != nil {
		var apiErr *external.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return shared.Tournament{}, fmt.Errorf("%w: %w", ErrNoTournament, err)
		}
		return shared.Tournament{}, err
	}
	return t, nil
}

// region auth

// Login logs the operator in. The backend error is returned unchanged on failure
func (a *API) Login(ctx context.Context, username string, password string) error {
	if err := a.Auth.Login(ctx, username, password); err != nil {
		a.Logger.Info("login failed", "username", username, "error", err)
		return err
	}
	a.Logger.Info("operator logged in", "username", username)
	return nil
}

func (a *API) Logout(ctx context.Context) error {
	a.Invalidate()
	return a.Auth.Logout(ctx)
}

// ToggleAdminMode flips admin mode for an authenticated operator
func (a *API) ToggleAdminMode(ctx context.Context) (bool, error) {
	if !a.Auth.Authenticated() {
		return false, &logic.GuardError{Field: "admin_mode", Message: "Log in to use admin mode"}
	}
	return a.Auth.ToggleAdminMode(ctx)
}

// requireAdmin rejects a mutation unless the operator is logged in with admin mode on
func (a *API) requireAdmin() error {
	if !a.Auth.AdminMode() {
		return &logic.GuardError{Field: "admin_mode", Message: "Admin mode is required"}
	}
	return nil
}

// endregion
