/* errors.go
 * Contains the mapping from errors to the messages shown to the operator
 */

package web

import (
	"errors"
	"net/http"

	"chess-tournament-ui/api/api"
	"chess-tournament-ui/api/external"
	"chess-tournament-ui/api/logic"
)

// classify returns the message shown for err. action completes "failed to ..." for failures without a server
// supplied detail, e.g. "load standings"
func classify(err error, action string) string {
	var guardErr *logic.GuardError
	switch {
	case errors.As(err, &guardErr):
		return guardErr.Message
	case errors.Is(err, api.ErrNoTournament):
		return "No tournament is currently selected"
	case errors.Is(err, api.ErrStaleView):
		return "The tournament changed while loading, please retry"
	case errors.Is(err, external.ErrTransport):
		return "Failed to " + action
	}
	if detail := external.DetailOf(err); detail != "" {
		return detail
	}
	return "Failed to " + action
}

// statusFor picks the status code of an error page or a re-rendered form
func statusFor(err error) int {
	var apiErr *external.APIError
	switch {
	case errors.Is(err, logic.ErrGuard):
		return http.StatusUnprocessableEntity
	case errors.Is(err, api.ErrNoTournament):
		return http.StatusNotFound
	case errors.Is(err, external.ErrTransport):
		return http.StatusBadGateway
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
