/* client_test.go
 * Contains unit tests for client.go and the endpoint files using httptest
 */

package external

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chess-tournament-ui/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, TokenFunc(func() string { return token }), 0)
	require.NoError(t, err)
	return client
}

// region NewClient tests

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient("", nil, 0)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "backend url is required")
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("not a url", nil, 0)

	assert.Error(t, err)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client, err := NewClient("http://localhost:8000/api/", nil, 5)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api", client.BaseURL)
}

// endregion

// region request decoration tests

func TestDo_AttachesBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc.def.ghi", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{"id": 1, "name": "Spring Cup"}`))
	}, "abc.def.ghi")

	tournament, err := client.GetCurrentTournament(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Spring Cup", tournament.Name)
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}, "")

	_, err := client.ListTournaments(context.Background())

	assert.NoError(t, err)
}

// endregion

// region error decoding tests

func TestDo_DetailErrorIsVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Round 2 still has pending matches"}`))
	}, "token")

	err := client.CompleteRound(context.Background(), 1, 2)

	require.Error(t, err)
	assert.Equal(t, "Round 2 still has pending matches", err.Error())
	assert.Equal(t, "Round 2 still has pending matches", DetailOf(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestDo_ValidationListDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"msg": "name is required"}, {"msg": "total_rounds must be positive"}]}`))
	}, "token")

	_, err := client.CreateTournament(context.Background(), shared.TournamentInput{})

	require.Error(t, err)
	assert.Equal(t, "name is required; total_rounds must be positive", err.Error())
}

func TestDo_ErrorWithoutDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	}, "token")

	err := client.StartTournament(context.Background(), 3)

	require.Error(t, err)
	assert.Equal(t, "request failed with status 500", err.Error())
	assert.Empty(t, DetailOf(err))
}

func TestDo_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := NewClient(server.URL, nil, 0)
	require.NoError(t, err)
	server.Close()

	_, err = client.ListTeams(context.Background(), 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

// endregion

// region endpoint tests

func TestLogin_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var req shared.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)
		assert.Equal(t, "secret", req.Password)

		w.Write([]byte(`{"token": "jwt-token"}`))
	}, "")

	token, err := client.Login(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
}

func TestLogin_WrongPassword(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Incorrect username or password"}`))
	}, "")

	token, err := client.Login(context.Background(), "bob", "wrong")

	require.Error(t, err)
	assert.Empty(t, token)
	assert.Equal(t, "Incorrect username or password", err.Error())
}

func TestLogin_EmptyToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}, "")

	_, err := client.Login(context.Background(), "alice", "secret")

	assert.Error(t, err)
}

func TestListMatches_RoundQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/matches", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("tournament_id"))
		assert.Equal(t, "2", r.URL.Query().Get("round_number"))
		w.Write([]byte(`[{"id": 10, "round_number": 2, "white_team_id": 1, "black_team_id": -1, "result": "pending"}]`))
	}, "token")

	matches, err := client.ListMatches(context.Background(), 7, 2)

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].RoundNumber)
	assert.True(t, matches[0].Black().IsPlaceholder())
	assert.Equal(t, "A1", matches[0].Black().Slot)
}

func TestListMatches_AllRoundsOmitsRound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("round_number"))
		w.Write([]byte(`[]`))
	}, "token")

	_, err := client.ListMatches(context.Background(), 7, 0)

	assert.NoError(t, err)
}

func TestSubmitBoardResult_Path(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/matches/5/games/3/result", r.URL.Path)

		var req shared.ResultRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, shared.ResultDraw, req.Result)

		w.Write([]byte(`{"id": 5, "result": "pending"}`))
	}, "token")

	match, err := client.SubmitBoardResult(context.Background(), 5, 3, shared.ResultDraw)

	require.NoError(t, err)
	assert.Equal(t, 5, match.ID)
}

func TestListPlayers_Filters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "4", r.URL.Query().Get("team_id"))
		assert.Empty(t, r.URL.Query().Get("tournament_id"))
		w.Write([]byte(`[{"id": 1, "name": "Magnus", "team_id": 4}]`))
	}, "token")

	players, err := client.ListPlayers(context.Background(), PlayerFilter{TeamID: 4})

	require.NoError(t, err)
	assert.Len(t, players, 1)
}

func TestCheckStandingsTies_Decode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tournaments/2/standings/ties", r.URL.Path)
		w.Write([]byte(`{"has_ties": true, "groups": {"1": {"3": [4], "4": [3]}}}`))
	}, "token")

	check, err := client.CheckStandingsTies(context.Background(), 2)

	require.NoError(t, err)
	assert.True(t, check.HasTies)
	assert.Equal(t, []int{4}, check.Groups["1"]["3"])
}

func TestDeleteAnnouncement_EmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/tournaments/1/announcements/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}, "token")

	err := client.DeleteAnnouncement(context.Background(), 1, 9)

	assert.NoError(t, err)
}

// endregion
