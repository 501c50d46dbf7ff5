package api_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/rpslsgame/internal/api"
	"github.com/mcoot/rpslsgame/internal/api/apierr"
	"github.com/mcoot/rpslsgame/internal/api/response"
	"github.com/mcoot/rpslsgame/internal/factory"
	"github.com/mcoot/rpslsgame/internal/testutil"
)

// testServer wraps the router over a test application
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		PlayerService:  app.PlayerService,
		MoveService:    app.MoveService,
		GameController: app.GameController,
		Metrics:        app.Metrics,
		Events:         app.Events,
	})

	t.Cleanup(func() { _ = app.Close() })

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) play(t *testing.T, command string) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/play", map[string]string{"command": command})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.PlayResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Result
}

func (ts *testServer) setup(t *testing.T, players ...string) {
	t.Helper()
	for _, p := range players {
		rr := ts.request(http.MethodPost, "/api/v1/players", map[string]string{"name": p})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}
	for _, m := range []string{"Rock", "Paper", "Scissors", "Lizard", "Spock"} {
		rr := ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"name": m})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestPlayerEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]string{"name": "Player1"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/api/v1/players/Player1", rr.Header().Get("Location"))

	var created response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "Player1", created.Name)

	// Duplicate, case-insensitive
	rr = ts.request(http.MethodPost, "/api/v1/players", map[string]string{"name": "PLAYER1"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodePlayerExists, errorCode(t, rr))

	// Blank name
	rr = ts.request(http.MethodPost, "/api/v1/players", map[string]string{"name": " "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/player1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var players []response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	assert.Len(t, players, 1)

	rr = ts.request(http.MethodDelete, "/api/v1/players/Player1", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/Player1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodePlayerNotFound, errorCode(t, rr))

	rr = ts.request(http.MethodDelete, "/api/v1/players/Player1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMoveEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"name": "Move Lizard"})
	require.Equal(t, http.StatusCreated, rr.Code)

	var created response.Move
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "Lizard", created.Move)
	assert.Equal(t, "Move Lizard", created.Name)
	assert.Equal(t, []string{"Spock", "Paper"}, created.Beats)

	rr = ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"name": "Banana"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidMove, errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"name": "lizard"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/moves/LIZARD", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/moves/Rock", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeMoveNotFound, errorCode(t, rr))

	rr = ts.request(http.MethodDelete, "/api/v1/moves/Lizard", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/moves", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestPlayFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.setup(t, "Player1", "Player2", "Player3")

	assert.Empty(t, ts.play(t, "Player1 e Scissors"))
	assert.Empty(t, ts.play(t, "Player2 e Scissors"))
	assert.Empty(t, ts.play(t, "Player3 e Lizard"))

	rr := ts.request(http.MethodGet, "/api/v1/round", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var round response.Round
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &round))
	require.Len(t, round.Entries, 3)
	assert.Equal(t, "Lizard", round.Entries[2].Move)

	assert.Equal(t, "Result Player1 and Player2 Victory", ts.play(t, "play"))

	rr = ts.request(http.MethodGet, "/api/v1/round", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeNoActiveRound, errorCode(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/play/0", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var game response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	assert.Equal(t, int64(0), game.ID)
	assert.Equal(t, "Scissors", game.WinningMove)
	assert.Equal(t, []string{"Player1", "Player2"}, game.Winners)
	assert.Equal(t, "Result Player1 and Player2 Victory", game.Result)
}

func TestPlayErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.setup(t, "Player1", "Player2")

	tests := []struct {
		command string
		status  int
		code    string
	}{
		{"Player1 Rock", http.StatusBadRequest, apierr.CodeInvalidCommand},
		{"Nobody e Rock", http.StatusNotFound, apierr.CodePlayerNotFound},
		{"Player1 e Banana", http.StatusNotFound, apierr.CodeMoveNotFound},
		{"play", http.StatusBadRequest, apierr.CodeInsufficientPlayers},
	}

	for _, tt := range tests {
		rr := ts.request(http.MethodPost, "/api/v1/play", map[string]string{"command": tt.command})
		assert.Equal(t, tt.status, rr.Code, tt.command)
		assert.Equal(t, tt.code, errorCode(t, rr), tt.command)
	}

	ts.play(t, "Player1 e Rock")
	rr := ts.request(http.MethodPost, "/api/v1/play", map[string]string{"command": "Player1 e Paper"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeAlreadyMoved, errorCode(t, rr))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/play", strings.NewReader("{not json"))
	rr = httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}

func TestArchiveEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.setup(t, "Player1", "Player2")

	for i := 0; i < 2; i++ {
		ts.play(t, "Player1 e Rock")
		ts.play(t, "Player2 e Scissors")
		assert.Equal(t, "Result Player1 Victory", ts.play(t, "play"))
	}

	rr := ts.request(http.MethodDelete, "/api/v1/play/1", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/play/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, errorCode(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/play/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Ids keep counting after deletions
	ts.play(t, "Player1 e Paper")
	ts.play(t, "Player2 e Paper")
	assert.Equal(t, "Result Tie", ts.play(t, "play"))

	rr = ts.request(http.MethodGet, "/api/v1/play", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var games []response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
	require.Len(t, games, 2)
	assert.Equal(t, int64(0), games[0].ID)
	assert.Equal(t, int64(2), games[1].ID)
	assert.True(t, games[1].Tie)
}

func TestResetRound(t *testing.T) {
	ts := newTestServer(t)
	ts.setup(t, "Player1")

	ts.play(t, "Player1 e Rock")

	rr := ts.request(http.MethodDelete, "/api/v1/round", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/round", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.setup(t, "Player1")
	ts.play(t, "Player1 e Rock")

	rr := ts.request(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "rpsls_moves_submitted_total 1")
	assert.Contains(t, body, `rpsls_http_requests_total{method="POST",route="/api/v1/play",status="200"} 1`)
}

func TestEventStream(t *testing.T) {
	ts := newTestServer(t)
	ts.setup(t, "Player1", "Player2")

	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	next := func() string {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream closed")
			return line
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for event")
			return ""
		}
	}

	// Subscription is live once the greeting arrives
	require.Equal(t, "event: connected", next())
	require.Equal(t, `data: {"status":"connected"}`, next())
	require.Equal(t, "", next())

	ts.play(t, "Player1 e Rock")
	require.Equal(t, "event: move_submitted", next())
	data := next()
	assert.Contains(t, data, `"player":"Player1"`)
	assert.Contains(t, data, `"move":"Rock"`)
	require.Equal(t, "", next())

	ts.play(t, "Player2 e Lizard")
	next()
	next()
	next()

	ts.play(t, "play")
	require.Equal(t, "event: round_resolved", next())
	data = next()
	assert.Contains(t, data, `"game_id":0`)
	assert.Contains(t, data, `"result":"Result Player1 Victory"`)
}
