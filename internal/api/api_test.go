package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourstack/dropfour/internal/api"
	"github.com/fourstack/dropfour/internal/api/response"
	"github.com/fourstack/dropfour/internal/factory"
	"github.com/fourstack/dropfour/internal/model"
	"github.com/fourstack/dropfour/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:     testutil.NopLogger(),
		Controller: app.Controller,
		Archive:    app.Archive,
		Hub:        app.Hub,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
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

// pairViaAPI joins two connections and returns the resulting session
func pairViaAPI(t *testing.T, ts *testServer) (model.SessionID, response.JoinQueue, response.JoinQueue) {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/queue/join",
		map[string]string{"connection_id": "conn-a", "display_name": "alice"})
	require.Equal(t, http.StatusAccepted, rr.Code)
	var first response.JoinQueue
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &first))
	require.True(t, first.Queued)

	rr = ts.request(http.MethodPost, "/api/v1/queue/join",
		map[string]string{"connection_id": "conn-b", "display_name": "bob"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var second response.JoinQueue
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &second))
	require.NotNil(t, second.Session)

	return second.Session.SessionID, first, second
}

// playVerticalWin has alice stack column 0 to victory
func playVerticalWin(t *testing.T, ts *testServer, sessionID model.SessionID) {
	t.Helper()

	script := []struct {
		conn string
		col  int
	}{
		{"conn-a", 0}, {"conn-b", 1},
		{"conn-a", 0}, {"conn-b", 1},
		{"conn-a", 0}, {"conn-b", 1},
		{"conn-a", 0},
	}
	for _, m := range script {
		rr := ts.request(http.MethodPost, "/api/v1/sessions/"+string(sessionID)+"/moves",
			map[string]any{"connection_id": m.conn, "column": m.col})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var health response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 0, health.LiveSessions)
}

func TestJoinQueueRequiresDisplayName(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/queue/join",
		map[string]string{"connection_id": "conn-a"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestJoinQueueRequiresConnection(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/queue/join",
		map[string]string{"display_name": "alice"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "CONNECTION_REQUIRED")
}

func TestJoinQueuePairsTwoParticipants(t *testing.T) {
	ts := newTestServer(t)

	sessionID, first, second := pairViaAPI(t, ts)
	assert.NotEmpty(t, sessionID)
	assert.Equal(t, first.ParticipantID, second.Session.Turn)
	assert.Equal(t, model.SessionStatusInProgress, second.Session.Status)
}

func TestLeaveQueue(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/queue/join",
		map[string]string{"connection_id": "conn-a", "display_name": "alice"})
	require.Equal(t, http.StatusAccepted, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/queue/leave",
		map[string]string{"connection_id": "conn-a"})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/queue/leave",
		map[string]string{"connection_id": "conn-a"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSubmitMove(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _, second := pairViaAPI(t, ts)

	rr := ts.request(http.MethodPost, "/api/v1/sessions/"+string(sessionID)+"/moves",
		map[string]any{"connection_id": "conn-a", "column": 3})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Session.MoveCount)
	assert.Equal(t, second.ParticipantID, resp.Session.Turn)
}

func TestSubmitMoveOutOfTurn(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _, _ := pairViaAPI(t, ts)

	rr := ts.request(http.MethodPost, "/api/v1/sessions/"+string(sessionID)+"/moves",
		map[string]any{"connection_id": "conn-b", "column": 3})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "OUT_OF_TURN")
}

func TestSubmitMoveIllegalColumn(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _, _ := pairViaAPI(t, ts)

	rr := ts.request(http.MethodPost, "/api/v1/sessions/"+string(sessionID)+"/moves",
		map[string]any{"connection_id": "conn-a", "column": 7})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "ILLEGAL_MOVE")
}

func TestSubmitMoveUnknownSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/sessions/nonexistent/moves",
		map[string]any{"connection_id": "conn-a", "column": 3})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "SESSION_NOT_FOUND")
}

func TestGetLiveSession(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _, _ := pairViaAPI(t, ts)

	rr := ts.request(http.MethodGet, "/api/v1/sessions/"+string(sessionID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, sessionID, resp.Session.SessionID)
	assert.Equal(t, model.SessionStatusInProgress, resp.Session.Status)
}

func TestGetFinishedSessionFromArchive(t *testing.T) {
	ts := newTestServer(t)
	sessionID, first, _ := pairViaAPI(t, ts)
	playVerticalWin(t, ts, sessionID)

	rr := ts.request(http.MethodGet, "/api/v1/sessions/"+string(sessionID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.SessionRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, model.SessionStatusCompleted, resp.Session.Status)
	assert.Equal(t, model.WinnerOutcome(first.ParticipantID), resp.Session.Outcome)
	assert.Len(t, resp.Session.Moves, 7)
}

func TestGetUnknownSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/sessions/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRejoinSession(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _, second := pairViaAPI(t, ts)

	ts.app.Controller.Disconnect("conn-b")

	rr := ts.request(http.MethodPost, "/api/v1/sessions/"+string(sessionID)+"/rejoin",
		map[string]string{"connection_id": "conn-b2", "participant_id": string(second.ParticipantID)})
	require.Equal(t, http.StatusOK, rr.Code)

	// Moves from the fresh connection work
	rr = ts.request(http.MethodPost, "/api/v1/sessions/"+string(sessionID)+"/moves",
		map[string]any{"connection_id": "conn-a", "column": 3})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/sessions/"+string(sessionID)+"/moves",
		map[string]any{"connection_id": "conn-b2", "column": 3})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRejoinUnknownParticipant(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _, _ := pairViaAPI(t, ts)

	rr := ts.request(http.MethodPost, "/api/v1/sessions/"+string(sessionID)+"/rejoin",
		map[string]string{"connection_id": "conn-z", "participant_id": "stranger"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "PARTICIPANT_NOT_FOUND")
}

func TestGetStats(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _, _ := pairViaAPI(t, ts)
	playVerticalWin(t, ts, sessionID)

	rr := ts.request(http.MethodGet, "/api/v1/stats/alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Stats.Wins)
	assert.Equal(t, 0, resp.Stats.Losses)
}

func TestGetStatsUnknownHandle(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/stats/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "STATS_NOT_FOUND")
}

func TestRecentSessions(t *testing.T) {
	ts := newTestServer(t)
	sessionID, _, _ := pairViaAPI(t, ts)
	playVerticalWin(t, ts, sessionID)

	rr := ts.request(http.MethodGet, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.RecentSessions
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, sessionID, resp.Sessions[0].ID)
}

func TestRecentSessionsLimitValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/sessions?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/sessions?limit=500", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
