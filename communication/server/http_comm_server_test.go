package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stoneage/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newSnapshot(t *testing.T) game.Snapshot {
	t.Helper()
	setup := game.DefaultSetup()
	setup.ID = "viewer"
	gs, err := game.NewGameState(setup, game.NewSequenceRoller())
	require.NoError(t, err)
	require.NoError(t, gs.PlaceWorker(0, game.Forest, 2))
	s := gs.Snapshot()
	s.Phase = "resolution"
	return s
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func newTestServer(t *testing.T) *ServerCommunicator {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sc := NewServerCommunicator("127.0.0.1:0", time.Second)
	t.Cleanup(sc.Close)
	return sc
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServerCommunicator(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		sc := newTestServer(t)
		w := get(t, sc.Handler(), "/healthz")
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("state is missing until published", func(t *testing.T) {
		sc := newTestServer(t)

		require.Equal(t, http.StatusNotFound, get(t, sc.Handler(), "/api/state").Code)
		_, ok := sc.Snapshot()
		require.False(t, ok)
	})

	t.Run("published snapshot is served as json", func(t *testing.T) {
		sc := newTestServer(t)
		want := newSnapshot(t)
		require.NoError(t, sc.Publish(want))

		w := get(t, sc.Handler(), "/api/state")

		require.Equal(t, http.StatusOK, w.Code)
		var got game.Snapshot
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Equal(t, want, got)
		require.Equal(t, 2, got.Space(game.Forest).Occupancy)
	})

	t.Run("readers get private copies", func(t *testing.T) {
		sc := newTestServer(t)
		require.NoError(t, sc.Publish(newSnapshot(t)))

		first, ok := sc.Snapshot()
		require.True(t, ok)
		first.Players[0].Name = "changed"

		second, ok := sc.Snapshot()
		require.True(t, ok)
		require.Equal(t, "Player 1", second.Players[0].Name)
	})

	t.Run("snapshots can be posted by a remote engine", func(t *testing.T) {
		sc := newTestServer(t)
		body, err := json.Marshal(newSnapshot(t))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/state", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		sc.Handler().ServeHTTP(w, req)

		require.Equal(t, http.StatusNoContent, w.Code)
		got, ok := sc.Snapshot()
		require.True(t, ok)
		require.Equal(t, "viewer", got.GameID)

		w = httptest.NewRecorder()
		sc.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/state", strings.NewReader("{")))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed snapshots are rejected", func(t *testing.T) {
		sc := newTestServer(t)
		broken := newSnapshot(t)
		broken.Spaces[game.Forest].Occupants[0].Player = 7

		for name, body := range map[string]string{
			"no spaces":       `{"round":3,"max_rounds":10}`,
			"unknown player":  mustJSON(t, broken),
			"winner off seat": `{"round":3,"winner":4}`,
		} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/state", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			sc.Handler().ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code, name)
			_, ok := sc.Snapshot()
			require.False(t, ok, "%s should not be stored", name)
		}
	})

	t.Run("page polls at the refresh interval", func(t *testing.T) {
		sc := newTestServer(t)
		w := get(t, sc.Handler(), "/")
		require.Equal(t, http.StatusOK, w.Code)
		require.Regexp(t, `const refreshMs =\s*1000\s*;`, w.Body.String())
		require.Contains(t, w.Body.String(), "/api/state")
	})

	t.Run("qr code is a png", func(t *testing.T) {
		sc := newTestServer(t)
		w := get(t, sc.Handler(), "/api/qr")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "image/png", w.Header().Get("Content-Type"))
		require.True(t, strings.HasPrefix(w.Body.String(), "\x89PNG"))
	})
}

func TestWebsocketPush(t *testing.T) {
	sc := newTestServer(t)
	require.NoError(t, sc.Publish(newSnapshot(t)))
	ts := httptest.NewServer(sc.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first game.Snapshot
	require.NoError(t, conn.ReadJSON(&first))
	require.Equal(t, "resolution", first.Phase, "New viewers should get the latest snapshot right away")

	require.Eventually(t, func() bool { return sc.Viewers() == 1 }, 2*time.Second, 10*time.Millisecond)
	next := newSnapshot(t)
	next.Phase = "feeding"
	require.NoError(t, sc.Publish(next))

	var pushed game.Snapshot
	require.NoError(t, conn.ReadJSON(&pushed))
	require.Equal(t, "feeding", pushed.Phase)
}
