package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridastar/astar"
	"github.com/katalvlaran/gridastar/metrics"
	"github.com/katalvlaran/gridastar/session"
)

type testAPI struct {
	t      *testing.T
	srv    *httptest.Server
	api    *APIHandlers
	store  *session.MemoryStore
	gather prometheus.Gatherer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := log.New(io.Discard)
	reg := prometheus.NewRegistry()
	store := session.NewMemoryStore()
	api := NewAPIHandlers(logger, store, metrics.New(reg), time.Minute)
	srv := httptest.NewServer(NewRouter(logger, RouterDependencies{API: api, Gatherer: reg}))
	t.Cleanup(srv.Close)
	return &testAPI{t: t, srv: srv, api: api, store: store, gather: reg}
}

func (a *testAPI) do(method, path, body string) (*http.Response, []byte) {
	a.t.Helper()
	req, err := http.NewRequest(method, a.srv.URL+path, strings.NewReader(body))
	require.NoError(a.t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp, data
}

func (a *testAPI) create(body string) sessionResponse {
	a.t.Helper()
	resp, data := a.do(http.MethodPost, "/sessions", body)
	require.Equal(a.t, http.StatusCreated, resp.StatusCode, string(data))
	var out sessionResponse
	require.NoError(a.t, json.Unmarshal(data, &out))
	return out
}

type snapshotJSON struct {
	State   string `json:"state"`
	Steps   int    `json:"steps"`
	Current int    `json:"current"`
	Open    []int  `json:"open"`
	Closed  []int  `json:"closed"`
	Path    []int  `json:"path"`
	Err     string `json:"error"`
}

func decodeSnapshot(t *testing.T, data []byte, key string) snapshotJSON {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	var s snapshotJSON
	require.NoError(t, json.Unmarshal(raw[key], &s))
	return s
}

const rowConfig = `{"rows": 1, "cols": 3, "weights": {"fixed": 2}}`

func TestCreateSession_Defaults(t *testing.T) {
	a := newTestAPI(t)
	resp, data := a.do(http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	s := decodeSnapshot(t, data, "snapshot")
	assert.Equal(t, "ready", s.State)
	assert.Equal(t, []int{1}, s.Open)

	var out sessionResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 200, out.Config.Target)
	assert.NotZero(t, out.Config.Seed)
	assert.Equal(t, 1, a.store.Len())
}

func TestCreateSession_BadConfig(t *testing.T) {
	a := newTestAPI(t)
	resp, _ := a.do(http.MethodPost, "/sessions", `{"rows": 0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = a.do(http.MethodPost, "/sessions", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStepAndRun(t *testing.T) {
	a := newTestAPI(t)
	sess := a.create(rowConfig)

	resp, data := a.do(http.MethodPost, "/sessions/"+sess.ID+"/step", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	s := decodeSnapshot(t, data, "snapshot")
	assert.Equal(t, "running", s.State)
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, []int{2}, s.Open)

	// State survives the round trip through the store.
	resp, data = a.do(http.MethodGet, "/sessions/"+sess.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decodeSnapshot(t, data, "snapshot").Steps)

	resp, data = a.do(http.MethodPost, "/sessions/"+sess.ID+"/run", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	s = decodeSnapshot(t, data, "snapshot")
	assert.Equal(t, "found", s.State)
	assert.Equal(t, []int{1, 2, 3}, s.Path)

	resp, _ = a.do(http.MethodPost, "/sessions/"+sess.ID+"/step", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, data = a.do(http.MethodGet, "/sessions/"+sess.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "found", decodeSnapshot(t, data, "snapshot").State)
}

func TestStep_Many(t *testing.T) {
	a := newTestAPI(t)
	sess := a.create(rowConfig)

	resp, data := a.do(http.MethodPost, "/sessions/"+sess.ID+"/step?n=2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Closed []struct {
			ID int      `json:"id"`
			G  *float64 `json:"g"`
		} `json:"closed"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Closed, 2)
	assert.Equal(t, 2, out.Closed[1].ID)
	assert.Equal(t, 2.0, *out.Closed[1].G)

	resp, _ = a.do(http.MethodPost, "/sessions/"+sess.ID+"/step?n=zero", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDisable(t *testing.T) {
	a := newTestAPI(t)
	sess := a.create(rowConfig)

	resp, _ := a.do(http.MethodPost, "/sessions/"+sess.ID+"/step", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = a.do(http.MethodPost, "/sessions/"+sess.ID+"/disable/1", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "closed node")
	resp, _ = a.do(http.MethodPost, "/sessions/"+sess.ID+"/disable/9", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "out of range")

	resp, data := a.do(http.MethodPost, "/sessions/"+sess.ID+"/disable/2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	resp, data = a.do(http.MethodPost, "/sessions/"+sess.ID+"/run", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "exhausted", decodeSnapshot(t, data, "snapshot").State)
}

func TestNodeAndInspect(t *testing.T) {
	a := newTestAPI(t)
	sess := a.create(rowConfig)

	resp, data := a.do(http.MethodGet, "/sessions/"+sess.ID+"/nodes/3", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var v map[string]any
	require.NoError(t, json.Unmarshal(data, &v))
	assert.Equal(t, 3.0, v["id"])
	assert.Nil(t, v["g"], "unreached cost encodes as null")
	assert.Equal(t, 0.0, v["h"])

	resp, data = a.do(http.MethodGet, "/sessions/"+sess.ID+"/at?x=2.2&y=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &v))
	assert.Equal(t, 2.0, v["id"])

	resp, _ = a.do(http.MethodGet, "/sessions/"+sess.ID+"/at?x=2.5&y=1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = a.do(http.MethodGet, "/sessions/"+sess.ID+"/nodes/x", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResetAndDelete(t *testing.T) {
	a := newTestAPI(t)
	sess := a.create(rowConfig)
	a.do(http.MethodPost, "/sessions/"+sess.ID+"/run", "")

	resp, data := a.do(http.MethodPost, "/sessions/"+sess.ID+"/reset", `{"rows": 2, "cols": 2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	s := decodeSnapshot(t, data, "snapshot")
	assert.Equal(t, "ready", s.State)
	assert.Equal(t, 0, s.Steps)

	resp, _ = a.do(http.MethodDelete, "/sessions/"+sess.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = a.do(http.MethodGet, "/sessions/"+sess.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteSession_WaitsForInFlightMutation(t *testing.T) {
	a := newTestAPI(t)
	sess := a.create(rowConfig)
	ctx := context.Background()

	// Hold the session the way a step request does, then write it back.
	unlock := a.api.lock(sess.ID)
	status := make(chan int, 1)
	go func() {
		req, err := http.NewRequest(http.MethodDelete, a.srv.URL+"/sessions/"+sess.ID, nil)
		if err != nil {
			status <- -1
			return
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			status <- -1
			return
		}
		resp.Body.Close()
		status <- resp.StatusCode
	}()

	select {
	case code := <-status:
		t.Fatalf("delete finished while the session was locked: %d", code)
	case <-time.After(100 * time.Millisecond):
	}
	rec, err := a.store.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.NoError(t, a.store.Set(ctx, rec))
	unlock()

	select {
	case code := <-status:
		assert.Equal(t, http.StatusNoContent, code)
	case <-time.After(5 * time.Second):
		t.Fatal("delete did not finish")
	}
	assert.Equal(t, 0, a.store.Len())
	resp, _ := a.do(http.MethodGet, "/sessions/"+sess.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRenderEndpoints(t *testing.T) {
	a := newTestAPI(t)
	sess := a.create(rowConfig)

	resp, data := a.do(http.MethodGet, "/sessions/"+sess.ID+"/dot", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/vnd.graphviz")
	assert.True(t, bytes.HasPrefix(data, []byte("graph G {")))

	resp, data = a.do(http.MethodGet, "/sessions/"+sess.ID+"/text", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(data), "S · T\n"), string(data))
}

func TestHealthAndMetrics(t *testing.T) {
	a := newTestAPI(t)
	resp, data := a.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"ok"`)

	sess := a.create(rowConfig)
	a.do(http.MethodPost, "/sessions/"+sess.ID+"/run", "")

	resp, data = a.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "gridastar_sessions_created_total 1")
	assert.Contains(t, string(data), `gridastar_searches_total{state="found"} 1`)
	assert.Contains(t, string(data), "gridastar_steps_total 3")
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusOf(session.ErrNotFound))
	assert.Equal(t, http.StatusConflict, statusOf(astar.ErrAlgorithmFinished))
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(&astar.InconsistentHeuristicError{}))
	assert.Equal(t, http.StatusInternalServerError, statusOf(assert.AnError))
}
