package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/katalvlaran/gridastar/astar"
	"github.com/katalvlaran/gridastar/config"
	"github.com/katalvlaran/gridastar/geometry"
	"github.com/katalvlaran/gridastar/grid"
	"github.com/katalvlaran/gridastar/metrics"
	"github.com/katalvlaran/gridastar/render"
	"github.com/katalvlaran/gridastar/session"
)

// maxBody caps request bodies (configuration documents).
const maxBody = 1 << 20

// APIHandlers exposes HTTP handlers for the session API.
type APIHandlers struct {
	logger  *log.Logger
	store   session.Store
	metrics *metrics.Metrics
	ttl     time.Duration

	locks sync.Map // session id -> *sync.Mutex
}

// NewAPIHandlers constructs an APIHandlers instance. m may be nil.
func NewAPIHandlers(logger *log.Logger, store session.Store, m *metrics.Metrics, ttl time.Duration) *APIHandlers {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &APIHandlers{logger: logger, store: store, metrics: m, ttl: ttl}
}

type sessionResponse struct {
	ID        string         `json:"id"`
	ExpiresAt time.Time      `json:"expires_at"`
	Config    config.Config  `json:"config"`
	Snapshot  astar.Snapshot `json:"snapshot"`
}

type stepResponse struct {
	Closed   []astar.NodeView `json:"closed"`
	Found    bool             `json:"found"`
	Snapshot astar.Snapshot   `json:"snapshot"`
}

func newSessionResponse(sess *session.Session, e *astar.Engine) sessionResponse {
	return sessionResponse{ID: sess.ID, ExpiresAt: sess.ExpiresAt, Config: sess.Config, Snapshot: e.Snapshot()}
}

// readConfig parses an optional JSON body into a configuration. An empty body
// yields the default configuration.
func readConfig(r *http.Request) (config.Config, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return config.Config{}, err
	}
	if len(data) == 0 {
		return config.Default(), nil
	}
	return config.Parse(data, config.FormatJSON)
}

func (h *APIHandlers) createSession(w http.ResponseWriter, r *http.Request) {
	cfg, err := readConfig(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, err := session.New(cfg, h.ttl)
	if err != nil {
		h.fail(w, err)
		return
	}
	e, err := session.Replay(sess)
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := h.store.Set(r.Context(), sess); err != nil {
		h.fail(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.SessionCreated()
	}
	h.logger.Info("session created", "session", sess.ID, "rows", cfg.Rows, "cols", cfg.Cols, "seed", sess.Config.Seed)
	respondJSON(w, http.StatusCreated, newSessionResponse(sess, e))
}

func (h *APIHandlers) getSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, false, func(sess *session.Session, e *astar.Engine) (any, error) {
		return newSessionResponse(sess, e), nil
	})
}

func (h *APIHandlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// Held across the delete so an in-flight mutation cannot write the record back.
	unlock := h.lock(id)
	defer unlock()
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	h.locks.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandlers) step(w http.ResponseWriter, r *http.Request) {
	n := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = v
	}

	h.withSession(w, r, true, func(sess *session.Session, e *astar.Engine) (any, error) {
		if limit := e.Graph().Len() + 1; n > limit {
			n = limit
		}
		live := !e.State().Terminal()

		var closed []astar.NodeView
		done := 0
		var err error
		for done < n {
			var node *grid.Node
			if node, err = e.AdvanceOne(); err != nil {
				break
			}
			done++
			if node != nil {
				v, _ := e.Node(node.ID)
				closed = append(closed, v)
			}
			if e.State().Terminal() {
				break
			}
		}
		if err != nil && live {
			done++ // the failing attempt is part of the history
		}
		sess.RecordAdvance(done)
		if err != nil {
			return nil, err
		}
		return stepResponse{Closed: closed, Found: e.State() == astar.Found, Snapshot: e.Snapshot()}, nil
	})
}

func (h *APIHandlers) run(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, true, func(sess *session.Session, e *astar.Engine) (any, error) {
		before := e.Steps()
		found, err := e.RunContext(r.Context())
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			sess.RecordAdvance(e.Steps() - before)
			return nil, err
		}
		// Advance stops at the first terminal state, so one past N is always enough.
		sess.RecordAdvance(e.Graph().Len() + 1)
		if err != nil {
			return nil, err
		}
		return stepResponse{Found: found, Snapshot: e.Snapshot()}, nil
	})
}

func (h *APIHandlers) reset(w http.ResponseWriter, r *http.Request) {
	cfg, err := readConfig(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.withSession(w, r, true, func(sess *session.Session, _ *astar.Engine) (any, error) {
		if err := sess.Reset(cfg); err != nil {
			return nil, err
		}
		e, err := session.Replay(sess)
		if err != nil {
			return nil, err
		}
		return newSessionResponse(sess, e), nil
	})
}

func (h *APIHandlers) disable(w http.ResponseWriter, r *http.Request) {
	id, ok := nodeParam(w, r)
	if !ok {
		return
	}
	h.withSession(w, r, true, func(sess *session.Session, e *astar.Engine) (any, error) {
		if err := e.Disable(id); err != nil {
			return nil, err
		}
		sess.RecordDisable(id)
		return e.Snapshot(), nil
	})
}

func (h *APIHandlers) node(w http.ResponseWriter, r *http.Request) {
	id, ok := nodeParam(w, r)
	if !ok {
		return
	}
	h.withSession(w, r, false, func(_ *session.Session, e *astar.Engine) (any, error) {
		return e.Node(id)
	})
}

// inspect hit-tests the x and y query parameters against node positions, the
// way a click on the canvas does.
func (h *APIHandlers) inspect(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, http.StatusBadRequest, "x and y must be numbers")
		return
	}
	h.withSession(w, r, false, func(_ *session.Session, e *astar.Engine) (any, error) {
		v, ok := e.Inspect(geometry.Pt(x, y), inspectRadius*e.Graph().Spacing())
		if !ok {
			return nil, fmt.Errorf("%w: no node near %s", errNoNode, geometry.Pt(x, y))
		}
		return v, nil
	})
}

// inspectRadius is the hit radius of a click as a fraction of the spacing.
const inspectRadius = 0.25

var errNoNode = errors.New("no node at position")

func (h *APIHandlers) dot(w http.ResponseWriter, r *http.Request) {
	h.withRaw(w, r, func(e *astar.Engine) (string, []byte, error) {
		opts := render.DefaultOptions()
		opts.Costs = r.URL.Query().Has("costs")
		return "text/vnd.graphviz; charset=utf-8", []byte(render.ToDOT(e, opts)), nil
	})
}

func (h *APIHandlers) svg(w http.ResponseWriter, r *http.Request) {
	h.withRaw(w, r, func(e *astar.Engine) (string, []byte, error) {
		opts := render.DefaultOptions()
		opts.Costs = r.URL.Query().Has("costs")
		data, err := render.RenderSVG(r.Context(), render.ToDOT(e, opts))
		return "image/svg+xml", data, err
	})
}

func (h *APIHandlers) text(w http.ResponseWriter, r *http.Request) {
	h.withRaw(w, r, func(e *astar.Engine) (string, []byte, error) {
		out := render.Text(e, render.TextOptions{IDs: r.URL.Query().Has("ids"), Legend: true})
		return "text/plain; charset=utf-8", []byte(out), nil
	})
}

func nodeParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "node"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "node must be an integer id")
		return 0, false
	}
	return id, true
}

// withSession loads and replays the session named in the URL, runs fn with the
// session lock held, and, when mutate is set, persists the updated record.
func (h *APIHandlers) withSession(w http.ResponseWriter, r *http.Request, mutate bool,
	fn func(*session.Session, *astar.Engine) (any, error)) {
	id := chi.URLParam(r, "id")
	unlock := h.lock(id)
	defer unlock()

	sess, e, err := h.load(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	if mutate {
		e.SetObserver(h.observer())
		e.SetLogger(h.logger.With("session", id))
	}

	out, fnErr := fn(sess, e)
	if mutate {
		sess.Touch(h.ttl)
		if err := h.store.Set(r.Context(), sess); err != nil {
			h.fail(w, err)
			return
		}
	}
	if fnErr != nil {
		h.fail(w, fnErr)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *APIHandlers) withRaw(w http.ResponseWriter, r *http.Request, fn func(*astar.Engine) (string, []byte, error)) {
	id := chi.URLParam(r, "id")
	unlock := h.lock(id)
	_, e, err := h.load(r.Context(), id)
	unlock()
	if err != nil {
		h.fail(w, err)
		return
	}
	contentType, data, err := fn(e)
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *APIHandlers) load(ctx context.Context, id string) (*session.Session, *astar.Engine, error) {
	sess, err := h.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	e, err := session.Replay(sess)
	if err != nil {
		return nil, nil, err
	}
	return sess, e, nil
}

func (h *APIHandlers) observer() astar.Observer {
	if h.metrics == nil {
		return nil
	}
	return h.metrics
}

func (h *APIHandlers) lock(id string) func() {
	v, _ := h.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// fail maps err to an HTTP status and writes it.
func (h *APIHandlers) fail(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "err", err)
	}
	writeError(w, status, err.Error())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, errNoNode):
		return http.StatusNotFound
	case errors.Is(err, astar.ErrConfig), errors.Is(err, config.ErrInvalid), errors.Is(err, grid.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, astar.ErrAlgorithmFinished), errors.Is(err, astar.ErrNodeClosed):
		return http.StatusConflict
	case errors.Is(err, astar.ErrInconsistentHeuristic), errors.Is(err, astar.ErrInvariant):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
