// Package session keeps interactive searches alive between HTTP requests.
//
// A Session does not store engine internals. It stores the configuration the
// engine was built from plus the ordered list of control actions applied to it
// (advance N steps, disable a node). Because construction and stepping are
// deterministic for a fixed seed, [Replay] rebuilds the exact engine state from
// that record, so any backend that can hold a small JSON document can host a
// session:
//
//   - [MemoryStore]: in-process map, for the CLI and tests
//   - [RedisStore]: Redis-backed storage for multi-instance deployments
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/gridastar/astar"
	"github.com/katalvlaran/gridastar/config"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist or has expired.
	ErrNotFound = errors.New("session: not found")

	// ErrBadAction is returned by Replay for an action it does not know.
	ErrBadAction = errors.New("session: unknown action")
)

// DefaultTTL is how long an untouched session lives.
const DefaultTTL = time.Hour

// ActionKind names a recorded control call.
type ActionKind string

const (
	ActionAdvance ActionKind = "advance"
	ActionDisable ActionKind = "disable"
)

// Action is one recorded control call. For ActionAdvance N is the number of
// steps requested; for ActionDisable it is the node id.
type Action struct {
	Kind ActionKind `json:"kind"`
	N    int        `json:"n"`
}

// Session is the persisted form of one interactive search.
type Session struct {
	ID        string        `json:"id"`
	Config    config.Config `json:"config"`
	Actions   []Action      `json:"actions,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// New validates cfg and creates a session for it. A zero seed is replaced by a
// time-based one so that replays see the same edge weights.
func New(cfg config.Config, ttl time.Duration) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", astar.ErrConfig, err)
	}
	cfg = cfg.Clone()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Config:    cfg,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// IsExpired reports whether the session has passed its TTL.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch extends the session by ttl from now.
func (s *Session) Touch(ttl time.Duration) {
	s.ExpiresAt = time.Now().Add(ttl)
}

// RecordAdvance appends an advance of n steps, merging with a trailing advance.
func (s *Session) RecordAdvance(n int) {
	if n <= 0 {
		return
	}
	if last := len(s.Actions) - 1; last >= 0 && s.Actions[last].Kind == ActionAdvance {
		s.Actions[last].N += n
		return
	}
	s.Actions = append(s.Actions, Action{Kind: ActionAdvance, N: n})
}

// RecordDisable appends a disable of node id.
func (s *Session) RecordDisable(id int) {
	s.Actions = append(s.Actions, Action{Kind: ActionDisable, N: id})
}

// Reset replaces the configuration and drops every recorded action.
func (s *Session) Reset(cfg config.Config) error {
	fresh, err := New(cfg, 0)
	if err != nil {
		return err
	}
	s.Config = fresh.Config
	s.Actions = nil
	return nil
}

// Replay builds an engine from the session configuration and re-applies every
// recorded action. Step and disable errors are part of the recorded history
// (a halted engine stays halted) and are not returned.
func Replay(s *Session, opts ...astar.Option) (*astar.Engine, error) {
	e, err := astar.New(s.Config, opts...)
	if err != nil {
		return nil, err
	}
	for i, a := range s.Actions {
		switch a.Kind {
		case ActionAdvance:
			_, _ = e.Advance(a.N)
		case ActionDisable:
			_ = e.Disable(a.N)
		default:
			return nil, fmt.Errorf("%w: %q at %d", ErrBadAction, a.Kind, i)
		}
	}
	return e, nil
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. It returns ErrNotFound if the session
	// does not exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session until its ExpiresAt.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
