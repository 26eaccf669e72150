package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridastar/astar"
	"github.com/katalvlaran/gridastar/config"
	"github.com/katalvlaran/gridastar/session"
)

func randomConfig() config.Config {
	cfg := config.Default()
	cfg.Rows, cfg.Cols, cfg.Target = 6, 8, 48
	cfg.Weights = config.Weights{Min: 2, Max: 7}
	return cfg
}

func TestNew_FixesSeed(t *testing.T) {
	sess, err := session.New(randomConfig(), time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.NotZero(t, sess.Config.Seed)
	assert.False(t, sess.IsExpired())

	_, err = session.New(config.Config{}, time.Minute)
	assert.ErrorIs(t, err, astar.ErrConfig)
}

func TestRecordAdvance_Merges(t *testing.T) {
	sess, err := session.New(config.Default(), time.Minute)
	require.NoError(t, err)

	sess.RecordAdvance(1)
	sess.RecordAdvance(2)
	sess.RecordAdvance(0)
	sess.RecordDisable(40)
	sess.RecordAdvance(5)
	assert.Equal(t, []session.Action{
		{Kind: session.ActionAdvance, N: 3},
		{Kind: session.ActionDisable, N: 40},
		{Kind: session.ActionAdvance, N: 5},
	}, sess.Actions)
}

func TestReplay_MatchesDirectDriving(t *testing.T) {
	sess, err := session.New(randomConfig(), time.Minute)
	require.NoError(t, err)

	direct, err := astar.New(sess.Config)
	require.NoError(t, err)

	_, err = direct.Advance(4)
	require.NoError(t, err)
	sess.RecordAdvance(4)
	require.NoError(t, direct.Disable(20))
	sess.RecordDisable(20)
	_, err = direct.Advance(6)
	require.NoError(t, err)
	sess.RecordAdvance(6)

	replayed, err := session.Replay(sess)
	require.NoError(t, err)
	assert.Equal(t, direct.Snapshot(), replayed.Snapshot())
	assert.Equal(t, direct.Nodes(), replayed.Nodes())
	assert.Equal(t, direct.Graph().Edges(), replayed.Graph().Edges())
}

func TestReplay_RejectsUnknownAction(t *testing.T) {
	sess, err := session.New(config.Default(), time.Minute)
	require.NoError(t, err)
	sess.Actions = append(sess.Actions, session.Action{Kind: "teleport"})
	_, err = session.Replay(sess)
	assert.ErrorIs(t, err, session.ErrBadAction)
}

func TestSessionReset(t *testing.T) {
	sess, err := session.New(config.Default(), time.Minute)
	require.NoError(t, err)
	sess.RecordAdvance(3)

	bad := config.Default()
	bad.Target = 0
	require.Error(t, sess.Reset(bad))
	assert.Len(t, sess.Actions, 1)

	require.NoError(t, sess.Reset(randomConfig()))
	assert.Empty(t, sess.Actions)
	assert.Equal(t, 48, sess.Config.Target)
	assert.NotZero(t, sess.Config.Seed)
}

func testStore(t *testing.T, store session.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)

	sess, err := session.New(randomConfig(), time.Minute)
	require.NoError(t, err)
	sess.RecordAdvance(2)
	require.NoError(t, store.Set(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.Config, got.Config)
	assert.Equal(t, sess.Actions, got.Actions)

	got.RecordAdvance(1)
	again, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Actions[0].N, "stored copy is independent")

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.NoError(t, store.Delete(ctx, sess.ID))
}

func TestMemoryStore(t *testing.T) {
	testStore(t, session.NewMemoryStore())
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	sess, err := session.New(config.Default(), time.Minute)
	require.NoError(t, err)
	sess.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, store.Set(ctx, sess))

	other, err := session.New(config.Default(), time.Minute)
	require.NoError(t, err)
	other.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, store.Set(ctx, other))
	assert.Equal(t, 2, store.Len())

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, store.Cleanup(ctx))
	assert.Equal(t, 0, store.Len())
}

// TestRedisStore runs against a live server when GRIDASTAR_REDIS_ADDR is set.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("GRIDASTAR_REDIS_ADDR")
	if addr == "" {
		t.Skip("GRIDASTAR_REDIS_ADDR not set")
	}
	store, err := session.NewRedisStore(context.Background(), session.RedisConfig{
		Addr:      addr,
		KeyPrefix: "gridastar:test:",
	})
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "gridastar:test:abc", store.Key("abc"))
	testStore(t, store)
}
