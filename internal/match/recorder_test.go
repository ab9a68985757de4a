package match

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/summoning/internal/model"
	"github.com/udisondev/summoning/internal/world"
)

type memoryStore struct {
	mu    sync.Mutex
	saved []*model.MatchResult
	err   error
}

func (s *memoryStore) Save(_ context.Context, res *model.MatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, res)
	return nil
}

func (s *memoryStore) Saved() []*model.MatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.MatchResult(nil), s.saved...)
}

func TestRecorder_PersistsLevelComplete(t *testing.T) {
	store := &memoryStore{}
	rec := NewRecorder(store, "level1", "abc")

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- rec.Run(ctx) }()

	rec.LevelComplete(world.Result{
		Outcome: world.OutcomeWon,
		Elapsed: 90 * time.Second,
		Stats:   world.Stats{FriendlySpawned: 5, HostileSpawned: 9, Kills: 4},
	})

	require.Eventually(t, func() bool { return len(store.Saved()) == 1 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	got := store.Saved()[0]
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "won", got.Outcome)
	assert.True(t, got.Won())
	assert.Equal(t, 90*time.Second, got.Elapsed)
	assert.Equal(t, "level1", got.MapName)
	assert.Equal(t, "abc", got.MapDigest)
	assert.Equal(t, 5, got.FriendlySpawned)
	assert.Equal(t, 9, got.HostileSpawned)
	assert.Equal(t, 4, got.Kills)
	assert.Same(t, got, rec.Last())
}

func TestRecorder_FlushesOnCancel(t *testing.T) {
	store := &memoryStore{}
	rec := NewRecorder(store, "level1", "abc")

	rec.GameOver(world.Result{Outcome: world.OutcomeLost, Elapsed: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := rec.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, store.Saved(), 1)
	assert.Equal(t, "lost", store.Saved()[0].Outcome)
}

func TestRecorder_StoreErrorIsLogged(t *testing.T) {
	store := &memoryStore{err: errors.New("connection refused")}
	rec := NewRecorder(store, "level1", "abc")

	rec.GameOver(world.Result{Outcome: world.OutcomeLost})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, rec.Run(ctx), context.Canceled)
	assert.Empty(t, store.Saved())
	assert.NotNil(t, rec.Last())
}

func TestRecorder_NilStore(t *testing.T) {
	rec := NewRecorder(nil, "level1", "abc")
	assert.Nil(t, rec.Last())

	rec.LevelComplete(world.Result{Outcome: world.OutcomeWon})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, rec.Run(ctx), context.Canceled)
	assert.Equal(t, "won", rec.Last().Outcome)
}
