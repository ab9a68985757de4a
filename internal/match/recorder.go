package match

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/summoning/internal/model"
	"github.com/udisondev/summoning/internal/world"
)

// Store persists finished matches.
type Store interface {
	Save(ctx context.Context, res *model.MatchResult) error
}

// saveTimeout bounds one save. Saves are detached from Run's cancellation.
const saveTimeout = 5 * time.Second

// Recorder turns scene end notifications into match results and persists
// them off the simulation goroutine. A nil store only logs.
type Recorder struct {
	store     Store
	mapName   string
	mapDigest string
	pending   chan *model.MatchResult

	mu   sync.Mutex
	last *model.MatchResult
}

// NewRecorder creates a recorder for matches played on the given map.
func NewRecorder(store Store, mapName, mapDigest string) *Recorder {
	return &Recorder{
		store:     store,
		mapName:   mapName,
		mapDigest: mapDigest,
		pending:   make(chan *model.MatchResult, 4),
	}
}

// LevelComplete records a win. Called from the simulation goroutine.
func (r *Recorder) LevelComplete(res world.Result) {
	slog.Info("level complete", "survived", res.Elapsed.Round(time.Millisecond))
	r.enqueue(res)
}

// GameOver records a loss. Called from the simulation goroutine.
func (r *Recorder) GameOver(res world.Result) {
	slog.Info("game over", "survived", res.Elapsed.Round(time.Millisecond))
	r.enqueue(res)
}

func (r *Recorder) enqueue(res world.Result) {
	rec := &model.MatchResult{
		ID:              uuid.New(),
		Outcome:         res.Outcome.String(),
		Elapsed:         res.Elapsed,
		MapName:         r.mapName,
		MapDigest:       r.mapDigest,
		FriendlySpawned: res.Stats.FriendlySpawned,
		HostileSpawned:  res.Stats.HostileSpawned,
		Kills:           res.Stats.Kills,
		FinishedAt:      time.Now(),
	}

	r.mu.Lock()
	r.last = rec
	r.mu.Unlock()

	select {
	case r.pending <- rec:
	default:
		slog.Warn("match result dropped, recorder queue full", "id", rec.ID)
	}
}

// Last returns the most recent result, nil if none.
func (r *Recorder) Last() *model.MatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Run persists results until ctx is canceled (blocks). Results queued at
// cancellation are still flushed.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.flush(ctx)
			return ctx.Err()
		case rec := <-r.pending:
			r.persist(ctx, rec)
		}
	}
}

func (r *Recorder) flush(ctx context.Context) {
	for {
		select {
		case rec := <-r.pending:
			r.persist(ctx, rec)
		default:
			return
		}
	}
}

func (r *Recorder) persist(ctx context.Context, rec *model.MatchResult) {
	if r.store == nil {
		slog.Info("match result", "id", rec.ID, "outcome", rec.Outcome, "elapsed", rec.Elapsed)
		return
	}
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()
	if err := r.store.Save(sctx, rec); err != nil {
		slog.Error("saving match result", "id", rec.ID, "error", err)
		return
	}
	slog.Info("match result saved", "id", rec.ID, "outcome", rec.Outcome, "elapsed", rec.Elapsed)
}
