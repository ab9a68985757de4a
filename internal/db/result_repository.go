package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/summoning/internal/model"
)

// ResultRepository stores finished matches.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new match result repository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Save inserts res. A zero ID is replaced with a fresh UUID.
func (r *ResultRepository) Save(ctx context.Context, res *model.MatchResult) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	if res.FinishedAt.IsZero() {
		res.FinishedAt = time.Now()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO match_results
			(id, outcome, elapsed_ms, map_name, map_digest,
			 friendly_spawned, hostile_spawned, kills, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		res.ID, res.Outcome, res.Elapsed.Milliseconds(), res.MapName, res.MapDigest,
		res.FriendlySpawned, res.HostileSpawned, res.Kills, res.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("saving match result %s: %w", res.ID, err)
	}
	return nil
}

// Get loads one result by ID. Returns nil, nil if it does not exist.
func (r *ResultRepository) Get(ctx context.Context, id uuid.UUID) (*model.MatchResult, error) {
	row := r.pool.QueryRow(ctx, selectResults+` WHERE id = $1`, id)
	res, err := scanResult(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading match result %s: %w", id, err)
	}
	return res, nil
}

// Best returns up to limit results on the map with the given digest: wins
// first, fastest first, then losses, longest survival first.
func (r *ResultRepository) Best(ctx context.Context, mapDigest string, limit int) ([]*model.MatchResult, error) {
	rows, err := r.pool.Query(ctx, selectResults+`
		WHERE map_digest = $1
		ORDER BY (outcome = 'won') DESC,
		         CASE WHEN outcome = 'won' THEN elapsed_ms END ASC,
		         elapsed_ms DESC
		LIMIT $2`, mapDigest, limit)
	if err != nil {
		return nil, fmt.Errorf("loading best results: %w", err)
	}
	defer rows.Close()

	var results []*model.MatchResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning match result row: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating match result rows: %w", err)
	}
	return results, nil
}

// Count returns the number of stored results.
func (r *ResultRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM match_results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting match results: %w", err)
	}
	return n, nil
}

const selectResults = `
	SELECT id, outcome, elapsed_ms, map_name, map_digest,
	       friendly_spawned, hostile_spawned, kills, finished_at
	FROM match_results`

func scanResult(row pgx.Row) (*model.MatchResult, error) {
	var (
		res       model.MatchResult
		elapsedMs int64
	)
	err := row.Scan(&res.ID, &res.Outcome, &elapsedMs, &res.MapName, &res.MapDigest,
		&res.FriendlySpawned, &res.HostileSpawned, &res.Kills, &res.FinishedAt)
	if err != nil {
		return nil, err
	}
	res.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	return &res, nil
}
