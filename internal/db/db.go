// Package db provides optional PostgreSQL persistence of analysis runs.
// Only the derived result and the response timestamp are stored; the raw
// answers never leave the request.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/skill-profiler/internal/types"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// AnalysisRecord is one persisted analysis run.
type AnalysisRecord struct {
	ID                 uuid.UUID `json:"id"`
	ReferentialVersion string    `json:"referential_version"`
	ResponseTimestamp  string    `json:"response_timestamp,omitempty"`
	GlobalScore        float64   `json:"global_score"`
	CreatedAt          time.Time `json:"created_at"`
}

// SaveAnalysis stores an analysis result as JSON and returns its id.
func (db *DB) SaveAnalysis(ctx context.Context, referentialVersion, responseTimestamp string, result *types.AnalysisResult) (uuid.UUID, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO analyses (referential_version, response_timestamp, global_score, result)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		referentialVersion, responseTimestamp, result.GlobalScore, payload,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return id, nil
}

// GetAnalysis returns one stored analysis result, or nil when absent.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*types.AnalysisResult, error) {
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT result FROM analyses WHERE id = $1`, id,
	).Scan(&payload)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis %s: %w", id, err)
	}
	return &result, nil
}

// ListAnalyses returns the most recent analysis records, newest first.
func (db *DB) ListAnalyses(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, referential_version, response_timestamp, global_score, created_at
		 FROM analyses
		 ORDER BY created_at DESC
		 LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		if err := rows.Scan(&rec.ID, &rec.ReferentialVersion, &rec.ResponseTimestamp, &rec.GlobalScore, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
