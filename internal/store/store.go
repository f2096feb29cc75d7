// Package store handles SQLite persistence of completed charges.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/odesza/chargehud/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the charge archive.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS charges (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			start_tick INTEGER NOT NULL,
			end_tick INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			source TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_charges_ended_at ON charges(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_charges_frames ON charges(frames);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertCharge stores one completed charge.
func (s *Store) InsertCharge(ctx context.Context, rec model.ChargeRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO charges (started_at, ended_at, start_tick, end_tick, frames, source)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.StartTick,
		rec.EndTick,
		rec.Frames,
		rec.Source,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListCharges returns archived charges filtered by the stats config, oldest
// first.
func (s *Store) ListCharges(ctx context.Context, cfg model.StatsConfig) ([]model.ChargeRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT started_at, ended_at, start_tick, end_tick, frames, source
		FROM charges
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var charges []model.ChargeRecord
	for rows.Next() {
		var rec model.ChargeRecord
		var startedAt, endedAt string
		if err := rows.Scan(&startedAt, &endedAt, &rec.StartTick, &rec.EndTick, &rec.Frames, &rec.Source); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		charges = append(charges, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(charges) > cfg.Last {
		charges = charges[len(charges)-cfg.Last:]
	}
	return charges, nil
}

// AggregateCharges summarizes the archive under the given filters.
func (s *Store) AggregateCharges(ctx context.Context, cfg model.StatsConfig) (model.ChargeAggregate, error) {
	charges, err := s.ListCharges(ctx, cfg)
	if err != nil {
		return model.ChargeAggregate{}, err
	}
	var agg model.ChargeAggregate
	if len(charges) == 0 {
		return agg, nil
	}
	agg.Count = len(charges)
	agg.MinFrames = charges[0].Frames
	var sum uint64
	for _, rec := range charges {
		if rec.Frames < agg.MinFrames {
			agg.MinFrames = rec.Frames
		}
		if rec.Frames > agg.MaxFrames {
			agg.MaxFrames = rec.Frames
		}
		sum += rec.Frames
	}
	agg.MeanFrames = float64(sum) / float64(agg.Count)
	return agg, nil
}
