// internal/repository/postgres/contest_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fotolio-service/internal/domain/contest"
	xerrors "fotolio-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type ContestRepository struct {
	db *pgxpool.Pool
}

func NewContestRepository(db *pgxpool.Pool) *ContestRepository {
	return &ContestRepository{db: db}
}

// CreateEntry creates a new contest entry
func (r *ContestRepository) CreateEntry(ctx context.Context, e *contest.PhotoEntry) error {
	query := `
		INSERT INTO photo_entries (title, photographer)
		VALUES ($1, $2)
		RETURNING id, overall_score, jury_count, awards, submitted_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, e.Title, e.Photographer).Scan(
		&e.ID, &e.OverallScore, &e.JuryCount, &e.Awards, &e.SubmittedAt, &e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	return nil
}

// FindEntry retrieves an entry with its jury aggregate
func (r *ContestRepository) FindEntry(ctx context.Context, id int64) (*contest.PhotoEntry, error) {
	query := `
		SELECT id, title, photographer, overall_score, jury_count, awards, submitted_at, updated_at
		FROM photo_entries
		WHERE id = $1
	`

	var e contest.PhotoEntry
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Photographer, &e.OverallScore, &e.JuryCount, &e.Awards, &e.SubmittedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}

	return &e, nil
}

// RecordScore upserts one juror's score and recomputes the entry
// aggregate in the same transaction. A juror re-scoring an entry
// replaces their previous score instead of adding a vote.
func (r *ContestRepository) RecordScore(ctx context.Context, entryID, jurorID int64, score float64) (*contest.PhotoEntry, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	upsert := `
		INSERT INTO jury_scores (entry_id, juror_id, score)
		VALUES ($1, $2, $3)
		ON CONFLICT (entry_id, juror_id) DO UPDATE SET score = EXCLUDED.score
	`
	if _, err := tx.Exec(ctx, upsert, entryID, jurorID, score); err != nil {
		return nil, fmt.Errorf("failed to record jury score: %w", err)
	}

	recompute := `
		UPDATE photo_entries
		SET overall_score = agg.avg_score,
		    jury_count = agg.votes,
		    updated_at = $2
		FROM (
			SELECT AVG(score) AS avg_score, COUNT(*) AS votes
			FROM jury_scores
			WHERE entry_id = $1
		) agg
		WHERE id = $1
		RETURNING id, title, photographer, overall_score, jury_count, awards, submitted_at, updated_at
	`

	var e contest.PhotoEntry
	err = tx.QueryRow(ctx, recompute, entryID, time.Now()).Scan(
		&e.ID, &e.Title, &e.Photographer, &e.OverallScore, &e.JuryCount, &e.Awards, &e.SubmittedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to recompute entry aggregate: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &e, nil
}

// SetAwards replaces the granted award list for an entry
func (r *ContestRepository) SetAwards(ctx context.Context, id int64, awards []string) error {
	query := `UPDATE photo_entries SET awards = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, pq.StringArray(awards), time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set awards: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
