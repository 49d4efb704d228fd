// internal/repository/postgres/billing_event_repo.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BillingEventRepository records processed billing webhook events so that
// redelivered events never double-count a redemption.
type BillingEventRepository struct {
	db *pgxpool.Pool
}

func NewBillingEventRepository(db *pgxpool.Pool) *BillingEventRepository {
	return &BillingEventRepository{db: db}
}

// RecordTx inserts the event id inside a transaction. Returns false when
// the event was already processed.
func (r *BillingEventRepository) RecordTx(ctx context.Context, tx pgx.Tx, eventID string, campaignID int64) (bool, error) {
	query := `
		INSERT INTO billing_events (event_id, campaign_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id) DO NOTHING
	`

	result, err := tx.Exec(ctx, query, eventID, campaignID)
	if err != nil {
		return false, fmt.Errorf("failed to record billing event: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
