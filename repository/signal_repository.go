package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tradeReportBackend/internal/db"
	"tradeReportBackend/models"
)

// recency is the total order used for retention and listing.
// id breaks ties between equal received_at values.
const recency = `received_at DESC, id DESC`

type SignalRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSignalRepository(d *sql.DB) *SignalRepository {
	return &SignalRepository{db: d, now: time.Now}
}

// InsertAndTrim stores a signal and then deletes every row outside the keep
// most recent ones. Both statements run in one transaction, so no reader
// ever observes more than keep rows. Returns the new signal and the number
// of rows trimmed.
func (r *SignalRepository) InsertAndTrim(ctx context.Context, raw, parsed string, keep int) (*models.Signal, int64, error) {
	if keep <= 0 {
		return nil, 0, fmt.Errorf("keep must be positive, got %d", keep)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	sig, err := r.insert(ctx, tx, raw, parsed)
	if err != nil {
		_ = tx.Rollback()
		return nil, 0, err
	}
	trimmed, err := r.trim(ctx, tx, keep)
	if err != nil {
		_ = tx.Rollback()
		return nil, 0, err
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return sig, trimmed, nil
}

func (r *SignalRepository) insert(ctx context.Context, q queryer, raw, parsed string) (*models.Signal, error) {
	received := r.now().UTC()
	res, err := q.ExecContext(ctx,
		`INSERT INTO signals (raw_content, parsed_content, received_at) VALUES (?, ?, ?)`,
		raw, parsed, db.FormatTime(received))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Signal{ID: id, RawContent: raw, ParsedContent: parsed, ReceivedAt: received}, nil
}

func (r *SignalRepository) trim(ctx context.Context, q queryer, keep int) (int64, error) {
	res, err := q.ExecContext(ctx, `
        DELETE FROM signals
        WHERE id NOT IN (
            SELECT id FROM signals ORDER BY `+recency+` LIMIT ?
        )`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListRecent returns up to limit signals, most recent first.
func (r *SignalRepository) ListRecent(ctx context.Context, limit int) ([]models.Signal, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, raw_content, parsed_content, received_at FROM signals ORDER BY `+recency+` LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Signal{}
	for rows.Next() {
		var (
			s        models.Signal
			received string
		)
		if err := rows.Scan(&s.ID, &s.RawContent, &s.ParsedContent, &received); err != nil {
			return nil, err
		}
		if s.ReceivedAt, err = db.ParseTime(received); err != nil {
			return nil, fmt.Errorf("signal %d received_at: %w", s.ID, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
