package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tradeReportBackend/internal/db"
	"tradeReportBackend/models"
)

type ReportRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewReportRepository(d *sql.DB) *ReportRepository {
	return &ReportRepository{db: d, now: time.Now}
}

// Create inserts the report; CreatedAt is set here and the generated ID is filled in.
func (r *ReportRepository) Create(ctx context.Context, rep *models.Report) (*models.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	created := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reports (title, content, author_id, created_at) VALUES (?, ?, ?, ?)`,
		rep.Title, rep.Content, rep.AuthorID, db.FormatTime(created))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *rep
	out.ID = id
	out.CreatedAt = created
	return &out, nil
}

// List returns every report, newest first, with the author's email.
func (r *ReportRepository) List(ctx context.Context) ([]models.ReportSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
        SELECT r.id, r.title, r.created_at, u.email
        FROM reports r
        JOIN users u ON r.author_id = u.id
        ORDER BY r.created_at DESC, r.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.ReportSummary{}
	for rows.Next() {
		var (
			s       models.ReportSummary
			created string
		)
		if err := rows.Scan(&s.ID, &s.Title, &created, &s.AuthorEmail); err != nil {
			return nil, err
		}
		if s.CreatedAt, err = db.ParseTime(created); err != nil {
			return nil, fmt.Errorf("report %d created_at: %w", s.ID, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDetail returns nil, nil when the report does not exist.
func (r *ReportRepository) GetDetail(ctx context.Context, id int64) (*models.ReportDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var (
		d       models.ReportDetail
		created string
	)
	err := r.db.QueryRowContext(ctx, `
        SELECT r.id, r.title, r.content, r.created_at, u.email
        FROM reports r
        JOIN users u ON r.author_id = u.id
        WHERE r.id = ?`, id).Scan(&d.ID, &d.Title, &d.Content, &created, &d.AuthorEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if d.CreatedAt, err = db.ParseTime(created); err != nil {
		return nil, fmt.Errorf("report %d created_at: %w", d.ID, err)
	}
	return &d, nil
}
