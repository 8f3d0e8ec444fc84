package repository

import (
	"context"
	"database/sql"

	"tradeReportBackend/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRoleByEmail(ctx context.Context, email string, role models.Role) error
}

// ReportRepositoryI defines operations on Report entities.
type ReportRepositoryI interface {
	Create(ctx context.Context, r *models.Report) (*models.Report, error)
	List(ctx context.Context) ([]models.ReportSummary, error)
	GetDetail(ctx context.Context, id int64) (*models.ReportDetail, error)
}

// SignalRepositoryI defines operations on the capped signals table.
type SignalRepositoryI interface {
	InsertAndTrim(ctx context.Context, raw, parsed string, keep int) (*models.Signal, int64, error)
	ListRecent(ctx context.Context, limit int) ([]models.Signal, error)
}

var (
	_ UserRepositoryI   = (*UserRepository)(nil)
	_ ReportRepositoryI = (*ReportRepository)(nil)
	_ SignalRepositoryI = (*SignalRepository)(nil)
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
