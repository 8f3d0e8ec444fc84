package service

import (
	"context"
	"strings"

	"tradeReportBackend/internal/apperr"
	"tradeReportBackend/models"
	"tradeReportBackend/repository"
)

// ReportService publishes and reads reports.
type ReportService struct {
	Reports repository.ReportRepositoryI
}

// Create stores a report authored by authorID, which must come from the
// authenticated principal.
func (s *ReportService) Create(ctx context.Context, title, content string, authorID int64) (*models.Report, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("Title and content are required")
	}
	r, err := s.Reports.Create(ctx, &models.Report{Title: title, Content: content, AuthorID: authorID})
	if err != nil {
		return nil, apperr.Internal("create report", err)
	}
	return r, nil
}

// List returns every report, newest first. Visibility does not depend on the caller.
func (s *ReportService) List(ctx context.Context) ([]models.ReportSummary, error) {
	list, err := s.Reports.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list reports", err)
	}
	return list, nil
}

func (s *ReportService) Get(ctx context.Context, id int64) (*models.ReportDetail, error) {
	d, err := s.Reports.GetDetail(ctx, id)
	if err != nil {
		return nil, apperr.Internal("get report", err)
	}
	if d == nil {
		return nil, apperr.NotFound("Report not found")
	}
	return d, nil
}
