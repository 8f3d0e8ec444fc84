package models

import "time"

// Report is a published piece of rich-text content authored by an admin.
type Report struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ReportSummary is a list row: the report without its body, joined with the author email.
type ReportSummary struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"created_at"`
	AuthorEmail string    `json:"authorEmail"`
}

// ReportDetail is a single report with its body and author email.
type ReportDetail struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	AuthorEmail string    `json:"authorEmail"`
}
