package models

import "time"

// Signal is a raw trading-signal payload received from the webhook.
// ParsedContent holds the JSON placeholder for a future structured form.
type Signal struct {
	ID            int64     `db:"id" json:"id"`
	RawContent    string    `db:"raw_content" json:"raw_content"`
	ParsedContent string    `db:"parsed_content" json:"-"`
	ReceivedAt    time.Time `db:"received_at" json:"received_at"`
}
