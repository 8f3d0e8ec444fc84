package service

import (
	"context"
	"crypto/subtle"
	"log"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"tradeReportBackend/internal/apperr"
	"tradeReportBackend/models"
	"tradeReportBackend/repository"
)

// RetentionLimit is the number of signals kept; older ones are trimmed on ingest.
const RetentionLimit = 5

// SignalService ingests webhook payloads into the capped signals table.
type SignalService struct {
	Signals repository.SignalRepositoryI
	Secret  string
}

// Ingest authenticates the caller by shared secret, stores raw and trims the
// table back to RetentionLimit rows.
func (s *SignalService) Ingest(ctx context.Context, secret, raw string) (*models.Signal, error) {
	if err := s.CheckSecret(secret); err != nil {
		return nil, err
	}
	parsed, err := parsePlaceholder(raw)
	if err != nil {
		return nil, apperr.Internal("encode parsed content", err)
	}
	sig, trimmed, err := s.Signals.InsertAndTrim(ctx, raw, parsed, RetentionLimit)
	if err != nil {
		return nil, apperr.Internal("store signal", err)
	}
	if trimmed > 0 {
		log.Printf("signals: stored id=%d, trimmed %d old row(s)", sig.ID, trimmed)
	}
	return sig, nil
}

// CheckSecret compares the presented secret with the configured one.
// An unconfigured secret rejects every caller.
func (s *SignalService) CheckSecret(secret string) error {
	if s.Secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(s.Secret)) != 1 {
		return apperr.Unauthorized("Invalid webhook secret")
	}
	return nil
}

// ListRecent returns at most RetentionLimit signals, newest first.
func (s *SignalService) ListRecent(ctx context.Context) ([]models.Signal, error) {
	list, err := s.Signals.ListRecent(ctx, RetentionLimit)
	if err != nil {
		return nil, apperr.Internal("list signals", err)
	}
	return list, nil
}

// parsePlaceholder returns the stored form of the structured payload.
// Parsing is not implemented yet, so this is always an empty object.
// TODO: parse TradingView alert text ("BUY EURUSD ...") into fields once the alert template is fixed.
func parsePlaceholder(_ string) (string, error) {
	b, err := protojson.Marshal(&structpb.Struct{})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
