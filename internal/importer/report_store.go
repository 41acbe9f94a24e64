package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"candidate-sync/internal/store"
)

const lastReportKey = "candidate-sync:import:last_report"

// ErrNoReport is returned when no run has stored a report yet.
var ErrNoReport = errors.New("no import report yet")

// ReportStore keeps the report of the latest run in a KV store.
type ReportStore struct {
	kv  store.KV
	ttl time.Duration
}

// NewReportStore stores reports in kv; ttl 0 keeps them until overwritten.
func NewReportStore(kv store.KV, ttl time.Duration) *ReportStore {
	return &ReportStore{kv: kv, ttl: ttl}
}

func (s *ReportStore) Save(ctx context.Context, r *Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return s.kv.Set(ctx, lastReportKey, string(data), s.ttl)
}

func (s *ReportStore) Last(ctx context.Context) (*Report, error) {
	data, err := s.kv.Get(ctx, lastReportKey)
	if errors.Is(err, store.ErrMiss) {
		return nil, ErrNoReport
	}
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
