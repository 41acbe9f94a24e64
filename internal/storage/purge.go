package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// PurgeResult counts the outcome of PurgePosition.
type PurgeResult struct {
	Found   int `json:"found"`
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// PurgePosition deletes every candidate of one position. A failed delete is
// logged and counted; the remaining candidates are still processed.
func PurgePosition(ctx context.Context, s Store, position string, logger *zap.Logger) (PurgeResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	candidates, err := s.ListByPosition(ctx, position)
	if err != nil {
		return PurgeResult{}, fmt.Errorf("list %s candidates: %w", position, err)
	}

	res := PurgeResult{Found: len(candidates)}
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := s.Delete(ctx, c.ID); err != nil {
			logger.Warn("Failed to delete candidate",
				zap.String("candidate_id", c.ID), zap.String("name", c.Name), zap.Error(err))
			res.Failed++
			continue
		}
		res.Deleted++
	}
	logger.Info("Position purged",
		zap.String("position", position), zap.Int("deleted", res.Deleted), zap.Int("failed", res.Failed))
	return res, nil
}
