package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/requestid"
)

// PriceAdjuster applies the bulk price adjustment.
type PriceAdjuster interface {
	AdjustPrices(ctx context.Context) ([]entities.Book, error)
}

// AdjustPricesTask runs a bulk price adjustment off the request path.
// RequestID links the resulting audit event to the request that enqueued it.
type AdjustPricesTask struct {
	RequestID string `json:"request_id,omitempty"`
}

func (t AdjustPricesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name: "adjust_prices",
		// A retry would compound the multiplier.
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func AdjustPricesProcessor(adjuster PriceAdjuster, logger *zap.Logger) backlite.QueueProcessor[AdjustPricesTask] {
	return func(ctx context.Context, task AdjustPricesTask) error {
		if adjuster == nil {
			return fmt.Errorf("price adjuster not configured")
		}
		if task.RequestID != "" {
			ctx = requestid.NewContext(ctx, task.RequestID)
		}

		books, err := adjuster.AdjustPrices(ctx)
		if err != nil {
			return fmt.Errorf("adjust prices: %w", err)
		}

		logger.Info("adjusted book prices", zap.Int("count", len(books)), zap.String("request_id", task.RequestID))
		return nil
	}
}

func NewAdjustPricesQueue(adjuster PriceAdjuster, logger *zap.Logger) backlite.Queue {
	return backlite.NewQueue(AdjustPricesProcessor(adjuster, logger))
}
