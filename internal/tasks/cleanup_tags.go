package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"
)

// OrphanTagsCleaner deletes tags that no book references.
type OrphanTagsCleaner interface {
	DeleteOrphans(ctx context.Context) (int64, error)
}

// MaintenanceRecorder receives the outcome of cleanup jobs.
type MaintenanceRecorder interface {
	LogMaintenance(action, description string, err error)
}

type CleanupOrphanTagsTask struct{}

func (t CleanupOrphanTagsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_orphan_tags",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupOrphanTagsProcessor removes unused tags. recorder may be nil.
func CleanupOrphanTagsProcessor(cleaner OrphanTagsCleaner, recorder MaintenanceRecorder, logger *zap.Logger) backlite.QueueProcessor[CleanupOrphanTagsTask] {
	return func(ctx context.Context, task CleanupOrphanTagsTask) error {
		if cleaner == nil {
			return fmt.Errorf("orphan tags cleaner not configured")
		}

		deleted, err := cleaner.DeleteOrphans(ctx)
		if recorder != nil {
			recorder.LogMaintenance("cleanup_orphan_tags", fmt.Sprintf("Removed %d orphan tags", deleted), err)
		}
		if err != nil {
			return fmt.Errorf("cleanup orphan tags: %w", err)
		}

		logger.Info("cleaned up orphan tags", zap.Int64("count", deleted))
		return nil
	}
}

func NewCleanupOrphanTagsQueue(cleaner OrphanTagsCleaner, recorder MaintenanceRecorder, logger *zap.Logger) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanTagsProcessor(cleaner, recorder, logger))
}
