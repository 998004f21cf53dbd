package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/tasks"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// TaskEnqueuer puts a task on the background queue.
type TaskEnqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// MaintenanceScheduler periodically enqueues the audit retention cleanup. The
// work itself runs on the task queue. Orphan tags are only removed through the
// admin endpoint.
type MaintenanceScheduler struct {
	enqueuer      TaskEnqueuer
	schedule      string
	retentionDays int
	logger        *zap.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewMaintenanceScheduler(enqueuer TaskEnqueuer, schedule string, retentionDays int, logger *zap.Logger) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		enqueuer:      enqueuer,
		schedule:      schedule,
		retentionDays: retentionDays,
		logger:        logger.Named("maintenance"),
		cron:          cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start registers the cleanup job and starts the cron loop. The scheduler
// stops on its own when ctx is cancelled.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.enqueueCleanups()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("maintenance scheduler started",
		zap.String("schedule", s.schedule),
		zap.Time("next_run", s.cron.Entry(entryID).Next))

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job to finish. Safe to call more than once.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	s.logger.Info("maintenance scheduler stopped")
}

// RunNow enqueues the scheduled cleanup immediately.
func (s *MaintenanceScheduler) RunNow() error {
	return s.enqueueCleanups()
}

func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next cleanup will be enqueued, or nil when stopped.
func (s *MaintenanceScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *MaintenanceScheduler) enqueueCleanups() error {
	job := tasks.CleanupAuditEventsTask{RetentionDays: s.retentionDays}
	name := job.Config().Name

	id, err := s.enqueuer.Enqueue(job)
	if err != nil {
		s.logger.Error("failed to enqueue maintenance task", zap.String("task", name), zap.Error(err))
		return fmt.Errorf("enqueue %s: %w", name, err)
	}
	s.logger.Info("enqueued maintenance task", zap.String("task", name), zap.String("task_id", id))
	return nil
}
