package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/database/audit"
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/requestid"
)

// Service records catalog changes in the audit trail. Writes happen in the
// background; Wait blocks until pending writes finish.
type Service struct {
	repo   *audit.Repository
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Log records an audit event synchronously.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			s.logger.Error("failed to log audit event",
				zap.String("action", event.Action),
				zap.String("entity_key", event.EntityKey),
				zap.Error(err))
		}
	}()
}

// Wait blocks until all background writes have completed.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) LogCreate(ctx context.Context, entityType, entityKey, description string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      entityType + "_create",
		Description: truncate(description, 500),
		EntityType:  entityType,
		EntityKey:   entityKey,
		RequestID:   requestid.FromContext(ctx),
		Status:      entities.AuditStatusSuccess,
	})
}

func (s *Service) LogDelete(ctx context.Context, entityType, entityKey, description string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      entityType + "_delete",
		Description: truncate(description, 500),
		EntityType:  entityType,
		EntityKey:   entityKey,
		RequestID:   requestid.FromContext(ctx),
		Status:      entities.AuditStatusSuccess,
	})
}

// LogPriceAdjust records a bulk price adjustment and its outcome. snapshot
// names the file holding the previous prices, if one was written.
func (s *Service) LogPriceAdjust(ctx context.Context, factor float64, booksCount int, snapshot string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventPriceAdjust,
		Action:      "bulk_price_adjust",
		Description: fmt.Sprintf("Adjusted prices of %d books by factor %g", booksCount, factor),
		EntityType:  "book",
		RequestID:   requestid.FromContext(ctx),
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"factor":      factor,
		"books_count": booksCount,
	}
	if snapshot != "" {
		metadata["snapshot"] = snapshot
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogMaintenance records the outcome of a background maintenance job.
func (s *Service) LogMaintenance(action, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventMaintenance,
		Action:      action,
		Description: truncate(description, 500),
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// GetEventsForEntity returns the history of one book, author, publisher or tag.
func (s *Service) GetEventsForEntity(entityType, entityKey string) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(entityType, entityKey)
}

// GetEvents retrieves paginated audit events, optionally filtered by type.
func (s *Service) GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(eventType, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
