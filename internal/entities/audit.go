package entities

import "time"

type AuditEventType string

const (
	AuditEventCreate      AuditEventType = "create"
	AuditEventDelete      AuditEventType = "delete"
	AuditEventPriceAdjust AuditEventType = "price_adjust"
	AuditEventMaintenance AuditEventType = "maintenance"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"eventType"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g., "book_create", "author_delete"
	Description string         `gorm:"size:500" json:"description"` // Human-readable summary
	EntityType  string         `gorm:"size:50" json:"entityType"`   // "book", "author", "publisher", "tag"
	EntityKey   string         `gorm:"index;size:64" json:"entityKey,omitempty"`
	Metadata    string         `gorm:"type:text" json:"metadata,omitempty"` // JSON for extra data
	RequestID   string         `gorm:"size:64" json:"requestId,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"errorMsg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
