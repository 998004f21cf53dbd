package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/entities"
)

type AuditController struct {
	reader AuditReader
	logger *zap.Logger
}

func NewAuditController(reader AuditReader, logger *zap.Logger) *AuditController {
	return &AuditController{reader: reader, logger: logger}
}

// GetAuditEvents returns paginated audit events, newest first. With
// entityType and entityKey it returns the history of that one entity instead.
// GET /api/audit?type=&entityType=&entityKey=&limit=&offset=
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 25)
	if limit < 1 || limit > 100 {
		limit = 25
	}
	offset := parseIntQuery(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	entityType, entityKey := c.Query("entityType"), c.Query("entityKey")
	if entityKey != "" || entityType != "" {
		if entityKey == "" || entityType == "" {
			respondBadRequest(c, "entityType and entityKey must be given together")
			return
		}
		ac.entityHistory(c, entityType, entityKey, limit, offset)
		return
	}

	events, total, err := ac.reader.GetEvents(entities.AuditEventType(c.Query("type")), limit, offset)
	if err != nil {
		respondInternalError(c, ac.logger, err, "audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}

func (ac *AuditController) entityHistory(c *gin.Context, entityType, entityKey string, limit, offset int) {
	events, err := ac.reader.GetEventsForEntity(entityType, entityKey)
	if err != nil {
		respondInternalError(c, ac.logger, err, "audit entity history")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	total := int64(len(events))
	page := lo.Slice(events, offset, offset+limit)
	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    page,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(page)) < total,
	})
}
