package services

import (
	"context"
	"encoding/json"
	"time"

	"finboard/internal/events"
	"finboard/internal/logger"
	"finboard/internal/models"
	"finboard/internal/store"
)

// auditService handles audit log recording.
type auditService struct {
	logs      store.AuditLogs
	publisher events.Publisher
}

// NewAuditService creates a new AuditServicer. Entries are persisted to logs
// and then published as change events.
func NewAuditService(logs store.AuditLogs, publisher events.Publisher) AuditServicer {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &auditService{logs: logs, publisher: publisher}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.logs.AppendAudit(ctx, entry); err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}

	event := events.Event{
		Action:       action,
		UserID:       userID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Changes:      changesJSON,
		OccurredAt:   time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Get().Warnw("failed to publish audit event", "error", err, "action", action, "user_id", userID)
	}
}
