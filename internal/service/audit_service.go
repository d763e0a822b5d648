package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/events"
)

// AuditService writes a structured log line for every gateway event. It is
// the diagnostics trail for session and commerce activity; nothing consumes
// it programmatically.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService builds the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes the audit logger to every event.
func (s *AuditService) RegisterHandlers() {
	s.dispatcher.SubscribeAll(s.logEvent)
}

func (s *AuditService) logEvent(_ context.Context, event events.Event) error {
	s.logger.Info("audit",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("session_id", event.SessionID),
		zap.Any("payload", event.Payload),
	)
	return nil
}
