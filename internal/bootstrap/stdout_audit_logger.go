package bootstrap

import (
	"context"
	"time"

	"github.com/SchlottiP/employee-test/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger emits audit entries through the process-wide zap logger.
// Entries are tagged with the owning service and, when present, the request
// id, so the audit stream stays separable from the regular request logs.
type StdoutAuditLogger struct {
	service string
}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{service: "employee-service"}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("service", l.service),
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	fields = append(fields, zap.Any("meta", entry.Meta))

	zap.L().Named("audit").Info("audit event", fields...)
}
