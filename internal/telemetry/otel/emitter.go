package otel

import (
	"context"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	auditdomain "multitenant-admin/backend/internal/audit/domain"
)

// AuditEmitter mirrors audit entries to a telemetry backend.
type AuditEmitter interface {
	Emit(ctx context.Context, entry *auditdomain.Log)
}

// NewAuditEmitter returns an AuditEmitter that sends audit entries as OTel
// log records through the provider. A nil provider yields a no-op emitter.
func NewAuditEmitter(provider *sdklog.LoggerProvider) AuditEmitter {
	if provider == nil {
		return noopEmitter{}
	}
	return &otelEmitter{logger: provider.Logger("mta.audit")}
}

type noopEmitter struct{}

func (noopEmitter) Emit(context.Context, *auditdomain.Log) {}

type otelEmitter struct {
	logger otellog.Logger
}

// Emit converts the audit entry to an OTel log record. Best effort; the
// batch processor handles delivery failures.
func (e *otelEmitter) Emit(ctx context.Context, entry *auditdomain.Log) {
	if entry == nil {
		return
	}
	var rec otellog.Record
	if !entry.CreatedAt.IsZero() {
		rec.SetTimestamp(entry.CreatedAt)
	}
	rec.SetBody(otellog.StringValue(entry.Action))
	rec.AddAttributes(
		otellog.String("audit.id", entry.ID),
		otellog.String("tenant_id", entry.TenantID),
		otellog.String("resource", entry.Resource),
	)
	if entry.UserID != "" {
		rec.AddAttributes(otellog.String("user_id", entry.UserID))
	}
	if entry.IPAddress != "" {
		rec.AddAttributes(otellog.String("ip_address", entry.IPAddress))
	}
	if entry.Metadata != "" {
		rec.AddAttributes(otellog.String("metadata", entry.Metadata))
	}
	e.logger.Emit(ctx, rec)
}
