package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"multitenant-admin/backend/internal/audit/domain"
)

// Repo is the persistence needed by the Logger.
type Repo interface {
	Create(ctx context.Context, l *domain.Log) error
}

// Event describes an action worth recording. TenantID defaults to the
// system sentinel when empty.
type Event struct {
	TenantID  string
	UserID    string
	Action    string
	Resource  string
	IPAddress string
	Metadata  string
}

// Emitter mirrors recorded entries to a telemetry backend.
type Emitter interface {
	Emit(ctx context.Context, entry *domain.Log)
}

// Logger records audit events. Recording is best effort: a storage failure
// is logged and swallowed so auditing never fails the request it describes.
type Logger struct {
	repo    Repo
	emitter Emitter
	log     *slog.Logger
}

// NewLogger returns a Logger writing through repo.
func NewLogger(repo Repo, log *slog.Logger) *Logger {
	return &Logger{repo: repo, log: log}
}

// WithEmitter returns a copy of the logger that also mirrors entries to e.
func (l *Logger) WithEmitter(e Emitter) *Logger {
	return &Logger{repo: l.repo, emitter: e, log: l.log}
}

// Record persists the event.
func (l *Logger) Record(ctx context.Context, e Event) {
	entry := &domain.Log{
		ID:        uuid.New().String(),
		TenantID:  e.TenantID,
		UserID:    e.UserID,
		Action:    e.Action,
		Resource:  e.Resource,
		IPAddress: e.IPAddress,
		Metadata:  e.Metadata,
		CreatedAt: time.Now().UTC(),
	}
	if entry.TenantID == "" {
		entry.TenantID = domain.SystemTenantID
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		l.log.ErrorContext(ctx, "failed to write audit log",
			"action", e.Action, "resource", e.Resource, "error", err)
	}
	if l.emitter != nil {
		l.emitter.Emit(ctx, entry)
	}
}
