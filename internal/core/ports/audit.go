package ports

import (
	"context"

	"github.com/runjamaica/auth-api/internal/core/domain"
)

// AuditRecorder accepts audit events from the request path. Implementations
// must not block: events are buffered and flushed out of band.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditSink durably stores audit events drained from the recorder.
type AuditSink interface {
	Write(ctx context.Context, event domain.AuditEvent) error
}
