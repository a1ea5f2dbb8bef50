package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/runjamaica/auth-api/internal/core/domain"
)

const auditCollection = "auth_audit"

// AuditRepository stores the audit trail of credential operations. Writes
// arrive from the audit dispatcher workers, never from the request path.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	EmailAddress string `bson:"email_address,omitempty"`
	Action       string `bson:"action"`
	Success      bool   `bson:"success"`
	Reason       string `bson:"reason,omitempty"`
	Timestamp    int64  `bson:"timestamp"`
}

func (r *AuditRepository) Write(ctx context.Context, event domain.AuditEvent) error {
	doc := mongoAuditEvent{
		EmailAddress: event.EmailAddress,
		Action:       event.Action,
		Success:      event.Success,
		Reason:       event.Reason,
		Timestamp:    event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
