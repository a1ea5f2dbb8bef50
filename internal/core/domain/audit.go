package domain

import "time"

// Audit actions recorded for every credential operation.
const (
	AuditActionSignup  = "signup"
	AuditActionSignin  = "signin"
	AuditActionRefresh = "refresh"
)

// AuditEvent records the outcome of a single credential operation. Events
// are written asynchronously; the request path never waits on them.
type AuditEvent struct {
	EmailAddress string    `json:"email_address"`
	Action       string    `json:"action"`
	Success      bool      `json:"success"`
	Reason       string    `json:"reason,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
