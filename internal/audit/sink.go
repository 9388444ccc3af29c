package audit

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yeshu111999/RBAC/internal/auth"
)

// Audit actions recorded by the services.
const (
	ActionTaskCreated     = "TASK_CREATED"
	ActionTaskListView    = "TASK_LIST_VIEW"
	ActionTaskUpdated     = "TASK_UPDATED"
	ActionTaskDeleted     = "TASK_DELETED"
	ActionUserCreated     = "USER_CREATED"
	ActionProfileUpdated  = "PROFILE_UPDATED"
	ActionPasswordChanged = "PASSWORD_CHANGED"
)

// Entry is an immutable record of a security-relevant action.
type Entry struct {
	Timestamp      time.Time      `json:"timestamp"`
	ActorUserID    uint64         `json:"actor_user_id"`
	ActorEmail     string         `json:"actor_email"`
	OrganizationID *uint64        `json:"organization_id"`
	Action         string         `json:"action"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Sink is the process-wide append-only audit log. It is created once at
// startup and passed explicitly to every component that records actions.
// Appends are serialized; append order is the only ordering guarantee.
type Sink struct {
	mu      sync.Mutex
	entries []Entry
	logger  *logrus.Logger
}

// NewSink creates an empty audit sink mirroring entries to the given logger.
func NewSink(logger *logrus.Logger) *Sink {
	return &Sink{logger: logger}
}

// Append records an action performed by a principal.
func (s *Sink) Append(claims *auth.Claims, action string, metadata map[string]any) {
	entry := Entry{
		Timestamp:      time.Now(),
		ActorUserID:    claims.UserID,
		ActorEmail:     claims.Email,
		OrganizationID: claims.OrganizationID,
		Action:         action,
		Metadata:       metadata,
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"actor_user_id": entry.ActorUserID,
			"actor_email":   entry.ActorEmail,
			"action":        entry.Action,
			"metadata":      entry.Metadata,
		}).Info("audit")
	}
}

// Query returns the entries visible to the principal, in append order.
// Principals without an organization see nothing; otherwise entries are
// filtered to the principal's organization. Callers are responsible for the
// VIEW_AUDIT_LOG permission check; the sink scopes purely by organization.
func (s *Sink) Query(claims *auth.Claims) []Entry {
	if claims == nil || claims.OrganizationID == nil {
		return []Entry{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Entry, 0)
	for _, entry := range s.entries {
		if entry.OrganizationID != nil && *entry.OrganizationID == *claims.OrganizationID {
			result = append(result, entry)
		}
	}
	return result
}

// Len returns the total number of recorded entries across all organizations.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
