package goAccess

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	auditEventRoleGranted      = "role_granted"
	auditEventRoleRevoked      = "role_revoked"
	auditEventGrantDenied      = "grant_denied"
	auditEventRevokeDenied     = "revoke_denied"
	auditEventAdminRoleGranted = "admin_role_granted"
	auditEventAdminRoleRevoked = "admin_role_revoked"
	auditEventAdminDenied      = "admin_change_denied"
	auditEventBootstrapAdmin   = "bootstrap_admin"
)

func (s *Store) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	caller, target string,
	role int,
	err error,
	metadataFn func() map[string]string,
) {
	if s == nil || s.audit == nil {
		return
	}

	event := AuditEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		EventType: eventType,
		Caller:    caller,
		Target:    target,
		Role:      role,
		IP:        clientIPFromContext(ctx),
		RequestID: requestIDFromContext(ctx),
		Success:   success,
	}
	if err != nil {
		event.Error = err.Error()
	}
	if metadataFn != nil {
		event.Metadata = metadataFn()
	}

	s.audit.Emit(ctx, event)
}
