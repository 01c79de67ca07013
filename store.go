package goAccess

import (
	"context"
	"fmt"
	"time"

	"github.com/MrEthical07/goAccess/internal/stores"
)

// Store is the role-based access-control store. It associates principals
// with role bitmaps and gates every mutation behind an admin check on the
// same store: the caller must hold the admin bit for the target role, or
// the default admin bit 0.
//
// Store instances are configured through [Builder.Build] and immutable
// thereafter.
type Store struct {
	config  Config
	roles   *stores.RoleStore
	audit   *auditDispatcher
	metrics *Metrics
}

// Capacity returns the configured bitmap width, the exclusive upper bound
// on role ids.
func (s *Store) Capacity() int {
	return s.config.Capacity
}

// Close shuts down the audit dispatcher, draining queued events.
func (s *Store) Close() {
	if s == nil {
		return
	}
	if s.audit != nil {
		s.audit.Close()
	}
}

// AuditDropped returns the number of audit events shed under load.
func (s *Store) AuditDropped() uint64 {
	if s == nil || s.audit == nil {
		return 0
	}
	return s.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of the store counters.
func (s *Store) MetricsSnapshot() MetricsSnapshot {
	if s == nil || s.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return s.metrics.Snapshot()
}

func (s *Store) metricInc(id MetricID) {
	if s == nil || s.metrics == nil {
		return
	}
	s.metrics.Inc(id)
}

// Grant sets bit role in the target's role bitmap, creating the entry if
// absent. The caller must administer role; otherwise [ErrCallerIsNotAdmin]
// is returned and no state changes. Granting an already-held role succeeds
// and changes nothing.
//
// role must be in (0, Capacity): role 0 is reserved for admin bootstrap and
// an id at or beyond capacity cannot be encoded. Both are caller contract
// violations and panic.
func (s *Store) Grant(ctx context.Context, caller, target string, role int) error {
	if s == nil || s.roles == nil {
		return ErrStoreNotReady
	}
	s.mustGrantableRole(role)
	if caller == "" || target == "" {
		return ErrPrincipalEmpty
	}

	admin, err := s.isAdminFor(ctx, caller, role)
	if err != nil {
		s.metricInc(MetricStoreUnavailable)
		return err
	}
	if !admin {
		s.metricInc(MetricGrantDenied)
		s.emitAudit(ctx, auditEventGrantDenied, false, caller, target, role, ErrCallerIsNotAdmin, nil)
		return ErrCallerIsNotAdmin
	}

	held, err := s.roles.Roles(ctx, target)
	if err != nil {
		s.metricInc(MetricStoreUnavailable)
		return s.wrapStoreErr(err)
	}

	if err := s.roles.SaveRoles(ctx, target, held.Set(role)); err != nil {
		s.metricInc(MetricStoreUnavailable)
		return s.wrapStoreErr(err)
	}

	s.metricInc(MetricGrantSuccess)
	s.emitAudit(ctx, auditEventRoleGranted, true, caller, target, role, nil, nil)

	return nil
}

// Revoke clears bit role in the target's role bitmap. Authorization is
// identical to [Store.Grant]. Revoking a role the target never held, or
// revoking from an unknown target, is a success no-op.
func (s *Store) Revoke(ctx context.Context, caller, target string, role int) error {
	if s == nil || s.roles == nil {
		return ErrStoreNotReady
	}
	s.mustGrantableRole(role)
	if caller == "" || target == "" {
		return ErrPrincipalEmpty
	}

	admin, err := s.isAdminFor(ctx, caller, role)
	if err != nil {
		s.metricInc(MetricStoreUnavailable)
		return err
	}
	if !admin {
		s.metricInc(MetricRevokeDenied)
		s.emitAudit(ctx, auditEventRevokeDenied, false, caller, target, role, ErrCallerIsNotAdmin, nil)
		return ErrCallerIsNotAdmin
	}

	held, err := s.roles.Roles(ctx, target)
	if err != nil {
		s.metricInc(MetricStoreUnavailable)
		return s.wrapStoreErr(err)
	}

	if err := s.roles.SaveRoles(ctx, target, held.Clear(role)); err != nil {
		s.metricInc(MetricStoreUnavailable)
		return s.wrapStoreErr(err)
	}

	s.metricInc(MetricRevokeSuccess)
	s.emitAudit(ctx, auditEventRoleRevoked, true, caller, target, role, nil, nil)

	return nil
}

// HasRole reports whether the principal holds role. Membership testing is
// not privileged; any caller may ask. An absent principal holds nothing.
//
// role must be in [0, Capacity); out of range panics.
func (s *Store) HasRole(ctx context.Context, principal string, role int) (bool, error) {
	if s == nil || s.roles == nil {
		return false, ErrStoreNotReady
	}
	s.mustValidRole(role)
	if principal == "" {
		return false, ErrPrincipalEmpty
	}

	if s.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() { s.metrics.Observe(MetricCheckLatency, time.Since(start)) }()
	}
	s.metricInc(MetricRoleCheck)

	held, err := s.roles.Roles(ctx, principal)
	if err != nil {
		s.metricInc(MetricStoreUnavailable)
		return false, s.wrapStoreErr(err)
	}

	return held.Has(role), nil
}

// RolesOf returns every role the principal holds, ascending, empty for an
// absent principal.
func (s *Store) RolesOf(ctx context.Context, principal string) ([]int, error) {
	if s == nil || s.roles == nil {
		return nil, ErrStoreNotReady
	}
	if principal == "" {
		return nil, ErrPrincipalEmpty
	}

	s.metricInc(MetricRoleCheck)

	held, err := s.roles.Roles(ctx, principal)
	if err != nil {
		s.metricInc(MetricStoreUnavailable)
		return nil, s.wrapStoreErr(err)
	}

	return held.Ones(), nil
}

// IsAdminFor reports whether the principal may administer role: it holds
// admin-bit role, or the default admin bit 0.
//
// role must be in [0, Capacity); out of range panics.
func (s *Store) IsAdminFor(ctx context.Context, principal string, role int) (bool, error) {
	if s == nil || s.roles == nil {
		return false, ErrStoreNotReady
	}
	s.mustValidRole(role)
	if principal == "" {
		return false, ErrPrincipalEmpty
	}

	s.metricInc(MetricRoleCheck)

	return s.isAdminFor(ctx, principal, role)
}

// isAdminFor is the core authorization rule: admin-bit role OR admin-bit 0.
func (s *Store) isAdminFor(ctx context.Context, principal string, role int) (bool, error) {
	admin, err := s.roles.AdminRoles(ctx, principal)
	if err != nil {
		return false, s.wrapStoreErr(err)
	}

	return admin.Has(role) || admin.Has(DefaultAdminRole), nil
}

func (s *Store) wrapStoreErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// mustGrantableRole enforces the grant/revoke contract: role 0 is reserved
// and ids at or beyond capacity do not exist in this deployment.
func (s *Store) mustGrantableRole(role int) {
	if role <= DefaultAdminRole || role >= s.config.Capacity {
		panic(fmt.Sprintf("goAccess: role %d out of grantable range (0, %d)", role, s.config.Capacity))
	}
}

// mustValidRole enforces the query contract: any id in [0, capacity) may be
// asked about, including the reserved role 0.
func (s *Store) mustValidRole(role int) {
	if role < 0 || role >= s.config.Capacity {
		panic(fmt.Sprintf("goAccess: role %d out of range [0, %d)", role, s.config.Capacity))
	}
}
