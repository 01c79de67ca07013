package goAccess

import "context"

// GrantAdmin sets bit role in the target's admin bitmap, making the target
// an administrator of that role. Only a default admin (admin-bit 0) may
// alter the admin association; a role-specific admin cannot mint further
// admins. Returns [ErrCallerIsNotAdmin] otherwise, with no state change.
//
// role must be in (0, Capacity); the default admin bit itself is only ever
// assigned at bootstrap. Out of range panics.
func (s *Store) GrantAdmin(ctx context.Context, caller, target string, role int) error {
	if s == nil || s.roles == nil {
		return ErrStoreNotReady
	}
	s.mustGrantableRole(role)
	if caller == "" || target == "" {
		return ErrPrincipalEmpty
	}

	admin, err := s.isAdminFor(ctx, caller, DefaultAdminRole)
	if err != nil {
		s.metricInc(MetricStoreUnavailable)
		return err
	}
	if !admin {
		s.metricInc(MetricAdminGrantDenied)
		s.emitAudit(ctx, auditEventAdminDenied, false, caller, target, role, ErrCallerIsNotAdmin, func() map[string]string {
			return map[string]string{"change": "grant"}
		})
		return ErrCallerIsNotAdmin
	}

	held, err := s.roles.AdminRoles(ctx, target)
	if err != nil {
		s.metricInc(MetricStoreUnavailable)
		return s.wrapStoreErr(err)
	}

	if err := s.roles.SaveAdminRoles(ctx, target, held.Set(role)); err != nil {
		s.metricInc(MetricStoreUnavailable)
		return s.wrapStoreErr(err)
	}

	s.metricInc(MetricAdminGrantSuccess)
	s.emitAudit(ctx, auditEventAdminRoleGranted, true, caller, target, role, nil, nil)

	return nil
}

// RevokeAdmin clears bit role in the target's admin bitmap. Authorization
// is identical to [Store.GrantAdmin]; revoking an unheld admin bit is a
// success no-op.
func (s *Store) RevokeAdmin(ctx context.Context, caller, target string, role int) error {
	if s == nil || s.roles == nil {
		return ErrStoreNotReady
	}
	s.mustGrantableRole(role)
	if caller == "" || target == "" {
		return ErrPrincipalEmpty
	}

	admin, err := s.isAdminFor(ctx, caller, DefaultAdminRole)
	if err != nil {
		s.metricInc(MetricStoreUnavailable)
		return err
	}
	if !admin {
		s.metricInc(MetricAdminRevokeDenied)
		s.emitAudit(ctx, auditEventAdminDenied, false, caller, target, role, ErrCallerIsNotAdmin, func() map[string]string {
			return map[string]string{"change": "revoke"}
		})
		return ErrCallerIsNotAdmin
	}

	held, err := s.roles.AdminRoles(ctx, target)
	if err != nil {
		s.metricInc(MetricStoreUnavailable)
		return s.wrapStoreErr(err)
	}

	if err := s.roles.SaveAdminRoles(ctx, target, held.Clear(role)); err != nil {
		s.metricInc(MetricStoreUnavailable)
		return s.wrapStoreErr(err)
	}

	s.metricInc(MetricAdminRevokeSuccess)
	s.emitAudit(ctx, auditEventAdminRoleRevoked, true, caller, target, role, nil, nil)

	return nil
}

// AdminRolesOf returns every role the principal administers, ascending.
// Bit 0 in the result marks a default admin.
func (s *Store) AdminRolesOf(ctx context.Context, principal string) ([]int, error) {
	if s == nil || s.roles == nil {
		return nil, ErrStoreNotReady
	}
	if principal == "" {
		return nil, ErrPrincipalEmpty
	}

	s.metricInc(MetricRoleCheck)

	held, err := s.roles.AdminRoles(ctx, principal)
	if err != nil {
		s.metricInc(MetricStoreUnavailable)
		return nil, s.wrapStoreErr(err)
	}

	return held.Ones(), nil
}
