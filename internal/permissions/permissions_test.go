package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermissionCrossProduct(t *testing.T) {
	resolver := NewTableResolver(nil)
	policies := DefaultPolicies()

	roles := append([]Role{}, StaffRoles...)
	roles = append(roles, Role("tourist"), Role(""))

	for _, role := range roles {
		for _, module := range AllModules {
			for _, action := range AllActions {
				policy, known := policies[role]
				expected := role == RoleSuperAdmin ||
					(known && containsModule(policy.Modules, module) && containsAction(policy.Actions, action))

				got := resolver.HasPermission(string(role), module, action, nil)
				assert.Equal(t, expected, got, "role=%s module=%s action=%s", role, module, action)
			}
		}
	}
}

func TestHasPermissionExplicitGrant(t *testing.T) {
	resolver := NewTableResolver(nil)

	for _, role := range StaffRoles {
		for _, module := range AllModules {
			for _, action := range AllActions {
				grants := []string{Grant(module, action)}
				assert.True(t, resolver.HasPermission(string(role), module, action, grants),
					"explicit grant should allow role=%s %s:%s", role, module, action)
			}
		}
	}

	t.Run("support staff granted vehicles approve", func(t *testing.T) {
		assert.False(t, resolver.HasPermission("support_staff", ModuleVehicles, ActionApprove, nil))
		assert.True(t, resolver.HasPermission("support_staff", ModuleVehicles, ActionApprove, []string{"vehicles:approve"}))
	})

	t.Run("grant for another pair does not leak", func(t *testing.T) {
		assert.False(t, resolver.HasPermission("support_staff", ModuleVehicles, ActionRead, []string{"vehicles:approve"}))
	})

	t.Run("admin role has no table entry", func(t *testing.T) {
		assert.False(t, resolver.HasPermission("admin", ModuleBookings, ActionRead, nil))
		assert.True(t, resolver.HasPermission("admin", ModuleBookings, ActionRead, []string{"bookings:read"}))
	})
}

func TestHasPermissionScenarios(t *testing.T) {
	resolver := NewTableResolver(nil)

	tests := []struct {
		name   string
		role   string
		module Module
		action Action
		want   bool
	}{
		{"manager writes bookings", "manager", ModuleBookings, ActionWrite, true},
		{"support staff cannot read vehicles", "support_staff", ModuleVehicles, ActionRead, false},
		{"manager cannot delete bookings", "manager", ModuleBookings, ActionDelete, false},
		{"write does not imply read elsewhere", "support_staff", ModuleApprovals, ActionRead, false},
		{"staff approves approvals", "staff", ModuleApprovals, ActionApprove, true},
		{"super admin exports analytics", "super_admin", ModuleAnalytics, ActionExport, true},
		{"unknown role denied", "guide", ModuleBookings, ActionRead, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resolver.HasPermission(tc.role, tc.module, tc.action, nil))
		})
	}
}

func TestUserModulesAndActions(t *testing.T) {
	resolver := NewTableResolver(nil)

	t.Run("super admin sees every module", func(t *testing.T) {
		assert.ElementsMatch(t, AllModules, resolver.UserModules("super_admin"))
		assert.Equal(t, []Action{ActionRead, ActionExport}, resolver.UserActions("super_admin", ModuleAnalytics))
	})

	t.Run("role actions are role-global", func(t *testing.T) {
		assert.Equal(t, []Action{ActionRead, ActionWrite, ActionApprove}, resolver.UserActions("staff", ModuleUsers))
		assert.Equal(t, []Action{ActionRead, ActionWrite, ActionApprove}, resolver.UserActions("staff", ModuleVehicles))
	})

	t.Run("disallowed module has no actions", func(t *testing.T) {
		assert.Empty(t, resolver.UserActions("support_staff", ModuleVehicles))
	})

	t.Run("unknown role", func(t *testing.T) {
		assert.Empty(t, resolver.UserModules("tourist"))
		assert.Empty(t, resolver.UserActions("tourist", ModuleUsers))
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		mods := resolver.UserModules("staff")
		mods[0] = ModuleFinancial
		assert.Equal(t, ModuleUsers, resolver.UserModules("staff")[0])
	})
}

func TestIsStaffRole(t *testing.T) {
	for _, r := range StaffRoles {
		assert.True(t, IsStaffRole(string(r)))
	}
	assert.False(t, IsStaffRole("guide"))
	assert.False(t, IsStaffRole("tourist"))
	assert.False(t, IsStaffRole(""))
}
