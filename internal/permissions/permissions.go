// Package permissions resolves whether a staff role may perform an action on a
// back-office module.
package permissions

// Role is a staff role as stored on the user document.
type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleSupportStaff Role = "support_staff"
	RoleStaff        Role = "staff"
)

// StaffRoles lists every role allowed through staff authentication.
var StaffRoles = []Role{RoleStaff, RoleAdmin, RoleSuperAdmin, RoleManager, RoleSupportStaff}

// IsStaffRole reports whether role may sign in to the back-office.
func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if string(r) == role {
			return true
		}
	}
	return false
}

// Module is a back-office area guarded by permissions.
type Module string

const (
	ModuleUsers     Module = "users"
	ModuleBookings  Module = "bookings"
	ModuleApprovals Module = "approvals"
	ModuleSupport   Module = "support"
	ModuleReviews   Module = "reviews"
	ModuleAnalytics Module = "analytics"
	ModuleSettings  Module = "settings"
	ModuleFinancial Module = "financial"
	ModuleContent   Module = "content"
	ModuleVehicles  Module = "vehicles"
)

// Action is an operation on a module.
type Action string

const (
	ActionRead    Action = "read"
	ActionWrite   Action = "write"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
	ActionResolve Action = "resolve"
	ActionExport  Action = "export"
	ActionManage  Action = "manage"
	ActionReject  Action = "reject"
)

// AllModules is the closed module set in display order.
var AllModules = []Module{
	ModuleUsers, ModuleBookings, ModuleApprovals, ModuleSupport, ModuleReviews,
	ModuleAnalytics, ModuleSettings, ModuleFinancial, ModuleContent, ModuleVehicles,
}

// AllActions is the closed action set.
var AllActions = []Action{
	ActionRead, ActionWrite, ActionDelete, ActionApprove,
	ActionResolve, ActionExport, ActionManage, ActionReject,
}

// ModuleInfo describes a module for the console navigation.
type ModuleInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Actions     []Action `json:"permissions"`
}

// Modules is the module catalogue with the actions each module supports.
var Modules = map[Module]ModuleInfo{
	ModuleUsers:     {Name: "User Management", Description: "Manage tourists, guides, hotel owners, and drivers", Actions: []Action{ActionRead, ActionWrite, ActionDelete, ActionApprove}},
	ModuleBookings:  {Name: "Booking Management", Description: "Manage all bookings and reservations", Actions: []Action{ActionRead, ActionWrite, ActionDelete, ActionApprove}},
	ModuleApprovals: {Name: "Approvals", Description: "Review and approve service providers", Actions: []Action{ActionRead, ActionApprove, ActionReject}},
	ModuleSupport:   {Name: "Customer Support", Description: "Handle support tickets and inquiries", Actions: []Action{ActionRead, ActionWrite, ActionResolve}},
	ModuleReviews:   {Name: "Review Management", Description: "Moderate reviews and ratings", Actions: []Action{ActionRead, ActionWrite, ActionDelete, ActionApprove}},
	ModuleAnalytics: {Name: "Analytics", Description: "View platform analytics and reports", Actions: []Action{ActionRead, ActionExport}},
	ModuleSettings:  {Name: "Settings", Description: "Platform configuration", Actions: []Action{ActionRead, ActionWrite}},
	ModuleFinancial: {Name: "Financial", Description: "Revenue, payouts and refunds", Actions: []Action{ActionRead, ActionWrite, ActionApprove}},
	ModuleContent:   {Name: "Content", Description: "Tours, destinations and marketing content", Actions: []Action{ActionRead, ActionWrite, ActionDelete, ActionApprove}},
	ModuleVehicles:  {Name: "Vehicle Management", Description: "Manage vehicles and drivers", Actions: []Action{ActionRead, ActionWrite, ActionDelete, ActionApprove}},
}

// RolePolicy is one row of the role policy table. AllModules grants every
// module; Actions apply to every allowed module alike.
type RolePolicy struct {
	AllModules bool
	Modules    []Module
	Actions    []Action
}

// Resolver answers permission questions for a role.
type Resolver interface {
	HasPermission(role string, module Module, action Action, explicitGrants []string) bool
	UserModules(role string) []Module
	UserActions(role string, module Module) []Action
}

// TableResolver resolves permissions from a flat role policy table.
type TableResolver struct {
	policies map[Role]RolePolicy
}

// DefaultPolicies is the staff role policy table.
func DefaultPolicies() map[Role]RolePolicy {
	return map[Role]RolePolicy{
		RoleSuperAdmin: {
			AllModules: true,
			Actions:    []Action{ActionRead, ActionWrite, ActionDelete, ActionApprove, ActionManage},
		},
		RoleManager: {
			Modules: []Module{ModuleUsers, ModuleBookings, ModuleApprovals, ModuleSupport, ModuleAnalytics, ModuleSettings, ModuleVehicles},
			Actions: []Action{ActionRead, ActionWrite, ActionApprove},
		},
		RoleSupportStaff: {
			Modules: []Module{ModuleUsers, ModuleBookings, ModuleSupport, ModuleReviews},
			Actions: []Action{ActionRead, ActionWrite},
		},
		RoleStaff: {
			Modules: []Module{ModuleUsers, ModuleBookings, ModuleApprovals, ModuleVehicles},
			Actions: []Action{ActionRead, ActionWrite, ActionApprove},
		},
	}
}

// NewTableResolver builds a resolver over policies. A nil map uses DefaultPolicies.
func NewTableResolver(policies map[Role]RolePolicy) *TableResolver {
	if policies == nil {
		policies = DefaultPolicies()
	}
	return &TableResolver{policies: policies}
}

// Grant formats an explicit per-user grant string.
func Grant(module Module, action Action) string {
	return string(module) + ":" + string(action)
}

// HasPermission reports whether role may perform action on module. An explicit
// grant always wins over the role table.
func (r *TableResolver) HasPermission(role string, module Module, action Action, explicitGrants []string) bool {
	want := Grant(module, action)
	for _, g := range explicitGrants {
		if g == want {
			return true
		}
	}

	policy, ok := r.policies[Role(role)]
	if !ok {
		return false
	}
	if policy.AllModules {
		return true
	}
	if !containsModule(policy.Modules, module) {
		return false
	}
	return containsAction(policy.Actions, action)
}

// UserModules lists the modules role can open.
func (r *TableResolver) UserModules(role string) []Module {
	policy, ok := r.policies[Role(role)]
	if !ok {
		return []Module{}
	}
	if policy.AllModules {
		return append([]Module(nil), AllModules...)
	}
	return append([]Module(nil), policy.Modules...)
}

// UserActions lists the actions role may perform on module.
func (r *TableResolver) UserActions(role string, module Module) []Action {
	policy, ok := r.policies[Role(role)]
	if !ok {
		return []Action{}
	}
	if policy.AllModules {
		return append([]Action(nil), Modules[module].Actions...)
	}
	if !containsModule(policy.Modules, module) {
		return []Action{}
	}
	return append([]Action(nil), policy.Actions...)
}

func containsModule(list []Module, m Module) bool {
	for _, v := range list {
		if v == m {
			return true
		}
	}
	return false
}

func containsAction(list []Action, a Action) bool {
	for _, v := range list {
		if v == a {
			return true
		}
	}
	return false
}
