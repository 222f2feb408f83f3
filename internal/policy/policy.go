// Package policy decides which roles may perform which actions.
// It is independent of routing: middleware asks Allowed once per route.
package policy

import "github.com/abhishek972986/porter-managment/internal/model"

type Action string

const (
	Read Action = "read"

	PorterWrite  Action = "porter:write"
	PorterDelete Action = "porter:delete"

	LocationWrite  Action = "location:write"
	LocationDelete Action = "location:delete"

	CarrierWrite  Action = "carrier:write"
	CarrierDelete Action = "carrier:delete"

	CommuteCostWrite  Action = "commute_cost:write"
	CommuteCostImport Action = "commute_cost:import"
	CommuteCostDelete Action = "commute_cost:delete"

	AttendanceWrite  Action = "attendance:write"
	AttendanceDelete Action = "attendance:delete"

	PayrollPay Action = "payroll:pay"

	DocumentGenerate Action = "document:generate"
)

var (
	everyone  = []string{model.RoleAdmin, model.RoleSupervisor, model.RoleViewer}
	managers  = []string{model.RoleAdmin, model.RoleSupervisor}
	adminOnly = []string{model.RoleAdmin}
)

var table = map[Action][]string{
	Read: everyone,

	PorterWrite:  managers,
	PorterDelete: adminOnly,

	LocationWrite:  managers,
	LocationDelete: adminOnly,

	CarrierWrite:  adminOnly,
	CarrierDelete: adminOnly,

	CommuteCostWrite:  managers,
	CommuteCostImport: managers,
	CommuteCostDelete: adminOnly,

	AttendanceWrite:  managers,
	AttendanceDelete: adminOnly,

	PayrollPay: managers,

	DocumentGenerate: everyone,
}

// Allowed reports whether role may perform action. Unknown actions and
// unknown roles are denied.
func Allowed(role string, action Action) bool {
	for _, r := range table[action] {
		if r == role {
			return true
		}
	}
	return false
}
