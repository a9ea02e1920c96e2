package authz

import "github.com/khadamat/marketplace-api/internal/core/domain"

// Action identifies a guarded operation on a resource type.
type Action string

const (
	ServiceCreate Action = "service:create"
	ServiceUpdate Action = "service:update"
	ServiceDelete Action = "service:delete"
	OrderCreate   Action = "order:create"
	OrderRead     Action = "order:read"
	OrderUpdate   Action = "order:update"
	UserManage    Action = "user:manage"
)

// policy holds the access rule for every guarded action in one place, so
// whether admin may override an ownership check is decided once here and
// not re-decided at each call site. Ownership-bound rules use SelfOrAdmin,
// which grants admin override; role rules admit admin only when listed.
var policy = map[Action]func(ownerID string) Requirement{
	// Catalog entries must have a real selling owner, so admins cannot
	// create them on a seller's behalf. Mutations allow admin override.
	ServiceCreate: roleRule(domain.RoleSeller),
	ServiceUpdate: ownerRule,
	ServiceDelete: ownerRule,

	// Only buyers place orders; admins read and moderate but do not buy.
	// Reads allow admin override on both sibling routes (get and list).
	OrderCreate: roleRule(domain.RoleBuyer),
	OrderRead:   ownerRule,
	OrderUpdate: ownerRule,

	UserManage: roleRule(domain.RoleAdmin),
}

func roleRule(roles ...string) func(string) Requirement {
	return func(string) Requirement { return RoleIn{Roles: roles} }
}

func ownerRule(ownerID string) Requirement {
	return SelfOrAdmin{OwnerID: ownerID}
}

// Require builds the requirement for an action. ownerID is ignored for
// actions that are purely role-gated. Unknown actions deny everyone.
func Require(action Action, ownerID string) Requirement {
	build, ok := policy[action]
	if !ok {
		return RoleIn{}
	}
	return build(ownerID)
}
