// Package authz decides allow/deny for an authenticated identity against
// a requirement. Decisions are pure functions of their inputs: ownership
// ids are resolved by the caller before Authorize is called, and the
// package never performs I/O.
package authz

import "github.com/khadamat/marketplace-api/internal/core/domain"

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Requirement is a single access rule evaluated against session claims.
type Requirement interface {
	check(claims *domain.SessionClaims) Decision
}

// RoleIn allows any of the listed roles. Admin is NOT implicitly
// included: a RoleIn({seller}) check denies admins unless the set names
// admin. Whether a route grants admin override is decided once, in the
// Policy table, not at each call site.
type RoleIn struct {
	Roles []string
}

func (r RoleIn) check(claims *domain.SessionClaims) Decision {
	for _, role := range r.Roles {
		if claims.Role == role {
			return allow()
		}
	}
	return deny("role " + claims.Role + " not permitted")
}

// SelfOrAdmin allows the owner of the resource or an admin.
type SelfOrAdmin struct {
	OwnerID string
}

func (r SelfOrAdmin) check(claims *domain.SessionClaims) Decision {
	if claims.UserID == r.OwnerID || claims.Role == domain.RoleAdmin {
		return allow()
	}
	return deny("not resource owner")
}

// RoleInOrSelfOrAdmin is the union of RoleIn and SelfOrAdmin, used for
// seller-owned resources where both the owning seller and admins may act.
type RoleInOrSelfOrAdmin struct {
	Roles   []string
	OwnerID string
}

func (r RoleInOrSelfOrAdmin) check(claims *domain.SessionClaims) Decision {
	if d := (RoleIn{Roles: r.Roles}).check(claims); d.Allowed {
		return d
	}
	return SelfOrAdmin{OwnerID: r.OwnerID}.check(claims)
}

// Authorize evaluates a requirement against resolved claims.
// Anonymous always denies, for every requirement variant.
func Authorize(claims *domain.SessionClaims, req Requirement) Decision {
	if claims.IsAnonymous() {
		return deny("not authenticated")
	}
	return req.check(claims)
}
