package auth

import "context"

const (
	RoleClient = "client"
	RoleLawyer = "lawyer"
	RoleAdmin  = "admin"
)

const (
	PermSeveranceRead   = "severance.read"
	PermIdentityExtract = "identity.extract"
	PermIdentityRead    = "identity.read"
	PermIdentityLookup  = "identity.lookup"
	PermAuditRead       = "audit.read"
)

var RolePermissions = map[string][]string{
	RoleClient: {
		PermSeveranceRead,
		PermIdentityExtract,
		PermIdentityRead,
	},
	RoleLawyer: {
		PermSeveranceRead,
		PermIdentityExtract,
		PermIdentityRead,
		PermIdentityLookup,
	},
	RoleAdmin: {
		PermSeveranceRead,
		PermIdentityExtract,
		PermIdentityRead,
		PermIdentityLookup,
		PermAuditRead,
	},
}

// StaticPermissions resolves permissions from RolePermissions. Roles are
// asserted by the identity provider, so there is no table to consult.
type StaticPermissions struct {
	grants map[string]map[string]struct{}
}

func NewStaticPermissions() *StaticPermissions {
	grants := make(map[string]map[string]struct{}, len(RolePermissions))
	for role, perms := range RolePermissions {
		set := make(map[string]struct{}, len(perms))
		for _, perm := range perms {
			set[perm] = struct{}{}
		}
		grants[role] = set
	}
	return &StaticPermissions{grants: grants}
}

func (p *StaticPermissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	_, ok := p.grants[role][permission]
	return ok, nil
}
