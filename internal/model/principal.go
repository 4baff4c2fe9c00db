package model

import "github.com/google/uuid"

type Principal struct {
	Username  string
	Role      Role
	Branch    *string
	SessionID uuid.UUID
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsSupervisor() bool {
	return p.Role == RoleSupervisor
}

// CanSelectBranch reports whether the principal may act on any branch
// instead of being pinned to its own.
func (p Principal) CanSelectBranch() bool {
	return p.IsAdmin() || p.IsSupervisor()
}

func (p Principal) OwnBranch() string {
	if p.Branch == nil {
		return ""
	}
	return *p.Branch
}
