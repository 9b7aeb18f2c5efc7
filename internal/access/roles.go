package access

// Role is one of the fixed user categories assigned by the server.
type Role string

// Platform roles
const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "projectManager"
	RoleProductOwner   Role = "productOwner"
	RoleScrumMaster    Role = "scrumMaster"
	RoleTeamMember     Role = "teamMember"
)

// Roles lists every known role.
func Roles() []Role {
	return []Role{
		RoleAdmin,
		RoleProjectManager,
		RoleProductOwner,
		RoleScrumMaster,
		RoleTeamMember,
	}
}

// ParseRole converts a raw role string into a Role.
// Unknown strings are returned as-is; Resolve treats them fail-closed.
func ParseRole(s string) Role {
	return Role(s)
}

// IsKnown reports whether the role belongs to the closed enumeration.
func (r Role) IsKnown() bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleProductOwner, RoleScrumMaster, RoleTeamMember:
		return true
	default:
		return false
	}
}

// Permission is a named capability checked by the view layer.
//
// Permissions are UI affordance only: they control what the client
// shows, never what the backend allows. The server independently
// enforces authorization on every endpoint.
type Permission string

// Named permissions, formatted as resource:action
const (
	PermProjectCreate   Permission = "project:create"
	PermProjectUpdate   Permission = "project:update"
	PermProjectDelete   Permission = "project:delete"
	PermSprintManage    Permission = "sprint:manage"
	PermBacklogManage   Permission = "backlog:manage"
	PermStoryCreate     Permission = "story:create"
	PermTaskAssign      Permission = "task:assign"
	PermMeetingSchedule Permission = "meeting:schedule"
	PermUserManage      Permission = "user:manage"
	PermStatsView       Permission = "stats:view"
)
