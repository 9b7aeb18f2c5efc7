package access

// NavEntry is a single navigation item offered to a role.
type NavEntry struct {
	Label string
	Path  string
	Icon  string
}

// Profile is the resolved navigation and permission set for a role.
//
// Profiles are derived, never persisted: Resolve is a pure function of
// the role and cheap enough to call on every use, so a changed session
// role is reflected on the next call with no stale results.
type Profile struct {
	Role        Role
	Navigation  []NavEntry
	permissions map[Permission]struct{}
}

// Allows reports whether the profile grants the permission.
func (p Profile) Allows(perm Permission) bool {
	_, ok := p.permissions[perm]
	return ok
}

// Permissions returns the granted permissions.
func (p Profile) Permissions() []Permission {
	perms := make([]Permission, 0, len(p.permissions))
	for perm := range p.permissions {
		perms = append(perms, perm)
	}
	return perms
}

// Baseline navigation every role gets.
var baseNavigation = []NavEntry{
	{Label: "Dashboard", Path: "/dashboard", Icon: "home"},
	{Label: "My Projects", Path: "/projects/mine", Icon: "folder"},
	{Label: "My Tasks", Path: "/tasks/mine", Icon: "check"},
	{Label: "Meetings", Path: "/meetings", Icon: "calendar"},
	{Label: "Chat", Path: "/chat", Icon: "message"},
	{Label: "Notifications", Path: "/notifications", Icon: "bell"},
}

// roleProfiles is the single source of truth mapping each role to its
// extra navigation and permissions. A table keeps the mapping total and
// makes the fail-closed default explicit, instead of conditional chains.
var roleProfiles = map[Role]struct {
	extraNav    []NavEntry
	permissions []Permission
}{
	RoleAdmin: {
		extraNav: []NavEntry{
			{Label: "All Projects", Path: "/projects", Icon: "folders"},
			{Label: "Users", Path: "/users", Icon: "users"},
			{Label: "Reports", Path: "/reports", Icon: "chart"},
		},
		permissions: []Permission{
			PermProjectCreate, PermProjectUpdate, PermProjectDelete,
			PermSprintManage, PermBacklogManage, PermStoryCreate,
			PermTaskAssign, PermMeetingSchedule, PermUserManage,
			PermStatsView,
		},
	},
	RoleProjectManager: {
		extraNav: []NavEntry{
			{Label: "All Projects", Path: "/projects", Icon: "folders"},
			{Label: "Reports", Path: "/reports", Icon: "chart"},
		},
		permissions: []Permission{
			PermProjectCreate, PermProjectUpdate, PermProjectDelete,
			PermTaskAssign, PermMeetingSchedule, PermStatsView,
		},
	},
	RoleProductOwner: {
		extraNav: []NavEntry{
			{Label: "Backlog", Path: "/backlog", Icon: "list"},
		},
		permissions: []Permission{
			PermBacklogManage, PermStoryCreate, PermStatsView,
		},
	},
	RoleScrumMaster: {
		extraNav: []NavEntry{
			{Label: "Sprints", Path: "/sprints", Icon: "repeat"},
		},
		permissions: []Permission{
			PermSprintManage, PermTaskAssign, PermMeetingSchedule,
		},
	},
	RoleTeamMember: {
		// Baseline navigation only; no elevated permissions.
	},
}

// Resolve maps a role to its access profile.
//
// Resolve is total: every input, including unknown or absent roles,
// yields a usable profile. Unknown roles get the team-member navigation
// with an empty permission set, never an elevated one.
func Resolve(role Role) Profile {
	entry, ok := roleProfiles[role]
	if !ok {
		entry = roleProfiles[RoleTeamMember]
		role = RoleTeamMember
	}

	nav := make([]NavEntry, 0, len(baseNavigation)+len(entry.extraNav))
	nav = append(nav, baseNavigation...)
	nav = append(nav, entry.extraNav...)

	perms := make(map[Permission]struct{}, len(entry.permissions))
	for _, perm := range entry.permissions {
		perms[perm] = struct{}{}
	}

	return Profile{
		Role:        role,
		Navigation:  nav,
		permissions: perms,
	}
}

// Named predicates evaluated against the given role at call time.
// They exist so commands can hide affordances, not to enforce anything.

// CanCreateProject reports whether the role may create projects.
func CanCreateProject(role Role) bool { return Resolve(role).Allows(PermProjectCreate) }

// CanManageSprint reports whether the role may start, update, or close sprints.
func CanManageSprint(role Role) bool { return Resolve(role).Allows(PermSprintManage) }

// CanManageBacklog reports whether the role may groom the product backlog.
func CanManageBacklog(role Role) bool { return Resolve(role).Allows(PermBacklogManage) }

// CanManageUsers reports whether the role may administer user accounts.
func CanManageUsers(role Role) bool { return Resolve(role).Allows(PermUserManage) }

// CanScheduleMeeting reports whether the role may schedule meetings.
func CanScheduleMeeting(role Role) bool { return Resolve(role).Allows(PermMeetingSchedule) }

// CanViewDashboard reports whether the role may view aggregate stats.
func CanViewDashboard(role Role) bool { return Resolve(role).Allows(PermStatsView) }
