package nav

import "github.com/medconnect/medconnect-api/internal/domain/auth"

// Entry is one navigation item. Icon is a symbolic name the portal maps to
// its icon set; AllowedRoles further restricts an entry within its variant.
type Entry struct {
	Icon         string      `json:"icon"`
	Label        string      `json:"label"`
	Path         string      `json:"path"`
	AllowedRoles []auth.Role `json:"allowed_roles"`
}

// allows reports whether the entry is visible to the role.
func (e Entry) allows(role auth.Role) bool {
	for _, r := range e.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

func studentRoles() []auth.Role { return []auth.Role{auth.RoleStudent} }

func facultyRoles() []auth.Role { return []auth.Role{auth.RoleFaculty, auth.RoleHOD} }

func staffRoles() []auth.Role {
	return []auth.Role{auth.RoleAdmin, auth.RoleDME, auth.RolePrincipal, auth.RoleSuperintendent}
}

// studentMenu is the variant shown to students.
func studentMenu() []Entry {
	roles := studentRoles()
	return []Entry{
		{Icon: "home", Label: "Dashboard", Path: "/dashboard", AllowedRoles: roles},
		{Icon: "book-open", Label: "Academics", Path: "/academic", AllowedRoles: roles},
		{Icon: "graduation-cap", Label: "Learning", Path: "/learning", AllowedRoles: roles},
		{Icon: "stethoscope", Label: "Clinical", Path: "/clinical", AllowedRoles: roles},
		{Icon: "clipboard-list", Label: "Logbooks", Path: "/clinical/logbooks", AllowedRoles: roles},
		{Icon: "building", Label: "Hostel", Path: "/hostel", AllowedRoles: roles},
		{Icon: "calendar", Label: "Events", Path: "/events", AllowedRoles: roles},
		{Icon: "bell", Label: "Notifications", Path: "/notifications", AllowedRoles: roles},
		{Icon: "settings", Label: "Settings", Path: "/settings", AllowedRoles: roles},
	}
}

// facultyMenu is the variant shared by faculty and heads of department.
// The department analytics entry is restricted to heads of department.
func facultyMenu() []Entry {
	roles := facultyRoles()
	return []Entry{
		{Icon: "home", Label: "Dashboard", Path: "/dashboard", AllowedRoles: roles},
		{Icon: "users", Label: "Students", Path: "/students", AllowedRoles: roles},
		{Icon: "book-open", Label: "Academics", Path: "/academic", AllowedRoles: roles},
		{Icon: "clipboard-list", Label: "Logbooks", Path: "/clinical/logbooks", AllowedRoles: roles},
		{Icon: "briefcase", Label: "Faculty", Path: "/faculty", AllowedRoles: roles},
		{Icon: "bar-chart", Label: "Analytics", Path: "/governance", AllowedRoles: []auth.Role{auth.RoleHOD}},
		{Icon: "calendar", Label: "Events", Path: "/events", AllowedRoles: roles},
		{Icon: "bell", Label: "Notifications", Path: "/notifications", AllowedRoles: roles},
		{Icon: "settings", Label: "Settings", Path: "/settings", AllowedRoles: roles},
	}
}

// defaultMenu is the variant shared by administrative and governance roles.
// Certificate administration is admin-only; governance oversight belongs to
// the directorate, principals and superintendents.
func defaultMenu() []Entry {
	roles := staffRoles()
	governance := []auth.Role{auth.RoleDME, auth.RolePrincipal, auth.RoleSuperintendent}
	return []Entry{
		{Icon: "home", Label: "Dashboard", Path: "/dashboard", AllowedRoles: roles},
		{Icon: "users", Label: "Students", Path: "/students", AllowedRoles: roles},
		{Icon: "briefcase", Label: "Faculty", Path: "/faculty", AllowedRoles: roles},
		{Icon: "file-badge", Label: "Administration", Path: "/admin", AllowedRoles: []auth.Role{auth.RoleAdmin}},
		{Icon: "landmark", Label: "Governance", Path: "/governance", AllowedRoles: governance},
		{Icon: "building", Label: "Hostel", Path: "/hostel", AllowedRoles: roles},
		{Icon: "calendar", Label: "Events", Path: "/events", AllowedRoles: roles},
		{Icon: "bell", Label: "Notifications", Path: "/notifications", AllowedRoles: roles},
		{Icon: "settings", Label: "Settings", Path: "/settings", AllowedRoles: roles},
	}
}

// variantFor selects the menu variant for a role. Precedence is fixed:
// student first, then the faculty variant for faculty-like roles, then the
// shared staff variant for everything else.
func variantFor(role auth.Role) []Entry {
	switch {
	case role == auth.RoleStudent:
		return studentMenu()
	case role.IsFacultyLike():
		return facultyMenu()
	default:
		return defaultMenu()
	}
}

// VisibleEntries returns the navigation entries the role may see, in render
// order: the role's variant filtered by each entry's allowed roles. An
// unknown role sees nothing.
func VisibleEntries(role auth.Role) []Entry {
	if !role.Valid() {
		return nil
	}
	var out []Entry
	for _, e := range variantFor(role) {
		if e.allows(role) {
			out = append(out, e)
		}
	}
	return out
}

// NeutralColor is the badge color token for unknown roles.
const NeutralColor = "gray"

var roleColors = map[auth.Role]string{
	auth.RoleStudent:        "blue",
	auth.RoleFaculty:        "purple",
	auth.RoleHOD:            "indigo",
	auth.RoleAdmin:          "green",
	auth.RoleDME:            "orange",
	auth.RolePrincipal:      "red",
	auth.RoleSuperintendent: "teal",
}

// RoleColor returns the badge color token for a role. Unknown roles get the
// neutral token rather than an error.
func RoleColor(role auth.Role) string {
	if c, ok := roleColors[role]; ok {
		return c
	}
	return NeutralColor
}
