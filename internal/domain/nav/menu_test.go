package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medconnect/medconnect-api/internal/domain/auth"
)

func entryPaths(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func TestVisibleEntriesVariantSelection(t *testing.T) {
	t.Run("student sees the student variant", func(t *testing.T) {
		paths := entryPaths(VisibleEntries(auth.RoleStudent))
		assert.Contains(t, paths, "/learning")
		assert.Contains(t, paths, "/clinical")
		assert.NotContains(t, paths, "/students")
		assert.NotContains(t, paths, "/admin")
	})

	t.Run("faculty and hod share the faculty variant", func(t *testing.T) {
		faculty := entryPaths(VisibleEntries(auth.RoleFaculty))
		assert.Contains(t, faculty, "/clinical/logbooks")
		assert.Contains(t, faculty, "/students")
		assert.NotContains(t, faculty, "/admin")

		hod := entryPaths(VisibleEntries(auth.RoleHOD))
		assert.Contains(t, hod, "/students")
	})

	t.Run("analytics entry is hod-only within the faculty variant", func(t *testing.T) {
		assert.NotContains(t, entryPaths(VisibleEntries(auth.RoleFaculty)), "/governance")
		assert.Contains(t, entryPaths(VisibleEntries(auth.RoleHOD)), "/governance")
	})

	t.Run("administration entry is admin-only within the staff variant", func(t *testing.T) {
		assert.Contains(t, entryPaths(VisibleEntries(auth.RoleAdmin)), "/admin")
		for _, role := range []auth.Role{auth.RoleDME, auth.RolePrincipal, auth.RoleSuperintendent} {
			assert.NotContains(t, entryPaths(VisibleEntries(role)), "/admin", "role %s", role)
		}
	})

	t.Run("governance entry excludes admin", func(t *testing.T) {
		assert.NotContains(t, entryPaths(VisibleEntries(auth.RoleAdmin)), "/governance")
		assert.Contains(t, entryPaths(VisibleEntries(auth.RolePrincipal)), "/governance")
	})
}

func TestVisibleEntriesFailClosed(t *testing.T) {
	assert.Nil(t, VisibleEntries(auth.Role("intern")))
	assert.Nil(t, VisibleEntries(auth.Role("")))
}

func TestVisibleEntriesAreReachable(t *testing.T) {
	// Every menu entry must point at a declared protected route.
	for _, role := range auth.AllRoles() {
		for _, e := range VisibleEntries(role) {
			rd, ok := routeByPath(e.Path)
			require.True(t, ok, "menu entry %q points at undeclared route %s", e.Label, e.Path)
			assert.Equal(t, AccessProtected, rd.Access)
		}
	}
}

func TestRoleColor(t *testing.T) {
	colors := map[string]bool{}
	for _, role := range auth.AllRoles() {
		c := RoleColor(role)
		assert.NotEqual(t, NeutralColor, c, "role %s must have a dedicated color", role)
		colors[c] = true
	}
	assert.Len(t, colors, len(auth.AllRoles()), "role colors must be distinct")
	assert.Equal(t, NeutralColor, RoleColor(auth.Role("intern")))
}
