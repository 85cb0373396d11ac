package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAccessRoute(t *testing.T) {
	tests := []struct {
		name          string
		authenticated bool
		path          string
		want          bool
	}{
		{name: "unauthenticated may open login", authenticated: false, path: "/login", want: true},
		{name: "unauthenticated may open register", authenticated: false, path: "/register", want: true},
		{name: "unauthenticated denied dashboard", authenticated: false, path: "/dashboard", want: false},
		{name: "unauthenticated denied nested route", authenticated: false, path: "/clinical/logbooks", want: false},
		{name: "authenticated denied login", authenticated: true, path: "/login", want: false},
		{name: "authenticated may open dashboard", authenticated: true, path: "/dashboard", want: true},
		{name: "authenticated may open nested route", authenticated: true, path: "/clinical/logbooks", want: true},
		{name: "root never renders", authenticated: true, path: "/", want: false},
		{name: "unknown path denied when authenticated", authenticated: true, path: "/nope", want: false},
		{name: "unknown path denied when anonymous", authenticated: false, path: "/nope", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccessRoute(tt.authenticated, tt.path))
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("allowed path renders", func(t *testing.T) {
		res := Resolve(true, "/academic")
		assert.True(t, res.Allow)
		assert.Empty(t, res.RedirectTo)
	})

	t.Run("anonymous visitor redirected to login", func(t *testing.T) {
		res := Resolve(false, "/hostel")
		assert.False(t, res.Allow)
		assert.Equal(t, LoginPath, res.RedirectTo)
	})

	t.Run("authenticated visitor bounced off login", func(t *testing.T) {
		res := Resolve(true, "/login")
		assert.False(t, res.Allow)
		assert.Equal(t, LandingPath, res.RedirectTo)
	})

	t.Run("root redirects by auth state", func(t *testing.T) {
		assert.Equal(t, LandingPath, Resolve(true, "/").RedirectTo)
		assert.Equal(t, LoginPath, Resolve(false, "/").RedirectTo)
	})
}

func TestRoutesTableIsWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, rd := range Routes() {
		require.NotEmpty(t, rd.Path)
		assert.False(t, seen[rd.Path], "duplicate route %s", rd.Path)
		seen[rd.Path] = true
		assert.Contains(t, []RouteAccess{AccessPublic, AccessProtected}, rd.Access)
	}
	assert.True(t, seen[LoginPath])
	assert.True(t, seen[LandingPath])
}
