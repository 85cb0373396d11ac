package nav

// Package nav is the access-control layer: pure functions from (role, target)
// to reachability and menu visibility. No I/O, no side effects.

// RouteAccess classifies who may enter a route.
type RouteAccess string

const (
	// AccessPublic routes (login, register) may only be entered while logged out;
	// an authenticated visitor is redirected to the landing page instead.
	AccessPublic RouteAccess = "public"
	// AccessProtected routes require an authenticated session.
	AccessProtected RouteAccess = "protected"
)

// RouteDescriptor binds a portal path to its access class.
// The table is static and defined at build time.
type RouteDescriptor struct {
	Path   string
	Access RouteAccess
}

const (
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/login"
	// LandingPath is the default authenticated landing page.
	LandingPath = "/dashboard"
)

// Routes returns the portal route table. The root path is absent on purpose:
// it never renders content and always redirects to the landing page.
func Routes() []RouteDescriptor {
	return []RouteDescriptor{
		{Path: "/login", Access: AccessPublic},
		{Path: "/register", Access: AccessPublic},
		{Path: "/dashboard", Access: AccessProtected},
		{Path: "/academic", Access: AccessProtected},
		{Path: "/learning", Access: AccessProtected},
		{Path: "/clinical", Access: AccessProtected},
		{Path: "/clinical/logbooks", Access: AccessProtected},
		{Path: "/hostel", Access: AccessProtected},
		{Path: "/admin", Access: AccessProtected},
		{Path: "/faculty", Access: AccessProtected},
		{Path: "/governance", Access: AccessProtected},
		{Path: "/events", Access: AccessProtected},
		{Path: "/notifications", Access: AccessProtected},
		{Path: "/settings", Access: AccessProtected},
		{Path: "/students", Access: AccessProtected},
	}
}

// routeByPath returns the descriptor for an exact path, if declared.
func routeByPath(path string) (RouteDescriptor, bool) {
	for _, rd := range Routes() {
		if rd.Path == path {
			return rd, true
		}
	}
	return RouteDescriptor{}, false
}

// CanAccessRoute reports whether a visitor in the given authentication state
// may enter the path. Protected paths require authentication; public paths
// require the opposite. Undeclared paths are denied regardless of state.
func CanAccessRoute(isAuthenticated bool, path string) bool {
	if path == "/" {
		return false // root always redirects, never renders
	}
	rd, ok := routeByPath(path)
	if !ok {
		return false
	}
	if rd.Access == AccessProtected {
		return isAuthenticated
	}
	return !isAuthenticated
}

// Resolution describes the outcome of routing a request for a path.
type Resolution struct {
	// Allow is true when the path may render for this visitor.
	Allow bool `json:"allow"`
	// RedirectTo carries the replacement path when Allow is false.
	RedirectTo string `json:"redirect_to,omitempty"`
}

// Resolve routes a path for a visitor: either the path renders, or the
// visitor is redirected. Denials always redirect (login for unauthenticated
// visitors, the landing page otherwise); there is no error outcome.
func Resolve(isAuthenticated bool, path string) Resolution {
	if CanAccessRoute(isAuthenticated, path) {
		return Resolution{Allow: true}
	}
	if isAuthenticated {
		return Resolution{RedirectTo: LandingPath}
	}
	return Resolution{RedirectTo: LoginPath}
}
