// Package policy decides which front-end routes a principal may reach and
// where denied navigations are redirected. The route table is static
// configuration; decisions are pure functions over (route, role).
package policy

import (
	"net/url"
	"strings"

	"github.com/skyward/flightschool-api/internal/core/domain"
)

// LoginRoute is where anonymous users land when denied.
const LoginRoute = "/login"

// Route patterns, ordered public < authenticated < admin. A `:name` segment
// matches any single path segment. A route matching nothing falls back to
// public.
var (
	publicRoutes = []string{
		"/",
		"/login",
		"/register",
		"/about",
		"/schools",
		"/schools/:id",
	}

	authenticatedRoutes = []string{
		"/community",
		"/community/:id",
		"/posts/new",
		"/profile",
		"/upload",
	}

	adminRoutes = []string{
		"/admin",
		"/admin/users",
		"/admin/users/:id",
		"/admin/schools",
	}
)

var homeRoutes = map[domain.Role]string{
	domain.RoleUser:  "/community",
	domain.RoleAdmin: "/admin",
}

// CanAccessRoute reports whether a principal holding role (nil means
// anonymous) may navigate to route. Admin patterns take precedence over
// authenticated ones; unlisted routes are public.
func CanAccessRoute(route string, role *domain.Role) bool {
	if matchAny(adminRoutes, route) {
		return role != nil && *role == domain.RoleAdmin
	}
	if matchAny(authenticatedRoutes, route) {
		return role != nil
	}
	return true
}

// RedirectPath returns where to send a principal denied access to
// attemptedRoute. Anonymous users go to the login route with the attempted
// route preserved for post-login redirect; authenticated non-admins go to
// their home route. Allowed routes redirect nowhere and return the route
// unchanged.
func RedirectPath(attemptedRoute string, role *domain.Role) string {
	if CanAccessRoute(attemptedRoute, role) {
		return attemptedRoute
	}
	if role == nil {
		return LoginRoute + "?redirect=" + url.QueryEscape(attemptedRoute)
	}
	return HomeRoute(*role)
}

// HomeRoute maps a role to its landing route.
func HomeRoute(role domain.Role) string {
	if home, ok := homeRoutes[role]; ok {
		return home
	}
	return "/"
}

func matchAny(patterns []string, route string) bool {
	for _, p := range patterns {
		if matchPattern(p, route) {
			return true
		}
	}
	return false
}

// matchPattern compares pattern and route segment by segment: a segment
// matches if it is literal-equal or the pattern segment is parametric
// (starts with ':'). Unequal segment counts never match.
func matchPattern(pattern, route string) bool {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}

	ps := splitSegments(pattern)
	rs := splitSegments(route)
	if len(ps) != len(rs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			continue
		}
		if ps[i] != rs[i] {
			return false
		}
	}
	return true
}

func splitSegments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
