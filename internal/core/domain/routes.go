package domain

import "strings"

// Application route paths. These are navigation targets, consulted by the
// route guard and by dashboard menu construction.
const (
	PathSetup     = "/setup"
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathAdmin     = "/dashboard/admin"
	PathUsers     = "/dashboard/users"
	PathAreas     = "/dashboard/areas"
	PathMap       = "/dashboard/map"
	PathReports   = "/dashboard/reports"
)

// RouteSpec declares the access requirements of one application route.
// RequiredRole empty means any signed-in session may enter; superadmin
// overrides any requirement.
type RouteSpec struct {
	Path         string `json:"path"`
	RequiredRole Role   `json:"required_role,omitempty"`
	Public       bool   `json:"public,omitempty"`
}

// routeTable is the single declarative role→route capability table. Every
// access decision and every menu is derived from it; individual views carry
// no role checks of their own.
var routeTable = []RouteSpec{
	{Path: PathSetup, Public: true},
	{Path: PathLogin, Public: true},
	{Path: PathDashboard},
	{Path: PathAdmin, RequiredRole: RoleAdmin},
	{Path: PathUsers, RequiredRole: RoleAdmin},
	{Path: PathAreas, RequiredRole: RoleAdmin},
	{Path: PathMap, RequiredRole: RolePresident},
	{Path: PathReports, RequiredRole: RoleWorker},
}

// Routes returns a copy of the route table.
func Routes() []RouteSpec {
	out := make([]RouteSpec, len(routeTable))
	copy(out, routeTable)
	return out
}

// LookupRoute finds the RouteSpec for a path. Nested paths inherit the entry
// of their closest ancestor (e.g. /dashboard/reports/42/complete requires
// what /dashboard/reports requires); unknown paths resolve to the dashboard
// spec, matching the catch-all redirect behaviour.
func LookupRoute(path string) RouteSpec {
	best := RouteSpec{Path: PathDashboard}
	bestLen := -1
	for _, r := range routeTable {
		if path == r.Path || strings.HasPrefix(path, r.Path+"/") {
			if len(r.Path) > bestLen {
				best, bestLen = r, len(r.Path)
			}
		}
	}
	return best
}

// NavigationFor returns the route paths a session with the given role may
// reach, in table order. Used to build the dashboard menu.
func NavigationFor(role Role) []string {
	var out []string
	for _, r := range routeTable {
		if r.Public {
			continue
		}
		if r.RequiredRole == "" || r.RequiredRole == role || role == RoleSuperadmin {
			out = append(out, r.Path)
		}
	}
	return out
}
