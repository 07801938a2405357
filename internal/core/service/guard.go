package service

import "github.com/civiworks/workboard/internal/core/domain"

// Decision is the route guard's verdict for one navigation attempt.
type Decision string

const (
	// DecisionPending means the identity-change subscription has not yet
	// resolved; render a loading state, make no redirect decision.
	DecisionPending Decision = "pending"
	DecisionAllow   Decision = "allow"
	// DecisionRedirectLogin sends the visitor to /login.
	DecisionRedirectLogin Decision = "redirect_login"
	// DecisionRedirectSetup forces the one-time provisioning flow.
	DecisionRedirectSetup Decision = "redirect_setup"
	// DecisionRedirectDashboard bounces a signed-in session off a surface
	// its role may not enter.
	DecisionRedirectDashboard Decision = "redirect_dashboard"
)

// Decide maps (session, requested route, required role) to a guard decision.
// The rules are evaluated in order:
//
//  1. Session not initialized → Pending. This prevents a flash-redirect to
//     login before the identity subscription has delivered its first event.
//  2. No identity → RedirectLogin.
//  3. Required role set, session role differs, and session is not
//     superadmin → RedirectDashboard. Superadmin enters every surface.
//  4. Otherwise → Allow.
//
// A signed-in session whose role record was missing at resolution time has
// an empty role and is restricted exactly like any other role mismatch.
func Decide(session domain.Session, requiredRole domain.Role) Decision {
	if !session.Initialized {
		return DecisionPending
	}
	if !session.SignedIn() {
		return DecisionRedirectLogin
	}
	if requiredRole != "" && session.Role != requiredRole && session.Role != domain.RoleSuperadmin {
		return DecisionRedirectDashboard
	}
	return DecisionAllow
}

// DecideRoute resolves a navigation attempt against the declarative route
// table. Public routes skip the access rules, with one exception: a
// signed-in session visiting /login is sent to the dashboard.
func DecideRoute(session domain.Session, path string) Decision {
	spec := domain.LookupRoute(path)
	if spec.Public {
		if spec.Path == domain.PathLogin && session.Initialized && session.SignedIn() {
			return DecisionRedirectDashboard
		}
		return DecisionAllow
	}
	return Decide(session, spec.RequiredRole)
}

// DecideSetup is the system-provisioning gate, a decision separate from the
// per-route rules. When a superadmin already exists the setup route itself
// redirects to login; while none exists, every route other than /setup must
// yield to the setup flow first.
func DecideSetup(provisioned bool, path string) Decision {
	if path == domain.PathSetup {
		if provisioned {
			return DecisionRedirectLogin
		}
		return DecisionAllow
	}
	if !provisioned {
		return DecisionRedirectSetup
	}
	return DecisionAllow
}
