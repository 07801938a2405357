package service

import (
	"testing"

	"github.com/civiworks/workboard/internal/core/domain"
)

func signedIn(role domain.Role) domain.Session {
	return domain.Session{
		Identity:    &domain.Identity{UID: "u1", Email: "u1@example.com"},
		Role:        role,
		Initialized: true,
	}
}

func TestDecide_Pending(t *testing.T) {
	got := Decide(domain.Session{}, "")
	if got != DecisionPending {
		t.Fatalf("uninitialized session: expected pending, got %s", got)
	}
}

func TestDecide_SignedOut(t *testing.T) {
	got := Decide(domain.Session{Initialized: true}, "")
	if got != DecisionRedirectLogin {
		t.Fatalf("signed-out session: expected redirect to login, got %s", got)
	}
}

func TestDecide_RoleMatrix(t *testing.T) {
	cases := []struct {
		name     string
		role     domain.Role
		required domain.Role
		want     Decision
	}{
		{"no requirement admits any role", domain.RoleWorker, "", DecisionAllow},
		{"matching role", domain.RoleAdmin, domain.RoleAdmin, DecisionAllow},
		{"mismatched role", domain.RoleWorker, domain.RoleAdmin, DecisionRedirectDashboard},
		{"superadmin overrides admin surface", domain.RoleSuperadmin, domain.RoleAdmin, DecisionAllow},
		{"superadmin overrides president surface", domain.RoleSuperadmin, domain.RolePresident, DecisionAllow},
		{"superadmin overrides worker surface", domain.RoleSuperadmin, domain.RoleWorker, DecisionAllow},
		{"missing role record is restricted", "", domain.RoleWorker, DecisionRedirectDashboard},
		{"missing role record still enters open surfaces", "", "", DecisionAllow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(signedIn(tc.role), tc.required); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDecideRoute_PublicRoutes(t *testing.T) {
	if got := DecideRoute(domain.Session{}, domain.PathLogin); got != DecisionAllow {
		t.Fatalf("login is public even before initialization, got %s", got)
	}
	if got := DecideRoute(domain.Session{Initialized: true}, domain.PathSetup); got != DecisionAllow {
		t.Fatalf("setup is public, got %s", got)
	}
}

func TestDecideRoute_SignedInLoginBounces(t *testing.T) {
	got := DecideRoute(signedIn(domain.RoleWorker), domain.PathLogin)
	if got != DecisionRedirectDashboard {
		t.Fatalf("signed-in visit to login should bounce to dashboard, got %s", got)
	}
}

func TestDecideRoute_NestedPathInheritsRequirement(t *testing.T) {
	got := DecideRoute(signedIn(domain.RoleAdmin), "/dashboard/reports/42/complete")
	if got != DecisionRedirectDashboard {
		t.Fatalf("admin on a worker surface should bounce, got %s", got)
	}
	got = DecideRoute(signedIn(domain.RoleWorker), "/dashboard/reports/42/complete")
	if got != DecisionAllow {
		t.Fatalf("worker should enter the report surface, got %s", got)
	}
}

func TestDecideSetup(t *testing.T) {
	cases := []struct {
		name        string
		provisioned bool
		path        string
		want        Decision
	}{
		{"unprovisioned setup visit", false, domain.PathSetup, DecisionAllow},
		{"provisioned setup visit", true, domain.PathSetup, DecisionRedirectLogin},
		{"unprovisioned elsewhere", false, domain.PathLogin, DecisionRedirectSetup},
		{"provisioned elsewhere", true, domain.PathDashboard, DecisionAllow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecideSetup(tc.provisioned, tc.path); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
