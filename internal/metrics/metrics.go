// Package metrics defines all custom Prometheus metrics for the workboard
// service. It is the single source of truth for metric names, labels, and
// help strings; metrics register themselves with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "ok", "invalid_credentials", "role_record_missing", or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// IdentityEventsTotal counts identity-change events handled by the bootstrap
// sequencer.
// Label:
//   - kind: "signed_in" or "signed_out"
var IdentityEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_events_total",
		Help:      "Total number of identity-change events handled, by kind.",
	},
	[]string{"kind"},
)

// StaleResolutionsTotal counts role lookups discarded because a more recent
// identity-change event had already landed.
var StaleResolutionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_resolutions_total",
		Help:      "Total number of role resolutions discarded as stale.",
	},
)

// ── Route guard metrics ───────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard verdicts.
// Labels:
//   - decision: "allow", "pending", "redirect_login", "redirect_setup", "redirect_dashboard"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"decision"},
)

// ── Provisioning metrics ──────────────────────────────────────────────────────

// ProvisioningChecksTotal counts superadmin-exists checks.
// Label:
//   - source: "cache" or "store"; errors count under "error"
var ProvisioningChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provisioning_checks_total",
		Help:      "Total number of provisioning gate checks, by answer source.",
	},
	[]string{"source"},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsTotal counts work report lifecycle operations.
// Label:
//   - op: "started" or "completed"
var ReportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_total",
		Help:      "Total number of work report operations, by kind.",
	},
	[]string{"op"},
)

// BlobUploadsTotal counts blob store uploads.
// Label:
//   - result: "ok" or "error"
var BlobUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blob_uploads_total",
		Help:      "Total number of blob store uploads, by result.",
	},
	[]string{"result"},
)
