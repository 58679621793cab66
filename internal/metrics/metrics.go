// Package metrics defines and registers all custom Prometheus metrics for the
// case management API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "legalcases"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid", "locked", "disabled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// LockoutsTotal counts accounts locked after repeated failed passwords.
var LockoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lockouts_total",
		Help:      "Total number of temporary account lockouts triggered.",
	},
)

// ── Document metrics ──────────────────────────────────────────────────────────

// DocumentosSubidosTotal counts uploaded documents.
// Label:
//   - tipo: the document type reported by the uploader (e.g. "contrato")
var DocumentosSubidosTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documentos_subidos_total",
		Help:      "Total number of documents uploaded, by document type.",
	},
	[]string{"tipo"},
)

// DocumentoUploadBytes measures the size of uploaded document blobs.
var DocumentoUploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "documento_upload_bytes",
		Help:      "Size distribution of uploaded document blobs.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
	},
)
