package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// revisionsCreated counts persisted revisions.
	// Labels: kind (create, revise)
	revisionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estimates",
		Name:      "revisions_created_total",
		Help:      "Total estimate revisions persisted",
	}, []string{"kind"})

	// formulaErrors counts rejected FORMULA lines.
	// Labels: kind (parse, disallowed, unknown_variable, evaluation)
	formulaErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estimates",
		Name:      "formula_errors_total",
		Help:      "Total formula evaluations rejected",
	}, []string{"kind"})

	catalogRefsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "estimates",
		Name:      "catalog_refs_dropped_total",
		Help:      "Line product references dropped because the product no longer exists",
	})
)
