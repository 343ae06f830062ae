package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetches_total",
		Help: "Total number of catalog fetches against the backend",
	}, []string{"result"})

	SearchesIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "searches_issued_total",
		Help: "Total number of search requests dispatched to the backend",
	})

	SearchesSupersededTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "searches_superseded_total",
		Help: "Total number of pending searches cancelled by a newer keystroke",
	})

	CartMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Total number of cart mutations by outcome",
	}, []string{"result"})

	CartLinesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_lines_dropped_total",
		Help: "Total number of cart entries dropped because the product was missing from the catalog snapshot",
	})

	CheckoutRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_rejected_total",
		Help: "Total number of checkouts rejected by pre-flight validation",
	}, []string{"reason"})

	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed successfully",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of failed checkout submissions",
	}, []string{"reason"})

	BackendRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_latency_seconds",
		Help:    "Latency of requests to the commerce backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
