package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersCreated counts committed orders.
	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of committed orders",
		},
	)

	// OrderTotalAmount sums committed order totals in VND.
	OrderTotalAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_amount_vnd_total",
			Help: "Accumulated total amount of committed orders (VND)",
		},
	)

	// InterpretRequests counts interpretation calls by outcome.
	InterpretRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interpret_requests_total",
			Help: "Total number of order interpretation requests",
		},
		[]string{"outcome"}, // ok | empty | error
	)

	// CircuitBreakerState tracks circuit breaker state (0=closed, 1=open, 2=half-open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"circuit_name"},
	)

	// InventoryLevel tracks current stock per product.
	InventoryLevel = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inventory_level",
			Help: "Current stock level per inventory product",
		},
		[]string{"product_id"},
	)

	// CaptureRestarts counts silent recognizer restarts.
	CaptureRestarts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "capture_restarts_total",
			Help: "Total number of automatic speech capture restarts",
		},
	)
)
