package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the place-order workflow, transaction included
	OrderPlacementLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "shop_order_placement_latency_seconds",
		Help:    "Latency of the order placement workflow",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of orders successfully created
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_created_total",
		Help: "Total number of orders created",
	})

	// Total number of payment reminder emails successfully sent
	RemindersSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shop_payment_reminders_sent_total",
		Help: "Total number of payment reminders sent",
	})

	// Order-created events dropped because the dispatcher buffer was full
	EventsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shop_order_events_dropped_total",
		Help: "Total number of order-created events dropped",
	})
)

func Init() {
	prometheus.MustRegister(
		OrderPlacementLatency,
		OrdersCreated,
		RemindersSent,
		EventsDropped,
	)
}
