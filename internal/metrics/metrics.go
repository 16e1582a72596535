// Package metrics exposes the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the collectors of one service instance.
type Metrics struct {
	Registry *prometheus.Registry

	DeviceMutations   *prometheus.CounterVec
	ClampedValues     prometheus.Counter
	ActiveSessions    *prometheus.GaugeVec
	ClockTicks        prometheus.Counter
	NotificationsSent *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		DeviceMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "device_mutations_total",
			Help:      "Applied device mutations by kind.",
		}, []string{"kind"}),
		ClampedValues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "device_values_clamped_total",
			Help:      "Value writes that were outside the category range.",
		}),
		ActiveSessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dashboard",
			Name:      "view_sessions_active",
			Help:      "Mounted views by kind.",
		}, []string{"kind"}),
		ClockTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "clock_ticks_total",
			Help:      "Clock refreshes across all views.",
		}),
		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "notifications_total",
			Help:      "Push notifications by result.",
		}, []string{"result"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.DeviceMutations,
		m.ClampedValues,
		m.ActiveSessions,
		m.ClockTicks,
		m.NotificationsSent,
	)
	return m
}
