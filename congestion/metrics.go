// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/consensusnode/admission/throttle"
	"github.com/consensusnode/admission/utils/wrappers"
)

const throttleLabel = "throttle"

type Metrics struct {
	used        *prometheus.GaugeVec
	capacity    *prometheus.GaugeVec
	utilization *prometheus.GaugeVec
	multiplier  prometheus.Gauge
}

func NewMetrics(namespace string, registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		used: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "throttle_used",
			Help:      "Capacity units in use by the throttle",
		}, []string{throttleLabel}),
		capacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "throttle_capacity",
			Help:      "Total capacity units of the throttle",
		}, []string{throttleLabel}),
		utilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "throttle_utilization_percent",
			Help:      "Percent of the throttle's capacity in use",
		}, []string{throttleLabel}),
		multiplier: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "congestion_multiplier",
			Help:      "Current congestion fee multiplier",
		}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.used),
		registerer.Register(m.capacity),
		registerer.Register(m.utilization),
		registerer.Register(m.multiplier),
	)
	return m, errs.Err
}

// Observe records the current state of [throttles].
func (m *Metrics) Observe(throttles ...throttle.CongestibleThrottle) {
	for _, t := range throttles {
		name := t.Name()
		m.used.WithLabelValues(name).Set(float64(t.Used()))
		m.capacity.WithLabelValues(name).Set(float64(t.Capacity()))
		m.utilization.WithLabelValues(name).Set(float64(throttle.UtilizationPercent(t)))
	}
}

func (m *Metrics) SetMultiplier(multiplier uint64) {
	m.multiplier.Set(float64(multiplier))
}
