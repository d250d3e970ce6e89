// Copyright (C) 2025 SAGE-X Project
//
// This file is part of vestauth-go.
//
// vestauth-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// vestauth-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with vestauth-go.  If not, see <https://www.gnu.org/licenses/>.

// Package metrics exports Prometheus metrics for vestauth engine runs.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vestauth/vestauth-go/pkg/binary"
)

// engine runs are process spawns, so buckets start around a few milliseconds
var durationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Collector implements binary.Observer
type Collector struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewCollector creates the vestauth metrics and registers them with reg.
// Metrics already registered with reg are reused.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	invocations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vestauth_invocations_total",
			Help: "Number of vestauth engine runs by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vestauth_invocation_duration_seconds",
			Help:    "Wall time of vestauth engine runs.",
			Buckets: durationBuckets,
		},
		[]string{"operation"},
	)

	var err error
	if invocations, err = registerCounterVec(reg, invocations); err != nil {
		return nil, err
	}
	if duration, err = registerHistogramVec(reg, duration); err != nil {
		return nil, err
	}

	return &Collector{
		invocations: invocations,
		duration:    duration,
	}, nil
}

// ObserveInvocation records one engine run
func (c *Collector) ObserveInvocation(op binary.Operation, outcome string, elapsed time.Duration) {
	c.invocations.WithLabelValues(op.String(), outcome).Inc()
	c.duration.WithLabelValues(op.String()).Observe(elapsed.Seconds())
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func registerHistogramVec(reg prometheus.Registerer, h *prometheus.HistogramVec) (*prometheus.HistogramVec, error) {
	if err := reg.Register(h); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return h, nil
}
