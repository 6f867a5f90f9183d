// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	opsAccepted *prometheus.CounterVec
	opsRejected *prometheus.CounterVec

	recordedBalance prometheus.Gauge
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	m := &metrics{
		opsAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "ops_accepted",
			Help:      "number of operations committed",
		}, []string{"action"}),
		opsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "ops_rejected",
			Help:      "number of operations rejected before commit",
		}, []string{"action"}),
		recordedBalance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vault",
			Name:      "recorded_balance",
			Help:      "recorded native balance of the vault",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.opsAccepted),
		r.Register(m.opsRejected),
		r.Register(m.recordedBalance),
	)
	return r, m, errs.Err
}
