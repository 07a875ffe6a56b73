// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import "github.com/prometheus/client_golang/prometheus"

// Metrics tracks engine activity for Prometheus scraping.
type Metrics struct {
	proposalsCreated  prometheus.Counter
	confirmations     prometheus.Counter
	executions        prometheus.Counter
	executionFailures prometheus.Counter
	deposits          prometheus.Counter
	governanceActions *prometheus.CounterVec
	validatorCount    prometheus.Gauge
	quorumSize        prometheus.Gauge
}

// NewMetrics creates the engine metric set and registers it with registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		proposalsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "multisig_proposals_created_total",
			Help: "Number of transaction proposals created",
		}),
		confirmations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "multisig_confirmations_total",
			Help: "Number of validator confirmations recorded",
		}),
		executions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "multisig_executions_total",
			Help: "Number of transactions executed successfully",
		}),
		executionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "multisig_execution_failures_total",
			Help: "Number of execution attempts whose external call failed",
		}),
		deposits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "multisig_deposits_total",
			Help: "Number of plain value transfers accepted",
		}),
		governanceActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "multisig_governance_actions_total",
			Help: "Number of governance actions applied, by method",
		}, []string{"method"}),
		validatorCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "multisig_validator_count",
			Help: "Current number of validators",
		}),
		quorumSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "multisig_quorum_size",
			Help: "Current quorum threshold",
		}),
	}
	registerer.MustRegister(
		m.proposalsCreated,
		m.confirmations,
		m.executions,
		m.executionFailures,
		m.deposits,
		m.governanceActions,
		m.validatorCount,
		m.quorumSize,
	)
	return m
}
