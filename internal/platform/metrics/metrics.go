// Package metrics holds the prometheus collectors for ledger commands.
// HTTP-level collectors live in the middleware package.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cfl_ledger_commands_total",
	Help: "Ledger commands processed, partitioned by command and outcome.",
}, []string{"command", "outcome"})

var pledgeVolume = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cfl_pledge_volume_wei_total",
	Help: "Total value of committed pledges in wei.",
})

// ObserveCommand records one command attempt. Failed commands apply no state,
// so the counter pair is a faithful commit/reject ratio.
func ObserveCommand(command string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	commandsTotal.WithLabelValues(command, outcome).Inc()
}

// ObservePledgeVolume adds one committed pledge's payment to the volume
// counter. Float precision is acceptable here; the ledger itself stays exact.
func ObservePledgeVolume(payment decimal.Decimal) {
	pledgeVolume.Add(payment.InexactFloat64())
}
