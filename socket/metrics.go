package socket

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	promNamespace = "socket_factory"

	labelNameDomain = "domain"
	labelNameType   = "type"
	labelNameRole   = "role"
	labelNameStage  = "stage"

	rolePlain     = "plain"
	roleAccept    = "accept"
	roleMulticast = "multicast"
)

var (
	socketsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "sockets_created_total",
		Help:      "Total number of sockets fully prepared by the factory.",
	}, []string{labelNameDomain, labelNameType, labelNameRole})
	factoryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "failures_total",
		Help:      "Total number of factory calls that failed, by failed stage.",
	}, []string{labelNameStage})
)

func observeCreated(opts Options, role string) {
	socketsCreated.With(prometheus.Labels{
		labelNameDomain: opts.Domain.String(),
		labelNameType:   opts.Type.String(),
		labelNameRole:   role,
	}).Inc()
}
