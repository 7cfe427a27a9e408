//go:build unix

package socket

import (
	"net"
	"testing"

	gplayers "github.com/google/gopacket/layers"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryMetrics(t *testing.T) {
	opts := Options{Domain: IPv4, Type: UDP, Blocking: BlockingNo}
	created := socketsCreated.WithLabelValues("ipv4", "udp", roleAccept)
	bindFailures := factoryFailures.WithLabelValues("bind")
	kindFailures := factoryFailures.WithLabelValues("unsupported_transport_kind")
	createdBefore := testutil.ToFloat64(created)
	bindFailuresBefore := testutil.ToFloat64(bindFailures)
	kindFailuresBefore := testutil.ToFloat64(kindFailures)

	s, err := MakeAcceptSocket(opts, gplayers.NewIPEndpoint(net.IPv4(127, 0, 0, 1)), 0, DefaultBacklog)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, createdBefore+1, testutil.ToFloat64(created))

	_, err = MakeAcceptSocket(opts, gplayers.NewIPEndpoint(net.IPv6loopback), 0, DefaultBacklog)
	require.ErrorIs(t, err, ErrBindFailed)
	assert.Equal(t, bindFailuresBefore+1, testutil.ToFloat64(bindFailures))
	assert.Equal(t, createdBefore+1, testutil.ToFloat64(created))

	_, err = MakeSocket(Options{Domain: IPv4, Type: Type(3)})
	require.ErrorIs(t, err, ErrUnsupportedTransportKind)
	assert.Equal(t, kindFailuresBefore+1, testutil.ToFloat64(kindFailures))
}

func TestStageLabel(t *testing.T) {
	for stage, label := range map[error]string{
		ErrUnsupportedTransportKind:       "unsupported_transport_kind",
		ErrSocketCreationFailed:           "socket_creation",
		ErrNonBlockingConfigurationFailed: "non_blocking_configuration",
		ErrSocketOptionFailed:             "socket_option",
		ErrBindFailed:                     "bind",
		ErrListenFailed:                   "listen",
		ErrInvalidSocket:                  "unknown",
	} {
		assert.Equal(t, label, stageLabel(stage))
	}
}
