//go:build unix

package cmd

import (
	"testing"

	"github.com/matheuscscp/net-sock/config"
	"github.com/matheuscscp/net-sock/socket"
	"github.com/matheuscscp/net-sock/test"
	"github.com/matheuscscp/net-sock/udp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePeers(t *testing.T) {
	var conf peersConfig
	require.NoError(t, config.Unmarshal([]byte(`
peers:
- {}
- name: server
  bind:
    address: 127.0.0.1
`), &conf))

	peers, err := createPeers(&test.Scheduler{}, conf.Peers)
	require.NoError(t, err)
	require.Len(t, peers, 2)
	defer peers[0].Close()
	defer peers[1].Close()
	assert.False(t, peers[0].Bound())
	assert.True(t, peers[1].Bound())
}

func TestCreatePeersClosesOnFailure(t *testing.T) {
	var (
		created []*udp.Peer
		fds     []int
	)
	newPeerFromConfig = func(scheduler udp.IOScheduler, conf udp.PeerConfig) (*udp.Peer, error) {
		p, err := udp.NewPeerFromConfig(scheduler, conf)
		if err == nil {
			created = append(created, p)
			fds = append(fds, p.Socket().Native())
		}
		return p, err
	}
	defer func() { newPeerFromConfig = udp.NewPeerFromConfig }()

	for name, bad := range map[string]udp.PeerConfig{
		"bad mode":    {Name: "bad", MulticastGroup: "239.0.0.1"},
		"bad address": {Name: "bad", Bind: &udp.BindConfig{Address: "203.0.113.7", Port: 4000}},
	} {
		t.Run(name, func(t *testing.T) {
			created, fds = nil, nil
			peers, err := createPeers(&test.Scheduler{}, []udp.PeerConfig{{Name: "ok"}, bad})
			assert.ErrorContains(t, err, "peer 'bad'")
			assert.Nil(t, peers)

			require.Len(t, created, 1)
			test.AssertInvalid(t, created[0].Socket())
			test.AssertClosed(t, fds[0])
		})
	}
}

func TestListenOptions(t *testing.T) {
	listenNetwork, listenIPv6 = "udp", true
	defer func() { listenNetwork, listenIPv6 = "tcp", false }()

	opts, err := listenOptions()
	require.NoError(t, err)
	assert.Equal(t, socket.Options{Domain: socket.IPv6, Type: socket.UDP, Blocking: socket.BlockingNo}, opts)

	listenNetwork = "sctp"
	_, err = listenOptions()
	assert.ErrorIs(t, err, socket.ErrUnsupportedTransportKind)
}
