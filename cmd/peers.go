//go:build unix

package cmd

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/matheuscscp/net-sock/config"
	"github.com/matheuscscp/net-sock/hostnetwork"
	pkgcontext "github.com/matheuscscp/net-sock/pkg/context"
	pkgio "github.com/matheuscscp/net-sock/pkg/io"
	"github.com/matheuscscp/net-sock/udp"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/net/ipv4"
)

type peersConfig struct {
	Peers []udp.PeerConfig `yaml:"peers"`
}

var newPeerFromConfig = udp.NewPeerFromConfig

var peersCmd = &cobra.Command{
	Use:   "peers <yaml-config-file>",
	Short: "Create the configured udp peers and hold them until interrupted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// read config
		var conf peersConfig
		if err := config.ReadYAMLFileAndUnmarshal(args[0], &conf); err != nil {
			return fmt.Errorf("error reading yaml peers config file: %w", err)
		}

		// create ctx
		ctx, cancel := pkgcontext.WithCancelOnInterrupt(context.Background())
		defer cancel()
		stopMetrics := serveMetrics()
		defer stopMetrics()

		// create peers
		poller := hostnetwork.NewPoller()
		defer poller.Close()
		peers, err := createPeers(poller, conf.Peers)
		if err != nil {
			return err
		}

		// wait for ctx and close
		<-ctx.Done()
		if err := pkgio.CloseAll(peers); err != nil {
			return fmt.Errorf("error closing peers: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(peersCmd)
}

func createPeers(scheduler udp.IOScheduler, confs []udp.PeerConfig) ([]*udp.Peer, error) {
	peers := make([]*udp.Peer, 0, len(confs))
	for _, conf := range confs {
		if conf.Name == "" {
			conf.Name = petname.Generate(2, "-")
		}
		mode, err := conf.Mode()
		if err != nil {
			closePeers(peers)
			return nil, fmt.Errorf("error reading mode of peer '%s': %w", conf.Name, err)
		}
		peer, err := newPeerFromConfig(scheduler, conf)
		if err != nil {
			closePeers(peers)
			return nil, fmt.Errorf("error creating peer '%s': %w", conf.Name, err)
		}
		peers = append(peers, peer)
		logPeer(peer, conf.Name, mode)
	}
	return peers, nil
}

func closePeers(peers []*udp.Peer) {
	if err := pkgio.CloseAll(peers); err != nil {
		logrus.WithError(err).Warn("error closing peers")
	}
}

func logPeer(peer *udp.Peer, name string, mode udp.Mode) {
	l := logrus.
		WithField("name", name).
		WithField("mode", mode).
		WithField("socket", peer.Socket())
	if peer.Bound() {
		addr, port, err := peer.Socket().LocalAddr()
		if err != nil {
			l.WithError(err).Warn("error reading local address of peer")
		} else {
			l = l.WithField("local", udp.Info{Address: addr, Port: port})
		}
	}
	if mode == udp.ModeMulticast {
		loop, ttl, err := multicastState(peer)
		if err != nil {
			l.WithError(err).Warn("error reading multicast state of peer")
		} else {
			l = l.WithField("multicastLoopback", loop).WithField("multicastTTL", ttl)
		}
	}
	l.Info("peer ready")
}

// multicastState reads the multicast options of the peer through a
// duplicate of its descriptor, so the peer keeps sole ownership of its
// own.
func multicastState(peer *udp.Peer) (bool, int, error) {
	dup, err := peer.Socket().Duplicate()
	if err != nil {
		return false, 0, err
	}
	f := os.NewFile(uintptr(dup.Take().Native()), "peer")
	defer f.Close()
	c, err := net.FilePacketConn(f)
	if err != nil {
		return false, 0, fmt.Errorf("error creating packet conn: %w", err)
	}
	defer c.Close()
	pc := ipv4.NewPacketConn(c)
	loop, err := pc.MulticastLoopback()
	if err != nil {
		return false, 0, fmt.Errorf("error reading multicast loopback: %w", err)
	}
	ttl, err := pc.MulticastTTL()
	if err != nil {
		return false, 0, fmt.Errorf("error reading multicast ttl: %w", err)
	}
	return loop, ttl, nil
}
