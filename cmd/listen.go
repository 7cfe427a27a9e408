//go:build unix

package cmd

import (
	"context"
	"fmt"
	"strconv"

	pkgcontext "github.com/matheuscscp/net-sock/pkg/context"
	pkgnet "github.com/matheuscscp/net-sock/pkg/net"
	"github.com/matheuscscp/net-sock/socket"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	listenNetwork string
	listenBacklog int
	listenIPv6    bool
)

var listenCmd = &cobra.Command{
	Use:   "listen <address> <port>",
	Short: "Create an accepting socket and hold it until interrupted",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := listenOptions()
		if err != nil {
			return err
		}
		address, err := pkgnet.ParseIPEndpoint(args[0])
		if err != nil {
			return fmt.Errorf("error parsing listen address: %w", err)
		}
		port, err := strconv.ParseUint(args[1], 10, 16)
		if err != nil {
			return fmt.Errorf("error parsing listen port: %w", err)
		}

		ctx, cancel := pkgcontext.WithCancelOnInterrupt(context.Background())
		defer cancel()
		stopMetrics := serveMetrics()
		defer stopMetrics()

		s, err := socket.MakeAcceptSocket(opts, address, uint16(port), listenBacklog)
		if err != nil {
			return err
		}
		defer s.Close()

		l := logrus.WithField("socket", s)
		if addr, boundPort, err := s.LocalAddr(); err == nil {
			l = l.WithField("address", addr).WithField("port", boundPort)
		}
		l.Info("socket ready")

		<-ctx.Done()
		return nil
	},
}

func init() {
	listenCmd.Flags().StringVar(&listenNetwork, "network", socket.TCP.String(), "transport kind: tcp or udp")
	listenCmd.Flags().IntVar(&listenBacklog, "backlog", socket.DefaultBacklog, "listen backlog, ignored for udp")
	listenCmd.Flags().BoolVar(&listenIPv6, "ipv6", false, "create an ipv6 socket")
	rootCmd.AddCommand(listenCmd)
}

func listenOptions() (socket.Options, error) {
	opts := socket.Options{Blocking: socket.BlockingNo}
	if err := opts.Type.UnmarshalText([]byte(listenNetwork)); err != nil {
		return opts, fmt.Errorf("error parsing --network: %w", err)
	}
	if listenIPv6 {
		opts.Domain = socket.IPv6
	}
	return opts, nil
}
