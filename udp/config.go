//go:build unix

package udp

import (
	"errors"
	"fmt"

	pkgnet "github.com/matheuscscp/net-sock/pkg/net"
	"github.com/matheuscscp/net-sock/socket"
)

type (
	// PeerConfig describes a Peer in yaml. The construction mode follows
	// from which fields are set: no bind means client, bind means bound,
	// bind plus multicastGroup means multicast receiver.
	PeerConfig struct {
		Name           string        `yaml:"name"`
		Domain         socket.Domain `yaml:"domain"`
		Bind           *BindConfig   `yaml:"bind"`
		MulticastGroup string        `yaml:"multicastGroup"`
	}

	// BindConfig is the yaml form of Info.
	BindConfig struct {
		Address string `yaml:"address"`
		Port    uint16 `yaml:"port"`
	}

	// Mode is the construction mode of a Peer.
	Mode int
)

const (
	ModeClient Mode = iota
	ModeBound
	ModeMulticast
)

var (
	errMulticastWithoutBind = errors.New("multicastGroup requires bind")

	// ErrNotMulticastGroup is returned when multicastGroup is not an
	// IPv4 or IPv6 multicast address.
	ErrNotMulticastGroup = errors.New("not a multicast group address")
)

func (m Mode) String() string {
	switch m {
	case ModeClient:
		return "client"
	case ModeBound:
		return "bound"
	case ModeMulticast:
		return "multicast"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Mode returns the construction mode described by the config.
func (c *PeerConfig) Mode() (Mode, error) {
	switch {
	case c.Bind == nil && c.MulticastGroup != "":
		return 0, errMulticastWithoutBind
	case c.Bind == nil:
		return ModeClient, nil
	case c.MulticastGroup == "":
		return ModeBound, nil
	default:
		return ModeMulticast, nil
	}
}

// Info parses the bind section of the config. An empty address is the
// wildcard address of domain.
func (b *BindConfig) Info(domain socket.Domain) (Info, error) {
	if b.Address == "" {
		return Info{Address: pkgnet.Unspecified(domain == socket.IPv6), Port: b.Port}, nil
	}
	address, err := pkgnet.ParseIPEndpoint(b.Address)
	if err != nil {
		return Info{}, fmt.Errorf("error parsing bind address: %w", err)
	}
	return Info{Address: address, Port: b.Port}, nil
}

// NewPeerFromConfig creates a Peer with the constructor matching the
// mode of the config.
func NewPeerFromConfig(scheduler IOScheduler, conf PeerConfig) (*Peer, error) {
	mode, err := conf.Mode()
	if err != nil {
		return nil, err
	}
	if mode == ModeClient {
		return NewPeer(scheduler, conf.Domain)
	}
	info, err := conf.Bind.Info(conf.Domain)
	if err != nil {
		return nil, err
	}
	if mode == ModeBound {
		return NewBoundPeer(scheduler, info)
	}
	group, err := pkgnet.ParseIPEndpoint(conf.MulticastGroup)
	if err != nil {
		return nil, fmt.Errorf("error parsing multicast group: %w", err)
	}
	if !pkgnet.IsMulticast(group) {
		return nil, fmt.Errorf("%w: '%s'", ErrNotMulticastGroup, conf.MulticastGroup)
	}
	return NewMulticastPeer(scheduler, info, group)
}
