//go:build unix

package udp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/matheuscscp/net-sock/socket"

	"github.com/google/gopacket"
)

type (
	// IOScheduler is the collaborator that drives readiness of
	// descriptors for the data path built on top of a Peer. The Peer
	// only holds a reference to it and never calls it.
	IOScheduler interface {
		Poll(ctx context.Context, fd int, op socket.PollOp) error
	}

	// Info is the local endpoint a Peer binds to.
	Info struct {
		Address gopacket.Endpoint
		Port    uint16
	}

	// Peer is a non-blocking UDP socket together with the scheduler
	// that will drive its I/O and whether it was bound locally. The
	// binding state never changes after construction.
	Peer struct {
		scheduler IOScheduler
		socket    *socket.Socket
		bound     bool
	}
)

// ErrNilScheduler is returned by the constructors when no scheduler is
// provided. Only a nil interface is detected: a typed nil pointer
// wrapped in IOScheduler is accepted, and fails when first called.
var ErrNilScheduler = errors.New("nil io scheduler")

// NewPeer creates an unbound (client) Peer for the given domain.
func NewPeer(scheduler IOScheduler, domain socket.Domain) (*Peer, error) {
	if scheduler == nil {
		return nil, ErrNilScheduler
	}
	s, err := socket.MakeSocket(options(domain))
	if err != nil {
		return nil, fmt.Errorf("error creating udp socket: %w", err)
	}
	return &Peer{
		scheduler: scheduler,
		socket:    s,
	}, nil
}

// NewBoundPeer creates a Peer bound to info. The domain is the one of
// info.Address.
func NewBoundPeer(scheduler IOScheduler, info Info) (*Peer, error) {
	if scheduler == nil {
		return nil, ErrNilScheduler
	}
	domain, err := socket.DomainOf(info.Address)
	if err != nil {
		return nil, fmt.Errorf("error reading domain of bind address: %w", err)
	}
	s, err := socket.MakeAcceptSocket(options(domain), info.Address, info.Port, socket.DefaultBacklog)
	if err != nil {
		return nil, fmt.Errorf("error creating bound udp socket: %w", err)
	}
	return &Peer{
		scheduler: scheduler,
		socket:    s,
		bound:     true,
	}, nil
}

// NewMulticastPeer creates a Peer bound to info that has joined the
// multicast group.
func NewMulticastPeer(scheduler IOScheduler, info Info, group gopacket.Endpoint) (*Peer, error) {
	if scheduler == nil {
		return nil, ErrNilScheduler
	}
	domain, err := socket.DomainOf(info.Address)
	if err != nil {
		return nil, fmt.Errorf("error reading domain of bind address: %w", err)
	}
	s, err := socket.MakeMulticastSocket(options(domain), info.Address, info.Port, group)
	if err != nil {
		return nil, fmt.Errorf("error creating multicast udp socket: %w", err)
	}
	return &Peer{
		scheduler: scheduler,
		socket:    s,
		bound:     true,
	}, nil
}

func options(domain socket.Domain) socket.Options {
	return socket.Options{
		Domain:   domain,
		Type:     socket.UDP,
		Blocking: socket.BlockingNo,
	}
}

// Socket returns the socket owned by the Peer.
func (p *Peer) Socket() *socket.Socket {
	return p.socket
}

// Scheduler returns the scheduler the Peer was created with.
func (p *Peer) Scheduler() IOScheduler {
	return p.scheduler
}

// Bound tells whether the Peer was bound to a local address.
func (p *Peer) Bound() bool {
	return p.bound
}

// Close closes the socket. It can be called any number of times.
func (p *Peer) Close() error {
	return p.socket.Close()
}

func (i Info) String() string {
	return net.JoinHostPort(i.Address.String(), strconv.Itoa(int(i.Port)))
}
