//go:build unix

package socket

import (
	"fmt"
	"runtime"

	"github.com/google/gopacket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// DefaultBacklog is the listen backlog used when the caller has no
// preference.
const DefaultBacklog = 128

var (
	reuseOptions          = reuseOptionsFor(runtime.GOOS)
	multicastReuseOptions = multicastReuseOptionsFor(runtime.GOOS)
)

// MakeSocket creates a socket for opts.Domain and opts.Type and, if
// requested, puts it in non-blocking mode.
func MakeSocket(opts Options) (*Socket, error) {
	s, err := makeSocket(opts)
	if err != nil {
		return nil, err
	}
	observeCreated(opts, rolePlain)
	logSocket(s, opts, rolePlain).Debug("socket ready")
	return s, nil
}

func makeSocket(opts Options) (*Socket, error) {
	typ, err := TypeToOS(opts.Type)
	if err != nil {
		factoryFailures.WithLabelValues(stageLabel(ErrUnsupportedTransportKind)).Inc()
		return nil, err
	}
	domain, err := domainToOS(opts.Domain)
	if err != nil {
		return nil, stageFailure(ErrSocketCreationFailed, "socket()", err)
	}
	fd, err := socketCloseOnExec(domain, typ)
	if err != nil {
		return nil, stageFailure(ErrSocketCreationFailed, "socket()", err)
	}
	s := New(fd)
	if opts.Blocking == BlockingNo && !s.SetBlocking(BlockingNo) {
		s.Close()
		return nil, stageFailure(ErrNonBlockingConfigurationFailed, "fcntl(O_NONBLOCK)", nil)
	}
	return s, nil
}

// MakeAcceptSocket creates a socket with MakeSocket(), makes it
// tolerate duplicate binds, binds it to address:port and, for TCP,
// marks it as listening with the given backlog. Listening has no
// meaning for UDP, so that step is skipped.
func MakeAcceptSocket(opts Options, address gopacket.Endpoint, port uint16, backlog int) (*Socket, error) {
	s, err := makeSocket(opts)
	if err != nil {
		return nil, err
	}
	if err := setOptions(s.fd, reuseOptions); err != nil {
		s.Close()
		return nil, err
	}
	if err := bind(s.fd, opts.Domain, address, port); err != nil {
		s.Close()
		return nil, err
	}
	if opts.Type == TCP {
		if err := unix.Listen(s.fd, backlog); err != nil {
			s.Close()
			return nil, stageFailure(ErrListenFailed, fmt.Sprintf("listen(%d)", backlog), err)
		}
	}
	observeCreated(opts, roleAccept)
	logSocket(s, opts, roleAccept).
		WithField("address", address).
		WithField("port", port).
		Debug("socket ready")
	return s, nil
}

// MakeMulticastSocket creates a socket with MakeSocket(), makes it
// share its port with other receivers, binds it to address:port,
// enables multicast loopback and joins group on the wildcard
// interface. Only IPv4 groups are supported.
func MakeMulticastSocket(opts Options, address gopacket.Endpoint, port uint16, group gopacket.Endpoint) (*Socket, error) {
	groupAddr, err := ipv4Group(group)
	if err != nil {
		return nil, stageFailure(ErrSocketOptionFailed, "IP_ADD_MEMBERSHIP", err)
	}
	s, err := makeSocket(opts)
	if err != nil {
		return nil, err
	}
	if err := setOptions(s.fd, multicastReuseOptions); err != nil {
		s.Close()
		return nil, err
	}
	if err := bind(s.fd, opts.Domain, address, port); err != nil {
		s.Close()
		return nil, err
	}
	if err := setIPv4MulticastLoop(s.fd, true); err != nil {
		s.Close()
		return nil, stageFailure(ErrSocketOptionFailed, "IP_MULTICAST_LOOP", err)
	}
	mreq := &unix.IPMreq{Multiaddr: groupAddr} // zero Interface is INADDR_ANY
	if err := unix.SetsockoptIPMreq(s.fd, unix.IPPROTO_IP, unix.IP_ADD_MEMBERSHIP, mreq); err != nil {
		s.Close()
		return nil, stageFailure(ErrSocketOptionFailed, "IP_ADD_MEMBERSHIP", err)
	}
	observeCreated(opts, roleMulticast)
	logSocket(s, opts, roleMulticast).
		WithField("address", address).
		WithField("port", port).
		WithField("group", group).
		Debug("socket ready")
	return s, nil
}

func setOptions(fd int, opts []sockOpt) error {
	for _, o := range opts {
		if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, o.os(), 1); err != nil {
			return stageFailure(ErrSocketOptionFailed, o.String(), err)
		}
	}
	return nil
}

func (o sockOpt) os() int {
	if o == optReusePort {
		return unix.SO_REUSEPORT
	}
	return unix.SO_REUSEADDR
}

func bind(fd int, domain Domain, address gopacket.Endpoint, port uint16) error {
	sa, err := sockaddr(domain, address, port)
	if err != nil {
		return stageFailure(ErrBindFailed, "bind()", err)
	}
	if err := unix.Bind(fd, sa); err != nil {
		return stageFailure(ErrBindFailed, fmt.Sprintf("bind(%s:%d)", address, port), err)
	}
	return nil
}

func sockaddr(domain Domain, address gopacket.Endpoint, port uint16) (unix.Sockaddr, error) {
	addrDomain, err := DomainOf(address)
	if err != nil {
		return nil, err
	}
	if addrDomain != domain {
		return nil, fmt.Errorf("address %s is %s but the socket is %s", address, addrDomain, domain)
	}
	raw := address.Raw()
	if domain == IPv4 {
		sa := &unix.SockaddrInet4{Port: int(port)}
		copy(sa.Addr[:], raw)
		return sa, nil
	}
	sa := &unix.SockaddrInet6{Port: int(port)}
	copy(sa.Addr[:], raw)
	return sa, nil
}

func logSocket(s *Socket, opts Options, role string) logrus.FieldLogger {
	return logrus.
		WithField("fd", s.fd).
		WithField("domain", opts.Domain).
		WithField("type", opts.Type).
		WithField("blocking", opts.Blocking).
		WithField("role", role)
}
