package socket

import (
	"errors"
	"fmt"
	"net"

	"github.com/google/gopacket"
	gplayers "github.com/google/gopacket/layers"
)

// ErrNotIPEndpoint is returned when an endpoint is neither an IPv4 nor
// an IPv6 address.
var ErrNotIPEndpoint = errors.New("endpoint is not an ip address")

// DomainOf returns the address family of an IP endpoint.
func DomainOf(address gopacket.Endpoint) (Domain, error) {
	switch address.EndpointType() {
	case gplayers.EndpointIPv4:
		return IPv4, nil
	case gplayers.EndpointIPv6:
		return IPv6, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrNotIPEndpoint, address.EndpointType())
	}
}

// ipv4Group converts the text form of a multicast group into the
// four bytes expected by IP_ADD_MEMBERSHIP.
func ipv4Group(group gopacket.Endpoint) ([4]byte, error) {
	var b [4]byte
	ip := net.ParseIP(group.String())
	if ip == nil {
		return b, fmt.Errorf("%w: '%s'", ErrNotIPEndpoint, group.String())
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return b, fmt.Errorf("%w: '%s'", ErrIPv6MulticastUnsupported, group.String())
	}
	copy(b[:], ip4)
	return b, nil
}
