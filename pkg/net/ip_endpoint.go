package pkgnet

import (
	"fmt"
	"net"

	"github.com/google/gopacket"
	gplayers "github.com/google/gopacket/layers"
)

// ParseIPEndpoint uses net.ParseIP() and returns the result as a
// gopacket.Endpoint. IPv4-mapped IPv6 addresses yield IPv4 endpoints.
func ParseIPEndpoint(s string) (gopacket.Endpoint, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return gopacket.Endpoint{}, fmt.Errorf("unknown error parsing '%s' as IP address", s)
	}
	return gplayers.NewIPEndpoint(ip), nil
}

// IsMulticast tells whether the endpoint is an IPv4 or IPv6 multicast
// group address.
func IsMulticast(ep gopacket.Endpoint) bool {
	switch ep.EndpointType() {
	case gplayers.EndpointIPv4, gplayers.EndpointIPv6:
		return net.IP(ep.Raw()).IsMulticast()
	default:
		return false
	}
}

// Unspecified returns the wildcard address of the given family: 0.0.0.0
// when ipv6 is false, :: otherwise.
func Unspecified(ipv6 bool) gopacket.Endpoint {
	if ipv6 {
		return gplayers.NewIPEndpoint(net.IPv6unspecified)
	}
	return gplayers.NewIPEndpoint(net.IPv4zero)
}
