//go:build unix

package test

import (
	"errors"
	"net"
	"os"
	"testing"

	"github.com/matheuscscp/net-sock/socket"
	pkgnet "github.com/matheuscscp/net-sock/pkg/net"

	"github.com/google/gopacket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// MustParseIP parses s into an IP endpoint or fails the test.
func MustParseIP(t *testing.T, s string) gopacket.Endpoint {
	ep, err := pkgnet.ParseIPEndpoint(s)
	require.NoError(t, err)
	return ep
}

// AssertInvalid checks that s owns no descriptor.
func AssertInvalid(t *testing.T, s *socket.Socket) {
	assert.False(t, s.Valid())
	assert.Equal(t, -1, s.Native())
}

// AssertOpen checks that fd is an open descriptor in this process.
func AssertOpen(t *testing.T, fd int) {
	_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	assert.NoError(t, err, "fd %d should be open", fd)
}

// AssertClosed checks that fd is not an open descriptor in this process.
// Only meaningful right after the close, before the number is reused.
func AssertClosed(t *testing.T, fd int) {
	_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	assert.ErrorIs(t, err, unix.EBADF, "fd %d should be closed", fd)
}

// AcceptsConnections tells whether the descriptor was marked as
// listening.
func AcceptsConnections(t *testing.T, s *socket.Socket) bool {
	v, err := unix.GetsockoptInt(s.Native(), unix.SOL_SOCKET, unix.SO_ACCEPTCONN)
	require.NoError(t, err)
	return v != 0
}

// SocketType returns SO_TYPE of the descriptor.
func SocketType(t *testing.T, s *socket.Socket) int {
	v, err := unix.GetsockoptInt(s.Native(), unix.SOL_SOCKET, unix.SO_TYPE)
	require.NoError(t, err)
	return v
}

// SkipIfNoMulticastRoute skips the test when the host cannot join
// multicast groups (e.g. a network namespace without a route for
// 224.0.0.0/4).
func SkipIfNoMulticastRoute(t *testing.T, err error) {
	if errors.Is(err, unix.ENODEV) || errors.Is(err, unix.EADDRNOTAVAIL) || errors.Is(err, unix.ENETUNREACH) {
		t.Skipf("host cannot join multicast groups: %v", err)
	}
}

// PacketConn returns a net.PacketConn over a duplicate of the
// descriptor of s. s keeps ownership of its own descriptor.
func PacketConn(t *testing.T, s *socket.Socket) net.PacketConn {
	dup, err := s.Duplicate()
	require.NoError(t, err)
	f := os.NewFile(uintptr(dup.Take().Native()), "test-packet-conn")
	defer f.Close()
	c, err := net.FilePacketConn(f)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

// SendUDP writes payload to the given loopback port from an ephemeral
// socket of the standard library.
func SendUDP(t *testing.T, network string, dst *net.UDPAddr, payload []byte) {
	c, err := net.DialUDP(network, nil, dst)
	require.NoError(t, err)
	defer c.Close()
	n, err := c.Write(payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
}
