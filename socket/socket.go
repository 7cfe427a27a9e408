//go:build unix

package socket

import (
	"fmt"
	"net"
	"syscall"

	"github.com/google/gopacket"
	gplayers "github.com/google/gopacket/layers"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

type (
	// Socket owns one OS socket descriptor. The zero value is not
	// usable, use New() or the factory functions.
	//
	// A Socket is meant to have a single owner at a time. Ownership is
	// moved with Take() or MoveFrom(), and a second independent owner of
	// the same kernel resource is obtained with Duplicate(). None of the
	// methods are safe for concurrent use.
	Socket struct {
		fd int
	}
)

// invalidFD is the sentinel value of a closed/invalid Socket.
const invalidFD = -1

// New takes ownership of fd. No validation is performed.
func New(fd int) *Socket {
	return &Socket{fd: fd}
}

// Invalid returns a Socket that owns nothing.
func Invalid() *Socket {
	return &Socket{fd: invalidFD}
}

// TypeToOS maps a transport kind to the OS socket type.
func TypeToOS(t Type) (int, error) {
	switch t {
	case UDP:
		return unix.SOCK_DGRAM, nil
	case TCP:
		return unix.SOCK_STREAM, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedTransportKind, int(t))
	}
}

func domainToOS(d Domain) (int, error) {
	switch d {
	case IPv4:
		return unix.AF_INET, nil
	case IPv6:
		return unix.AF_INET6, nil
	default:
		return 0, fmt.Errorf("unknown domain %d", int(d))
	}
}

// Native returns the raw descriptor, e.g. for registering it with an
// I/O scheduler. Ownership is not transferred.
func (s *Socket) Native() int {
	return s.fd
}

// Valid tells whether the Socket currently owns a descriptor.
func (s *Socket) Valid() bool {
	return s.fd != invalidFD
}

// Take moves the descriptor out of s into a new Socket. s is left
// invalid.
func (s *Socket) Take() *Socket {
	fd := s.fd
	s.fd = invalidFD
	return New(fd)
}

// MoveFrom transfers the descriptor of other into s and leaves other
// invalid. A descriptor previously owned by s is closed first. Moving
// a Socket into itself does nothing.
func (s *Socket) MoveFrom(other *Socket) {
	if other == s {
		return
	}
	s.Close()
	s.fd = other.fd
	other.fd = invalidFD
}

// Duplicate returns a new Socket owning a kernel-level duplicate of
// the descriptor. Both Sockets reference the same resource and may be
// closed independently.
func (s *Socket) Duplicate() (*Socket, error) {
	if !s.Valid() {
		return nil, ErrInvalidSocket
	}
	fd, err := dupCloseOnExec(s.fd)
	if err != nil {
		return nil, fmt.Errorf("error duplicating descriptor %d: %w", s.fd, err)
	}
	return New(fd), nil
}

// DuplicateFrom makes s own a duplicate of the descriptor of other.
// The duplicate is created before the previous descriptor of s is
// closed, so on error s is left untouched and s.DuplicateFrom(s) is
// safe.
func (s *Socket) DuplicateFrom(other *Socket) error {
	dup, err := other.Duplicate()
	if err != nil {
		return err
	}
	s.MoveFrom(dup)
	return nil
}

// SetBlocking flips the O_NONBLOCK flag of the descriptor according to
// b, preserving all the other file status flags. It returns false if
// the Socket is invalid or if reading or writing the flags fails.
func (s *Socket) SetBlocking(b Blocking) bool {
	if !s.Valid() {
		return false
	}
	flags, err := unix.FcntlInt(uintptr(s.fd), unix.F_GETFL, 0)
	if err != nil {
		return false
	}
	if b == BlockingYes {
		flags &^= unix.O_NONBLOCK
	} else {
		flags |= unix.O_NONBLOCK
	}
	_, err = unix.FcntlInt(uintptr(s.fd), unix.F_SETFL, flags)
	return err == nil
}

// Mode reads the current I/O mode of the descriptor.
func (s *Socket) Mode() (Blocking, error) {
	if !s.Valid() {
		return BlockingYes, ErrInvalidSocket
	}
	flags, err := unix.FcntlInt(uintptr(s.fd), unix.F_GETFL, 0)
	if err != nil {
		return BlockingYes, fmt.Errorf("error reading file status flags: %w", err)
	}
	if flags&unix.O_NONBLOCK != 0 {
		return BlockingNo, nil
	}
	return BlockingYes, nil
}

// Shutdown disables the given direction(s) of data flow without
// closing the descriptor. It returns false without any OS call if the
// Socket is invalid.
func (s *Socket) Shutdown(how PollOp) bool {
	if !s.Valid() {
		return false
	}
	var h int
	switch how {
	case PollRead:
		h = unix.SHUT_RD
	case PollWrite:
		h = unix.SHUT_WR
	case PollReadWrite:
		h = unix.SHUT_RDWR
	default:
		return false
	}
	return unix.Shutdown(s.fd, h) == nil
}

// Close releases the descriptor. It can be called any number of times.
// The Socket is invalid afterwards even if close(2) reports an error,
// which is returned for information only.
func (s *Socket) Close() error {
	if !s.Valid() {
		return nil
	}
	fd := s.fd
	s.fd = invalidFD
	if err := unix.Close(fd); err != nil {
		logrus.
			WithError(err).
			WithField("fd", fd).
			Warn("error closing socket")
		return fmt.Errorf("error closing descriptor %d: %w", fd, err)
	}
	return nil
}

// LocalAddr returns the local address the descriptor is bound to.
func (s *Socket) LocalAddr() (gopacket.Endpoint, uint16, error) {
	if !s.Valid() {
		return gopacket.Endpoint{}, 0, ErrInvalidSocket
	}
	sa, err := unix.Getsockname(s.fd)
	if err != nil {
		return gopacket.Endpoint{}, 0, fmt.Errorf("error getting socket name: %w", err)
	}
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		return gplayers.NewIPEndpoint(net.IP(sa.Addr[:])), uint16(sa.Port), nil
	case *unix.SockaddrInet6:
		return gplayers.NewIPEndpoint(net.IP(sa.Addr[:])), uint16(sa.Port), nil
	default:
		return gopacket.Endpoint{}, 0, fmt.Errorf("unexpected socket address type %T", sa)
	}
}

// String implements fmt.Stringer.
func (s *Socket) String() string {
	if !s.Valid() {
		return "socket(invalid)"
	}
	return fmt.Sprintf("socket(%d)", s.fd)
}

// dupCloseOnExec and socketCloseOnExec hold syscall.ForkLock like the
// standard library does so that no child process inherits a descriptor
// before it is marked close-on-exec.
func dupCloseOnExec(fd int) (int, error) {
	syscall.ForkLock.RLock()
	defer syscall.ForkLock.RUnlock()
	nfd, err := unix.Dup(fd)
	if err != nil {
		return invalidFD, err
	}
	return setCloseOnExec(nfd)
}

func socketCloseOnExec(domain, typ int) (int, error) {
	syscall.ForkLock.RLock()
	defer syscall.ForkLock.RUnlock()
	fd, err := unix.Socket(domain, typ, 0)
	if err != nil {
		return invalidFD, err
	}
	return setCloseOnExec(fd)
}

func setCloseOnExec(fd int) (int, error) {
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFD, unix.FD_CLOEXEC); err != nil {
		unix.Close(fd)
		return invalidFD, fmt.Errorf("error setting close-on-exec: %w", err)
	}
	return fd, nil
}
