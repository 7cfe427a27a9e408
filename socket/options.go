package socket

import (
	"fmt"
	"strings"
)

type (
	// Domain is the address family of a socket.
	Domain int

	// Type is the transport kind of a socket.
	Type int

	// Blocking is the I/O mode of a socket.
	Blocking int

	// PollOp names the data directions of a socket. It is used both
	// for readiness polling and for Shutdown().
	PollOp int

	// Options is the configuration bundle consumed by the factory
	// functions.
	Options struct {
		Domain   Domain   `yaml:"domain"`
		Type     Type     `yaml:"type"`
		Blocking Blocking `yaml:"blocking"`
	}
)

const (
	IPv4 Domain = iota
	IPv6
)

const (
	TCP Type = iota
	UDP
)

const (
	BlockingYes Blocking = iota
	BlockingNo
)

const (
	PollRead PollOp = iota
	PollWrite
	PollReadWrite
)

func (d Domain) String() string {
	switch d {
	case IPv4:
		return "ipv4"
	case IPv6:
		return "ipv6"
	default:
		return fmt.Sprintf("domain(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Domain) MarshalText() ([]byte, error) {
	if d != IPv4 && d != IPv6 {
		return nil, fmt.Errorf("unknown domain %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Domain) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "ipv4", "inet", "4":
		*d = IPv4
	case "ipv6", "inet6", "6":
		*d = IPv6
	default:
		return fmt.Errorf("unknown domain '%s'", string(b))
	}
	return nil
}

func (t Type) String() string {
	switch t {
	case TCP:
		return "tcp"
	case UDP:
		return "udp"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if t != TCP && t != UDP {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedTransportKind, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "tcp":
		*t = TCP
	case "udp":
		*t = UDP
	default:
		return fmt.Errorf("%w: '%s'", ErrUnsupportedTransportKind, string(b))
	}
	return nil
}

func (b Blocking) String() string {
	if b == BlockingNo {
		return "non-blocking"
	}
	return "blocking"
}

// MarshalText implements encoding.TextMarshaler.
func (b Blocking) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Blocking) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "blocking", "yes", "true":
		*b = BlockingYes
	case "non-blocking", "nonblocking", "no", "false":
		*b = BlockingNo
	default:
		return fmt.Errorf("unknown blocking mode '%s'", string(text))
	}
	return nil
}

func (p PollOp) String() string {
	switch p {
	case PollRead:
		return "read"
	case PollWrite:
		return "write"
	case PollReadWrite:
		return "read_write"
	default:
		return fmt.Sprintf("poll_op(%d)", int(p))
	}
}
