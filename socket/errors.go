package socket

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedTransportKind       = errors.New("unsupported transport kind")
	ErrSocketCreationFailed           = errors.New("failed to create socket")
	ErrNonBlockingConfigurationFailed = errors.New("failed to set socket to non-blocking mode")
	ErrSocketOptionFailed             = errors.New("failed to set socket option")
	ErrBindFailed                     = errors.New("failed to bind")
	ErrListenFailed                   = errors.New("failed to listen")

	// ErrInvalidSocket is returned by operations that need an open
	// handle when the handle is the closed sentinel.
	ErrInvalidSocket = errors.New("invalid socket")

	// ErrIPv6MulticastUnsupported is returned (wrapped in
	// ErrSocketOptionFailed) when asked to join a non-IPv4 group.
	ErrIPv6MulticastUnsupported = errors.New("multicast group is not an ipv4 address")
)

// stageFailure wraps err with the given taxonomy member, records the
// failure in the factory metrics and returns the wrapped error.
func stageFailure(stage error, step string, err error) error {
	factoryFailures.WithLabelValues(stageLabel(stage)).Inc()
	if err == nil {
		return fmt.Errorf("%w: %s", stage, step)
	}
	return fmt.Errorf("%w: %s: %w", stage, step, err)
}

func stageLabel(stage error) string {
	switch stage {
	case ErrUnsupportedTransportKind:
		return "unsupported_transport_kind"
	case ErrSocketCreationFailed:
		return "socket_creation"
	case ErrNonBlockingConfigurationFailed:
		return "non_blocking_configuration"
	case ErrSocketOptionFailed:
		return "socket_option"
	case ErrBindFailed:
		return "bind"
	case ErrListenFailed:
		return "listen"
	default:
		return "unknown"
	}
}
