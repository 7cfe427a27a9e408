//go:build unix

package hostnetwork

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgcontext "github.com/matheuscscp/net-sock/pkg/context"
	"github.com/matheuscscp/net-sock/socket"
	"github.com/matheuscscp/net-sock/udp"

	"golang.org/x/sys/unix"
)

type (
	// Poller is an implementation of udp.IOScheduler backed by poll(2)
	// on the host. Each call blocks the calling go routine, in slices of
	// pollSlice so that cancellation is noticed.
	Poller struct {
		ctx       context.Context
		cancelCtx context.CancelFunc
	}
)

const pollSlice = 50 * time.Millisecond

var (
	ErrPollerClosed      = errors.New("poller closed")
	ErrInvalidDescriptor = errors.New("invalid descriptor")

	_ udp.IOScheduler = (*Poller)(nil)
)

// NewPoller returns a Poller. Use Close() to release blocked callers.
func NewPoller() *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		ctx:       ctx,
		cancelCtx: cancel,
	}
}

// Poll blocks until fd is ready for op, ctx is done or the Poller is
// closed.
func (p *Poller) Poll(ctx context.Context, fd int, op socket.PollOp) error {
	if p.ctx.Err() != nil {
		return ErrPollerClosed
	}
	events, err := pollEvents(op)
	if err != nil {
		return err
	}

	ctx, cancel := pkgcontext.WithCancelOnAnotherContext(ctx, p.ctx)
	defer cancel()

	fds := []unix.PollFd{{Fd: int32(fd), Events: events}}
	for {
		if ctx.Err() != nil {
			if p.ctx.Err() != nil {
				return ErrPollerClosed
			}
			return ctx.Err()
		}
		fds[0].Revents = 0
		n, err := unix.Poll(fds, int(pollSlice/time.Millisecond))
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return fmt.Errorf("error polling descriptor %d: %w", fd, err)
		}
		if n == 0 {
			continue
		}
		if fds[0].Revents&unix.POLLNVAL != 0 {
			return fmt.Errorf("%w: %d", ErrInvalidDescriptor, fd)
		}
		// POLLERR and POLLHUP also count as ready: the next I/O call
		// reports the condition
		return nil
	}
}

// Close releases all blocked callers with ErrPollerClosed. It is safe
// to call concurrently and more than once.
func (p *Poller) Close() error {
	p.cancelCtx()
	return nil
}

func pollEvents(op socket.PollOp) (int16, error) {
	switch op {
	case socket.PollRead:
		return unix.POLLIN, nil
	case socket.PollWrite:
		return unix.POLLOUT, nil
	case socket.PollReadWrite:
		return unix.POLLIN | unix.POLLOUT, nil
	default:
		return 0, fmt.Errorf("unknown poll op %s", op)
	}
}
