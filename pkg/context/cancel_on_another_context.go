package pkgcontext

import "context"

// WithCancelOnAnotherContext returns a context derived from parent that
// is also cancelled when other is done. The go routine started here
// lives until either the returned context or other is done, so callers
// must always call the returned cancel func.
func WithCancelOnAnotherContext(parent, other context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-ctx.Done():
		case <-other.Done():
			cancel()
		}
	}()
	return ctx, cancel
}
