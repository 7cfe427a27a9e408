package pkgcontext

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// WithCancelOnInterrupt returns a context derived from parent that is
// cancelled upon SIGINT or SIGTERM.
func WithCancelOnInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			logrus.WithField("signal", sig.String()).Info("signal received, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
