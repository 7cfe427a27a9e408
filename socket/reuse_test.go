package socket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReuseOptionsFor(t *testing.T) {
	t.Parallel()

	for goos, expected := range map[string][]sockOpt{
		"linux":   {optReuseAddr, optReusePort},
		"android": {optReuseAddr, optReusePort},
		"darwin":  {optReusePort},
		"freebsd": {optReusePort},
		"netbsd":  {optReusePort},
		"openbsd": {optReusePort},
	} {
		t.Run(goos, func(t *testing.T) {
			goos, expected := goos, expected // copy for running in parallel
			t.Parallel()

			assert.Equal(t, expected, reuseOptionsFor(goos))
		})
	}
}

func TestMulticastReuseOptionsFor(t *testing.T) {
	assert.Equal(t, []sockOpt{optReuseAddr}, multicastReuseOptionsFor("linux"))
	assert.Equal(t, []sockOpt{optReuseAddr, optReusePort}, multicastReuseOptionsFor("darwin"))
	assert.Equal(t, []sockOpt{optReuseAddr, optReusePort}, multicastReuseOptionsFor("freebsd"))
}

// Every platform must end up tolerating duplicate binds: either both
// flags, or SO_REUSEPORT alone where it implies both.
func TestReuseOptionsAlwaysIncludeReusePort(t *testing.T) {
	for _, goos := range []string{"linux", "darwin", "ios", "freebsd", "netbsd", "openbsd", "dragonfly"} {
		assert.Contains(t, reuseOptionsFor(goos), optReusePort, goos)
	}
}

func TestSockOptString(t *testing.T) {
	assert.Equal(t, "SO_REUSEADDR", optReuseAddr.String())
	assert.Equal(t, "SO_REUSEPORT", optReusePort.String())
	assert.Equal(t, "SO_UNKNOWN", sockOpt(9).String())
}
