package socket

type (
	// sockOpt is a platform independent name for a SOL_SOCKET boolean
	// option. It is mapped to the OS constant only when applied.
	sockOpt int
)

const (
	optReuseAddr sockOpt = iota
	optReusePort
)

func (o sockOpt) String() string {
	switch o {
	case optReuseAddr:
		return "SO_REUSEADDR"
	case optReusePort:
		return "SO_REUSEPORT"
	default:
		return "SO_UNKNOWN"
	}
}

// reuseOptionsFor returns the options that make an accepting socket
// tolerate duplicate binds (fast restart and several processes on the
// same address:port) on the given GOOS. On the BSD family a single
// SO_REUSEPORT already implies both behaviors, Linux needs both flags.
func reuseOptionsFor(goos string) []sockOpt {
	if isBSD(goos) {
		return []sockOpt{optReusePort}
	}
	return []sockOpt{optReuseAddr, optReusePort}
}

// multicastReuseOptionsFor returns the options that let several
// multicast receivers bind the same port on the given GOOS.
func multicastReuseOptionsFor(goos string) []sockOpt {
	if isBSD(goos) {
		return []sockOpt{optReuseAddr, optReusePort}
	}
	return []sockOpt{optReuseAddr}
}

func isBSD(goos string) bool {
	switch goos {
	case "darwin", "ios", "freebsd", "netbsd", "openbsd", "dragonfly":
		return true
	default:
		return false
	}
}
