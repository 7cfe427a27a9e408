//go:build linux

package socket

import "golang.org/x/sys/unix"

// IP_MULTICAST_LOOP takes an int on Linux.
func setIPv4MulticastLoop(fd int, on bool) error {
	v := 0
	if on {
		v = 1
	}
	return unix.SetsockoptInt(fd, unix.IPPROTO_IP, unix.IP_MULTICAST_LOOP, v)
}
