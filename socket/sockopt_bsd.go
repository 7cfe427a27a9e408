//go:build unix && !linux

package socket

import "golang.org/x/sys/unix"

// IP_MULTICAST_LOOP takes an u_char on the BSD family.
func setIPv4MulticastLoop(fd int, on bool) error {
	var v byte
	if on {
		v = 1
	}
	return unix.SetsockoptByte(fd, unix.IPPROTO_IP, unix.IP_MULTICAST_LOOP, v)
}
