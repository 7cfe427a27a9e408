package pkgnet_test

import (
	"testing"

	pkgnet "github.com/matheuscscp/net-sock/pkg/net"

	gplayers "github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIPEndpoint(t *testing.T) {
	t.Parallel()

	for s, expected := range map[string]struct {
		text     string
		ipv6     bool
		numBytes int
	}{
		"127.0.0.1":        {"127.0.0.1", false, 4},
		"::1":              {"::1", true, 16},
		"::ffff:10.0.0.1":  {"10.0.0.1", false, 4},
		"ff02::1":          {"ff02::1", true, 16},
		"239.255.255.250":  {"239.255.255.250", false, 4},
		"0.0.0.0":          {"0.0.0.0", false, 4},
		"2001:db8::dead:1": {"2001:db8::dead:1", true, 16},
	} {
		t.Run(s, func(t *testing.T) {
			s, expected := s, expected // copy for running in parallel
			t.Parallel()

			ep, err := pkgnet.ParseIPEndpoint(s)
			require.NoError(t, err)
			assert.Equal(t, expected.text, ep.String())
			assert.Len(t, ep.Raw(), expected.numBytes)
			if expected.ipv6 {
				assert.Equal(t, gplayers.EndpointIPv6, ep.EndpointType())
			} else {
				assert.Equal(t, gplayers.EndpointIPv4, ep.EndpointType())
			}
		})
	}
}

func TestParseIPEndpointError(t *testing.T) {
	for _, s := range []string{"", "localhost", "1.2.3", "1.2.3.4:80"} {
		_, err := pkgnet.ParseIPEndpoint(s)
		assert.Error(t, err, s)
	}
}

func TestIsMulticast(t *testing.T) {
	for s, expected := range map[string]bool{
		"224.0.0.1":   true,
		"239.1.2.3":   true,
		"ff02::fb":    true,
		"127.0.0.1":   false,
		"192.168.0.1": false,
		"::1":         false,
	} {
		ep, err := pkgnet.ParseIPEndpoint(s)
		require.NoError(t, err)
		assert.Equal(t, expected, pkgnet.IsMulticast(ep), s)
	}
}

func TestUnspecified(t *testing.T) {
	assert.Equal(t, "0.0.0.0", pkgnet.Unspecified(false).String())
	assert.Equal(t, "::", pkgnet.Unspecified(true).String())
	assert.Equal(t, gplayers.EndpointIPv6, pkgnet.Unspecified(true).EndpointType())
}
