//go:build linux

package control

import (
	"net/netip"
	"testing"

	"github.com/dnswitch/dnswitch/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestParseLinkDNS(t *testing.T) {
	value := [][]interface{}{
		{int32(unix.AF_INET), []byte{8, 8, 8, 8}},
		{int32(unix.AF_INET6), []byte{0x20, 0x01, 0x48, 0x60, 0x48, 0x60, 0, 0, 0, 0, 0, 0, 0, 0, 0x88, 0x88}},
	}

	state, err := parseLinkDNS(value)
	require.NoError(t, err)
	assert.Equal(t, []string{"8.8.8.8"}, state.IPv4)
	assert.Equal(t, []string{"2001:4860:4860::8888"}, state.IPv6)
}

func TestParseLinkDNSEmptyAndMalformed(t *testing.T) {
	state, err := parseLinkDNS([][]interface{}{})
	require.NoError(t, err)
	assert.Empty(t, state.IPv4)
	assert.Empty(t, state.IPv6)

	// Truncated pairs and bad byte lengths are skipped, not fatal
	state, err = parseLinkDNS([][]interface{}{
		{int32(unix.AF_INET)},
		{int32(unix.AF_INET), []byte{1, 2, 3}},
		{int32(unix.AF_INET), []byte{9, 9, 9, 9}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"9.9.9.9"}, state.IPv4)

	_, err = parseLinkDNS("not a dns property")
	require.Error(t, err)
}

func TestFamilyUnionOrder(t *testing.T) {
	families := map[config.AddressFamily][]netip.Addr{
		config.IPv6: {netip.MustParseAddr("2606:4700:4700::1111")},
		config.IPv4: {netip.MustParseAddr("1.1.1.1"), netip.MustParseAddr("1.0.0.1")},
	}

	union := familyUnion(families)
	require.Len(t, union, 3)
	assert.Equal(t, "1.1.1.1", union[0].String(), "IPv4 servers come first")
	assert.Equal(t, "2606:4700:4700::1111", union[2].String())

	assert.Nil(t, familyUnion(nil))
}

func TestDNSInputs(t *testing.T) {
	inputs := dnsInputs([]netip.Addr{
		netip.MustParseAddr("8.8.8.8"),
		netip.MustParseAddr("2001:4860:4860::8888"),
	})
	require.Len(t, inputs, 2)

	assert.Equal(t, int32(unix.AF_INET), inputs[0].Family)
	assert.Len(t, inputs[0].Address, 4)
	assert.Equal(t, int32(unix.AF_INET6), inputs[1].Family)
	assert.Len(t, inputs[1].Address, 16)
}
