//go:build windows

package control

import "github.com/dnswitch/dnswitch/pkg/logging"

// New returns the DNS control surface for this platform.
func New(logger logging.Logger) Surface {
	return NewPowerShellSurface(logger)
}
