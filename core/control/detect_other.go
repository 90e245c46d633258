//go:build !windows && !linux

package control

import (
	"context"
	"fmt"

	"github.com/dnswitch/dnswitch/core/config"
	"github.com/dnswitch/dnswitch/pkg/logging"
)

// New returns the DNS control surface for this platform.
func New(_ logging.Logger) Surface {
	return unsupportedSurface{}
}

// unsupportedSurface fails every operation; reads and profile management
// still work on platforms without a control backend.
type unsupportedSurface struct{}

func errUnsupported() error {
	return fmt.Errorf("DNS configuration is not supported on this platform")
}

func (unsupportedSurface) SetAutomatic(context.Context, uint32, config.AddressFamily) error {
	return errUnsupported()
}

func (unsupportedSurface) SetManual(context.Context, uint32, config.AddressFamily, []string) error {
	return errUnsupported()
}

func (unsupportedSurface) RegisterDoH(context.Context, string, string, bool) error {
	return errUnsupported()
}

func (unsupportedSurface) EnableDoHRegistry(context.Context, string) error {
	return errUnsupported()
}

func (unsupportedSurface) ClearCache(context.Context) error {
	return errUnsupported()
}

func (unsupportedSurface) GetCurrent(context.Context, uint32) (ServerState, error) {
	return ServerState{}, errUnsupported()
}
