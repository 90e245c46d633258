// Package dnswitch configures per-interface DNS: automatic or manual servers,
// named profiles persisted to disk, and DNS-over-HTTPS registration where the
// platform supports it.
package dnswitch

import (
	"github.com/dnswitch/dnswitch/core"
	"github.com/dnswitch/dnswitch/core/config"
	"github.com/dnswitch/dnswitch/core/control"
	"github.com/dnswitch/dnswitch/core/netenum"
	"github.com/dnswitch/dnswitch/interfaces"
	"github.com/dnswitch/dnswitch/pkg/logging"
)

var _ interfaces.Engine = (*core.Engine)(nil)

// NewEngine assembles an engine backed by the on-disk config store at
// configPath (the platform default location when empty), the platform
// interface enumerator and the platform DNS control surface.
func NewEngine(configPath string, logger logging.Logger) (interfaces.Engine, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	store, err := config.NewStore(configPath)
	if err != nil {
		return nil, err
	}
	engine, err := core.NewEngine(store, netenum.New(), control.New(logger), logger)
	if err != nil {
		return nil, err
	}
	return engine, nil
}
