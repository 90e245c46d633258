package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dnswitch/dnswitch"
	"github.com/dnswitch/dnswitch/core/config"
	"github.com/dnswitch/dnswitch/interfaces"
	"github.com/dnswitch/dnswitch/pkg/logging"
)

var (
	logLevel   string
	logFormat  string
	logFile    string
	configPath string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dnswitch",
	Short: "Per-interface DNS configuration switcher",
	Long: "dnswitch configures DNS per network interface: automatic (DHCP) or manual\n" +
		"servers, reusable named profiles, and DNS-over-HTTPS registration.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if logFile != "" {
			logging.InitLogger(logLevel, logFormat, logging.NewFileSyncer(logFile))
			return
		}
		logging.InitLogger(logLevel, logFormat, nil)
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this rotated file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the profile config file (platform default when empty)")
}

// resolveEngine builds and initializes an engine, or exits with an error.
func resolveEngine(ctx context.Context) interfaces.Engine {
	engine, err := dnswitch.NewEngine(configPath, logging.GetLogger())
	if err != nil {
		fmt.Printf("unable to initialize engine: %s\n", err.Error())
		os.Exit(1)
	}
	if err := engine.Initialize(ctx); err != nil {
		fmt.Printf("unable to initialize engine: %s\n", err.Error())
		os.Exit(1)
	}
	return engine
}

// selectByOSIndex selects the interface whose OS index matches. Zero keeps
// the default selection, the first discovered interface.
func selectByOSIndex(ctx context.Context, engine interfaces.Engine, osIndex uint32) error {
	if osIndex == 0 {
		return nil
	}
	for i, iface := range engine.Interfaces() {
		if iface.InterfaceIndex == osIndex {
			return engine.SelectInterface(ctx, i)
		}
	}
	return fmt.Errorf("no interface with index %d", osIndex)
}

// findProfile matches a stored profile by exact id or case-insensitive name.
func findProfile(engine interfaces.Engine, key string) (config.DNSProfile, bool) {
	for _, profile := range engine.Profiles() {
		if profile.ID == key || strings.EqualFold(profile.Name, key) {
			return profile, true
		}
	}
	return config.DNSProfile{}, false
}

// profileNameTaken reports whether another profile already uses name.
func profileNameTaken(engine interfaces.Engine, name, excludeID string) bool {
	for _, profile := range engine.Profiles() {
		if profile.ID != excludeID && strings.EqualFold(profile.Name, name) {
			return true
		}
	}
	return false
}

// reportOutcome prints the engine's status message and exits non-zero when
// the operation failed.
func reportOutcome(engine interfaces.Engine, err error) {
	if msg, ok := engine.Message(); ok {
		fmt.Println(msg.Text)
	}
	if err != nil {
		os.Exit(1)
	}
}
