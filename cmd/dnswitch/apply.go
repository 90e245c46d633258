package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dnswitch/dnswitch/core/config"
)

var (
	applyInterface uint32
	applyProfile   string
	applyAutomatic bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply DNS settings to an interface",
	Long: "Apply switches the interface to a stored profile's manual DNS servers,\n" +
		"or back to automatic (DHCP) assignment with --automatic.",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		engine := resolveEngine(ctx)
		if err := selectByOSIndex(ctx, engine, applyInterface); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if applyAutomatic {
			engine.ChangeMode(config.ModeAutomatic)
		} else {
			if applyProfile == "" {
				fmt.Println("either --automatic or --profile is required")
				os.Exit(1)
			}
			profile, ok := findProfile(engine, applyProfile)
			if !ok {
				fmt.Printf("no profile named '%s'\n", applyProfile)
				os.Exit(1)
			}
			engine.ChangeMode(config.ModeManual)
			engine.SelectProfile(profile.ID)
		}

		result := engine.Apply(ctx)
		reportOutcome(engine, result.Err)
	},
}

func init() {
	applyCmd.Flags().Uint32Var(&applyInterface, "interface", 0, "OS interface index (default: first discovered)")
	applyCmd.Flags().StringVar(&applyProfile, "profile", "", "profile id or name to apply")
	applyCmd.Flags().BoolVar(&applyAutomatic, "automatic", false, "revert the interface to automatic (DHCP) DNS")
	rootCmd.AddCommand(applyCmd)
}
