package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dnswitch/dnswitch/core/config"
)

var statusInterface uint32

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show an interface's current DNS servers",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		engine := resolveEngine(ctx)
		if err := selectByOSIndex(ctx, engine, statusInterface); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		iface, ok := engine.SelectedInterface()
		if !ok {
			fmt.Println("no interface selected")
			os.Exit(1)
		}
		state := engine.CurrentDNSState()
		fmt.Printf("Interface: %s\n", iface.DisplayName())
		fmt.Printf("IPv4:      %s\n", state.Display(config.IPv4))
		fmt.Printf("IPv6:      %s\n", state.Display(config.IPv6))
	},
}

func init() {
	statusCmd.Flags().Uint32Var(&statusInterface, "interface", 0, "OS interface index (default: first discovered)")
	rootCmd.AddCommand(statusCmd)
}
