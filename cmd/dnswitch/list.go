package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configurable network interfaces",
	Run: func(cmd *cobra.Command, _ []string) {
		engine := resolveEngine(cmd.Context())

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
		fmt.Fprintln(w, "INDEX\tNAME\tIPV4\tIPV6\tGUID")
		fmt.Fprintln(w, "-----\t----\t----\t----\t----")
		for _, iface := range engine.Interfaces() {
			fmt.Fprintf(w, "%d\t%s\t%v\t%v\t%s\n",
				iface.InterfaceIndex, iface.Name, iface.HasIPv4, iface.HasIPv6, iface.InterfaceGUID)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
