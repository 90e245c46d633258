package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dnswitch/dnswitch/core/probe"
)

var (
	probeServer   string
	probeTemplate string
	probeDomain   string
	probeTimeout  time.Duration
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that a DNS server or DoH template resolves",
	Long: "Probe sends a test query to a plain-DNS server address or a DoH template\n" +
		"so a configuration can be verified before it is saved or applied.",
	Run: func(cmd *cobra.Command, _ []string) {
		if probeServer == "" && probeTemplate == "" {
			fmt.Println("either --server or --template is required")
			os.Exit(1)
		}

		ctx := cmd.Context()
		if probeTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, probeTimeout)
			defer cancel()
		}

		failed := false
		if probeServer != "" {
			result, err := probe.Server(ctx, probeServer, probeDomain)
			failed = reportProbe("server "+probeServer, result, err) || failed
		}
		if probeTemplate != "" {
			result, err := probe.Template(ctx, probeTemplate, probeDomain)
			failed = reportProbe("template "+probeTemplate, result, err) || failed
		}
		if failed {
			os.Exit(1)
		}
	},
}

// reportProbe prints one probe outcome and reports whether it failed.
func reportProbe(target string, result probe.Result, err error) bool {
	if err != nil {
		fmt.Printf("%s: FAIL: %s\n", target, err.Error())
		return true
	}
	answers := strings.Join(result.Answers, ", ")
	if answers == "" {
		answers = "no answers"
	}
	fmt.Printf("%s: OK in %s (%s)\n", target, result.RTT, answers)
	return false
}

func init() {
	probeCmd.Flags().StringVar(&probeServer, "server", "", "plain-DNS server address to query")
	probeCmd.Flags().StringVar(&probeTemplate, "template", "", "DoH template URL to query")
	probeCmd.Flags().StringVar(&probeDomain, "domain", probe.DefaultDomain, "domain to resolve")
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 10*time.Second, "overall probe timeout")
	rootCmd.AddCommand(probeCmd)
}
