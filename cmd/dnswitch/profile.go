package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dnswitch/dnswitch/core/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage stored DNS profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	Run: func(cmd *cobra.Command, _ []string) {
		engine := resolveEngine(cmd.Context())

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
		fmt.Fprintln(w, "ID\tNAME\tIPV4\tIPV6")
		fmt.Fprintln(w, "--\t----\t----\t----")
		for _, profile := range engine.Profiles() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				profile.ID, profile.Name,
				summarizeEntry(profile.Settings.IPv4),
				summarizeEntry(profile.Settings.IPv6))
		}
		w.Flush()
	},
}

var profileCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a profile, optionally with a name",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := resolveEngine(cmd.Context())

		if len(args) == 1 && profileNameTaken(engine, args[0], "") {
			fmt.Println("A profile with this name already exists")
			os.Exit(1)
		}
		id := engine.CreateProfile()
		if len(args) == 1 {
			engine.SetProfileName(args[0])
			engine.UpdateCurrentProfile()
		}
		if err := engine.SaveOnly(); err != nil {
			reportOutcome(engine, err)
		}
		fmt.Printf("created profile '%s' (%s)\n", engine.ProfileName(), id)
	},
}

var profileRenameCmd = &cobra.Command{
	Use:   "rename <profile> <new-name>",
	Short: "Rename a profile",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		engine := resolveEngine(cmd.Context())

		profile, ok := findProfile(engine, args[0])
		if !ok {
			fmt.Printf("no profile named '%s'\n", args[0])
			os.Exit(1)
		}
		if profileNameTaken(engine, args[1], profile.ID) {
			fmt.Println("A profile with this name already exists")
			os.Exit(1)
		}
		engine.SelectProfile(profile.ID)
		engine.SetProfileName(args[1])
		engine.UpdateCurrentProfile()
		reportOutcome(engine, engine.SaveOnly())
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <profile>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := resolveEngine(cmd.Context())

		profile, ok := findProfile(engine, args[0])
		if !ok {
			fmt.Printf("no profile named '%s'\n", args[0])
			os.Exit(1)
		}
		engine.SelectProfile(profile.ID)
		engine.DeleteCurrentProfile()
		reportOutcome(engine, engine.SaveOnly())
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <profile>",
	Short: "Print a profile as YAML",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := resolveEngine(cmd.Context())

		profile, ok := findProfile(engine, args[0])
		if !ok {
			fmt.Printf("no profile named '%s'\n", args[0])
			os.Exit(1)
		}
		out, err := yaml.Marshal(profile)
		if err != nil {
			fmt.Printf("failed to render profile: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Print(string(out))
	},
}

// summarizeEntry renders one family's servers for the profile table.
func summarizeEntry(entry config.DNSEntry) string {
	if !entry.Enabled {
		return "off"
	}
	addresses := entry.Addresses()
	if len(addresses) == 0 {
		return "off"
	}
	return strings.Join(addresses, ", ")
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileRenameCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}
