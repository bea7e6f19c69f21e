package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/texforge/texpack/internal/debug"
	"github.com/texforge/texpack/internal/profile"
	"github.com/texforge/texpack/internal/ui"
)

var profilesCmd = &cobra.Command{
	Use:     "profiles",
	GroupID: GroupValidate,
	Short:   "List validation profiles and their rules",
	Long: `List the available validation profiles.

Built-in profiles target Unreal (packed ORM required), Unity (separate
AO/Roughness/Metallic allowed) and VFX (like Unity, plus EXR accepted).
Custom profiles from a tables.yaml overlay are listed after the built-ins.

The active profile (--profile flag, then config, then the default) is
marked. Use --verbose to print each profile's full rule summary.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOutput {
			outputJSON(struct {
				Active   string            `json:"active"`
				Profiles []profile.Profile `json:"profiles"`
			}{Active: activeProfile.Name, Profiles: knownProfiles})
			return
		}

		fmt.Println()
		fmt.Println(ui.RenderCategory("Profiles"))
		for _, p := range knownProfiles {
			marker := "  "
			name := p.Name
			if strings.EqualFold(p.Name, activeProfile.Name) {
				marker = ui.RenderAccent("* ")
				name = ui.RenderAccent(p.Name)
			}
			fmt.Printf("  %s%-8s %s\n", marker, name, ui.RenderMuted(profileFlagsLine(p)))
		}
		fmt.Println()
		fmt.Printf("%s\n", ui.RenderMuted("* active profile (override with --profile)"))

		if debug.Enabled() {
			for _, p := range knownProfiles {
				fmt.Println()
				fmt.Println(p.Summary())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

// profileFlagsLine renders a profile's flags as a short phrase.
func profileFlagsLine(p profile.Profile) string {
	var parts []string
	if p.RequireORM {
		parts = append(parts, "packed ORM required")
	} else {
		parts = append(parts, "ORM or separate AO/Roughness/Metallic")
	}
	if !p.AllowSeparateRMA {
		parts = append(parts, "separate maps discouraged")
	}
	if p.AllowEXR {
		parts = append(parts, "EXR allowed")
	}
	return strings.Join(parts, ", ")
}
