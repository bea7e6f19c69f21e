package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/texforge/texpack/internal/autofix"
	"github.com/texforge/texpack/internal/grouping"
	"github.com/texforge/texpack/internal/ui"
)

var (
	renameDryRun bool
	renameYes    bool
)

// renameOutcome is the --json shape of a rename run.
type renameOutcome struct {
	Folder  string                 `json:"folder"`
	Planned []autofix.RenameAction `json:"planned"`
	Applied []autofix.RenameAction `json:"applied"`
	Errors  []string               `json:"errors"`
}

var renameCmd = &cobra.Command{
	Use:     "rename <folder>",
	GroupID: GroupTools,
	Short:   "Rename textures to canonical Asset_MapType names",
	Long: `Plan and apply canonical renames for every parsed texture in a folder.

The canonical name is Asset_MapType with the file's original extension:
alias spellings (albedo, nrm, rgh, ...) and _v### version suffixes are
dropped. Files already named canonically are skipped; unparsable files are
never touched.

Renames never overwrite an existing file. When the canonical name is taken,
the new name gets a _fixed1, _fixed2, ... suffix instead, and the check is
repeated against the live filesystem right before each rename.

The plan prints first; applying it needs confirmation unless --yes is given.
--dry-run stops after the plan.

Examples:
  texpack rename ./exports --dry-run   # Show what would be renamed
  texpack rename ./exports             # Confirm interactively, then rename
  texpack rename ./exports --yes       # Rename without asking`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		folder := mustResolveFolder(args[0])

		files, err := scanner.Discover(folder)
		if err != nil {
			FatalError("%v", err)
		}
		groups, unparsed := grouping.BuildGroups(files, folder, grammar)

		var actions []autofix.RenameAction
		for _, name := range grouping.SortedNames(groups) {
			actions = append(actions, autofix.PlanRenames(groups[name])...)
		}

		if jsonOutput {
			runRenameJSON(folder, actions)
			return
		}

		printRenamePlan(folder, actions, len(files), len(unparsed))
		if len(actions) == 0 || renameDryRun {
			return
		}

		if !confirmRename(len(actions)) {
			fmt.Println("Rename cancelled.")
			return
		}

		applied, errs := autofix.ApplyRenames(actions)
		printRenameResults(applied, errs)
		if len(errs) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	renameCmd.Flags().BoolVar(&renameDryRun, "dry-run", false, "Show the rename plan without applying it")
	renameCmd.Flags().BoolVarP(&renameYes, "yes", "y", false, "Apply renames without asking for confirmation")
	rootCmd.AddCommand(renameCmd)
}

// runRenameJSON handles --json mode: no interactive form, so applying needs
// an explicit --yes. Without one the outcome carries the plan only.
func runRenameJSON(folder string, actions []autofix.RenameAction) {
	outcome := renameOutcome{
		Folder:  folder,
		Planned: actions,
		Applied: []autofix.RenameAction{},
		Errors:  []string{},
	}
	if outcome.Planned == nil {
		outcome.Planned = []autofix.RenameAction{}
	}

	if renameDryRun || len(actions) == 0 {
		outputJSON(outcome)
		return
	}
	if !renameYes {
		FatalErrorWithHint("rename --json needs --yes or --dry-run",
			"there is no interactive confirmation in JSON mode")
	}

	applied, errs := autofix.ApplyRenames(actions)
	if applied != nil {
		outcome.Applied = applied
	}
	if errs != nil {
		outcome.Errors = errs
	}
	outputJSON(outcome)
	if len(errs) > 0 {
		os.Exit(1)
	}
}

func printRenamePlan(folder string, actions []autofix.RenameAction, total, unparsable int) {
	fmt.Println()
	fmt.Printf("%s %s\n", ui.RenderCategory("Rename plan"), ui.RenderMuted(folder))
	fmt.Println()

	if len(actions) == 0 {
		fmt.Printf("  %s\n", ui.RenderMuted("nothing to rename - all parsed textures are named canonically"))
	}
	for _, a := range actions {
		line := fmt.Sprintf("  %s -> %s", filepath.Base(a.Src), filepath.Base(a.Dst))
		if a.Note != "rename" {
			line += "  " + ui.RenderWarn("("+a.Note+")")
		}
		fmt.Println(line)
	}

	fmt.Println()
	skipped := total - unparsable - len(actions)
	fmt.Printf("%d to rename, %d already canonical, %d unparsable (untouched)\n",
		len(actions), skipped, unparsable)
}

// confirmRename asks before mutating the filesystem. Non-interactive runs
// must pass --yes so scripts cannot hang on a hidden prompt.
func confirmRename(count int) bool {
	if renameYes {
		return true
	}
	if !ui.IsTerminal() {
		FatalErrorWithHint("confirmation required to rename files",
			"re-run with --yes to apply renames non-interactively")
	}

	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Apply %d rename(s)?", count)).
			Description("Files stay in their folders. Existing files are never overwritten.").
			Affirmative("Rename").
			Negative("Cancel").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			fmt.Fprintln(os.Stderr, "Rename cancelled.")
			os.Exit(0)
		}
		FatalError("confirmation form: %v", err)
	}
	return confirmed
}

func printRenameResults(applied []autofix.RenameAction, errs []string) {
	fmt.Println()
	for _, a := range applied {
		fmt.Printf("  %s %s -> %s\n", ui.RenderPassIcon(), filepath.Base(a.Src), filepath.Base(a.Dst))
	}
	for _, e := range errs {
		fmt.Printf("  %s %s\n", ui.RenderFailIcon(), e)
	}
	fmt.Println()
	fmt.Printf("%d renamed, %d failed\n", len(applied), len(errs))
}
