package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/texforge/texpack/internal/debug"
	"github.com/texforge/texpack/internal/report"
	"github.com/texforge/texpack/internal/scan"
	"github.com/texforge/texpack/internal/ui"
)

var (
	batchFix        bool
	batchReportJSON bool
)

var batchCmd = &cobra.Command{
	Use:     "batch <folder>...",
	GroupID: GroupValidate,
	Short:   "Validate several export folders in sequence",
	Long: `Scan each listed folder independently with the same profile.

Folders are processed one at a time; a missing or unreadable folder is
reported in its own line and never stops the rest of the batch. With --fix,
misnamed files in each folder are renamed to canonical form before that
folder's reported scan.

The batch report (--report-json) lands in the reports directory under the
first listed folder.

Exits 1 when any folder was missing, failed to scan, or had ERROR-level
findings.

Examples:
  texpack batch ./crates ./props ./terrain
  texpack batch ./exports/* --profile vfx --report-json`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		folders := make([]string, len(args))
		for i, arg := range args {
			folder, err := filepath.Abs(arg)
			if err != nil {
				FatalError("resolve folder %s: %v", arg, err)
			}
			folders[i] = folder
		}

		entries, err := scanner.ScanBatch(rootCtx, folders, activeProfile, batchFix)
		if err != nil {
			FatalError("%v", err)
		}

		rep := report.BuildBatch(Version, activeProfile.Name, entries)

		if jsonOutput {
			outputJSON(rep)
		} else {
			printBatch(entries)
		}

		if batchReportJSON {
			writeBatchReport(folders[0], rep)
		}

		if batchFailed(entries) {
			os.Exit(1)
		}
	},
}

func init() {
	batchCmd.Flags().BoolVar(&batchFix, "fix", false, "Rename misnamed files in each folder before validating")
	batchCmd.Flags().BoolVar(&batchReportJSON, "report-json", false, "Write a JSON batch report under the first folder")
	rootCmd.AddCommand(batchCmd)
}

func printBatch(entries []scan.BatchEntry) {
	if !debug.IsQuiet() {
		fmt.Println()
		fmt.Printf("%s %s\n", ui.RenderCategory("Batch"), ui.RenderMuted(activeProfile.Name))
		fmt.Println()
	}

	for _, e := range entries {
		switch e.Status {
		case scan.BatchMissing:
			fmt.Printf("  %s %s  %s\n", ui.RenderFailIcon(), e.Folder, ui.RenderFail("MISSING"))
			continue
		case scan.BatchError:
			fmt.Printf("  %s %s  %s\n", ui.RenderFailIcon(), e.Folder, ui.RenderFail(e.Error))
			continue
		}

		icon := ui.RenderPassIcon()
		switch {
		case e.Errors > 0:
			icon = ui.RenderFailIcon()
		case e.Warnings > 0:
			icon = ui.RenderWarnIcon()
		}

		line := fmt.Sprintf("Assets:%d  Tex:%d  Issues:%d  E:%d W:%d",
			e.AssetsFound, e.TexturesScanned, e.NamingIssues, e.Errors, e.Warnings)
		if batchFix && e.RenamesApplied != nil {
			line += fmt.Sprintf("  Renamed:%d ErrRen:%d", *e.RenamesApplied, *e.RenameErrors)
		}
		fmt.Printf("  %s %s  %s\n", icon, e.Folder, ui.RenderMuted(line))
	}

	t := scan.Totals(entries)
	fmt.Println()
	fmt.Println(ui.RenderSeparator())
	fmt.Printf("%d folders  %d assets  %d textures  %d naming issues\n",
		t.Folders, t.Assets, t.Textures, t.NamingIssues)
	fmt.Printf("%s %d errors  %s %d warnings\n",
		ui.RenderFailIcon(), t.Errors,
		ui.RenderWarnIcon(), t.Warnings)
}

func writeBatchReport(folder string, rep report.BatchReport) {
	dir, err := report.EnsureReportsDir(folder, settings.ReportDir)
	if err != nil {
		WarnError("%v", err)
		return
	}
	path := filepath.Join(dir, "batch_report.json")
	if err := report.WriteJSON(rep, path); err != nil {
		WarnError("%v", err)
		return
	}
	debug.PrintNormal("Saved: %s\n", path)
}

func batchFailed(entries []scan.BatchEntry) bool {
	for _, e := range entries {
		if e.Status != scan.BatchOK || e.Errors > 0 {
			return true
		}
	}
	return false
}
