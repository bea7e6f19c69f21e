package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/texforge/texpack/internal/debug"
	"github.com/texforge/texpack/internal/report"
	"github.com/texforge/texpack/internal/scan"
	"github.com/texforge/texpack/internal/texture"
	"github.com/texforge/texpack/internal/ui"
)

var (
	scanFix        bool
	scanReportJSON bool
	scanReportHTML bool
	scanSummaryMD  bool
)

var scanCmd = &cobra.Command{
	Use:     "scan <folder>",
	GroupID: GroupValidate,
	Short:   "Validate one texture export folder",
	Long: `Validate every texture in a folder against the active profile.

Files group into assets by filename (Asset_MapType, optional _v### suffix).
Each asset is checked for required maps, then each readable image for
resolution, extension and channel anomalies, then each ORM texture for
packing mistakes (flat or identical channels).

With --fix, misnamed files are renamed to canonical Asset_MapType form
before the reported scan. Renames never overwrite existing files; collisions
get a _fixedN suffix.

Exits 1 when any ERROR-level finding remains.

Examples:
  texpack scan ./exports                    # Validate with default profile
  texpack scan ./exports --profile unity    # Validate for Unity conventions
  texpack scan ./exports --fix              # Rename to canonical form first
  texpack scan ./exports --report-json      # Also write reports/report.json
  texpack scan ./exports --json             # Full report on stdout`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		folder := mustResolveFolder(args[0])

		result, fixLog, err := scanner.ScanAndFix(rootCtx, folder, activeProfile, scanFix)
		if err != nil {
			FatalError("%v", err)
		}

		rep := report.Build(Version, activeProfile.Name, result, fixLog)

		if jsonOutput {
			outputJSON(rep)
		} else {
			printScan(result, rep)
		}

		writeScanReports(folder, rep)

		if scanSummaryMD && !jsonOutput {
			fmt.Print(ui.RenderMarkdown(report.Markdown(rep)))
		}

		if result.Summary.Errors > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanFix, "fix", false, "Rename misnamed files to canonical form before validating")
	scanCmd.Flags().BoolVar(&scanReportJSON, "report-json", false, "Write a JSON report into the reports directory")
	scanCmd.Flags().BoolVar(&scanReportHTML, "report-html", false, "Write an HTML report into the reports directory")
	scanCmd.Flags().BoolVar(&scanSummaryMD, "summary-md", false, "Print a markdown summary after the results")
	rootCmd.AddCommand(scanCmd)
}

// mustResolveFolder turns a CLI folder argument into an absolute path and
// verifies it is a directory. Anything else is fatal.
func mustResolveFolder(arg string) string {
	folder, err := filepath.Abs(arg)
	if err != nil {
		FatalError("resolve folder %s: %v", arg, err)
	}
	info, err := os.Stat(folder)
	if os.IsNotExist(err) {
		FatalErrorWithHint(
			fmt.Sprintf("folder not found: %s", folder),
			"run 'texpack demo <dir>' to create sample export folders to try")
	}
	if err != nil {
		FatalError("access folder %s: %v", folder, err)
	}
	if !info.IsDir() {
		FatalError("not a folder: %s", folder)
	}
	return folder
}

func printScan(result *scan.FolderScan, rep report.Report) {
	s := result.Summary

	if !debug.IsQuiet() {
		fmt.Println()
		fmt.Printf("%s %s\n", ui.RenderCategory("Scan"), ui.RenderMuted(s.Folder))
		fmt.Printf("Profile: %s\n", ui.RenderAccent(rep.Profile))
		fmt.Println()
	}

	printAssets(rep.Assets)
	printNamingIssues(rep.NamingIssues)

	if scanFix && !debug.IsQuiet() {
		fmt.Println(ui.RenderCategory("Auto-fix log"))
		for _, line := range rep.AutofixLog {
			fmt.Printf("  %s\n", line)
		}
		fmt.Println()
	}

	fmt.Println(ui.RenderSeparator())
	fmt.Printf("%d assets  %d textures  %d naming issues\n",
		s.AssetsFound, s.TexturesScanned, s.NamingIssues)
	fmt.Printf("%s %d errors  %s %d warnings  %s %d infos\n",
		ui.RenderFailIcon(), s.Errors,
		ui.RenderWarnIcon(), s.Warnings,
		ui.RenderInfoIcon(), s.Infos)
}

// printAssets lists each asset with its parsed maps and findings. In quiet
// mode only assets with errors appear, and only their error lines.
func printAssets(assets []report.Asset) {
	quiet := debug.IsQuiet()

	if !quiet {
		fmt.Println(ui.RenderCategory("Assets"))
		if len(assets) == 0 {
			fmt.Printf("  %s\n", ui.RenderMuted("none found"))
		}
	}

	for _, a := range assets {
		errs, warns, _ := texture.CountLevels(a.Results)
		if quiet && errs == 0 {
			continue
		}

		icon := ui.RenderPassIcon()
		switch {
		case errs > 0:
			icon = ui.RenderFailIcon()
		case warns > 0:
			icon = ui.RenderWarnIcon()
		}

		maps := "no parsed maps"
		if len(a.Maps) > 0 {
			maps = strings.Join(a.Maps, ", ")
		}
		fmt.Printf("  %s %s  %s\n", icon, a.Name,
			ui.RenderMuted(fmt.Sprintf("[%s]  (E:%d W:%d)", maps, errs, warns)))

		for _, r := range a.Results {
			if quiet && r.Level != texture.LevelError {
				continue
			}
			fmt.Println(ui.RenderResult(r))
		}
	}
	if !quiet {
		fmt.Println()
	}
}

func printNamingIssues(issues []report.NamingIssue) {
	if debug.IsQuiet() && len(issues) == 0 {
		return
	}
	fmt.Println(ui.RenderCategory("Naming issues"))
	if len(issues) == 0 {
		fmt.Printf("  %s\n", ui.RenderMuted("none"))
	}
	for _, issue := range issues {
		fmt.Printf("  %s %s  %s\n", ui.RenderWarnIcon(), issue.File, ui.RenderMuted(issue.Error))
	}
	fmt.Println()
}

// writeScanReports writes the requested report files under the folder's
// reports directory. Write failures warn rather than discard the scan.
func writeScanReports(folder string, rep report.Report) {
	if !scanReportJSON && !scanReportHTML {
		return
	}

	dir, err := report.EnsureReportsDir(folder, settings.ReportDir)
	if err != nil {
		WarnError("%v", err)
		return
	}

	if scanReportJSON {
		path := filepath.Join(dir, "report.json")
		if err := report.WriteJSON(rep, path); err != nil {
			WarnError("%v", err)
		} else {
			debug.PrintNormal("Saved: %s\n", path)
		}
	}
	if scanReportHTML {
		path := filepath.Join(dir, "report.html")
		if err := report.WriteHTML(rep, path); err != nil {
			WarnError("%v", err)
		} else {
			debug.PrintNormal("Saved: %s\n", path)
		}
	}
}
