package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/texforge/texpack/internal/grouping"
	"github.com/texforge/texpack/internal/scan"
	"github.com/texforge/texpack/internal/texture"
	"github.com/texforge/texpack/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:     "watch <folder>",
	GroupID: GroupValidate,
	Short:   "Rescan a folder whenever its textures change",
	Long: `Watch a folder tree and revalidate after every texture change.

An initial scan prints immediately. After that, writes, creates, renames
and deletions of supported texture files trigger a rescan once the folder
has been quiet for the debounce interval (watch_debounce in texpack.yaml,
default 500ms), so a long export does not cause a rescan per file.

Each rescan prints a one-line summary plus any ERROR-level findings.
Press Ctrl+C to stop.

Example:
  texpack watch ./exports --profile unreal`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		folder := mustResolveFolder(args[0])

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			FatalError("create watcher: %v", err)
		}
		defer func() { _ = watcher.Close() }()

		if err := watchTree(watcher, folder); err != nil {
			FatalError("watch folder: %v", err)
		}

		rescan := func() {
			result, err := scanner.ScanFolder(rootCtx, folder, activeProfile)
			if err != nil {
				WarnError("rescan: %v", err)
				return
			}
			printWatchScan(result)
		}

		rescan()
		fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", folder)

		debounce := settings.WatchDebounce
		if debounce <= 0 {
			debounce = 500 * time.Millisecond
		}
		var debounceTimer *time.Timer

		for {
			select {
			case <-rootCtx.Done():
				fmt.Fprintln(os.Stderr, "\nStopped watching.")
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevantWatchEvent(watcher, event) {
					continue
				}
				// Debounce rapid changes during bulk exports.
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounce, func() {
					rescan()
					fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", folder)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				WarnError("watcher: %v", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// watchTree adds root and every subdirectory to the watcher. fsnotify
// watches are per-directory, not recursive.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		return watcher.Add(path)
	})
}

// relevantWatchEvent reports whether an event should trigger a rescan.
// New directories are added to the watch on the way through, since files
// may land in them next.
func relevantWatchEvent(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watchTree(watcher, event.Name); err != nil {
				WarnError("watch new folder %s: %v", event.Name, err)
			}
			return true
		}
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	return ruleTables.IsSupported(strings.ToLower(filepath.Ext(event.Name)))
}

// printWatchScan prints the compact per-rescan summary: one status line,
// then any ERROR-level findings with their asset.
func printWatchScan(result *scan.FolderScan) {
	s := result.Summary

	status := ui.RenderPassIcon()
	switch {
	case s.Errors > 0:
		status = ui.RenderFailIcon()
	case s.Warnings > 0:
		status = ui.RenderWarnIcon()
	}

	fmt.Printf("%s  %s %d assets  %d textures  %d naming issues  E:%d W:%d\n",
		ui.RenderMuted(time.Now().Format("15:04:05")), status,
		s.AssetsFound, s.TexturesScanned, s.NamingIssues, s.Errors, s.Warnings)

	for _, name := range grouping.SortedNames(result.Groups) {
		for _, r := range result.ResultsByAsset[name] {
			if r.Level != texture.LevelError {
				continue
			}
			fmt.Printf("%s%s%s %s: %s\n", ui.TreeIndent, ui.TreeLast,
				ui.RenderFailIcon(), name, r.Message)
		}
	}
}
