package scan

import (
	"context"
	"os"

	"github.com/texforge/texpack/internal/autofix"
	"github.com/texforge/texpack/internal/grouping"
	"github.com/texforge/texpack/internal/profile"
)

// BatchStatus describes how one folder in a batch fared.
type BatchStatus string

const (
	// BatchOK means the folder was scanned.
	BatchOK BatchStatus = "ok"
	// BatchMissing means the folder does not exist.
	BatchMissing BatchStatus = "missing"
	// BatchError means the folder exists but could not be scanned.
	BatchError BatchStatus = "error"
)

// BatchEntry is the per-folder outcome of a batch scan. Rename counts are
// present only when the batch ran with fix enabled.
type BatchEntry struct {
	FolderSummary
	Status         BatchStatus `json:"status"`
	RenamesApplied *int        `json:"renames_applied,omitempty"`
	RenameErrors   *int        `json:"rename_errors,omitempty"`
	Error          string      `json:"error,omitempty"`
}

// BatchTotals aggregates a batch for a one-line summary.
type BatchTotals struct {
	Folders      int
	Assets       int
	Textures     int
	NamingIssues int
	Errors       int
	Warnings     int
}

// ScanBatch scans each folder independently. A missing folder yields a
// "missing" entry with zero counts, a failed scan an "error" entry; neither
// stops the rest of the batch. When fix is set, renames are planned from a
// first scan and applied before the final scan the entry reports on.
func (s *Scanner) ScanBatch(ctx context.Context, folders []string, p profile.Profile, fix bool) ([]BatchEntry, error) {
	entries := make([]BatchEntry, 0, len(folders))

	for _, folder := range folders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, err := os.Stat(folder); err != nil {
			entries = append(entries, BatchEntry{
				FolderSummary: FolderSummary{Folder: folder},
				Status:        BatchMissing,
			})
			continue
		}

		entry := BatchEntry{Status: BatchOK}
		if fix {
			first, err := s.ScanFolder(ctx, folder, p)
			if err != nil {
				entries = append(entries, errorEntry(folder, err))
				continue
			}
			var actions []autofix.RenameAction
			for _, name := range grouping.SortedNames(first.Groups) {
				actions = append(actions, autofix.PlanRenames(first.Groups[name])...)
			}
			applied, errs := autofix.ApplyRenames(actions)
			renamesApplied, renameErrors := len(applied), len(errs)
			entry.RenamesApplied = &renamesApplied
			entry.RenameErrors = &renameErrors
		}

		result, err := s.ScanFolder(ctx, folder, p)
		if err != nil {
			entries = append(entries, errorEntry(folder, err))
			continue
		}

		entry.FolderSummary = result.Summary
		entries = append(entries, entry)
	}

	return entries, nil
}

func errorEntry(folder string, err error) BatchEntry {
	return BatchEntry{
		FolderSummary: FolderSummary{Folder: folder},
		Status:        BatchError,
		Error:         err.Error(),
	}
}

// Totals sums a batch's entries.
func Totals(entries []BatchEntry) BatchTotals {
	t := BatchTotals{Folders: len(entries)}
	for _, e := range entries {
		t.Assets += e.AssetsFound
		t.Textures += e.TexturesScanned
		t.NamingIssues += e.NamingIssues
		t.Errors += e.Errors
		t.Warnings += e.Warnings
	}
	return t
}
