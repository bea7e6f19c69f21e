// Package autofix plans and applies canonical renames for parsed textures.
//
// Planning is pure: it computes the renames a group needs without touching
// the filesystem beyond existence probes. Applying re-resolves every
// destination immediately before the rename so plans stay valid even when
// earlier renames (or outside activity) created the planned destination in
// the meantime.
package autofix

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/texforge/texpack/internal/texture"
)

// RenameAction is a single planned rename. Note records why the destination
// looks the way it does.
type RenameAction struct {
	Src  string `json:"src"`
	Dst  string `json:"dst"`
	Note string `json:"note"`
}

// PlanRenames computes the canonical rename for every parsed texture in the
// group. The target name is Asset_MapType with the file's original extension;
// version tokens and alias spellings are dropped. Textures already carrying
// the canonical name are skipped, and destinations that exist get a _fixedN
// suffix instead of being overwritten.
func PlanRenames(group *texture.Group) []RenameAction {
	var actions []RenameAction

	for _, rec := range group.Textures {
		parsed, ok := rec.Parsed()
		if !ok {
			continue
		}

		// Keep the on-disk extension exactly, including its case.
		ext := filepath.Ext(rec.Path)
		desiredName := fmt.Sprintf("%s_%s%s", parsed.Asset, parsed.MapType, ext)
		if filepath.Base(rec.Path) == desiredName {
			continue
		}

		desired := filepath.Join(filepath.Dir(rec.Path), desiredName)
		dst := uniquePath(desired)

		note := "rename"
		if dst != desired {
			note = "rename (collision -> suffixed)"
		}

		actions = append(actions, RenameAction{Src: rec.Path, Dst: dst, Note: note})
	}

	return actions
}

// ApplyRenames executes a plan. Each destination is re-resolved against the
// filesystem at rename time, so the returned applied actions may carry a
// different Dst than planned. Failures are collected per action; one bad
// rename never stops the rest.
func ApplyRenames(actions []RenameAction) (applied []RenameAction, errs []string) {
	for _, a := range actions {
		dst := uniquePath(a.Dst)
		if err := os.Rename(a.Src, dst); err != nil {
			errs = append(errs, fmt.Sprintf("Failed to rename '%s' -> '%s': %v",
				filepath.Base(a.Src), filepath.Base(a.Dst), err))
			continue
		}
		applied = append(applied, RenameAction{Src: a.Src, Dst: dst, Note: a.Note})
	}
	return applied, errs
}

// uniquePath returns dst unchanged when nothing occupies it, otherwise the
// first free Stem_fixedN variant. Lstat keeps symlinks from being treated
// as free slots.
func uniquePath(dst string) string {
	if _, err := os.Lstat(dst); err != nil {
		return dst
	}

	ext := filepath.Ext(dst)
	base := dst[:len(dst)-len(ext)]
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_fixed%d%s", base, i, ext)
		if _, err := os.Lstat(candidate); err != nil {
			return candidate
		}
	}
}
