// Package grouping partitions discovered texture files into per-asset groups.
package grouping

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/texforge/texpack/internal/naming"
	"github.com/texforge/texpack/internal/texture"
)

// BuildGroups parses every file's stem and partitions the files into
// per-asset groups plus a list of records that failed to parse. Every input
// file lands in exactly one of the two.
//
// Texture lists and the unparsed list are sorted by relative path
// (case-insensitive, raw path as tie-break) so output is reproducible across
// runs and platforms.
func BuildGroups(files []string, root string, grammar naming.Grammar) (map[string]*texture.Group, []texture.Record) {
	groups := make(map[string]*texture.Group)
	var unparsed []texture.Record

	for _, path := range files {
		rel := relativePath(path, root)
		base := filepath.Base(path)
		ext := strings.ToLower(filepath.Ext(base))
		stem := strings.TrimSuffix(base, filepath.Ext(base))

		parsed, err := grammar.Parse(stem)
		if err != nil {
			unparsed = append(unparsed, texture.NewUnparsedRecord(path, rel, ext, err.Error()))
			continue
		}

		rec := texture.NewParsedRecord(path, rel, ext, parsed)
		grp := groups[parsed.Asset]
		if grp == nil {
			grp = &texture.Group{Name: parsed.Asset}
			groups[parsed.Asset] = grp
		}
		grp.Textures = append(grp.Textures, rec)
	}

	for _, grp := range groups {
		sortRecords(grp.Textures)
	}
	sortRecords(unparsed)

	return groups, unparsed
}

// SortedNames returns the group names sorted case-insensitively.
func SortedNames(groups map[string]*texture.Group) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	return names
}

func sortRecords(recs []texture.Record) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := strings.ToLower(recs[i].RelPath), strings.ToLower(recs[j].RelPath)
		if a != b {
			return a < b
		}
		return recs[i].RelPath < recs[j].RelPath
	})
}

// relativePath renders path relative to root with forward slashes. Falls
// back to the base name when the path cannot be made relative.
func relativePath(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
