// Package rules implements the profile-driven validation checks applied to
// grouped texture sets.
package rules

import (
	"sort"
	"strings"

	"github.com/texforge/texpack/internal/profile"
	"github.com/texforge/texpack/internal/texture"
)

// Tables bundles the data-driven validation thresholds and extension
// expectations. Construct with DefaultTables and pass by value; checks never
// mutate a Tables.
type Tables struct {
	// MaxSizeWarn and MaxSizeError are max-dimension thresholds.
	MaxSizeWarn  int
	MaxSizeError int

	// AllowedExtByMap lists the expected extensions per map type. Deviations
	// are warnings only; conventions differ between studios.
	AllowedExtByMap map[texture.MapType][]string

	// SupportedExts is the set of extensions the scanner picks up at all.
	SupportedExts []string
}

// DefaultTables returns the built-in thresholds and extension tables.
// The result is a fresh copy each call.
func DefaultTables() Tables {
	return Tables{
		MaxSizeWarn:  4096,
		MaxSizeError: 8192,
		AllowedExtByMap: map[texture.MapType][]string{
			texture.MapBaseColor:        {".png", ".tif", ".tiff", ".jpg", ".jpeg"},
			texture.MapNormal:           {".png", ".tif", ".tiff"},
			texture.MapRoughness:        {".png", ".tif", ".tiff", ".jpg", ".jpeg"},
			texture.MapMetallic:         {".png", ".tif", ".tiff", ".jpg", ".jpeg"},
			texture.MapAmbientOcclusion: {".png", ".tif", ".tiff", ".jpg", ".jpeg"},
			texture.MapORM:              {".png", ".tif", ".tiff"},
			texture.MapEmissive:         {".png", ".tif", ".tiff", ".jpg", ".jpeg"},
			texture.MapOpacity:          {".png", ".tif", ".tiff"},
			texture.MapHeight:           {".png", ".tif", ".tiff", ".exr"},
		},
		SupportedExts: []string{".png", ".tif", ".tiff", ".jpg", ".jpeg", ".exr"},
	}
}

// IsSupported reports whether the scanner should pick up files with the
// given (lowercase) extension.
func (t Tables) IsSupported(ext string) bool {
	for _, e := range t.SupportedExts {
		if e == ext {
			return true
		}
	}
	return false
}

// AllowedFor returns the sorted allowed extensions for a map type under the
// given profile. EXR is added when the profile allows it. An empty result
// means no expectation is recorded for the map type.
func (t Tables) AllowedFor(m texture.MapType, p profile.Profile) []string {
	base, ok := t.AllowedExtByMap[m]
	if !ok {
		return nil
	}
	allowed := make([]string, len(base))
	copy(allowed, base)
	if p.AllowEXR && !contains(allowed, ".exr") {
		allowed = append(allowed, ".exr")
	}
	sort.Strings(allowed)
	return allowed
}

func contains(exts []string, ext string) bool {
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
