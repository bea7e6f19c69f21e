package rules

import (
	"fmt"

	"github.com/texforge/texpack/internal/imagemeta"
	"github.com/texforge/texpack/internal/texture"
)

// ExtremaLookup resolves a texture record to per-channel min/max statistics.
type ExtremaLookup func(rec texture.Record) (imagemeta.Extrema, error)

// CheckPackedChannels inspects ORM textures for packing mistakes. A flat
// channel usually means the corresponding map (AO, Roughness or Metallic)
// was never packed in; identical extrema across all three channels usually
// mean a grayscale image was exported instead of a packed one. Content
// findings are warnings only, since legitimately uniform materials exist.
func CheckPackedChannels(group *texture.Group, metadata MetadataLookup, extrema ExtremaLookup) []texture.Result {
	var results []texture.Result

	for _, rec := range group.Textures {
		parsed, ok := rec.Parsed()
		if !ok || parsed.MapType != texture.MapORM {
			continue
		}

		info, err := metadata(rec)
		if err != nil {
			results = append(results, texture.Result{
				Level:   texture.LevelWarning,
				Message: fmt.Sprintf("ORM: %s - cannot analyze channels (%v)", rec.RelPath, err),
			})
			continue
		}

		if info.Channels < 3 {
			results = append(results, texture.Result{
				Level:   texture.LevelError,
				Message: fmt.Sprintf("ORM: %s - needs RGB (3 channels), got %s", rec.RelPath, info.Mode),
			})
			continue
		}

		if info.HasAlpha {
			results = append(results, texture.Result{
				Level:   texture.LevelWarning,
				Message: fmt.Sprintf("ORM: %s - has alpha channel (unexpected)", rec.RelPath),
			})
		}

		ex, err := extrema(rec)
		if err != nil {
			results = append(results, texture.Result{
				Level:   texture.LevelWarning,
				Message: fmt.Sprintf("ORM: %s - could not compute channel extrema (%v)", rec.RelPath, err),
			})
			continue
		}

		if ex.R.Flat() {
			results = append(results, texture.Result{
				Level:   texture.LevelWarning,
				Message: fmt.Sprintf("ORM: %s - R channel is flat (AO may be missing)", rec.RelPath),
			})
		}
		if ex.G.Flat() {
			results = append(results, texture.Result{
				Level:   texture.LevelWarning,
				Message: fmt.Sprintf("ORM: %s - G channel is flat (Roughness may be missing)", rec.RelPath),
			})
		}
		if ex.B.Flat() {
			results = append(results, texture.Result{
				Level:   texture.LevelWarning,
				Message: fmt.Sprintf("ORM: %s - B channel is flat (Metallic may be missing)", rec.RelPath),
			})
		}

		if ex.R == ex.G && ex.G == ex.B {
			results = append(results, texture.Result{
				Level:   texture.LevelWarning,
				Message: fmt.Sprintf("ORM: %s - channels look identical (may be grayscale, not packed)", rec.RelPath),
			})
		}
	}

	return results
}
