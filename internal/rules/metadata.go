package rules

import (
	"fmt"
	"strings"

	"github.com/texforge/texpack/internal/imagemeta"
	"github.com/texforge/texpack/internal/profile"
	"github.com/texforge/texpack/internal/texture"
)

// MetadataLookup resolves a texture record to decoded image metadata.
type MetadataLookup func(rec texture.Record) (imagemeta.Info, error)

// CheckImageMetadata flags extension, resolution and channel anomalies for
// every parsed texture in the group. Checks are independent and cumulative;
// one texture may produce several findings. When metadata cannot be read the
// remaining checks for that texture are skipped — as a WARNING for .exr
// (decoder support for EXR is commonly missing) and an ERROR otherwise.
func CheckImageMetadata(group *texture.Group, p profile.Profile, tables Tables, lookup MetadataLookup) []texture.Result {
	var results []texture.Result

	for _, rec := range group.Textures {
		parsed, ok := rec.Parsed()
		if !ok {
			continue
		}
		mapType := parsed.MapType

		if allowed := tables.AllowedFor(mapType, p); len(allowed) > 0 && !contains(allowed, rec.Ext) {
			results = append(results, texture.Result{
				Level: texture.LevelWarning,
				Message: fmt.Sprintf("%s: unexpected file extension '%s' (expected one of %s)",
					mapType, rec.Ext, strings.Join(allowed, ", ")),
			})
		}

		info, err := lookup(rec)
		if err != nil {
			level := texture.LevelError
			if rec.Ext == ".exr" {
				level = texture.LevelWarning
			}
			results = append(results, texture.Result{
				Level:   level,
				Message: fmt.Sprintf("%s: %s - %v", mapType, rec.RelPath, err),
			})
			continue
		}

		if level, ok := severityForSize(info.Width, info.Height, tables); ok {
			results = append(results, texture.Result{
				Level:   level,
				Message: fmt.Sprintf("%s: very large resolution (%dx%d)", mapType, info.Width, info.Height),
			})
		}

		if !isPowerOfTwo(info.Width) || !isPowerOfTwo(info.Height) {
			results = append(results, texture.Result{
				Level:   texture.LevelWarning,
				Message: fmt.Sprintf("%s: not power-of-two (%dx%d)", mapType, info.Width, info.Height),
			})
		}

		switch mapType {
		case texture.MapNormal, texture.MapORM:
			if info.Channels < 3 {
				results = append(results, texture.Result{
					Level:   texture.LevelWarning,
					Message: fmt.Sprintf("%s: suspicious channel count (%s)", mapType, info.Mode),
				})
			}
			if info.HasAlpha {
				results = append(results, texture.Result{
					Level:   texture.LevelWarning,
					Message: fmt.Sprintf("%s: has alpha channel (unexpected)", mapType),
				})
			}
		case texture.MapBaseColor:
			if info.Channels == 1 {
				results = append(results, texture.Result{
					Level:   texture.LevelWarning,
					Message: fmt.Sprintf("%s: appears grayscale (%s)", mapType, info.Mode),
				})
			}
		}
	}

	return results
}

func severityForSize(w, h int, tables Tables) (texture.Level, bool) {
	m := w
	if h > m {
		m = h
	}
	switch {
	case m >= tables.MaxSizeError:
		return texture.LevelError, true
	case m >= tables.MaxSizeWarn:
		return texture.LevelWarning, true
	}
	return "", false
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
