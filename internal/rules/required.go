package rules

import (
	"fmt"
	"strings"

	"github.com/texforge/texpack/internal/profile"
	"github.com/texforge/texpack/internal/texture"
)

// CheckRequiredMaps verifies a group carries every map the profile demands.
//
// BaseColor and Normal are always required. For the occlusion/roughness/
// metallic trio the profile decides: profiles that require ORM reject groups
// without a packed map, others accept either the packed map or the three
// separate ones. Profiles that disallow separate RMA additionally warn when
// both forms are present.
func CheckRequiredMaps(group *texture.Group, p profile.Profile) []texture.Result {
	var results []texture.Result

	if !group.HasMapType(texture.MapBaseColor) {
		results = append(results, texture.Result{
			Level:   texture.LevelError,
			Message: "Missing required map: BaseColor",
		})
	}
	if !group.HasMapType(texture.MapNormal) {
		results = append(results, texture.Result{
			Level:   texture.LevelError,
			Message: "Missing required map: Normal",
		})
	}

	switch {
	case group.HasMapType(texture.MapORM):
		results = append(results, texture.Result{
			Level:   texture.LevelInfo,
			Message: "ORM present (AO/Roughness/Metallic packed)",
		})
		if !p.AllowSeparateRMA {
			if separate := separateRMAPresent(group); len(separate) > 0 {
				results = append(results, texture.Result{
					Level: texture.LevelWarning,
					Message: fmt.Sprintf("ORM present alongside separate %s (profile expects packed channels only)",
						strings.Join(separate, ", ")),
				})
			}
		}
	case p.RequireORM:
		results = append(results, texture.Result{
			Level:   texture.LevelError,
			Message: "Missing required map: ORM (packed AO/Roughness/Metallic)",
		})
	default:
		var missing []string
		for _, m := range []texture.MapType{texture.MapAmbientOcclusion, texture.MapRoughness, texture.MapMetallic} {
			if !group.HasMapType(m) {
				missing = append(missing, string(m))
			}
		}
		if len(missing) > 0 {
			results = append(results, texture.Result{
				Level:   texture.LevelError,
				Message: "Missing required map(s): " + strings.Join(missing, ", ") + " (or provide ORM)",
			})
		}
	}

	if len(results) == 0 {
		results = append(results, texture.Result{
			Level:   texture.LevelInfo,
			Message: "All required maps present.",
		})
	}

	return results
}

func separateRMAPresent(group *texture.Group) []string {
	var present []string
	for _, m := range []texture.MapType{texture.MapAmbientOcclusion, texture.MapRoughness, texture.MapMetallic} {
		if group.HasMapType(m) {
			present = append(present, string(m))
		}
	}
	return present
}
