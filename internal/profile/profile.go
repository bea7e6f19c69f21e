// Package profile defines the target-engine rule configurations.
package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown is returned by Lookup for profile names that match no built-in.
var ErrUnknown = errors.New("unknown profile")

// Profile describes which engine conventions a texture set is validated
// against. Profiles are immutable; the built-ins are the only instances.
type Profile struct {
	Name             string `json:"name"`
	RequireORM       bool   `json:"require_orm"`
	AllowSeparateRMA bool   `json:"allow_separate_rma"`
	AllowEXR         bool   `json:"allow_exr"`
}

// Builtin returns the built-in profiles in display order. The first entry
// (Unreal) is the default.
func Builtin() []Profile {
	return []Profile{
		{Name: "Unreal", RequireORM: true, AllowSeparateRMA: false, AllowEXR: false},
		{Name: "Unity", RequireORM: false, AllowSeparateRMA: true, AllowEXR: false},
		{Name: "VFX", RequireORM: false, AllowSeparateRMA: true, AllowEXR: true},
	}
}

// Default returns the profile used when the caller expresses no preference.
func Default() Profile {
	return Builtin()[0]
}

// Lookup resolves a built-in profile by name, case-insensitively. Unknown
// names are an error; callers that want typo-forgiveness must fall back to
// Default themselves (and should tell the user they did).
func Lookup(name string) (Profile, error) {
	return Resolve(Builtin(), name)
}

// Resolve resolves a profile by name within the given list,
// case-insensitively. Unknown names are an error naming the known profiles.
func Resolve(profiles []Profile, name string) (Profile, error) {
	for _, p := range profiles {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w %q (known: %s)", ErrUnknown, name, strings.Join(namesOf(profiles), ", "))
}

// Merge appends custom profiles to the built-ins. A custom profile whose
// name collides with an existing one (built-in or earlier custom) is an
// error: configuration adds profiles, it does not redefine them.
func Merge(extra []Profile) ([]Profile, error) {
	merged := Builtin()
	for _, p := range extra {
		if strings.TrimSpace(p.Name) == "" {
			return nil, errors.New("profiles: profile with empty name")
		}
		for _, existing := range merged {
			if strings.EqualFold(existing.Name, p.Name) {
				return nil, fmt.Errorf("profiles: %q already defined", p.Name)
			}
		}
		merged = append(merged, p)
	}
	return merged, nil
}

// Names returns the built-in profile names in display order.
func Names() []string {
	return namesOf(Builtin())
}

func namesOf(profiles []Profile) []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}

// Summary renders a short human-readable description of the profile's rules.
func (p Profile) Summary() string {
	lines := []string{
		"Profile: " + p.Name,
		"",
		"Rules:",
		"- BaseColor + Normal required",
	}
	if p.RequireORM {
		lines = append(lines,
			"- ORM required (packed AO/Roughness/Metallic)",
			"- Separate AO/Roughness/Metallic do NOT satisfy by themselves")
	} else {
		lines = append(lines, "- AO/Roughness/Metallic required OR ORM present")
	}
	if p.AllowEXR {
		lines = append(lines, "- EXR allowed in metadata checks")
	} else {
		lines = append(lines, "- EXR not expected (warnings/errors may appear)")
	}
	return strings.Join(lines, "\n")
}
