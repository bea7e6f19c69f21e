// Package naming parses texture filename stems of the form
// Asset_MapType[_v###] into their structured parts.
package naming

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/texforge/texpack/internal/texture"
)

// Parse failures, one sentinel per grammar error class. Callers can use
// errors.Is to distinguish them; the rendered message is shown to users as-is.
var (
	ErrMissingSeparator = errors.New("no '_' separator found (expected Asset_MapType[_v###])")
	ErrMissingMapType   = errors.New("version suffix present but missing map type (expected Asset_MapType_v###)")
	ErrBadVersion       = errors.New("version suffix could not be parsed")
	ErrEmptyAsset       = errors.New("asset name was empty")
	ErrUnknownMapType   = errors.New("unknown map type token")
)

// AliasTable maps lowercase free-form map tokens to canonical map types.
type AliasTable map[string]texture.MapType

// DefaultAliases returns the built-in alias table. The result is a fresh
// copy; callers may extend it without affecting other users.
func DefaultAliases() AliasTable {
	return AliasTable{
		// BaseColor
		"albedo":    texture.MapBaseColor,
		"basecolor": texture.MapBaseColor,
		"diffuse":   texture.MapBaseColor,
		"color":     texture.MapBaseColor,
		"col":       texture.MapBaseColor,
		// Normal
		"normal": texture.MapNormal,
		"nrm":    texture.MapNormal,
		"nor":    texture.MapNormal,
		// Roughness
		"roughness": texture.MapRoughness,
		"rough":     texture.MapRoughness,
		"rgh":       texture.MapRoughness,
		// Metallic
		"metallic": texture.MapMetallic,
		"metal":    texture.MapMetallic,
		"met":      texture.MapMetallic,
		// AO
		"ao":               texture.MapAmbientOcclusion,
		"ambientocclusion": texture.MapAmbientOcclusion,
		"occlusion":        texture.MapAmbientOcclusion,
		"occ":              texture.MapAmbientOcclusion,
		// Packed
		"orm": texture.MapORM,
		"rma": texture.MapORM,
		// Optional
		"emissive":     texture.MapEmissive,
		"emis":         texture.MapEmissive,
		"opacity":      texture.MapOpacity,
		"alpha":        texture.MapOpacity,
		"height":       texture.MapHeight,
		"disp":         texture.MapHeight,
		"displacement": texture.MapHeight,
	}
}

// Extend returns a copy of t with extra token-to-map-type entries merged in.
// Extensions are additive only: a token that spells a canonical map type, or
// one already mapped to a different type, is rejected, so configuration can
// add spellings but never change what an existing name means.
func (t AliasTable) Extend(extra map[string]string) (AliasTable, error) {
	merged := make(AliasTable, len(t)+len(extra))
	for k, v := range t {
		merged[k] = v
	}

	for token, target := range extra {
		key := strings.ToLower(strings.TrimSpace(token))
		if key == "" {
			return nil, errors.New("aliases: empty token")
		}

		mapType := texture.MapType(target)
		for _, m := range texture.CanonicalMapTypes() {
			if strings.EqualFold(target, string(m)) {
				mapType = m
				break
			}
		}
		if !mapType.IsValid() {
			return nil, fmt.Errorf("aliases: token %q maps to unknown map type %q", token, target)
		}

		for _, m := range texture.CanonicalMapTypes() {
			if key == strings.ToLower(string(m)) {
				return nil, fmt.Errorf("aliases: token %q shadows canonical map type %s", token, m)
			}
		}
		if existing, ok := merged[key]; ok && existing != mapType {
			return nil, fmt.Errorf("aliases: token %q already means %s", token, existing)
		}

		merged[key] = mapType
	}

	return merged, nil
}

// Canonical resolves a free-form token to its canonical map type. Tokens are
// matched case-insensitively, first against the alias table, then against the
// canonical spellings themselves.
func (t AliasTable) Canonical(token string) (texture.MapType, bool) {
	k := strings.ToLower(strings.TrimSpace(token))
	if k == "" {
		return "", false
	}
	if m, ok := t[k]; ok {
		return m, true
	}
	for _, m := range texture.CanonicalMapTypes() {
		if k == strings.ToLower(string(m)) {
			return m, true
		}
	}
	return "", false
}

// Grammar parses filename stems against an alias table. The zero value is
// not usable; construct with NewGrammar or supply an AliasTable directly.
type Grammar struct {
	Aliases AliasTable
}

// NewGrammar returns a grammar backed by the built-in alias table.
func NewGrammar() Grammar {
	return Grammar{Aliases: DefaultAliases()}
}

// Parse decodes a filename stem (no extension) into its parts.
//
// Accepted shapes:
//
//	Asset_MapType
//	Asset_MapType_v###   (3+ digit version, v or V)
//
// The version suffix is stripped before the map token is resolved, so
// CrateA_BaseColor_v002 groups identically to CrateA_BaseColor.
func (g Grammar) Parse(stem string) (texture.ParsedName, error) {
	parts := strings.Split(stem, "_")
	if len(parts) < 2 {
		return texture.ParsedName{}, ErrMissingSeparator
	}

	var version *int
	if isVersionToken(parts[len(parts)-1]) {
		// Need at least Asset, MapType, v###
		if len(parts) < 3 {
			return texture.ParsedName{}, ErrMissingMapType
		}
		v, err := strconv.Atoi(parts[len(parts)-1][1:])
		if err != nil {
			return texture.ParsedName{}, ErrBadVersion
		}
		version = &v
		parts = parts[:len(parts)-1]
	}

	token := parts[len(parts)-1]
	asset := strings.TrimSpace(strings.Join(parts[:len(parts)-1], "_"))
	if asset == "" {
		return texture.ParsedName{}, ErrEmptyAsset
	}

	mapType, ok := g.Aliases.Canonical(token)
	if !ok {
		return texture.ParsedName{}, fmt.Errorf("%w %q", ErrUnknownMapType, token)
	}

	return texture.ParsedName{
		Asset:    asset,
		MapType:  mapType,
		Version:  version,
		RawToken: token,
	}, nil
}

// isVersionToken reports whether the final stem segment looks like a
// version suffix: v or V followed by 3 or more decimal digits.
func isVersionToken(s string) bool {
	if len(s) < 4 {
		return false
	}
	if s[0] != 'v' && s[0] != 'V' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
