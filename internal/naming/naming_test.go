package naming

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texforge/texpack/internal/texture"
)

func TestParseValidStems(t *testing.T) {
	g := NewGrammar()

	tests := []struct {
		stem        string
		wantAsset   string
		wantMapType texture.MapType
		wantVersion int // -1 means no version
	}{
		{"CrateA_BaseColor", "CrateA", texture.MapBaseColor, -1},
		{"CrateA_basecolor", "CrateA", texture.MapBaseColor, -1},
		{"CrateA_Albedo", "CrateA", texture.MapBaseColor, -1},
		{"CrateA_col", "CrateA", texture.MapBaseColor, -1},
		{"CrateA_Normal", "CrateA", texture.MapNormal, -1},
		{"CrateA_NRM", "CrateA", texture.MapNormal, -1},
		{"Wall_rgh", "Wall", texture.MapRoughness, -1},
		{"Wall_Metal", "Wall", texture.MapMetallic, -1},
		{"Wall_AO", "Wall", texture.MapAmbientOcclusion, -1},
		{"Wall_occlusion", "Wall", texture.MapAmbientOcclusion, -1},
		{"Wall_AmbientOcclusion", "Wall", texture.MapAmbientOcclusion, -1},
		{"Wall_ORM", "Wall", texture.MapORM, -1},
		{"Wall_rma", "Wall", texture.MapORM, -1},
		{"Lamp_Emissive", "Lamp", texture.MapEmissive, -1},
		{"Glass_alpha", "Glass", texture.MapOpacity, -1},
		{"Rocks_displacement", "Rocks", texture.MapHeight, -1},
		{"CrateA_BaseColor_v002", "CrateA", texture.MapBaseColor, 2},
		{"CrateA_BaseColor_V010", "CrateA", texture.MapBaseColor, 10},
		{"CrateA_BaseColor_v1234", "CrateA", texture.MapBaseColor, 1234},
		// Underscores in the asset name are preserved
		{"Old_Crate_BaseColor", "Old_Crate", texture.MapBaseColor, -1},
		{"Old_Crate_BaseColor_v003", "Old_Crate", texture.MapBaseColor, 3},
		// v## (two digits) is not a version suffix; "v01" is not a map token either,
		// but "v999" as an asset segment stays part of the asset
		{"v999_BaseColor", "v999", texture.MapBaseColor, -1},
	}

	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			parsed, err := g.Parse(tt.stem)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAsset, parsed.Asset)
			assert.Equal(t, tt.wantMapType, parsed.MapType)
			if tt.wantVersion < 0 {
				assert.Nil(t, parsed.Version)
			} else {
				require.NotNil(t, parsed.Version)
				assert.Equal(t, tt.wantVersion, *parsed.Version)
			}
			assert.True(t, parsed.MapType.IsValid())
		})
	}
}

func TestParseErrors(t *testing.T) {
	g := NewGrammar()

	tests := []struct {
		name    string
		stem    string
		wantErr error
	}{
		{"no separator", "CrateA", ErrMissingSeparator},
		{"empty stem", "", ErrMissingSeparator},
		{"version without map type", "CrateA_v002", ErrMissingMapType},
		{"unknown token", "CrateA_Specular", ErrUnknownMapType},
		{"empty asset", "_BaseColor", ErrEmptyAsset},
		{"whitespace asset", " _BaseColor", ErrEmptyAsset},
		{"empty asset with version", "_BaseColor_v001", ErrEmptyAsset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Parse(tt.stem)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestParseUnknownTokenNamesToken(t *testing.T) {
	g := NewGrammar()
	_, err := g.Parse("CrateC_Specular")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Specular")
}

// Every alias, in every casing, must resolve to a canonical map type, and
// rebuilding the stem from the parsed parts must produce the canonical form.
func TestParseCanonicalRoundTrip(t *testing.T) {
	g := NewGrammar()

	for token, want := range DefaultAliases() {
		title := strings.ToUpper(token[:1]) + token[1:]
		for _, variant := range []string{token, strings.ToUpper(token), title} {
			parsed, err := g.Parse("Asset_" + variant)
			require.NoError(t, err, "token %q", variant)
			assert.Equal(t, want, parsed.MapType, "token %q", variant)
			assert.Equal(t, variant, parsed.RawToken)

			canonical := parsed.Asset + "_" + string(parsed.MapType)
			reparsed, err := g.Parse(canonical)
			require.NoError(t, err)
			assert.Equal(t, parsed.MapType, reparsed.MapType)
		}
	}
}

func TestExtendAddsAliases(t *testing.T) {
	extended, err := DefaultAliases().Extend(map[string]string{
		"bc":   "BaseColor",
		"Mask": "opacity", // target matching is case-insensitive
	})
	require.NoError(t, err)

	g := Grammar{Aliases: extended}
	for stem, want := range map[string]texture.MapType{
		"Crate_bc":   texture.MapBaseColor,
		"Crate_BC":   texture.MapBaseColor,
		"Crate_mask": texture.MapOpacity,
	} {
		parsed, err := g.Parse(stem)
		require.NoError(t, err, "stem %q", stem)
		assert.Equal(t, want, parsed.MapType, "stem %q", stem)
	}

	// The source table is untouched.
	_, ok := DefaultAliases()["bc"]
	assert.False(t, ok)
}

func TestExtendRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name  string
		extra map[string]string
	}{
		{"unknown target", map[string]string{"spec": "Specular"}},
		{"shadows canonical", map[string]string{"normal": "Height"}},
		{"conflicts with alias", map[string]string{"albedo": "Normal"}},
		{"empty token", map[string]string{" ": "Normal"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultAliases().Extend(tt.extra)
			assert.Error(t, err)
		})
	}
}

func TestExtendRedundantAliasIsFine(t *testing.T) {
	// Restating an existing alias with the same meaning is allowed.
	extended, err := DefaultAliases().Extend(map[string]string{"albedo": "BaseColor"})
	require.NoError(t, err)
	assert.Equal(t, texture.MapBaseColor, extended["albedo"])
}

func TestVersionSuffixStrippedBeforeCanonicalization(t *testing.T) {
	g := NewGrammar()

	plain, err := g.Parse("CrateA_BaseColor")
	require.NoError(t, err)
	versioned, err := g.Parse("CrateA_BaseColor_v002")
	require.NoError(t, err)

	assert.Equal(t, plain.Asset, versioned.Asset)
	assert.Equal(t, plain.MapType, versioned.MapType)
}

func TestIsVersionToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"v001", true},
		{"V123", true},
		{"v1234567", true},
		{"v01", false},  // too few digits
		{"v", false},    // no digits
		{"001", false},  // no v prefix
		{"va01", false}, // non-digit
		{"", false},
	}
	for _, tt := range tests {
		if got := isVersionToken(tt.token); got != tt.want {
			t.Errorf("isVersionToken(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}
