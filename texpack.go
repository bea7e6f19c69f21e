// Package texpack provides a minimal public API for embedding the texture
// validator in other tools.
//
// Most automation should drive the texpack CLI and parse its --json output.
// This package exports only the essential types and entry points for Go
// programs that want to run scans programmatically.
package texpack

import (
	"context"

	"github.com/texforge/texpack/internal/imagemeta"
	"github.com/texforge/texpack/internal/naming"
	"github.com/texforge/texpack/internal/profile"
	"github.com/texforge/texpack/internal/rules"
	"github.com/texforge/texpack/internal/scan"
	"github.com/texforge/texpack/internal/texture"
)

// Core types for working with scan results
type (
	MapType       = texture.MapType
	Level         = texture.Level
	Result        = texture.Result
	ParsedName    = texture.ParsedName
	Record        = texture.Record
	Group         = texture.Group
	Profile       = profile.Profile
	Scanner       = scan.Scanner
	FolderScan    = scan.FolderScan
	FolderSummary = scan.FolderSummary
	BatchEntry    = scan.BatchEntry
)

// Severity constants
const (
	LevelInfo    = texture.LevelInfo
	LevelWarning = texture.LevelWarning
	LevelError   = texture.LevelError
)

// Map type constants
const (
	MapBaseColor        = texture.MapBaseColor
	MapNormal           = texture.MapNormal
	MapRoughness        = texture.MapRoughness
	MapMetallic         = texture.MapMetallic
	MapAmbientOcclusion = texture.MapAmbientOcclusion
	MapORM              = texture.MapORM
	MapEmissive         = texture.MapEmissive
	MapOpacity          = texture.MapOpacity
	MapHeight           = texture.MapHeight
)

// Profiles returns the built-in validation profiles. The first entry is
// the default.
func Profiles() []Profile {
	return profile.Builtin()
}

// LookupProfile resolves a built-in profile by name, case-insensitively.
// Unknown names are an error; there is no silent fallback at this layer.
func LookupProfile(name string) (Profile, error) {
	return profile.Lookup(name)
}

// NewScanner returns a scanner with the built-in grammar, rule tables and
// filesystem image reader.
func NewScanner() *Scanner {
	return scan.NewScanner(naming.NewGrammar(), rules.DefaultTables(), imagemeta.FileReader{})
}

// ScanFolder validates one export folder under the named profile.
// Most embedders should use this and read the returned FolderScan.
func ScanFolder(ctx context.Context, folder, profileName string) (*FolderScan, error) {
	p, err := profile.Lookup(profileName)
	if err != nil {
		return nil, err
	}
	return NewScanner().ScanFolder(ctx, folder, p)
}
