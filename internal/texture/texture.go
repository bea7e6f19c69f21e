// Package texture defines the core data structures shared across the
// texpack validation pipeline.
package texture

import "sort"

// MapType is the semantic role of a texture within an asset's set.
type MapType string

// Canonical map type constants
const (
	MapBaseColor        MapType = "BaseColor"
	MapNormal           MapType = "Normal"
	MapRoughness        MapType = "Roughness"
	MapMetallic         MapType = "Metallic"
	MapAmbientOcclusion MapType = "AmbientOcclusion"
	MapORM              MapType = "ORM"
	MapEmissive         MapType = "Emissive"
	MapOpacity          MapType = "Opacity"
	MapHeight           MapType = "Height"
)

// IsValid checks if the map type is one of the canonical values
func (m MapType) IsValid() bool {
	switch m {
	case MapBaseColor, MapNormal, MapRoughness, MapMetallic, MapAmbientOcclusion,
		MapORM, MapEmissive, MapOpacity, MapHeight:
		return true
	}
	return false
}

// CanonicalMapTypes returns all canonical map types in display order.
func CanonicalMapTypes() []MapType {
	return []MapType{
		MapBaseColor,
		MapNormal,
		MapRoughness,
		MapMetallic,
		MapAmbientOcclusion,
		MapORM,
		MapEmissive,
		MapOpacity,
		MapHeight,
	}
}

// Level is the severity of a validation finding.
type Level string

// Severity constants, ordered from least to most severe
const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// IsValid checks if the level is a known severity
func (l Level) IsValid() bool {
	switch l {
	case LevelInfo, LevelWarning, LevelError:
		return true
	}
	return false
}

// Result is a single validation finding for an asset.
type Result struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// CountLevels tallies results by severity.
func CountLevels(results []Result) (errors, warnings, infos int) {
	for _, r := range results {
		switch r.Level {
		case LevelError:
			errors++
		case LevelWarning:
			warnings++
		default:
			infos++
		}
	}
	return errors, warnings, infos
}

// ParsedName is the decoded form of a texture filename stem.
// Version is nil when the stem carries no _v### suffix.
type ParsedName struct {
	Asset    string
	MapType  MapType
	Version  *int
	RawToken string
}

// Record describes one discovered texture file. A record is either parsed
// (carries a ParsedName) or unparsed (carries a parse error), never both.
// Use NewParsedRecord / NewUnparsedRecord to construct one.
type Record struct {
	Path    string
	RelPath string
	Ext     string

	parsed   *ParsedName
	parseErr string
}

// NewParsedRecord creates a record for a file whose name parsed successfully.
func NewParsedRecord(path, relPath, ext string, parsed ParsedName) Record {
	return Record{Path: path, RelPath: relPath, Ext: ext, parsed: &parsed}
}

// NewUnparsedRecord creates a record for a file whose name failed to parse.
func NewUnparsedRecord(path, relPath, ext, parseErr string) Record {
	if parseErr == "" {
		parseErr = "unknown parse error"
	}
	return Record{Path: path, RelPath: relPath, Ext: ext, parseErr: parseErr}
}

// Parsed returns the parsed name and true when the record parsed successfully.
func (r Record) Parsed() (ParsedName, bool) {
	if r.parsed == nil {
		return ParsedName{}, false
	}
	return *r.parsed, true
}

// ParseError returns the parse failure message, or "" for parsed records.
func (r Record) ParseError() string {
	return r.parseErr
}

// Group is the set of texture records sharing one asset name.
type Group struct {
	Name     string
	Textures []Record
}

// MapTypes returns the sorted, de-duplicated map types parsed from the
// group's textures.
func (g *Group) MapTypes() []MapType {
	seen := make(map[MapType]bool)
	var types []MapType
	for _, rec := range g.Textures {
		parsed, ok := rec.Parsed()
		if !ok || seen[parsed.MapType] {
			continue
		}
		seen[parsed.MapType] = true
		types = append(types, parsed.MapType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// HasMapType reports whether any parsed texture in the group carries the
// given map type.
func (g *Group) HasMapType(m MapType) bool {
	for _, rec := range g.Textures {
		if parsed, ok := rec.Parsed(); ok && parsed.MapType == m {
			return true
		}
	}
	return false
}
