package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/texforge/texpack/internal/naming"
	"github.com/texforge/texpack/internal/profile"
)

// DefaultOverlayName is the tables overlay file texpack looks for.
const DefaultOverlayName = "tables.yaml"

// Overlay extends the built-in naming and profile tables. It is loaded from
// an optional tables.yaml and merged additively: overlays can add alias
// spellings and engine profiles but never redefine built-in ones. The zero
// value is a no-op overlay.
type Overlay struct {
	// Aliases adds map-type spellings, e.g. {bc: BaseColor}.
	Aliases map[string]string `yaml:"aliases"`

	// Profiles declares additional engine profiles.
	Profiles []overlayProfile `yaml:"profiles"`
}

type overlayProfile struct {
	Name             string `yaml:"name"`
	RequireORM       bool   `yaml:"require_orm"`
	AllowSeparateRMA bool   `yaml:"allow_separate_rma"`
	AllowEXR         bool   `yaml:"allow_exr"`
}

// LoadOverlay reads a tables overlay from path. A missing file (or empty
// path) yields the zero overlay; unknown keys are an error so typos surface
// instead of silently doing nothing.
func LoadOverlay(path string) (Overlay, error) {
	var o Overlay
	if path == "" {
		return o, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return o, nil
	}
	if err != nil {
		return o, fmt.Errorf("read tables %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return Overlay{}, fmt.Errorf("parse tables %s: %w", path, err)
	}
	return o, nil
}

// FindOverlay walks from dir up to the filesystem root looking for a
// tables.yaml. Returns "" when none exists.
func FindOverlay(dir string) string {
	return findUp(dir, DefaultOverlayName)
}

// Grammar builds the filename grammar with this overlay's aliases merged in.
func (o Overlay) Grammar() (naming.Grammar, error) {
	aliases, err := naming.DefaultAliases().Extend(o.Aliases)
	if err != nil {
		return naming.Grammar{}, err
	}
	return naming.Grammar{Aliases: aliases}, nil
}

// ProfileList returns the built-in profiles followed by this overlay's
// custom ones.
func (o Overlay) ProfileList() ([]profile.Profile, error) {
	extra := make([]profile.Profile, len(o.Profiles))
	for i, p := range o.Profiles {
		extra[i] = profile.Profile{
			Name:             p.Name,
			RequireORM:       p.RequireORM,
			AllowSeparateRMA: p.AllowSeparateRMA,
			AllowEXR:         p.AllowEXR,
		}
	}
	return profile.Merge(extra)
}
