// Package config loads tool settings from texpack.yaml.
//
// Settings are optional overlays: a missing file yields defaults, and any
// key left out keeps its default. Environment variables take precedence
// over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/texforge/texpack/internal/profile"
	"github.com/texforge/texpack/internal/rules"
	"github.com/texforge/texpack/internal/texture"
)

// DefaultFileName is the config file texpack looks for.
const DefaultFileName = "texpack.yaml"

// Settings is the loaded tool configuration.
type Settings struct {
	// Profile is the validation profile applied when --profile is not given.
	Profile string `mapstructure:"profile"`

	// ReportDir is where reports land, relative to the scanned folder
	// unless absolute.
	ReportDir string `mapstructure:"report_dir"`

	// MaxSizeWarn and MaxSizeError override the resolution thresholds.
	MaxSizeWarn  int `mapstructure:"max_size_warn"`
	MaxSizeError int `mapstructure:"max_size_error"`

	// WatchDebounce is how long the watcher waits after the last filesystem
	// event before rescanning.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`

	// AllowedExt overrides the expected extensions per canonical map type,
	// e.g. allowed_ext: {Normal: [".png"]}.
	AllowedExt map[string][]string `mapstructure:"allowed_ext"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	t := rules.DefaultTables()
	return Settings{
		Profile:       profile.Default().Name,
		ReportDir:     "reports",
		MaxSizeWarn:   t.MaxSizeWarn,
		MaxSizeError:  t.MaxSizeError,
		WatchDebounce: 500 * time.Millisecond,
	}
}

// Load reads settings from path. A missing file (or empty path) yields the
// defaults; a malformed file is an error.
func Load(path string) (Settings, error) {
	s := DefaultSettings()

	if path == "" {
		return applyEnv(s), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return applyEnv(s), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return s, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}

	return applyEnv(s), nil
}

// FindConfig walks from dir up to the filesystem root looking for a
// texpack.yaml. Returns "" when none exists.
func FindConfig(dir string) string {
	return findUp(dir, DefaultFileName)
}

func findUp(dir, name string) string {
	for d := dir; ; d = filepath.Dir(d) {
		path := filepath.Join(d, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		if d == filepath.Dir(d) {
			return ""
		}
	}
}

// Tables produces the rule tables with this configuration's overrides
// applied. Unknown map types in allowed_ext are an error rather than being
// silently dropped.
func (s Settings) Tables() (rules.Tables, error) {
	t := rules.DefaultTables()
	if s.MaxSizeWarn > 0 {
		t.MaxSizeWarn = s.MaxSizeWarn
	}
	if s.MaxSizeError > 0 {
		t.MaxSizeError = s.MaxSizeError
	}
	for token, exts := range s.AllowedExt {
		m := texture.MapType(token)
		if !m.IsValid() {
			return t, fmt.Errorf("allowed_ext: unknown map type %q", token)
		}
		normalized := make([]string, 0, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			normalized = append(normalized, ext)
		}
		t.AllowedExtByMap[m] = normalized
	}
	return t, nil
}

func applyEnv(s Settings) Settings {
	if p := os.Getenv("TEXPACK_PROFILE"); p != "" {
		s.Profile = p
	}
	if d := os.Getenv("TEXPACK_REPORT_DIR"); d != "" {
		s.ReportDir = d
	}
	return s
}
