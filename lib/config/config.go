// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Section names.
const (
	Keys  = "keys"
	Sites = "sites"
	Files = "files"
)

// Sections lists the section names in file order.
var Sections = []string{Keys, Sites, Files}

// Environment variables.
const (
	PathVariable        = "CLAY_CONFIG"
	DefaultKeyVariable  = "CLAY_DEFAULT_KEY"
	DefaultSiteVariable = "CLAY_DEFAULT_SITE"
)

// FileName is the store's name in the home directory.
const FileName = ".clayconfig"

// Config is the alias store.
type Config struct {
	Keys  map[string]string `yaml:"keys,omitempty"`
	Sites map[string]string `yaml:"sites,omitempty"`
	Files map[string]string `yaml:"files,omitempty"`

	path string
}

// DefaultPath returns the store location: CLAY_CONFIG, or FileName in
// the home directory.
func DefaultPath() (string, error) {
	if path := os.Getenv(PathVariable); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating %s: %w; set %s instead", FileName, err, PathVariable)
	}
	return filepath.Join(home, FileName), nil
}

// Load loads the store from [DefaultPath].
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads the store at path. A missing file yields an empty
// store that saves to path.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the file the store loads from and saves to.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) section(name string) (*map[string]string, bool) {
	switch name {
	case Keys:
		return &c.Keys, true
	case Sites:
		return &c.Sites, true
	case Files:
		return &c.Files, true
	default:
		return nil, false
	}
}

// Section returns a copy of the named section.
func (c *Config) Section(name string) (map[string]string, error) {
	section, ok := c.section(name)
	if !ok {
		return nil, fmt.Errorf("Cannot get %s: Unknown section %q", name, name)
	}
	return maps.Clone(*section), nil
}

// IsSection reports whether name is a section name.
func IsSection(name string) bool {
	return slices.Contains(Sections, name)
}

// Get returns the value of "section.name". ok is false when the alias
// is not defined; an unknown section is an error.
func (c *Config) Get(alias string) (value string, ok bool, err error) {
	sectionName, name, _ := strings.Cut(alias, ".")
	section, known := c.section(sectionName)
	if !known {
		return "", false, fmt.Errorf("Cannot get %s: Unknown section %q", alias, sectionName)
	}
	value, ok = (*section)[name]
	return value, ok && value != "", nil
}

// Set stores value under "section.name". Relative file paths are made
// absolute against the working directory.
func (c *Config) Set(alias, value string) error {
	sectionName, name, _ := strings.Cut(alias, ".")
	section, known := c.section(sectionName)
	if !known {
		return fmt.Errorf("Cannot save %s: Unknown section %q", alias, sectionName)
	}
	if name == "" {
		return fmt.Errorf("Cannot save %s: missing alias name", alias)
	}
	if sectionName == Files && !strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "~") {
		absolute, err := filepath.Abs(value)
		if err != nil {
			return fmt.Errorf("Cannot save %s: %w", alias, err)
		}
		value = absolute
	}
	if *section == nil {
		*section = make(map[string]string)
	}
	(*section)[name] = value
	return nil
}

// Save writes the store to its path with owner-only permissions,
// since keys are credentials.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no path")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o600)
}

// Key resolves a key alias. An unknown alias is taken to be the key
// itself; an empty name falls back to CLAY_DEFAULT_KEY.
func (c *Config) Key(name string) string {
	if name == "" {
		return os.Getenv(DefaultKeyVariable)
	}
	if value, ok, _ := c.Get(Keys + "." + name); ok {
		return value
	}
	return name
}

// Site resolves a site alias and normalizes the result. An unknown
// alias is taken to be the site URL; an empty name falls back to
// CLAY_DEFAULT_SITE.
func (c *Config) Site(name string) string {
	if name == "" {
		if fallback := os.Getenv(DefaultSiteVariable); fallback != "" {
			return NormalizeSite(fallback)
		}
		return ""
	}
	if value, ok, _ := c.Get(Sites + "." + name); ok {
		return NormalizeSite(value)
	}
	return NormalizeSite(name)
}

// File resolves a file alias and expands the resulting path.
func (c *Config) File(name string) string {
	if value, ok, _ := c.Get(Files + "." + name); ok {
		return NormalizeFilepath(value)
	}
	return NormalizeFilepath(name)
}

var insecurePrefix = regexp.MustCompile(`(?i)^(?:http://|//)`)

// NormalizeSite adds http:// to URLs that are not https and removes one
// trailing slash.
func NormalizeSite(url string) string {
	if !strings.Contains(url, "https://") {
		url = "http://" + insecurePrefix.ReplaceAllString(url, "")
	}
	return strings.TrimSuffix(url, "/")
}

// NormalizeFilepath expands a leading "~" and ${VAR} patterns, then
// cleans the path.
func NormalizeFilepath(path string) string {
	if path == "" {
		return ""
	}
	if rest, found := strings.CutPrefix(path, "~"); found {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + rest
		}
	}
	return filepath.Clean(expandVars(path))
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} from the environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}
