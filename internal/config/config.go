package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "PODMETA"

// setting keys as they appear in the settings file
const (
	KeyDefaultSegmentDurationMS = "default_segment_duration_ms"
	KeyProvider                 = "provider"
	KeyModel                    = "model"
	KeyCommand                  = "command"
	KeyOutputDir                = "output_dir"
	KeyConcurrency              = "concurrency"
	KeyMaxWarnings              = "max_warnings"
	KeyMaxTranscriptChars       = "max_transcript_chars"
	KeyManifestFormat           = "manifest_format"
)

var defaults = map[string]any{
	KeyDefaultSegmentDurationMS: 5000,
	KeyProvider:                 "gemini",
	KeyModel:                    "",
	KeyCommand:                  "",
	KeyOutputDir:                "",
	KeyConcurrency:              3,
	KeyMaxWarnings:              5,
	KeyMaxTranscriptChars:       120000,
	KeyManifestFormat:           "json",
}

var intKeys = map[string]bool{
	KeyDefaultSegmentDurationMS: true,
	KeyConcurrency:              true,
	KeyMaxWarnings:              true,
	KeyMaxTranscriptChars:       true,
}

var knownProviders = []string{"gemini", "openai", "anthropic", "command"}

// Settings are the persisted user preferences.
type Settings struct {
	DefaultSegmentDurationMS int64  `mapstructure:"default_segment_duration_ms"`
	Provider                 string `mapstructure:"provider"`
	Model                    string `mapstructure:"model"`
	Command                  string `mapstructure:"command"`
	OutputDir                string `mapstructure:"output_dir"`
	Concurrency              int    `mapstructure:"concurrency"`
	MaxWarnings              int    `mapstructure:"max_warnings"`
	MaxTranscriptChars       int    `mapstructure:"max_transcript_chars"`
	ManifestFormat           string `mapstructure:"manifest_format"`
}

// Keys returns every setting key in display order.
func Keys() []string {
	return []string{
		KeyDefaultSegmentDurationMS,
		KeyProvider,
		KeyModel,
		KeyCommand,
		KeyOutputDir,
		KeyConcurrency,
		KeyMaxWarnings,
		KeyMaxTranscriptChars,
		KeyManifestFormat,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/podmeta/config.yaml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "podmeta", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "podmeta", "config.yaml"), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Default returns the built-in settings without consulting files or env.
func Default() *Settings {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	s := &Settings{}
	_ = v.Unmarshal(s) // defaults always decode
	return s
}

// Load reads settings like Read and validates them.
func Load(path string) (*Settings, error) {
	s, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// Read reads settings from path, then applies PODMETA_* environment
// overrides. A missing file is not an error. Values are not validated, so
// a broken file can still be inspected and corrected.
func Read(path string) (*Settings, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}

// Save writes the settings to path as YAML, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	for key, value := range s.Values() {
		v.Set(key, value)
	}
	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// Values returns the settings keyed by setting name.
func (s *Settings) Values() map[string]any {
	return map[string]any{
		KeyDefaultSegmentDurationMS: s.DefaultSegmentDurationMS,
		KeyProvider:                 s.Provider,
		KeyModel:                    s.Model,
		KeyCommand:                  s.Command,
		KeyOutputDir:                s.OutputDir,
		KeyConcurrency:              s.Concurrency,
		KeyMaxWarnings:              s.MaxWarnings,
		KeyMaxTranscriptChars:       s.MaxTranscriptChars,
		KeyManifestFormat:           s.ManifestFormat,
	}
}

// Set assigns one setting from its string form.
func (s *Settings) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if _, ok := defaults[key]; !ok {
		return fmt.Errorf("unknown setting %q", key)
	}

	var n int64
	if intKeys[key] {
		var err error
		n, err = strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", key, value)
		}
	}

	next := *s
	switch key {
	case KeyDefaultSegmentDurationMS:
		next.DefaultSegmentDurationMS = n
	case KeyProvider:
		next.Provider = strings.ToLower(value)
	case KeyModel:
		next.Model = value
	case KeyCommand:
		next.Command = value
	case KeyOutputDir:
		next.OutputDir = value
	case KeyConcurrency:
		next.Concurrency = int(n)
	case KeyMaxWarnings:
		next.MaxWarnings = int(n)
	case KeyMaxTranscriptChars:
		next.MaxTranscriptChars = int(n)
	case KeyManifestFormat:
		next.ManifestFormat = strings.ToLower(value)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

func (s *Settings) Validate() error {
	if s.DefaultSegmentDurationMS <= 0 {
		return fmt.Errorf("%s must be positive", KeyDefaultSegmentDurationMS)
	}
	if !slices.Contains(knownProviders, s.Provider) {
		return fmt.Errorf("unknown provider %q (supported: %s)",
			s.Provider, strings.Join(knownProviders, ", "))
	}
	if s.Concurrency <= 0 {
		return fmt.Errorf("%s must be positive", KeyConcurrency)
	}
	if s.MaxWarnings < 0 {
		return fmt.Errorf("%s must not be negative", KeyMaxWarnings)
	}
	if s.MaxTranscriptChars <= 0 {
		return fmt.Errorf("%s must be positive", KeyMaxTranscriptChars)
	}
	if s.ManifestFormat != "json" && s.ManifestFormat != "yaml" {
		return fmt.Errorf("%s must be json or yaml, got %q",
			KeyManifestFormat, s.ManifestFormat)
	}
	return nil
}

