// Package config resolves the simulation configuration for the command line
// tools. Values are layered as preset, then file, then key=value overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"diffract/internal/diffraction"

	"github.com/spf13/viper"
)

// Environment variables consulted when the matching flag is empty.
const (
	EnvConfig   = "DIFFRACT_CONFIG"
	EnvPreset   = "DIFFRACT_PRESET"
	EnvLogLevel = "DIFFRACT_LOG_LEVEL"
)

// EnvPrefix namespaces the environment variables read through viper.
const EnvPrefix = "DIFFRACT"

// Setting keys shared by flags, environment variables and defaults.
const (
	KeyConfig   = "config"
	KeyPreset   = "preset"
	KeyLogLevel = "log-level"
)

// DefaultPreset is used when neither a flag nor the environment names one.
const DefaultPreset = "default"

// DefaultLogLevel is used when neither a flag nor the environment sets one.
const DefaultLogLevel = "info"

// NewViper returns a viper instance resolving the setting keys from
// DIFFRACT_* environment variables, then defaults. Flags bound with
// BindPFlag take precedence over both.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyPreset, DefaultPreset)
	v.SetDefault(KeyConfig, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	return v
}

// Sources lists where a run's configuration comes from.
type Sources struct {
	Preset    string
	File      string
	Overrides KVList
}

// SourcesFrom reads the preset and file settings from v.
func SourcesFrom(v *viper.Viper, overrides KVList) Sources {
	return Sources{
		Preset:    v.GetString(KeyPreset),
		File:      v.GetString(KeyConfig),
		Overrides: overrides,
	}
}

// FillFromEnv resolves empty fields from the environment, then defaults.
func (s *Sources) FillFromEnv() {
	v := NewViper()
	if s.Preset == "" {
		s.Preset = v.GetString(KeyPreset)
	}
	if s.File == "" {
		s.File = v.GetString(KeyConfig)
	}
}

// LogLevel returns flagValue when set, else DIFFRACT_LOG_LEVEL, else the
// default level.
func LogLevel(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return NewViper().GetString(KeyLogLevel)
}

// Load reads a YAML or JSON configuration file on top of the defaults.
func Load(path string) (diffraction.Config, error) {
	return LoadOver(diffraction.DefaultConfig(), path)
}

// LoadOver reads a YAML or JSON configuration file on top of base.
func LoadOver(base diffraction.Config, path string) (diffraction.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return diffraction.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := diffraction.DecodeConfigOver(base, data)
	if err != nil {
		return diffraction.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve builds and validates the configuration described by src.
func Resolve(src Sources) (diffraction.Config, error) {
	name := src.Preset
	if name == "" {
		name = DefaultPreset
	}
	cfg, err := diffraction.Preset(name)
	if err != nil {
		return diffraction.Config{}, err
	}
	if src.File != "" {
		if cfg, err = LoadOver(cfg, src.File); err != nil {
			return diffraction.Config{}, err
		}
	}
	cfg = diffraction.Apply(cfg, src.Overrides.Map())
	if err := cfg.Validate(); err != nil {
		return diffraction.Config{}, err
	}
	return cfg, nil
}

// KVList collects repeated key=value flags. It satisfies both flag.Value
// and pflag.Value.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

func (l *KVList) Type() string { return "key=value" }

// Map returns the pairs keyed by their trimmed key. Later pairs win.
func (l KVList) Map() map[string]string {
	if len(l) == 0 {
		return nil
	}
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}
