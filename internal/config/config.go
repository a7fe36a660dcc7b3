package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Setting keys shared by the config file, FOLDERMAP_* variables and flags.
const (
	KeyDatabase        = "database"
	KeyFormat          = "format"
	KeyOrder           = "order"
	KeyUnsorted        = "unsorted"
	KeyNormalize       = "normalize"
	KeyYearPlaceholder = "year-placeholder"
)

// EnvPrefix is prepended to every setting key when read from the environment.
const EnvPrefix = "FOLDERMAP"

// Config is the effective report configuration.
type Config struct {
	Database        string `json:"database,omitempty" mapstructure:"database"         yaml:"database,omitempty"`
	Format          string `json:"format"             mapstructure:"format"           yaml:"format"`
	Order           string `json:"order"              mapstructure:"order"            yaml:"order"`
	Unsorted        bool   `json:"unsorted"           mapstructure:"unsorted"         yaml:"unsorted"`
	Normalize       string `json:"normalize"          mapstructure:"normalize"        yaml:"normalize"`
	YearPlaceholder string `json:"year_placeholder"   mapstructure:"year-placeholder" yaml:"year-placeholder"`

	// Source is the config file that was read, if any.
	Source string `json:"source,omitempty" mapstructure:"-" yaml:"-"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Format:          "text",
		Order:           "name",
		Unsorted:        true,
		Normalize:       "ascii",
		YearPlaceholder: "",
	}
}

// New creates a viper instance preloaded with defaults and environment binding.
// Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyDatabase, d.Database)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyOrder, d.Order)
	v.SetDefault(KeyUnsorted, d.Unsorted)
	v.SetDefault(KeyNormalize, d.Normalize)
	v.SetDefault(KeyYearPlaceholder, d.YearPlaceholder)

	// FOLDERMAP_YEAR_PLACEHOLDER maps to year-placeholder
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and returns the effective configuration.
// An explicit path must exist; the default path is optional.
func Load(v *viper.Viper, path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = File()
	}

	source := ""
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		err := v.ReadInConfig()
		switch {
		case err == nil:
			source = v.ConfigFileUsed()
		case !explicit && isNotExist(err):
			// no config file is fine
		default:
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Source = source
	return cfg, nil
}

// isNotExist reports whether a viper read error means the file is absent.
func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// YAML renders the configuration the way it would appear in config.yaml.
func (c Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(data), nil
}
