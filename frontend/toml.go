// Package frontend reads the anpylar.toml configuration of a project.
package frontend

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const ConfigFile = "anpylar.toml"

var ErrUnknownField = errors.New("unknown configuration field")

type BundleConfig struct {
	Output        string `toml:"output" validate:"required"`
	Runtime       string `toml:"runtime"`
	Stdlib        string `toml:"stdlib"`
	Shim          string `toml:"shim"`
	Framework     string `toml:"framework"`
	FrameworkAuto bool   `toml:"framework_auto"`
	Anpylarize    bool   `toml:"anpylarize"`
	Debug         bool   `toml:"debug"`
	Optimize      bool   `toml:"optimize"`
	Gzip          bool   `toml:"gzip"`
}

type PaketConfig struct {
	Extensions   []string `toml:"extensions" validate:"dive,startswith=."`
	Minify       bool     `toml:"minify"`
	KeepHeaders  bool     `toml:"keep_headers"`
	MinifyAssets bool     `toml:"minify_assets"`
	Format       string   `toml:"format" validate:"oneof=raw variable autoload"`
	Variable     string   `toml:"variable"`
	Indent       int      `toml:"indent" validate:"gte=0,lte=8"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type Config struct {
	Bundle BundleConfig `toml:"bundle"`
	Paket  PaketConfig  `toml:"paket"`
	Cache  CacheConfig  `toml:"cache"`
}

func DefaultConfig() Config {
	return Config{
		Bundle: BundleConfig{
			Output:     "anpylar.js",
			Anpylarize: true,
		},
		Paket: PaketConfig{
			Extensions:  []string{".py", ".js", ".html", ".css"},
			Minify:      true,
			KeepHeaders: true,
			Format:      "autoload",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// HandleAnpylarToml decodes tomlContent over the defaults. Keys the
// configuration does not know are rejected.
func HandleAnpylarToml(tomlContent string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(tomlContent, &cfg)
	if err != nil {
		return cfg, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(keys, ", "))
	}
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig reads the configuration at path. A missing file yields the
// defaults unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}
	cfg, err := HandleAnpylarToml(string(data))
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
