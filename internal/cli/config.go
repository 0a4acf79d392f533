package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/matzehuels/sia/pkg/errors"
	"github.com/matzehuels/sia/pkg/theme"
)

// Environment variables read by the render command.
const (
	envFont       = "SIA_FONT"
	envOutput     = "SIA_OUT_FILE"
	envDimensions = "SIA_DIMENSIONS"
	envFontSize   = "SIA_FONT_SIZE"
	envTheme      = "SIA_THEME"
	envBgColor    = "SIA_BG_COLOR"
	envFgColor    = "SIA_FG_COLOR"
	envBgAlpha    = "SIA_BG_ALPHA"
	envFgAlpha    = "SIA_FG_ALPHA"
)

// Config is the TOML config file.
//
//	font = "/usr/share/fonts/TTF/Hack-Regular.ttf"
//	font_size = "18"
//	theme = "dracula"
//	formats = ["svg", "png"]
//
//	[themes.paper]
//	background = "#FAFAFA"
//	foreground = "#383A42"
type Config struct {
	Font        string                      `toml:"font"`
	Output      string                      `toml:"output"`
	Size        string                      `toml:"size"`
	FontSize    string                      `toml:"font_size"`
	Theme       string                      `toml:"theme"`
	BgColor     string                      `toml:"bg_color"`
	FgColor     string                      `toml:"fg_color"`
	BgAlpha     *float64                    `toml:"bg_alpha"`
	FgAlpha     *float64                    `toml:"fg_alpha"`
	Syntax      string                      `toml:"syntax"`
	Formats     []string                    `toml:"formats"`
	Radius      float64                     `toml:"radius"`
	Approximate bool                        `toml:"approximate"`
	EmbedFont   bool                        `toml:"embed_font"`
	NoCache     bool                        `toml:"no_cache"`
	Themes      map[string]theme.Definition `toml:"themes"`
}

// loadConfig reads the config file at path. With an empty path the default
// location is tried and a missing file yields an empty config; an explicit
// path must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}

// themeSet builds the theme set with the config's custom themes.
func (cfg Config) themeSet() (*theme.Set, error) {
	return theme.NewSet(cfg.Themes)
}

// resolver picks each setting from the first source that has it:
// a flag the user set, the environment, the config file, the default.
type resolver struct {
	flags *pflag.FlagSet
}

// str resolves a string setting.
func (r resolver) str(flag, flagVal, env, cfgVal, def string) string {
	if r.flags != nil && r.flags.Changed(flag) {
		return flagVal
	}
	if env != "" {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	if cfgVal != "" {
		return cfgVal
	}
	return def
}

// float resolves a float setting kept as text until parsed.
func (r resolver) float(flag, flagVal, env string, cfgVal *float64) string {
	var c string
	if cfgVal != nil {
		c = strconv.FormatFloat(*cfgVal, 'f', -1, 64)
	}
	return r.str(flag, flagVal, env, c, "")
}

// boolean resolves a flag-or-config switch.
func (r resolver) boolean(flag string, flagVal, cfgVal bool) bool {
	if r.flags != nil && r.flags.Changed(flag) {
		return flagVal
	}
	return cfgVal || flagVal
}
