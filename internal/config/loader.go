package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/rmera/martinize/top"
)

// envPrefix is the prefix of the environment variables read.
const envPrefix = "MARTINIZE"

// Defaults used when no other source gives a value.
const (
	DefaultForceField = "martini22"
	DefaultSSCutoff   = 0.5
	DefaultEF         = 500
	DefaultEU         = 0.9
	DefaultEP         = 1
	DefaultEB         = "BB"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

// preset holds the settings implied by a topology type.
type preset struct {
	ff     string
	eu, ef float64
	eb     string
	merge  string //merge group added to those given
}

// presets are the topology types for nucleic acids (single or double strand,
// stiff or soft elastic network).
var presets = map[string]preset{
	"ss":          {ff: "martini22nucleic"},
	"ds-stiff":    {"elnedyn22nucleic", 1.0, 500, "BB1,BB2,BB3,SC1,SC2,SC3,SC4", "A,B"},
	"ds-soft":     {"elnedyn22nucleic", 1.2, 13, "BB1,BB2,BB3,SC1", "A,B"},
	"ss-stiff":    {"elnedyn22nucleic", 1.0, 500, "BB1,BB2,BB3,SC1,SC2,SC3,SC4", ""},
	"ss-soft":     {"elnedyn22nucleic", 1.2, 13, "BB1,BB2,BB3,SC1", ""},
	"ss-soft-two": {"elnedyn22nucleic", 1.0, 13, "BB1,BB2,BB3,SC1,SC2,SC3,SC4", ""},
}

// Types returns the names of the topology types, sorted.
func Types() []string {
	ret := make([]string, 0, len(presets))
	for k := range presets {
		ret = append(ret, k)
	}
	slices.Sort(ret)
	return ret
}

// NewViper returns a Viper reading YAML files and MARTINIZE_* environment
// variables (MARTINIZE_LOG_LEVEL for log-level), with the defaults set.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// SetDefaults sets the default of every setting in v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ff", DefaultForceField)
	v.SetDefault("ssc", DefaultSSCutoff)
	v.SetDefault("ef", DefaultEF)
	v.SetDefault("eu", DefaultEU)
	v.SetDefault("ep", DefaultEP)
	v.SetDefault("eb", DefaultEB)
	v.SetDefault("posres", "none")
	v.SetDefault("pf", top.DefaultPosResFC)
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("log-format", DefaultLogFormat)
	//AutomaticEnv only affects keys viper knows about.
	for _, k := range []string{"input", "top", "cg", "index", "nmap", "bmap", "plot", "ss", "dssp", "collagen", "type",
		"nt", "cb", "ed", "cys", "merge", "link", "multi", "his", "elastic", "el", "ea", "em", "bucket", "name", "sep"} {
		v.SetDefault(k, nil)
	}
}

// Load reads the YAML file path, if not empty, into v, applies the
// preset for the topology type and validates the result. Values set
// explicitly in any source take precedence over the preset.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", path, err)
		}
	}
	p, hasPreset := presets[v.GetString("type")]
	if hasPreset {
		v.SetDefault("ff", p.ff)
		if p.eu > 0 {
			v.SetDefault("eu", p.eu)
			v.SetDefault("ef", p.ef)
			v.SetDefault("eb", p.eb)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if hasPreset && p.merge != "" && !slices.Contains(cfg.Merges, p.merge) {
		cfg.Merges = append(cfg.Merges, p.merge)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}
