// Package config assembles the settings of a martinize run from a YAML file,
// MARTINIZE_* environment variables and command line flags, and turns them
// into pipeline options.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rmera/martinize/elastic"
	"github.com/rmera/martinize/ff"
	"github.com/rmera/martinize/internal/logging"
	"github.com/rmera/martinize/pipeline"
)

// Config holds every setting. The mapstructure keys are the names of the
// command line flags, which are also the keys of the YAML file.
type Config struct {
	Input string `mapstructure:"input"`
	Top   string `mapstructure:"top"`
	CG    string `mapstructure:"cg"`
	Index string `mapstructure:"index"`
	NMap  string `mapstructure:"nmap"`
	BMap  string `mapstructure:"bmap"`
	Plot  string `mapstructure:"plot"`

	SS       string  `mapstructure:"ss"`
	DSSP     string  `mapstructure:"dssp"`
	SSCutoff float64 `mapstructure:"ssc"`
	Collagen bool    `mapstructure:"collagen"`

	ForceField        string   `mapstructure:"ff"`
	Type              string   `mapstructure:"type"`
	NeutralTermini    bool     `mapstructure:"nt"`
	ChargesAtBreaks   bool     `mapstructure:"cb"`
	ExtendedDihedrals bool     `mapstructure:"ed"`
	Cystines          []string `mapstructure:"cys"`
	Merges            []string `mapstructure:"merge"`
	Links             []string `mapstructure:"link"`
	Multi             []string `mapstructure:"multi"`
	His               []string `mapstructure:"his"`

	Elastic   bool    `mapstructure:"elastic"`
	EF        float64 `mapstructure:"ef"`
	EL        float64 `mapstructure:"el"`
	EU        float64 `mapstructure:"eu"`
	EA        float64 `mapstructure:"ea"`
	EP        float64 `mapstructure:"ep"`
	EM        float64 `mapstructure:"em"`
	EB        string  `mapstructure:"eb"`
	Bucketing bool    `mapstructure:"bucket"`

	PosRes   string  `mapstructure:"posres"`
	PosResFC float64 `mapstructure:"pf"`
	Name     string  `mapstructure:"name"`
	Separate bool    `mapstructure:"sep"`

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
}

// Validate checks the settings for values the pipeline can't work with.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, errors.New("no input structure given"))
	}
	if c.SSCutoff <= 0 || c.SSCutoff > 1 {
		errs = append(errs, fmt.Errorf("ssc must be in (0,1], got %g", c.SSCutoff))
	}
	if _, err := ff.GetFamily(c.ForceField); err != nil {
		errs = append(errs, err)
	}
	if _, ok := presets[c.Type]; !ok && c.Type != "" && c.Type != "ignore" {
		errs = append(errs, fmt.Errorf("unknown topology type %q", c.Type))
	}
	if c.EU <= 0 {
		errs = append(errs, fmt.Errorf("elastic upper cutoff must be positive, got %g", c.EU))
	}
	if c.EL > c.EU {
		errs = append(errs, fmt.Errorf("elastic lower cutoff %g above the upper one %g", c.EL, c.EU))
	}
	if c.EF < 0 || c.EM < 0 {
		errs = append(errs, errors.New("elastic force constants can't be negative"))
	}
	if c.PosResFC <= 0 {
		errs = append(errs, fmt.Errorf("position restraint force constant must be positive, got %g", c.PosResFC))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// LogConfig returns the settings for the logger.
func (c *Config) LogConfig() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: c.LogFormat}
}

func list(s string) []string {
	ret := make([]string, 0, 4)
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			ret = append(ret, v)
		}
	}
	return ret
}

// posres translates the posres setting to the bead selection of the builder.
func (c *Config) posres() []string {
	switch strings.ToLower(strings.TrimSpace(c.PosRes)) {
	case "", "none":
		return nil
	case "all":
		return []string{"all"}
	case "backbone":
		return []string{"backbone"}
	}
	return list(c.PosRes)
}

// Options returns the pipeline options for c. arguments is the command line,
// for the topology headers.
func (c *Config) Options(arguments string) pipeline.Options {
	o := pipeline.DefaultOptions()
	o.Input, o.Top, o.CG, o.Index, o.NMap, o.BMap, o.Plot = c.Input, c.Top, c.CG, c.Index, c.NMap, c.BMap, c.Plot
	o.SS, o.DSSP, o.SSCutoff, o.Collagen = c.SS, c.DSSP, c.SSCutoff, c.Collagen
	o.ForceField = c.ForceField
	o.NeutralTermini, o.ChargesAtBreaks, o.ExtendedDihedrals = c.NeutralTermini, c.ChargesAtBreaks, c.ExtendedDihedrals
	o.Cystines = append([]string(nil), c.Cystines...)
	o.Merges = append([]string(nil), c.Merges...)
	o.Links = append([]string(nil), c.Links...)
	o.Multi = append([]string(nil), c.Multi...)
	o.His = append([]string(nil), c.His...)
	o.Elastic = c.Elastic
	o.ElasticParams = elastic.Params{FC: c.EF, MinFC: c.EM, Lower: c.EL, Upper: c.EU, Rate: c.EA, Power: c.EP, Names: list(c.EB), Bucketing: c.Bucketing}
	o.PosRes, o.PosResFC = c.posres(), c.PosResFC
	o.Name, o.Separate = c.Name, c.Separate
	o.Arguments = arguments
	return o
}
