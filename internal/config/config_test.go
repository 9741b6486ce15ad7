package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := NewViper()
	v.Set("input", "in.pdb")
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "martini22", cfg.ForceField)
	assert.Equal(t, 0.5, cfg.SSCutoff)
	assert.Equal(t, 0.9, cfg.EU)
	assert.Equal(t, "info", cfg.LogLevel)

	o := cfg.Options("martinize -f in.pdb")
	assert.Equal(t, "in.pdb", o.Input)
	assert.Equal(t, []string{"BB"}, o.ElasticParams.Names)
	assert.Equal(t, 500.0, o.ElasticParams.FC)
	assert.Equal(t, 1.0, o.ElasticParams.Power)
	assert.Nil(t, o.PosRes)
	assert.Equal(t, 1000.0, o.PosResFC)
	assert.Equal(t, "martinize -f in.pdb", o.Arguments)
}

const yamlConfig = `
input: protein.pdb
top: out.top
ff: elnedyn22
cys:
  - auto
  - A/CYS/12,B/CYS/40
merge:
  - A,B
posres: BB,SC1
elastic: true
eb: BB,SC1
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "martinize.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0644))
	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, "protein.pdb", cfg.Input)
	assert.Equal(t, "elnedyn22", cfg.ForceField)
	assert.Equal(t, []string{"auto", "A/CYS/12,B/CYS/40"}, cfg.Cystines)
	assert.Equal(t, []string{"A,B"}, cfg.Merges)
	assert.True(t, cfg.Elastic)
	o := cfg.Options("")
	assert.Equal(t, []string{"BB", "SC1"}, o.PosRes)
	assert.Equal(t, []string{"BB", "SC1"}, o.ElasticParams.Names)

	_, err = Load(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPreset(t *testing.T) {
	v := NewViper()
	v.Set("input", "dna.pdb")
	v.Set("type", "ds-soft")
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "elnedyn22nucleic", cfg.ForceField)
	assert.Equal(t, 1.2, cfg.EU)
	assert.Equal(t, 13.0, cfg.EF)
	assert.Equal(t, "BB1,BB2,BB3,SC1", cfg.EB)
	assert.Equal(t, []string{"A,B"}, cfg.Merges)

	v = NewViper()
	v.Set("input", "dna.pdb")
	v.Set("type", "ss-stiff")
	v.Set("eu", 1.5)
	cfg, err = Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.EU)
	assert.Equal(t, 500.0, cfg.EF)
	assert.Empty(t, cfg.Merges)

	assert.Equal(t, []string{"ds-soft", "ds-stiff", "ss", "ss-soft", "ss-soft-two", "ss-stiff"}, Types())
}

func TestEnv(t *testing.T) {
	t.Setenv("MARTINIZE_INPUT", "env.gro")
	t.Setenv("MARTINIZE_LOG_LEVEL", "debug")
	t.Setenv("MARTINIZE_NT", "true")
	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "env.gro", cfg.Input)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.NeutralTermini)
	assert.Equal(t, "debug", cfg.LogConfig().Level)
}

func TestValidate(t *testing.T) {
	v := NewViper()
	v.Set("ff", "martini99")
	v.Set("ssc", 2)
	v.Set("type", "triple")
	v.Set("log-format", "xml")
	_, err := Load(v, "")
	require.Error(t, err)
	for _, s := range []string{"no input", "martini99", "ssc", "triple", "xml"} {
		assert.Contains(t, err.Error(), s)
	}
	v = NewViper()
	v.Set("input", "a.pdb")
	v.Set("el", 1.0)
	_, err = Load(v, "")
	assert.ErrorContains(t, err, "lower cutoff")
}
