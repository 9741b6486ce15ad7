package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/martinize/internal/fixture"
)

func TestFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"input", "top", "cg", "index", "nmap", "bmap", "ss", "dssp", "ssc", "ff", "nt", "cb", "cys",
		"merge", "link", "multi", "elastic", "ef", "el", "eu", "ea", "ep", "em", "eb", "type", "posres", "pf", "name", "sep",
		"collagen", "ed", "plot", "his"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	for _, name := range []string{"config", "log-level", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "f", cmd.Flags().Lookup("input").Shorthand)
	assert.Equal(t, "o", cmd.Flags().Lookup("top").Shorthand)
	assert.Equal(t, "x", cmd.Flags().Lookup("cg").Shorthand)
	assert.Equal(t, "n", cmd.Flags().Lookup("index").Shorthand)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdb")
	require.NoError(t, os.WriteFile(in, []byte(fixture.PDB(fixture.Peptide('A', 1, []string{"ALA", "CYS", "LEU"}, [3]float64{}))), 0644))
	topol := filepath.Join(dir, "system.top")
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"-f", in, "-o", topol, "-x", filepath.Join(dir, "cg.gro"), "--ss", "CEE", "--cys", "auto", "--log-level", "error"})
	require.NoError(t, cmd.Execute())

	b, err := os.ReadFile(filepath.Join(dir, "Protein_A.itp"))
	require.NoError(t, err)
	itp := string(b)
	assert.Contains(t, itp, "; Using the following options:")
	assert.Contains(t, itp, "--ss CEE")
	assert.Contains(t, itp, "Protein_A ")
	b, err = os.ReadFile(filepath.Join(dir, "cg.gro"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	//title, count, 5 beads and the box
	assert.Len(t, lines, 8)
	assert.Equal(t, "5", strings.TrimSpace(lines[1]))
}

func TestRunErrors(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--ff", "martini22"})
	assert.ErrorContains(t, cmd.Execute(), "no input")

	cmd = NewRootCommand()
	cmd.SetArgs([]string{"-f", filepath.Join(t.TempDir(), "missing.pdb"), "--log-level", "error"})
	assert.Error(t, cmd.Execute())

	cmd = NewRootCommand()
	cmd.SetArgs([]string{"-f", "a.pdb", "extra"})
	assert.Error(t, cmd.Execute())
}
