/*
 * pipeline_test.go, part of martinize
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	martini "github.com/rmera/martinize"
	"github.com/rmera/martinize/internal/fixture"
	"github.com/rmera/martinize/internal/logging"
	"github.com/rmera/martinize/top"
)

// system writes a PDB file with two identical peptides, 30 A apart, and a water
// molecule, and returns its name.
func system(t *testing.T, dy float64, names ...string) string {
	t.Helper()
	atoms := fixture.Peptide('A', 1, names, [3]float64{0, 0, 0})
	b := fixture.Peptide('B', 1, names, [3]float64{0, dy, 0})
	var pdb strings.Builder
	pdb.WriteString("TITLE     two peptides\n")
	pdb.WriteString(fixture.PDB(atoms))
	pdb.WriteString(fixture.PDB(b))
	w := []martini.Atom{{Name: "OW", ResName: "SOL", ResID: martini.NewResID(1), Chain: 'W', Pos: [3]float64{20, 20, 20}}}
	pdb.WriteString(fixture.PDB(w))
	name := filepath.Join(t.TempDir(), "in.pdb")
	require.NoError(t, os.WriteFile(name, []byte(pdb.String()), 0644))
	return name
}

func options(in string) Options {
	dir := filepath.Dir(in)
	o := DefaultOptions()
	o.Input = in
	o.Top = filepath.Join(dir, "topol.top")
	o.CG = filepath.Join(dir, "cg.pdb")
	o.Index = filepath.Join(dir, "index.ndx")
	o.NMap = filepath.Join(dir, "map.ndx")
	o.BMap = filepath.Join(dir, "bonded")
	return o
}

func read(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	return string(b)
}

func TestRun(t *testing.T) {
	in := system(t, 30, "ALA", "LYS", "ALA")
	o := options(in)
	core, logs := observer.New(zapcore.InfoLevel)
	P, err := New(o, logging.NewFromCore(core))
	require.NoError(t, err)
	R, err := P.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, R.Frames)
	require.Len(t, R.Chains, 2)
	require.Len(t, R.Molecules, 2)
	require.Len(t, R.Types, 1)
	assert.Equal(t, "Protein_A", R.Molecules[1].Name)
	assert.Equal(t, []string{"B"}, R.Molecules[1].Chains)
	assert.Equal(t, "CCCCCC", R.SS)
	assert.NotZero(t, logs.FilterMessage("Removing water molecules").Len())
	assert.NotZero(t, logs.FilterMessage("No secondary structure or determination method given. Protein chains will be set to coil").Len())

	topol := read(t, o.Top)
	assert.Equal(t, 1, strings.Count(topol, `#include "Protein_A.itp"`))
	assert.Contains(t, topol, "Martini system from "+in)
	assert.Contains(t, topol, "Protein_A \t 1\nProtein_A \t 1\n")
	assert.NotContains(t, topol, "RUBBER_BANDS")

	f, err := os.Open(filepath.Join(filepath.Dir(in), "Protein_A.itp"))
	require.NoError(t, err)
	defer f.Close()
	T, err := top.ReadITP(f)
	require.NoError(t, err)
	assert.Equal(t, "Protein_A", T.Name)
	assert.Equal(t, 5, T.Len())

	cg := read(t, o.CG)
	assert.Equal(t, 10, strings.Count(cg, "ATOM  "))
	assert.Equal(t, 2, strings.Count(cg, "TER\n"))
	assert.Contains(t, cg, "ENDMDL")

	ndx := read(t, o.Index)
	assert.Contains(t, ndx, "\n[ AA ]\n")
	assert.Contains(t, ndx, "\n[ CG ]\n     1      2")
	assert.Contains(t, ndx, "    10")

	nmap := read(t, o.NMap)
	assert.True(t, strings.HasPrefix(nmap, "[ Bead 1 of residue 1 ]\n1 "), nmap)
	assert.Equal(t, 10, strings.Count(nmap, "[ Bead "))
	assert.Contains(t, nmap, "[ Bead 3 of residue 2 ]")
	assert.Contains(t, nmap, "of residue 6 ]")

	bonds := read(t, o.BMap+"-bonds.ndx")
	assert.Contains(t, bonds, "[BB-bond-1-2]\n 1 2\n")
	assert.Contains(t, read(t, o.BMap+"-angles.ndx"), "[BBB-angle-1-2-5]")
	assert.Len(t, R.Files, 8)
}

func TestRunMerge(t *testing.T) {
	in := system(t, 5, "ALA", "ALA", "ALA")
	o := options(in)
	o.Merges = []string{"all"}
	o.Elastic = true
	o.Plot = filepath.Join(filepath.Dir(in), "fig")
	P, err := New(o, nil)
	require.NoError(t, err)
	R, err := P.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, R.Molecules, 1)
	m := R.Molecules[0]
	assert.Equal(t, "Protein_A+Protein_B", m.Name)
	assert.Equal(t, 6, m.Atoms)
	assert.Len(t, m.Elastic, 2)
	topol := read(t, o.Top)
	assert.Contains(t, topol, "#define RUBBER_BANDS")
	assert.Contains(t, topol, "Protein_A+Protein_B \t 1\n")
	for _, v := range []string{"fig_ss_Protein_A.png", "fig_ss_Protein_B.png", "fig_elastic_Protein_A_Protein_B.png"} {
		_, err := os.Stat(filepath.Join(filepath.Dir(in), v))
		assert.NoError(t, err, v)
	}
}

func TestRunSeparate(t *testing.T) {
	in := system(t, 30, "ALA", "GLY")
	o := options(in)
	o.Separate = true
	o.SS = "HE"
	P, err := New(o, nil)
	require.NoError(t, err)
	R, err := P.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, R.Types, 2)
	assert.Equal(t, "Protein_A", R.Types[0].Name)
	assert.Equal(t, "Protein_B", R.Types[1].Name)
	//the string covers the first chain only, the second one is coil
	assert.Equal(t, "HECC", R.SS)
	assert.Contains(t, read(t, o.Top), "Protein_A \t 1\nProtein_B \t 1\n")
}

func TestConsensus(t *testing.T) {
	P, err := New(DefaultOptions(), nil)
	require.NoError(t, err)
	chains := []*martini.Chain{
		fixture.Chain("A", fixture.Peptide('A', 1, fixture.Repeat("ALA", 3), [3]float64{})),
		fixture.Chain("B", fixture.Peptide('B', 1, fixture.Repeat("ALA", 3), [3]float64{0, 30, 0})),
	}
	total := P.consensus(chains, []string{"HHHCCC", "HHHEEE", "HHHEEE"})
	assert.Equal(t, "HHHEEE", total)
	assert.Equal(t, "HHH", chains[0].SSClass)
	assert.Equal(t, "EEE", chains[1].SSClass)
	total = P.consensus(chains, []string{"HHHCCC", "HHHEEE"})
	assert.Equal(t, "HHH   ", total)
	assert.Equal(t, "CCC", chains[1].SSClass)
	//a short consensus leaves the rest as coil
	P.consensus(chains, []string{"EEEE"})
	assert.Equal(t, "EEE", chains[0].SSClass)
	assert.Equal(t, "ECC", chains[1].SS)
	assert.Len(t, chains[1].SSClass, 3)
}

func TestNewErrors(t *testing.T) {
	o := DefaultOptions()
	o.ForceField = "martini99"
	_, err := New(o, nil)
	assert.Error(t, err)
	o = DefaultOptions()
	o.Links = []string{"A/ALA/1/BB"}
	_, err = New(o, nil)
	assert.Error(t, err)
	o = DefaultOptions()
	o.Cystines = []string{"A/CYS/1"}
	_, err = New(o, nil)
	assert.Error(t, err)
}

func TestSelected(t *testing.T) {
	assert.True(t, selected([]string{"A,B"}, "B"))
	assert.True(t, selected([]string{"all"}, "X"))
	assert.False(t, selected([]string{"A", "C"}, "B"))
	assert.False(t, selected(nil, "A"))
}

func TestWriteITPRejectsBrokenNumbering(t *testing.T) {
	dir := t.TempDir()
	T := top.New("Gapped", "martini22")
	T.Atoms = []top.Atom{{ID: 1, Type: "P5", ResID: 1, ResName: "ALA", Name: "BB", CGNr: 1}, {ID: 3, Type: "P5", ResID: 2, ResName: "ALA", Name: "BB", CGNr: 2}}
	_, err := writeITP(T, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writeITP")
	_, err = os.Stat(filepath.Join(dir, "Gapped.itp"))
	assert.True(t, os.IsNotExist(err))

	T.Atoms[1].ID = 2
	name, err := writeITP(T, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Gapped.itp"), name)
}
