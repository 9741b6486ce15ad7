/*
 * ff_test.go, part of martinize
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

package ff

import (
	"errors"
	"math"
	"testing"
)

func TestGet(Te *testing.T) {
	for _, v := range []string{"martini22", "elnedyn22", "martini22nucleic", "elnedyn22nucleic", "Martini22"} {
		f, err := Get(v)
		if err != nil {
			Te.Fatal(err)
		}
		if f.Name() == "" {
			Te.Errorf("empty name for %s", v)
		}
	}
	if _, err := Get("martini3"); err == nil {
		Te.Error("unknown force field accepted")
	}
	fam, err := GetFamily("elnedyn22nucleic")
	if err != nil {
		Te.Fatal(err)
	}
	if fam.For(Protein).Name() != "elnedyn22" || fam.For(Nucleic).Name() != "elnedyn22nucleic" {
		Te.Errorf("wrong family %s %s", fam.Protein.Name(), fam.Nucleic.Name())
	}
}

func TestBackboneBeads(Te *testing.T) {
	f, _ := Get("martini22")
	table := []struct {
		res  string
		ss   byte
		want string
	}{
		{"LYS", 'C', "P5"},
		{"LYS", ' ', "P5"},
		{"LYS", 'H', "N0"},
		{"LYS", 'E', "Nda"},
		{"ALA", 'C', "P4"},
		{"ALA", 'H', "C5"},
		{"PRO", '2', "Na"},
		{"GLY", 'x', "P5"},
	}
	for _, v := range table {
		b, err := f.BackboneBeads(v.res, v.ss)
		if err != nil {
			Te.Fatal(err)
		}
		if len(b) != 1 || b[0] != v.want {
			Te.Errorf("%s %c: got %v, want %s", v.res, v.ss, b, v.want)
		}
	}
	_, err := f.BackboneBeads("XYZ", 'C')
	var ure *UnknownResidueError
	if !errors.As(err, &ure) || ure.Residue != "XYZ" {
		Te.Errorf("expected UnknownResidueError, got %v", err)
	}
	n, _ := Get("martini22nucleic")
	b, err := n.BackboneBeads("U", ' ')
	if err != nil {
		Te.Fatal(err)
	}
	if len(b) != 3 || b[2] != "SNda" {
		Te.Errorf("wrong RNA backbone %v", b)
	}
}

func TestProteinBackboneTerms(Te *testing.T) {
	f, _ := Get("martini22")
	coil := func(res string) Backbone { return Backbone{Res: res, SS: 'C'} }
	helix := func(res string) Backbone { return Backbone{Res: res, SS: 'H'} }
	b := f.Bond([]Backbone{coil("ALA"), coil("GLY")})
	if b.Constraint || math.Abs(b.Values[0]-0.35) > 1e-9 || b.Values[1] != 1250 {
		Te.Errorf("wrong coil bond %s", b)
	}
	b = f.Bond([]Backbone{coil("ALA"), helix("GLY")})
	if !b.Constraint || math.Abs(b.Values[0]-0.33) > 1e-9 {
		Te.Errorf("a helix bond should be a constraint: %s", b)
	}
	a := f.Angle([]Backbone{coil("ALA"), coil("ALA"), coil("ALA")})
	if a.Func != 2 || a.Values[0] != 127 || a.Values[1] != 20 {
		Te.Errorf("wrong coil angle %s", a)
	}
	a = f.Angle([]Backbone{helix("ALA"), coil("ALA"), helix("ALA")})
	if a.Values[0] != 127 || a.Values[1] != 20 {
		Te.Errorf("the weakest angle should win %s", a)
	}
	a = f.Angle([]Backbone{helix("ALA"), helix("PRO"), helix("ALA")})
	if a.Values[0] != 98 || a.Values[1] != 100 {
		Te.Errorf("wrong proline angle %s", a)
	}
	d := f.Dihedral([]Backbone{helix("A"), {SS: '1'}, {SS: '2'}, {SS: '3'}})
	if !d.Defined() || d.Values[0] != -120 || d.Values[1] != 400 {
		Te.Errorf("wrong helix dihedral %s", d)
	}
	if f.Dihedral([]Backbone{coil("A"), coil("A"), coil("A"), coil("A")}).Defined() {
		Te.Error("coil dihedral defined")
	}
	if f.Dihedral([]Backbone{{SS: 'E'}, {SS: 'E'}, {SS: 'E'}, {SS: 'H'}}).Defined() {
		Te.Error("mixed dihedral defined")
	}
}

func TestElnedyn(Te *testing.T) {
	f, _ := Get("elnedyn22")
	if !f.ElasticNetwork() || f.ElasticBondType() != 1 || !f.CAPositionedBB() || f.UseBBBBDihedrals() {
		Te.Error("wrong elnedyn switches")
	}
	b := f.Bond([]Backbone{{CA: [3]float64{0, 0, 0}}, {CA: [3]float64{3.8, 0, 0}}})
	if !b.Constraint || math.Abs(b.Values[0]-0.38) > 1e-9 {
		Te.Errorf("wrong CA bond %s", b)
	}
	a := f.Angle([]Backbone{{CA: [3]float64{1, 0, 0}}, {}, {CA: [3]float64{0, 1, 0}}})
	if math.Abs(a.Values[0]-90) > 1e-9 || a.Values[1] != 40 {
		Te.Errorf("wrong CA angle %s", a)
	}
	r, err := f.Sidechain("TRP")
	if err != nil {
		Te.Fatal(err)
	}
	if len(r.Bonds) != 6 || len(r.Angles) != 3 || len(r.Impropers) != 1 {
		Te.Errorf("wrong TRP %d %d %d", len(r.Bonds), len(r.Angles), len(r.Impropers))
	}
}

func TestSidechains(Te *testing.T) {
	for _, name := range []string{"martini22", "elnedyn22"} {
		f, _ := Get(name)
		for _, res := range []string{"ALA", "CYS", "ASP", "GLU", "PHE", "GLY", "HIS", "HIH", "ILE", "LYS", "LEU", "MET", "ASN", "PRO", "HYP", "GLN", "ARG", "SER", "THR", "VAL", "TRP", "TYR"} {
			r, err := f.Sidechain(res)
			if err != nil {
				Te.Fatal(err)
			}
			for _, t := range append(append(r.Bonds, r.Angles...), r.Impropers...) {
				for _, a := range t.Atoms {
					if a < 0 || a > len(r.Beads) {
						Te.Errorf("%s %s: index %d out of range", name, res, a)
					}
				}
			}
			if len(r.Beads) > 0 && len(r.Bonds) == 0 {
				Te.Errorf("%s %s: sidechain without bonds", name, res)
			}
		}
	}
	f, _ := Get("martini22")
	r, _ := f.Sidechain("LYS")
	if f.Charge(r.Beads[1], "SC2") != 1 || f.Charge(r.Beads[0], "SC1") != 0 {
		Te.Error("wrong lysine charges")
	}
	r, _ = f.Sidechain("VAL")
	if !r.Bonds[0].Params.Constraint {
		Te.Error("VAL sidechain should be constrained")
	}
}

func TestNucleic(Te *testing.T) {
	f, _ := Get("martini22nucleic")
	dna := func(pos int) Backbone { return Backbone{Res: "DA", Pos: pos} }
	b := f.Bond([]Backbone{dna(1), dna(2)})
	if b.Values[0] != 0.198 || b.Values[1] != 80000 {
		Te.Errorf("wrong DNA bond %s", b)
	}
	if f.Bond([]Backbone{dna(0), dna(2)}).Defined() {
		Te.Error("bond defined for 0-2")
	}
	if !f.Exclusion([]Backbone{dna(2), dna(1)}) || f.Exclusion([]Backbone{dna(0), dna(1)}) {
		Te.Error("wrong exclusions")
	}
	d := f.Dihedral([]Backbone{dna(2), dna(0), dna(1), dna(2)})
	split := d.Split()
	if len(split) != 2 || split[1].Func != 9 || split[1].Values[0] != 160 || len(split[1].Values) != 3 {
		Te.Errorf("wrong split of %s: %v", d, split)
	}
	rna := f.Angle([]Backbone{{Res: "U", Pos: 2}, {Res: "U", Pos: 0}, {Res: "C", Pos: 1}})
	if rna.Func != 1 || rna.Values[0] != 93 {
		Te.Errorf("wrong RNA angle %s", rna)
	}
	r, err := f.Sidechain("DG")
	if err != nil {
		Te.Fatal(err)
	}
	if len(r.Beads) != 4 || len(r.Bonds) != 6 || len(r.Angles) != 8 || len(r.Dihedrals) != 3 || len(r.Exclusions) != 14 {
		Te.Errorf("wrong DG %v", r)
	}
	if f.Charge("Q0", "BB1") != -1 || f.Charge("SN0", "BB2") != 0 {
		Te.Error("wrong nucleic charges")
	}
	if m, ok := f.Mass("BB1"); !ok || m != 72 {
		Te.Error("wrong BB1 mass")
	}
	if _, err := f.Sidechain("ALA"); err == nil {
		Te.Error("a protein residue in a nucleic force field")
	}
	if _, ok := f.Special(BeadRef{"SC1", "CYS"}, BeadRef{"SC1", "CYS"}); !ok {
		Te.Error("no cystine parameters")
	}
	e, _ := Get("elnedyn22nucleic")
	if !e.ElasticNetwork() {
		Te.Error("elnedyn22nucleic should force the elastic network")
	}
	if _, ok := e.Special(BeadRef{"SC1", "CYS"}, BeadRef{"SC1", "CYS"}); ok {
		Te.Error("elnedyn22nucleic has no special bonds")
	}
}
