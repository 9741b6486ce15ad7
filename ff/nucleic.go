/*
 * nucleic.go, part of martinize
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

import "strings"

// Nucleic acid backbones have three beads per residue. Terms among backbone beads are
// looked up by the position of each bead in its residue's backbone.
type nucleicBackbone struct {
	beads      []string
	bonds      map[[2]int]Params
	angles     map[[3]int]Params
	dihedrals  map[[4]int]Params
	exclusions map[[2]int]bool
	pairs      map[[2]int]bool
}

var bbExclusions = map[[2]int]bool{{0, 2}: true, {1, 0}: true, {2, 1}: true}

var dnaBackbone = nucleicBackbone{
	beads: strings.Fields("Q0 SN0 SC2"),
	bonds: map[[2]int]Params{
		{0, 1}: p(1, 0.360, 20000),
		{1, 2}: p(1, 0.198, 80000),
		{2, 0}: p(1, 0.353, 10000),
	},
	angles: map[[3]int]Params{
		{0, 1, 2}: p(2, 110.0, 200),
		{1, 2, 0}: p(2, 102.0, 150),
		{2, 0, 1}: p(2, 106.0, 75),
	},
	dihedrals: map[[4]int]Params{
		{0, 1, 2, 0}: p(2, 95.0, 25),
		{1, 2, 0, 1}: p(1, 180.0, 2, 3),
		{2, 0, 1, 2}: p(9, 85.0, 2, 2, 9, 160.0, 2, 3),
	},
	exclusions: bbExclusions,
}

var rnaBackbone = nucleicBackbone{
	beads: strings.Fields("Q0 SN0 SNda"),
	bonds: map[[2]int]Params{
		{0, 1}: p(1, 0.363, 20000),
		{1, 2}: p(1, 0.202, 40000),
		{2, 0}: p(1, 0.354, 10000),
	},
	angles: map[[3]int]Params{
		{0, 1, 2}: p(2, 117.0, 175),
		{1, 2, 0}: p(2, 95.0, 105),
		{2, 0, 1}: p(1, 93.0, 75),
	},
	dihedrals: map[[4]int]Params{
		{0, 1, 2, 0}: p(2, 0.0, 3.5),
		{1, 2, 0, 1}: p(1, 0.0, 1, 4),
		{2, 0, 1, 2}: p(9, -10.0, 1.5, 2, 9, 10.0, 1.5, 2),
	},
	exclusions: bbExclusions,
}

// base is the definition of a nucleobase. Indexes are relative to the
// first backbone bead of the residue (0 BB1, 1 BB2, 2 BB3, 3 SC1...). An index
// past the last bead of the residue refers to the next residue's BB1.
type base struct {
	beads      string
	bonds      []Term
	angles     []Term
	dihedrals  []Term
	exclusions [][]int
}

//Connectivity shared by the purines and by the pyrimidines.
var (
	purineBonds  = [][]int{{2, 3}, {3, 4}, {4, 5}, {4, 6}, {5, 6}, {6, 3}}
	purineAngles = [][]int{{1, 2, 3}, {2, 3, 4}, {2, 3, 6}, {3, 4, 5}, {3, 2, 7}, {4, 3, 6}, {4, 5, 6}, {5, 6, 3}}
	purineExcl   = [][]int{{0, 3}, {0, 4}, {0, 5}, {0, 6}, {1, 3}, {1, 4}, {1, 5}, {1, 6}, {2, 3}, {2, 4}, {2, 5}, {2, 6}, {3, 5}, {4, 6}}
	pyrimBonds   = [][]int{{2, 3}, {3, 4}, {4, 5}, {5, 3}}
	pyrimExcl    = [][]int{{0, 3}, {0, 4}, {0, 5}, {1, 3}, {1, 4}, {1, 5}, {2, 3}, {2, 4}, {2, 5}}
)

var dnaBases = map[string]base{
	"DA": {
		beads:      "TN0 TA2 TA3 TNa",
		bonds:      zip(purineBonds, []Params{p(1, 0.300, 30000), cns(0.229), cns(0.266), p(1, 0.326, 20000), cns(0.288), cns(0.162)}),
		angles:     zip(purineAngles, []Params{p(2, 94.0, 250), p(2, 160.0, 200), p(2, 140.0, 200), p(1, 85.0, 200), p(2, 158.0, 200), p(1, 125.0, 200), p(1, 74.0, 200), p(1, 98.0, 200)}),
		dihedrals:  zip([][]int{{0, 1, 2, 3}, {1, 2, 3, 4}, {1, 2, 3, 6}}, []Params{p(2, -90.0, 20), p(2, -116.0, 0.5), p(2, 98.0, 15)}),
		exclusions: purineExcl,
	},
	"DC": {
		beads:      "TN0 TY2 TY3",
		bonds:      zip(pyrimBonds, []Params{p(1, 0.270, 30000), cns(0.220), cns(0.285), cns(0.268)}),
		angles:     zip([][]int{{1, 2, 3}, {2, 3, 4}, {1, 3, 5}, {3, 2, 6}, {3, 4, 5}, {4, 3, 5}, {4, 5, 3}}, []Params{p(2, 95.0, 210), p(2, 95.0, 300), p(1, 150.0, 500), p(1, 180.0, 30), p(1, 61.0, 200), p(1, 71.0, 200), p(1, 47.0, 200)}),
		dihedrals:  zip([][]int{{0, 1, 2, 3}, {1, 2, 3, 4}, {2, 1, 3, 5}}, []Params{p(2, -78.0, 25), p(2, -90.0, 20), p(2, -142.0, 50)}),
		exclusions: pyrimExcl,
	},
	"DG": {
		beads:      "TN0 TG2 TG3 TNa",
		bonds:      zip(purineBonds, []Params{p(1, 0.300, 30000), cns(0.295), cns(0.295), p(1, 0.389, 20000), cns(0.285), cns(0.161)}),
		angles:     zip(purineAngles, []Params{p(2, 94.5, 250), p(2, 137.0, 300), p(2, 130.0, 250), p(1, 69.5, 200), p(2, 157.0, 150), p(1, 125.0, 200), p(1, 84.0, 200), p(1, 94.0, 200)}),
		dihedrals:  zip([][]int{{0, 1, 2, 3}, {1, 2, 3, 4}, {1, 2, 3, 6}}, []Params{p(2, -90.0, 20), p(2, -117.0, 1), p(2, 92.0, 15)}),
		exclusions: purineExcl,
	},
	"DT": {
		beads:      "TN0 TT2 TT3",
		bonds:      zip(pyrimBonds, []Params{p(1, 0.270, 30000), cns(0.217), cns(0.322), cns(0.265)}),
		angles:     zip([][]int{{1, 2, 3}, {2, 3, 4}, {1, 3, 5}, {3, 2, 6}, {3, 4, 5}, {4, 3, 5}, {4, 5, 3}}, []Params{p(2, 92.0, 220), p(2, 107.0, 300), p(1, 145.0, 400), p(1, 180.0, 30), p(1, 55.0, 100), p(1, 83.0, 100), p(1, 42.0, 100)}),
		dihedrals:  zip([][]int{{0, 1, 2, 3}, {1, 2, 3, 4}, {2, 1, 3, 5}}, []Params{p(2, -75.0, 40), p(2, -110.0, 15), p(2, -145.0, 65)}),
		exclusions: pyrimExcl,
	},
}

var rnaPyrimAngles = [][]int{{1, 2, 3}, {2, 3, 4}, {2, 3, 5}, {3, 2, 6}, {3, 4, 5}, {4, 3, 5}, {4, 5, 3}}

var rnaBases = map[string]base{
	"A": {
		beads:  "TN0 TA2 TA3 TNa",
		bonds:  zip(purineBonds, []Params{p(1, 0.293, 28000), cns(0.234), cns(0.263), p(1, 0.335, 40000), cns(0.299), cns(0.162)}),
		angles: zip(purineAngles, []Params{p(2, 101.0, 260), p(2, 153.0, 90), p(2, 135.0, 185), p(1, 87.0, 200), p(2, 160.0, 15), p(1, 115.0, 200), p(1, 74.0, 200), p(1, 92.0, 200)}),
		dihedrals: zip([][]int{{0, 1, 2, 3}, {1, 2, 3, 4}, {1, 2, 3, 6}, {0, 1, 2, 3}, {1, 2, 3, 4}, {1, 2, 3, 6}, {3, 4, 5, 6}},
			[]Params{p(2, 180.0, 1.5), p(1, -40.0, 4, 2), p(1, -10.0, 5, 2), p(2, 180.0, 0), p(2, 180.0, 2), p(2, 80.0, 0.5), p(2, 0.0, 10)}),
		exclusions: purineExcl,
	},
	"C": {
		beads:      "TN0 TY2 TY3",
		bonds:      zip(pyrimBonds, []Params{p(1, 0.280, 11000), cns(0.224), cns(0.281), cns(0.267)}),
		angles:     zip(rnaPyrimAngles, []Params{p(2, 94.0, 230), p(2, 103.0, 170), p(1, 155.0, 100), p(1, 130.0, 0.5), p(1, 61.0, 200), p(1, 71.0, 200), p(1, 47.0, 200)}),
		dihedrals:  zip([][]int{{0, 1, 2, 3}, {1, 2, 3, 4}, {0, 1, 2, 3}, {1, 2, 3, 4}}, []Params{p(1, 55.0, 3, 2), p(2, 180.0, 3), p(2, -130.0, 1), p(1, 0.0, 2, 6)}),
		exclusions: pyrimExcl,
	},
	"G": {
		beads:      "TN0 TG2 TG3 TNa",
		bonds:      zip(purineBonds, []Params{p(1, 0.292, 20000), cns(0.296), cns(0.291), p(1, 0.385, 40000), cns(0.296), cns(0.162)}),
		angles:     zip(purineAngles, []Params{p(2, 103.0, 260), p(2, 129.0, 80), p(2, 137.0, 120), p(1, 72.0, 200), p(2, 170.0, 20), p(1, 117.0, 200), p(1, 84.0, 200), p(1, 96.5, 200)}),
		dihedrals:  zip([][]int{{0, 1, 2, 3}, {1, 2, 3, 4}, {1, 2, 3, 6}, {3, 4, 5, 6}}, []Params{p(1, -20.0, 1, 2), p(2, 180.0, 3.5), p(1, 0.0, 5, 2), p(2, 0.0, 10)}),
		exclusions: purineExcl,
	},
	"U": {
		beads:      "TN0 TT2 TT3",
		bonds:      zip(pyrimBonds, []Params{p(1, 0.286, 18000), cns(0.224), cns(0.289), cns(0.276)}),
		angles:     zip(rnaPyrimAngles, []Params{p(2, 95.0, 225), p(2, 99.0, 200), p(1, 155.0, 100), p(1, 180.0, 5), p(1, 55.0, 100), p(1, 83.0, 100), p(1, 42.0, 100)}),
		dihedrals:  zip([][]int{{0, 1, 2, 3}, {1, 2, 3, 4}, {1, 2, 3, 4}}, []Params{p(1, 0.0, 2, 2), p(2, 180.0, 4), p(1, 0.0, 2, 6)}),
		exclusions: pyrimExcl,
	},
}

var nucleicCharges = map[string]float64{"Qd": 1, "Qa": -1, "SQd": 1, "SQa": -1, "RQd": 1, "AQa": -1}

var nucleicBBCharges = map[string]float64{"BB1": -1}

type nucleic struct {
	name    string
	elastic bool
}

func newNucleic(name string, elastic bool) *nucleic {
	return &nucleic{name: name, elastic: elastic}
}

func isDNA(res string) bool {
	_, ok := dnaBases[res]
	return ok
}

func (F *nucleic) backbone(res string) (nucleicBackbone, bool) {
	if isDNA(res) {
		return dnaBackbone, true
	}
	if _, ok := rnaBases[res]; ok {
		return rnaBackbone, true
	}
	return nucleicBackbone{}, false
}

func (F *nucleic) Name() string { return F.name }
func (F *nucleic) Kind() Kind   { return Nucleic }

// BackboneBeads returns the types of the three backbone beads of the nucleotide res.
// The secondary structure plays no role.
func (F *nucleic) BackboneBeads(res string, ss byte) ([]string, error) {
	bb, ok := F.backbone(res)
	if !ok {
		return nil, &UnknownResidueError{Residue: res, ForceField: F.name, deco: []string{"BackboneBeads"}}
	}
	return append([]string(nil), bb.beads...), nil
}

// The terms are looked up with the backbone of the first bead's residue.
func (F *nucleic) Bond(b []Backbone) Params {
	if len(b) != 2 {
		return Params{}
	}
	bb, _ := F.backbone(b[0].Res)
	return bb.bonds[[2]int{b[0].Pos, b[1].Pos}]
}

func (F *nucleic) Angle(b []Backbone) Params {
	if len(b) != 3 {
		return Params{}
	}
	bb, _ := F.backbone(b[0].Res)
	return bb.angles[[3]int{b[0].Pos, b[1].Pos, b[2].Pos}]
}

func (F *nucleic) Dihedral(b []Backbone) Params {
	if len(b) != 4 {
		return Params{}
	}
	bb, _ := F.backbone(b[0].Res)
	return bb.dihedrals[[4]int(pos(b))]
}

func (F *nucleic) Exclusion(b []Backbone) bool {
	if len(b) != 2 {
		return false
	}
	bb, _ := F.backbone(b[0].Res)
	return bb.exclusions[[2]int{b[0].Pos, b[1].Pos}]
}

func (F *nucleic) Pair(b []Backbone) bool {
	if len(b) != 2 {
		return false
	}
	bb, _ := F.backbone(b[0].Res)
	return bb.pairs[[2]int{b[0].Pos, b[1].Pos}]
}

// Sidechain returns the nucleobase of res. Its indexes are relative to the
// residue's first backbone bead, not to the first base bead.
func (F *nucleic) Sidechain(res string) (Residue, error) {
	b, ok := dnaBases[res]
	if !ok {
		b, ok = rnaBases[res]
	}
	if !ok {
		return Residue{}, &UnknownResidueError{Residue: res, ForceField: F.name, deco: []string{"Sidechain"}}
	}
	return Residue{
		Beads:      strings.Fields(b.beads),
		Bonds:      b.bonds,
		Angles:     b.angles,
		Dihedrals:  b.dihedrals,
		Exclusions: b.exclusions,
	}, nil
}

func (F *nucleic) Charge(beadType, beadName string) float64 {
	if c, ok := nucleicCharges[beadType]; ok {
		return c
	}
	return nucleicBBCharges[beadName]
}

// Mass returns 72 for the phosphate bead and 45 for anything else. Virtual sites
// are massless, but that is up to the caller.
func (F *nucleic) Mass(beadName string) (float64, bool) {
	if beadName == "BB1" {
		return 72, true
	}
	return 45, true
}

// Special returns the cystine parameters, for the martini22 family only.
func (F *nucleic) Special(a, b BeadRef) (Params, bool) {
	if F.elastic {
		return Params{}, false
	}
	return special(a, b)
}

func (F *nucleic) ElasticNetwork() bool   { return F.elastic }
func (F *nucleic) ElasticBondType() int   { return 6 }
func (F *nucleic) UseBBSAngles() bool     { return false }
func (F *nucleic) UseBBBBDihedrals() bool { return false }
func (F *nucleic) CAPositionedBB() bool   { return false }
func (F *nucleic) BBSAngle() Params       { return Params{} }

func (F *nucleic) ExtendedBonds() (short, long Params) {
	return Params{}, Params{}
}
