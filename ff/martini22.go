/*
 * martini22.go, part of martinize
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
	"math"
	"sort"
	"strings"

	v3 "github.com/rmera/martinize/v3"
)

// connectivity is the bonded structure of a sidechain, with bead indexes
// relative to the backbone bead (0).
type connectivity struct {
	bonds, angles, dihedrals, vsites [][]int
}

// sidechain holds the parameters that go with a connectivity. For proteins,
// dihedrals are improper dihedrals within the sidechain.
type sidechain struct {
	beads     string
	bonds     []Params
	angles    []Params
	dihedrals []Params
}

type scTable struct {
	con  map[string]connectivity
	defs map[string]sidechain
}

func (T scTable) residue(ffname, res string) (Residue, error) {
	d, ok := T.defs[res]
	if !ok {
		return Residue{}, &UnknownResidueError{Residue: res, ForceField: ffname, deco: []string{"Sidechain"}}
	}
	c := T.con[res]
	return Residue{
		Beads:     strings.Fields(d.beads),
		Bonds:     zip(c.bonds, d.bonds),
		Angles:    zip(c.angles, d.angles),
		Impropers: zip(c.dihedrals, d.dihedrals),
	}, nil
}

var ring3 = connectivity{
	bonds:     [][]int{{0, 1}, {1, 2}, {1, 3}, {2, 3}},
	angles:    [][]int{{0, 1, 2}, {0, 1, 3}},
	dihedrals: [][]int{{0, 2, 3, 1}},
}

var single = connectivity{bonds: [][]int{{0, 1}}}

var twoBeads = connectivity{bonds: [][]int{{0, 1}, {1, 2}}, angles: [][]int{{0, 1, 2}}}

func singleBeadCon(names string, c connectivity) map[string]connectivity {
	ret := make(map[string]connectivity)
	for _, v := range strings.Fields(names) {
		ret[v] = c
	}
	return ret
}

func martini22Connectivity() map[string]connectivity {
	con := singleBeadCon("CYS ASP GLU ILE LEU MET ASN PRO HYP GLN SER THR VAL", single)
	con["TRP"] = connectivity{
		bonds:     [][]int{{0, 1}, {1, 2}, {1, 3}, {2, 3}, {2, 4}, {3, 4}},
		angles:    [][]int{{0, 1, 2}, {0, 1, 3}},
		dihedrals: [][]int{{0, 2, 3, 1}, {1, 2, 4, 3}},
	}
	for _, v := range []string{"TYR", "PHE", "HIS", "HIH"} {
		con[v] = ring3
	}
	con["ARG"] = twoBeads
	con["LYS"] = twoBeads
	con["ALA"] = connectivity{}
	con["GLY"] = connectivity{}
	return con
}

func bnd(l, k float64) Params { return p(1, l, k) }
func ang(a, k float64) Params { return p(2, a, k) }
func cns(l float64) Params    { return constr(1, l) }

var martini22Sidechains = map[string]sidechain{
	"TRP": {"SC4 SNd SC5 SC5", []Params{bnd(0.300, 5000), cns(0.270), cns(0.270), cns(0.270), cns(0.270), cns(0.270)},
		[]Params{ang(210, 50), ang(90, 50), ang(90, 50)}, []Params{ang(0, 50), ang(0, 200)}},
	"TYR": {"SC4 SC4 SP1", []Params{bnd(0.320, 5000), cns(0.270), cns(0.270), cns(0.270)},
		[]Params{ang(150, 50), ang(150, 50)}, []Params{ang(0, 50)}},
	"PHE": {"SC5 SC5 SC5", []Params{bnd(0.310, 7500), cns(0.270), cns(0.270), cns(0.270)},
		[]Params{ang(150, 50), ang(150, 50)}, []Params{ang(0, 50)}},
	"HIS": {"SC4 SP1 SP1", []Params{bnd(0.320, 7500), cns(0.270), cns(0.270), cns(0.270)},
		[]Params{ang(150, 50), ang(150, 50)}, []Params{ang(0, 50)}},
	"HIH": {"SC4 SP1 SQd", []Params{bnd(0.320, 7500), cns(0.270), cns(0.270), cns(0.270)},
		[]Params{ang(150, 50), ang(150, 50)}, []Params{ang(0, 50)}},
	"ARG": {"N0 Qd", []Params{bnd(0.330, 5000), bnd(0.340, 5000)}, []Params{ang(180, 25)}, nil},
	"LYS": {"C3 Qd", []Params{bnd(0.330, 5000), bnd(0.280, 5000)}, []Params{ang(180, 25)}, nil},
	"CYS": {"C5", []Params{bnd(0.310, 7500)}, nil, nil},
	"ASP": {"Qa", []Params{bnd(0.320, 7500)}, nil, nil},
	"GLU": {"Qa", []Params{bnd(0.400, 5000)}, nil, nil},
	"ILE": {"AC1", []Params{cns(0.310)}, nil, nil},
	"LEU": {"AC1", []Params{bnd(0.330, 7500)}, nil, nil},
	"MET": {"C5", []Params{bnd(0.400, 2500)}, nil, nil},
	"ASN": {"P5", []Params{bnd(0.320, 5000)}, nil, nil},
	"PRO": {"C3", []Params{bnd(0.300, 7500)}, nil, nil},
	"HYP": {"P1", []Params{bnd(0.300, 7500)}, nil, nil},
	"GLN": {"P4", []Params{bnd(0.400, 5000)}, nil, nil},
	"SER": {"P1", []Params{bnd(0.250, 7500)}, nil, nil},
	"THR": {"P1", []Params{cns(0.260)}, nil, nil},
	"VAL": {"AC2", []Params{cns(0.265)}, nil, nil},
	"ALA": {},
	"GLY": {},
}

func elnedyn22Connectivity() map[string]connectivity {
	con := singleBeadCon("CYS ASP GLU ILE LEU MET ASN PRO HYP GLN SER THR VAL", single)
	con["TRP"] = connectivity{
		bonds:     [][]int{{0, 1}, {1, 2}, {2, 4}, {4, 3}, {3, 1}, {1, 4}},
		angles:    [][]int{{0, 1, 2}, {0, 1, 4}, {0, 1, 3}},
		dihedrals: [][]int{{1, 2, 3, 4}},
	}
	con["TYR"] = connectivity{
		bonds:  [][]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}},
		angles: [][]int{{0, 1, 3}, {0, 2, 3}},
	}
	con["PHE"] = con["TYR"]
	con["HIS"] = connectivity{
		bonds:  [][]int{{0, 1}, {1, 2}, {1, 3}, {2, 3}},
		angles: [][]int{{0, 1, 2}, {0, 1, 3}},
	}
	con["HIH"] = con["HIS"]
	con["ARG"] = twoBeads
	con["LYS"] = twoBeads
	con["ALA"] = connectivity{}
	con["GLY"] = connectivity{}
	return con
}

var elnedyn22Sidechains = map[string]sidechain{
	"TRP": {"SC4 SNd SC5 SC5", []Params{bnd(0.255, 73000), cns(0.220), cns(0.250), cns(0.280), cns(0.255), cns(0.350)},
		[]Params{ang(142, 30), ang(143, 20), ang(104, 50)}, []Params{ang(180, 200)}},
	"TYR": {"SC4 SC4 SP1", []Params{bnd(0.335, 6000), bnd(0.335, 6000), cns(0.240), cns(0.310), cns(0.310)},
		[]Params{ang(70, 100), ang(130, 50)}, nil},
	"PHE": {"SC5 SC5 SC5", []Params{bnd(0.340, 7500), bnd(0.340, 7500), cns(0.240), cns(0.240), cns(0.240)},
		[]Params{ang(70, 100), ang(125, 100)}, nil},
	"HIS": {"SC4 SP1 SP1", []Params{cns(0.195), cns(0.193), cns(0.295), cns(0.216)},
		[]Params{ang(135, 100), ang(115, 50)}, nil},
	"HIH": {"SC4 SP1 SQd", []Params{cns(0.195), cns(0.193), cns(0.295), cns(0.216)},
		[]Params{ang(135, 100), ang(115, 50)}, nil},
	"ARG": {"N0 Qd", []Params{bnd(0.250, 12500), bnd(0.350, 6200)}, []Params{ang(150, 15)}, nil},
	"LYS": {"C3 Qd", []Params{bnd(0.250, 12500), bnd(0.300, 9700)}, []Params{ang(150, 20)}, nil},
	"CYS": {"C5", []Params{cns(0.240)}, nil, nil},
	"ASP": {"Qa", []Params{cns(0.255)}, nil, nil},
	"GLU": {"Qa", []Params{bnd(0.310, 2500)}, nil, nil},
	"ILE": {"C1", []Params{bnd(0.225, 13250)}, nil, nil},
	"LEU": {"C1", []Params{cns(0.265)}, nil, nil},
	"MET": {"C5", []Params{bnd(0.310, 2800)}, nil, nil},
	"ASN": {"P5", []Params{cns(0.250)}, nil, nil},
	"PRO": {"C3", []Params{cns(0.190)}, nil, nil},
	"HYP": {"P1", []Params{cns(0.190)}, nil, nil},
	"GLN": {"P4", []Params{bnd(0.300, 2400)}, nil, nil},
	"SER": {"P1", []Params{cns(0.195)}, nil, nil},
	"THR": {"P1", []Params{cns(0.195)}, nil, nil},
	"VAL": {"C2", []Params{cns(0.200)}, nil, nil},
	"ALA": {},
	"GLY": {},
}

//Backbone parameters, one column per secondary structure type, in the order of ssTypes.
//A zero bond force constant means that the bond is a constraint.
var (
	bbDefault = strings.Fields("N0 Nda N0 Nd Na Nda Nda P5 P5")
	bbSpecial = map[string][]string{
		"ALA": strings.Fields("C5 N0 C5 N0 N0 N0 N0 P4 P4"),
		"PRO": strings.Fields("C5 N0 C5 N0 Na N0 N0 P4 P4"),
		"HYP": strings.Fields("C5 N0 C5 N0 Na N0 N0 P4 P4"),
	}
	bbLength = [9]float64{0.365, 0.350, 0.310, 0.310, 0.310, 0.310, 0.350, 0.350, 0.350}
	bbBondFC = [9]float64{1250, 1250, 0, 0, 0, 0, 1250, 1250, 1250}
	bbAngle  = [9]float64{119.2, 134, 96, 96, 96, 96, 100, 130, 127}
	bbAngFC  = [9]float64{150, 25, 700, 700, 700, 700, 20, 20, 20}
	//prolines
	bbAnglePro = [9]float64{119.2, 134, 98, 98, 98, 98, 100, 130, 127}
	bbAngFCPro = [9]float64{150, 25, 100, 100, 100, 100, 25, 25, 25}
	//Dihedrals are only defined for F E H 1 2 3.
	bbDihedral = [6]float64{90.7, 0, -120, -120, -120, -120}
	bbDihFC    = [6]float64{100, 10, 400, 400, 400, 400}
)

var cystine = Params{Func: 1, Values: []float64{0.39, 5000}}

func special(a, b BeadRef) (Params, bool) {
	sc1cys := BeadRef{"SC1", "CYS"}
	if a == sc1cys && b == sc1cys {
		return cystine, true
	}
	return Params{}, false
}

type protein struct {
	name      string
	sc        scTable
	elnedyn   bool
	ebondtype int
}

func newMartini22() *protein {
	return &protein{
		name:      "martini22",
		sc:        scTable{con: martini22Connectivity(), defs: martini22Sidechains},
		ebondtype: 6,
	}
}

func newElnedyn22() *protein {
	return &protein{
		name:      "elnedyn22",
		sc:        scTable{con: elnedyn22Connectivity(), defs: elnedyn22Sidechains},
		elnedyn:   true,
		ebondtype: 1,
	}
}

func (F *protein) Name() string { return F.name }
func (F *protein) Kind() Kind   { return Protein }

func (F *protein) BackboneBeads(res string, ss byte) ([]string, error) {
	if _, ok := F.sc.defs[res]; !ok {
		return nil, &UnknownResidueError{Residue: res, ForceField: F.name, deco: []string{"BackboneBeads"}}
	}
	t := bbDefault
	if s, ok := bbSpecial[res]; ok {
		t = s
	}
	return []string{t[ssIndex(ss)]}, nil
}

// Bond returns the parameters for the bond between two consecutive backbone beads.
// In Martini, the length is the mean of both residues' lengths and the force constant,
// the smallest one, where a constraint beats any value. In Elnedyn, it is the
// CA-CA distance, as a constraint.
func (F *protein) Bond(b []Backbone) Params {
	if len(b) != 2 {
		return Params{}
	}
	if F.elnedyn {
		return constr(1, v3.Distance(b[0].CA, b[1].CA)/10)
	}
	i, j := ssIndex(b[0].SS), ssIndex(b[1].SS)
	l := (bbLength[i] + bbLength[j]) / 2
	if bbBondFC[i] == 0 || bbBondFC[j] == 0 {
		return constr(1, l)
	}
	return p(1, l, math.Min(bbBondFC[i], bbBondFC[j]))
}

func (F *protein) Angle(b []Backbone) Params {
	if len(b) != 3 {
		return Params{}
	}
	if F.elnedyn {
		return p(2, v3.Angle(b[0].CA, b[1].CA, b[2].CA), 40)
	}
	mid := ssIndex(b[1].SS)
	if (b[1].Res == "PRO" || b[1].Res == "HYP") && strings.IndexByte("H123", ssTypes[mid]) >= 0 {
		return p(2, bbAnglePro[mid], bbAngFCPro[mid])
	}
	type af struct{ a, fc float64 }
	c := make([]af, 3)
	for k, v := range b {
		s := ssIndex(v.SS)
		if v.Res == "PRO" || v.Res == "HYP" {
			c[k] = af{bbAnglePro[s], bbAngFCPro[s]}
		} else {
			c[k] = af{bbAngle[s], bbAngFC[s]}
		}
	}
	//the weakest angle wins.
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].fc != c[j].fc {
			return c[i].fc < c[j].fc
		}
		return c[i].a < c[j].a
	})
	return p(2, c[0].a, c[0].fc)
}

// Dihedral returns the backbone dihedral, which is only defined for
// four residues in beta strands, collagen, or helices (any kind).
func (F *protein) Dihedral(b []Backbone) Params {
	if len(b) != 4 || F.elnedyn {
		return Params{}
	}
	s := make([]byte, 4)
	for i, v := range b {
		s[i] = ssTypes[ssIndex(v.SS)]
	}
	str := string(s)
	switch {
	case str == "FFFF", str == "EEEE":
	case strings.Trim(str, "H123") == "":
	default:
		return Params{}
	}
	i := ssIndex(s[0])
	return p(1, bbDihedral[i], bbDihFC[i], 1)
}

func (F *protein) Exclusion(b []Backbone) bool { return false }
func (F *protein) Pair(b []Backbone) bool      { return false }

func (F *protein) Sidechain(res string) (Residue, error) {
	return F.sc.residue(F.name, res)
}

var proteinCharges = map[string]float64{"Qd": 1, "Qa": -1, "SQd": 1, "SQa": -1, "RQd": 1, "AQa": -1}

func (F *protein) Charge(beadType, beadName string) float64 {
	return proteinCharges[beadType]
}

func (F *protein) Mass(beadName string) (float64, bool) { return 0, false }

func (F *protein) Special(a, b BeadRef) (Params, bool) { return special(a, b) }
func (F *protein) ElasticNetwork() bool                { return F.elnedyn }
func (F *protein) ElasticBondType() int                { return F.ebondtype }
func (F *protein) UseBBSAngles() bool                  { return !F.elnedyn }
func (F *protein) UseBBBBDihedrals() bool              { return !F.elnedyn }
func (F *protein) CAPositionedBB() bool                { return F.elnedyn }
func (F *protein) BBSAngle() Params                    { return p(2, 100, 25) }

// ExtendedBonds returns the short (i,i+2) and long (i,i+3) elastic bonds that replace
// the backbone dihedrals in extended regions.
func (F *protein) ExtendedBonds() (short, long Params) {
	return p(1, 0.640, 2500), p(1, 0.970, 2500)
}
