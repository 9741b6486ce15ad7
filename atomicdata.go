/*
 * atomicdata.go, part of martinize
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

package martini

import "strings"

//Crude masses for the weighted average, assigned from the first letter of
//the atom name. United atoms are not considered.
var letterMass = map[byte]float64{
	'H': 1,
	'C': 12,
	'N': 14,
	'O': 16,
	'S': 32,
	'P': 31,
	'M': 0,
}

// Mass returns the mass used to weight an atom called name when computing a bead position.
// Atoms whose name doesn't start with a known letter weight 0.
func Mass(name string) float64 {
	if name == "" {
		return 0
	}
	return letterMass[name[0]]
}

var three2OneLetter = map[string]string{
	"ALA": "A",
	"CYS": "C",
	"ASP": "D",
	"GLU": "E",
	"PHE": "F",
	"GLY": "G",
	"HIS": "H",
	"HIH": "H",
	"ILE": "I",
	"LYS": "K",
	"LEU": "L",
	"MET": "M",
	"ASN": "N",
	"PRO": "P",
	"HYP": "O",
	"GLN": "Q",
	"ARG": "R",
	"SER": "S",
	"THR": "T",
	"VAL": "V",
	"TRP": "W",
	"TYR": "Y",
	"DA":  "dA",
	"DC":  "dC",
	"DG":  "dG",
	"DT":  "dT",
	"A":   "A",
	"C":   "C",
	"G":   "G",
	"U":   "U",
}

var residueAliases = map[string]string{
	"DAD": "DA",
	"DCY": "DC",
	"DGU": "DG",
	"DTH": "DT",
	"ADE": "DA",
	"CYT": "DC",
	"GUA": "DG",
	"THY": "DT",
	"URA": "U",
}

var residueTypes = func() map[string]ChainType {
	r := make(map[string]ChainType)
	for _, v := range strings.Fields("ALA CYS ASP GLU PHE GLY HIS HIH ILE LYS LEU MET ASN PRO HYP GLN ARG SER THR VAL TRP TYR") {
		r[v] = Protein
	}
	for _, v := range strings.Fields("DAD DCY DGU DTH ADE CYT GUA THY URA DA DC DG DT A C G U") {
		r[v] = Nucleic
	}
	for _, v := range strings.Fields("SOL HOH TIP WAT") {
		r[v] = Water
	}
	return r
}()

// IsWater returns true if name is the name of a water residue.
func IsWater(name string) bool {
	return residueTypes[name] == Water
}

func nsplit(groups ...string) [][]string {
	ret := make([][]string, 0, len(groups))
	for _, v := range groups {
		ret = append(ret, strings.Fields(v))
	}
	return ret
}

const (
	proteinBB = "N CA C O H H1 H2 H3 O1 O2"
	nucBB1    = "P OP1 OP2 O5' H5T O3' H3T O1P O2P"
	nucBB2    = "C5' O4' C4'"
	dnaBB3    = "C3' C2' C1'"
	rnaBB3    = "C3' C2' O2' C1'"
)

//For each residue, the atom names that go into each bead, in the
//standard order of the beads. Atoms not present in a residue are just
//not used, so one definition serves several protonation states.
var mapping = map[string][][]string{
	"ALA": nsplit(proteinBB + " CB"),
	"CYS": nsplit(proteinBB, "CB SG"),
	"ASP": nsplit(proteinBB, "CB CG OD1 OD2"),
	"GLU": nsplit(proteinBB, "CB CG CD OE1 OE2"),
	"PHE": nsplit(proteinBB, "CB CG CD1 HD1", "CD2 HD2 CE2 HE2", "CE1 HE1 CZ HZ"),
	"GLY": nsplit(proteinBB),
	"HIS": nsplit(proteinBB, "CB CG", "CD2 HD2 NE2 HE2", "ND1 HD1 CE1 HE1"),
	"HIH": nsplit(proteinBB, "CB CG", "CD2 HD2 NE2 HE2", "ND1 HD1 CE1 HE1"),
	"ILE": nsplit(proteinBB, "CB CG1 CG2 CD CD1"),
	"LYS": nsplit(proteinBB, "CB CG CD", "CE NZ HZ1 HZ2 HZ3"),
	"LEU": nsplit(proteinBB, "CB CG CD1 CD2"),
	"MET": nsplit(proteinBB, "CB CG SD CE"),
	"ASN": nsplit(proteinBB, "CB CG ND1 ND2 OD1 OD2 HD11 HD12 HD21 HD22"),
	"PRO": nsplit(proteinBB, "CB CG CD"),
	"HYP": nsplit(proteinBB, "CB CG CD OD"),
	"GLN": nsplit(proteinBB, "CB CG CD OE1 OE2 NE1 NE2 HE11 HE12 HE21 HE22"),
	"ARG": nsplit(proteinBB, "CB CG CD", "NE HE CZ NH1 NH2 HH11 HH12 HH21 HH22"),
	"SER": nsplit(proteinBB, "CB OG HG"),
	"THR": nsplit(proteinBB, "CB OG1 HG1 CG2"),
	"VAL": nsplit(proteinBB, "CB CG1 CG2"),
	"TRP": nsplit(proteinBB, "CB CG CD2", "CD1 HD1 NE1 HE1 CE2", "CE3 HE3 CZ3 HZ3", "CZ2 HZ2 CH2 HH2"),
	"TYR": nsplit(proteinBB, "CB CG CD1 HD1", "CD2 HD2 CE2 HE2", "CE1 HE1 CZ OH HH"),
	"DA":  nsplit(nucBB1, nucBB2, dnaBB3, "N9 C4", "C2 N3", "C6 N6 N1", "C8 N7 C5"),
	"DG":  nsplit(nucBB1, nucBB2, dnaBB3, "N9 C4", "C2 N2 N3", "C6 O6 N1", "C8 N7 C5"),
	"DC":  nsplit(nucBB1, nucBB2, dnaBB3, "N1 C6", "N3 C2 O2", "C5 C4 N4"),
	"DT":  nsplit(nucBB1, nucBB2, dnaBB3, "N1 C6", "N3 C2 O2", "C5 C4 O4 C7 C5M"),
	"A":   nsplit(nucBB1, nucBB2, rnaBB3, "N9 C4", "C2 N3", "C6 N6 N1", "C8 N7 C5"),
	"G":   nsplit(nucBB1, nucBB2, rnaBB3, "N9 C4", "C2 N2 N3", "C6 O6 N1", "C8 N7 C5"),
	"C":   nsplit(nucBB1, nucBB2, rnaBB3, "N1 C6", "N3 C2 O2", "C5 C4 N4"),
	"U":   nsplit(nucBB1, nucBB2, rnaBB3, "N1 C6", "N3 C2 O2", "C5 C4 O4 C7 C5M"),
}

var (
	proteinBeadNames = []string{"BB", "SC1", "SC2", "SC3", "SC4"}
	nucleicBeadNames = []string{"BB1", "BB2", "BB3", "SC1", "SC2", "SC3", "SC4"}
)

// Mapping returns, for the residue called name, the atom names that go into
// each bead, and the bead names. ok is false if the residue has no mapping.
func Mapping(name string) (groups [][]string, beads []string, ok bool) {
	name = CanonicalResName(name)
	groups, ok = mapping[name]
	if !ok {
		return nil, nil, false
	}
	names := proteinBeadNames
	if ResidueType(name) == Nucleic {
		names = nucleicBeadNames
	}
	return groups, names[:len(groups)], true
}

// BeadNames returns the bead names for the residue called name, in mapping order.
func BeadNames(name string) []string {
	_, b, _ := Mapping(name)
	return b
}
