/*
 * cg.go, part of martinize
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

import (
	"fmt"

	"github.com/rmera/martinize/ss"
	v3 "github.com/rmera/martinize/v3"
)

// Bead is one CG particle obtained from a group of atoms of a residue.
type Bead struct {
	Name    string
	ResName string
	ResID   ResID
	Chain   string
	Pos     [3]float64 //A
	SSNum   int
	//Indexes, in the flattened atom list of the chain, of the atoms that
	//were used to obtain the bead.
	Atoms []int
}

// MapOptions changes the way atoms are assigned to beads.
type MapOptions struct {
	//Map the O3' atom of each nucleotide into the first bead of the following
	//one, which keeps the phosphate groups together. The O3' of the last residue
	//and the first bead of the 5' end are then lost.
	ShiftO3 bool
	//Put the protein backbone bead on the CA atom, instead of the center of mass.
	BBOnCA bool
}

type mappedAtom struct {
	Atom
	index int
}

// MapResidue returns the beads for the residue r, whose first atom has the index
// first in the flattened atom list of its chain. It returns false if there is no mapping
// for the residue. Beads for which no atom is present are reported in missing, and left
// at the origin.
func MapResidue(r *Residue, first int, opts MapOptions) (beads []Bead, missing []string, ok bool) {
	atoms := make([]mappedAtom, len(r.Atoms))
	for i, a := range r.Atoms {
		atoms[i] = mappedAtom{a, first + i}
	}
	return mapAtoms(r, atoms, opts)
}

func mapAtoms(r *Residue, atoms []mappedAtom, opts MapOptions) (beads []Bead, missing []string, ok bool) {
	groups, names, ok := Mapping(r.Name)
	if !ok {
		return nil, nil, false
	}
	resname := r.Name
	if len(resname) > 3 {
		resname = resname[:3]
	}
	pos := make([][3]float64, len(atoms))
	for i, a := range atoms {
		pos[i] = a.Pos
	}
	all := v3.FromPoints(pos)
	beads = make([]Bead, 0, len(groups))
	for k, g := range groups {
		in := make(map[string]bool, len(g))
		for _, n := range g {
			in[n] = true
		}
		sel := make([]int, 0, len(g))
		weights := make([]float64, 0, len(g))
		ids := make([]int, 0, len(g))
		for i, a := range atoms {
			if in[a.Name] {
				sel = append(sel, i)
				weights = append(weights, Mass(a.Name))
				ids = append(ids, a.index)
			}
		}
		b := Bead{Name: names[k], ResName: resname, ResID: r.ID, Chain: string(r.Chain), Atoms: ids}
		if len(ids) == 0 {
			missing = append(missing, fmt.Sprintf("%s %s: %s", r.Name, r.ID, names[k]))
			beads = append(beads, b)
			continue
		}
		m := v3.Zeros(len(sel))
		m.SomeVecs(all, sel)
		var err error
		b.Pos, err = v3.WeightedCentroid(m, weights)
		if err != nil {
			//only massless atoms in the group
			b.Pos, _ = v3.Centroid(m)
		}
		if opts.BBOnCA && b.Name == "BB" {
			if ca, ok := r.Atom("CA"); ok {
				b.Pos = ca.Pos
			}
		}
		beads = append(beads, b)
	}
	return beads, missing, true
}

// Unknowns returns the residues of the chain that have no CG mapping. Water is not included.
func (C *Chain) Unknowns() []*Residue {
	ret := make([]*Residue, 0)
	for _, r := range C.Residues {
		if _, _, ok := Mapping(r.Name); !ok && !IsWater(r.Name) {
			ret = append(ret, r)
		}
	}
	return ret
}

// CG returns the beads for the chain. The result is computed once for
// each set of options. Water and residues without mapping are skipped. If atoms
// are missing for any bead, the beads are returned with a *MissingAtomsError.
func (C *Chain) CG(opts MapOptions) ([]Bead, error) {
	if C.cgcached && C.cgopts == opts {
		return C.cg, C.cgerr
	}
	shift := opts.ShiftO3 && C.ctype == Nucleic
	ret := make([]Bead, 0, len(C.Residues)*3)
	var missing []string
	var prevO3 *mappedAtom
	first := 0
	for i, r := range C.Residues {
		atoms := make([]mappedAtom, 0, len(r.Atoms))
		for j, a := range r.Atoms {
			ma := mappedAtom{a, first + j}
			if shift && a.Name == "O3'" {
				cur := ma
				if prevO3 != nil {
					atoms = append(atoms, *prevO3)
				}
				prevO3 = &cur
				continue
			}
			atoms = append(atoms, ma)
		}
		first += len(r.Atoms)
		if IsWater(r.Name) {
			continue
		}
		beads, miss, ok := mapAtoms(r, atoms, opts)
		if !ok {
			continue
		}
		missing = append(missing, miss...)
		num := ss.Num(' ')
		if i < len(C.SSTypes) {
			num = ss.Num(C.SSTypes[i])
		}
		for k := range beads {
			beads[k].SSNum = num
			beads[k].Chain = C.ID
		}
		ret = append(ret, beads...)
	}
	var err error
	if len(missing) > 0 {
		err = &MissingAtomsError{Chain: C.ID, Residues: missing, deco: []string{"CG"}}
	}
	C.cg, C.cgerr, C.cgopts, C.cgcached = ret, err, opts, true
	return ret, err
}

// Mapping returns, for each bead of the chain (with the default options), the indexes of the atoms it
// was obtained from, in the flattened atom list of the chain.
func (C *Chain) Mapping() ([][]int, error) {
	beads, err := C.CG(MapOptions{})
	ret := make([][]int, len(beads))
	for i, b := range beads {
		ret[i] = append([]int(nil), b.Atoms...)
	}
	return ret, err
}
