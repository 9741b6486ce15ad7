/*
 * chain.go, part of martinize
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
	"strings"

	"github.com/rmera/martinize/ss"
)

// BreakCutoff2 is the squared distance (A^2) between backbone atoms of consecutive
// residues above which the backbone is considered broken.
const BreakCutoff2 = 3.0

var breakSelection = map[string]bool{
	"N": true, "CA": true, "C": true, "P": true, "C2'": true,
	"C3'": true, "O3'": true, "C4'": true, "C5'": true, "O5'": true,
}

// Link is a bond between two atoms of a chain, each given by residue index
// and atom index within that residue.
type Link struct {
	ResA, AtomA int
	ResB, AtomB int
}

// Chain is an ordered set of residues with the information derived from them.
type Chain struct {
	ID       string
	Residues []*Residue
	//Residue indexes where a new fragment starts.
	Breaks []int
	Links  []Link
	//Raw secondary structure, in the CG alphabet, and its classification.
	SS      string
	SSClass string
	SSTypes string
	//If true, the atomistic detail is kept with the CG beads as virtual sites.
	Multiscale bool

	ctype    ChainType
	cg       []Bead
	cgopts   MapOptions
	cgerr    error
	cgcached bool
}

// NewChain returns a Chain with id made of residues. The chain type is set
// and, for polymers, the backbone breaks are determined.
func NewChain(id string, residues []*Residue) *Chain {
	if len(residues) == 0 {
		panic(ErrNoResidues)
	}
	C := &Chain{ID: id, Residues: residues}
	C.ctype = chainType(residues)
	if C.ctype == Protein || C.ctype == Mixed {
		C.Breaks = Breaks(residues)
	}
	return C
}

func chainType(residues []*Residue) ChainType {
	var t ChainType = -1
	for _, r := range residues {
		rt := ResidueType(r.Name)
		if t < 0 {
			t = rt
		} else if t != rt {
			return Mixed
		}
	}
	return t
}

// Breaks returns the indexes of the residues that start a new backbone fragment.
// Residues without backbone atoms are not considered when measuring distances,
// but the returned indexes refer to the original residue slice.
func Breaks(residues []*Residue) []int {
	type bbres struct {
		index  int
		coords [][3]float64
	}
	bb := make([]bbres, 0, len(residues))
	for i, r := range residues {
		c := make([][3]float64, 0, 4)
		for _, a := range r.Atoms {
			if breakSelection[a.Name] {
				c = append(c, a.Pos)
			}
		}
		if len(c) > 0 {
			bb = append(bb, bbres{i, c})
		}
	}
	ret := make([]int, 0)
	for i := 0; i < len(bb)-1; i++ {
		if minDistance2(bb[i].coords, bb[i+1].coords) > BreakCutoff2 {
			ret = append(ret, bb[i+1].index)
		}
	}
	return ret
}

// Len returns the number of residues in the chain.
func (C *Chain) Len() int { return len(C.Residues) }

// Type returns the type of the chain.
func (C *Chain) Type() ChainType { return C.ctype }

// Sequence returns the residue names of the chain.
func (C *Chain) Sequence() []string {
	ret := make([]string, len(C.Residues))
	for i, r := range C.Residues {
		ret[i] = r.Name
	}
	return ret
}

// Seq returns the one-letter sequence of the chain.
func (C *Chain) Seq() string {
	var b strings.Builder
	for _, r := range C.Residues {
		b.WriteString(OneLetter(r.Name))
	}
	return b.String()
}

// Atoms returns the atoms of all residues of the chain, in order.
func (C *Chain) Atoms() []Atom {
	ret := make([]Atom, 0, len(C.Residues)*8)
	for _, r := range C.Residues {
		ret = append(ret, r.Atoms...)
	}
	return ret
}

// NAtoms returns the total number of atoms in the chain.
func (C *Chain) NAtoms() int {
	n := 0
	for _, r := range C.Residues {
		n += len(r.Atoms)
	}
	return n
}

// Slice returns a new chain with the residues from i to j (not included).
// Only the breaks and links that fall within the slice are kept, with their
// indexes shifted accordingly.
func (C *Chain) Slice(i, j int) *Chain {
	N := &Chain{ID: C.ID, Residues: C.Residues[i:j], Multiscale: C.Multiscale}
	N.ctype = chainType(N.Residues)
	for _, b := range C.Breaks {
		if b > i && b < j {
			N.Breaks = append(N.Breaks, b-i)
		}
	}
	for _, l := range C.Links {
		if l.ResA >= i && l.ResA < j && l.ResB >= i && l.ResB < j {
			N.Links = append(N.Links, Link{l.ResA - i, l.AtomA, l.ResB - i, l.AtomB})
		}
	}
	if len(C.SS) >= j {
		N.SS = C.SS[i:j]
	}
	if len(C.SSClass) >= j {
		N.SSClass = C.SSClass[i:j]
	}
	if len(C.SSTypes) >= j {
		N.SSTypes = C.SSTypes[i:j]
	}
	return N
}

// Split divides the chain in homogeneous sub-chains, one for each run of residues
// of the same type. A chain that is already homogeneous is returned alone.
func (C *Chain) Split() []*Chain {
	ret := make([]*Chain, 0, 1)
	start := 0
	for i := 0; i < len(C.Residues)-1; i++ {
		if ResidueType(C.Residues[i].Name) != ResidueType(C.Residues[i+1].Name) {
			ret = append(ret, C.Slice(start, i+1))
			start = i + 1
		}
	}
	if start == 0 {
		return []*Chain{C}
	}
	return append(ret, C.Slice(start, len(C.Residues)))
}

// Name returns the name of the molecule made from the chain: the basename
// (or the chain type, if basename is empty) and the chain id, joined by '_'.
func (C *Chain) Name(basename string) string {
	name := make([]string, 0, 2)
	if basename != "" {
		name = append(name, basename)
	} else {
		name = append(name, C.ctype.String())
	}
	if id := strings.TrimSpace(C.ID); id != "" {
		name = append(name, id)
	}
	return strings.Join(name, "_")
}

// SetSS sets the raw secondary structure for the chain, and classifies it.
// The structure is given in the alphabet of src. A structure longer than the chain
// is truncated, a shorter one is completed with coil.
func (C *Chain) SetSS(raw string, src ss.Source) {
	if len(raw) < C.Len() {
		raw += strings.Repeat("C", C.Len()-len(raw))
	}
	if len(raw) > C.Len() {
		raw = raw[:C.Len()]
	}
	C.SS = raw
	C.SSClass, C.SSTypes = ss.Classify(raw, src)
	C.cgcached = false
}

// DefaultSS returns the structure used for the chain when no SS oracle or
// user-supplied structure is available: coil for proteins and '-' for anything else.
func (C *Chain) DefaultSS() string {
	if C.ctype == Protein {
		return strings.Repeat("C", C.Len())
	}
	return strings.Repeat("-", C.Len())
}

// ResiduesNamed returns the residues called name, like all the cysteines of the chain.
func (C *Chain) ResiduesNamed(name string) []*Residue {
	ret := make([]*Residue, 0)
	for _, r := range C.Residues {
		if r.Name == name {
			ret = append(ret, r)
		}
	}
	return ret
}

// Equal returns true if both chains would produce the same moleculetype.
func (C *Chain) Equal(O *Chain) bool {
	if C.Seq() != O.Seq() || C.SS != O.SS || C.Multiscale != O.Multiscale {
		return false
	}
	if len(C.Breaks) != len(O.Breaks) || len(C.Links) != len(O.Links) {
		return false
	}
	for i, v := range C.Breaks {
		if O.Breaks[i] != v {
			return false
		}
	}
	for i, v := range C.Links {
		if O.Links[i] != v {
			return false
		}
	}
	return true
}

// Contains returns true if some atom of the chain matches spec.
func (C *Chain) Contains(spec AtomSpec) bool {
	if spec.Chain != "" && spec.Chain != C.ID {
		return false
	}
	for _, r := range C.Residues {
		if !spec.matchesResidue(r) {
			continue
		}
		if spec.Atom == "" {
			return true
		}
		if _, ok := r.Atom(spec.Atom); ok {
			return true
		}
	}
	return false
}

// FindAtom returns the residue and atom indexes of the first atom matching spec,
// which must name an atom.
func (C *Chain) FindAtom(spec AtomSpec) (res, atom int, err error) {
	if spec.Chain != "" && spec.Chain != C.ID {
		return -1, -1, &CError{fmt.Sprintf("atom %s not in chain %s", spec, C.ID), []string{"FindAtom"}, false}
	}
	for i, r := range C.Residues {
		if !spec.matchesResidue(r) {
			continue
		}
		for j, a := range r.Atoms {
			if a.Name == spec.Atom {
				return i, j, nil
			}
		}
	}
	return -1, -1, &CError{fmt.Sprintf("atom %s not in chain %s", spec, C.ID), []string{"FindAtom"}, false}
}

func (C *Chain) String() string {
	return fmt.Sprintf("%s (%s), %d atoms in %d residues", C.ID, C.ctype, C.NAtoms(), C.Len())
}

// DSSPRecords returns the atoms of the chain in the form the DSSP handle takes them.
func (C *Chain) DSSPRecords() []ss.Record {
	ret := make([]ss.Record, 0, C.NAtoms())
	for _, a := range C.Atoms() {
		ch := a.Chain
		if ch == 0 {
			ch = ' '
		}
		ret = append(ret, ss.Record{Name: a.Name, ResName: a.ResName, ResSeq: a.ResID.Seq, ICode: a.ResID.ICode, Chain: ch, Pos: a.Pos})
	}
	return ret
}
