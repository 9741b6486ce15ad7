/*
 * chem.go, part of martinize
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
)

// ResID identifies a residue within a chain: its sequence number and its
// insertion code. A blank insertion code is ' '.
// ResIDs built with NewResID compare equal to those read from structure files
// without insertion code.
type ResID struct {
	Seq   int
	ICode byte
}

// NewResID returns the ResID for seq with a blank insertion code.
func NewResID(seq int) ResID {
	return ResID{Seq: seq, ICode: ' '}
}

// Less orders residue identifiers by sequence number, then by insertion code.
func (r ResID) Less(o ResID) bool {
	if r.Seq != o.Seq {
		return r.Seq < o.Seq
	}
	return r.ICode < o.ICode
}

func (r ResID) String() string {
	if r.ICode == ' ' || r.ICode == 0 {
		return fmt.Sprintf("%d", r.Seq)
	}
	return fmt.Sprintf("%d%c", r.Seq, r.ICode)
}

// Code returns the insertion code as a string suitable for a PDB line.
func (r ResID) Code() string {
	if r.ICode == 0 {
		return " "
	}
	return string(r.ICode)
}

// Atom is one atom record of a structure frame. Coordinates are in A.
type Atom struct {
	Name    string
	ResName string
	ResID   ResID
	Chain   byte
	Pos     [3]float64
}

func (A Atom) String() string {
	return fmt.Sprintf("%s %s%s %c", A.Name, A.ResName, A.ResID, A.Chain)
}

// Residue is an ordered set of atoms sharing residue name, id and chain.
type Residue struct {
	Name  string
	ID    ResID
	Chain byte
	Atoms []Atom
}

// Atom returns the first atom called name, and whether it was found.
func (R *Residue) Atom(name string) (Atom, bool) {
	for _, v := range R.Atoms {
		if v.Name == name {
			return v, true
		}
	}
	return Atom{}, false
}

// Match returns the atoms whose names contain sub.
func (R *Residue) Match(sub string) []Atom {
	ret := make([]Atom, 0, 2)
	for _, v := range R.Atoms {
		if strings.Contains(v.Name, sub) {
			ret = append(ret, v)
		}
	}
	return ret
}

// Len returns the number of atoms in the residue.
func (R *Residue) Len() int { return len(R.Atoms) }

// Copy returns a deep copy of the residue.
func (R *Residue) Copy() *Residue {
	r := *R
	r.Atoms = append([]Atom(nil), R.Atoms...)
	return &r
}

// Residues groups consecutive atoms into residues. A new residue starts whenever
// the residue name, id or chain of an atom differs from the previous one.
func Residues(atoms []Atom) []*Residue {
	ret := make([]*Residue, 0, len(atoms)/8+1)
	var cur *Residue
	for _, a := range atoms {
		if cur == nil || a.ResName != cur.Name || a.ResID != cur.ID || a.Chain != cur.Chain {
			cur = &Residue{Name: a.ResName, ID: a.ResID, Chain: a.Chain}
			ret = append(ret, cur)
		}
		cur.Atoms = append(cur.Atoms, a)
	}
	return ret
}

// ChainType is the kind of polymer a chain contains.
type ChainType int

const (
	Unknown ChainType = iota
	Protein
	Nucleic
	Mixed
	Water
)

func (C ChainType) String() string {
	switch C {
	case Protein:
		return "Protein"
	case Nucleic:
		return "Nucleic"
	case Mixed:
		return "Mixed"
	case Water:
		return "Water"
	}
	return "Unknown"
}

// ResidueType returns the chain type a residue called name belongs to.
func ResidueType(name string) ChainType {
	if t, ok := residueTypes[name]; ok {
		return t
	}
	return Unknown
}

// CanonicalResName returns the standard name for a residue, translating
// the alternative nucleotide names (DAD, ADE...) to DA, DC, DG, DT and U.
func CanonicalResName(name string) string {
	if n, ok := residueAliases[name]; ok {
		return n
	}
	return name
}

// OneLetter returns the one-letter code of a residue, or "X" if unknown.
// DNA residues are in lower case, so they can be told apart from RNA.
func OneLetter(name string) string {
	if c, ok := three2OneLetter[CanonicalResName(name)]; ok {
		return c
	}
	return "X"
}
