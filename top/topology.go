package top

import (
	"fmt"
	"strings"

	martini "github.com/rmera/martinize"
)

// Atom is one entry of the [ atoms ] section.
type Atom struct {
	ID      int
	Type    string
	ResID   int //residue number within the molecule
	ResName string
	Name    string
	CGNr    int
	Charge  float64
	Mass    float64
	HasMass bool
	SS      byte //secondary structure type, only written as a comment

	//The bead the atom stands for in the CG structure, and its position (A).
	Bead martini.AtomSpec
	Pos  [3]float64
}

// ToGro writes the atom as a line of the [ atoms ] section.
func (A Atom) ToGro() (string, error) {
	ss := string(A.SS)
	if A.SS == 0 {
		ss = " "
	}
	if A.HasMass {
		return fmt.Sprintf("%5d %5s %5d %5s %5s %5d %7.4f %7.4f ; %s\n", A.ID, A.Type, A.ResID, A.ResName, A.Name, A.CGNr, A.Charge, A.Mass, ss), nil
	}
	return fmt.Sprintf("%5d %5s %5d %5s %5s %5d %7.4f ; %s\n", A.ID, A.Type, A.ResID, A.ResName, A.Name, A.CGNr, A.Charge, ss), nil
}

// MapEntry ties a CG virtual site to the atomistic atoms it is built from,
// in multiscale topologies.
type MapEntry struct {
	ID    int
	Atoms []int
}

func (M MapEntry) ToGro() (string, error) {
	at := make([]string, len(M.Atoms))
	for i, v := range M.Atoms {
		at[i] = fmt.Sprintf("%5d", v)
	}
	return fmt.Sprintf("%5d     2 ", M.ID) + strings.Join(at, " ") + "\n", nil
}

// Topology is a Gromacs moleculetype built from one or more chains.
type Topology struct {
	Name string
	FF   string //name of the force field, for the header
	//Command line used to produce the topology, written in the header if not empty.
	Arguments string
	Sequence  string //one-letter
	SS        string
	//In multiscale topologies the atoms are virtual sites placed on top of
	//an atomistic moleculetype, whose atoms come first in the numbering.
	Multiscale bool
	//Largest atom number of the molecule, atomistic atoms included.
	NAtoms int
	Nrexcl int

	Atoms      []Atom
	Bonds      Terms //constraints are kept here too, in the Constraint category
	Angles     Terms
	Dihedrals  Terms
	Pairs      Terms
	Exclusions Terms
	VSites     Terms
	PosRes     []int
	Mapping    []MapEntry

	RubberFC float64 //default value for RUBBER_FC
	PosResFC float64 //default value for POSRES_FC
}

// New returns an empty topology.
func New(name, ffname string) *Topology {
	return &Topology{Name: name, FF: ffname, Nrexcl: 1, RubberFC: 500, PosResFC: 1000}
}

// Len returns the number of CG atoms in the topology.
func (T *Topology) Len() int { return len(T.Atoms) }

func (T *Topology) lastResID() int {
	if len(T.Atoms) == 0 {
		return 0
	}
	return T.Atoms[len(T.Atoms)-1].ResID
}

func (T *Topology) lastCGNr() int {
	if len(T.Atoms) == 0 {
		return 0
	}
	return T.Atoms[len(T.Atoms)-1].CGNr
}

// Append adds the atoms and terms of O at the end of the receiver. The atom numbers,
// residue numbers and charge groups of O are shifted to follow those of the receiver.
func (T *Topology) Append(O *Topology) {
	shift := T.NAtoms
	rshift, cgshift := T.lastResID(), T.lastCGNr()
	for _, a := range O.Atoms {
		a.ID += shift
		a.ResID += rshift
		a.CGNr += cgshift
		T.Atoms = append(T.Atoms, a)
	}
	T.Bonds = append(T.Bonds, O.Bonds.Shift(shift)...)
	T.Angles = append(T.Angles, O.Angles.Shift(shift)...)
	T.Dihedrals = append(T.Dihedrals, O.Dihedrals.Shift(shift)...)
	T.Pairs = append(T.Pairs, O.Pairs.Shift(shift)...)
	T.Exclusions = append(T.Exclusions, O.Exclusions.Shift(shift)...)
	T.VSites = append(T.VSites, O.VSites.Shift(shift)...)
	for _, v := range O.PosRes {
		T.PosRes = append(T.PosRes, v+shift)
	}
	for _, m := range O.Mapping {
		e := MapEntry{ID: m.ID + shift, Atoms: make([]int, len(m.Atoms))}
		for i, v := range m.Atoms {
			e.Atoms[i] = v + shift
		}
		T.Mapping = append(T.Mapping, e)
	}
	T.NAtoms += O.NAtoms
	T.Sequence += O.Sequence
	T.SS += O.SS
	T.Multiscale = T.Multiscale || O.Multiscale
}

// Atom returns the atom with the number id, if present.
func (T *Topology) Atom(id int) (Atom, bool) {
	for _, a := range T.Atoms {
		if a.ID == id {
			return a, true
		}
	}
	return Atom{}, false
}

// Find returns the first atom whose bead matches spec.
func (T *Topology) Find(spec martini.AtomSpec) (Atom, bool) {
	for _, a := range T.Atoms {
		b := martini.Bead{Name: a.Bead.Atom, ResName: a.Bead.ResName, ResID: a.Bead.ResID, Chain: a.Bead.Chain}
		if spec.MatchesBead(b) {
			return a, true
		}
	}
	return Atom{}, false
}

// Check verifies that the CG atoms are numbered consecutively and that
// every term refers to existing atoms.
func (T *Topology) Check() error {
	if len(T.Atoms) == 0 {
		return &Error{fmt.Sprintf("topology %s has no atoms", T.Name), []string{"Check"}, true}
	}
	first := T.Atoms[0].ID
	for i, a := range T.Atoms {
		if a.ID != first+i {
			return &Error{fmt.Sprintf("topology %s: atom %d numbered %d, expected %d", T.Name, i+1, a.ID, first+i), []string{"Check"}, true}
		}
	}
	last := first + len(T.Atoms) - 1
	for _, list := range []Terms{T.Bonds, T.Angles, T.Dihedrals, T.Pairs, T.Exclusions, T.VSites} {
		for _, t := range list {
			for _, v := range t.Atoms {
				if v < first || v > last {
					return &Error{fmt.Sprintf("topology %s: term %v refers to atom %d, out of %d-%d", T.Name, t.Atoms, v, first, last), []string{"Check"}, true}
				}
			}
		}
	}
	return nil
}

// Error is the error type for the package.
type Error struct {
	msg      string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s (%s)", err.msg, strings.Join(err.deco, ": "))
}

// Decorate adds dec to the error's decoration and returns it.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical returns true if the error is not recoverable.
func (err *Error) Critical() bool { return err.critical }

// ChainTypeError is returned when a topology is requested for a chain
// of a type that no builder handles (mixed chains, water, unknown residues).
type ChainTypeError struct {
	Chain string
	Type  martini.ChainType
	deco  []string
}

func (err *ChainTypeError) Error() string {
	return fmt.Sprintf("can't build a topology for chain %s of type %s (%s)", err.Chain, err.Type, strings.Join(err.deco, ": "))
}

// Decorate adds dec to the error's decoration and returns it.
func (err *ChainTypeError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical is always true for ChainTypeError.
func (err *ChainTypeError) Critical() bool { return true }

type decorator interface {
	Decorate(string) []string
}

func errDecorate(err error, info string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(decorator); ok {
		e.Decorate(info)
	}
	return err
}
