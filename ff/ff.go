/*
 * ff.go, part of martinize
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

/*
Package ff provides the Martini force-field parameters used to build CG topologies.

Each force field is a ForceField value, obtained from the registry by its identifier,
which answers queries about backbone bead types, backbone bonded terms, sidechain
(or nucleobase) definitions, charges and elastic network defaults. Protein and nucleic acid
parameters live in different ForceFields, which come in families (a protein force field and
its nucleic acid counterpart) so systems with both kinds of chain can be described.
*/
package ff

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the kind of polymer a force field describes.
type Kind int

const (
	Protein Kind = iota
	Nucleic
)

func (K Kind) String() string {
	if K == Nucleic {
		return "Nucleic"
	}
	return "Protein"
}

// Params is a set of parameters for a bonded term. The first value is the
// equilibrium value (length in nm, or angle in degrees), the following are force
// constants, multiplicities, etc. A zero Func means the default function for the term.
type Params struct {
	Func   int
	Values []float64
	//The force constant is undefined: a bond with these parameters is a constraint.
	Constraint bool
}

// Defined returns true if the parameters hold any value.
func (P Params) Defined() bool {
	return len(P.Values) > 0
}

// Split returns the terms that the parameters describe. A set of more than 3 values
// holds a second term after the third value, which starts with its own function type,
// as in the proper dihedrals of nucleic acid backbones.
func (P Params) Split() []Params {
	if len(P.Values) <= 3 {
		return []Params{P}
	}
	first := Params{Func: P.Func, Values: P.Values[:3]}
	second := Params{Func: int(P.Values[3]), Values: P.Values[4:]}
	return append([]Params{first}, second.Split()...)
}

func (P Params) String() string {
	v := make([]string, len(P.Values))
	for i, f := range P.Values {
		v[i] = fmt.Sprintf("%g", f)
	}
	c := ""
	if P.Constraint {
		c = " (constraint)"
	}
	return fmt.Sprintf("%d: %s%s", P.Func, strings.Join(v, " "), c)
}

// Backbone describes one backbone bead taking part in a bonded term.
type Backbone struct {
	Res string //residue name
	//Position of the bead in the residue's backbone: always 0 for proteins,
	//0, 1 or 2 for nucleic acids.
	Pos int
	SS  byte       //secondary structure type, in the CG alphabet
	CA  [3]float64 //position of the CA atom of the residue (A). Only used by some force fields.
}

// Term is a bonded term in a residue definition. Atoms are indexes relative
// to the first bead of the residue. They can go beyond the residue (i.e. the first
// bead of the next residue).
type Term struct {
	Atoms  []int
	Params Params
}

// Residue is the definition of the sidechain (or nucleobase) of a residue. Dihedrals
// are proper dihedrals involving backbone and sidechain, Impropers, those within the sidechain.
type Residue struct {
	Beads      []string //bead types
	Bonds      []Term
	Angles     []Term
	Dihedrals  []Term
	Impropers  []Term
	VSites     []Term
	Exclusions [][]int
	Pairs      [][]int
}

// BeadRef identifies a bead by name and residue name, as used in special bonds.
type BeadRef struct {
	Name string
	Res  string
}

// ForceField is a set of Martini parameters for one kind of polymer.
type ForceField interface {
	Name() string
	Kind() Kind
	//Bead types for the backbone of the residue res, with secondary structure ss.
	BackboneBeads(res string, ss byte) ([]string, error)
	//Parameters for terms among backbone beads. An undefined Params means
	//that there is no such term.
	Bond(b []Backbone) Params
	Angle(b []Backbone) Params
	Dihedral(b []Backbone) Params
	Exclusion(b []Backbone) bool
	Pair(b []Backbone) bool
	Sidechain(res string) (Residue, error)
	Charge(beadType, beadName string) float64
	//The mass of a bead, if the force field sets it explicitly.
	Mass(beadName string) (float64, bool)
	//Parameters for bonds between specific beads, like cystine bridges.
	Special(a, b BeadRef) (Params, bool)
	ElasticNetwork() bool
	ElasticBondType() int
	UseBBSAngles() bool
	UseBBBBDihedrals() bool
	CAPositionedBB() bool
	BBSAngle() Params
	ExtendedBonds() (short, long Params)
}

// Family is a protein force field with its nucleic acid counterpart.
type Family struct {
	Protein ForceField
	Nucleic ForceField
}

// For returns the force field of the family for the given kind of polymer.
func (F Family) For(k Kind) ForceField {
	if k == Nucleic {
		return F.Nucleic
	}
	return F.Protein
}

var registry = map[string]func() ForceField{
	"martini22":        func() ForceField { return newMartini22() },
	"elnedyn22":        func() ForceField { return newElnedyn22() },
	"martini22nucleic": func() ForceField { return newNucleic("martini22nucleic", false) },
	"elnedyn22nucleic": func() ForceField { return newNucleic("elnedyn22nucleic", true) },
}

var families = map[string][2]string{
	"martini22":        {"martini22", "martini22nucleic"},
	"martini22nucleic": {"martini22", "martini22nucleic"},
	"elnedyn22":        {"elnedyn22", "elnedyn22nucleic"},
	"elnedyn22nucleic": {"elnedyn22", "elnedyn22nucleic"},
}

// Names returns the identifiers of all available force fields, sorted.
func Names() []string {
	ret := make([]string, 0, len(registry))
	for k := range registry {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Get returns the force field with the given identifier.
func Get(id string) (ForceField, error) {
	f, ok := registry[strings.ToLower(id)]
	if !ok {
		return nil, &Error{fmt.Sprintf("unknown force field %q, available: %s", id, strings.Join(Names(), " ")), []string{"Get"}, true}
	}
	return f(), nil
}

// GetFamily returns the family of the force field with the given identifier. Both
// the protein and the nucleic acid identifiers of a family give the same result.
func GetFamily(id string) (Family, error) {
	f, ok := families[strings.ToLower(id)]
	if !ok {
		return Family{}, &Error{fmt.Sprintf("unknown force field %q, available: %s", id, strings.Join(Names(), " ")), []string{"GetFamily"}, true}
	}
	p, _ := Get(f[0])
	n, _ := Get(f[1])
	return Family{Protein: p, Nucleic: n}, nil
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

// UnknownResidueError is returned when a residue is not in the force field tables.
// It is always critical, since the atom numbering of the topology can't be established.
type UnknownResidueError struct {
	Residue    string
	ForceField string
	deco       []string
}

func (err *UnknownResidueError) Error() string {
	return fmt.Sprintf("residue %s not defined in force field %s (%s)", err.Residue, err.ForceField, strings.Join(err.deco, ": "))
}

// Decorate adds dec to the error's decoration and returns it.
func (err *UnknownResidueError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical is always true for UnknownResidueError.
func (err *UnknownResidueError) Critical() bool { return true }

//Helpers to write the tables.

const ssTypes = "FEH123TSC"

// ssIndex returns the column for the secondary structure type ss in the tables.
// Undetermined or unknown types are coil.
func ssIndex(ss byte) int {
	i := strings.IndexByte(ssTypes, ss)
	if i < 0 {
		return len(ssTypes) - 1
	}
	return i
}

func p(fn int, v ...float64) Params {
	return Params{Func: fn, Values: v}
}

func constr(fn int, l float64) Params {
	return Params{Func: fn, Values: []float64{l}, Constraint: true}
}

func zip(con [][]int, par []Params) []Term {
	n := len(con)
	if len(par) < n {
		n = len(par)
	}
	ret := make([]Term, n)
	for i := range ret {
		ret[i] = Term{Atoms: con[i], Params: par[i]}
	}
	return ret
}

func pos(b []Backbone) []int {
	ret := make([]int, len(b))
	for i, v := range b {
		ret[i] = v.Pos
	}
	return ret
}
