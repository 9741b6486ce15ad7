package top

import (
	"fmt"
	"math"
	"strings"
)

// Category tells where a bonded term comes from, which decides
// the section and comment under which it is written.
type Category int

const (
	BB Category = iota
	SC
	BBS
	BSC
	Constraint
	RubberBand
	ElasticShort
	ElasticLong
	Cystine
	Link
)

var categoryNames = [...]string{"BB", "SC", "BBS", "BSC", "Constraint", "RubberBand", "ElasticShort", "ElasticLong", "Cystine", "Link"}

func (C Category) String() string {
	if C < 0 || int(C) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(C))
	}
	return categoryNames[C]
}

// Kind is the kind of bonded term.
type Kind int

const (
	Bond Kind = iota
	Angle
	Dihedral
	Pair
	Exclusion
	VSite
)

// Param is one parameter of a bonded term, either a number or a
// symbolic expression for the Gromacs preprocessor, like RUBBER_FC*0.5.
type Param struct {
	Value float64
	Expr  string
}

// Num returns a numeric parameter.
func Num(v float64) Param { return Param{Value: v} }

// Expr returns a symbolic parameter.
func Expr(e string) Param { return Param{Expr: e} }

// Symbolic returns true if the parameter is an expression.
func (P Param) Symbolic() bool { return P.Expr != "" }

// format writes the parameter the way Gromacs topologies usually show them.
// Integral values after the first one (multiplicities and the like) are written as integers.
func (P Param) format(first bool) string {
	if P.Symbolic() {
		return P.Expr
	}
	v := P.Value
	if !first && v == math.Trunc(v) && math.Abs(v) < 1e9 {
		return fmt.Sprintf("%5d", int(v))
	}
	if v != 0 && math.Abs(v) < 1e-5 {
		return fmt.Sprintf("%2.1e", v)
	}
	return fmt.Sprintf("%8.5f", v)
}

// Term is a bonded term of a topology. Atoms are 1-based atom numbers.
// A Func of 0 means that no function type is written, as in exclusions.
type Term struct {
	Kind     Kind
	Atoms    []int
	Func     int
	Params   []Param
	Comment  string
	Category Category
}

// Shift returns a copy of the term with all its atom numbers increased by n.
func (T Term) Shift(n int) Term {
	R := T
	R.Atoms = make([]int, len(T.Atoms))
	for i, v := range T.Atoms {
		R.Atoms[i] = v + n
	}
	R.Params = append([]Param(nil), T.Params...)
	return R
}

// Has returns true if the atom number id takes part in the term.
func (T Term) Has(id int) bool {
	for _, v := range T.Atoms {
		if v == id {
			return true
		}
	}
	return false
}

// Max returns the largest atom number in the term.
func (T Term) Max() int {
	m := 0
	for _, v := range T.Atoms {
		if v > m {
			m = v
		}
	}
	return m
}

// Inert returns true for bonds whose force constant is exactly zero. They are not written.
func (T Term) Inert() bool {
	return T.Kind == Bond && T.Category != Constraint && len(T.Params) > 1 && !T.Params[1].Symbolic() && T.Params[1].Value == 0
}

// SameAtoms returns true if both terms involve the same atoms, in any order.
func (T Term) SameAtoms(O Term) bool {
	if len(T.Atoms) != len(O.Atoms) {
		return false
	}
	for _, v := range T.Atoms {
		if !O.Has(v) {
			return false
		}
	}
	return true
}

// ToGro writes the term as a line of a Gromacs topology.
func (T Term) ToGro() (string, error) {
	if len(T.Atoms) == 0 || T.Inert() {
		return "", nil
	}
	s := make([]string, 0, len(T.Atoms)+len(T.Params)+3)
	for _, v := range T.Atoms {
		s = append(s, fmt.Sprintf("%5d", v))
	}
	if T.Func != 0 {
		s = append(s, fmt.Sprintf(" %5d ", T.Func))
	}
	for i, v := range T.Params {
		s = append(s, v.format(i == 0))
	}
	if T.Comment != "" {
		s = append(s, ";", T.Comment)
	}
	return strings.Join(s, " ") + "\n", nil
}

// Terms is a list of bonded terms.
type Terms []Term

// Of returns the terms in any of the given categories, in order.
func (T Terms) Of(cat ...Category) Terms {
	ret := make(Terms, 0, len(T))
	for _, v := range T {
		for _, c := range cat {
			if v.Category == c {
				ret = append(ret, v)
				break
			}
		}
	}
	return ret
}

// Shift returns a copy of the terms with all atom numbers increased by n.
func (T Terms) Shift(n int) Terms {
	ret := make(Terms, len(T))
	for i, v := range T {
		ret[i] = v.Shift(n)
	}
	return ret
}

// Contains returns true if some term in the list involves exactly the atoms of t.
func (T Terms) Contains(t Term) bool {
	for _, v := range T {
		if v.SameAtoms(t) {
			return true
		}
	}
	return false
}

// without returns the terms not involving the atom id, with every
// atom number above id decreased by one.
func (T Terms) without(id int) Terms {
	ret := make(Terms, 0, len(T))
	for _, v := range T {
		if v.Has(id) {
			continue
		}
		v = v.Shift(0)
		for i, a := range v.Atoms {
			if a > id {
				v.Atoms[i] = a - 1
			}
		}
		ret = append(ret, v)
	}
	return ret
}

// upTo returns the terms whose atoms are all at most last.
func (T Terms) upTo(last int) Terms {
	ret := make(Terms, 0, len(T))
	for _, v := range T {
		if v.Max() <= last {
			ret = append(ret, v)
		}
	}
	return ret
}
