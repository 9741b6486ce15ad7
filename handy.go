/*
 * handy.go, part of martinize
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
	"strconv"
	"strings"
	"unicode"
)

// AtomSpec selects atoms (or CG beads) by chain, residue name, residue id and name.
// Empty fields match anything. The residue id is always given.
type AtomSpec struct {
	Chain   string
	ResName string
	ResID   ResID
	Atom    string
}

func (S AtomSpec) String() string {
	f := make([]string, 0, 4)
	if S.Chain != "" {
		f = append(f, S.Chain)
	}
	if S.ResName != "" {
		f = append(f, S.ResName)
	}
	f = append(f, S.ResID.String())
	if S.Atom != "" {
		f = append(f, S.Atom)
	}
	return strings.Join(f, "/")
}

func (S AtomSpec) matchesResidue(r *Residue) bool {
	if r.ID != S.ResID {
		return false
	}
	return S.ResName == "" || S.ResName == r.Name
}

// MatchesBead returns true if the bead b is selected by the spec.
func (S AtomSpec) MatchesBead(b Bead) bool {
	if S.Chain != "" && S.Chain != b.Chain {
		return false
	}
	if S.ResID != b.ResID || (S.ResName != "" && S.ResName != b.ResName) {
		return false
	}
	return S.Atom == "" || S.Atom == b.Name
}

// ParseAtomSpec reads one of the forms resid, resname/resid, chain/resname/resid,
// resname/resid/atom or chain/resname/resid/atom. resid may carry an insertion
// code, as in 12A.
func ParseAtomSpec(s string) (AtomSpec, error) {
	f := strings.Split(strings.TrimSpace(s), "/")
	var ret AtomSpec
	var id string
	switch len(f) {
	case 1:
		id = f[0]
	case 2:
		ret.ResName, id = f[0], f[1]
	case 3:
		if _, ok := parseResID(f[2]); ok {
			ret.Chain, ret.ResName, id = f[0], f[1], f[2]
		} else {
			ret.ResName, id, ret.Atom = f[0], f[1], f[2]
		}
	case 4:
		ret.Chain, ret.ResName, id, ret.Atom = f[0], f[1], f[2], f[3]
	default:
		return ret, &CError{fmt.Sprintf("can't parse atom specification %q", s), []string{"ParseAtomSpec"}, true}
	}
	r, ok := parseResID(id)
	if !ok {
		return ret, &CError{fmt.Sprintf("bad residue number in atom specification %q", s), []string{"ParseAtomSpec"}, true}
	}
	ret.ResID = r
	return ret, nil
}

// parseResID reads a residue number, optionally followed by a one-letter
// insertion code, like 12 or 12A.
func parseResID(id string) (ResID, bool) {
	icode := byte(' ')
	if n := len(id); n > 1 && unicode.IsLetter(rune(id[n-1])) {
		icode, id = id[n-1], id[:n-1]
	}
	seq, err := strconv.Atoi(id)
	if err != nil {
		return ResID{}, false
	}
	return ResID{Seq: seq, ICode: icode}, true
}

// CGLink is a bond to be added between two CG beads.
type CGLink struct {
	A, B AtomSpec
	//If Special is true, the length and force constant are taken from the force field.
	Special   bool
	Length    float64
	HasLength bool
	FC        float64
	HasFC     bool
}

// ParseLink reads a link given as a,b[,length[,fc]], where a and b are atom
// specifications naming CG beads. An empty length means the distance in the structure.
// Without force constant the link is a constraint.
func ParseLink(s string) (CGLink, error) {
	f := strings.Split(s, ",")
	var ret CGLink
	if len(f) < 2 || len(f) > 4 {
		return ret, &CError{fmt.Sprintf("can't parse link %q", s), []string{"ParseLink"}, true}
	}
	var err error
	if ret.A, err = ParseAtomSpec(f[0]); err != nil {
		return ret, errDecorate(err, "ParseLink")
	}
	if ret.B, err = ParseAtomSpec(f[1]); err != nil {
		return ret, errDecorate(err, "ParseLink")
	}
	if len(f) > 2 && strings.TrimSpace(f[2]) != "" {
		if ret.Length, err = strconv.ParseFloat(strings.TrimSpace(f[2]), 64); err != nil {
			return ret, &CError{fmt.Sprintf("bad length in link %q", s), []string{"ParseLink"}, true}
		}
		ret.HasLength = true
	}
	if len(f) > 3 {
		if ret.FC, err = strconv.ParseFloat(strings.TrimSpace(f[3]), 64); err != nil {
			return ret, &CError{fmt.Sprintf("bad force constant in link %q", s), []string{"ParseLink"}, true}
		}
		ret.HasFC = true
	}
	return ret, nil
}

// CystineLink returns the CG link between the SC1 beads of two cysteines given as
// atom specifications. Its parameters come from the force field.
func CystineLink(a, b AtomSpec) CGLink {
	a.ResName, b.ResName = "CYS", "CYS"
	a.Atom, b.Atom = "SC1", "SC1"
	return CGLink{A: a, B: b, Special: true}
}

// ParseCystines reads one value given to the cystine option: "auto", a cutoff in nm,
// or a pair of cysteines "A/CYS/12,B/CYS/40". It returns the squared cutoff in A^2
// (0 if none was given) and the link for an explicit pair.
func ParseCystines(s string) (cutoff2 float64, link *CGLink, err error) {
	s = strings.TrimSpace(s)
	if strings.ToLower(s) == "auto" {
		return DefaultCystineCutoff2, nil, nil
	}
	if v, perr := strconv.ParseFloat(s, 64); perr == nil {
		return (10 * v) * (10 * v), nil, nil
	}
	f := strings.Split(s, ",")
	if len(f) != 2 {
		return 0, nil, &CError{fmt.Sprintf("can't parse cystine pair %q", s), []string{"ParseCystines"}, true}
	}
	a, err := ParseAtomSpec(f[0])
	if err != nil {
		return 0, nil, errDecorate(err, "ParseCystines")
	}
	b, err := ParseAtomSpec(f[1])
	if err != nil {
		return 0, nil, errDecorate(err, "ParseCystines")
	}
	l := CystineLink(a, b)
	return 0, &l, nil
}

// DefaultCystineCutoff2 is the default squared SG-SG distance (A^2) for cystine detection.
const DefaultCystineCutoff2 = (10 * 0.22) * (10 * 0.22)

// Atomistic returns the residue-level specifications of both ends of the link,
// as used to decide whether two chains are linked.
func (L CGLink) Atomistic() (AtomSpec, AtomSpec) {
	a, b := L.A, L.B
	a.Atom, b.Atom = "", ""
	return a, b
}
