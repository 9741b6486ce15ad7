package top

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// cond keeps track of the conditional parts of a Gromacs topology
// (#ifdef, #ifndef, #else, #endif) given the defined flags.
type cond struct {
	stack []bool
}

func (c *cond) reading() bool {
	for _, v := range c.stack {
		if !v {
			return false
		}
	}
	return true
}

// read returns true if line is to be interpreted. Preprocessor
// lines are consumed and always return false.
func (c *cond) read(line string, defines []string) bool {
	f := strings.Fields(line)
	switch {
	case strings.HasPrefix(line, "#ifdef") && len(f) > 1:
		c.stack = append(c.stack, slices.Contains(defines, f[1]))
		return false
	case strings.HasPrefix(line, "#ifndef") && len(f) > 1:
		c.stack = append(c.stack, !slices.Contains(defines, f[1]))
		return false
	case strings.HasPrefix(line, "#else"):
		if len(c.stack) > 0 {
			c.stack[len(c.stack)-1] = !c.stack[len(c.stack)-1]
		}
		return false
	case strings.HasPrefix(line, "#endif"):
		if len(c.stack) > 0 {
			c.stack = c.stack[:len(c.stack)-1]
		}
		return false
	case strings.HasPrefix(line, "#"):
		return false
	}
	return c.reading()
}

// Returns a string without gromacs comments (sequences starting with ';'),
// trailing and leading spaces, tabs and newlines
func cleanString(s string) string {
	f := strings.Split(s, ";")[0]
	return strings.Trim(f, "\n\t ")
}

func comment(s string) string {
	i := strings.Index(s, ";")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(s[i+1:])
}

var header = regexp.MustCompile(`^\[\p{Zs}*([a-z_0-9]+)\p{Zs}*\]$`)

// sectionName returns the name of the Gromacs header in line, or an empty string
// if the line is not a header.
func sectionName(line string) string {
	m := header.FindStringSubmatch(cleanString(line))
	if m == nil {
		return ""
	}
	return m[1]
}

func parseints(s ...string) ([]int, error) {
	r := make([]int, 0, len(s))
	for _, v := range s {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

// number of atoms per term for each section.
var termAtoms = map[string]int{
	"bonds":          2,
	"constraints":    2,
	"pairs":          2,
	"angles":         3,
	"dihedrals":      4,
	"virtual_sites3": 4,
}

// ReadITP reads a single moleculetype from a Gromacs itp file, as written by
// WriteITP. Only the parts enclosed in conditionals whose flags are in defines are read.
// Sections unknown to the package are ignored.
func ReadITP(r io.Reader, defines ...string) (*Topology, error) {
	T := New("", "")
	in := bufio.NewScanner(r)
	c := new(cond)
	var sec string
	nline := 0
	for in.Scan() {
		nline++
		raw := in.Text()
		s := cleanString(raw)
		if s == "" {
			continue
		}
		if !c.read(s, defines) {
			continue
		}
		if h := sectionName(s); h != "" {
			sec = h
			continue
		}
		var err error
		switch sec {
		case "moleculetype":
			f := strings.Fields(s)
			T.Name = f[0]
			if len(f) > 1 {
				T.Nrexcl, err = strconv.Atoi(f[1])
			}
		case "atoms":
			var a Atom
			a, err = atomFromGro(s, comment(raw))
			if err == nil {
				T.Atoms = append(T.Atoms, a)
				if a.ID > T.NAtoms {
					T.NAtoms = a.ID
				}
			}
		case "exclusions":
			var ids []int
			ids, err = parseints(strings.Fields(s)...)
			T.Exclusions = append(T.Exclusions, Term{Kind: Exclusion, Atoms: ids, Comment: comment(raw)})
		case "position_restraints":
			var ids []int
			ids, err = parseints(strings.Fields(s)[:1]...)
			if err == nil {
				T.PosRes = append(T.PosRes, ids[0])
			}
		case "mapping":
			var ids []int
			f := strings.Fields(s)
			if len(f) < 3 {
				err = fmt.Errorf("short mapping line")
				break
			}
			ids, err = parseints(append(f[:1:1], f[2:]...)...)
			if err == nil {
				T.Mapping = append(T.Mapping, MapEntry{ID: ids[0], Atoms: ids[1:]})
				T.Multiscale = true
			}
		case "bonds", "constraints", "pairs", "angles", "dihedrals", "virtual_sites3":
			var t Term
			t, err = termFromGro(s, sec, comment(raw))
			if err != nil {
				break
			}
			switch sec {
			case "bonds", "constraints":
				T.Bonds = append(T.Bonds, t)
			case "pairs":
				T.Pairs = append(T.Pairs, t)
			case "angles":
				T.Angles = append(T.Angles, t)
			case "dihedrals":
				T.Dihedrals = append(T.Dihedrals, t)
			case "virtual_sites3":
				T.VSites = append(T.VSites, t)
			}
		}
		if err != nil {
			return nil, &Error{fmt.Sprintf("line %d, section %s: %s", nline, sec, err.Error()), []string{"ReadITP"}, true}
		}
	}
	if err := in.Err(); err != nil {
		return nil, &Error{err.Error(), []string{"ReadITP"}, true}
	}
	return T, nil
}

func atomFromGro(s, comment string) (Atom, error) {
	f := strings.Fields(s)
	if len(f) < 7 {
		return Atom{}, fmt.Errorf("atom line with %d fields", len(f))
	}
	var a Atom
	ints, err := parseints(f[0], f[2], f[5])
	if err != nil {
		return a, err
	}
	a.ID, a.ResID, a.CGNr = ints[0], ints[1], ints[2]
	a.Type, a.ResName, a.Name = f[1], f[3], f[4]
	if a.Charge, err = strconv.ParseFloat(f[6], 64); err != nil {
		return a, err
	}
	if len(f) > 7 {
		if a.Mass, err = strconv.ParseFloat(f[7], 64); err != nil {
			return a, err
		}
		a.HasMass = true
	}
	if comment != "" {
		a.SS = comment[0]
	}
	return a, nil
}

// termFromGro returns the term in the line s of the section sec. Parameters
// that are not numbers are kept as expressions.
func termFromGro(s, sec, comment string) (Term, error) {
	kinds := map[string]Kind{"bonds": Bond, "constraints": Bond, "pairs": Pair, "angles": Angle, "dihedrals": Dihedral, "virtual_sites3": VSite}
	ats := termAtoms[sec]
	f := strings.Fields(s)
	if len(f) < ats+1 {
		return Term{}, fmt.Errorf("term with %d fields, at least %d expected", len(f), ats+1)
	}
	ids, err := parseints(f[:ats+1]...)
	if err != nil {
		return Term{}, err
	}
	t := Term{Kind: kinds[sec], Atoms: ids[:ats], Func: ids[ats], Comment: comment}
	if sec == "constraints" {
		t.Category = Constraint
	}
	for _, v := range f[ats+1:] {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			t.Params = append(t.Params, Expr(v))
			continue
		}
		t.Params = append(t.Params, Num(p))
	}
	if t.Kind == Bond && t.Category != Constraint && len(t.Params) > 1 && t.Params[1].Symbolic() && strings.HasPrefix(t.Params[1].Expr, "RUBBER_FC") {
		t.Category = RubberBand
	}
	return t, nil
}
