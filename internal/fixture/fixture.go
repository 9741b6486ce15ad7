// Package fixture builds small synthetic structures for the tests of the other packages.
package fixture

import (
	"fmt"
	"strings"

	martini "github.com/rmera/martinize"
)

// ResidueLength is the distance (A) between the origins of consecutive residues.
const ResidueLength = 3.8

// Peptide returns the heavy atoms of a peptide with the given residue names, numbered from
// first, extended along x from origin. Consecutive residues are bonded (C-N 1.3 A).
// Every sidechain bead of the mapping gets its heavy atoms, so the chain maps completely.
func Peptide(chain byte, first int, names []string, origin [3]float64) []martini.Atom {
	ret := make([]martini.Atom, 0, len(names)*8)
	for i, name := range names {
		x := origin[0] + ResidueLength*float64(i)
		id := martini.NewResID(first + i)
		add := func(n string, dx, dy, dz float64) {
			ret = append(ret, martini.Atom{Name: n, ResName: name, ResID: id, Chain: chain,
				Pos: [3]float64{x + dx, origin[1] + dy, origin[2] + dz}})
		}
		add("N", 0, 0, 0)
		add("CA", 1.2, 0.5, 0)
		add("C", 2.5, 0, 0)
		add("O", 2.5, 1.2, 0)
		groups, _, ok := martini.Mapping(name)
		if !ok {
			continue
		}
		for k, g := range groups {
			if k == 0 {
				continue
			}
			for j, a := range g {
				if strings.HasPrefix(a, "H") {
					continue
				}
				add(a, 1.2, 1.5*float64(k), 0.3*float64(j))
			}
		}
	}
	return ret
}

// Nucleotides returns the heavy atoms of a DNA or RNA strand, numbered from first,
// along x from origin.
func Nucleotides(chain byte, first int, names []string, origin [3]float64) []martini.Atom {
	ret := make([]martini.Atom, 0, len(names)*20)
	for i, name := range names {
		groups, _, ok := martini.Mapping(name)
		if !ok {
			panic(fmt.Sprintf("fixture: no mapping for %s", name))
		}
		x := origin[0] + 6*float64(i)
		id := martini.NewResID(first + i)
		for k, g := range groups {
			for j, a := range g {
				if strings.HasPrefix(a, "H") || a == "O1P" || a == "O2P" {
					continue
				}
				ret = append(ret, martini.Atom{Name: a, ResName: name, ResID: id, Chain: chain,
					Pos: [3]float64{x + 0.5*float64(j), origin[1] + 2*float64(k), origin[2]}})
			}
		}
	}
	return ret
}

// Repeat returns n copies of name.
func Repeat(name string, n int) []string {
	ret := make([]string, n)
	for i := range ret {
		ret[i] = name
	}
	return ret
}

// Chain builds a chain with id from atoms.
func Chain(id string, atoms []martini.Atom) *martini.Chain {
	return martini.NewChain(id, martini.Residues(atoms))
}

// PDB renders atoms as the ATOM records of a PDB file, with a TER at the end.
func PDB(atoms []martini.Atom) string {
	var b strings.Builder
	for i, a := range atoms {
		fmt.Fprintf(&b, "ATOM  %5d %-4s %-4s%c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f\n", i+1, " "+a.Name, a.ResName, a.Chain, a.ResID.Seq, a.ResID.ICode, a.Pos[0], a.Pos[1], a.Pos[2], 1.0, 0.0)
	}
	b.WriteString("TER\n")
	return b.String()
}

// GRO renders atoms as one GRO frame.
func GRO(title string, atoms []martini.Atom) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%5d\n", title, len(atoms))
	for i, a := range atoms {
		fmt.Fprintf(&b, "%5d%-5s%5s%5d%8.3f%8.3f%8.3f\n", a.ResID.Seq, a.ResName, a.Name, i+1, a.Pos[0]/10, a.Pos[1]/10, a.Pos[2]/10)
	}
	b.WriteString("   5.00000   5.00000   5.00000\n")
	return b.String()
}
