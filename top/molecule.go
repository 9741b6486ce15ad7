package top

import (
	"fmt"
	"strings"

	martini "github.com/rmera/martinize"
	"github.com/rmera/martinize/elastic"
	"github.com/rmera/martinize/ff"
	"github.com/rmera/martinize/internal/logging"
	v3 "github.com/rmera/martinize/v3"
)

// Molecule returns a single topology for chains, called name. The topology
// of each chain is appended, in order, to that of the first one.
func (B *Builder) Molecule(name string, chains []*martini.Chain) (*Topology, error) {
	if len(chains) == 0 {
		return nil, &Error{fmt.Sprintf("no chains for molecule %s", name), []string{"Molecule"}, true}
	}
	var T *Topology
	for _, c := range chains {
		t, err := B.Chain(c, name)
		if err != nil {
			return nil, errDecorate(err, "Molecule")
		}
		if T == nil {
			T = t
			continue
		}
		T.Append(t)
	}
	T.Name = name
	return T, nil
}

// AddLinks adds the links whose both ends are beads of T, and returns those links.
// Links with the Special flag take their parameters from the force field; otherwise
// a missing length is taken from the structure and a missing force constant turns
// the link into a constraint.
func (B *Builder) AddLinks(T *Topology, links []martini.CGLink) []martini.CGLink {
	added := make([]martini.CGLink, 0, len(links))
	for _, l := range links {
		a, ok := T.Find(l.A)
		if !ok {
			continue
		}
		b, ok := T.Find(l.B)
		if !ok {
			continue
		}
		if a.ID == b.ID {
			B.log.Warn("Link joins a bead with itself, skipped", logging.String("bead", a.Bead.String()))
			continue
		}
		d := v3.Distance(a.Pos, b.Pos) / 10
		comment := a.Bead.String() + "-" + b.Bead.String()
		cat := Link
		if a.Bead.ResName == "CYS" && b.Bead.ResName == "CYS" {
			cat = Cystine
		}
		t := Term{Kind: Bond, Atoms: []int{a.ID, b.ID}, Func: 1, Comment: comment, Category: cat}
		switch {
		case l.Special:
			F := B.ForceField(martini.ResidueType(a.Bead.ResName))
			p, ok := F.Special(ff.BeadRef{Name: a.Bead.Atom, Res: a.Bead.ResName}, ff.BeadRef{Name: b.Bead.Atom, Res: b.Bead.ResName})
			if !ok {
				p, ok = B.ff.Protein.Special(ff.BeadRef{Name: a.Bead.Atom, Res: a.Bead.ResName}, ff.BeadRef{Name: b.Bead.Atom, Res: b.Bead.ResName})
			}
			if !ok {
				B.log.Warn("No force field parameters for link, the distance in the structure is used as a constraint", logging.String("link", comment), logging.Float64("length_nm", d))
				t.Params = []Param{Num(d)}
				t.Category = Constraint
				break
			}
			t = bondTerm(t.Atoms, p, cat, comment)
		case l.HasFC:
			length := d
			if l.HasLength {
				length = l.Length
			}
			t.Params = []Param{Num(length), Num(l.FC)}
		default:
			length := d
			if l.HasLength {
				length = l.Length
			}
			t.Params = []Param{Num(length)}
			t.Category = Constraint
		}
		T.Bonds = append(T.Bonds, t)
		added = append(added, l)
		B.log.Info("Added link", logging.String("molecule", T.Name), logging.String("link", comment), logging.String("category", t.Category.String()))
	}
	return added
}

// AddElastic adds an elastic network over the beads of T, inside the
// RUBBER_BANDS block, and returns its bonds.
func (B *Builder) AddElastic(T *Topology, P elastic.Params) []elastic.Bond {
	beads := make([]elastic.Bead, 0, len(T.Atoms))
	protein := false
	for _, a := range T.Atoms {
		beads = append(beads, elastic.Bead{ID: a.ID, Name: a.Bead.Atom, Pos: a.Pos})
		if martini.ResidueType(a.Bead.ResName) == martini.Protein {
			protein = true
		}
	}
	F := B.ff.Nucleic
	if protein {
		F = B.ff.Protein
	}
	bonds := elastic.Build(beads, P)
	for _, b := range bonds {
		T.Bonds = append(T.Bonds, Term{Kind: Bond, Atoms: []int{b.A, b.B}, Func: F.ElasticBondType(),
			Params: []Param{Num(b.Length), Expr(fmt.Sprintf("RUBBER_FC*%f", b.Scale))}, Category: RubberBand})
	}
	T.RubberFC = P.FC
	s := elastic.Stats(bonds)
	B.log.Info("Elastic network", logging.String("molecule", T.Name), logging.Int("bonds", s.N), logging.Float64("mean_length_nm", s.MeanLength),
		logging.Float64("std_length_nm", s.StdLength), logging.Float64("mean_scale", s.MeanScale))
	return bonds
}

// Name returns the moleculetype name for a group of chains: the names of
// each chain joined by '+'.
func Name(basename string, chains []*martini.Chain) string {
	n := make([]string, len(chains))
	for i, c := range chains {
		n[i] = c.Name(basename)
	}
	return strings.Join(n, "+")
}
