package top

import (
	"fmt"

	martini "github.com/rmera/martinize"
	"github.com/rmera/martinize/ff"
	"github.com/rmera/martinize/internal/logging"
)

type nbead struct {
	id  int
	res string
	ss  byte
	bb  ff.Backbone
}

func window(b []nbead, i, j int) []nbead {
	if j > len(b) {
		j = len(b)
	}
	if i > j {
		i = j
	}
	return b[i:j]
}

func nucleicComment(b ...nbead) string {
	res := make([]string, len(b))
	ss := make([]byte, len(b))
	for i, v := range b {
		res[i], ss[i] = v.res, v.ss
	}
	return backboneComment(res, ss)
}

// nucleic builds the topology of a DNA or RNA strand: three backbone beads per
// residue followed by the beads of the base. The first bead of the 5' end is
// not part of the model, so it is removed at the end, with every term that uses it.
func (B *Builder) nucleic(c *martini.Chain) (*Topology, error) {
	F := B.ff.Nucleic
	beads, err := c.CG(B.opts.Map)
	if err != nil {
		return nil, errDecorate(err, "nucleic")
	}
	byres := residueBeads(c, beads)
	T := B.newTopology(c, F)
	start := T.NAtoms + 1
	n := c.Len()
	names := make([]string, n)
	ss := []byte(T.SS)
	bbtype := make([][]string, n)
	sc := make([]ff.Residue, n)
	bb1 := make([]int, n)
	for i, r := range c.Residues {
		names[i] = resname(r)
		if bbtype[i], err = F.BackboneBeads(names[i], ss[i]); err != nil {
			return nil, errDecorate(err, "nucleic")
		}
		if sc[i], err = F.Sidechain(names[i]); err != nil {
			return nil, errDecorate(err, "nucleic")
		}
		if i == 0 {
			bb1[i] = start
		} else {
			bb1[i] = bb1[i-1] + len(sc[i-1].Beads) + len(bbtype[i-1])
		}
	}
	for _, f := range fragments(n, c.Breaks) {
		frg := make([]nbead, 0, 3*(f[1]-f[0]))
		for i := f[0]; i < f[1]; i++ {
			for k := range bbtype[i] {
				frg = append(frg, nbead{id: bb1[i] + k, res: names[i], ss: ss[i], bb: ff.Backbone{Res: names[i], Pos: k, SS: ss[i]}})
			}
		}
		B.nucleicBackbone(T, F, frg)
	}
	vsite := make(map[int]bool)
	for i, r := range c.Residues {
		rn := shortName(names[i])
		T.sidechainTerms(sc[i], bb1[i], rn, BSC)
		for _, v := range T.VSites {
			vsite[v.Atoms[0]] = true
		}
		types := append(append([]string(nil), bbtype[i]...), sc[i].Beads...)
		for k, t := range types {
			id := bb1[i] + k
			name := fmt.Sprintf("BB%d", k+1)
			if k >= len(bbtype[i]) {
				name = fmt.Sprintf("SC%d", k-len(bbtype[i])+1)
			}
			a := Atom{ID: id, Type: t, ResID: i + 1, ResName: rn, Name: name, CGNr: id, Charge: F.Charge(t, name), SS: ss[i], HasMass: true}
			if !vsite[id] {
				a.Mass, _ = F.Mass(name)
			}
			T.addAtom(a, byres[i], c.ID, r)
		}
	}
	last := T.Atoms[len(T.Atoms)-1].ID
	T.Angles = T.Angles.upTo(last)
	T.Dihedrals = T.Dihedrals.upTo(last)
	T.Bonds = T.Bonds.upTo(last)
	T.Exclusions = T.Exclusions.upTo(last)
	T.Pairs = T.Pairs.upTo(last)
	T.VSites = T.VSites.upTo(last)
	T.dropAtom(start)
	T.NAtoms = T.Atoms[len(T.Atoms)-1].ID
	B.posres(T, "BB", "BB1", "BB2", "BB3")
	B.log.Debug("Built nucleic acid topology", logging.String("chain", c.ID), logging.Int("atoms", T.Len()), logging.Int("bonds", len(T.Bonds)), logging.Int("dihedrals", len(T.Dihedrals)))
	return T, nil
}

// nucleicBackbone adds the backbone terms of a fragment, given as one entry per backbone bead.
// Each bead is tried with the following ones, and the force field decides which
// combinations make a term.
func (B *Builder) nucleicBackbone(T *Topology, F ff.ForceField, frg []nbead) {
	for ind, k := range frg {
		for _, l := range window(frg, ind, ind+3) {
			pair := []ff.Backbone{k.bb, l.bb}
			ids := []int{k.id, l.id}
			if F.Exclusion(pair) {
				T.Exclusions = append(T.Exclusions, Term{Kind: Exclusion, Atoms: ids, Comment: k.res, Category: BB})
			}
			if F.Pair(pair) {
				T.Pairs = append(T.Pairs, Term{Kind: Pair, Atoms: ids, Func: 1, Comment: nucleicComment(k, l), Category: BB})
			}
			if p := F.Bond(pair); p.Defined() {
				T.Bonds = append(T.Bonds, bondTerm(ids, p, BB, nucleicComment(k, l)))
			}
			for _, m := range window(frg, ind, ind+3) {
				if p := F.Angle([]ff.Backbone{k.bb, l.bb, m.bb}); p.Defined() {
					T.Angles = append(T.Angles, Term{Kind: Angle, Atoms: []int{k.id, l.id, m.id}, Func: fn(p, 2), Params: params(p), Comment: nucleicComment(k, l, m), Category: BB})
				}
				for _, o := range window(frg, ind+1, ind+4) {
					p := F.Dihedral([]ff.Backbone{k.bb, l.bb, m.bb, o.bb})
					if !p.Defined() {
						continue
					}
					for _, s := range p.Split() {
						T.Dihedrals = append(T.Dihedrals, Term{Kind: Dihedral, Atoms: []int{k.id, l.id, m.id, o.id}, Func: fn(s, 1), Params: params(s), Comment: nucleicComment(k, l, m, o), Category: BB})
					}
				}
			}
		}
	}
}

// dropAtom removes the atom first, and every term using it, and
// renumbers the atoms after it.
func (T *Topology) dropAtom(first int) {
	T.Bonds = T.Bonds.without(first)
	T.Angles = T.Angles.without(first)
	T.Dihedrals = T.Dihedrals.without(first)
	T.Exclusions = T.Exclusions.without(first)
	T.Pairs = T.Pairs.without(first)
	T.VSites = T.VSites.without(first)
	atoms := make([]Atom, 0, len(T.Atoms)-1)
	for _, a := range T.Atoms {
		if a.ID == first {
			continue
		}
		if a.ID > first {
			a.ID--
			a.CGNr--
		}
		atoms = append(atoms, a)
	}
	T.Atoms = atoms
	mapping := make([]MapEntry, 0, len(T.Mapping))
	for _, m := range T.Mapping {
		if m.ID == first {
			continue
		}
		if m.ID > first {
			m.ID--
		}
		mapping = append(mapping, m)
	}
	T.Mapping = mapping
}
