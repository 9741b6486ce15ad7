package top

import (
	"fmt"

	martini "github.com/rmera/martinize"
	"github.com/rmera/martinize/ff"
	"github.com/rmera/martinize/internal/logging"
)

// protein builds the topology of a protein chain: one backbone bead per residue
// followed by the sidechain beads of that residue.
func (B *Builder) protein(c *martini.Chain) (*Topology, error) {
	F := B.ff.Protein
	beads, err := c.CG(B.opts.Map)
	if err != nil {
		return nil, errDecorate(err, "protein")
	}
	byres := residueBeads(c, beads)
	T := B.newTopology(c, F)
	start := T.NAtoms + 1
	n := c.Len()
	names := make([]string, n)
	ss := []byte(T.SS)
	bbid := make([]int, n)
	bbtype := make([]string, n)
	sc := make([]ff.Residue, n)
	bb := make([]ff.Backbone, n)
	for i, r := range c.Residues {
		names[i] = resname(r)
		t, err := F.BackboneBeads(names[i], ss[i])
		if err != nil {
			return nil, errDecorate(err, "protein")
		}
		bbtype[i] = t[0]
		if sc[i], err = F.Sidechain(names[i]); err != nil {
			return nil, errDecorate(err, "protein")
		}
		if i == 0 {
			bbid[i] = start
		} else {
			bbid[i] = bbid[i-1] + len(sc[i-1].Beads) + 1
		}
		bb[i] = ff.Backbone{Res: names[i], SS: ss[i], CA: ca(r)}
	}
	if !B.opts.NeutralTermini {
		bbtype[0] = "Qd"
		bbtype[n-1] = "Qa"
	}
	if B.opts.ChargesAtBreaks {
		for _, b := range c.Breaks {
			if b > 0 && b < n {
				bbtype[b] = "Qd"
				bbtype[b-1] = "Qa"
			}
		}
	}
	for _, f := range fragments(n, c.Breaks) {
		B.proteinBackbone(T, F, f[0], f[1], bbid, names, ss, bb, sc)
	}
	for i, r := range c.Residues {
		rn := shortName(names[i])
		T.sidechainTerms(sc[i], bbid[i], rn, BSC)
		types := append([]string{bbtype[i]}, sc[i].Beads...)
		for k, t := range types {
			id := bbid[i] + k
			name := "BB"
			if k > 0 {
				name = fmt.Sprintf("SC%d", k)
			}
			a := Atom{ID: id, Type: t, ResID: i + 1, ResName: rn, Name: name, CGNr: id, Charge: F.Charge(t, name), SS: ss[i]}
			T.addAtom(a, byres[i], c.ID, r)
		}
	}
	T.NAtoms = T.Atoms[len(T.Atoms)-1].ID
	B.posres(T, "BB")
	B.log.Debug("Built protein topology", logging.String("chain", c.ID), logging.Int("atoms", T.Len()), logging.Int("bonds", len(T.Bonds)), logging.Int("angles", len(T.Angles)))
	return T, nil
}

// proteinBackbone adds the backbone terms for the fragment of residues [lo, hi).
func (B *Builder) proteinBackbone(T *Topology, F ff.ForceField, lo, hi int, bbid []int, names []string, ss []byte, bb []ff.Backbone, sc []ff.Residue) {
	for i := lo; i+1 < hi; i++ {
		p := F.Bond(bb[i : i+2])
		if !p.Defined() {
			continue
		}
		T.Bonds = append(T.Bonds, bondTerm([]int{bbid[i], bbid[i+1]}, p, BB, backboneComment(names[i:i+2], ss[i:i+2])))
	}
	for i := lo; i+2 < hi; i++ {
		p := F.Angle(bb[i : i+3])
		if !p.Defined() {
			continue
		}
		T.Angles = append(T.Angles, Term{Kind: Angle, Atoms: []int{bbid[i], bbid[i+1], bbid[i+2]}, Func: fn(p, 2), Params: params(p), Comment: backboneComment(names[i:i+3], ss[i:i+3]), Category: BB})
	}
	if F.UseBBBBDihedrals() {
		short, long := F.ExtendedBonds()
		for i := lo; i+3 < hi; i++ {
			id := bbid[i : i+4]
			if string(ss[i:i+4]) == "EEEE" && !B.opts.ExtendedDihedrals {
				rn := names[i : i+4]
				b13 := Term{Kind: Bond, Atoms: []int{id[0], id[2]}, Func: 1, Params: params(short), Comment: fmt.Sprintf("%s(%d)-%s(%d) 1-3", rn[0], id[0], rn[2], id[2]), Category: ElasticShort}
				//it may already be the 2-4 bond of the previous quadruple.
				if !T.Bonds.Contains(b13) {
					T.Bonds = append(T.Bonds, b13)
				}
				T.Bonds = append(T.Bonds,
					Term{Kind: Bond, Atoms: []int{id[1], id[3]}, Func: 1, Params: params(short), Comment: fmt.Sprintf("%s(%d)-%s(%d) 2-4", rn[1], id[1], rn[3], id[3]), Category: ElasticShort},
					Term{Kind: Bond, Atoms: []int{id[0], id[3]}, Func: 1, Params: params(long), Comment: fmt.Sprintf("%s(%d)-%s(%d) 1-4", rn[0], id[0], rn[3], id[3]), Category: ElasticLong})
				continue
			}
			p := F.Dihedral(bb[i : i+4])
			if !p.Defined() {
				continue
			}
			T.Dihedrals = append(T.Dihedrals, Term{Kind: Dihedral, Atoms: []int{id[0], id[1], id[2], id[3]}, Func: fn(p, 1), Params: params(p), Comment: backboneComment(names[i:i+4], ss[i:i+4]), Category: BB})
		}
	}
	if !F.UseBBSAngles() {
		return
	}
	bbs := F.BBSAngle()
	if hi-lo > 1 && len(sc[lo].Beads) > 0 {
		T.Angles = append(T.Angles, Term{Kind: Angle, Atoms: []int{bbid[lo] + 1, bbid[lo], bbid[lo+1]}, Func: fn(bbs, 2), Params: params(bbs),
			Comment: fmt.Sprintf("%s(%c)-%s(%c) SBB", names[lo], ss[lo], names[lo+1], ss[lo+1]), Category: BBS})
	}
	for i := lo; i+1 < hi; i++ {
		if len(sc[i+1].Beads) == 0 {
			continue
		}
		T.Angles = append(T.Angles, Term{Kind: Angle, Atoms: []int{bbid[i], bbid[i+1], bbid[i+1] + 1}, Func: fn(bbs, 2), Params: params(bbs),
			Comment: fmt.Sprintf("%s(%c)-%s(%c) SBB", names[i], ss[i], names[i+1], ss[i+1]), Category: BBS})
	}
}
