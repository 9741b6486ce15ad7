package top

import (
	"fmt"
	"strings"

	martini "github.com/rmera/martinize"
	"github.com/rmera/martinize/ff"
	"github.com/rmera/martinize/internal/logging"
)

// Options changes the way topologies are built.
type Options struct {
	//Don't charge the first and last backbone beads of proteins.
	NeutralTermini bool
	//Charge the backbone beads at both sides of a break.
	ChargesAtBreaks bool
	//Keep backbone dihedrals in extended regions, instead of the local elastic bonds.
	ExtendedDihedrals bool
	//Bead names that get position restraints. "all" selects every bead and
	//"backbone" the backbone beads.
	PosRes   []string
	PosResFC float64
	//Options for the bead positions used for links and elastic networks.
	Map martini.MapOptions
	//Command line, for the itp headers.
	Arguments string
}

// DefaultPosResFC is the default force constant for position restraints.
const DefaultPosResFC = 1000

// Builder produces the topologies of chains with the parameters of a force field family.
type Builder struct {
	ff   ff.Family
	opts Options
	log  logging.Logger
}

// NewBuilder returns a Builder for the given family. A nil log discards every message.
func NewBuilder(family ff.Family, opts Options, log logging.Logger) *Builder {
	if opts.PosResFC == 0 {
		opts.PosResFC = DefaultPosResFC
	}
	return &Builder{ff: family, opts: opts, log: logging.OrNop(log).Named("top")}
}

// ForceField returns the force field used for chains of type t.
func (B *Builder) ForceField(t martini.ChainType) ff.ForceField {
	if t == martini.Nucleic {
		return B.ff.Nucleic
	}
	return B.ff.Protein
}

// Chain returns the topology of c, called name.
func (B *Builder) Chain(c *martini.Chain, name string) (*Topology, error) {
	var T *Topology
	var err error
	switch c.Type() {
	case martini.Protein:
		T, err = B.protein(c)
	case martini.Nucleic:
		T, err = B.nucleic(c)
	default:
		return nil, &ChainTypeError{Chain: c.ID, Type: c.Type(), deco: []string{"Chain"}}
	}
	if err != nil {
		return nil, errDecorate(err, "Chain")
	}
	T.Name = name
	return T, nil
}

// newTopology returns the empty topology for c, with the atom count
// set to the atomistic atoms for multiscale chains.
func (B *Builder) newTopology(c *martini.Chain, F ff.ForceField) *Topology {
	T := New(c.Name(""), F.Name())
	T.Arguments = B.opts.Arguments
	T.PosResFC = B.opts.PosResFC
	T.Sequence = c.Seq()
	T.SS = ssString(c)
	T.Multiscale = c.Multiscale
	if c.Multiscale {
		T.NAtoms = c.NAtoms()
	}
	return T
}

// ssString returns the secondary structure types of the chain, coil if not set.
func ssString(c *martini.Chain) string {
	if len(c.SSTypes) >= c.Len() {
		return c.SSTypes[:c.Len()]
	}
	return c.SSTypes + strings.Repeat("C", c.Len()-len(c.SSTypes))
}

// residueBeads groups the CG beads of c by residue index.
func residueBeads(c *martini.Chain, beads []martini.Bead) [][]martini.Bead {
	ret := make([][]martini.Bead, c.Len())
	k := 0
	for i, r := range c.Residues {
		name := r.Name
		if len(name) > 3 {
			name = name[:3]
		}
		for k < len(beads) && beads[k].ResID == r.ID && beads[k].ResName == name {
			ret[i] = append(ret[i], beads[k])
			k++
		}
	}
	return ret
}

func beadNamed(beads []martini.Bead, name string) (martini.Bead, bool) {
	for _, b := range beads {
		if b.Name == name {
			return b, true
		}
	}
	return martini.Bead{}, false
}

// ca returns the position of the CA atom of r, or of its first atom if there is no CA.
func ca(r *martini.Residue) [3]float64 {
	if a, ok := r.Atom("CA"); ok {
		return a.Pos
	}
	if len(r.Atoms) > 0 {
		return r.Atoms[0].Pos
	}
	return [3]float64{}
}

// fragments returns the [start, end) residue ranges between breaks.
func fragments(n int, breaks []int) [][2]int {
	ret := make([][2]int, 0, len(breaks)+1)
	start := 0
	for _, b := range breaks {
		if b <= start || b >= n {
			continue
		}
		ret = append(ret, [2]int{start, b})
		start = b
	}
	return append(ret, [2]int{start, n})
}

// params translates force-field parameters into term parameters. Constraints
// keep only their length.
func params(p ff.Params) []Param {
	v := p.Values
	if p.Constraint && len(v) > 1 {
		v = v[:1]
	}
	ret := make([]Param, len(v))
	for i, f := range v {
		ret[i] = Num(f)
	}
	return ret
}

func fn(p ff.Params, def int) int {
	if p.Func != 0 {
		return p.Func
	}
	return def
}

func backboneComment(res []string, ss []byte) string {
	s := make([]string, len(res))
	for i := range res {
		s[i] = fmt.Sprintf("%s(%c)", res[i], ss[i])
	}
	return strings.Join(s, "-")
}

// bondTerm is a bond or, if the force constant is undefined, a constraint.
func bondTerm(atoms []int, p ff.Params, cat Category, comment string) Term {
	if p.Constraint {
		cat = Constraint
	}
	return Term{Kind: Bond, Atoms: atoms, Func: fn(p, 1), Params: params(p), Comment: comment, Category: cat}
}

// sidechainTerms adds the terms of a residue definition, shifted so index 0 is the atom first.
func (T *Topology) sidechainTerms(sc ff.Residue, first int, res string, dihedrals Category) {
	shift := func(a []int) []int {
		r := make([]int, len(a))
		for i, v := range a {
			r[i] = v + first
		}
		return r
	}
	for _, b := range sc.Bonds {
		T.Bonds = append(T.Bonds, bondTerm(shift(b.Atoms), b.Params, SC, res))
	}
	for _, a := range sc.Angles {
		T.Angles = append(T.Angles, Term{Kind: Angle, Atoms: shift(a.Atoms), Func: fn(a.Params, 2), Params: params(a.Params), Comment: res, Category: SC})
	}
	for _, d := range sc.Dihedrals {
		for _, p := range d.Params.Split() {
			T.Dihedrals = append(T.Dihedrals, Term{Kind: Dihedral, Atoms: shift(d.Atoms), Func: fn(p, 1), Params: params(p), Comment: res, Category: dihedrals})
		}
	}
	for _, d := range sc.Impropers {
		T.Dihedrals = append(T.Dihedrals, Term{Kind: Dihedral, Atoms: shift(d.Atoms), Func: fn(d.Params, 2), Params: params(d.Params), Comment: res, Category: SC})
	}
	for _, v := range sc.VSites {
		T.VSites = append(T.VSites, Term{Kind: VSite, Atoms: shift(v.Atoms), Func: fn(v.Params, 1), Params: params(v.Params), Comment: res, Category: SC})
	}
	for _, e := range sc.Exclusions {
		T.Exclusions = append(T.Exclusions, Term{Kind: Exclusion, Atoms: shift(e), Category: SC})
	}
	for _, p := range sc.Pairs {
		T.Pairs = append(T.Pairs, Term{Kind: Pair, Atoms: shift(p), Func: 1, Category: SC})
	}
}

// addAtom appends a, which stands for a bead of the residue r, taking its
// position from beads. Multiscale topologies also get the mapping of the bead
// to the atomistic atoms of the chain, which are numbered first.
func (T *Topology) addAtom(a Atom, beads []martini.Bead, chain string, r *martini.Residue) {
	a.Bead = martini.AtomSpec{Chain: chain, ResName: a.ResName, ResID: r.ID, Atom: a.Name}
	b, ok := beadNamed(beads, a.Name)
	if ok {
		a.Pos = b.Pos
	}
	if T.Multiscale {
		a.Type, a.Name = "v"+a.Type, "v"+a.Name
		if ok {
			e := MapEntry{ID: a.ID, Atoms: make([]int, len(b.Atoms))}
			for i, v := range b.Atoms {
				e.Atoms[i] = v + 1
			}
			T.Mapping = append(T.Mapping, e)
		}
	}
	T.Atoms = append(T.Atoms, a)
}

// posres sets the position restraints for the atoms whose (unprefixed) bead name was requested.
func (B *Builder) posres(T *Topology, backbone ...string) {
	T.PosRes = nil
	want := make(map[string]bool)
	all := false
	for _, v := range B.opts.PosRes {
		switch strings.ToLower(v) {
		case "all":
			all = true
		case "none", "":
		case "backbone":
			for _, b := range backbone {
				want[b] = true
			}
		default:
			want[v] = true
		}
	}
	for _, a := range T.Atoms {
		if all || want[a.Bead.Atom] {
			T.PosRes = append(T.PosRes, a.ID)
		}
	}
}

func resname(r *martini.Residue) string {
	return martini.CanonicalResName(r.Name)
}

func shortName(name string) string {
	if len(name) > 3 {
		return name[:3]
	}
	return name
}
