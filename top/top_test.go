package top

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	martini "github.com/rmera/martinize"
	"github.com/rmera/martinize/elastic"
	"github.com/rmera/martinize/ff"
	"github.com/rmera/martinize/internal/fixture"
)

func family(Te *testing.T, name string) ff.Family {
	f, err := ff.GetFamily(name)
	if err != nil {
		Te.Fatal(err)
	}
	return f
}

func peptide(id string, names []string, origin [3]float64) *martini.Chain {
	return fixture.Chain(id, fixture.Peptide(id[0], 1, names, origin))
}

func TestParamFormat(Te *testing.T) {
	for _, c := range []struct {
		p     Param
		first bool
		want  string
	}{
		{Num(0.35), true, " 0.35000"},
		{Num(1250), false, " 1250"},
		{Num(1250), true, "1250.00000"},
		{Num(0.000001), true, "1.0e-06"},
		{Expr("RUBBER_FC*0.500000"), false, "RUBBER_FC*0.500000"},
	} {
		if got := c.p.format(c.first); got != c.want {
			Te.Errorf("%+v: got %q want %q", c.p, got, c.want)
		}
	}
	t := Term{Kind: Bond, Atoms: []int{1, 2}, Func: 1, Params: []Param{Num(0.35), Num(0)}}
	if s, _ := t.ToGro(); s != "" {
		Te.Errorf("bond with zero force constant written: %q", s)
	}
}

func TestProteinCoil(Te *testing.T) {
	c := peptide("A", fixture.Repeat("ALA", 10), [3]float64{})
	B := NewBuilder(family(Te, "martini22"), Options{}, nil)
	T, err := B.Chain(c, "Protein_A")
	if err != nil {
		Te.Fatal(err)
	}
	if err := T.Check(); err != nil {
		Te.Error(err)
	}
	if T.Len() != 10 {
		Te.Errorf("%d atoms, expected 10", T.Len())
	}
	if n := len(T.Bonds.Of(BB)); n != 9 {
		Te.Errorf("%d backbone bonds, expected 9", n)
	}
	if n := len(T.Angles.Of(BB)); n != 8 {
		Te.Errorf("%d backbone angles, expected 8", n)
	}
	first, last := T.Atoms[0], T.Atoms[T.Len()-1]
	if first.Type != "Qd" || first.Charge != 1 {
		Te.Errorf("N-terminus %s %f", first.Type, first.Charge)
	}
	if last.Type != "Qa" || last.Charge != -1 {
		Te.Errorf("C-terminus %s %f", last.Type, last.Charge)
	}
	//neutral termini
	B = NewBuilder(family(Te, "martini22"), Options{NeutralTermini: true}, nil)
	T, err = B.Chain(c, "Protein_A")
	if err != nil {
		Te.Fatal(err)
	}
	if T.Atoms[0].Charge != 0 || T.Atoms[T.Len()-1].Charge != 0 {
		Te.Errorf("charged termini with NeutralTermini")
	}
}

func TestExtended(Te *testing.T) {
	c := peptide("A", fixture.Repeat("ALA", 6), [3]float64{})
	c.SetSS(strings.Repeat("E", 6), "self")
	B := NewBuilder(family(Te, "martini22"), Options{}, nil)
	T, err := B.Chain(c, "Protein_A")
	if err != nil {
		Te.Fatal(err)
	}
	//the 1-3 bond of a quadruple is the 2-4 bond of the previous one.
	short, long := T.Bonds.Of(ElasticShort), T.Bonds.Of(ElasticLong)
	if len(short) != 4 || len(long) != 3 {
		Te.Errorf("%d short and %d long bonds, expected 4 and 3", len(short), len(long))
	}
	if len(T.Dihedrals.Of(BB)) != 0 {
		Te.Errorf("backbone dihedrals in an extended region")
	}
	B = NewBuilder(family(Te, "martini22"), Options{ExtendedDihedrals: true}, nil)
	T, err = B.Chain(c, "Protein_A")
	if err != nil {
		Te.Fatal(err)
	}
	if len(T.Dihedrals.Of(BB)) != 3 || len(T.Bonds.Of(ElasticShort)) != 0 {
		Te.Errorf("%d dihedrals, %d short bonds with extended dihedrals", len(T.Dihedrals.Of(BB)), len(T.Bonds.Of(ElasticShort)))
	}
}

func TestMolecule(Te *testing.T) {
	a := peptide("A", []string{"ALA", "LYS", "ALA"}, [3]float64{})
	b := peptide("B", []string{"ALA", "LYS", "ALA"}, [3]float64{0, 20, 0})
	B := NewBuilder(family(Te, "martini22"), Options{}, nil)
	chains := []*martini.Chain{a, b}
	T, err := B.Molecule(Name("", chains), chains)
	if err != nil {
		Te.Fatal(err)
	}
	if T.Name != "Protein_A+Protein_B" {
		Te.Errorf("molecule named %s", T.Name)
	}
	if err := T.Check(); err != nil {
		Te.Error(err)
	}
	//BB SC1 SC2 per lysine
	if T.Len() != 10 {
		Te.Errorf("%d atoms, expected 10", T.Len())
	}
	seen := make(map[int]bool)
	for i, v := range T.Atoms {
		if seen[v.ID] || v.ID != i+1 {
			Te.Errorf("atom %d numbered %d", i, v.ID)
		}
		seen[v.ID] = true
	}
	if T.Atoms[5].ResID != 4 || T.Atoms[5].Bead.Chain != "B" {
		Te.Errorf("first atom of the second chain: %+v", T.Atoms[5])
	}
	if len(T.Bonds.Of(BB)) != 4 {
		Te.Errorf("%d backbone bonds, expected 4", len(T.Bonds.Of(BB)))
	}
	for _, v := range T.Bonds.Of(BB) {
		if (v.Atoms[0] <= 5) != (v.Atoms[1] <= 5) {
			Te.Errorf("backbone bond %v joins the chains", v.Atoms)
		}
	}
	if T.Sequence != "AKAAKA" {
		Te.Errorf("sequence %s", T.Sequence)
	}
}

func TestCystineLink(Te *testing.T) {
	a := peptide("A", []string{"ALA", "CYS", "ALA"}, [3]float64{})
	b := peptide("B", []string{"ALA", "CYS", "ALA"}, [3]float64{0, 4, 0})
	B := NewBuilder(family(Te, "martini22"), Options{}, nil)
	chains := []*martini.Chain{a, b}
	T, err := B.Molecule("Protein", chains)
	if err != nil {
		Te.Fatal(err)
	}
	l := martini.CystineLink(martini.AtomSpec{Chain: "A", ResID: martini.NewResID(2)}, martini.AtomSpec{Chain: "B", ResID: martini.NewResID(2)})
	missing := martini.CystineLink(martini.AtomSpec{Chain: "C", ResID: martini.NewResID(2)}, martini.AtomSpec{Chain: "B", ResID: martini.NewResID(2)})
	added := B.AddLinks(T, []martini.CGLink{l, missing})
	if len(added) != 1 {
		Te.Fatalf("%d links added, expected 1", len(added))
	}
	cys := T.Bonds.Of(Cystine)
	if len(cys) != 1 {
		Te.Fatalf("%d cystine bonds", len(cys))
	}
	if cys[0].Params[0].Value != 0.39 || cys[0].Params[1].Value != 5000 {
		Te.Errorf("cystine parameters %v", cys[0].Params)
	}
	sa, _ := T.Atom(cys[0].Atoms[0])
	sb, _ := T.Atom(cys[0].Atoms[1])
	if sa.Name != "SC1" || sb.Name != "SC1" || sa.Bead.Chain == sb.Bead.Chain {
		Te.Errorf("cystine between %+v and %+v", sa.Bead, sb.Bead)
	}
	//a link without force constant is a constraint
	lnk, err := martini.ParseLink("A/ALA/1/BB,B/ALA/3/BB,0.5")
	if err != nil {
		Te.Fatal(err)
	}
	B.AddLinks(T, []martini.CGLink{lnk})
	if c := T.Bonds.Of(Constraint); len(c) == 0 || c[len(c)-1].Params[0].Value != 0.5 {
		Te.Errorf("link not added as a constraint: %v", c)
	}
}

func TestNucleic(Te *testing.T) {
	names := []string{"DA", "DC", "DG", "DT"}
	c := fixture.Chain("A", fixture.Nucleotides('A', 1, names, [3]float64{}))
	if c.Type() != martini.Nucleic {
		Te.Fatalf("chain of type %s", c.Type())
	}
	fam := family(Te, "martini22")
	B := NewBuilder(fam, Options{PosRes: []string{"backbone"}}, nil)
	T, err := B.Chain(c, "DNA_A")
	if err != nil {
		Te.Fatal(err)
	}
	if err := T.Check(); err != nil {
		Te.Error(err)
	}
	sc := 0
	for _, n := range names {
		r, err := fam.Nucleic.Sidechain(n)
		if err != nil {
			Te.Fatal(err)
		}
		sc += len(r.Beads)
	}
	if T.Len() != 3*len(names)+sc-1 {
		Te.Errorf("%d atoms, expected %d", T.Len(), 3*len(names)+sc-1)
	}
	if T.Atoms[0].ID != 1 || T.Atoms[0].Name != "BB2" {
		Te.Errorf("first atom %+v", T.Atoms[0])
	}
	bb := 0
	for _, a := range T.Atoms {
		if !a.HasMass {
			Te.Errorf("atom %d without mass", a.ID)
		}
		if strings.HasPrefix(a.Name, "BB") {
			bb++
		}
	}
	if bb != 3*len(names)-1 {
		Te.Errorf("%d backbone beads, expected %d", bb, 3*len(names)-1)
	}
	if len(T.PosRes) != bb {
		Te.Errorf("%d position restraints, expected %d", len(T.PosRes), bb)
	}
	for _, v := range T.PosRes {
		if v < 1 || v > T.Len() {
			Te.Errorf("position restraint on atom %d", v)
		}
	}
}

func TestChainType(Te *testing.T) {
	atoms := []martini.Atom{{Name: "C1", ResName: "XYZ", ResID: martini.NewResID(1), Chain: 'A'}}
	c := fixture.Chain("A", atoms)
	B := NewBuilder(family(Te, "martini22"), Options{}, nil)
	_, err := B.Chain(c, "X")
	var cerr *ChainTypeError
	if !errors.As(err, &cerr) {
		Te.Fatalf("expected a ChainTypeError, got %v", err)
	}
	if !cerr.Critical() {
		Te.Errorf("chain type errors must be critical")
	}
}

func TestElastic(Te *testing.T) {
	a := peptide("A", fixture.Repeat("ALA", 5), [3]float64{})
	b := peptide("B", fixture.Repeat("ALA", 5), [3]float64{0, 5, 0})
	B := NewBuilder(family(Te, "martini22"), Options{}, nil)
	chains := []*martini.Chain{a, b}
	T, err := B.Molecule("Protein", chains)
	if err != nil {
		Te.Fatal(err)
	}
	P := elastic.DefaultParams()
	bonds := B.AddElastic(T, P)
	if len(bonds) == 0 {
		Te.Fatal("no elastic bonds between the chains")
	}
	rubber := T.Bonds.Of(RubberBand)
	if len(rubber) != len(bonds) {
		Te.Errorf("%d rubber bands for %d bonds", len(rubber), len(bonds))
	}
	for _, r := range rubber {
		if r.Func != 6 || !r.Params[1].Symbolic() || !strings.HasPrefix(r.Params[1].Expr, "RUBBER_FC*") {
			Te.Errorf("bad rubber band %+v", r)
		}
	}
	var buf bytes.Buffer
	if err := T.WriteITP(&buf); err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(buf.String(), "#ifdef RUBBER_BANDS") || !strings.Contains(buf.String(), "#define RUBBER_FC 500.000000") {
		Te.Errorf("no rubber band block in\n%s", buf.String())
	}
	without, err := ReadITP(strings.NewReader(buf.String()))
	if err != nil {
		Te.Fatal(err)
	}
	with, err := ReadITP(strings.NewReader(buf.String()), "RUBBER_BANDS")
	if err != nil {
		Te.Fatal(err)
	}
	if len(with.Bonds)-len(without.Bonds) != len(rubber) || len(with.Bonds.Of(RubberBand)) != len(rubber) {
		Te.Errorf("%d bonds with rubber bands, %d without", len(with.Bonds), len(without.Bonds))
	}
}

func TestITPRoundTrip(Te *testing.T) {
	c := peptide("A", []string{"ALA", "LYS", "PHE", "CYS", "GLY", "TRP"}, [3]float64{})
	c.SetSS("CHHHHC", "self")
	B := NewBuilder(family(Te, "martini22"), Options{PosRes: []string{"backbone"}, Arguments: "martinize -f test.pdb"}, nil)
	T, err := B.Chain(c, "Protein_A")
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := T.WriteITP(&buf); err != nil {
		Te.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{"[ moleculetype ]", "[ atoms ]", "[ bonds ]", "[ constraints ]", "[ angles ]", "[ dihedrals ]", "#ifdef POSRES", "; Sequence:", "AKFCGW", "martinize -f test.pdb"} {
		if !strings.Contains(out, s) {
			Te.Errorf("%q not in the itp", s)
		}
	}
	R, err := ReadITP(strings.NewReader(out), "POSRES")
	if err != nil {
		Te.Fatal(err)
	}
	bonds, angles, _ := T.Bmap(10)
	if !strings.Contains(bonds, "[Const-bond-11-12]\n 11 12\n") || !strings.Contains(angles, "[BBB-angle-11-12-15]") {
		Te.Errorf("bad bonded index groups\n%s%s", bonds, angles)
	}
	if R.Name != "Protein_A" || R.Nrexcl != 1 {
		Te.Errorf("moleculetype %s %d", R.Name, R.Nrexcl)
	}
	if R.Len() != T.Len() {
		Te.Errorf("read %d atoms, wrote %d", R.Len(), T.Len())
	}
	for i, a := range R.Atoms {
		w := T.Atoms[i]
		if a.ID != w.ID || a.Type != w.Type || a.Name != w.Name || a.Charge != w.Charge || a.SS != w.SS {
			Te.Errorf("atom %d read as %+v, written %+v", i, a, w)
		}
	}
	written := 0
	for _, v := range T.Bonds {
		if !v.Inert() {
			written++
		}
	}
	if len(R.Bonds) != written || len(R.Angles) != len(T.Angles) || len(R.Dihedrals) != len(T.Dihedrals) {
		Te.Errorf("read %d/%d/%d bonds/angles/dihedrals, wrote %d/%d/%d", len(R.Bonds), len(R.Angles), len(R.Dihedrals), written, len(T.Angles), len(T.Dihedrals))
	}
	if len(R.Bonds.Of(Constraint)) != len(T.Bonds.Of(Constraint)) {
		Te.Errorf("read %d constraints, wrote %d", len(R.Bonds.Of(Constraint)), len(T.Bonds.Of(Constraint)))
	}
	if len(R.PosRes) != len(T.PosRes) || len(T.PosRes) != 6 {
		Te.Errorf("read %d position restraints, wrote %d", len(R.PosRes), len(T.PosRes))
	}
	if err := R.Check(); err != nil {
		Te.Error(err)
	}
	R, err = ReadITP(strings.NewReader(out))
	if err != nil {
		Te.Fatal(err)
	}
	if len(R.PosRes) != 0 {
		Te.Errorf("position restraints read without POSRES")
	}
}

func TestMultiscale(Te *testing.T) {
	c := peptide("A", []string{"ALA", "LYS", "ALA"}, [3]float64{})
	c.Multiscale = true
	B := NewBuilder(family(Te, "martini22"), Options{}, nil)
	T, err := B.Chain(c, "Protein_A")
	if err != nil {
		Te.Fatal(err)
	}
	if T.Atoms[0].ID != c.NAtoms()+1 || T.Atoms[0].Name != "vBB" {
		Te.Errorf("first virtual site %+v, after %d atoms", T.Atoms[0], c.NAtoms())
	}
	if len(T.Mapping) != T.Len() {
		Te.Errorf("%d mapping entries for %d sites", len(T.Mapping), T.Len())
	}
	var buf bytes.Buffer
	if err := T.WriteITP(&buf); err != nil {
		Te.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "[ moleculetype ]") || !strings.Contains(out, "[ mapping ]") || strings.Contains(out, "[ angles ]") {
		Te.Errorf("bad multiscale section\n%s", out)
	}
}

func TestWriteTop(Te *testing.T) {
	var buf bytes.Buffer
	err := WriteTop(&buf, System{Rubber: true, Title: "Martini system from test.pdb", Types: []string{"Protein_A"}, Molecules: []string{"Protein_A", "Protein_A", "DNA_B"}})
	if err != nil {
		Te.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{"#include \"martini.itp\"", "#define RUBBER_BANDS", "#include \"Protein_A.itp\"", "Protein_A \t 1\nProtein_A \t 1\nDNA_B \t 1\n"} {
		if !strings.Contains(out, s) {
			Te.Errorf("%q not in\n%s", s, out)
		}
	}
}
