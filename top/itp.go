package top

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type groer interface {
	ToGro() (string, error)
}

func printGro[G ~[]E, E groer](r io.StringWriter, g G) error {
	for _, v := range g {
		m, e := v.ToGro()
		if e != nil {
			return e
		}
		_, e = r.WriteString(m)
		if e != nil {
			return e
		}
	}
	return nil
}

// qerr panics with err, if not nil. The writers recover from it.
func qerr(err error) {
	if err != nil {
		panic(err)
	}
}

func writeLines(r io.StringWriter, lines ...string) {
	for _, v := range lines {
		_, err := r.WriteString(v + "\n")
		qerr(err)
	}
}

// section writes the terms, preceded by the comment, if there are any.
// Inert bonds don't count.
func section(r io.StringWriter, comment string, t Terms) {
	n := 0
	for _, v := range t {
		if !v.Inert() {
			n++
		}
	}
	if n == 0 {
		return
	}
	if comment != "" {
		writeLines(r, comment)
	}
	qerr(printGro(r, t))
}

// WriteITP writes T as a Gromacs itp file. Multiscale topologies are written as
// the section to be appended to the atomistic moleculetype.
func (T *Topology) WriteITP(w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				e = fmt.Errorf("%v", r)
			}
			err = &Error{e.Error(), []string{"WriteITP"}, true}
		}
	}()
	r := bufio.NewWriter(w)
	if T.Multiscale {
		writeLines(r, fmt.Sprintf("; MARTINI (%s) Multiscale virtual sites topology section for \"%s\"", T.FF, T.Name))
	} else {
		writeLines(r, fmt.Sprintf("; MARTINI (%s) Coarse Grained topology file for \"%s\"", T.FF, T.Name))
		if T.Arguments != "" {
			writeLines(r, "; Created by martinize", "; Using the following options:  "+T.Arguments)
		}
	}
	if T.Sequence != "" {
		writeLines(r, "; Sequence:", "; "+T.Sequence, "; Secondary Structure:", "; "+T.SS)
	}
	if !T.Multiscale {
		writeLines(r, "\n[ moleculetype ]", "; Name         Exclusions", fmt.Sprintf("%-15s %3d", T.Name, T.Nrexcl))
	}
	writeLines(r, "\n[ atoms ]")
	qerr(printGro(r, T.Atoms))
	if len(T.Pairs) > 0 {
		writeLines(r, "\n[ pairs ]")
		qerr(printGro(r, T.Pairs))
	}
	bbv, scv := T.VSites.Of(BB), T.VSites.Of(SC, BSC)
	if len(bbv)+len(scv) > 0 {
		writeLines(r, "\n[ virtual_sites3 ]")
		section(r, "; Backbone virtual sites.", bbv)
		section(r, "; Sidechain virtual sites.", scv)
	}
	writeLines(r, "\n[ bonds ]")
	section(r, "; Backbone bonds", T.Bonds.Of(BB))
	if rubber := T.Bonds.Of(RubberBand); len(rubber) > 0 {
		writeLines(r, "#ifdef RUBBER_BANDS", "#ifndef RUBBER_FC", fmt.Sprintf("#define RUBBER_FC %f", T.RubberFC), "#endif")
		qerr(printGro(r, rubber))
		writeLines(r, "#endif")
	}
	section(r, "; Sidechain bonds", T.Bonds.Of(SC, BSC))
	section(r, "; Short elastic bonds for extended regions", T.Bonds.Of(ElasticShort))
	section(r, "; Long elastic bonds for extended regions", T.Bonds.Of(ElasticLong))
	section(r, "; Cystine bridges", T.Bonds.Of(Cystine))
	section(r, "; Links/Cystine bridges", T.Bonds.Of(Link))
	writeLines(r, "\n[ constraints ]")
	qerr(printGro(r, T.Bonds.Of(Constraint)))
	if len(T.Exclusions) > 0 {
		writeLines(r, "\n[ exclusions ]")
		qerr(printGro(r, T.Exclusions))
	}
	if T.Multiscale {
		writeLines(r, "\n;\n; Coarse grained to atomistic mapping\n;", "#define mapping virtual_sitesn", "[ mapping ]")
		qerr(printGro(r, T.Mapping))
		return r.Flush()
	}
	writeLines(r, "\n[ angles ]", "; Backbone angles")
	qerr(printGro(r, T.Angles.Of(BB)))
	writeLines(r, "; Backbone-sidechain angles")
	qerr(printGro(r, T.Angles.Of(BBS)))
	writeLines(r, "; Sidechain angles")
	qerr(printGro(r, T.Angles.Of(SC, BSC)))
	writeLines(r, "\n[ dihedrals ]", "; Backbone dihedrals")
	qerr(printGro(r, T.Dihedrals.Of(BB)))
	writeLines(r, "; Sidechain dihedrals")
	qerr(printGro(r, T.Dihedrals.Of(BSC)))
	writeLines(r, "; Sidechain improper dihedrals")
	qerr(printGro(r, T.Dihedrals.Of(SC)))
	if len(T.PosRes) > 0 {
		writeLines(r, "\n#ifdef POSRES", "#ifndef POSRES_FC", fmt.Sprintf("#define POSRES_FC %.2f", T.PosResFC), "#endif", " [ position_restraints ]")
		for _, v := range T.PosRes {
			writeLines(r, fmt.Sprintf("  %5d    1    POSRES_FC    POSRES_FC    POSRES_FC", v))
		}
		writeLines(r, "#endif")
	}
	return r.Flush()
}

// System describes the master topology.
type System struct {
	//Force field file to include first.
	Include string
	Rubber  bool
	//Title of the [ system ] section.
	Title string
	//Molecule types, in the order they are included.
	Types []string
	//The moleculetype of each molecule, in order.
	Molecules []string
}

// WriteTop writes the master topology for the system S.
func WriteTop(w io.Writer, S System) error {
	include := S.Include
	if include == "" {
		include = "martini.itp"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "#include \"%s\"\n\n", include)
	if S.Rubber {
		b.WriteString("#define RUBBER_BANDS\n\n")
	}
	for _, v := range S.Types {
		fmt.Fprintf(&b, "#include \"%s.itp\"\n", v)
	}
	fmt.Fprintf(&b, "\n[ system ]\n; name\n%s\n\n[ molecules ]\n; name        number\n", S.Title)
	for _, v := range S.Molecules {
		fmt.Fprintf(&b, "%s \t 1\n", v)
	}
	_, err := io.WriteString(w, b.String())
	if err != nil {
		return &Error{err.Error(), []string{"WriteTop"}, true}
	}
	return nil
}

// ndxGroups writes one index group for each term, named by prefix and the atom
// numbers, which are increased by start.
func ndxGroups(b *strings.Builder, prefix string, t Terms, start int) {
	for _, v := range t {
		if v.Inert() {
			continue
		}
		ids := make([]string, len(v.Atoms))
		for i, a := range v.Atoms {
			ids[i] = fmt.Sprint(a + start)
		}
		fmt.Fprintf(b, "[%s-%s]\n %s\n", prefix, strings.Join(ids, "-"), strings.Join(ids, " "))
	}
}

// Bmap returns the index groups for the bonds, angles and dihedrals of T, one
// group per term, with atom numbers increased by start. They are used to obtain
// the distributions of bonded terms from a mapped trajectory.
func (T *Topology) Bmap(start int) (bonds, angles, dihedrals string) {
	var b, a, d strings.Builder
	ndxGroups(&b, "BB-bond", T.Bonds.Of(BB), start)
	ndxGroups(&b, "SC-bond", T.Bonds.Of(SC, BSC), start)
	ndxGroups(&b, "Const-bond", T.Bonds.Of(Constraint), start)
	ndxGroups(&a, "BBB-angle", T.Angles.Of(BB), start)
	ndxGroups(&a, "BBS-angle", T.Angles.Of(BBS), start)
	ndxGroups(&a, "SC-angle", T.Angles.Of(SC, BSC), start)
	ndxGroups(&d, "BB-dihedral", T.Dihedrals.Of(BB), start)
	ndxGroups(&d, "BSC-dihedral", T.Dihedrals.Of(BSC), start)
	ndxGroups(&d, "SC-dihedral", T.Dihedrals.Of(SC), start)
	return b.String(), a.String(), d.String()
}
