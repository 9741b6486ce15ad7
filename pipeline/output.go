/*
 * output.go, part of martinize
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

package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	martini "github.com/rmera/martinize"
	"github.com/rmera/martinize/chemplot"
	"github.com/rmera/martinize/elastic"
	"github.com/rmera/martinize/internal/logging"
	"github.com/rmera/martinize/merge"
	"github.com/rmera/martinize/top"
)

// moltype is a moleculetype already written, with the chains it was built from.
type moltype struct {
	chains []*martini.Chain
	top    *top.Topology
}

func sameChains(a, b []*martini.Chain) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// topologies builds the moleculetypes for the merge groups, writes their itp files,
// the bonded index files and the master topology.
func (P *Pipeline) topologies(R *Result, chains []*martini.Chain, order merge.Result, links []martini.CGLink) error {
	B := top.NewBuilder(P.family, top.Options{
		NeutralTermini:    P.opts.NeutralTermini,
		ChargesAtBreaks:   P.opts.ChargesAtBreaks,
		ExtendedDihedrals: P.opts.ExtendedDihedrals,
		PosRes:            P.opts.PosRes,
		PosResFC:          P.opts.PosResFC,
		Map:               P.mapper,
		Arguments:         P.opts.Arguments,
	}, P.log)
	dir := filepath.Dir(P.opts.Top)
	groups := order.Groups
	if len(groups) == 0 {
		for i := range chains {
			groups = append(groups, []int{i})
		}
	}
	types := make([]moltype, 0, len(groups))
	var bonds, angles, dihedrals strings.Builder
	cumulative := 0
	system := top.System{Rubber: P.ElasticNetwork(), Title: "Martini system from " + P.opts.Input}
	for _, g := range groups {
		mchains := make([]*martini.Chain, len(g))
		for i, v := range g {
			mchains[i] = chains[v]
		}
		var T *top.Topology
		if !P.opts.Separate {
			for _, t := range types {
				if sameChains(t.chains, mchains) {
					T = t.top
					P.log.Info("Molecule is identical to an earlier one", logging.String("moleculetype", T.Name))
					break
				}
			}
		}
		mol := Molecule{Chains: make([]string, len(mchains))}
		for i, c := range mchains {
			mol.Chains[i] = c.ID
		}
		if T == nil {
			name := top.Name(P.opts.Name, mchains)
			if P.opts.Separate {
				name = uniqueName(name, types)
			}
			var err error
			T, err = B.Molecule(name, mchains)
			if err != nil {
				return errDecorate(err, "topologies")
			}
			B.AddLinks(T, links)
			if P.ElasticNetwork() {
				mol.Elastic = B.AddElastic(T, P.opts.ElasticParams)
				if P.opts.Plot != "" && len(mol.Elastic) > 0 {
					f, err := P.plotElastic(T, mol.Elastic)
					if err != nil {
						return errDecorate(err, "topologies")
					}
					R.Files = append(R.Files, f)
				}
			}
			itp, err := writeITP(T, dir)
			if err != nil {
				return errDecorate(err, "topologies")
			}
			R.Files = append(R.Files, itp)
			if P.opts.BMap != "" {
				b, a, d := T.Bmap(cumulative)
				bonds.WriteString(b)
				angles.WriteString(a)
				dihedrals.WriteString(d)
			}
			types = append(types, moltype{mchains, T})
			R.Types = append(R.Types, T)
			system.Types = append(system.Types, name)
		}
		cumulative += T.Len()
		mol.Name, mol.Atoms = T.Name, T.Len()
		R.Molecules = append(R.Molecules, mol)
		system.Molecules = append(system.Molecules, T.Name)
	}
	P.log.Info("Written itp files", logging.Int("files", len(types)))
	if P.opts.BMap != "" {
		for _, f := range [][2]string{{"-bonds.ndx", bonds.String()}, {"-angles.ndx", angles.String()}, {"-dihedrals.ndx", dihedrals.String()}} {
			name := P.opts.BMap + f[0]
			if err := os.WriteFile(name, []byte(f[1]), 0644); err != nil {
				return &Error{err.Error(), []string{"topologies"}, true}
			}
			R.Files = append(R.Files, name)
		}
	}
	P.log.Info("Output contains molecules", logging.Int("molecules", len(R.Molecules)))
	for i, m := range R.Molecules {
		P.log.Info("Molecule", logging.Int("number", i+1), logging.String("moleculetype", m.Name), logging.Strings("chains", m.Chains))
	}
	if err := writeFile(P.opts.Top, func(w io.Writer) error { return top.WriteTop(w, system) }); err != nil {
		return errDecorate(err, "topologies")
	}
	R.Files = append(R.Files, P.opts.Top)
	return nil
}

// uniqueName appends a number to name if a moleculetype with that name exists already.
func uniqueName(name string, types []moltype) string {
	taken := func(n string) bool {
		for _, t := range types {
			if t.top.Name == n {
				return true
			}
		}
		return false
	}
	if !taken(name) {
		return name
	}
	for i := 2; ; i++ {
		n := fmt.Sprintf("%s_%d", name, i)
		if !taken(n) {
			return n
		}
	}
}

// writeITP checks T and writes it to dir as <name>.itp. Nothing is written
// for a topology that fails the check.
func writeITP(T *top.Topology, dir string) (string, error) {
	if err := T.Check(); err != nil {
		return "", errDecorate(err, "writeITP")
	}
	itp := filepath.Join(dir, T.Name+".itp")
	if err := writeFile(itp, T.WriteITP); err != nil {
		return "", errDecorate(err, "writeITP")
	}
	return itp, nil
}

// writeFile creates name and writes to it with write.
func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return &Error{err.Error(), []string{"writeFile"}, true}
	}
	if err := write(f); err != nil {
		f.Close()
		return errDecorate(err, "writeFile "+name)
	}
	if err := f.Close(); err != nil {
		return &Error{err.Error(), []string{"writeFile"}, true}
	}
	return nil
}

// ndxGroup writes a Gromacs index group with 15 numbers per line.
func ndxGroup(b *strings.Builder, name string, ids []int) {
	fmt.Fprintf(b, "\n[ %s ]\n", name)
	for i, v := range ids {
		if i > 0 {
			if i%15 == 0 {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}
		fmt.Fprintf(b, " %5d", v)
	}
}

// writeIndex writes the index file with the groups for the atomistic atoms (AA),
// virtual sites (VZ) and CG beads of the CG structure. chains are in writing order.
func (P *Pipeline) writeIndex(chains []*martini.Chain) error {
	P.log.Info("Writing index file", logging.String("file", P.opts.Index))
	var aa, vz, cg []int
	atid := 1
	for _, c := range chains {
		if c.Multiscale {
			for i := 0; i < c.NAtoms(); i++ {
				aa = append(aa, atid)
				atid++
			}
		}
		beads, _ := c.CG(P.mapper)
		n := len(beads)
		if c.Type() == martini.Nucleic && n > 0 {
			n--
		}
		for i := 0; i < n; i++ {
			if c.Multiscale {
				vz = append(vz, atid)
			} else {
				cg = append(cg, atid)
			}
			atid++
		}
	}
	var b strings.Builder
	ndxGroup(&b, "AA", aa)
	ndxGroup(&b, "VZ", vz)
	ndxGroup(&b, "CG", cg)
	if err := os.WriteFile(P.opts.Index, []byte(b.String()), 0644); err != nil {
		return &Error{err.Error(), []string{"writeIndex"}, true}
	}
	return nil
}

// writeNMap writes an index file with one group per bead, holding the atoms (numbered
// as in the atomistic structure, without the removed chains) the bead is built from.
// It can be used to map an atomistic trajectory to the CG resolution.
func (P *Pipeline) writeNMap(chains []*martini.Chain) error {
	P.log.Info("Writing trajectory index file", logging.String("file", P.opts.NMap))
	var b strings.Builder
	offset := 1
	nres := 0
	for _, c := range chains {
		beads, _ := c.CG(P.mapper)
		if c.Type() == martini.Nucleic && len(beads) > 0 {
			beads = beads[1:]
		}
		var prev martini.ResID
		k := 0
		for i, bead := range beads {
			if i == 0 || bead.ResID != prev {
				nres++
				k = 0
				prev = bead.ResID
			}
			k++
			fmt.Fprintf(&b, "[ Bead %d of residue %d ]\n", k, nres)
			for _, a := range bead.Atoms {
				fmt.Fprintf(&b, "%d ", a+offset)
			}
			b.WriteString("\n")
		}
		offset += c.NAtoms()
	}
	if err := os.WriteFile(P.opts.NMap, []byte(b.String()), 0644); err != nil {
		return &Error{err.Error(), []string{"writeNMap"}, true}
	}
	return nil
}

// plotSS draws the secondary structure profile along the frames for each protein chain.
func (P *Pipeline) plotSS(chains []*martini.Chain, frames [][]*martini.Chain) ([]string, error) {
	ret := make([]string, 0, len(chains))
	for i, c := range chains {
		if c.Type() != martini.Protein {
			continue
		}
		ssf := make([]string, 0, len(frames))
		for _, f := range frames {
			if i < len(f) {
				ssf = append(ssf, f[i].SSClass)
			}
		}
		name := fmt.Sprintf("%s_ss_%s.png", P.opts.Plot, c.Name(""))
		if err := chemplot.SSProfile(ssf, "Secondary structure, "+c.Name(""), name); err != nil {
			return nil, errDecorate(err, "plotSS")
		}
		ret = append(ret, name)
	}
	return ret, nil
}

// plotElastic draws the contact map of the elastic network of T.
func (P *Pipeline) plotElastic(T *top.Topology, bonds []elastic.Bond) (string, error) {
	ids := make([]int, 0, len(T.Atoms))
	in := make(map[int]bool, 2*len(bonds))
	for _, b := range bonds {
		in[b.A], in[b.B] = true, true
	}
	for _, a := range T.Atoms {
		if in[a.ID] {
			ids = append(ids, a.ID)
		}
	}
	name := fmt.Sprintf("%s_elastic_%s.png", P.opts.Plot, strings.ReplaceAll(T.Name, "+", "_"))
	if err := chemplot.ElasticMap(elastic.Matrix(bonds, ids), "Elastic network, "+T.Name, name); err != nil {
		return "", errDecorate(err, "plotElastic")
	}
	return name, nil
}
