/*
 * pipeline.go, part of martinize
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

/*
Package pipeline runs a complete conversion: it reads an atomistic structure, determines
the secondary structure of its chains, decides which chains form each molecule, and
writes the coarse-grained structure, the topologies and the auxiliary files.
*/
package pipeline

import (
	"context"
	"fmt"
	"strings"

	martini "github.com/rmera/martinize"
	"github.com/rmera/martinize/elastic"
	"github.com/rmera/martinize/ff"
	"github.com/rmera/martinize/internal/logging"
	"github.com/rmera/martinize/merge"
	"github.com/rmera/martinize/ss"
	"github.com/rmera/martinize/top"
)

// Options is everything a conversion needs. It is copied into the Pipeline,
// so changes after New have no effect.
type Options struct {
	Input string //atomistic structure, PDB or GRO, optionally compressed
	//Outputs. Empty names are not written.
	Top   string //master topology. The itp files go in the same directory.
	CG    string //CG structure
	Index string //index file with the atomistic, virtual site and CG groups
	NMap  string //index file to map an atomistic trajectory onto the beads
	BMap  string //prefix for the bonded-term index files
	Plot  string //prefix for the figures

	//Secondary structure: a literal string or a file, or else the DSSP executable.
	SS       string
	DSSP     string
	SSCutoff float64
	Collagen bool

	ForceField        string
	NeutralTermini    bool
	ChargesAtBreaks   bool
	ExtendedDihedrals bool
	//Cystine bridges: "auto", a distance in nm, or explicit pairs.
	Cystines []string
	//Merge groups, each a comma-separated list of chain IDs or numbers, or "all".
	Merges []string
	//Links between beads, as a,b[,length[,fc]].
	Links []string
	//Chains to be written in multiscale form, or "all".
	Multi []string
	//Histidines (atom specifications) to be protonated (HIH).
	His []string

	Elastic       bool
	ElasticParams elastic.Params

	PosRes   []string
	PosResFC float64

	Name      string //base name for the moleculetypes
	Separate  bool   //one moleculetype per molecule, even for identical ones
	Arguments string //command line, for the headers
}

// DefaultOptions returns the settings used when nothing else is given.
func DefaultOptions() Options {
	return Options{
		SSCutoff:      0.5,
		ForceField:    "martini22",
		ElasticParams: elastic.DefaultParams(),
		PosResFC:      top.DefaultPosResFC,
	}
}

// Molecule is one entry of the [ molecules ] section.
type Molecule struct {
	Name   string   //its moleculetype
	Chains []string //IDs of the chains it is made of
	Atoms  int
	//Elastic bonds added, if any.
	Elastic []elastic.Bond
}

// Result summarizes a conversion.
type Result struct {
	Frames int
	Chains []*martini.Chain //chains of the first frame, in writing order
	//Consensus secondary structure, over all chains.
	SS        string
	Molecules []Molecule
	//Distinct moleculetypes, in the order their itp files were written.
	Types []*top.Topology
	Files []string //every file written
}

// Pipeline performs conversions with a fixed set of options.
type Pipeline struct {
	opts   Options
	family ff.Family
	mapper martini.MapOptions
	log    logging.Logger
	dssp   *ss.DSSPHandle

	resolver *merge.Resolver
	//user secondary structure, read once.
	ssread   bool
	ssraw    string
	sssrc    ss.Source
	sswarned bool
}

// New returns a Pipeline for opts. It fails if the force field is unknown or
// an option can't be parsed. A nil log discards all messages.
func New(opts Options, log logging.Logger) (*Pipeline, error) {
	P := &Pipeline{opts: opts, log: logging.OrNop(log).Named("pipeline")}
	var err error
	if P.family, err = ff.GetFamily(opts.ForceField); err != nil {
		return nil, errDecorate(err, "New")
	}
	P.resolver = merge.NewResolver(P.log)
	P.mapper = martini.MapOptions{ShiftO3: true, BBOnCA: P.family.Protein.CAPositionedBB()}
	if opts.DSSP != "" {
		P.dssp = ss.NewDSSPHandle(opts.DSSP)
	}
	if P.opts.ElasticParams.Upper == 0 {
		P.opts.ElasticParams = elastic.DefaultParams()
	}
	if P.opts.SSCutoff == 0 {
		P.opts.SSCutoff = 0.5
	}
	for _, v := range opts.Links {
		if _, err := martini.ParseLink(v); err != nil {
			return nil, errDecorate(err, "New")
		}
	}
	for _, v := range opts.Cystines {
		if _, _, err := martini.ParseCystines(v); err != nil {
			return nil, errDecorate(err, "New")
		}
	}
	return P, nil
}

// Options returns a copy of the options of the pipeline.
func (P *Pipeline) Options() Options { return P.opts }

// ElasticNetwork returns true if the molecules get an elastic network, because
// it was requested or because the force field requires it.
func (P *Pipeline) ElasticNetwork() bool {
	return P.opts.Elastic || P.family.Protein.ElasticNetwork()
}

// Run performs the conversion. ctx bounds the calls to the DSSP program.
func (P *Pipeline) Run(ctx context.Context) (*Result, error) {
	format, frames, err := martini.ReadStructureFile(P.opts.Input)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	if len(frames) == 0 {
		return nil, &Error{fmt.Sprintf("no structure in %s", P.opts.Input), []string{"Run"}, true}
	}
	P.log.Info("Read structure", logging.String("file", P.opts.Input), logging.String("format", format.String()), logging.Int("frames", len(frames)))
	R := &Result{Frames: len(frames)}
	var cgw *martini.CGWriter
	if P.opts.CG != "" {
		if cgw, err = martini.NewCGWriter(P.opts.CG); err != nil {
			return nil, errDecorate(err, "Run")
		}
		defer func() {
			if cgw != nil {
				cgw.Close()
			}
		}()
		R.Files = append(R.Files, P.opts.CG)
	}
	var order merge.Result
	allchains := make([][]*martini.Chain, 0, len(frames))
	ssframes := make([]string, 0, len(frames))
	for i, f := range frames {
		chains := P.chains(f, format, i == 0)
		if len(chains) == 0 {
			return nil, &Error{"no protein or nucleic acid chains in the structure", []string{"Run"}, true}
		}
		if i == 0 {
			if order, err = P.resolve(chains); err != nil {
				return nil, errDecorate(err, "Run")
			}
		} else if len(chains) != len(allchains[0]) {
			return nil, &Error{fmt.Sprintf("frame %d has %d chains, the first one has %d", i+1, len(chains), len(allchains[0])), []string{"Run"}, true}
		}
		class, err := P.secondaryStructure(ctx, chains)
		if err != nil {
			return nil, errDecorate(err, "Run")
		}
		ssframes = append(ssframes, class)
		if cgw != nil {
			P.log.Info("Writing coarse grained structure", logging.Int("model", i+1))
			if err := cgw.WriteFrame(f.Title, f.Box, ordered(chains, order.Order), P.mapper); err != nil {
				return nil, errDecorate(err, "Run")
			}
		}
		allchains = append(allchains, chains)
	}
	if cgw != nil {
		if err := cgw.Close(); err != nil {
			return nil, &Error{err.Error(), []string{"Run"}, true}
		}
		cgw = nil
	}
	chains := allchains[0]
	R.Chains = ordered(chains, order.Order)
	if P.opts.Index != "" {
		if err := P.writeIndex(R.Chains); err != nil {
			return nil, errDecorate(err, "Run")
		}
		R.Files = append(R.Files, P.opts.Index)
	}
	if P.opts.NMap != "" {
		if err := P.writeNMap(chains); err != nil {
			return nil, errDecorate(err, "Run")
		}
		R.Files = append(R.Files, P.opts.NMap)
	}
	if P.opts.Top == "" {
		return R, nil
	}
	R.SS = P.consensus(chains, ssframes)
	if P.opts.Plot != "" {
		files, err := P.plotSS(chains, allchains)
		if err != nil {
			return nil, errDecorate(err, "Run")
		}
		R.Files = append(R.Files, files...)
	}
	links := P.links(allchains)
	if err := P.topologies(R, chains, order, links); err != nil {
		return nil, errDecorate(err, "Run")
	}
	P.log.Info("There you are. One MARTINI. Shaken, not stirred.")
	return R, nil
}

// chains segments the frame and keeps the protein and nucleic acid chains.
// The first frame also gets its chains reported.
func (P *Pipeline) chains(f *martini.Frame, format martini.Format, first bool) []*martini.Chain {
	raw := f.Chains(format)
	if first {
		ids := make(map[string]bool)
		for _, c := range raw {
			if ids[c.ID] {
				P.log.Warn("Several chains have identical chain identifiers in the structure", logging.String("chain", c.ID))
				break
			}
			ids[c.ID] = true
		}
	}
	demixed := make([]*martini.Chain, 0, len(raw))
	for _, c := range raw {
		demixed = append(demixed, c.Split()...)
	}
	if first {
		P.log.Info("Found chains", logging.Int("chains", len(demixed)))
		for i, c := range demixed {
			P.log.Info("Chain", logging.Int("number", i+1), logging.String("chain", c.String()))
		}
	}
	keep := make([]*martini.Chain, 0, len(demixed))
	for _, c := range demixed {
		switch c.Type() {
		case martini.Protein, martini.Nucleic:
			keep = append(keep, c)
		case martini.Water:
			if first {
				P.log.Info("Removing water molecules", logging.String("chain", c.ID), logging.Int("residues", c.Len()))
			}
		default:
			if first {
				P.log.Info("Removing HETATM chain", logging.String("chain", c.ID), logging.Int("residues", c.Len()))
			}
		}
	}
	for _, c := range keep {
		c.Multiscale = selected(P.opts.Multi, c.ID)
		P.protonate(c)
	}
	if first {
		n := 0
		for _, c := range keep {
			n += c.Len()
			if u := c.Unknowns(); len(u) > 0 {
				P.log.Warn("Residues without mapping are skipped", logging.String("chain", c.ID), logging.Int("residues", len(u)))
			}
		}
		P.log.Info("Total size of the system", logging.Int("residues", n))
	}
	return keep
}

// selected returns true if id is in list, or list contains "all".
func selected(list []string, id string) bool {
	for _, v := range list {
		for _, f := range strings.Split(v, ",") {
			f = strings.TrimSpace(f)
			if f == "all" || (f != "" && f == strings.TrimSpace(id)) {
				return true
			}
		}
	}
	return false
}

// protonate renames the requested histidines to HIH.
func (P *Pipeline) protonate(c *martini.Chain) {
	for _, v := range P.opts.His {
		spec, err := martini.ParseAtomSpec(v)
		if err != nil {
			P.log.Warn("Can't parse histidine specification", logging.String("spec", v), logging.Err(err))
			continue
		}
		if spec.Chain != "" && spec.Chain != c.ID {
			continue
		}
		for _, r := range c.Residues {
			if r.ID != spec.ResID || r.Name != "HIS" {
				continue
			}
			r.Name = "HIH"
			for i := range r.Atoms {
				r.Atoms[i].ResName = "HIH"
			}
		}
	}
}

// ordered returns the chains in the given order. A nil order keeps them as they are.
func ordered(chains []*martini.Chain, order []int) []*martini.Chain {
	if len(order) == 0 {
		return chains
	}
	ret := make([]*martini.Chain, 0, len(order))
	for _, v := range order {
		ret = append(ret, chains[v])
	}
	return ret
}

// Error is the error type for the package.
type Error struct {
	msg      string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s (%s)", err.msg, strings.Join(err.deco, ": "))
}

// Decorate adds dec to the error's decoration and returns it.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical returns true if the error is not recoverable.
func (err *Error) Critical() bool { return err.critical }

type decorator interface {
	Decorate(string) []string
}

func errDecorate(err error, info string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(decorator); ok {
		e.Decorate(info)
	}
	return err
}
