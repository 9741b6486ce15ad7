/*
 * structure.go, part of martinize
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
	"context"
	"strings"

	martini "github.com/rmera/martinize"
	"github.com/rmera/martinize/internal/logging"
	"github.com/rmera/martinize/merge"
	"github.com/rmera/martinize/ss"
)

// userSS returns the structure given with the SS option, read from a file if
// it is not a literal string. The result is read once.
func (P *Pipeline) userSS() (string, ss.Source, error) {
	if P.ssread {
		return P.ssraw, P.sssrc, nil
	}
	if ss.IsLiteral(P.opts.SS) {
		P.ssraw, P.sssrc = ss.Literal(P.opts.SS), ss.DSSP
	} else {
		var err error
		P.ssraw, P.sssrc, err = ss.ReadFile(P.opts.SS)
		if err != nil {
			return "", ss.Self, errDecorate(err, "userSS")
		}
		P.log.Info("Read secondary structure file", logging.String("file", P.opts.SS), logging.String("source", string(P.sssrc)))
	}
	P.ssread = true
	return P.ssraw, P.sssrc, nil
}

func proteins(chains []*martini.Chain) []*martini.Chain {
	ret := make([]*martini.Chain, 0, len(chains))
	for _, c := range chains {
		if c.Type() == martini.Protein {
			ret = append(ret, c)
		}
	}
	return ret
}

// secondaryStructure sets the structure of the protein chains of one frame, and
// returns their classifications joined in a single string.
func (P *Pipeline) secondaryStructure(ctx context.Context, chains []*martini.Chain) (string, error) {
	prot := proteins(chains)
	if len(prot) == 0 {
		return "", nil
	}
	switch {
	case P.opts.Collagen:
		for _, c := range prot {
			c.SetSS(strings.Repeat("F", c.Len()), ss.Self)
		}
	case P.opts.SS != "":
		raw, src, err := P.userSS()
		if err != nil {
			return "", errDecorate(err, "secondaryStructure")
		}
		//a single symbol applies to every residue
		if len(raw) == 1 {
			for _, c := range prot {
				c.SetSS(strings.Repeat(raw, c.Len()), src)
			}
			break
		}
		for _, c := range prot {
			cur := raw
			if len(cur) < c.Len() {
				if !P.sswarned {
					P.log.Warn("Secondary structure shorter than the protein chains, the rest is taken as coil", logging.String("chain", c.ID), logging.Int("missing", c.Len()-len(cur)))
					P.sswarned = true
				}
				cur += strings.Repeat("C", c.Len()-len(cur))
			}
			c.SetSS(cur[:c.Len()], src)
			raw = raw[min(len(raw), c.Len()):]
		}
	case P.dssp != nil:
		for _, c := range prot {
			out, err := P.dssp.Run(ctx, c.DSSPRecords())
			if err != nil {
				return "", errDecorate(err, "secondaryStructure")
			}
			c.SetSS(out, ss.DSSP)
		}
	default:
		if !P.sswarned {
			P.log.Warn("No secondary structure or determination method given. Protein chains will be set to coil")
			P.sswarned = true
		}
		for _, c := range prot {
			c.SetSS(c.DefaultSS(), ss.Self)
		}
	}
	var b strings.Builder
	for _, c := range prot {
		b.WriteString(c.SSClass)
	}
	return b.String(), nil
}

// consensus reduces the per-frame structures to one, and sets it to the
// protein chains. It returns the consensus.
func (P *Pipeline) consensus(chains []*martini.Chain, frames []string) string {
	total := ss.Consensus(frames, P.opts.SSCutoff)
	if len(frames) > 1 {
		und := strings.Count(total, string(ss.Undetermined))
		P.log.Info("Secondary structure consensus", logging.Int("frames", len(frames)), logging.Float64("cutoff", P.opts.SSCutoff), logging.Int("undetermined", und))
	}
	counts := make(map[byte]int)
	for i := 0; i < len(total); i++ {
		counts[total[i]]++
	}
	for i := 0; i < len(ss.Alphabet); i++ {
		if n := counts[ss.Alphabet[i]]; n > 0 {
			P.log.Debug("Secondary structure", logging.String("type", ss.Name(ss.Alphabet[i])), logging.Int("residues", n))
		}
	}
	rest := total
	for _, c := range proteins(chains) {
		n := min(len(rest), c.Len())
		c.SetSS(rest[:n]+strings.Repeat("C", c.Len()-n), ss.Self)
		rest = rest[n:]
	}
	return total
}

// mergeGroups returns the merge groups given in the options, as lists of chain names.
func (P *Pipeline) mergeGroups() [][]string {
	ret := make([][]string, 0, len(P.opts.Merges))
	for _, v := range P.opts.Merges {
		g := make([]string, 0, 2)
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				g = append(g, f)
			}
		}
		if len(g) > 0 {
			ret = append(ret, g)
		}
	}
	return ret
}

// cystines returns the squared cutoff for the automatic detection of cystine
// bridges (0 if disabled), and the explicitly requested bridges.
func (P *Pipeline) cystines() (float64, []martini.CGLink) {
	cutoff2 := 0.0
	links := make([]martini.CGLink, 0)
	for _, v := range P.opts.Cystines {
		c2, l, err := martini.ParseCystines(v)
		if err != nil {
			//checked in New
			continue
		}
		if l != nil {
			links = append(links, *l)
		}
		cutoff2 = max(cutoff2, c2)
	}
	return cutoff2, links
}

// userLinks returns the explicit links: those given with the Links option and
// the explicit cystine bridges.
func (P *Pipeline) userLinks() []martini.CGLink {
	_, ret := P.cystines()
	for _, v := range P.opts.Links {
		l, err := martini.ParseLink(v)
		if err != nil {
			continue
		}
		ret = append(ret, l)
	}
	return ret
}

// resolve decides which chains go together in a molecule, and the
// order in which chains are written.
func (P *Pipeline) resolve(chains []*martini.Chain) (merge.Result, error) {
	cutoff2, _ := P.cystines()
	res, err := P.resolver.Resolve(chains, merge.Options{Groups: P.mergeGroups(), Links: P.userLinks(), Cutoff2: cutoff2})
	if err != nil {
		return res, errDecorate(err, "resolve")
	}
	return res, nil
}

// links returns all the links to add to the topologies: the explicit ones
// and the cystine bridges found in any frame.
func (P *Pipeline) links(frames [][]*martini.Chain) []martini.CGLink {
	ret := P.userLinks()
	cutoff2, _ := P.cystines()
	if cutoff2 <= 0 {
		return ret
	}
	found := P.resolver.Cystines(frames, cutoff2)
	for _, l := range found {
		dup := false
		for _, u := range ret {
			if (u.A == l.A && u.B == l.B) || (u.A == l.B && u.B == l.A) {
				dup = true
				break
			}
		}
		if !dup {
			ret = append(ret, l)
		}
	}
	return ret
}
