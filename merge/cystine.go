/*
 * cystine.go, part of martinize
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

package merge

import (
	"math"

	martini "github.com/rmera/martinize"
	"github.com/rmera/martinize/elastic"
	"github.com/rmera/martinize/internal/logging"
	v3 "github.com/rmera/martinize/v3"
)

type sulfur struct {
	spec  martini.AtomSpec
	chain int
	res   int
}

// Cystines returns a CG link for each pair of cysteines whose SG atoms get
// within sqrt(cutoff2) A of each other in any frame. frames holds the chains of each
// frame, all segmented the same way. Pairs can be in the same chain or in different ones.
func (R *Resolver) Cystines(frames [][]*martini.Chain, cutoff2 float64) []martini.CGLink {
	if len(frames) == 0 || cutoff2 <= 0 {
		return nil
	}
	R.log.Info("Checking for cystine bridges, based on sulphur (SG) atoms", logging.Float64("cutoff_nm", math.Sqrt(cutoff2)/10))
	sg := make([]sulfur, 0)
	for i, c := range frames[0] {
		for j, r := range c.Residues {
			if r.Name != "CYS" {
				continue
			}
			if _, ok := r.Atom("SG"); ok {
				sg = append(sg, sulfur{martini.AtomSpec{Chain: c.ID, ResName: "CYS", ResID: r.ID}, i, j})
			}
		}
	}
	if len(sg) < 2 {
		return nil
	}
	//Pairs compares strictly.
	search := math.Nextafter(cutoff2, math.Inf(1))
	closest := make(map[[2]int]float64)
	for f, chains := range frames {
		pos := make([][3]float64, len(sg))
		ok := true
		for k, s := range sg {
			if s.chain >= len(chains) || s.res >= chains[s.chain].Len() {
				ok = false
				break
			}
			a, found := chains[s.chain].Residues[s.res].Atom("SG")
			if !found {
				ok = false
				break
			}
			pos[k] = a.Pos
		}
		if !ok {
			R.log.Warn("Frame doesn't match the first one, skipped for cystine detection", logging.Int("frame", f+1))
			continue
		}
		for _, p := range elastic.Pairs(pos, search) {
			d2 := v3.Distance2(pos[p[0]], pos[p[1]])
			if old, seen := closest[p]; !seen || d2 < old {
				closest[p] = d2
			}
		}
	}
	ret := make([]martini.CGLink, 0, len(closest))
	pairs := make([][2]int, 0, len(closest))
	for p := range closest {
		pairs = append(pairs, p)
	}
	elastic.SortPairs(pairs)
	for _, p := range pairs {
		a, b := sg[p[0]].spec, sg[p[1]].spec
		R.log.Info("Detected SS bridge", logging.String("a", a.String()), logging.String("b", b.String()), logging.Float64("distance_nm", math.Sqrt(closest[p])/10))
		ret = append(ret, martini.CystineLink(a, b))
	}
	return ret
}
