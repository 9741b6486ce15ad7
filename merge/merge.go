/*
 * merge.go, part of martinize
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
Package merge decides which chains go together in one moleculetype.

Chains are merged when the user asks for it, when a link joins them, or when
two of their cysteines are close enough to form a disulfide bridge.
*/
package merge

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	martini "github.com/rmera/martinize"
	"github.com/rmera/martinize/internal/logging"
	v3 "github.com/rmera/martinize/v3"
)

// Options are the merge requests.
type Options struct {
	//Each group is a list of chain IDs or 1-based chain numbers. A group
	//containing "all" merges every chain.
	Groups [][]string
	//Links between atoms (residue-level) that force their chains together.
	Links []martini.CGLink
	//Squared SG-SG distance (A^2) below which two cysteines are bridged. 0 disables the check.
	Cutoff2 float64
}

// Result is the outcome of the merge resolution.
type Result struct {
	//Chain indexes in writing order: merged groups first, then the other chains.
	Order []int
	//Every chain is in exactly one group, singletons included, in writing order.
	Groups [][]int
}

// Merged returns true if any group has more than one chain.
func (R Result) Merged() bool {
	for _, g := range R.Groups {
		if len(g) > 1 {
			return true
		}
	}
	return false
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

// Resolver computes merge groups.
type Resolver struct {
	log logging.Logger
}

// NewResolver returns a Resolver that reports to log. A nil log discards everything.
func NewResolver(log logging.Logger) *Resolver {
	return &Resolver{log: logging.OrNop(log).Named("merge")}
}

// components returns the connected components of g as sorted chain indexes,
// ordered by their smallest member.
func components(g graph.Undirected) [][]int {
	cc := topo.ConnectedComponents(g)
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		ids := make([]int, len(c))
		for i, v := range c {
			ids[i] = int(v.ID())
		}
		sort.Ints(ids)
		ret = append(ret, ids)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

// index returns the 0-based index of the chain given by a 1-based number or
// by its ID. Repeated IDs resolve to the first chain carrying them.
func index(chains []*martini.Chain, id string) (int, error) {
	if n, err := strconv.Atoi(id); err == nil {
		if n < 1 || n > len(chains) {
			return -1, &Error{fmt.Sprintf("chain number %d out of range (1-%d)", n, len(chains)), []string{"index"}, true}
		}
		return n - 1, nil
	}
	for i, c := range chains {
		if c.ID == id {
			return i, nil
		}
	}
	return -1, &Error{fmt.Sprintf("no chain with id %q", id), []string{"index"}, true}
}

// Resolve returns the merge groups and the writing order for chains.
func (R *Resolver) Resolve(chains []*martini.Chain, opts Options) (Result, error) {
	n := len(chains)
	for _, g := range opts.Groups {
		for _, v := range g {
			if strings.ToLower(strings.TrimSpace(v)) == "all" {
				R.log.Info("All chains will be merged in a single moleculetype")
				all := make([]int, n)
				for i := range all {
					all[i] = i
				}
				return Result{Order: all, Groups: [][]int{all}}, nil
			}
		}
	}
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	join := func(i, j int) { g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)}) }
	paired := make(map[[2]int]bool)
	for _, grp := range opts.Groups {
		members := make([]int, 0, len(grp))
		for _, v := range grp {
			i, err := index(chains, strings.TrimSpace(v))
			if err != nil {
				if e, ok := err.(*Error); ok {
					e.Decorate("Resolve")
				}
				return Result{}, err
			}
			members = append(members, i)
		}
		sort.Ints(members)
		for j := 0; j < len(members); j++ {
			for k := j + 1; k < len(members); k++ {
				if members[j] == members[k] {
					continue
				}
				paired[[2]int{members[j], members[k]}] = true
				join(members[j], members[k])
			}
		}
	}
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if paired[[2]int{i, j}] {
				continue
			}
			if l, ok := linked(chains[i], chains[j], opts.Links); ok {
				R.log.Info("Merging chains to allow link", logging.Int("chainA", i+1), logging.Int("chainB", j+1), logging.String("link", fmt.Sprintf("%s-%s", l.A, l.B)))
				join(i, j)
				continue
			}
			if opts.Cutoff2 <= 0 {
				continue
			}
			if d2, ok := bridged(chains[i], chains[j], opts.Cutoff2); ok {
				R.log.Info("Found SS contact linking chains", logging.Int("chainA", i+1), logging.Int("chainB", j+1), logging.Float64("distance_nm", math.Sqrt(d2)/10))
				join(i, j)
			}
		}
	}
	res := Result{Order: make([]int, 0, n)}
	var singles [][]int
	for _, c := range components(g) {
		if len(c) > 1 {
			res.Groups = append(res.Groups, c)
		} else {
			singles = append(singles, c)
		}
	}
	if len(res.Groups) > 0 {
		human := make([]string, len(res.Groups))
		for k, g := range res.Groups {
			h := make([]string, len(g))
			for l, v := range g {
				h[l] = strconv.Itoa(v + 1)
			}
			human[k] = "[" + strings.Join(h, " ") + "]"
		}
		R.log.Warn("Merging chains. This may change the order of atoms and will change the number of topology files", logging.String("merges", strings.Join(human, ", ")))
	}
	res.Groups = append(res.Groups, singles...)
	for _, g := range res.Groups {
		res.Order = append(res.Order, g...)
	}
	return res, nil
}

func linked(a, b *martini.Chain, links []martini.CGLink) (martini.CGLink, bool) {
	for _, l := range links {
		x, y := l.Atomistic()
		if (a.Contains(x) && b.Contains(y)) || (a.Contains(y) && b.Contains(x)) {
			return l, true
		}
	}
	return martini.CGLink{}, false
}

func sgAtoms(c *martini.Chain) [][3]float64 {
	ret := make([][3]float64, 0)
	for _, r := range c.ResiduesNamed("CYS") {
		if sg, ok := r.Atom("SG"); ok {
			ret = append(ret, sg.Pos)
		}
	}
	return ret
}

// bridged returns true, and the squared distance, if any SG atom of a is within
// cutoff2 of an SG atom of b.
func bridged(a, b *martini.Chain, cutoff2 float64) (float64, bool) {
	sa, sb := sgAtoms(a), sgAtoms(b)
	for _, x := range sa {
		for _, y := range sb {
			if d2 := v3.Distance2(x, y); d2 <= cutoff2 {
				return d2, true
			}
		}
	}
	return 0, false
}
