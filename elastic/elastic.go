/*
 * elastic.go, part of martinize
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
Package elastic builds elastic networks (rubber bands) over CG beads.

Each pair of eligible beads closer than an upper cutoff gets a harmonic bond
whose force constant decays with the distance. The network can be built by
checking every pair, or with a kd-tree, which gives the same bonds in the same order.
*/
package elastic

import (
	"fmt"
	"math"
	"sort"
	"strings"

	v3 "github.com/rmera/martinize/v3"
	"gonum.org/v1/gonum/stat"
)

// Bead is a CG bead that can take part in the network.
type Bead struct {
	ID   int //atom number in the topology
	Name string
	Pos  [3]float64 //A
}

// Params controls which bonds are created, and their strength.
type Params struct {
	FC    float64 //force constant (kJ mol^-1 nm^-2) for bonds shorter than Lower
	MinFC float64 //bonds whose scaled force constant is not above this are dropped
	Lower float64 //nm
	Upper float64 //nm
	Rate  float64
	Power float64
	//Only beads with these names get bonds. Empty means all beads.
	Names []string
	//Use a kd-tree to find the pairs within the upper cutoff.
	Bucketing bool
}

// DefaultParams returns the usual settings: 500 kJ mol^-1 nm^-2 up to 0.9 nm,
// no decay, backbone beads only.
func DefaultParams() Params {
	return Params{FC: 500, Upper: 0.9, Power: 1, Names: []string{"BB"}}
}

func (P Params) String() string {
	return fmt.Sprintf("fc %g, min %g, range %g-%g nm, decay %g^%g, beads %s", P.FC, P.MinFC, P.Lower, P.Upper, P.Rate, P.Power, strings.Join(P.Names, ","))
}

// Bond is one elastic bond.
type Bond struct {
	A, B   int     //IDs of the beads
	Length float64 //nm
	Scale  float64 //fraction of the force constant
}

// Scale returns the factor applied to the force constant for a bond of length d (nm).
func (P Params) Scale(d float64) float64 {
	x := d - P.Lower
	if x < 0 && P.Power != math.Trunc(P.Power) {
		//fractional powers of negative numbers are not real.
		x = 0
	}
	return math.Exp(-P.Rate * math.Pow(x, P.Power))
}

func (P Params) eligible(beads []Bead) []Bead {
	if len(P.Names) == 0 {
		return beads
	}
	names := make(map[string]bool, len(P.Names))
	for _, v := range P.Names {
		names[v] = true
	}
	ret := make([]Bead, 0, len(beads))
	for _, b := range beads {
		if names[b.Name] {
			ret = append(ret, b)
		}
	}
	return ret
}

// Build returns the elastic bonds among beads. Pairs are taken in the order of
// the eligible beads, and the three beads that follow each one are never bonded to it.
func Build(beads []Bead, P Params) []Bond {
	el := P.eligible(beads)
	u2 := 100 * P.Upper * P.Upper
	var candidates [][2]int
	if P.Bucketing {
		pos := make([][3]float64, len(el))
		for i, b := range el {
			pos[i] = b.Pos
		}
		candidates = Pairs(pos, u2)
	} else {
		candidates = make([][2]int, 0, len(el))
		for i := 0; i < len(el); i++ {
			for j := i + 1; j < len(el); j++ {
				if v3.Distance2(el[i].Pos, el[j].Pos) < u2 {
					candidates = append(candidates, [2]int{i, j})
				}
			}
		}
	}
	ret := make([]Bond, 0, len(candidates))
	for _, c := range candidates {
		i, j := c[0], c[1]
		if j-i <= 3 {
			continue
		}
		d2 := v3.Distance2(el[i].Pos, el[j].Pos)
		if d2 >= u2 {
			continue
		}
		d := math.Sqrt(d2) / 10
		s := P.Scale(d)
		if s*P.FC > P.MinFC {
			ret = append(ret, Bond{A: el[i].ID, B: el[j].ID, Length: d, Scale: s})
		}
	}
	return ret
}

// Statistics summarizes an elastic network.
type Statistics struct {
	N          int
	MeanLength float64 //nm
	StdLength  float64
	MeanScale  float64
	StdScale   float64
}

func (S Statistics) String() string {
	return fmt.Sprintf("%d bonds, length %.3f+/-%.3f nm, scale %.3f+/-%.3f", S.N, S.MeanLength, S.StdLength, S.MeanScale, S.StdScale)
}

// Stats returns the statistics for bonds.
func Stats(bonds []Bond) Statistics {
	ret := Statistics{N: len(bonds)}
	if len(bonds) == 0 {
		return ret
	}
	l := make([]float64, len(bonds))
	s := make([]float64, len(bonds))
	for i, b := range bonds {
		l[i] = b.Length
		s[i] = b.Scale
	}
	if len(bonds) == 1 {
		ret.MeanLength, ret.MeanScale = l[0], s[0]
		return ret
	}
	ret.MeanLength, ret.StdLength = stat.MeanStdDev(l, nil)
	ret.MeanScale, ret.StdScale = stat.MeanStdDev(s, nil)
	return ret
}

// Matrix returns the scale factor of each bond between beads, indexed by position
// in the list of IDs. Pairs without bond are 0.
func Matrix(bonds []Bond, ids []int) [][]float64 {
	index := make(map[int]int, len(ids))
	for i, v := range ids {
		index[v] = i
	}
	ret := make([][]float64, len(ids))
	for i := range ret {
		ret[i] = make([]float64, len(ids))
	}
	for _, b := range bonds {
		i, ok1 := index[b.A]
		j, ok2 := index[b.B]
		if ok1 && ok2 {
			ret[i][j] = b.Scale
			ret[j][i] = b.Scale
		}
	}
	return ret
}

// SortPairs sorts index pairs by their first, then their second element.
func SortPairs(p [][2]int) {
	sort.Slice(p, func(i, j int) bool {
		if p[i][0] != p[j][0] {
			return p[i][0] < p[j][0]
		}
		return p[i][1] < p[j][1]
	})
}
