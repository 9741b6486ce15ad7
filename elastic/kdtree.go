/*
 * kdtree.go, part of martinize
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

package elastic

import (
	v3 "github.com/rmera/martinize/v3"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// point is a position that remembers its index in the original list.
type point struct {
	pos   [3]float64
	index int
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	return p.pos[d] - q.pos[d]
}

func (p point) Dims() int { return 3 }

// Distance returns the squared distance between p and c.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	return v3.Distance2(p.pos, q.pos)
}

type points []point

func (p points) Index(i int) kdtree.Comparable { return p[i] }
func (p points) Len() int                      { return len(p) }
func (p points) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p points) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{d, p}, kdtree.MedianOfMedians(plane{d, p}))
}

// plane sorts points along one dimension.
type plane struct {
	dim kdtree.Dim
	p   points
}

func (p plane) Len() int           { return len(p.p) }
func (p plane) Less(i, j int) bool { return p.p[i].pos[p.dim] < p.p[j].pos[p.dim] }
func (p plane) Swap(i, j int)      { p.p[i], p.p[j] = p.p[j], p.p[i] }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{p.dim, p.p[start:end]}
}

// Pairs returns every pair of indexes i<j of positions whose squared distance
// is below cutoff2 (A^2), sorted.
func Pairs(pos [][3]float64, cutoff2 float64) [][2]int {
	if len(pos) < 2 {
		return nil
	}
	pts := make(points, len(pos))
	for i, v := range pos {
		pts[i] = point{v, i}
	}
	//the tree reorders the slice it gets.
	tree := kdtree.New(append(points(nil), pts...), false)
	ret := make([][2]int, 0, len(pos))
	for i, q := range pts {
		keep := kdtree.NewDistKeeper(cutoff2)
		tree.NearestSet(keep, q)
		for _, c := range keep.Heap {
			if c.Comparable == nil {
				continue
			}
			j := c.Comparable.(point).index
			if j > i && c.Dist < cutoff2 {
				ret = append(ret, [2]int{i, j})
			}
		}
	}
	SortPairs(ret)
	return ret
}
