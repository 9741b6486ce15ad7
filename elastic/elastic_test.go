/*
 * elastic_test.go, part of martinize
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
	"math"
	"math/rand"
	"reflect"
	"testing"
)

// helix returns n beads on a helix with 3.6 beads per turn, like the CA atoms of an alpha helix.
// Every fifth bead is called SC1.
func helix(n int) []Bead {
	ret := make([]Bead, n)
	for i := range ret {
		t := float64(i) * 2 * math.Pi / 3.6
		name := "BB"
		if i%5 == 4 {
			name = "SC1"
		}
		ret[i] = Bead{ID: i + 1, Name: name, Pos: [3]float64{2.3 * math.Cos(t), 2.3 * math.Sin(t), 1.5 * float64(i)}}
	}
	return ret
}

func TestBuild(Te *testing.T) {
	P := DefaultParams()
	beads := helix(40)
	bonds := Build(beads, P)
	if len(bonds) == 0 {
		Te.Fatal("no bonds")
	}
	names := make(map[int]string)
	order := make(map[int]int)
	k := 0
	for _, b := range beads {
		names[b.ID] = b.Name
		if b.Name == "BB" {
			order[b.ID] = k
			k++
		}
	}
	for _, b := range bonds {
		if names[b.A] != "BB" || names[b.B] != "BB" {
			Te.Errorf("bond on a filtered bead %v", b)
		}
		if order[b.B]-order[b.A] <= 3 {
			Te.Errorf("bond between close neighbours %v", b)
		}
		if b.Length >= P.Upper {
			Te.Errorf("bond too long %v", b)
		}
		if b.Scale != 1 {
			Te.Errorf("no decay expected %v", b)
		}
	}
	P.Rate = 2
	P.MinFC = 300
	decayed := Build(beads, P)
	if len(decayed) >= len(bonds) {
		Te.Errorf("the minimum force constant should remove bonds: %d %d", len(decayed), len(bonds))
	}
	for _, b := range decayed {
		if b.Scale*P.FC <= P.MinFC {
			Te.Errorf("bond below the minimum %v", b)
		}
	}
}

func TestBucketing(Te *testing.T) {
	r := rand.New(rand.NewSource(1))
	beads := make([]Bead, 300)
	for i := range beads {
		beads[i] = Bead{ID: 2*i + 1, Name: "BB", Pos: [3]float64{40 * r.Float64(), 40 * r.Float64(), 40 * r.Float64()}}
	}
	P := DefaultParams()
	P.Upper = 1.2
	P.Rate = 1
	brute := Build(beads, P)
	P.Bucketing = true
	kd := Build(beads, P)
	if len(brute) == 0 {
		Te.Fatal("no bonds")
	}
	if !reflect.DeepEqual(brute, kd) {
		Te.Errorf("kd-tree gave %d bonds, brute force %d", len(kd), len(brute))
	}
}

func TestPairs(Te *testing.T) {
	pos := [][3]float64{{0, 0, 0}, {10, 0, 0}, {1, 0, 0}, {10, 1.5, 0}, {30, 0, 0}}
	got := Pairs(pos, 4)
	want := [][2]int{{0, 2}, {1, 3}}
	if !reflect.DeepEqual(got, want) {
		Te.Errorf("got %v want %v", got, want)
	}
	if Pairs(pos[:1], 4) != nil {
		Te.Error("pairs for a single point")
	}
}

func TestSortPairs(Te *testing.T) {
	p := [][2]int{{3, 4}, {0, 7}, {3, 1}, {0, 2}}
	SortPairs(p)
	want := [][2]int{{0, 2}, {0, 7}, {3, 1}, {3, 4}}
	if !reflect.DeepEqual(p, want) {
		Te.Errorf("got %v want %v", p, want)
	}
}

func TestStats(Te *testing.T) {
	b := []Bond{{1, 5, 0.5, 1}, {1, 6, 0.7, 0.5}}
	s := Stats(b)
	if s.N != 2 || math.Abs(s.MeanLength-0.6) > 1e-9 || math.Abs(s.MeanScale-0.75) > 1e-9 {
		Te.Errorf("wrong stats %s", s)
	}
	if math.Abs(s.StdLength-math.Sqrt(0.02)) > 1e-9 {
		Te.Errorf("wrong deviation %s", s)
	}
	if Stats(nil).N != 0 || Stats(b[:1]).StdLength != 0 {
		Te.Error("wrong stats for short lists")
	}
	m := Matrix(b, []int{1, 5, 6})
	if m[0][2] != 0.5 || m[2][0] != 0.5 || m[1][2] != 0 {
		Te.Errorf("wrong matrix %v", m)
	}
}
