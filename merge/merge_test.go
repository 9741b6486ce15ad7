/*
 * merge_test.go, part of martinize
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
	"errors"
	"reflect"
	"testing"

	martini "github.com/rmera/martinize"
	"github.com/rmera/martinize/internal/fixture"
)

// chains returns 4 chains. The cysteines of A and B have their SG atoms 2 A apart
// when dz is 2.
func chains(dz float64) []*martini.Chain {
	return []*martini.Chain{
		fixture.Chain("A", fixture.Peptide('A', 1, []string{"ALA", "CYS", "GLY"}, [3]float64{0, 0, 0})),
		fixture.Chain("B", fixture.Peptide('B', 1, []string{"GLY", "CYS", "ALA"}, [3]float64{0, 0, dz})),
		fixture.Chain("C", fixture.Peptide('C', 1, []string{"ALA", "ALA"}, [3]float64{0, 20, 0})),
		fixture.Chain("D", fixture.Peptide('D', 1, []string{"ALA", "ALA"}, [3]float64{0, 40, 0})),
	}
}

func TestResolve(Te *testing.T) {
	R := NewResolver(nil)
	link, err := martini.ParseLink("B/GLY/1/BB,D/ALA/1/BB")
	if err != nil {
		Te.Fatal(err)
	}
	table := []struct {
		name   string
		opts   Options
		groups [][]int
		order  []int
	}{
		{"none", Options{}, [][]int{{0}, {1}, {2}, {3}}, []int{0, 1, 2, 3}},
		{"cystine", Options{Cutoff2: martini.DefaultCystineCutoff2}, [][]int{{0, 1}, {2}, {3}}, []int{0, 1, 2, 3}},
		{"ids", Options{Groups: [][]string{{"D", "C"}}}, [][]int{{2, 3}, {0}, {1}}, []int{2, 3, 0, 1}},
		{"transitive", Options{Groups: [][]string{{"1", "3"}, {"C", "4"}}}, [][]int{{0, 2, 3}, {1}}, []int{0, 2, 3, 1}},
		{"all", Options{Groups: [][]string{{"all"}}}, [][]int{{0, 1, 2, 3}}, []int{0, 1, 2, 3}},
		{"link", Options{Links: []martini.CGLink{link}}, [][]int{{1, 3}, {0}, {2}}, []int{1, 3, 0, 2}},
	}
	for _, v := range table {
		r, err := R.Resolve(chains(2), v.opts)
		if err != nil {
			Te.Fatalf("%s: %v", v.name, err)
		}
		if !reflect.DeepEqual(r.Groups, v.groups) || !reflect.DeepEqual(r.Order, v.order) {
			Te.Errorf("%s: got %v %v, want %v %v", v.name, r.Groups, r.Order, v.groups, v.order)
		}
	}
	r, _ := R.Resolve(chains(8), Options{Cutoff2: martini.DefaultCystineCutoff2})
	if r.Merged() {
		Te.Errorf("distant cysteines merged: %v", r.Groups)
	}
	for _, bad := range []string{"Z", "7", "0"} {
		_, err := R.Resolve(chains(2), Options{Groups: [][]string{{"A", bad}}})
		var e *Error
		if !errors.As(err, &e) || !e.Critical() {
			Te.Errorf("%s: expected a critical error, got %v", bad, err)
		}
	}
}

func TestRepeatedID(Te *testing.T) {
	c := chains(2)
	c[3].ID = "A"
	r, err := NewResolver(nil).Resolve(c, Options{Groups: [][]string{{"A", "C"}}})
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(r.Groups[0], []int{0, 2}) {
		Te.Errorf("the first chain with a repeated id should be used: %v", r.Groups)
	}
}

func TestCystines(Te *testing.T) {
	R := NewResolver(nil)
	frames := [][]*martini.Chain{chains(8), chains(2), chains(12)}
	links := R.Cystines(frames, martini.DefaultCystineCutoff2)
	if len(links) != 1 {
		Te.Fatalf("expected one bridge, got %v", links)
	}
	l := links[0]
	if !l.Special || l.A.Chain != "A" || l.B.Chain != "B" || l.A.Atom != "SC1" || l.B.ResID.Seq != 2 {
		Te.Errorf("wrong link %+v", l)
	}
	if links := R.Cystines(frames[:1], martini.DefaultCystineCutoff2); len(links) != 0 {
		Te.Errorf("no bridge expected, got %v", links)
	}
	if R.Cystines(frames, 0) != nil {
		Te.Error("detection should be off")
	}
}
