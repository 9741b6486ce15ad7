/*
 * plot_test.go, part of martinize
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

package chemplot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFractions(Te *testing.T) {
	frames := []string{"HHEC", "HHCC", "H3CC", "HHEE"}
	h := Fractions(frames, "H123")
	want := []float64{1, 1, 0, 0}
	for i, v := range want {
		if h[i] != v {
			Te.Errorf("helix fraction of residue %d: %f, expected %f", i, h[i], v)
		}
	}
	e := Fractions(frames, "E")
	if e[2] != 0.5 || e[3] != 0.25 {
		Te.Errorf("bad strand fractions %v", e)
	}
}

func TestSSProfile(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "ss")
	frames := []string{"CHHHHHHC", "CHHHHHTC", "CEEHHHHC"}
	if err := SSProfile(frames, "Chain A", name); err != nil {
		Te.Fatal(err)
	}
	if st, err := os.Stat(name + ".png"); err != nil || st.Size() == 0 {
		Te.Errorf("no plot written: %v", err)
	}
	if err := SSProfile(nil, "Nothing", name); err == nil {
		Te.Errorf("empty profile should fail")
	}
}

func TestElasticMap(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "elastic.svg")
	m := [][]float64{
		{0, 0, 0, 0, 1},
		{0, 0, 0, 0, 0.5},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{1, 0.5, 0, 0, 0},
	}
	if err := ElasticMap(m, "Elastic network", name); err != nil {
		Te.Fatal(err)
	}
	if st, err := os.Stat(name); err != nil || st.Size() == 0 {
		Te.Errorf("no plot written: %v", err)
	}
	if err := ElasticMap([][]float64{{0, 1}}, "Bad", name); err == nil {
		Te.Errorf("non-square matrix should fail")
	}
}
