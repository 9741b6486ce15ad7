/*
 * v3_test.go, part of martinize
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

package v3

import (
	"math"
	"testing"
)

func TestWeightedCentroid(Te *testing.T) {
	A := FromPoints([][3]float64{{0, 0, 0}, {2, 0, 0}, {0, 4, 0}})
	c, err := WeightedCentroid(A, []float64{1, 1, 2})
	if err != nil {
		Te.Fatal(err)
	}
	expected := [3]float64{0.5, 2, 0}
	for i := range c {
		if math.Abs(c[i]-expected[i]) > 1e-9 {
			Te.Errorf("Centroid %v, expected %v", c, expected)
		}
	}
	_, err = WeightedCentroid(A, []float64{0, 0, 0})
	if err == nil {
		Te.Error("Zero total mass should give an error")
	}
	g, _ := Centroid(A)
	if math.Abs(g[0]-2.0/3) > 1e-9 || math.Abs(g[1]-4.0/3) > 1e-9 {
		Te.Errorf("Wrong geometric center %v", g)
	}
}

func TestGeo(Te *testing.T) {
	a := [3]float64{1, 0, 0}
	b := [3]float64{0, 0, 0}
	c := [3]float64{0, 1, 0}
	if ang := Angle(a, b, c); math.Abs(ang-90) > 1e-9 {
		Te.Errorf("Angle %f, expected 90", ang)
	}
	if d := Distance2(a, c); math.Abs(d-2) > 1e-12 {
		Te.Errorf("Distance2 %f, expected 2", d)
	}
	A := FromPoints([][3]float64{a, b})
	B := FromPoints([][3]float64{{4, 0, 0}, {0, 3, 0}})
	if d := MinDistance2(A, B); math.Abs(d-9) > 1e-12 {
		Te.Errorf("MinDistance2 %f, expected 9", d)
	}
	C := Zeros(2)
	C.SomeVecs(B, []int{1, 0})
	if C.Point(0) != B.Point(1) {
		Te.Errorf("SomeVecs failed: %v", C)
	}
	defer func() {
		if recover() == nil {
			Te.Error("SomeVecs should panic when the receiver has the wrong number of vectors")
		}
	}()
	Zeros(1).SomeVecs(B, []int{0, 1})
}
