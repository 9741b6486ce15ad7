/*
 * gocoords.go, part of martinize
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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// WeightedCentroid returns the weighted average of the vectors in coords.
// weights must have one element per vector. It returns an error if the
// weights add up to zero, or if there are no vectors.
func WeightedCentroid(coords *Matrix, weights []float64) ([3]float64, error) {
	var ret [3]float64
	if coords == nil || coords.NVecs() == 0 {
		return ret, Error{"No vectors given", []string{"WeightedCentroid"}, true}
	}
	if len(weights) != coords.NVecs() {
		panic(ErrShape)
	}
	total := floats.Sum(weights)
	if math.Abs(total) <= appzero {
		return ret, Error{string(ErrNoMass), []string{"WeightedCentroid"}, true}
	}
	w := mat.NewDense(1, len(weights), weights)
	c := mat.NewDense(1, 3, nil)
	c.Mul(w, coords.Dense)
	c.Scale(1/total, c)
	copy(ret[:], c.RawRowView(0))
	return ret, nil
}

// Centroid returns the geometric center of the vectors in coords.
func Centroid(coords *Matrix) ([3]float64, error) {
	if coords == nil {
		return [3]float64{}, Error{"No vectors given", []string{"Centroid"}, true}
	}
	w := make([]float64, coords.NVecs())
	floats.AddConst(1, w)
	return WeightedCentroid(coords, w)
}

// Sub returns a-b
func Sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Norm returns the euclidean norm of a.
func Norm(a [3]float64) float64 {
	return floats.Norm(a[:], 2)
}

// Distance2 returns the squared distance between a and b.
func Distance2(a, b [3]float64) float64 {
	d := Sub(a, b)
	return d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
}

// Distance returns the distance between a and b.
func Distance(a, b [3]float64) float64 {
	return math.Sqrt(Distance2(a, b))
}

// Angle returns the angle a-b-c, in degrees.
func Angle(a, b, c [3]float64) float64 {
	u := Sub(a, b)
	v := Sub(c, b)
	nu, nv := Norm(u), Norm(v)
	if nu <= appzero || nv <= appzero {
		return 0
	}
	cos := floats.Dot(u[:], v[:]) / (nu * nv)
	//rounding can put us a tiny bit out of acos' domain
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// MinDistance2 returns the smallest squared distance between any vector in A
// and any vector in B.
func MinDistance2(A, B *Matrix) float64 {
	min := math.Inf(1)
	for i := 0; i < A.NVecs(); i++ {
		a := A.Point(i)
		for j := 0; j < B.NVecs(); j++ {
			if d := Distance2(a, B.Point(j)); d < min {
				min = d
			}
		}
	}
	return min
}
