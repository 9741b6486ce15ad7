/*
 * geometric.go, part of martinize
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

package martini

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	v3 "github.com/rmera/martinize/v3"
	"gonum.org/v1/gonum/mat"
)

func minDistance2(a, b [][3]float64) float64 {
	return v3.MinDistance2(v3.FromPoints(a), v3.FromPoints(b))
}

// Box is a periodic box given by its three vectors, in nm, as rows.
type Box struct {
	*mat.Dense
}

// NewBox returns a box from the 9 components xx xy xz yx yy yz zx zy zz, in nm.
func NewBox(v []float64) Box {
	if len(v) != 9 {
		return Box{}
	}
	return Box{mat.NewDense(3, 3, append([]float64(nil), v...))}
}

// Empty returns true if no box was given.
func (B Box) Empty() bool {
	return B.Dense == nil
}

func (B Box) vec(i int) [3]float64 {
	return [3]float64{B.At(i, 0), B.At(i, 1), B.At(i, 2)}
}

// boxFromCRYST1 builds a box from a PDB CRYST1 record, converting A to nm.
func boxFromCRYST1(line string) (Box, error) {
	f := strings.Fields(line)
	if len(f) < 7 {
		return Box{}, &CError{"short CRYST1 record", []string{"boxFromCRYST1"}, true}
	}
	var p [6]float64
	var err error
	for i := range p {
		p[i], err = strconv.ParseFloat(f[i+1], 64)
		if err != nil {
			return Box{}, &CError{fmt.Sprintf("bad CRYST1 value %q", f[i+1]), []string{"boxFromCRYST1"}, true}
		}
	}
	d2r := math.Pi / 180
	ca, cb, cg, sg := math.Cos(d2r*p[3]), math.Cos(d2r*p[4]), math.Cos(d2r*p[5]), math.Sin(d2r*p[5])
	wx, wy := 0.1*p[2]*cb, 0.1*p[2]*(ca-cb*cg)/sg
	wz := math.Sqrt(math.Max(0, 0.01*p[2]*p[2]-wx*wx-wy*wy))
	return NewBox([]float64{0.1 * p[0], 0, 0, 0.1 * p[1] * cg, 0.1 * p[1] * sg, 0, wx, wy, wz}), nil
}

// boxFromGro reads the last line of a GRO frame. Rectangular boxes give only
// the three diagonal elements.
func boxFromGro(line string) (Box, error) {
	f := strings.Fields(line)
	if len(f) != 3 && len(f) != 9 {
		return Box{}, &CError{fmt.Sprintf("box line must have 3 or 9 fields, has %d", len(f)), []string{"boxFromGro"}, true}
	}
	b := make([]float64, 9)
	for i, v := range f {
		var err error
		b[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return Box{}, &CError{fmt.Sprintf("bad box value %q", v), []string{"boxFromGro"}, true}
		}
	}
	//gro order is v1(x) v2(y) v3(z) v1(y) v1(z) v2(x) v2(z) v3(x) v3(y)
	return NewBox([]float64{b[0], b[3], b[4], b[5], b[1], b[6], b[7], b[8], b[2]}), nil
}

// CRYST1 returns the PDB CRYST1 record for the box, in A and degrees.
func (B Box) CRYST1() string {
	if B.Empty() {
		return ""
	}
	u, v, w := B.vec(0), B.vec(1), B.vec(2)
	nu, nv, nw := v3.Norm(u), v3.Norm(v), v3.Norm(w)
	var zero [3]float64
	angle := func(a, b [3]float64, na, nb float64) float64 {
		if na*nb == 0 {
			return 90
		}
		return v3.Angle(a, zero, b)
	}
	return fmt.Sprintf("CRYST1%9.3f%9.3f%9.3f%7.2f%7.2f%7.2f P 1           1\n",
		10*nu, 10*nv, 10*nw, angle(v, w, nv, nw), angle(u, w, nu, nw), angle(u, v, nu, nv))
}

// GroLine returns the box line of a GRO frame.
func (B Box) GroLine() string {
	if B.Empty() {
		return fmt.Sprintf("%10.5f%10.5f%10.5f\n", 0.0, 0.0, 0.0)
	}
	d := []float64{B.At(0, 0), B.At(1, 1), B.At(2, 2)}
	off := []float64{B.At(0, 1), B.At(0, 2), B.At(1, 0), B.At(1, 2), B.At(2, 0), B.At(2, 1)}
	s := fmt.Sprintf("%10.5f%10.5f%10.5f", d[0], d[1], d[2])
	for _, v := range off {
		if v != 0 {
			for _, o := range off {
				s += fmt.Sprintf("%10.5f", o)
			}
			break
		}
	}
	return s + "\n"
}
