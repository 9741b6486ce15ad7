/*
 * elasticmap.go, part of martinize
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
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// grid exposes a square matrix as a plotter.GridXYZ, with cells
// numbered from 1.
type grid [][]float64

func (g grid) Dims() (c, r int)   { return len(g), len(g) }
func (g grid) Z(c, r int) float64 { return g[r][c] }
func (g grid) X(c int) float64    { return float64(c + 1) }
func (g grid) Y(r int) float64    { return float64(r + 1) }

// ElasticMap draws the elastic network of a molecule as a contact map, where each
// cell is colored by the scale factor of the bond between the two beads. m is the
// square matrix given by elastic.Matrix.
func ElasticMap(m [][]float64, title, plotname string) error {
	if len(m) == 0 {
		return &Error{"empty elastic network matrix", []string{"ElasticMap"}, true}
	}
	for _, row := range m {
		if len(row) != len(m) {
			return &Error{"elastic network matrix is not square", []string{"ElasticMap"}, true}
		}
	}
	p := basicPlot(title, "Bead", "Bead")
	h := plotter.NewHeatMap(grid(m), palette.Heat(16, 1))
	h.Min, h.Max = 0, 1
	p.Add(h)
	if err := save(p, 6*vg.Inch, 6*vg.Inch, plotname); err != nil {
		return &Error{err.Error(), []string{"ElasticMap"}, true}
	}
	return nil
}
