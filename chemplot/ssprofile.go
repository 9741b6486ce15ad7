/*
 * ssprofile.go, part of martinize
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
	"image/color"
	"strings"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ssGroups are the curves of the secondary structure profile, each
// with the CG symbols it counts.
var ssGroups = []struct {
	name    string
	symbols string
}{
	{"Helix", "H123"},
	{"Strand", "E"},
	{"Turn/Bend", "TS"},
	{"Coil", "C "},
	{"Collagen", "F"},
}

// Fractions returns, for each residue, the fraction of frames in which
// it has one of the given symbols. Frames shorter than the first one
// count as not having the symbol.
func Fractions(frames []string, symbols string) []float64 {
	if len(frames) == 0 {
		return nil
	}
	ret := make([]float64, len(frames[0]))
	for _, f := range frames {
		for i := 0; i < len(ret) && i < len(f); i++ {
			if strings.IndexByte(symbols, f[i]) >= 0 {
				ret[i]++
			}
		}
	}
	for i := range ret {
		ret[i] /= float64(len(frames))
	}
	return ret
}

// SSProfile plots, for each residue of a chain, the fraction of the frames in
// which it was classified as helix, strand, turn/bend, coil or collagen.
// frames contains the classification (CG alphabet) of the chain in each frame.
// Groups never present are not drawn.
func SSProfile(frames []string, title, plotname string) error {
	if len(frames) == 0 || len(frames[0]) == 0 {
		return &Error{"no secondary structure to plot", []string{"SSProfile"}, true}
	}
	p := basicPlot(title, "Residue", "Fraction of frames")
	p.Y.Min = 0
	p.Y.Max = 1.05
	p.Legend.Top = true
	for k, g := range ssGroups {
		fr := Fractions(frames, g.symbols)
		present := false
		pts := make(plotter.XYs, len(fr))
		for i, v := range fr {
			pts[i].X = float64(i + 1)
			pts[i].Y = v
			present = present || v > 0
		}
		if !present {
			continue
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return &Error{err.Error(), []string{"SSProfile"}, true}
		}
		r, gr, b := colors(k, len(ssGroups))
		l.LineStyle.Color = color.RGBA{R: r, G: gr, B: b, A: 255}
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(g.name, l)
	}
	if err := save(p, 8*vg.Inch, 4*vg.Inch, plotname); err != nil {
		return &Error{err.Error(), []string{"SSProfile"}, true}
	}
	return nil
}
