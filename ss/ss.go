/*
 * ss.go, part of martinize
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

// Package ss classifies protein secondary structure into the types used by the
// Martini force fields, and obtains it from DSSP, from files or from the user.
package ss

import (
	"sort"
	"strings"
)

// Source is the program (or convention) that produced a secondary structure string.
type Source string

const (
	DSSP    Source = "dssp"
	PyMOL   Source = "pymol"
	Gromacs Source = "gmx"
	Self    Source = "self"
)

// Alphabet holds the CG secondary structure symbols: collagen (F), extended (E), helix (H),
// helix start (1), end (2) and ambivalent short helix (3), turn (T), bend (S) and coil (C).
const Alphabet = "FEH123TSC"

// Undetermined marks residues for which no consensus structure was reached.
const Undetermined = ' '

//The codes of each source, position by position, correspond to cgss
var ssdefs = map[Source]string{
	DSSP:    ".HGIBETSC~",
	PyMOL:   ".H...S...L",
	Gromacs: ".H...ETS.C",
	Self:    "FHHHEETSCC",
}

const cgss = "FHHHEETSCC"

//Translation tables, everything not listed goes to coil
var sstt = func() map[Source][256]byte {
	ret := make(map[Source][256]byte, len(ssdefs))
	for src, def := range ssdefs {
		var t [256]byte
		for i := range t {
			t[i] = 'C'
		}
		for i := 0; i < len(def); i++ {
			t[def[i]] = cgss[i]
		}
		ret[src] = t
	}
	return ret
}()

// Substitutions applied to isolated helix runs, in this order. NUL marks anything that is not helix.
var (
	helixPatterns = strings.Fields(strings.ReplaceAll(".H. .HH. .HHH. .HHHH. .HHHHH. .HHHHHH. .HHHHHHH. .HHHH HHHH.", ".", "\x00"))
	helixTypes    = strings.Fields(strings.ReplaceAll(".3. .33. .333. .3333. .13332. .113322. .1113222. .1111 2222.", ".", "\x00"))
)

// Translate maps raw to the CG alphabet, using the conventions of src.
// Unknown symbols (and unknown sources) give coil.
func Translate(raw string, src Source) string {
	t, ok := sstt[src]
	b := []byte(raw)
	for i, c := range b {
		if !ok {
			b[i] = 'C'
			continue
		}
		b[i] = t[c]
	}
	return string(b)
}

func typesub(seq string, patterns, types []string) string {
	seq = "\x00" + seq + "\x00"
	for i, p := range patterns {
		seq = strings.ReplaceAll(seq, p, types[i])
	}
	return seq[1 : len(seq)-1]
}

// Classify translates raw into the CG alphabet (class) and assigns the
// helix start, end and short-helix types (types).
func Classify(raw string, src Source) (class, types string) {
	class = Translate(raw, src)
	sum := make([]byte, len(class))
	seen := make(map[byte]bool)
	for i := 0; i < len(cgss); i++ {
		sym := cgss[i]
		if seen[sym] {
			continue
		}
		seen[sym] = true
		sep := []byte(class)
		for j, c := range sep {
			if c != sym {
				sep[j] = 0
			}
		}
		s := string(sep)
		if sym == 'H' {
			s = typesub(s, helixPatterns, helixTypes)
		}
		for j := 0; j < len(s); j++ {
			sum[j] += s[j]
		}
	}
	return class, string(sum)
}

// Consensus reduces the classifications of several frames (all of the same length) to one.
// For each residue, it takes the symbol all frames agree on, or the most frequent one if
// its fraction of the frames is larger than cutoff, or Undetermined otherwise. Ties go to the
// larger symbol.
func Consensus(frames []string, cutoff float64) string {
	if len(frames) == 0 {
		return ""
	}
	n := len(frames[0])
	for _, f := range frames[1:] {
		if len(f) < n {
			n = len(f)
		}
	}
	ret := make([]byte, n)
	for i := 0; i < n; i++ {
		count := make(map[byte]int)
		for _, f := range frames {
			count[f[i]]++
		}
		if len(count) == 1 {
			ret[i] = frames[0][i]
			continue
		}
		type frac struct {
			f   float64
			sym byte
		}
		fr := make([]frac, 0, len(count))
		for sym, c := range count {
			fr = append(fr, frac{float64(c) / float64(len(frames)), sym})
		}
		sort.Slice(fr, func(a, b int) bool {
			if fr[a].f != fr[b].f {
				return fr[a].f < fr[b].f
			}
			return fr[a].sym < fr[b].sym
		})
		if best := fr[len(fr)-1]; best.f > cutoff {
			ret[i] = best.sym
		} else {
			ret[i] = Undetermined
		}
	}
	return string(ret)
}

var ss2num = map[byte]int{'F': 13, 'E': 4, 'H': 2, '1': 2, '2': 2, '3': 2, 'T': 6, 'S': 22, 'C': 0}

// Num returns the number used to color a CG type in the B-factor column of PDB files.
// Unknown symbols give 0.
func Num(c byte) int {
	return ss2num[c]
}

// Name returns a description of a CG secondary structure symbol.
func Name(c byte) string {
	switch c {
	case 'F':
		return "Collagenous Fiber"
	case 'E':
		return "Extended structure (beta sheet)"
	case 'H':
		return "Helix structure"
	case '1':
		return "Helix start (H-bond donor)"
	case '2':
		return "Helix end (H-bond acceptor)"
	case '3':
		return "Ambivalent helix type (short helices)"
	case 'T':
		return "Turn"
	case 'S':
		return "Bend"
	case 'C':
		return "Coil"
	}
	return "Undetermined"
}
