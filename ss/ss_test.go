/*
 * ss_test.go, part of martinize
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

package ss

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTranslate(Te *testing.T) {
	for _, c := range []struct {
		raw  string
		src  Source
		want string
	}{
		{"HGIBETSC~", DSSP, "HHHEETSCC"},
		{"HSL.", PyMOL, "HECC"},
		{"HETSC~", Gromacs, "HETSCC"},
		{"FHEXYZ", Self, "FHECCC"},
		{"HHHH", Source("nope"), "CCCC"},
	} {
		if got := Translate(c.raw, c.src); got != c.want {
			Te.Errorf("Translate(%q, %s) = %q, want %q", c.raw, c.src, got, c.want)
		}
	}
}

func TestClassifyAlphabet(Te *testing.T) {
	raw := "CCHHHHHHHHHHCCEEEEETTSS~BGIHHHHCHCHHHC!?"
	class, types := Classify(raw, DSSP)
	if len(class) != len(raw) || len(types) != len(raw) {
		Te.Fatalf("lengths changed: %d %d %d", len(raw), len(class), len(types))
	}
	for i := 0; i < len(types); i++ {
		if !strings.ContainsRune(Alphabet, rune(types[i])) {
			Te.Errorf("symbol %q at %d not in the CG alphabet", types[i], i)
		}
	}
	if class[len(class)-1] != 'C' || class[len(class)-2] != 'C' {
		Te.Errorf("unknown symbols should be coil, got %q", class)
	}
}

func TestHelixTypes(Te *testing.T) {
	for _, c := range []struct{ raw, want string }{
		{"CHC", "C3C"},
		{"CHHC", "C33C"},
		{"HHHH", "3333"},
		{"CHHHHHC", "C13332C"},
		{"CHHHHHHC", "C113322C"},
		{"HHHHHHH", "1113222"},
		{"CHHHHHHHHHHC", "C1111HH2222C"},
		{"EEEE", "EEEE"},
	} {
		_, types := Classify(c.raw, Self)
		if types != c.want {
			Te.Errorf("Classify(%q) types = %q, want %q", c.raw, types, c.want)
		}
	}
}

func TestClassifyIdempotent(Te *testing.T) {
	class, types := Classify("HHHH", DSSP)
	class2, types2 := Classify(class, Self)
	if class2 != class || types2 != types {
		Te.Errorf("reclassifying %q gave %q/%q, was %q/%q", class, class2, types2, class, types)
	}
}

func TestConsensus(Te *testing.T) {
	frames := []string{
		"HHEC",
		"HHCC",
		"HETT",
	}
	//col 0 unanimous, col 1 2/3 H, col 2 three-way tie, col 3 2/3 C
	got := Consensus(frames, 0.5)
	if got != "HH C" {
		Te.Errorf("Consensus = %q", got)
	}
	if got := Consensus(frames, 0.7); got != "H   " {
		Te.Errorf("Consensus with high cutoff = %q", got)
	}
	//ties go to the larger symbol, but a half is not more than 0.5
	if got := Consensus([]string{"E", "H"}, 0.4); got != "H" {
		Te.Errorf("tie = %q", got)
	}
	if got := Consensus([]string{"E", "H"}, 0.5); got != " " {
		Te.Errorf("tie at cutoff = %q", got)
	}
	if Consensus(nil, 0.5) != "" {
		Te.Errorf("empty consensus")
	}
}

func TestNum(Te *testing.T) {
	want := map[byte]int{'F': 13, 'E': 4, 'H': 2, '1': 2, '2': 2, '3': 2, 'T': 6, 'S': 22, 'C': 0, ' ': 0}
	for c, n := range want {
		if Num(c) != n {
			Te.Errorf("Num(%q) = %d, want %d", c, Num(c), n)
		}
	}
}

func TestRead(Te *testing.T) {
	s, src, err := Read(strings.NewReader("5\n~HH\nHE\n"))
	if err != nil || src != Gromacs || s != "~HHHE" {
		Te.Errorf("ssdump: %q %s %v", s, src, err)
	}
	dssp := "header line\n" +
		"    1    1 A M              0   0  \n" +
		"    2    2 A K  H           0   0  \n" +
		"    3    3 A L  E           0   0  \n"
	s, src, err = Read(strings.NewReader(dssp))
	if err != nil || src != DSSP || s != " HE" {
		Te.Errorf("dssp: %q %s %v", s, src, err)
	}
	if _, _, err := Read(strings.NewReader("")); err == nil {
		Te.Errorf("empty file should fail")
	}
}

func TestParseDSSPOutput(Te *testing.T) {
	out := []string{
		"==== Secondary Structure Definition by the program DSSP",
		"  #  RESIDUE AA STRUCTURE BP1 BP2  ACC",
		"    1    1 A M              0   0  ",
		"    2    2 A K  H           0   0  ",
		"    3        !              0   0  ",
		"    4    4 A L  E           0   0  ",
	}
	if s := parseDSSP(out, true); s != " HE" {
		Te.Errorf("parseDSSP = %q", s)
	}
}

func TestLiteral(Te *testing.T) {
	if !IsLiteral("CCHHHH~ EE") {
		Te.Errorf("should be a literal")
	}
	if IsLiteral("ss.dat") {
		Te.Errorf("lower case is a file name")
	}
	if Literal("CC~ H") != "CCLLH" {
		Te.Errorf("Literal = %q", Literal("CC~ H"))
	}
}

func TestPDBInput(Te *testing.T) {
	in := pdbInput([]Record{
		{Name: "N", ResName: "ALA", ResSeq: 1, Chain: 'A'},
		{Name: "H", ResName: "ALA", ResSeq: 1, Chain: 'A'},
		{Name: "O1", ResName: "ALA", ResSeq: 1, Chain: 'A'},
		{Name: "O2", ResName: "ALA", ResSeq: 1, Chain: 'A'},
	})
	lines := strings.Split(strings.TrimSpace(string(in)), "\n")
	if len(lines) != 3 || lines[2] != "TER" {
		Te.Fatalf("unexpected input:\n%s", in)
	}
	if !strings.HasPrefix(lines[1], "ATOM      1  O   ALA A   1") {
		Te.Errorf("O1 not renamed: %q", lines[1])
	}
}

func TestOracleFailure(Te *testing.T) {
	h := NewDSSPHandle("/nonexistent/mkdssp")
	_, err := h.Run(context.Background(), nil)
	var oerr *OracleError
	if !errors.As(err, &oerr) {
		Te.Fatalf("expected an OracleError, got %v", err)
	}
	if !oerr.Critical() {
		Te.Errorf("oracle errors are critical")
	}
}
