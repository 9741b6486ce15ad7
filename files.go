/*
 * files.go, part of martinize
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
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Format is a structure file format.
type Format int

const (
	PDB Format = iota
	GRO
)

func (F Format) String() string {
	if F == GRO {
		return "GRO"
	}
	return "PDB"
}

// FormatFromName returns GRO for file names ending in .gro (before any compression
// extension) and PDB for anything else.
func FormatFromName(name string) Format {
	n := strings.ToLower(trimCompression(name))
	if strings.HasSuffix(n, ".gro") {
		return GRO
	}
	return PDB
}

func trimCompression(name string) string {
	for _, ext := range []string{".gz", ".zst"} {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// Frame is one model of a structure file.
type Frame struct {
	Title string
	Atoms []Atom
	Box   Box
	//Atom indexes preceded by a TER record.
	ters []int
}

//Also, why couldn't *zstd.Decoder implement io.ReadCloser?
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// decompressor returns a reader that decompresses r according to the extension of name.
func decompressor(r io.Reader, name string) (io.ReadCloser, error) {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, ".gz"):
		return gzip.NewReader(r)
	case strings.HasSuffix(n, ".zst"):
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdReadCloser{d}, nil
	}
	return io.NopCloser(r), nil
}

// compressor returns a writer that compresses into w according to the extension of name.
func compressor(w io.Writer, name string) (io.WriteCloser, error) {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, ".gz"):
		return gzip.NewWriter(w), nil
	case strings.HasSuffix(n, ".zst"):
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	return nopWriteCloser{w}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// ReadStructureFile reads all frames in the PDB or GRO file name, which can be
// compressed with gzip (.gz) or zstd (.zst).
func ReadStructureFile(name string) (Format, []*Frame, error) {
	f, err := os.Open(name)
	if err != nil {
		return PDB, nil, &CError{err.Error(), []string{"ReadStructureFile"}, true}
	}
	defer f.Close()
	r, err := decompressor(f, name)
	if err != nil {
		return PDB, nil, &CError{fmt.Sprintf("can't decompress %s: %s", name, err), []string{"ReadStructureFile"}, true}
	}
	defer r.Close()
	format, frames, err := ReadStructure(r, name)
	return format, frames, errDecorate(err, "ReadStructureFile")
}

// recordError wraps the error of a line parser in a RecordError for line ln
// of file name, decorated with fn.
func recordError(err error, name string, ln int, text, fn string) *RecordError {
	R := &RecordError{File: name, Line: ln, Text: text}
	if e, ok := err.(*CError); ok {
		R.msg, R.deco = e.msg, append(e.deco, fn)
	} else {
		R.msg, R.deco = err.Error(), []string{fn}
	}
	return R
}

// ReadStructure reads all frames from r. The format is guessed from the content:
// if the second line holds only an integer, it is a GRO file, otherwise, PDB.
// name is only used in error messages.
func ReadStructure(r io.Reader, name string) (Format, []*Frame, error) {
	in := bufio.NewReader(r)
	lines := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		l, err := in.ReadString('\n')
		if l != "" {
			lines = append(lines, l)
		}
		if err != nil {
			break
		}
	}
	format := PDB
	if len(lines) == 2 && isDigits(strings.TrimSpace(lines[1])) {
		format = GRO
	}
	s := bufio.NewScanner(io.MultiReader(strings.NewReader(strings.Join(lines, "")), in))
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var frames []*Frame
	var err error
	if format == GRO {
		frames, err = readGro(s, name)
	} else {
		frames, err = readPDB(s, name)
	}
	if err != nil {
		return format, nil, errDecorate(err, "ReadStructure")
	}
	if len(frames) == 0 {
		return format, nil, &CError{fmt.Sprintf("no atoms found in %s", name), []string{"ReadStructure"}, true}
	}
	return format, frames, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func readPDB(s *bufio.Scanner, name string) ([]*Frame, error) {
	frames := make([]*Frame, 0, 1)
	cur := &Frame{}
	var title strings.Builder
	ln := 0
	for s.Scan() {
		ln++
		line := s.Text()
		switch {
		case strings.HasPrefix(line, "ENDMDL"):
			cur.Title = title.String()
			frames = append(frames, cur)
			cur = &Frame{}
			title.Reset()
		case strings.HasPrefix(line, "TITLE"):
			title.WriteString(line + "\n")
		case strings.HasPrefix(line, "CRYST1"):
			b, err := boxFromCRYST1(line)
			if err != nil {
				return nil, recordError(err, name, ln, line, "readPDB")
			}
			cur.Box = b
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			a, err := pdbAtom(line)
			if err != nil {
				return nil, recordError(err, name, ln, line, "readPDB")
			}
			cur.Atoms = append(cur.Atoms, a)
		case strings.HasPrefix(line, "TER"):
			cur.ters = append(cur.ters, len(cur.Atoms))
		}
	}
	if err := s.Err(); err != nil {
		return nil, &CError{err.Error(), []string{"readPDB"}, true}
	}
	if len(cur.Atoms) > 0 {
		cur.Title = title.String()
		frames = append(frames, cur)
	}
	return frames, nil
}

// pdbAtom parses an ATOM or HETATM record.
func pdbAtom(line string) (Atom, error) {
	var a Atom
	if len(line) < 54 {
		return a, &CError{"record too short", []string{"pdbAtom"}, true}
	}
	a.Name = strings.TrimSpace(line[12:16])
	a.ResName = strings.TrimSpace(line[17:21])
	a.Chain = line[21]
	seq, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return a, &CError{"bad residue number", []string{"pdbAtom"}, true}
	}
	a.ResID = ResID{Seq: seq, ICode: line[26]}
	for i := 0; i < 3; i++ {
		a.Pos[i], err = strconv.ParseFloat(strings.TrimSpace(line[30+8*i:38+8*i]), 64)
		if err != nil {
			return a, &CError{"bad coordinate", []string{"pdbAtom"}, true}
		}
	}
	return a, nil
}

func readGro(s *bufio.Scanner, name string) ([]*Frame, error) {
	frames := make([]*Frame, 0, 1)
	ln := 0
	next := func() (string, bool) {
		if !s.Scan() {
			return "", false
		}
		ln++
		return s.Text(), true
	}
	for {
		title, ok := next()
		if !ok {
			break
		}
		nline, ok := next()
		if !ok || strings.TrimSpace(nline) == "" {
			break
		}
		natoms, err := strconv.Atoi(strings.TrimSpace(nline))
		if err != nil {
			return nil, &RecordError{File: name, Line: ln, Text: nline, msg: "bad atom count", deco: []string{"readGro"}}
		}
		F := &Frame{Title: title, Atoms: make([]Atom, 0, natoms)}
		for i := 0; i < natoms; i++ {
			line, ok := next()
			if !ok {
				return nil, &RecordError{File: name, Line: ln, Text: "", msg: "unexpected end of file", deco: []string{"readGro"}}
			}
			a, err := groAtom(line)
			if err != nil {
				return nil, recordError(err, name, ln, line, "readGro")
			}
			F.Atoms = append(F.Atoms, a)
		}
		bline, ok := next()
		if !ok {
			return nil, &RecordError{File: name, Line: ln, Text: "", msg: "missing box line", deco: []string{"readGro"}}
		}
		F.Box, err = boxFromGro(bline)
		if err != nil {
			return nil, recordError(err, name, ln, bline, "readGro")
		}
		frames = append(frames, F)
	}
	if err := s.Err(); err != nil {
		return nil, &CError{err.Error(), []string{"readGro"}, true}
	}
	return frames, nil
}

// groAtom parses an atom line of a GRO file. Coordinates are converted to A.
func groAtom(line string) (Atom, error) {
	var a Atom
	if len(line) < 44 {
		return a, &CError{"record too short", []string{"groAtom"}, true}
	}
	seq, err := strconv.Atoi(strings.TrimSpace(line[:5]))
	if err != nil {
		return a, &CError{"bad residue number", []string{"groAtom"}, true}
	}
	a.ResID = NewResID(seq)
	a.ResName = strings.TrimSpace(line[5:10])
	a.Name = strings.TrimSpace(line[10:15])
	a.Chain = ' '
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(line[20+8*i:28+8*i]), 64)
		if err != nil {
			return a, &CError{"bad coordinate", []string{"groAtom"}, true}
		}
		a.Pos[i] = 10 * v
	}
	return a, nil
}

// Chains segments the frame in chains. For PDB input, a new chain starts at
// each change of chain identifier and after each TER record. GRO files have no chains,
// so backbone breaks separate them, and they are named A, B, C...
func (F *Frame) Chains(format Format) []*Chain {
	if len(F.Atoms) == 0 {
		return nil
	}
	if format == GRO {
		res := Residues(F.Atoms)
		brk := Breaks(res)
		starts := append([]int{0}, brk...)
		ends := append(brk, len(res))
		ret := make([]*Chain, 0, len(starts))
		for k := range starts {
			ret = append(ret, NewChain(string(rune('A'+k%26)), res[starts[k]:ends[k]]))
		}
		return ret
	}
	ret := make([]*Chain, 0, 1)
	isTer := make(map[int]bool, len(F.ters))
	for _, t := range F.ters {
		isTer[t] = true
	}
	start := 0
	flush := func(end int) {
		if end > start {
			ret = append(ret, NewChain(string(F.Atoms[start].Chain), Residues(F.Atoms[start:end])))
		}
		start = end
	}
	for i := 1; i < len(F.Atoms); i++ {
		if isTer[i] || F.Atoms[i].Chain != F.Atoms[i-1].Chain {
			flush(i)
		}
	}
	flush(len(F.Atoms))
	return ret
}

const (
	pdbAtomLine = "ATOM  %5d %4s%4s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f\n"
	groAtomLine = "%5d%-5s%5s%5d%8.3f%8.3f%8.3f\n"
)

// CGWriter writes CG structures, one frame at the time.
type CGWriter struct {
	name   string
	format Format
	f      *os.File
	z      io.WriteCloser
	w      *bufio.Writer
	model  int
}

// NewCGWriter creates the file name. Files ending in .gro (optionally followed by
// .gz or .zst) are written in GRO format, anything else, as PDB. The output is compressed
// for names ending in .gz or .zst
func NewCGWriter(name string) (*CGWriter, error) {
	W := &CGWriter{name: name, format: FormatFromName(name)}
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, &CError{err.Error(), []string{"NewCGWriter"}, true}
	}
	W.z, err = compressor(W.f, name)
	if err != nil {
		W.f.Close()
		return nil, &CError{err.Error(), []string{"NewCGWriter"}, true}
	}
	W.w = bufio.NewWriter(W.z)
	return W, nil
}

// WriteFrame writes the beads of chains, in the given order.
func (W *CGWriter) WriteFrame(title string, box Box, chains []*Chain, opts MapOptions) error {
	W.model++
	return errDecorate(WriteCGFrame(W.w, W.format, W.model, title, box, chains, opts), "WriteFrame")
}

// Close flushes and closes the file.
func (W *CGWriter) Close() error {
	if err := W.w.Flush(); err != nil {
		return err
	}
	if err := W.z.Close(); err != nil {
		return err
	}
	return W.f.Close()
}

// WriteCGFrame writes to w the CG beads of chains, in the given order, as the
// frame number model. Multiscale chains have their atoms written before their beads,
// which get a 'v' prepended to the name. The first bead of nucleic chains (the
// 5' phosphate) is not written.
func WriteCGFrame(w io.Writer, format Format, model int, title string, box Box, chains []*Chain, opts MapOptions) error {
	var b strings.Builder
	natoms := 0
	atid := 1
	line := func(name, resname string, resid ResID, chain string, pos [3]float64, ssid int) {
		if len(resname) > 3 {
			resname = resname[:3]
		}
		if format == GRO {
			fmt.Fprintf(&b, groAtomLine, resid.Seq%100000, resname, name, atid%100000, pos[0]/10, pos[1]/10, pos[2]/10)
		} else {
			ch := " "
			if chain != "" {
				ch = chain[:1]
			}
			fmt.Fprintf(&b, pdbAtomLine, atid%100000, name, resname, ch, resid.Seq, resid.Code(), pos[0], pos[1], pos[2], 1.0, float64(ssid))
		}
		atid++
		natoms++
	}
	for _, c := range chains {
		if c.Multiscale {
			for _, a := range c.Atoms() {
				line(a.Name, a.ResName, a.ResID, c.ID, a.Pos, 0)
			}
		}
		beads, err := c.CG(opts)
		if err != nil {
			return errDecorate(err, "WriteCGFrame")
		}
		if len(beads) == 0 {
			continue
		}
		if c.Type() == Nucleic {
			beads = beads[1:]
		}
		for _, bd := range beads {
			name := bd.Name
			if c.Multiscale {
				name = "v" + name
			}
			line(name, bd.ResName, bd.ResID, c.ID, bd.Pos, bd.SSNum)
		}
		if format == PDB {
			b.WriteString("TER\n")
		}
	}
	var err error
	if format == GRO {
		if title == "" {
			title = "Martini system"
		}
		_, err = fmt.Fprintf(w, "%s\n%5d\n%s%s", strings.TrimRight(title, "\n"), natoms, b.String(), box.GroLine())
	} else {
		_, err = fmt.Fprintf(w, "MODEL %8d\n%s%s%sENDMDL\n", model, title, box.CRYST1(), b.String())
	}
	if err != nil {
		return &CError{err.Error(), []string{"WriteCGFrame"}, true}
	}
	return nil
}
