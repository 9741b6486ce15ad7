/*
 * input.go, part of martinize
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
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// Error is the error type of the package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s (%s)", err.message, strings.Join(err.deco, ": "))
}

// Decorate adds dec to the error's decoration and returns it.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical returns true if the error is not recoverable.
func (err *Error) Critical() bool { return err.critical }

// IsLiteral returns true if s should be taken as a secondary structure string, rather
// than a file name: it is alphanumeric and upper case after replacing '~' and spaces with 'L',
// and there is no file with that name.
func IsLiteral(s string) bool {
	t := strings.NewReplacer("~", "L", " ", "L").Replace(s)
	if t == "" {
		return false
	}
	for _, c := range t {
		if !(unicode.IsDigit(c) || unicode.IsUpper(c)) {
			return false
		}
	}
	_, err := os.Stat(s)
	return err != nil
}

// Literal returns the structure given by the user as a string, in the DSSP convention.
// '~' and blanks are loops.
func Literal(s string) string {
	return strings.NewReplacer("~", "L", " ", "L").Replace(s)
}

var dsspLine = regexp.MustCompile(`^([ 0-9]{4}[0-9]){2}`)

// ReadFile reads a secondary structure file: a Gromacs ssdump file if
// the first line is an integer, DSSP output otherwise. It returns the string and its source.
func ReadFile(name string) (string, Source, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", Self, &Error{err.Error(), []string{"ReadFile"}, true}
	}
	defer f.Close()
	s, src, err := Read(f)
	if err != nil {
		err.(*Error).Decorate("ReadFile " + name)
	}
	return s, src, err
}

// Read reads a Gromacs ssdump or a DSSP output from r.
func Read(r io.Reader) (string, Source, error) {
	lines := make([]string, 0, 100)
	s := bufio.NewScanner(r)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return "", Self, &Error{err.Error(), []string{"Read"}, true}
	}
	if len(lines) == 0 {
		return "", Self, &Error{"empty secondary structure file", []string{"Read"}, true}
	}
	if isInt(strings.TrimSpace(lines[0])) {
		var b strings.Builder
		for _, l := range lines[1:] {
			b.WriteString(strings.TrimSpace(l))
		}
		return b.String(), Gromacs, nil
	}
	return parseDSSP(lines, false), DSSP, nil
}

// parseDSSP extracts the structure column from DSSP output. If header is true,
// only lines after the residue header are used, and chain breaks are skipped.
func parseDSSP(lines []string, header bool) string {
	var b strings.Builder
	main := !header
	for _, l := range lines {
		if header {
			if main && len(l) > 16 && l[13] != '!' {
				b.WriteByte(l[16])
			}
			if strings.HasPrefix(l, "  #  RESIDUE AA") {
				main = true
			}
			continue
		}
		if len(l) > 16 && dsspLine.MatchString(l) {
			b.WriteByte(l[16])
		}
	}
	return b.String()
}

func isInt(s string) bool {
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
