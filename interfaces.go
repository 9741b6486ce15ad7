/*
 * interfaces.go, part of martinize
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
	"strings"
)

//This error predates the "wrapping" error system of Go but works with it: every
//error type here also satisfies errors.As for its concrete type.

// Error is the interface for errors that all packages in this module implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the decoration slice resulting from the current call. An empty string just returns the current value.
	Critical() bool
}

// CError is the generic error of the package.
type CError struct {
	msg      string
	deco     []string
	critical bool
}

func (err CError) Error() string { return fmt.Sprintf("%s (%s)", err.msg, strings.Join(err.deco, ": ")) }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical returns true if the error is not recoverable.
func (err CError) Critical() bool { return err.critical }

// RecordError is returned when a line of a structure file can't be parsed.
// It is always critical.
type RecordError struct {
	File string
	Line int
	Text string
	msg  string
	deco []string
}

func (err *RecordError) Error() string {
	return fmt.Sprintf("malformed record in %s line %d: %s (%q) (%s)", err.File, err.Line, err.msg, strings.TrimRight(err.Text, "\n"), strings.Join(err.deco, ": "))
}

// Decorate adds dec to the error's decoration and returns it.
func (err *RecordError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical is always true for a RecordError
func (err *RecordError) Critical() bool { return true }

// MissingAtomsError is returned when no atom of the structure can be assigned to a
// bead that the topology expects, so no position can be computed for it.
type MissingAtomsError struct {
	Chain    string
	Residues []string //"RES resid: bead" for each failing bead
	deco     []string
}

func (err *MissingAtomsError) Error() string {
	return fmt.Sprintf("too many atoms missing in chain %q: %s (%s)", err.Chain, strings.Join(err.Residues, ", "), strings.Join(err.deco, ": "))
}

// Decorate adds dec to the error's decoration and returns it.
func (err *MissingAtomsError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical is always true. The number of beads determines every index in the topology.
func (err *MissingAtomsError) Critical() bool { return true }

// errDecorate adds info to err if it is one of ours, and returns it.
func errDecorate(err error, info string) error {
	if e, ok := err.(Error); ok {
		e.Decorate(info)
	}
	return err
}

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilChain   = PanicMsg("martini: nil chain given")
	ErrNoResidues = PanicMsg("martini: chain without residues")
)
