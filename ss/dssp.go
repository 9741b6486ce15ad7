/*
 * dssp.go, part of martinize
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
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// OracleError is returned when the secondary structure program can't be started,
// or finishes with an error.
type OracleError struct {
	Command string
	Stderr  string
	err     error
	deco    []string
}

func (err *OracleError) Error() string {
	msg := fmt.Sprintf("running %s: %v", err.Command, err.err)
	if s := strings.TrimSpace(err.Stderr); s != "" {
		msg += ": " + s
	}
	return fmt.Sprintf("%s (%s)", msg, strings.Join(err.deco, ": "))
}

// Unwrap returns the error from the process.
func (err *OracleError) Unwrap() error { return err.err }

// Decorate adds dec to the error's decoration and returns it.
func (err *OracleError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical is always true, there is no structure to continue with.
func (err *OracleError) Critical() bool { return true }

// Record is an atom as fed to DSSP.
type Record struct {
	Name    string
	ResName string
	ResSeq  int
	ICode   byte
	Chain   byte
	Pos     [3]float64
}

// DSSPHandle runs the DSSP program on one chain at the time.
type DSSPHandle struct {
	command string
	args    []string
}

// NewDSSPHandle returns a handle that runs command. An empty command means mkdssp.
func NewDSSPHandle(command string) *DSSPHandle {
	if command == "" {
		command = "mkdssp"
	}
	return &DSSPHandle{command: command, args: []string{"-i", "/dev/stdin", "-o", "/dev/stdout"}}
}

// Command returns the path and name for the DSSP executable
func (O *DSSPHandle) Command() string {
	return O.command
}

// SetCommand sets the path and name for the DSSP executable
func (O *DSSPHandle) SetCommand(name string) {
	O.command = name
}

// SetArgs sets the arguments given to the program, which must read a PDB file from
// its standard input and write the DSSP output to its standard output.
func (O *DSSPHandle) SetArgs(args ...string) {
	O.args = append([]string(nil), args...)
}

// pdbInput writes the heavy atoms in PDB format. O1* atoms are renamed O and O2* dropped,
// as terminal oxygens confuse DSSP.
func pdbInput(atoms []Record) []byte {
	var b bytes.Buffer
	for _, a := range atoms {
		name := a.Name
		if strings.HasPrefix(name, "O1") {
			name = "O"
		}
		if name == "" || strings.HasPrefix(name, "H") || strings.HasPrefix(name, "O2") {
			continue
		}
		if len(name) > 3 {
			name = name[:3]
		}
		resname := a.ResName
		if len(resname) > 3 {
			resname = resname[:3]
		}
		icode := a.ICode
		if icode == 0 {
			icode = ' '
		}
		fmt.Fprintf(&b, "ATOM  %5d  %-3s %3s%2c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f           %1s  \n",
			1, name, resname, a.Chain, a.ResSeq, icode, a.Pos[0], a.Pos[1], a.Pos[2], 1.0, 40.0, name[:1])
	}
	b.WriteString("TER\n")
	return b.Bytes()
}

// Run runs DSSP on atoms and returns the structure, in the DSSP convention, one symbol per
// residue. The process is always waited for, and killed if ctx is done before it finishes.
func (O *DSSPHandle) Run(ctx context.Context, atoms []Record) (string, error) {
	cmd := exec.CommandContext(ctx, O.command, O.args...)
	cmd.Stdin = bytes.NewReader(pdbInput(atoms))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &OracleError{Command: O.command, Stderr: stderr.String(), err: err, deco: []string{"Run"}}
	}
	return parseDSSP(strings.Split(stdout.String(), "\n"), true), nil
}
