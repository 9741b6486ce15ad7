/*
 * doc.go, part of martinize
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

/*Package martini is the main package of martinize. It provides the atom, residue and chain
structures, reading of atomistic PDB and GRO files (possibly multi-model and compressed),
the segmentation of a structure in chains and backbone fragments, the mapping of atoms
into Martini coarse-grained beads, and writing of the resulting CG structure.



	**Capabilities**


    Reads PDB and GRO files, with any number of frames, plain or compressed
    with gzip or zstd.

    Splits structures in homogeneous chains (protein, DNA/RNA) and finds
    breaks in the backbone.

    Maps residues to CG beads, keeping track of the atoms that make each bead.

    Writes CG structures in PDB or GRO format.


The force fields, the secondary structure classification, the elastic network and the
topology itself are in the subpackages ff, ss, elastic and top. The pipeline package
puts everything together, and the cmd/martinize program exposes it on the command line.

*/
package martini
