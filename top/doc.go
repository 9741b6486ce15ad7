/*
Package top builds Martini coarse-grained topologies from chains, and reads and
writes them as Gromacs itp files.

A Builder turns each chain into a Topology with the parameters of a force field
family. Topologies of several chains can be appended into a single moleculetype,
and links or an elastic network can be added before writing.
*/
package top
