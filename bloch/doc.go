// Package bloch computes Bloch-phase factors for periodic systems.
//
// A k-point in reduced reciprocal coordinates together with a set of
// lattice-translation vectors yields one complex multiplier per vector,
// used to fold a supercell-indexed sparse matrix into a Bloch
// Hamiltonian or density matrix. At the gamma point every phase is
// exactly 1 and the sequence may stay real; anywhere else the phases
// are unit-magnitude complex exponentials.
//
// The package is a pure function library: no state, no I/O, no
// allocation beyond the returned sequence.
package bloch
