package sisl

// RydbergToEV converts energies stored in Rydberg, the unit SIESTA
// writes energy-density matrices in, to electron-volt. The value is
// the one the legacy interchange files were produced with; it must not
// be "improved" to a newer CODATA figure or round-trips against
// existing files drift.
const RydbergToEV = 13.60580
