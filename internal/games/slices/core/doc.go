// Package core provides the core game logic for the slices puzzle.
// Pieces holding ordered runs of colored slices are dropped on a grid, and
// every drop triggers a cascading transfer of same-colored slices between the
// dropped piece and its orthogonal neighbors.
//
// This package is UI-agnostic and deterministic: given the same seed and the
// same sequence of drops it produces the same transfers, byte for byte.
package core
