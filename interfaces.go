/*
 * interfaces.go, part of maptool.
 *
 * Copyright 2024 The maptool authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package maptool

import "gonum.org/v1/gonum/mat"

// Cell is the minimal view of a periodic structure needed to build k-point grids.
type Cell interface {

	//Lattice returns the 3x3 lattice matrix, one lattice vector per row, in Angstrom.
	Lattice() *mat.Dense

	//NSites returns the number of sites in the cell
	NSites() int
}

// Specieser gives the species of a structure in the order in which they appear
// in the POSCAR, and how many sites each one has.
type Specieser interface {
	Species() []string
	Counts() []int
}

//Errors

//This error predates the "wrapping" error system of Go (i.e. the "%w" directive and the errors package). Typed
//errors that carry data (the offending key, the line) are exported by each package and meant to be
//matched with errors.As.

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Adds information when you pass the error up. Each call also returns the "decoration" slice resulting from the current call. If passed an empty string, it just returns the current value.
	//The decorate slice should contain a list of functions in the calling stack, plus, for each function any relevant information, or nothing. If information is to be added to an element of the slice, it should be in this format: "FunctionName: Extra info"
}

// FileError is the interface for errors related to a file.
type FileError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}
