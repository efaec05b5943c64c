/*
 * doc.go, part of maptool.
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

/*Package maptool is the root package of the maptool library. It holds the interfaces shared by
the rest of the packages. The functionality lives in the subpackages:

	**maptool Capabilities**

    Reads, writes, compares and merges VASP INCAR files (package incar), with per-key
	type coercion that follows the VASP conventions (booleans, integers, floats,
	run-length encoded lists, non-collinear magnetic moments).

    Builds INCAR files for common calculation kinds (optimization, SCF, band structure,
	DOS, AIMD, NEB, phonons...) plus optional corrections (spin, SOC, HSE, vdW, LDA+U)
	from immutable template blocks (package inputset).

    Reads and writes POSCAR files (package poscar), and builds supercells, strained
	structures (package strain), and randomly modified structures (package changer).

    Generates KPOINTS files by automatic density, explicit meshes and HSE band
	structure merging (package kpoints).

    Reads POTCAR headers and assembles POTCAR files from a pseudopotential library
	(package potcar).

The command maptool (cmd/maptool) exposes all of the above from the console.

Symmetry analysis, surface generation, k-path generation and the materials database
clients are not part of maptool.*/
package maptool
