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

/*Package poscar reads and writes VASP POSCAR/CONTCAR files, and implements
the lattice operations the rest of maptool needs on them: volume, lattice
parameters, reciprocal lattice, supercells, strain, volume scaling and
site removal/substitution.

Only the VASP 5 layout (with a species line) is written. VASP 4 files,
without species line, are read if the comment line carries the species names.*/
package poscar
