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

/*Package kpoints builds, reads and writes VASP KPOINTS files: automatic grids
from a k-point density, explicit meshes over the kx-ky plane, and the
zero-weight band structure lists used for hybrid functional band structures.

High-symmetry paths are not generated here. They are read from line-mode KPOINTS
files produced by other tools.*/
package kpoints
