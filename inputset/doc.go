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

/*Package inputset builds INCAR files for common kinds of VASP calculations.

An INCAR is produced as a list of blocks (start parameters, electronic and
ionic relaxation, DOS, output flags...), each one an incar.Incar with a
comment. The calculation kind selects the blocks and the values that
differ from an optimization. Extras add blocks for spin polarization, SOC,
hybrid functionals, dispersion corrections and so on.

All blocks are built anew from an Options value on each call, so
generating one INCAR never affects the next.*/
package inputset
