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

//Package incar reads, writes, compares and merges VASP INCAR files.
//
//An Incar is an ordered record of parameters keyed by upper-case tag names.
//Every value stored goes through the same coercion rule used when parsing
//text, so a record built in code and one read from a file hold the same Go
//types for the same tags:
//
//	bool       LWAVE, LCHARG, LSORBIT...
//	int        NSW, ISIF, IBRION, ENCUT...
//	float64    EDIFF, SIGMA, POTIM...
//	[]Number   MAGMOM, LDAUU, DIPOL... (run-length forms like 4*1.0 are expanded)
//	[]Vector   MAGMOM when LSORBIT or LNONCOLLINEAR is set
//
//Tags outside those sets are tried as int, float64 and bool in that order and
//kept as a capitalized string otherwise.
package incar
