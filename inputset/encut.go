/*
 * encut.go, part of maptool.
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

package inputset

import (
	"github.com/rmera/maptool"
	"github.com/rmera/maptool/potcar"
)

const (
	//DefaultENMAX is the ENMAX, in eV, assumed when no POTCAR is available.
	DefaultENMAX = 500.0
	//DefaultEncutFactor multiplies the largest ENMAX to give ENCUT.
	DefaultEncutFactor = 1.5
)

//DefaultMagmom is the initial magnetic moment for elements without a known one.
const DefaultMagmom = 0.6

//Moments are the initial magnetic moments, in Bohr magnetons, used for
//elements that usually carry one.
var Moments = map[string]float64{
	"Ce": 5, "Co": 5, "Cr": 5, "Eu": 10, "Fe": 5, "Mn": 5,
	"Mo": 5, "Ni": 5, "V": 5, "W": 5,
}

//Encut returns the plane-wave cutoff: factor times the largest ENMAX of the pseudopotentials.
//The elements of the pseudopotentials must be the species, in the same order, or an *OrderError
//is returned. If pseudos is nil, DefaultENMAX is used.
func Encut(species []string, pseudos []*potcar.Pseudo, factor float64) (float64, error) {
	if factor <= 0 {
		return 0, Error{"the ENCUT factor must be positive", []string{"Encut"}, true}
	}
	if pseudos == nil {
		return DefaultENMAX * factor, nil
	}
	elems := potcar.Elements(pseudos)
	if len(elems) != len(species) {
		return 0, &OrderError{Structure: species, Potcar: elems}
	}
	for i, s := range species {
		if s != elems[i] {
			return 0, &OrderError{Structure: species, Potcar: elems}
		}
	}
	return potcar.MaxENMAX(pseudos) * factor, nil
}

//Magmoms returns one initial magnetic moment per site. The moment of each species is
//taken from moments, then from Moments, and def is used for the rest.
func Magmoms(s maptool.Specieser, moments map[string]float64, def float64) []float64 {
	var ret []float64
	counts := s.Counts()
	for i, sp := range s.Species() {
		m, ok := moments[sp]
		if !ok {
			m, ok = Moments[sp]
		}
		if !ok {
			m = def
		}
		for j := 0; j < counts[i]; j++ {
			ret = append(ret, m)
		}
	}
	return ret
}

//Hubbard returns the LDAUL, LDAUU and LDAUJ values for the species of s, given the
//U values (in eV) in u. Species with a positive U get the correction on their
//d orbitals (LDAUL=2) and the rest none (LDAUL=0). LDAUJ is always 0.
func Hubbard(s maptool.Specieser, u map[string]float64) (l []int, uu, j []float64) {
	for _, sp := range s.Species() {
		val := u[sp]
		if val > 0 {
			l = append(l, 2)
		} else {
			l = append(l, 0)
			val = 0
		}
		uu = append(uu, val)
		j = append(j, 0)
	}
	return l, uu, j
}
