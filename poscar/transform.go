/*
 * transform.go, part of maptool.
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

package poscar

import (
	"fmt"
	"math"
	"sort"

	"github.com/rmera/maptool/v3"
	"gonum.org/v1/gonum/mat"
)

//Supercell returns a new structure with the cell repeated na, nb and nc times along
//the a, b and c lattice vectors. The sites of each species stay together.
func (S *Structure) Supercell(na, nb, nc int) (*Structure, error) {
	if na < 1 || nb < 1 || nc < 1 {
		return nil, Error{fmt.Sprintf("invalid supercell %dx%dx%d", na, nb, nc), "", []string{"Supercell"}, true}
	}
	n := na * nb * nc
	ret := &Structure{Comment: S.Comment}
	ret.lattice = mat.DenseCopyOf(S.lattice)
	mult := mat.NewDiagDense(3, []float64{float64(na), float64(nb), float64(nc)})
	ret.lattice.Mul(mult, S.lattice)
	ret.species = append([]string(nil), S.species...)
	ret.counts = make([]int, len(S.counts))
	for i, c := range S.counts {
		ret.counts[i] = c * n
	}
	ret.frac = v3.Zeros(S.NSites() * n)
	if S.selective != nil {
		ret.selective = make([][3]bool, 0, S.NSites()*n)
	}
	row := 0
	for i := 0; i < S.NSites(); i++ {
		f := S.frac.Vec(i)
		for a := 0; a < na; a++ {
			for b := 0; b < nb; b++ {
				for c := 0; c < nc; c++ {
					ret.frac.SetVec(row, [3]float64{
						(f[0] + float64(a)) / float64(na),
						(f[1] + float64(b)) / float64(nb),
						(f[2] + float64(c)) / float64(nc),
					})
					if S.selective != nil {
						ret.selective = append(ret.selective, S.selective[i])
					}
					row++
				}
			}
		}
	}
	return ret, nil
}

//ApplyStrain stretches each lattice vector i by a factor 1+strain[i], keeping the
//fractional coordinates. The structure is modified in place.
func (S *Structure) ApplyStrain(strain [3]float64) {
	for i := 0; i < 3; i++ {
		row := S.lattice.RawRowView(i)
		for j := range row {
			row[j] *= 1 + strain[i]
		}
	}
}

//ScaleVolume scales the lattice isotropically so the cell has the given volume.
//The structure is modified in place.
func (S *Structure) ScaleVolume(volume float64) error {
	if volume <= 0 {
		return Error{fmt.Sprintf("invalid volume %g", volume), "", []string{"ScaleVolume"}, true}
	}
	S.lattice.Scale(math.Cbrt(volume/S.Volume()), S.lattice)
	return nil
}

//Keep returns a new structure with only the sites whose indexes are given. Species left
//without sites are removed. The order of the sites is kept.
func (S *Structure) Keep(indexes []int) (*Structure, error) {
	idx := append([]int(nil), indexes...)
	sort.Ints(idx)
	for i, v := range idx {
		if v < 0 || v >= S.NSites() {
			return nil, Error{fmt.Sprintf("site index %d out of range", v), "", []string{"Keep"}, true}
		}
		if i > 0 && idx[i-1] == v {
			return nil, Error{fmt.Sprintf("site index %d repeated", v), "", []string{"Keep"}, true}
		}
	}
	if len(idx) == 0 {
		return nil, Error{"no sites to keep", "", []string{"Keep"}, true}
	}
	labels := S.labels()
	newlabels := make([]string, len(idx))
	frac := v3.Zeros(len(idx))
	frac.SomeVecs(S.frac, idx)
	var sel [][3]bool
	if S.selective != nil {
		sel = make([][3]bool, len(idx))
	}
	for i, v := range idx {
		newlabels[i] = labels[v]
		if sel != nil {
			sel[i] = S.selective[v]
		}
	}
	ret := &Structure{Comment: S.Comment, lattice: mat.DenseCopyOf(S.lattice)}
	ret.group(newlabels, frac, sel)
	return ret, nil
}

//Replace returns a new structure where the species of the sites given as keys of
//subs is changed to the corresponding values. The sites are then grouped by species,
//in order of first appearance.
func (S *Structure) Replace(subs map[int]string) (*Structure, error) {
	labels := S.labels()
	for i, s := range subs {
		if i < 0 || i >= len(labels) {
			return nil, Error{fmt.Sprintf("site index %d out of range", i), "", []string{"Replace"}, true}
		}
		if s == "" {
			return nil, Error{fmt.Sprintf("empty species for site %d", i), "", []string{"Replace"}, true}
		}
		labels[i] = s
	}
	frac := v3.Zeros(S.NSites())
	frac.Copy(S.frac)
	var sel [][3]bool
	if S.selective != nil {
		sel = append([][3]bool(nil), S.selective...)
	}
	ret := &Structure{Comment: S.Comment, lattice: mat.DenseCopyOf(S.lattice)}
	ret.group(labels, frac, sel)
	return ret, nil
}

//group sets the species, counts, coordinates and flags of S from per-site labels,
//putting together the sites of each species. The order within each species is kept.
func (S *Structure) group(labels []string, frac *v3.Matrix, sel [][3]bool) {
	S.species = S.species[:0]
	S.counts = S.counts[:0]
	pos := make(map[string]int)
	for _, l := range labels {
		if _, ok := pos[l]; !ok {
			pos[l] = len(S.species)
			S.species = append(S.species, l)
			S.counts = append(S.counts, 0)
		}
		S.counts[pos[l]]++
	}
	order := make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return pos[labels[order[i]]] < pos[labels[order[j]]]
	})
	S.frac = v3.Zeros(len(labels))
	S.frac.SomeVecs(frac, order)
	S.selective = nil
	if sel != nil {
		S.selective = make([][3]bool, len(order))
		for i, o := range order {
			S.selective[i] = sel[o]
		}
	}
}
