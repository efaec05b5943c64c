/*
 * poscar.go, part of maptool.
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
	"strings"

	"github.com/rmera/maptool/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Structure is a periodic structure as described by a POSCAR file.
//Sites are grouped by species, in the order given by Species.
type Structure struct {
	Comment   string
	lattice   *mat.Dense //one lattice vector per row, in Angstrom
	species   []string
	counts    []int
	frac      *v3.Matrix //fractional coordinates, one site per row
	selective [][3]bool  //nil if no selective dynamics
}

//New returns a Structure with the given lattice (one vector per row, in Angstrom), species,
//number of sites per species and fractional coordinates. The data is not copied.
func New(comment string, lattice *mat.Dense, species []string, counts []int, frac *v3.Matrix) (*Structure, error) {
	if r, c := lattice.Dims(); r != 3 || c != 3 {
		return nil, Error{fmt.Sprintf("lattice must be 3x3, got %dx%d", r, c), "", []string{"New"}, true}
	}
	if len(species) != len(counts) {
		return nil, Error{fmt.Sprintf("%d species but %d counts", len(species), len(counts)), "", []string{"New"}, true}
	}
	n := 0
	for _, c := range counts {
		if c < 0 {
			return nil, Error{"negative site count", "", []string{"New"}, true}
		}
		n += c
	}
	if frac.NVecs() != n {
		return nil, Error{fmt.Sprintf("counts add up to %d sites, but there are %d coordinates", n, frac.NVecs()), "", []string{"New"}, true}
	}
	if math.Abs(mat.Det(lattice)) < 1e-8 {
		return nil, Error{"lattice vectors are linearly dependent", "", []string{"New"}, true}
	}
	return &Structure{Comment: comment, lattice: lattice, species: species, counts: counts, frac: frac}, nil
}

//Lattice returns the lattice matrix, one lattice vector per row. Changes to
//the returned matrix are reflected in the structure.
func (S *Structure) Lattice() *mat.Dense { return S.lattice }

//Species returns the species names, in the order of the POSCAR.
func (S *Structure) Species() []string { return S.species }

//Counts returns the number of sites of each species
func (S *Structure) Counts() []int { return S.counts }

//Frac returns the fractional coordinates, one site per row.
func (S *Structure) Frac() *v3.Matrix { return S.frac }

//Selective returns the selective dynamics flags, or nil if the structure has none.
func (S *Structure) Selective() [][3]bool { return S.selective }

//SetSelective sets the selective dynamics flags, one per site. A nil slice removes them.
func (S *Structure) SetSelective(flags [][3]bool) error {
	if flags != nil && len(flags) != S.NSites() {
		return Error{fmt.Sprintf("%d flags for %d sites", len(flags), S.NSites()), "", []string{"SetSelective"}, true}
	}
	S.selective = flags
	return nil
}

//NSites returns the number of sites in the cell.
func (S *Structure) NSites() int {
	return S.frac.NVecs()
}

//SpeciesOf returns the species of site i. It panics if i is out of range.
func (S *Structure) SpeciesOf(i int) string {
	if i < 0 {
		panic(fmt.Sprintf("poscar: negative site index %d", i))
	}
	for j, c := range S.counts {
		if i < c {
			return S.species[j]
		}
		i -= c
	}
	panic("poscar: site index out of range")
}

//labels returns the species of each site.
func (S *Structure) labels() []string {
	ret := make([]string, 0, S.NSites())
	for j, c := range S.counts {
		for i := 0; i < c; i++ {
			ret = append(ret, S.species[j])
		}
	}
	return ret
}

//Formula returns the composition of the cell, as in "Fe2O3".
func (S *Structure) Formula() string {
	var b strings.Builder
	for i, s := range S.species {
		b.WriteString(s)
		if S.counts[i] != 1 {
			fmt.Fprintf(&b, "%d", S.counts[i])
		}
	}
	return b.String()
}

//Copy returns a deep copy of the structure.
func (S *Structure) Copy() *Structure {
	ret := &Structure{Comment: S.Comment}
	ret.lattice = mat.DenseCopyOf(S.lattice)
	ret.species = append([]string(nil), S.species...)
	ret.counts = append([]int(nil), S.counts...)
	ret.frac = v3.Zeros(S.NSites())
	ret.frac.Copy(S.frac)
	if S.selective != nil {
		ret.selective = append([][3]bool(nil), S.selective...)
	}
	return ret
}

//Volume returns the volume of the cell in cubic Angstrom.
func (S *Structure) Volume() float64 {
	return math.Abs(mat.Det(S.lattice))
}

//Abc returns the lengths of the three lattice vectors.
func (S *Structure) Abc() [3]float64 {
	return rowNorms(S.lattice)
}

//Angles returns the angles alpha, beta and gamma between the lattice vectors, in degrees.
func (S *Structure) Angles() [3]float64 {
	a, b, c := S.lattice.RawRowView(0), S.lattice.RawRowView(1), S.lattice.RawRowView(2)
	angle := func(u, v []float64) float64 {
		cos := floats.Dot(u, v) / (floats.Norm(u, 2) * floats.Norm(v, 2))
		return math.Acos(math.Max(-1, math.Min(1, cos))) * 180 / math.Pi
	}
	return [3]float64{angle(b, c), angle(a, c), angle(a, b)}
}

//Reciprocal returns the reciprocal lattice, including the 2*Pi factor, one vector per row.
func (S *Structure) Reciprocal() *mat.Dense {
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(S.lattice); err != nil {
		panic("poscar: singular lattice " + err.Error())
	}
	ret := mat.DenseCopyOf(inv.T())
	ret.Scale(2*math.Pi, ret)
	return ret
}

//Cart returns the cartesian coordinates of the sites, in Angstrom.
func (S *Structure) Cart() *v3.Matrix {
	ret := v3.Zeros(S.NSites())
	ret.Mul(S.frac, S.lattice)
	return ret
}

//Density returns the density of the cell in g/cm^3, and an error if the mass
//of some species is not known.
func (S *Structure) Density() (float64, error) {
	const amu2g = 1.66053906660
	var m float64
	for i, s := range S.species {
		mass, ok := Mass(s)
		if !ok {
			return 0, Error{"unknown mass for " + s, "", []string{"Density"}, false}
		}
		m += mass * float64(S.counts[i])
	}
	return m * amu2g / S.Volume(), nil
}

func rowNorms(A mat.RawMatrixer) [3]float64 {
	raw := A.RawMatrix()
	var ret [3]float64
	for i := 0; i < 3; i++ {
		ret[i] = floats.Norm(raw.Data[i*raw.Stride:i*raw.Stride+3], 2)
	}
	return ret
}
