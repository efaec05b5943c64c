/*
 * generate.go, part of maptool.
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

package kpoints

import (
	"fmt"
	"math"

	"github.com/rmera/maptool"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Automatic returns an automatic grid with about kppa k-points per reciprocal
//atom. The number of divisions along each reciprocal vector is inversely
//proportional to the length of the corresponding lattice vector. The grid is
//Gamma-centered for hexagonal cells or if any division is odd, and
//Monkhorst-Pack otherwise. dim is the periodicity of the system: for 0 the grid is
//1x1x1, for 1 only the c direction is sampled, and for 2 the c direction is not.
func Automatic(c maptool.Cell, kppa float64, dim int) (*Kpoints, error) {
	if kppa <= 0 {
		return nil, Error{fmt.Sprintf("invalid k-point density %g", kppa), "", []string{"Automatic"}, true}
	}
	if dim < 0 || dim > 3 {
		return nil, Error{fmt.Sprintf("invalid dimensionality %d", dim), "", []string{"Automatic"}, true}
	}
	comment := fmt.Sprintf("maptool with grid density = %.0f / number of atoms", kppa)
	if math.Abs(math.Pow(math.Floor(math.Cbrt(kppa)+0.5), 3)-kppa) < 1 {
		kppa += kppa * 0.01
	}
	lengths := abc(c.Lattice())
	ngrid := kppa / float64(c.NSites())
	mult := math.Cbrt(ngrid * lengths[0] * lengths[1] * lengths[2])
	k := &Kpoints{Comment: comment, Style: Monkhorst}
	odd := false
	for i, l := range lengths {
		k.Divisions[i] = int(math.Floor(math.Max(mult/l, 1)))
		if k.Divisions[i]%2 == 1 {
			odd = true
		}
	}
	if odd || hexagonal(c.Lattice()) {
		k.Style = Gamma
	}
	switch dim {
	case 0:
		k.Divisions = [3]int{1, 1, 1}
	case 1:
		k.Divisions[0], k.Divisions[1] = 1, 1
	case 2:
		k.Divisions[2] = 1
	}
	return k, nil
}

//PlaneMesh returns an explicit mesh over the kx-ky plane (kz=0) in reciprocal
//coordinates, from -0.5 to 0.5 in each direction, ends included. The spacing is
//at most dk, in units of 2*Pi/Angstrom. All points have weight 1.
func PlaneMesh(c maptool.Cell, dk float64) (*Kpoints, error) {
	if dk <= 0 {
		return nil, Error{fmt.Sprintf("invalid spacing %g", dk), "", []string{"PlaneMesh"}, true}
	}
	rec, err := reciprocal(c.Lattice())
	if err != nil {
		return nil, errDecorate(err, "PlaneMesh")
	}
	l := abc(rec)
	na := int(math.Ceil(l[0] / (2 * math.Pi) / dk))
	nb := int(math.Ceil(l[1] / (2 * math.Pi) / dk))
	xs, ys := linspace(-0.5, 0.5, na), linspace(-0.5, 0.5, nb)
	k := &Kpoints{
		Comment: fmt.Sprintf("kx-ky plane mesh by maptool: %dx%d", na, nb),
		Style:   Reciprocal,
		Points:  make([][3]float64, 0, na*nb),
		Weights: make([]float64, 0, na*nb),
	}
	for _, y := range ys {
		for _, x := range xs {
			k.Points = append(k.Points, [3]float64{x, y, 0})
			k.Weights = append(k.Weights, 1)
		}
	}
	return k, nil
}

//HSEBand returns the explicit list of ibz (usually read from an IBZKPT file) followed
//by the points along each segment of path, with zero weight. Each segment is
//sampled with path.Segment points, ends included.
func HSEBand(ibz, path *Kpoints) (*Kpoints, error) {
	if ibz.Style != Reciprocal || len(ibz.Points) != len(ibz.Weights) {
		return nil, Error{"the irreducible list must be explicit, with weights", "", []string{"HSEBand"}, true}
	}
	if path.Style != LineMode || len(path.Points)%2 != 0 || path.Segment < 2 {
		return nil, Error{"the band path must be in line mode", "", []string{"HSEBand"}, true}
	}
	k := &Kpoints{Comment: "Generated by maptool", Style: Reciprocal}
	k.Points = append(k.Points, ibz.Points...)
	k.Weights = append(k.Weights, ibz.Weights...)
	for i := 0; i < len(path.Points); i += 2 {
		start, end := path.Points[i], path.Points[i+1]
		var comps [3][]float64
		for j := 0; j < 3; j++ {
			comps[j] = linspace(start[j], end[j], path.Segment)
		}
		for n := 0; n < path.Segment; n++ {
			k.Points = append(k.Points, [3]float64{comps[0][n], comps[1][n], comps[2][n]})
			k.Weights = append(k.Weights, 0)
		}
	}
	return k, nil
}

func linspace(start, end float64, n int) []float64 {
	if n < 2 {
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, end)
}

func abc(L *mat.Dense) [3]float64 {
	var ret [3]float64
	for i := 0; i < 3; i++ {
		ret[i] = floats.Norm(L.RawRowView(i), 2)
	}
	return ret
}

func reciprocal(L *mat.Dense) (*mat.Dense, error) {
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(L); err != nil {
		return nil, Error{"singular lattice", "", []string{"reciprocal"}, true}
	}
	ret := mat.DenseCopyOf(inv.T())
	ret.Scale(2*math.Pi, ret)
	return ret, nil
}

//hexagonal tells whether the lattice has two right angles, one angle of 60 or
//120 degrees, and equal lengths for the vectors forming the right angles.
func hexagonal(L *mat.Dense) bool {
	const angtol, lentol = 5.0, 0.01
	l := abc(L)
	angle := func(i, j int) float64 {
		u, v := L.RawRowView(i), L.RawRowView(j)
		cos := floats.Dot(u, v) / (l[i] * l[j])
		return math.Acos(math.Max(-1, math.Min(1, cos))) * 180 / math.Pi
	}
	//alpha, beta, gamma
	angles := [3]float64{angle(1, 2), angle(0, 2), angle(0, 1)}
	var right, hex []int
	for i, a := range angles {
		if math.Abs(a-90) < angtol {
			right = append(right, i)
		}
		if math.Abs(a-60) < angtol || math.Abs(a-120) < angtol {
			hex = append(hex, i)
		}
	}
	return len(right) == 2 && len(hex) == 1 && math.Abs(l[right[0]]-l[right[1]]) < lentol
}
