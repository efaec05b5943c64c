/*
 * poscar_test.go, part of maptool.
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
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const eps = 1e-8

func TestReadSi(t *testing.T) {
	S, err := ReadFile("testdata/POSCAR.Si")
	require.NoError(t, err)
	assert.Equal(t, "Si2", S.Comment)
	assert.Equal(t, []string{"Si"}, S.Species())
	assert.Equal(t, []int{2}, S.Counts())
	assert.Equal(t, 2, S.NSites())
	assert.InDelta(t, 2*2.715*2.715*2.715, S.Volume(), eps)
	abc := S.Abc()
	for _, l := range abc {
		assert.InDelta(t, 2.715*math.Sqrt2, l, eps)
	}
	for _, a := range S.Angles() {
		assert.InDelta(t, 60, a, 1e-6)
	}
	assert.Equal(t, [3]float64{0.25, 0.25, 0.25}, S.Frac().Vec(1))
	assert.Nil(t, S.Selective())
	assert.Equal(t, "Si", S.SpeciesOf(1))
}

func TestReadCartesianSelective(t *testing.T) {
	S, err := ReadFile("testdata/POSCAR.MgO")
	require.NoError(t, err)
	//VASP 4 file, species from the comment, negative scale is the volume.
	assert.Equal(t, []string{"Mg", "O"}, S.Species())
	assert.Equal(t, []int{4, 4}, S.Counts())
	assert.InDelta(t, 74.088, S.Volume(), 1e-6)
	//cartesian coordinates are scaled too.
	v := S.Frac().Vec(1)
	assert.InDelta(t, 0.5, v[1], eps)
	assert.InDelta(t, 0.5, v[2], eps)
	assert.Equal(t, [3]bool{false, false, false}, S.Selective()[3])
	assert.Equal(t, [3]bool{true, true, false}, S.Selective()[7])
	assert.Equal(t, "O", S.SpeciesOf(4))
	assert.Equal(t, "Mg4O4", S.Formula())
	d, err := S.Density()
	require.NoError(t, err)
	assert.InDelta(t, 3.61, d, 0.01)
}

func TestWriteRoundTrip(t *testing.T) {
	S, err := ReadFile("testdata/POSCAR.MgO")
	require.NoError(t, err)
	name := filepath.Join(t.TempDir(), "POSCAR.gz")
	require.NoError(t, S.WriteFile(name))
	R, err := ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, S.Species(), R.Species())
	assert.Equal(t, S.Counts(), R.Counts())
	assert.Equal(t, S.Selective(), R.Selective())
	assert.True(t, mat.EqualApprox(S.Lattice(), R.Lattice(), eps))
	assert.True(t, mat.EqualApprox(S.Frac().Dense, R.Frac().Dense, eps))

	var b bytes.Buffer
	require.NoError(t, R.Write(&b))
	lines := strings.Split(b.String(), "\n")
	assert.Equal(t, "Mg O", lines[5])
	assert.Equal(t, "4 4", lines[6])
	assert.Equal(t, "Selective dynamics", lines[7])
	assert.Equal(t, "direct", lines[8])
	assert.True(t, strings.HasSuffix(lines[12], " F F F Mg"), lines[12])
}

func TestReadErrors(t *testing.T) {
	bad := []string{
		"",
		"x\n1.0\n1 0 0\n0 1 0\n0 0 1\nSi\n2\nDirect\n0 0 0\n",                //too few sites
		"x\n1.0\n1 0 0\n0 1 0\n0 0 1\nSi O\n2\nDirect\n0 0 0\n0.5 0.5 0.5\n", //species mismatch
		"x\none\n1 0 0\n0 1 0\n0 0 1\nSi\n1\nDirect\n0 0 0\n",                //bad scale
		"x\n1.0\n1 0 0\n2 0 0\n0 0 1\nSi\n1\nDirect\n0 0 0\n",                //singular lattice
	}
	for i, s := range bad {
		_, err := Read(strings.NewReader(s))
		assert.Error(t, err, "case %d", i)
	}
	_, err := ReadFile("testdata/nothere")
	require.Error(t, err)
	assert.Equal(t, "testdata/nothere", err.(Error).FileName())
}

func TestReciprocal(t *testing.T) {
	S, err := ReadFile("testdata/POSCAR.Si")
	require.NoError(t, err)
	R := S.Reciprocal()
	P := mat.NewDense(3, 3, nil)
	P.Mul(S.Lattice(), R.T())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 2 * math.Pi
			}
			assert.InDelta(t, want, P.At(i, j), eps)
		}
	}
	cart := S.Cart().Vec(1)
	for _, c := range cart {
		assert.InDelta(t, 1.3575, c, eps)
	}
}

func TestSupercell(t *testing.T) {
	S, err := ReadFile("testdata/POSCAR.MgO")
	require.NoError(t, err)
	C, err := S.Supercell(2, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{24, 24}, C.Counts())
	assert.InDelta(t, 6*S.Volume(), C.Volume(), 1e-6)
	assert.Len(t, C.Selective(), 48)
	assert.Equal(t, "O", C.SpeciesOf(24))
	assert.Equal(t, "Mg", C.SpeciesOf(23))
	//the first site has images at a/2 and c/3
	assert.Equal(t, [3]float64{0.5, 0, 2.0 / 3}, C.Frac().Vec(5))
	_, err = S.Supercell(0, 1, 1)
	assert.Error(t, err)
}

func TestStrainAndVolume(t *testing.T) {
	S, err := ReadFile("testdata/POSCAR.MgO")
	require.NoError(t, err)
	C := S.Copy()
	C.ApplyStrain([3]float64{0.01, 0, -0.02})
	abc := C.Abc()
	assert.InDelta(t, 4.2*1.01, abc[0], 1e-9)
	assert.InDelta(t, 4.2, abc[1], 1e-9)
	assert.InDelta(t, 4.2*0.98, abc[2], 1e-9)
	//the copy is independent
	assert.InDelta(t, 4.2, S.Abc()[0], 1e-9)
	require.NoError(t, C.ScaleVolume(100))
	assert.InDelta(t, 100, C.Volume(), 1e-9)
	assert.Error(t, C.ScaleVolume(-1))
}

func TestKeepReplace(t *testing.T) {
	S, err := ReadFile("testdata/POSCAR.MgO")
	require.NoError(t, err)
	K, err := S.Keep([]int{7, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mg", "O"}, K.Species())
	assert.Equal(t, []int{2, 1}, K.Counts())
	assert.Equal(t, [3]bool{true, true, false}, K.Selective()[2])
	_, err = S.Keep([]int{1, 1})
	assert.Error(t, err)
	_, err = S.Keep([]int{8})
	assert.Error(t, err)

	R, err := S.Replace(map[int]string{1: "Ca", 3: "O"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mg", "Ca", "O"}, R.Species())
	assert.Equal(t, []int{2, 1, 5}, R.Counts())
	//the former site 3 is now the first O
	assert.Equal(t, S.Frac().Vec(3), R.Frac().Vec(3))
	assert.Equal(t, [3]bool{false, false, false}, R.Selective()[3])
	assert.Equal(t, S.Frac().Vec(1), R.Frac().Vec(2))
}
