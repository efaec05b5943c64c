/*
 * matrix.go, part of maptool.
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

package v3

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space. Within the package it is understood
//that a "vector" is a row vector, i.e. the coordinates of one site.
type Matrix struct {
	*mat.Dense
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//NVecs returns the number of (row) vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Vec returns a copy of the ith vector as an array.
func (F *Matrix) Vec(i int) [3]float64 {
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

//SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	F.Set(i, 0, v[0])
	F.Set(i, 1, v[1])
	F.Set(i, 2, v[2])
}

//SomeVecs puts in F the vectors of A whose indexes are in clist.
//F must have len(clist) vectors.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	if F.NVecs() != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		F.SetVec(key, A.Vec(val))
	}
}

//Mul wraps mat.Dense.Mul so Matrix arguments, including the receiver itself,
//are handled as the underlying Dense.
func (F *Matrix) Mul(A, B mat.Matrix) {
	F.Dense.Mul(dense(A), dense(B))
}

//Scale puts f*A in F.
func (F *Matrix) Scale(f float64, A mat.Matrix) {
	F.Dense.Scale(f, dense(A))
}

//Copy copies A into F. Both must have the same number of vectors.
func (F *Matrix) Copy(A mat.Matrix) {
	F.Dense.Copy(dense(A))
}

func dense(A mat.Matrix) mat.Matrix {
	if m, ok := A.(*Matrix); ok {
		return m.Dense
	}
	return A
}

//Wrap brings every element of A into [0,1) and puts the result in F. Only
//meaningful for fractional coordinates. Values within appzero of 1 become 0.
func (F *Matrix) Wrap(A *Matrix) {
	n := A.NVecs()
	if F.NVecs() != n {
		panic(ErrShape)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			v := A.At(i, j)
			v -= math.Floor(v)
			if math.Abs(v-1) <= appzero {
				v = 0
			}
			F.Set(i, j, v)
		}
	}
}

func (F *Matrix) String() string {
	n := F.NVecs()
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v := F.Vec(i)
		lines = append(lines, fmt.Sprintf("%12.8f %12.8f %12.8f", v[0], v[1], v[2]))
	}
	return strings.Join(lines, "\n")
}

//Errors

const appzero float64 = 1e-10 //everything equal or less than this is considered zero.

//Error is the error type for the v3 package. It satisfies maptool.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix = PanicMsg("maptool/v3: A Matrix should have 3 columns")
	ErrShape        = PanicMsg("maptool/v3: Dimension mismatch")
)
