/*
 * io.go, part of maptool.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rmera/maptool/internal/zio"
	"github.com/rmera/maptool/v3"
	"gonum.org/v1/gonum/mat"
)

//Read reads a structure in POSCAR format from r. A negative scale factor is
//taken as the volume of the cell. Cartesian coordinates are converted to fractional.
func Read(r io.Reader) (*Structure, error) {
	sc := bufio.NewScanner(r)
	lines := make([]string, 0, 64)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, Error{err.Error(), "", []string{"Read"}, true}
	}
	S, err := parse(lines)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	return S, nil
}

//ReadFile reads a POSCAR file. Files ending in .gz or .zst are decompressed.
func ReadFile(name string) (*Structure, error) {
	f, err := zio.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"ReadFile"}, true}
	}
	defer f.Close()
	S, err := Read(f)
	if err != nil {
		if e, ok := err.(Error); ok {
			e.filename = name
			return nil, errDecorate(e, "ReadFile")
		}
		return nil, err
	}
	return S, nil
}

func perr(n int, format string, a ...any) Error {
	return Error{fmt.Sprintf("line %d: ", n+1) + fmt.Sprintf(format, a...), "", []string{"parse"}, true}
}

func floatFields(line string, n int) ([]float64, error) {
	f := strings.Fields(line)
	if len(f) < n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(f))
	}
	ret := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			return nil, err
		}
		ret[i] = v
	}
	return ret, nil
}

func parse(lines []string) (*Structure, error) {
	if len(lines) < 8 {
		return nil, perr(len(lines), "file too short for a POSCAR")
	}
	comment := strings.TrimSpace(lines[0])
	sf, err := floatFields(lines[1], 1)
	if err != nil {
		return nil, perr(1, "bad scale factor: %v", err)
	}
	scale := sf[0]
	latt := make([]float64, 0, 9)
	for i := 2; i < 5; i++ {
		v, err := floatFields(lines[i], 3)
		if err != nil {
			return nil, perr(i, "bad lattice vector: %v", err)
		}
		latt = append(latt, v...)
	}
	lattice := mat.NewDense(3, 3, latt)
	if scale < 0 {
		scale = math.Cbrt(-scale / math.Abs(mat.Det(lattice)))
	}
	lattice.Scale(scale, lattice)

	n := 5
	var species []string
	fields := strings.Fields(lines[n])
	if len(fields) == 0 {
		return nil, perr(n, "missing species or site counts")
	}
	if _, err := strconv.Atoi(fields[0]); err != nil {
		species = fields
		n++
	}
	var counts []int
	for _, f := range strings.Fields(lines[n]) {
		c, err := strconv.Atoi(f)
		if err != nil {
			return nil, perr(n, "bad site count %q", f)
		}
		counts = append(counts, c)
	}
	if species == nil {
		//VASP 4 file. The species may be in the comment.
		species = strings.Fields(comment)
		if len(species) != len(counts) {
			return nil, perr(n, "no species line, and the comment does not name %d species", len(counts))
		}
	}
	if len(species) != len(counts) {
		return nil, perr(n, "%d species but %d counts", len(species), len(counts))
	}
	n++
	if n >= len(lines) {
		return nil, perr(n, "missing coordinate mode")
	}
	selective := false
	mode := strings.ToLower(strings.TrimSpace(lines[n]))
	if strings.HasPrefix(mode, "s") {
		selective = true
		n++
		if n >= len(lines) {
			return nil, perr(n, "missing coordinate mode")
		}
		mode = strings.ToLower(strings.TrimSpace(lines[n]))
	}
	cartesian := strings.HasPrefix(mode, "c") || strings.HasPrefix(mode, "k")
	n++
	nsites := 0
	for _, c := range counts {
		nsites += c
	}
	if nsites == 0 {
		return nil, perr(n-2, "no sites")
	}
	if len(lines) < n+nsites {
		return nil, perr(len(lines), "expected %d sites, got %d", nsites, len(lines)-n)
	}
	coords := make([]float64, 0, 3*nsites)
	var flags [][3]bool
	if selective {
		flags = make([][3]bool, nsites)
	}
	for i := 0; i < nsites; i++ {
		line := lines[n+i]
		v, err := floatFields(line, 3)
		if err != nil {
			return nil, perr(n+i, "bad coordinates: %v", err)
		}
		coords = append(coords, v...)
		if selective {
			f := strings.Fields(line)
			if len(f) < 6 {
				return nil, perr(n+i, "missing selective dynamics flags")
			}
			for j := 0; j < 3; j++ {
				flags[i][j] = strings.HasPrefix(strings.ToUpper(f[3+j]), "T")
			}
		}
	}
	frac, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, err
	}
	if cartesian {
		frac.Scale(scale, frac)
		inv := mat.NewDense(3, 3, nil)
		if err := inv.Inverse(lattice); err != nil {
			return nil, perr(2, "singular lattice")
		}
		frac.Mul(frac, inv)
	}
	S, err := New(comment, lattice, species, counts, frac)
	if err != nil {
		return nil, err
	}
	S.selective = flags
	return S, nil
}

func tf(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

//Write writes the structure in POSCAR format (VASP 5, direct coordinates, scale 1.0) to w.
func (S *Structure) Write(w io.Writer) error {
	b := bufio.NewWriter(w)
	comment := S.Comment
	if comment == "" {
		comment = S.Formula()
	}
	fmt.Fprintln(b, comment)
	fmt.Fprintln(b, "1.0")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(b, "%22.16f%22.16f%22.16f\n", S.lattice.At(i, 0), S.lattice.At(i, 1), S.lattice.At(i, 2))
	}
	fmt.Fprintln(b, strings.Join(S.species, " "))
	counts := make([]string, len(S.counts))
	for i, c := range S.counts {
		counts[i] = strconv.Itoa(c)
	}
	fmt.Fprintln(b, strings.Join(counts, " "))
	if S.selective != nil {
		fmt.Fprintln(b, "Selective dynamics")
	}
	fmt.Fprintln(b, "direct")
	labels := S.labels()
	for i := 0; i < S.NSites(); i++ {
		v := S.frac.Vec(i)
		fmt.Fprintf(b, "%20.16f%20.16f%20.16f", v[0], v[1], v[2])
		if S.selective != nil {
			f := S.selective[i]
			fmt.Fprintf(b, " %s %s %s", tf(f[0]), tf(f[1]), tf(f[2]))
		}
		fmt.Fprintf(b, " %s\n", labels[i])
	}
	if err := b.Flush(); err != nil {
		return Error{err.Error(), "", []string{"Write"}, true}
	}
	return nil
}

//WriteFile writes the structure to a POSCAR file. Files ending in .gz or .zst are compressed.
func (S *Structure) WriteFile(name string) error {
	f, err := zio.Create(name)
	if err != nil {
		return Error{err.Error(), name, []string{"WriteFile"}, true}
	}
	if err := S.Write(f); err != nil {
		f.Close()
		return errDecorate(err, "WriteFile")
	}
	if err := f.Close(); err != nil {
		return Error{err.Error(), name, []string{"WriteFile"}, true}
	}
	return nil
}
