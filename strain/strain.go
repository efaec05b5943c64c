/*
 * strain.go, part of maptool.
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

/*Package strain parses strain descriptions and builds series of
strained structures from them.

A description is either a single number, applied along the three
lattice vectors, or three components (x, y and z). Each component
can be a fixed value or a range "start:end:n", which is divided into n
evenly spaced values, ends included. The series is the cartesian
product of the components, with z varying fastest:

	0.01
	0.01 0.0 0.0
	-0.02:0.02:5 0.0 0.0
*/
package strain

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rmera/maptool/poscar"
	"gonum.org/v1/gonum/floats"
)

//SyntaxError is returned by Parse when a description cannot be understood.
type SyntaxError struct {
	Input  string
	Reason string
	deco   []string
}

func (E *SyntaxError) Error() string {
	return fmt.Sprintf("strain: cannot parse %q: %s", E.Input, E.Reason)
}

//Decorate adds new information to the error
func (E *SyntaxError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Parse expands a strain description into the list of strains it describes.
func Parse(s string) ([][3]float64, error) {
	f := strings.Fields(s)
	switch len(f) {
	case 1:
		if strings.Contains(f[0], ":") {
			return nil, &SyntaxError{Input: s, Reason: "ranges need three components"}
		}
		v, err := strconv.ParseFloat(f[0], 64)
		if err != nil {
			return nil, &SyntaxError{Input: s, Reason: "not a number"}
		}
		return [][3]float64{{v, v, v}}, nil
	case 3:
	default:
		return nil, &SyntaxError{Input: s, Reason: fmt.Sprintf("expected 1 or 3 components, got %d", len(f))}
	}
	var comps [3][]float64
	for i, c := range f {
		vals, err := component(c)
		if err != nil {
			return nil, &SyntaxError{Input: s, Reason: err.Error()}
		}
		comps[i] = vals
	}
	ret := make([][3]float64, 0, len(comps[0])*len(comps[1])*len(comps[2]))
	for _, x := range comps[0] {
		for _, y := range comps[1] {
			for _, z := range comps[2] {
				ret = append(ret, [3]float64{x, y, z})
			}
		}
	}
	return ret, nil
}

//component parses a fixed value or a start:end:n range.
func component(c string) ([]float64, error) {
	parts := strings.Split(c, ":")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", c)
		}
		return []float64{v}, nil
	case 3:
		start, err1 := strconv.ParseFloat(parts[0], 64)
		end, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("bad range %q", c)
		}
		if n < 1 {
			return nil, fmt.Errorf("range %q needs at least one point", c)
		}
		if n == 1 {
			return []float64{start}, nil
		}
		return floats.Span(make([]float64, n), start, end), nil
	}
	return nil, fmt.Errorf("bad component %q, use a value or start:end:n", c)
}

//Series returns one strained copy of s per strain, in order.
func Series(s *poscar.Structure, strains [][3]float64) []*poscar.Structure {
	ret := make([]*poscar.Structure, len(strains))
	for i, e := range strains {
		c := s.Copy()
		c.ApplyStrain(e)
		ret[i] = c
	}
	return ret
}

//IndexTable writes the index of each strain and its components, one per line.
func IndexTable(strains [][3]float64, w io.Writer) error {
	if _, err := fmt.Fprintln(w, "#index eps_x eps_y eps_z"); err != nil {
		return err
	}
	for i, e := range strains {
		if _, err := fmt.Fprintf(w, "%4d %7.4f %7.4f %7.4f\n", i, e[0], e[1], e[2]); err != nil {
			return err
		}
	}
	return nil
}
