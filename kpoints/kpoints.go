/*
 * kpoints.go, part of maptool.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rmera/maptool/internal/zio"
)

//Style is the kind of k-point list in a KPOINTS file.
type Style int

const (
	Gamma Style = iota
	Monkhorst
	Reciprocal //explicit list, in reciprocal lattice coordinates
	LineMode
)

func (s Style) String() string {
	switch s {
	case Gamma:
		return "Gamma"
	case Monkhorst:
		return "Monkhorst-Pack"
	case Reciprocal:
		return "Reciprocal"
	case LineMode:
		return "Line-mode"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

//Kpoints is the content of a KPOINTS file. Divisions and Shift are used
//by the automatic styles. Points and Weights are used by Reciprocal, Points and
//Labels by LineMode, where consecutive pairs of points are the ends of each
//segment and Segment is the number of points per segment.
type Kpoints struct {
	Comment   string
	Style     Style
	Divisions [3]int
	Shift     [3]float64
	Points    [][3]float64
	Weights   []float64
	Labels    []string
	Segment   int
}

//Write writes k in KPOINTS format to w.
func (k *Kpoints) Write(w io.Writer) error {
	b := bufio.NewWriter(w)
	fmt.Fprintln(b, k.Comment)
	switch k.Style {
	case Gamma, Monkhorst:
		fmt.Fprintln(b, "0")
		fmt.Fprintln(b, k.Style)
		fmt.Fprintf(b, "%d %d %d\n", k.Divisions[0], k.Divisions[1], k.Divisions[2])
		if k.Shift != [3]float64{} {
			fmt.Fprintf(b, "%g %g %g\n", k.Shift[0], k.Shift[1], k.Shift[2])
		}
	case Reciprocal:
		if len(k.Weights) != len(k.Points) {
			return Error{fmt.Sprintf("%d points but %d weights", len(k.Points), len(k.Weights)), "", []string{"Write"}, true}
		}
		fmt.Fprintf(b, "%8d\n", len(k.Points))
		fmt.Fprintln(b, "Reciprocal lattice")
		for i, p := range k.Points {
			fmt.Fprintf(b, "%20.14f%20.14f%20.14f%14g\n", p[0], p[1], p[2], k.Weights[i])
		}
	case LineMode:
		if len(k.Points)%2 != 0 {
			return Error{"line mode needs an even number of points", "", []string{"Write"}, true}
		}
		fmt.Fprintln(b, k.Segment)
		fmt.Fprintln(b, "Line-mode")
		fmt.Fprintln(b, "Reciprocal")
		for i, p := range k.Points {
			label := ""
			if i < len(k.Labels) {
				label = k.Labels[i]
			}
			fmt.Fprintf(b, "%12.8f %12.8f %12.8f ! %s\n", p[0], p[1], p[2], label)
			if i%2 == 1 {
				fmt.Fprintln(b)
			}
		}
	default:
		return Error{"unknown style " + k.Style.String(), "", []string{"Write"}, true}
	}
	if err := b.Flush(); err != nil {
		return Error{err.Error(), "", []string{"Write"}, true}
	}
	return nil
}

//WriteFile writes k to the file name. Files ending in .gz or .zst are compressed.
func (k *Kpoints) WriteFile(name string) error {
	f, err := zio.Create(name)
	if err != nil {
		return Error{err.Error(), name, []string{"WriteFile"}, true}
	}
	if err := k.Write(f); err != nil {
		f.Close()
		return errDecorate(err, "WriteFile")
	}
	if err := f.Close(); err != nil {
		return Error{err.Error(), name, []string{"WriteFile"}, true}
	}
	return nil
}

//contentLines returns the non-empty lines of r, with comments after "!" removed
//except in the first line. Labels after "!" are returned separately.
func contentLines(r io.Reader) (lines []string, labels []string, err error) {
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		l := sc.Text()
		if first {
			lines = append(lines, strings.TrimSpace(l))
			labels = append(labels, "")
			first = false
			continue
		}
		label := ""
		if i := strings.Index(l, "!"); i >= 0 {
			label = strings.TrimSpace(l[i+1:])
			l = l[:i]
		}
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
		labels = append(labels, label)
	}
	return lines, labels, sc.Err()
}

func point(l string) ([3]float64, []string, error) {
	f := strings.Fields(l)
	var ret [3]float64
	if len(f) < 3 {
		return ret, nil, fmt.Errorf("expected 3 coordinates in %q", l)
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			return ret, nil, err
		}
		ret[i] = v
	}
	return ret, f[3:], nil
}

//ReadLineMode reads a line-mode KPOINTS file, in reciprocal coordinates.
func ReadLineMode(r io.Reader) (*Kpoints, error) {
	lines, labels, err := contentLines(r)
	if err != nil {
		return nil, Error{err.Error(), "", []string{"ReadLineMode"}, true}
	}
	if len(lines) < 4 {
		return nil, Error{"file too short", "", []string{"ReadLineMode"}, true}
	}
	k := &Kpoints{Comment: lines[0], Style: LineMode}
	k.Segment, err = strconv.Atoi(strings.Fields(lines[1])[0])
	if err != nil || k.Segment < 2 {
		return nil, Error{"bad number of points per segment: " + lines[1], "", []string{"ReadLineMode"}, true}
	}
	if !strings.HasPrefix(strings.ToLower(lines[2]), "l") {
		return nil, Error{"not a line-mode file", "", []string{"ReadLineMode"}, true}
	}
	if strings.HasPrefix(strings.ToLower(lines[3]), "c") {
		return nil, Error{"cartesian line-mode files are not supported", "", []string{"ReadLineMode"}, true}
	}
	for i := 4; i < len(lines); i++ {
		p, _, err := point(lines[i])
		if err != nil {
			return nil, Error{err.Error(), "", []string{"ReadLineMode"}, true}
		}
		k.Points = append(k.Points, p)
		k.Labels = append(k.Labels, labels[i])
	}
	if len(k.Points) == 0 || len(k.Points)%2 != 0 {
		return nil, Error{fmt.Sprintf("line mode needs pairs of points, got %d", len(k.Points)), "", []string{"ReadLineMode"}, true}
	}
	return k, nil
}

//ReadExplicit reads an explicit k-point list in reciprocal coordinates, such as
//an IBZKPT file. Anything after the listed points (tetrahedra) is ignored.
func ReadExplicit(r io.Reader) (*Kpoints, error) {
	lines, _, err := contentLines(r)
	if err != nil {
		return nil, Error{err.Error(), "", []string{"ReadExplicit"}, true}
	}
	if len(lines) < 3 {
		return nil, Error{"file too short", "", []string{"ReadExplicit"}, true}
	}
	n, err := strconv.Atoi(strings.Fields(lines[1])[0])
	if err != nil || n <= 0 {
		return nil, Error{"not an explicit k-point list: " + lines[1], "", []string{"ReadExplicit"}, true}
	}
	mode := strings.ToLower(lines[2])
	if !strings.HasPrefix(mode, "r") && !strings.HasPrefix(mode, "d") {
		return nil, Error{"only reciprocal coordinates are supported", "", []string{"ReadExplicit"}, true}
	}
	if len(lines) < 3+n {
		return nil, Error{fmt.Sprintf("expected %d points, got %d", n, len(lines)-3), "", []string{"ReadExplicit"}, true}
	}
	k := &Kpoints{Comment: lines[0], Style: Reciprocal}
	for i := 3; i < 3+n; i++ {
		p, rest, err := point(lines[i])
		if err != nil {
			return nil, Error{err.Error(), "", []string{"ReadExplicit"}, true}
		}
		w := 1.0
		if len(rest) > 0 {
			w, err = strconv.ParseFloat(rest[0], 64)
			if err != nil {
				return nil, Error{"bad weight " + rest[0], "", []string{"ReadExplicit"}, true}
			}
		}
		k.Points = append(k.Points, p)
		k.Weights = append(k.Weights, w)
	}
	return k, nil
}

//ReadFile reads a KPOINTS file of explicit or line-mode style, deciding by the third line.
func ReadFile(name string) (*Kpoints, error) {
	data, err := zio.ReadAll(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"ReadFile"}, true}
	}
	lines, _, _ := contentLines(strings.NewReader(string(data)))
	var k *Kpoints
	if len(lines) > 2 && strings.HasPrefix(strings.ToLower(lines[2]), "l") {
		k, err = ReadLineMode(strings.NewReader(string(data)))
	} else {
		k, err = ReadExplicit(strings.NewReader(string(data)))
	}
	if err != nil {
		if e, ok := err.(Error); ok {
			e.filename = name
			return nil, errDecorate(e, "ReadFile")
		}
		return nil, err
	}
	return k, nil
}
