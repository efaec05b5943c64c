/*
 * format.go, part of maptool.
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

package incar

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

//formatFloat writes f in its shortest round-trip form. Integral values keep a
//trailing ".0" and very large or small ones use an exponent (1e-05), so that
//the text reads back as a float.
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strings.ToLower(strconv.FormatFloat(f, 'g', -1, 64))
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

//valueString returns the text form of a single value.
func valueString(v any) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(t)
	case float64:
		return formatFloat(t)
	case string:
		return t
	case Number:
		return t.String()
	case []Number:
		s := make([]string, len(t))
		for i, n := range t {
			s[i] = n.String()
		}
		return strings.Join(s, " ")
	case []Vector:
		s := make([]string, len(t))
		for i, n := range t {
			s[i] = n.String()
		}
		return strings.Join(s, " ")
	}
	return fmt.Sprint(v)
}

//magmomString writes the MAGMOM tag. Vectors are written flat when the
//run is non-collinear. Otherwise, consecutive equal moments are grouped as
//"count*value", and as "3*count*value" for non-collinear runs.
func (I *Incar) magmomString(v any) string {
	nc := I.noncollinear()
	if vecs, ok := v.([]Vector); ok {
		return valueString(vecs)
	}
	m, ok := v.([]Number)
	if !ok {
		return valueString(v)
	}
	groups := make([]string, 0, len(m))
	for i := 0; i < len(m); {
		j := i + 1
		for j < len(m) && m[j].Value == m[i].Value {
			j++
		}
		if nc {
			groups = append(groups, fmt.Sprintf("3*%d*%s", j-i, m[i]))
		} else {
			groups = append(groups, fmt.Sprintf("%d*%s", j-i, formatFloat(m[i].Value)))
		}
		i = j
	}
	return strings.Join(groups, " ")
}

//Text returns the INCAR text of the record, preceded by comment. Parameters are
//written in insertion order, or alphabetically if sortKeys is true.
//If pretty is true, names, "=" and values are aligned in columns.
//The text always ends with a newline (unless the record is empty and pretty is true).
func (I *Incar) Text(sortKeys, pretty bool, comment string) string {
	keys := I.Keys()
	if sortKeys {
		sort.Strings(keys)
	}
	lines := make([][2]string, 0, len(keys))
	for _, k := range keys {
		v := I.values[k]
		if v == nil {
			continue
		}
		if k == "MAGMOM" {
			lines = append(lines, [2]string{k, I.magmomString(v)})
			continue
		}
		lines = append(lines, [2]string{k, valueString(v)})
	}
	var b strings.Builder
	b.WriteString(comment)
	if pretty {
		width := 0
		for _, l := range lines {
			if w := runewidth.StringWidth(l[0]); w > width {
				width = w
			}
		}
		for _, l := range lines {
			row := runewidth.FillRight(l[0], width) + "  =  " + l[1]
			b.WriteString(strings.TrimRight(row, " "))
			b.WriteString("\n")
		}
		return b.String()
	}
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(l[0] + " = " + l[1])
	}
	b.WriteString("\n")
	return b.String()
}

//String returns the record sorted by key, in the compact format and without comment.
func (I *Incar) String() string {
	return I.Text(true, false, "")
}
