/*
 * compare.go, part of maptool.
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

import "reflect"

//Pair holds the values of a parameter in two records. A missing side is nil.
type Pair struct {
	Left, Right any
}

//Difference is the result of comparing two records.
type Difference struct {
	Same      map[string]any  //parameters with the same value in both records
	Different map[string]Pair //parameters missing from one record, or with different values
}

//Diff tells which parameters are the same in a and b and which are not.
//Numbers compare by value, so 3 and 3.0 are the same.
func Diff(a, b *Incar) Difference {
	d := Difference{Same: make(map[string]any), Different: make(map[string]Pair)}
	for _, k := range a.keys {
		v1 := a.values[k]
		v2, ok := b.values[k]
		switch {
		case !ok:
			d.Different[k] = Pair{v1, nil}
		case !Equal(v1, v2):
			d.Different[k] = Pair{v1, v2}
		default:
			d.Same[k] = v1
		}
	}
	for _, k := range b.keys {
		if _, ok := a.values[k]; !ok {
			d.Different[k] = Pair{nil, b.values[k]}
		}
	}
	return d
}

//Combine returns a new record with the parameters of a followed by those of b that
//are not in a. If a parameter is in both with different values, it returns a *ConflictError.
func Combine(a, b *Incar) (*Incar, error) {
	params := make([]Param, 0, a.Len()+b.Len())
	for _, k := range a.keys {
		params = append(params, Param{k, a.values[k]})
	}
	for _, k := range b.keys {
		v := b.values[k]
		if va, ok := a.values[k]; ok {
			if !Equal(va, v) {
				return nil, &ConflictError{Key: k, Left: va, Right: v}
			}
			continue
		}
		params = append(params, Param{k, v})
	}
	return New(params...)
}

//Equal compares two parameter values. int and float64 values are compared
//numerically, also inside lists.
func Equal(v1, v2 any) bool {
	if n1, ok := number(v1); ok {
		n2, ok := number(v2)
		return ok && n1 == n2
	}
	switch t1 := v1.(type) {
	case []Number:
		t2, ok := v2.([]Number)
		if !ok || len(t1) != len(t2) {
			return false
		}
		for i := range t1 {
			if t1[i].Value != t2[i].Value {
				return false
			}
		}
		return true
	case []Vector:
		t2, ok := v2.([]Vector)
		if !ok || len(t1) != len(t2) {
			return false
		}
		for i := range t1 {
			if t1[i] != t2[i] {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(v1, v2)
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}
