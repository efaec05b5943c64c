/*
 * incar_test.go, part of maptool.
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
	"reflect"
	"testing"
)

func TestSet(Te *testing.T) {
	I, err := New()
	if err != nil {
		Te.Fatal(err)
	}
	if err := I.Set("  nsw ", " 10 "); err != nil {
		Te.Fatal(err)
	}
	if err := I.Set("EDIFF", float32(0.5)); err != nil {
		Te.Fatal(err)
	}
	if v, ok := I.Get("NSW"); !ok || v != 10 {
		Te.Errorf("NSW: got %#v", v)
	}
	if v, _ := I.Get("ediff"); v != 0.5 {
		Te.Errorf("EDIFF: got %#v", v)
	}
	if err := I.Set("LWAVE", "maybe"); err == nil {
		Te.Error("expected an error for a non-boolean LWAVE")
	}
	if _, ok := I.Get("LWAVE"); ok {
		Te.Error("a failed Set should not store the value")
	}
	I.Set("NSW", nil)
	if !reflect.DeepEqual(I.Keys(), []string{"EDIFF"}) {
		Te.Errorf("unexpected keys %v", I.Keys())
	}
}

func TestOrder(Te *testing.T) {
	I, err := New(P("SYSTEM", "test"), P("NSW", 0), P("ALGO", "Fast"))
	if err != nil {
		Te.Fatal(err)
	}
	I.Set("ISIF", 2)
	I.Set("NSW", 100) //replacing keeps the position
	want := []string{"SYSTEM", "NSW", "ALGO", "ISIF"}
	if !reflect.DeepEqual(I.Keys(), want) {
		Te.Errorf("got %v, want %v", I.Keys(), want)
	}
	I.Delete("ALGO")
	if I.Len() != 3 {
		Te.Errorf("expected 3 parameters, got %d", I.Len())
	}
	if n, ok := I.Int("NSW"); !ok || n != 100 {
		Te.Errorf("NSW: %d %v", n, ok)
	}
	if _, ok := I.Float("SYSTEM"); ok {
		Te.Error("SYSTEM should not read as a float")
	}
}

func TestNoncollinearMagmom(Te *testing.T) {
	I, err := New(P("MAGMOM", "0 0 1 0 0 -1"), P("LSORBIT", ".TRUE."))
	if err != nil {
		Te.Fatal(err)
	}
	got, _ := I.Get("MAGMOM")
	want := []Vector{{0, 0, 1}, {0, 0, -1}}
	if !reflect.DeepEqual(got, want) {
		Te.Errorf("got %v, want %v", got, want)
	}
	//collinear runs keep the flat list
	J, _ := New(P("MAGMOM", []float64{1, 1}), P("ISPIN", 2))
	if _, ok := J.values["MAGMOM"].([]Number); !ok {
		Te.Errorf("collinear MAGMOM should stay flat, got %T", J.values["MAGMOM"])
	}
}

func TestFromMap(Te *testing.T) {
	d := map[string]any{
		"@module": "whatever",
		"@class":  "Incar",
		"comment": "# ionic relaxation\n",
		"NSW":     100,
		"ibrion":  "2",
		"LNONCOLLINEAR": true,
		"MAGMOM": []any{
			map[string]any{"moment": []any{0.0, 0.0, 2.0}, "saxis": []any{0, 0, 1}},
			map[string]any{"moment": []float64{1, 0, 0}},
		},
	}
	I, comment, err := FromMap(d)
	if err != nil {
		Te.Fatal(err)
	}
	if comment != "# ionic relaxation\n" {
		Te.Errorf("unexpected comment %q", comment)
	}
	want := []string{"IBRION", "LNONCOLLINEAR", "MAGMOM", "NSW"}
	if !reflect.DeepEqual(I.Keys(), want) {
		Te.Errorf("got keys %v, want %v", I.Keys(), want)
	}
	m, _ := I.Get("MAGMOM")
	if !reflect.DeepEqual(m, []Vector{{0, 0, 2}, {1, 0, 0}}) {
		Te.Errorf("unexpected MAGMOM %v", m)
	}
	if v, _ := I.Get("IBRION"); v != 2 {
		Te.Errorf("IBRION should be coerced to int, got %#v", v)
	}
	if _, _, err := FromMap(map[string]any{"MAGMOM": []any{map[string]any{"moment": 1}}}); err == nil {
		Te.Error("expected an error for a moment that is not a vector")
	}
}

func TestClone(Te *testing.T) {
	I, _ := New(P("LDAUL", []int{2, -1}))
	J := I.Clone()
	J.values["LDAUL"].([]Number)[0] = Int(3)
	if v, _ := I.Get("LDAUL"); v.([]Number)[0] != Int(2) {
		Te.Error("Clone shares list storage with the original")
	}
}
