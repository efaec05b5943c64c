/*
 * parse_test.go, part of maptool.
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
	"errors"
	"reflect"
	"testing"
)

const relax = `System = Si bulk ! a comment
ENCUT = 520   # eV
ISMEAR = 0; SIGMA = 0.05
this line is ignored
LDAUL = 2 -1
  lwave = .FALSE.
MAGMOM = 2*1.5 0
`

func TestParse(Te *testing.T) {
	I, err := Parse(relax)
	if err != nil {
		Te.Fatal(err)
	}
	want := []string{"SYSTEM", "ENCUT", "ISMEAR", "SIGMA", "LDAUL", "LWAVE", "MAGMOM"}
	if !reflect.DeepEqual(I.Keys(), want) {
		Te.Errorf("got keys %v, want %v", I.Keys(), want)
	}
	vals := map[string]any{"SYSTEM": "Si bulk", "ENCUT": 520, "ISMEAR": 0, "SIGMA": 0.05, "LWAVE": false}
	for k, w := range vals {
		if v, _ := I.Get(k); v != w {
			Te.Errorf("%s: got %#v, want %#v", k, v, w)
		}
	}
	if v, _ := I.Get("MAGMOM"); !reflect.DeepEqual(v, []Number{Float(1.5), Float(1.5), Int(0)}) {
		Te.Errorf("MAGMOM: got %v", v)
	}
}

func TestParseBool(Te *testing.T) {
	_, err := Parse("NSW = 10\nLCHARG = yes\n")
	var berr *BoolError
	if !errors.As(err, &berr) {
		Te.Fatalf("expected a *BoolError, got %v", err)
	}
	if berr.Key != "LCHARG" || berr.Value != "yes" {
		Te.Errorf("unexpected error content: %v", berr)
	}
}

func TestParseEmpty(Te *testing.T) {
	I, err := Parse("# nothing here\n\n")
	if err != nil {
		Te.Fatal(err)
	}
	if I.Len() != 0 {
		Te.Errorf("expected an empty record, got %v", I.Keys())
	}
	if s := I.Text(true, true, ""); s != "" {
		Te.Errorf("pretty text of an empty record should be empty, got %q", s)
	}
}
