/*
 * potcar_test.go, part of maptool.
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

package potcar

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lib = "testdata/lib"

func TestAssembleAndRead(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Assemble(lib, "pbe", []string{"Fe_pv", "O"}, &b))
	p, err := Read(&b)
	require.NoError(t, err)
	require.Len(t, p, 2)
	assert.Equal(t, "Fe_pv", p[0].Symbol)
	assert.Equal(t, "PAW_PBE Fe_pv 02Aug2007", p[0].Titel)
	assert.Equal(t, "Fe: 3p4s3d", p[0].VRHFIN)
	assert.Equal(t, 293.238, p[0].ENMAX)
	assert.Equal(t, 219.929, p[0].ENMIN)
	assert.Equal(t, 14.0, p[0].ZVAL)
	assert.Equal(t, []string{"Fe", "O"}, Elements(p))
	assert.Equal(t, 400.0, MaxENMAX(p))
}

func TestAssembleFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "POTCAR.zst")
	require.NoError(t, AssembleFile(lib, "PBE", []string{"O", "O"}, name))
	p, err := ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, []string{"O", "O"}, Elements(p))
}

func TestErrors(t *testing.T) {
	var b bytes.Buffer
	err := Assemble(lib, "PBE", []string{"Xx"}, &b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no POTCAR for Xx")
	assert.Error(t, Assemble(lib, "HF", []string{"O"}, &b))
	assert.Error(t, Assemble(lib, "PBE", nil, &b))
	_, err = Read(strings.NewReader("nothing to see here\n"))
	assert.Error(t, err)
	_, err = ReadFile(filepath.Join(lib, "missing"))
	require.Error(t, err)
	assert.Equal(t, "potcar", err.(Error).Format())
}

func TestElement(t *testing.T) {
	for sym, want := range map[string]string{"Fe_pv": "Fe", "H.75": "H", "O": "O", "Li_sv_GW": "Li"} {
		assert.Equal(t, want, element(sym))
	}
}
