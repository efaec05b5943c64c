/*
 * strain_test.go, part of maptool.
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

package strain

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rmera/maptool/poscar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	s, err := Parse("0.01")
	require.NoError(t, err)
	assert.Equal(t, [][3]float64{{0.01, 0.01, 0.01}}, s)

	s, err = Parse(" 0.01 0.0  -0.02 ")
	require.NoError(t, err)
	assert.Equal(t, [][3]float64{{0.01, 0, -0.02}}, s)

	s, err = Parse("-0.02:0.02:5 0.0 0:0.01:2")
	require.NoError(t, err)
	require.Len(t, s, 10)
	assert.Equal(t, [3]float64{-0.02, 0, 0}, s[0])
	assert.Equal(t, [3]float64{-0.02, 0, 0.01}, s[1])
	assert.InDelta(t, -0.01, s[2][0], 1e-12)
	assert.InDelta(t, 0.02, s[9][0], 1e-12)
	assert.Equal(t, 0.01, s[9][2])
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "a", "0.1 0.2", "0.1:0.2:3", "0:1:x 0 0", "0:1 0 0", "0:1:0 0 0", "1 2 3 4"} {
		_, err := Parse(in)
		var serr *SyntaxError
		if assert.True(t, errors.As(err, &serr), "input %q", in) {
			assert.Equal(t, in, serr.Input)
		}
	}
}

const si = `Si2
1.0
0.0 2.715 2.715
2.715 0.0 2.715
2.715 2.715 0.0
Si
2
Direct
0 0 0
0.25 0.25 0.25
`

func TestSeries(t *testing.T) {
	S, err := poscar.Read(strings.NewReader(si))
	require.NoError(t, err)
	strains, err := Parse("0:0.02:3 0 0")
	require.NoError(t, err)
	series := Series(S, strains)
	require.Len(t, series, 3)
	a0 := S.Abc()[0]
	for i, c := range series {
		assert.InDelta(t, a0*(1+strains[i][0]), c.Abc()[0], 1e-12)
		assert.InDelta(t, a0, c.Abc()[1], 1e-12)
	}
	assert.InDelta(t, a0, S.Abc()[0], 1e-12, "the original structure must not change")

	var b bytes.Buffer
	require.NoError(t, IndexTable(strains, &b))
	want := "#index eps_x eps_y eps_z\n" +
		"   0  0.0000  0.0000  0.0000\n" +
		"   1  0.0100  0.0000  0.0000\n" +
		"   2  0.0200  0.0000  0.0000\n"
	assert.Equal(t, want, b.String())
}
