/*
 * inputset_test.go, part of maptool.
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

package inputset

import (
	"errors"
	"testing"

	"github.com/rmera/maptool/incar"
	"github.com/rmera/maptool/potcar"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChoice(t *testing.T) {
	c, e, err := ParseChoice(" a a I\n")
	require.NoError(t, err)
	assert.Equal(t, Opt, c)
	assert.Equal(t, []Extra{Spin, DFTD3}, e)

	c, e, err = ParseChoice("q")
	require.NoError(t, err)
	assert.Equal(t, PhonopyFD, c)
	assert.Empty(t, e)

	for _, bad := range []string{"", "   ", "r", "1", "an", "a!"} {
		_, _, err := ParseChoice(bad)
		assert.Error(t, err, bad)
	}
}

func TestLetters(t *testing.T) {
	assert.Equal(t, byte('a'), Opt.Letter())
	assert.Equal(t, byte('q'), PhonopyFD.Letter())
	assert.Equal(t, byte('m'), LDAU.Letter())
	assert.Len(t, Calcs(), 17)
	assert.Len(t, Extras(), 13)
	assert.Equal(t, "Transition state calculation", NEB.String())
	assert.Equal(t, "LDA+U", LDAU.String())
}

func TestOptGolden(t *testing.T) {
	blocks, err := Generate(Opt, nil, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, blocks, 6)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "opt", []byte(Render(blocks)))
}

func intOf(t *testing.T, I *incar.Incar, key string) int {
	t.Helper()
	v, ok := I.Int(key)
	require.True(t, ok, "missing %s", key)
	return v
}

func TestSinglePoints(t *testing.T) {
	o := DefaultOptions()
	for _, c := range []Calc{SCF, Band, DOS, ELF, Bader, Potential, Partial, STM, Optics} {
		blocks, err := Generate(c, nil, o)
		require.NoError(t, err, c.String())
		assert.Equal(t, 0, intOf(t, blocks[ion].Incar, "NSW"), c.String())
		ediff, _ := blocks[elec1].Incar.Float("EDIFF")
		assert.Equal(t, o.EdiffOther, ediff, c.String())
	}
	blocks, _ := Generate(SCF, nil, o)
	assert.True(t, blocks[output].Incar.Truthy("LCHARG"))
	assert.True(t, blocks[output].Incar.Truthy("LWAVE"))
	blocks, _ = Generate(Band, nil, o)
	assert.Equal(t, 11, intOf(t, blocks[start].Incar, "ICHARG"))
	blocks, _ = Generate(Bader, nil, o)
	assert.True(t, blocks[output].Incar.Truthy("LAECHG"))
	assert.False(t, blocks[output].Incar.Truthy("LELF"))
	blocks, _ = Generate(STM, nil, o)
	require.Len(t, blocks, 7)
	assert.Equal(t, 1, intOf(t, blocks[start].Incar, "ISTART"))
	assert.Equal(t, "# STM related parameters\n# you have to set a proper value for EINT\n", blocks[6].Comment)
}

func TestMD(t *testing.T) {
	o := DefaultOptions()
	o.MDSteps = 300
	blocks, err := Generate(MDNVT, nil, o)
	require.NoError(t, err)
	require.Len(t, blocks, 7)
	I := blocks[ion].Incar
	assert.Equal(t, 300, intOf(t, I, "NSW"))
	assert.Equal(t, 0, intOf(t, I, "IBRION"))
	assert.Equal(t, 2, intOf(t, I, "ISIF"))
	assert.Equal(t, 0, intOf(t, I, "ISYM"))
	assert.Equal(t, 1, intOf(t, blocks[6].Incar, "SMASS"))

	blocks, err = Generate(MDNPT, nil, o)
	require.NoError(t, err)
	assert.Equal(t, 3, intOf(t, blocks[ion].Incar, "ISIF"))
	assert.Equal(t, 3, intOf(t, blocks[6].Incar, "MDALGO"))
}

func TestPhonons(t *testing.T) {
	o := DefaultOptions()
	blocks, err := Generate(Frequency, nil, o)
	require.NoError(t, err)
	assert.Equal(t, 5, intOf(t, blocks[ion].Incar, "IBRION"))
	assert.Equal(t, 4, intOf(t, blocks[ion].Incar, "NFREE"))
	potim, _ := blocks[ion].Incar.Float("POTIM")
	assert.Equal(t, 0.015, potim)

	blocks, err = Generate(PhonopyFD, nil, o)
	require.NoError(t, err)
	require.Len(t, blocks, 7)
	assert.Equal(t, -1, intOf(t, blocks[ion].Incar, "IBRION"))
	ediff, _ := blocks[elec1].Incar.Float("EDIFF")
	assert.Equal(t, o.EdiffPhonon, ediff)
	assert.True(t, blocks[6].Incar.Truthy("ADDGRID"))

	blocks, err = Generate(NEB, nil, o)
	require.NoError(t, err)
	ediffg, _ := blocks[ion].Incar.Float("EDIFFG")
	assert.Equal(t, o.EdiffGNEB, ediffg)
}

func TestExtras(t *testing.T) {
	o := DefaultOptions()
	blocks, err := Generate(Opt, []Extra{Spin, DFTD3}, o)
	require.NoError(t, err)
	require.Len(t, blocks, 8)
	assert.Equal(t, "# Spin related parameters\n", blocks[6].Comment)
	_, ok := blocks[6].Incar.Get("MAGMOM")
	assert.False(t, ok, "MAGMOM without moments")
	assert.Equal(t, "# DFT-D3 correction\nIVDW  =  11\n", blocks[7].Text())

	o.Magmom = []float64{5, 5, 0.6}
	blocks, err = Generate(Opt, []Extra{Spin}, o)
	require.NoError(t, err)
	assert.Equal(t, "# Spin related parameters\nISPIN   =  2\nMAGMOM  =  2*5.0 1*0.6\n", blocks[6].Text())
}

func TestLDAUExtra(t *testing.T) {
	o := DefaultOptions()
	o.LDAUL, o.LDAUU, o.LDAUJ = Hubbard(species{[]string{"Fe", "O"}, []int{2, 3}}, map[string]float64{"Fe": 5.3})
	blocks, err := Generate(SCF, []Extra{LDAU}, o)
	require.NoError(t, err)
	want := "# LDAU related parameters\nLDAU   =  True\nLDAUL  =  2 0\nLDAUU  =  5.3 0.0\nLDAUJ  =  0.0 0.0\n"
	assert.Equal(t, want, blocks[len(blocks)-1].Text())

	o.LDAUJ = nil
	_, err = Generate(SCF, []Extra{LDAU}, o)
	assert.Error(t, err)
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate(ncalcs, nil, DefaultOptions())
	assert.Error(t, err)
	_, err = Generate(Opt, []Extra{nextras}, DefaultOptions())
	assert.Error(t, err)
	o := DefaultOptions()
	o.Encut = 0
	_, err = Generate(Opt, nil, o)
	assert.Error(t, err)
}

type species struct {
	sp     []string
	counts []int
}

func (s species) Species() []string { return s.sp }
func (s species) Counts() []int     { return s.counts }

func TestEncut(t *testing.T) {
	e, err := Encut([]string{"Fe", "O"}, nil, DefaultEncutFactor)
	require.NoError(t, err)
	assert.Equal(t, 750.0, e)

	p, err := potcar.ReadFile("../potcar/testdata/lib/POT_GGA_PAW_PBE/O/POTCAR")
	require.NoError(t, err)
	e, err = Encut([]string{"O"}, p, 1.3)
	require.NoError(t, err)
	assert.InDelta(t, 520.0, e, 1e-9)

	_, err = Encut([]string{"Fe"}, p, 1.3)
	var oerr *OrderError
	require.True(t, errors.As(err, &oerr))
	assert.Equal(t, []string{"O"}, oerr.Potcar)
	_, err = Encut([]string{"O", "Fe"}, p, 1.3)
	assert.Error(t, err)
	_, err = Encut([]string{"O"}, p, 0)
	assert.Error(t, err)
}

func TestMagmoms(t *testing.T) {
	s := species{[]string{"Fe", "Ni", "O"}, []int{2, 1, 1}}
	assert.Equal(t, []float64{5, 5, 2, 0.6}, Magmoms(s, map[string]float64{"Ni": 2}, DefaultMagmom))
}
