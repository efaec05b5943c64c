/*
 * choice.go, part of maptool.
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
	"fmt"
	"strings"
	"unicode"
)

//Calc is a kind of calculation. Each one has a letter, from 'a' for Opt to 'q' for PhonopyFD.
type Calc int

const (
	Opt Calc = iota
	SCF
	Band
	DOS
	ELF
	Bader
	MDNPT
	MDNVT
	Potential
	Partial
	STM
	Optics
	Elastic
	Frequency
	NEB
	PhonopyDFPT
	PhonopyFD
	ncalcs
)

var calcNames = [ncalcs]string{
	"Optimization calculation",
	"SCF calculation",
	"BAND structure calculation",
	"DOS calculation",
	"ELF calculation",
	"Bader charge calculation",
	"AIMD NPT calculation",
	"AIMD NVT calculation",
	"Potential calculation",
	"Partial charge calculation",
	"STM image calculation",
	"optical properties calculation",
	"Mechanical properties calculation",
	"Frequency calculation",
	"Transition state calculation",
	"Phonopy + vasp DFPT calculation",
	"Phonopy + vasp finite difference calculation",
}

func (c Calc) String() string {
	if c < 0 || c >= ncalcs {
		return fmt.Sprintf("Calc(%d)", int(c))
	}
	return calcNames[c]
}

//Letter returns the letter that selects c in ParseChoice.
func (c Calc) Letter() byte { return 'a' + byte(c) }

//Calcs returns all the calculation kinds, in letter order.
func Calcs() []Calc {
	ret := make([]Calc, ncalcs)
	for i := range ret {
		ret[i] = Calc(i)
	}
	return ret
}

//Extra is an optional group of parameters added after the calculation blocks.
//Each one has a letter, from 'a' for Spin to 'm' for LDAU.
type Extra int

const (
	Spin Extra = iota
	SOC
	HSE
	Dipole
	EField
	AddGrid
	Pressure
	DFTD2
	DFTD3
	VdWDF
	OptB86
	OptB88
	LDAU
	nextras
)

var extraNames = [nextras]string{
	"SPIN",
	"SOC",
	"HSE",
	"DIPOLE correction",
	"Electric field",
	"Add grid",
	"Add Pressure",
	"DFT-D2",
	"DFT-D3",
	"VDW-DF",
	"opt-B86",
	"opt-B88",
	"LDA+U",
}

func (e Extra) String() string {
	if e < 0 || e >= nextras {
		return fmt.Sprintf("Extra(%d)", int(e))
	}
	return extraNames[e]
}

//Letter returns the letter that selects e in ParseChoice.
func (e Extra) Letter() byte { return 'a' + byte(e) }

//Extras returns all the extras, in letter order.
func Extras() []Extra {
	ret := make([]Extra, nextras)
	for i := range ret {
		ret[i] = Extra(i)
	}
	return ret
}

//ParseChoice reads a choice such as "aai": the first letter selects the calculation
//(here, an optimization) and each of the following ones an extra (here, spin and
//DFT-D3). White space is ignored.
func ParseChoice(s string) (Calc, []Extra, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
	if s == "" {
		return 0, nil, Error{"empty choice", []string{"ParseChoice"}, true}
	}
	c := Calc(int(s[0]) - 'a')
	if c < 0 || c >= ncalcs {
		return 0, nil, Error{fmt.Sprintf("choice '%c' not valid", s[0]), []string{"ParseChoice"}, true}
	}
	extras := make([]Extra, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		e := Extra(int(s[i]) - 'a')
		if e < 0 || e >= nextras {
			return 0, nil, Error{fmt.Sprintf("extra '%c' not valid", s[i]), []string{"ParseChoice"}, true}
		}
		extras = append(extras, e)
	}
	return c, extras, nil
}
