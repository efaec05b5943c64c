/*
 * generate.go, part of maptool.
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
)

//the indexes of the basic blocks in the list built by basicBlocks.
const (
	start = iota
	elec1
	elec2
	ion
	dos
	output
)

func basicBlocks(o Options) []Block {
	return []Block{
		startBlock(o),
		elecRelax1Block(o),
		elecRelax2Block(o),
		ionRelaxBlock(o),
		dosBlock(o),
		outputBlock(o),
	}
}

//singlePoint applies the changes shared by the calculations without ionic steps.
func singlePoint(b []Block, o Options) {
	b[ion].set("NSW", 0)
	b[elec1].set("EDIFF", o.EdiffOther)
}

//calcSetups holds, for each calculation kind, the changes to apply to the basic blocks.
//The blocks returned are the final list, before the extras.
var calcSetups = [ncalcs]func(b []Block, o Options) []Block{
	Opt: func(b []Block, o Options) []Block { return b },
	SCF: func(b []Block, o Options) []Block {
		singlePoint(b, o)
		b[output].set("LCHARG", true)
		b[output].set("LWAVE", true)
		return b
	},
	Band: func(b []Block, o Options) []Block {
		singlePoint(b, o)
		b[start].set("ICHARG", 11)
		return b
	},
	DOS: func(b []Block, o Options) []Block {
		singlePoint(b, o)
		b[start].set("ICHARG", 11)
		return b
	},
	ELF: func(b []Block, o Options) []Block {
		singlePoint(b, o)
		b[output].set("LCHARG", true)
		b[output].set("LELF", true)
		return b
	},
	Bader: func(b []Block, o Options) []Block {
		singlePoint(b, o)
		b[output].set("LCHARG", true)
		b[output].set("LAECHG", true)
		return b
	},
	MDNPT: func(b []Block, o Options) []Block {
		md(b, o)
		return append(b, mdNPTBlock(o))
	},
	MDNVT: func(b []Block, o Options) []Block {
		md(b, o)
		b[ion].set("ISIF", 2)
		return append(b, mdNVTBlock(o))
	},
	Potential: func(b []Block, o Options) []Block {
		singlePoint(b, o)
		b[output].set("LCHARG", true)
		b[output].set("LVTOT", true)
		return b
	},
	Partial: func(b []Block, o Options) []Block {
		singlePoint(b, o)
		b[start].set("ISTART", 1)
		b[output].set("LCHARG", true)
		return append(b, partialBlock(o))
	},
	STM: func(b []Block, o Options) []Block {
		singlePoint(b, o)
		b[start].set("ISTART", 1)
		b[output].set("LCHARG", true)
		return append(b, stmBlock(o))
	},
	Optics: func(b []Block, o Options) []Block {
		singlePoint(b, o)
		b[start].set("ISTART", 1)
		return append(b, opticsBlock(o))
	},
	Elastic: func(b []Block, o Options) []Block {
		finiteDifferences(b, o)
		b[ion].set("IBRION", 6)
		return b
	},
	Frequency: func(b []Block, o Options) []Block {
		finiteDifferences(b, o)
		b[ion].set("IBRION", 5)
		return b
	},
	NEB: func(b []Block, o Options) []Block {
		b[ion].set("POTIM", 0)
		b[ion].set("EDIFFG", o.EdiffGNEB)
		b[elec1].set("EDIFF", o.EdiffOpt)
		return append(b, nebBlock(o))
	},
	PhonopyDFPT: func(b []Block, o Options) []Block {
		b[ion].set("IBRION", 8)
		b[elec1].set("EDIFF", o.EdiffPhonon)
		return append(b, gridBlock(o))
	},
	PhonopyFD: func(b []Block, o Options) []Block {
		b[ion].set("NSW", 0)
		b[ion].set("IBRION", -1)
		b[elec1].set("EDIFF", o.EdiffPhonon)
		return append(b, gridBlock(o))
	},
}

func md(b []Block, o Options) {
	b[ion].set("NSW", o.MDSteps)
	b[ion].set("IBRION", 0)
	b[ion].set("POTIM", 1)
	b[ion].set("ISYM", 0)
}

func finiteDifferences(b []Block, o Options) {
	b[ion].set("NSW", 1)
	b[ion].set("NFREE", 4)
	b[ion].set("POTIM", 0.015)
	b[elec1].set("EDIFF", o.EdiffOther)
}

//Generate returns the INCAR blocks for a calculation of kind calc with the
//given extras, in order.
func Generate(calc Calc, extras []Extra, o Options) ([]Block, error) {
	if calc < 0 || calc >= ncalcs {
		return nil, Error{fmt.Sprintf("invalid calculation %d", int(calc)), []string{"Generate"}, true}
	}
	if o.Encut <= 0 {
		return nil, Error{fmt.Sprintf("invalid ENCUT %g", o.Encut), []string{"Generate"}, true}
	}
	if len(o.LDAUL) != len(o.LDAUU) || len(o.LDAUL) != len(o.LDAUJ) {
		return nil, Error{"LDAUL, LDAUU and LDAUJ must have one value per species", []string{"Generate"}, true}
	}
	blocks := calcSetups[calc](basicBlocks(o), o)
	for _, e := range extras {
		if e < 0 || e >= nextras {
			return nil, Error{fmt.Sprintf("invalid extra %d", int(e)), []string{"Generate"}, true}
		}
		blocks = append(blocks, extraBlocks[e](o))
	}
	return blocks, nil
}

//Render returns the text of the blocks, one after the other, separated by empty lines.
func Render(blocks []Block) string {
	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.Text()
	}
	return strings.Join(texts, "\n")
}
