/*
 * templates.go, part of maptool.
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
	"github.com/rmera/maptool/incar"
)

//Options holds the values the templates take from the structure, the
//pseudopotentials and the user configuration.
type Options struct {
	System      string
	Encut       float64 //eV, see Encut
	LReal       string
	EdiffOpt    float64 //EDIFF for optimizations and MD
	EdiffOther  float64 //EDIFF for single points
	EdiffPhonon float64 //EDIFF for phonon calculations
	EdiffG      float64
	EdiffGNEB   float64
	MDSteps     int
	Magmom      []float64 //one per site, for the Spin extra. Omitted if nil.
	LDAUL       []int     //one per species, for the LDAU extra
	LDAUU       []float64
	LDAUJ       []float64
}

//DefaultOptions returns the options used when nothing else is known.
func DefaultOptions() Options {
	return Options{
		System:      "maptool",
		Encut:       DefaultENMAX * DefaultEncutFactor,
		LReal:       "Auto",
		EdiffOpt:    1e-5,
		EdiffOther:  1e-6,
		EdiffPhonon: 1e-7,
		EdiffG:      -0.01,
		EdiffGNEB:   -0.03,
		MDSteps:     5000,
	}
}

//Block is a group of INCAR parameters with the comment written above them.
type Block struct {
	Comment string
	Incar   *incar.Incar
}

//Text returns the block in the aligned INCAR format.
func (b Block) Text() string {
	return b.Incar.Text(false, true, b.Comment)
}

//set changes or adds a parameter of a template block. It panics on error, as
//template values are never strings that could fail coercion.
func (b Block) set(key string, val any) {
	if err := b.Incar.Set(key, val); err != nil {
		panic(PanicMsg("maptool/inputset: bad template value for " + key + ": " + err.Error()))
	}
}

func block(comment string, params ...incar.Param) Block {
	I, err := incar.New(params...)
	if err != nil {
		panic(PanicMsg("maptool/inputset: bad template: " + err.Error()))
	}
	return Block{Comment: comment, Incar: I}
}

var p = incar.P

func startBlock(o Options) Block {
	return block("#Start parameters for this run\n",
		p("SYSTEM", o.System),
		p("NWRITE", 1),
		p("PREC", "Accurate"),
		p("ISTART", 0),
		p("ICHARG", 2),
	)
}

func elecRelax1Block(o Options) Block {
	return block("#Electronic Relaxation 1\n",
		p("ENCUT", o.Encut),
		p("NELM", 200),
		p("NELMIN", 6),
		p("NELMDL", -5),
		p("EDIFF", o.EdiffOpt),
		p("LREAL", o.LReal),
	)
}

func elecRelax2Block(o Options) Block {
	return block("#Electronic Relaxation 2\n#AMIN     = 0.1\n#AMIX     = 0.4\n#AMIX_MAG = 1.6\n#BMIX     = 1.0\n#BMIX_MAG = 1.0\n",
		p("ALGO", "Normal"),
	)
}

func ionRelaxBlock(o Options) Block {
	return block("#Ionic relaxation\n",
		p("EDIFFG", o.EdiffG),
		p("ISIF", 3),
		p("IBRION", 2),
		p("POTIM", 0.3),
		p("ISYM", 2),
		p("NSW", 200),
	)
}

func dosBlock(o Options) Block {
	return block("# DOS related values\n#EMIN     = -20.00\n#EMAX     =  20.00\n",
		p("ISMEAR", 0),
		p("SIGMA", 0.05),
	)
}

func outputBlock(o Options) Block {
	return block("# Write flags\n",
		p("LWAVE", false),
		p("LCHARG", false),
		p("LVTOT", false),
		p("LVHAR", false),
		p("LELF", false),
		p("LAECHG", false),
	)
}

func mdNPTBlock(o Options) Block {
	return block("# AIMD related parameters\n# you have to set a proper value for TEBEG, TEEND and PMASS\n#PMASS     = 10\n",
		p("TEBEG", 1000),
		p("TEEND", 1000),
		p("NBLOCK", 1),
		p("KBLOCK", 50),
		p("SMASS", 0),
		p("APACO", 10),
		p("NPACO", 500),
		p("LANGEVIN_GAMMA_L", 1),
		p("LANGEVIN_GAMMA", []int{10, 10}),
		p("MDALGO", 3),
	)
}

func mdNVTBlock(o Options) Block {
	return block("# AIMD related parameters\n# you have to set a proper value for TEBEG, TEEND and PMASS\n#PMASS     = 10\n",
		p("TEBEG", 1000),
		p("TEEND", 1000),
		p("NBLOCK", 1),
		p("KBLOCK", 50),
		p("SMASS", 1),
		p("APACO", 10),
		p("NPACO", 500),
	)
}

func partialBlock(o Options) Block {
	return block("# Partial charge related parameters\n# you have to set a proper value for IBAND and EINT\n",
		p("LPARD", true),
		p("IBAND", 32),
		p("KPUSE", 65),
		p("LSEPB", true),
		p("LSEPK", true),
	)
}

func stmBlock(o Options) Block {
	return block("# STM related parameters\n# you have to set a proper value for EINT\n",
		p("LPARD", true),
		p("NBMOD", -3),
		p("EINT", -2),
	)
}

func opticsBlock(o Options) Block {
	return block("# Optics related parameters\n# you have to set a proper value for NBANDS : ~ 4*NBAND\n",
		p("LOPTICS", true),
		p("NEDOS", 2000),
		p("CSHIFT", 0.1),
		p("NBANDS", 100),
	)
}

func nebBlock(o Options) Block {
	return block("# NEB related parameters\n# you have to set a proper value for IMAGES\n",
		p("IMAGES", 9),
		p("ICHAIN", 0),
		p("LCLIMB", true),
		p("SPRING", -5),
		p("IOPT", 3),
	)
}

func gridBlock(o Options) Block {
	return block("# parameters for add meshgrid\n",
		p("ADDGRID", true),
	)
}

//Extras

func spinBlock(o Options) Block {
	var magmom any
	if o.Magmom != nil {
		magmom = o.Magmom
	}
	return block("# Spin related parameters\n",
		p("ISPIN", 2),
		p("MAGMOM", magmom),
	)
}

func socBlock(o Options) Block {
	return block("# SOC related parameters\n",
		p("LSORBIT", true),
	)
}

func hseBlock(o Options) Block {
	return block("# HSE06 related parameters\n",
		p("LHFCALC", true),
		p("HFSCREEN", 0.2),
		p("PRECFOCK", "Fast"),
		p("AEXX", 0.25),
		p("ALGO", "All"),
	)
}

func dipoleBlock(o Options) Block {
	return block("# Dipole correction related parameters\n#EPSILON   = 1.0000000  #bulk dielectric constant\n",
		p("LDIPOL", true),
	)
}

func efieldBlock(o Options) Block {
	return block("# Electric field related parameters\n",
		p("EFIELD", 0.5),
		p("DIPOL", []float64{0.5, 0.5, 0.5}),
		p("IDIPOL", 1),
	)
}

func pressureBlock(o Options) Block {
	return block("# pressure , unit : Kbar    1Kbar= 0.1 GPa\n",
		p("PSTRESS", 10.0),
	)
}

func dftD2Block(o Options) Block {
	return block("# DFT-D2 correction\n",
		p("LVDW", true),
	)
}

func dftD3Block(o Options) Block {
	return block("# DFT-D3 correction\n",
		p("IVDW", 11),
	)
}

func vdwDFBlock(o Options) Block {
	return block("# vdW-DF functional\n",
		p("GGA", "RE"),
		p("LUSE_VDW", true),
		p("AGGAC", 0.0),
	)
}

func optB86Block(o Options) Block {
	return block("# optB86b-vdw functional  correction\n",
		p("GGA", "MK"),
		p("LUSE_VDW", true),
		p("AGGAC", 0.0),
		p("PARAM1", 0.1234),
		p("PARAM2", 1.0),
	)
}

func optB88Block(o Options) Block {
	return block("# optB88-vdw functional correction\n",
		p("GGA", "BO"),
		p("LUSE_VDW", true),
		p("AGGAC", 0.0),
		p("PARAM1", 0.18333),
		p("PARAM2", 0.22),
	)
}

func ldauBlock(o Options) Block {
	b := block("# LDAU related parameters\n",
		p("LDAU", true),
	)
	if len(o.LDAUL) > 0 {
		b.set("LDAUL", o.LDAUL)
		b.set("LDAUU", o.LDAUU)
		b.set("LDAUJ", o.LDAUJ)
	}
	return b
}

var extraBlocks = [nextras]func(Options) Block{
	Spin:     spinBlock,
	SOC:      socBlock,
	HSE:      hseBlock,
	Dipole:   dipoleBlock,
	EField:   efieldBlock,
	AddGrid:  gridBlock,
	Pressure: pressureBlock,
	DFTD2:    dftD2Block,
	DFTD3:    dftD3Block,
	VdWDF:    vdwDFBlock,
	OptB86:   optB86Block,
	OptB88:   optB88Block,
	LDAU:     ldauBlock,
}
