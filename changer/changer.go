/*
 * changer.go, part of maptool.
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

/*Package changer applies random or systematic modifications to a structure:
volume scaling, vacancies, substitutions and random perturbations of
the lattice and the positions. A Changer keeps the original structure
untouched and records every operation applied.*/
package changer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/rmera/maptool"
	"github.com/rmera/maptool/poscar"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//DefectKind is the kind of point defect applied by ApplyDefect.
type DefectKind string

const (
	Vacancy      DefectKind = "vac"
	Substitution DefectKind = "subs"
	Interstitial DefectKind = "inte" //not implemented
	VacancyInter DefectKind = "vint" //not implemented
)

//Operation is an entry of the log of a Changer.
type Operation struct {
	Kind  string
	Value float64
}

func (o Operation) String() string {
	return fmt.Sprintf("%s: %g", o.Kind, o.Value)
}

//Changer produces modified copies of a structure.
type Changer struct {
	old *poscar.Structure
	rng *rand.Rand
	ops []Operation
}

//New returns a Changer for s. The random choices are taken from a source seeded with seed,
//so equal seeds give equal results.
func New(s *poscar.Structure, seed int64) *Changer {
	return &Changer{old: s.Copy(), rng: rand.New(rand.NewSource(seed))}
}

//Operations returns the operations applied so far, in order.
func (C *Changer) Operations() []Operation {
	return append([]Operation(nil), C.ops...)
}

//ScaleVolume returns a copy of the structure with volume V*(1+scale).
func (C *Changer) ScaleVolume(scale float64) (*poscar.Structure, error) {
	s := C.old.Copy()
	if err := s.ScaleVolume((1 + scale) * C.old.Volume()); err != nil {
		return nil, errDecorate(err, "ScaleVolume")
	}
	C.ops = append(C.ops, Operation{"V scaling", scale})
	return s, nil
}

//ApplyDefect builds the given supercell of the structure and applies n defects
//of the given kind on sites chosen at random, without repetition. Vacancies remove the
//sites. Substitutions replace them with element, and the sites are then grouped by species.
func (C *Changer) ApplyDefect(n int, kind DefectKind, supercell [3]int, element string) (*poscar.Structure, error) {
	if n < 0 {
		return nil, Error{fmt.Sprintf("number of defects must not be negative, got %d", n), []string{"ApplyDefect"}, true}
	}
	switch kind {
	case Vacancy, Substitution:
	case Interstitial, VacancyInter:
		return nil, Error{fmt.Sprintf("defects of type %s are not implemented", kind), []string{"ApplyDefect"}, true}
	default:
		return nil, Error{fmt.Sprintf("invalid defect type %q", kind), []string{"ApplyDefect"}, true}
	}
	if kind == Substitution && !poscar.IsSymbol(element) {
		return nil, Error{fmt.Sprintf("invalid element %q", element), []string{"ApplyDefect"}, true}
	}
	sc, err := C.old.Supercell(supercell[0], supercell[1], supercell[2])
	if err != nil {
		return nil, errDecorate(err, "ApplyDefect")
	}
	if n > sc.NSites() {
		return nil, Error{fmt.Sprintf("%d defects requested for %d sites", n, sc.NSites()), []string{"ApplyDefect"}, true}
	}
	chosen := C.rng.Perm(sc.NSites())[:n]
	var ret *poscar.Structure
	if kind == Vacancy {
		picked := make(map[int]bool, n)
		for _, i := range chosen {
			picked[i] = true
		}
		rest := make([]int, 0, sc.NSites()-n)
		for i := 0; i < sc.NSites(); i++ {
			if !picked[i] {
				rest = append(rest, i)
			}
		}
		ret, err = sc.Keep(rest)
		C.ops = append(C.ops, Operation{"vacancy", float64(n)})
	} else {
		subs := make(map[int]string, n)
		for _, i := range chosen {
			subs[i] = element
		}
		ret, err = sc.Replace(subs)
		C.ops = append(C.ops, Operation{"substitution", float64(n)})
	}
	if err != nil {
		return nil, errDecorate(err, "ApplyDefect")
	}
	return ret, nil
}

//PerturbLattice returns a copy of the structure where the lattice is deformed by a
//random symmetric strain with components in [-max, max]. Fractional coordinates are kept.
func (C *Changer) PerturbLattice(max float64) (*poscar.Structure, error) {
	if max < 0 {
		return nil, Error{fmt.Sprintf("invalid maximum strain %g", max), []string{"PerturbLattice"}, true}
	}
	def := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			e := max * (2*C.rng.Float64() - 1)
			if i == j {
				e += 1
			}
			def.Set(i, j, e)
			def.Set(j, i, e)
		}
	}
	s := C.old.Copy()
	L := s.Lattice()
	L.Mul(mat.DenseCopyOf(L), def)
	C.ops = append(C.ops, Operation{"lattice perturbation", max})
	return s, nil
}

//PerturbPositions returns a copy of the structure where each site is moved in a random
//direction by a random distance of at most max Angstrom. Coordinates are wrapped into the cell.
func (C *Changer) PerturbPositions(max float64) (*poscar.Structure, error) {
	if max < 0 {
		return nil, Error{fmt.Sprintf("invalid maximum displacement %g", max), []string{"PerturbPositions"}, true}
	}
	s := C.old.Copy()
	cart := s.Cart()
	for i := 0; i < cart.NVecs(); i++ {
		d := C.randomDirection()
		floats.Scale(max*C.rng.Float64(), d[:])
		v := cart.Vec(i)
		floats.Add(v[:], d[:])
		cart.SetVec(i, v)
	}
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(s.Lattice()); err != nil {
		return nil, Error{"singular lattice", []string{"PerturbPositions"}, true}
	}
	frac := s.Frac()
	frac.Mul(cart, inv)
	frac.Wrap(frac)
	C.ops = append(C.ops, Operation{"position perturbation", max})
	return s, nil
}

//randomDirection returns a unit vector uniformly distributed on the sphere.
func (C *Changer) randomDirection() [3]float64 {
	z := 2*C.rng.Float64() - 1
	phi := 2 * math.Pi * C.rng.Float64()
	r := math.Sqrt(1 - z*z)
	return [3]float64{r * math.Cos(phi), r * math.Sin(phi), z}
}

//Error is the error type for the changer package. It satisfies maptool.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return "changer: " + err.message }

//Decorate adds new information to the error
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

func errDecorate(err error, caller string) error {
	if err2, ok := err.(maptool.Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
