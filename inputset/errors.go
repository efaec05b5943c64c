/*
 * errors.go, part of maptool.
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

//Error is the error type for the inputset package. It satisfies maptool.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return "inputset: " + err.message }

//Decorate adds new information to the error
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//OrderError is returned when the elements of the POTCAR are not those of
//the structure, in the same order.
type OrderError struct {
	Structure []string
	Potcar    []string
}

func (err *OrderError) Error() string {
	return fmt.Sprintf("inputset: the element order in POTCAR (%s) conflicts with POSCAR (%s)",
		strings.Join(err.Potcar, " "), strings.Join(err.Structure, " "))
}

//PanicMsg is the type used for all the panics raised in the inputset package.
//Any panic that is not of PanicMsg type comes from a lower level.
type PanicMsg string

//Error returns a string with an error message
func (v PanicMsg) Error() string { return string(v) }
