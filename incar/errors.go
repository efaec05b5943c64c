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

package incar

import (
	"fmt"

	"github.com/rmera/maptool"
)

//Error is the general structure for errors in this package. It fulfills maptool.FileError.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return "incar: " + err.message
	}
	return fmt.Sprintf("incar file %s: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even thought this method does not use a pointer as a receiver, and tries to alter the received,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file associated to the error, if any
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file associated to the error
func (err Error) Format() string { return "incar" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//BoolError is returned when a boolean tag has a value that is neither true nor false.
type BoolError struct {
	Key   string
	Value string
	deco  []string
}

func (E *BoolError) Error() string {
	return fmt.Sprintf("incar: %s must be boolean, got %q", E.Key, E.Value)
}

//Decorate adds new information to the error
func (E *BoolError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//ConflictError is returned by Combine when both records set the same tag to different values.
type ConflictError struct {
	Key         string
	Left, Right any
	deco        []string
}

func (E *ConflictError) Error() string {
	return fmt.Sprintf("incar: conflicting values for %s: %v and %v", E.Key, E.Left, E.Right)
}

//Decorate adds new information to the error
func (E *ConflictError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//errDecorate decorates err with the caller's name if it implements maptool.Error,
//and returns it unchanged otherwise.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(maptool.Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
