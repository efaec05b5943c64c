/*
 * files.go, part of maptool.
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

	"github.com/rmera/maptool/internal/zio"
)

//ReadFile reads an Incar from a file. Files ending in .gz or .zst are decompressed.
func ReadFile(name string) (*Incar, error) {
	data, err := zio.ReadAll(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"ReadFile"}, true}
	}
	I, err := Parse(string(data))
	if err != nil {
		var berr *BoolError
		if errors.As(err, &berr) {
			berr.Decorate("ReadFile: " + name)
		}
		return nil, err
	}
	return I, nil
}

//WriteFile writes the record to a file, sorted and in the compact format
//(see String). Files ending in .gz or .zst are compressed.
func (I *Incar) WriteFile(name string) error {
	return WriteText(name, I.String())
}

//WriteText writes already formatted INCAR text (for instance, several records
//rendered with Text, one after the other) to a file.
func WriteText(name, text string) error {
	if err := zio.WriteAll(name, []byte(text)); err != nil {
		return Error{err.Error(), name, []string{"WriteText"}, true}
	}
	return nil
}
