/*
 * parse.go, part of maptool.
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
	"regexp"
	"strings"
)

var assignment = regexp.MustCompile(`^(\w+)\s*=\s*(.*)`)

//cleanLine removes comments, which start with # or !, and surrounding space.
func cleanLine(line string) string {
	if i := strings.IndexAny(line, "#!"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

//Parse reads an Incar from INCAR text. Each "TAG = value" assignment is
//coerced and stored. Several assignments can share a line if separated by ";".
//Lines that are not assignments are ignored. The only error returned comes from
//a boolean tag with a non-boolean value (a *BoolError, wrapped with the line number).
func Parse(text string) (*Incar, error) {
	I := &Incar{values: make(map[string]any)}
	for n, line := range strings.Split(text, "\n") {
		line = cleanLine(line)
		if line == "" {
			continue
		}
		for _, piece := range strings.Split(line, ";") {
			m := assignment.FindStringSubmatch(strings.TrimSpace(piece))
			if m == nil {
				continue
			}
			if err := I.Set(m[1], m[2]); err != nil {
				err = errDecorate(err, "Parse")
				return nil, fmt.Errorf("line %d: %w", n+1, err)
			}
		}
	}
	I.groupMagmom()
	return I, nil
}
