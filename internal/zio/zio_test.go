/*
 * zio_test.go, part of maptool.
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

package zio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	assert.Equal(t, Gzip, For("INCAR.gz"))
	assert.Equal(t, Zstd, For("INCAR.ZST"))
	assert.Equal(t, Plain, For("INCAR"))
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	data := []byte("NSW = 0\nISIF = 3\n")
	for _, name := range []string{"INCAR", "INCAR.gz", "INCAR.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteAll(path, data))
			got, err := ReadAll(path)
			require.NoError(t, err)
			assert.Equal(t, string(data), string(got))
		})
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.gz"))
	assert.Error(t, err)
}
