/*
 * main_test.go, part of maptool.
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

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rmera/maptool/incar"
	"github.com/rmera/maptool/inputset"
	"github.com/rmera/maptool/internal/config"
	"github.com/rmera/maptool/poscar"
	"github.com/rmera/maptool/potcar"
)

const feo = `FeO
4.3
1 0 0
0 1 0
0 0 1
Fe O
1 1
Direct
0 0 0
0.5 0.5 0.5
`

//run executes maptool with a quiet logger and the default configuration, in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cfg := config.Default()
	cfg.Potcar.Dir, _ = filepath.Abs("../../potcar/testdata/lib")
	cfg.Potcar.Symbols = map[string]string{"Fe": "Fe_pv"}
	opts := &RootOptions{cfg: cfg, logger: zap.NewNop()}
	cmd := newRootCommand(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), err
}

func workdir(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "POSCAR"), []byte(feo), 0o644))
	return dir
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range [][]string{{"incar", "gen"}, {"incar", "fmt"}, {"incar", "diff"}, {"incar", "merge"},
		{"kpoints", "auto"}, {"kpoints", "mesh"}, {"kpoints", "hse"}, {"potcar"}, {"strain"},
		{"defect"}, {"scale"}, {"perturb"}} {
		sub, _, err := cmd.Find(name)
		require.NoError(t, err, name)
		assert.Equal(t, name[len(name)-1], sub.Name())
	}
	v := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, v)
	assert.Equal(t, "v", v.Shorthand)
}

func TestIncarGenWithoutPotcar(t *testing.T) {
	dir := workdir(t)
	_, err := run(t, dir, "incar", "gen", "--choice", "b")
	require.NoError(t, err)
	I, err := incar.ReadFile(filepath.Join(dir, "INCAR"))
	require.NoError(t, err)
	encut, _ := I.Float("ENCUT")
	assert.Equal(t, 750.0, encut)
	nsw, _ := I.Int("NSW")
	assert.Equal(t, 0, nsw)
	assert.True(t, I.Truthy("LCHARG"))
}

func TestIncarGenWithPotcar(t *testing.T) {
	dir := workdir(t)
	_, err := run(t, dir, "potcar")
	require.NoError(t, err)
	p, err := potcar.ReadFile(filepath.Join(dir, "POTCAR"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Fe", "O"}, potcar.Elements(p))

	_, err = run(t, dir, "incar", "gen", "--choice", "aam", "-o", "INCAR.opt")
	require.NoError(t, err)
	I, err := incar.ReadFile(filepath.Join(dir, "INCAR.opt"))
	require.NoError(t, err)
	encut, _ := I.Float("ENCUT")
	assert.Equal(t, 600.0, encut)
	assert.Equal(t, "MAGMOM = 1*5.0 1*0.6\n", mustNew(t, "MAGMOM", I).String())
	assert.True(t, I.Truthy("LDAU"))

	//POTCAR in the wrong order
	_, err = run(t, dir, "potcar", "O", "Fe_pv")
	require.NoError(t, err)
	_, err = run(t, dir, "incar", "gen", "--choice", "a")
	var oerr *inputset.OrderError
	assert.True(t, errors.As(err, &oerr))
}

func mustNew(t *testing.T, key string, I *incar.Incar) *incar.Incar {
	v, ok := I.Get(key)
	require.True(t, ok, key)
	J, err := incar.New(incar.P(key, v))
	require.NoError(t, err)
	return J
}

func TestIncarDiffMerge(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A"), []byte("NSW = 10\nISIF = 3\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B"), []byte("NSW = 10\nIBRION = 2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "C"), []byte("NSW = 0\n"), 0o644))

	out, err := run(t, dir, "incar", "diff", "A", "B")
	require.NoError(t, err)
	assert.Contains(t, out, "IBRION")
	assert.Contains(t, out, "ISIF")
	assert.NotContains(t, out, "NSW")

	out, err = run(t, dir, "incar", "merge", "A", "B")
	require.NoError(t, err)
	assert.Equal(t, "NSW     =  10\nISIF    =  3\nIBRION  =  2\n", out)

	_, err = run(t, dir, "incar", "merge", "A", "C")
	var cerr *incar.ConflictError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "NSW", cerr.Key)

	out, err = run(t, dir, "incar", "fmt", "--sort", "--compact", "A")
	require.NoError(t, err)
	assert.Equal(t, "ISIF = 3\nNSW = 10\n", out)
}

func TestKpointsAuto(t *testing.T) {
	dir := workdir(t)
	_, err := run(t, dir, "kpoints", "auto", "--kppa", "1000")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "KPOINTS"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "maptool with grid density = 1000 / number of atoms")
}

func TestStrainAndDefect(t *testing.T) {
	dir := workdir(t)
	_, err := run(t, dir, "strain", "-d", "strained", "--", "-0.01:0.01:3 0 0")
	require.NoError(t, err)
	for _, name := range []string{"POSCAR_1", "POSCAR_2", "POSCAR_3", "strain_index.dat"} {
		assert.FileExists(t, filepath.Join(dir, "strained", name))
	}
	s, err := poscar.ReadFile(filepath.Join(dir, "strained", "POSCAR_1"))
	require.NoError(t, err)
	assert.InDelta(t, 4.3*0.99, s.Abc()[0], 1e-9)

	_, err = run(t, dir, "defect", "--supercell", "2x2x2", "-n", "3")
	require.NoError(t, err)
	d, err := poscar.ReadFile(filepath.Join(dir, "POSCAR_defect"))
	require.NoError(t, err)
	assert.Equal(t, 13, d.NSites())

	_, err = run(t, dir, "scale", "0.1")
	require.NoError(t, err)
	sc, err := poscar.ReadFile(filepath.Join(dir, "POSCAR_scaled"))
	require.NoError(t, err)
	assert.InDelta(t, 1.1*4.3*4.3*4.3, sc.Volume(), 1e-6)

	_, err = run(t, dir, "defect", "--kind", "inte")
	assert.Error(t, err)
}
