/*
 * config_test.go, part of maptool.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.EncutFactor)
	assert.Equal(t, 1e-5, cfg.Ediff.Opt)
	assert.Equal(t, 0.6, cfg.Magmom)
	assert.Equal(t, "PBE", cfg.Potcar.Functional)
	o := cfg.Options(600)
	assert.Equal(t, 600.0, o.Encut)
	assert.Equal(t, -0.03, o.EdiffGNEB)
}

const sample = `system: MgO bulk
encut_factor: 1.3
ediff:
  opt: 1.0e-4
md_steps: 100
potcar:
  dir: /opt/vasp/pot
  symbols:
    Fe: Fe_pv
moments:
  Ni: 2
u:
  Fe: 5.3
`

func TestLoadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "maptool.yaml")
	require.NoError(t, os.WriteFile(name, []byte(sample), 0o644))
	cfg, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, "MgO bulk", cfg.System)
	assert.Equal(t, 1.3, cfg.EncutFactor)
	assert.Equal(t, 1e-4, cfg.Ediff.Opt)
	//not in the file, kept from the defaults
	assert.Equal(t, 1e-6, cfg.Ediff.Other)
	assert.Equal(t, 100, cfg.MDSteps)
	assert.Equal(t, "PBE", cfg.Potcar.Functional)
	assert.Equal(t, "/opt/vasp/pot", cfg.Potcar.Dir)
	assert.Equal(t, []string{"Fe_pv", "O"}, cfg.Symbols([]string{"Fe", "O"}))
	assert.Equal(t, 2.0, cfg.Moments["Ni"])
	assert.Equal(t, 5.3, cfg.U["Fe"])
}

func TestEnv(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(env, []byte("MAPTOOL_FUNCTIONAL=LDA\n"), 0o644))
	t.Setenv(EnvFunctional, "")
	os.Unsetenv(EnvFunctional)
	require.NoError(t, LoadEnv(env, filepath.Join(dir, "missing.env")))
	t.Setenv(EnvKPPA, "2000")
	t.Setenv(EnvPotcarDir, "/tmp/pot")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "LDA", cfg.Potcar.Functional)
	assert.Equal(t, 2000.0, cfg.KPPA)
	assert.Equal(t, "/tmp/pot", cfg.Potcar.Dir)

	t.Setenv(EnvEncutFactor, "abc")
	_, err = Load("")
	assert.Error(t, err)
	t.Setenv(EnvEncutFactor, "-1")
	_, err = Load("")
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.System = "saved"
	cfg.U["Ni"] = 6.2
	require.NoError(t, cfg.Save(name))
	back, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
