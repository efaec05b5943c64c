/*
 * config.go, part of maptool.
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

//Package config reads the maptool settings: a YAML file with the defaults for the
//generated inputs, plus overrides from the environment (and from a .env file).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rmera/maptool/inputset"
)

//Config holds the maptool settings.
type Config struct {
	System      string  `yaml:"system"`
	EncutFactor float64 `yaml:"encut_factor"`
	LReal       string  `yaml:"lreal"`
	Ediff       Ediff   `yaml:"ediff"`
	MDSteps     int     `yaml:"md_steps"`

	//k-points per reciprocal atom for automatic grids
	KPPA float64 `yaml:"kppa"`

	Potcar PotcarConfig `yaml:"potcar"`

	//initial magnetic moment for elements not in Moments
	Magmom  float64            `yaml:"magmom"`
	Moments map[string]float64 `yaml:"moments,omitempty"`

	//Hubbard U, in eV, for the LDA+U extra
	U map[string]float64 `yaml:"u,omitempty"`
}

//Ediff holds the convergence criteria.
type Ediff struct {
	Opt     float64 `yaml:"opt"`
	Other   float64 `yaml:"other"`
	Phonon  float64 `yaml:"phonon"`
	EdiffG  float64 `yaml:"ediffg"`
	NEBGrad float64 `yaml:"neb_ediffg"`
}

//PotcarConfig tells where to find the pseudopotentials.
type PotcarConfig struct {
	Dir        string `yaml:"dir"`
	Functional string `yaml:"functional"`

	//POTCAR symbol to use for each element, as in Fe: Fe_pv. Elements not
	//listed use their own symbol.
	Symbols map[string]string `yaml:"symbols,omitempty"`
}

//Default returns the settings used when there is no configuration file.
func Default() *Config {
	o := inputset.DefaultOptions()
	return &Config{
		System:      o.System,
		EncutFactor: inputset.DefaultEncutFactor,
		LReal:       o.LReal,
		Ediff: Ediff{
			Opt:     o.EdiffOpt,
			Other:   o.EdiffOther,
			Phonon:  o.EdiffPhonon,
			EdiffG:  o.EdiffG,
			NEBGrad: o.EdiffGNEB,
		},
		MDSteps: o.MDSteps,
		KPPA:    1000,
		Potcar:  PotcarConfig{Functional: "PBE"},
		Magmom:  inputset.DefaultMagmom,
		Moments: map[string]float64{},
		U:       map[string]float64{},
	}
}

//Load reads the configuration file path on top of the defaults, then applies the
//environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

//LoadEnv loads the given .env files (".env" if none is given) into the environment.
//Variables already set are not changed. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

//The environment variables that override the configuration.
const (
	EnvPotcarDir   = "MAPTOOL_POTCAR_DIR"
	EnvFunctional  = "MAPTOOL_FUNCTIONAL"
	EnvEncutFactor = "MAPTOOL_ENCUT_FACTOR"
	EnvKPPA        = "MAPTOOL_KPPA"
	EnvSystem      = "MAPTOOL_SYSTEM"
)

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvPotcarDir); v != "" {
		c.Potcar.Dir = v
	}
	if v := os.Getenv(EnvFunctional); v != "" {
		c.Potcar.Functional = v
	}
	if v := os.Getenv(EnvSystem); v != "" {
		c.System = v
	}
	for name, dst := range map[string]*float64{EnvEncutFactor: &c.EncutFactor, EnvKPPA: &c.KPPA} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = f
	}
	return nil
}

//Validate checks that the numeric settings make sense.
func (c *Config) Validate() error {
	switch {
	case c.EncutFactor <= 0:
		return fmt.Errorf("encut_factor must be positive, got %g", c.EncutFactor)
	case c.KPPA <= 0:
		return fmt.Errorf("kppa must be positive, got %g", c.KPPA)
	case c.MDSteps < 0:
		return fmt.Errorf("md_steps must not be negative, got %d", c.MDSteps)
	}
	return nil
}

//Options returns the template options for the given ENCUT.
func (c *Config) Options(encut float64) inputset.Options {
	return inputset.Options{
		System:      c.System,
		Encut:       encut,
		LReal:       c.LReal,
		EdiffOpt:    c.Ediff.Opt,
		EdiffOther:  c.Ediff.Other,
		EdiffPhonon: c.Ediff.Phonon,
		EdiffG:      c.Ediff.EdiffG,
		EdiffGNEB:   c.Ediff.NEBGrad,
		MDSteps:     c.MDSteps,
	}
}

//Symbols returns the POTCAR symbol for each element.
func (c *Config) Symbols(elements []string) []string {
	ret := make([]string, len(elements))
	for i, e := range elements {
		ret[i] = e
		if s, ok := c.Potcar.Symbols[e]; ok {
			ret[i] = s
		}
	}
	return ret
}

//Save writes the configuration to path in YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
