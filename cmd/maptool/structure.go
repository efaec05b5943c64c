/*
 * structure.go, part of maptool.
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
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmera/maptool/changer"
	"github.com/rmera/maptool/poscar"
	"github.com/rmera/maptool/strain"
)

//NewStrainCommand creates the strain command.
func NewStrainCommand(opts *RootOptions) *cobra.Command {
	var structure, dir string
	cmd := &cobra.Command{
		Use:   "strain [strain]",
		Short: "Write strained copies of a structure",
		Long: `Write strained copies of a structure, POSCAR_1, POSCAR_2 and so on, with an
index of the strains applied.

The strain is one value for isotropic strain, or three for the x, y and
z directions. Each value can be a range start:end:points. For instance,
"-0.02:0.02:5 0 0" gives 5 structures strained along x. If the strain is not
given, it is asked for.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := poscar.ReadFile(structure)
			if err != nil {
				return err
			}
			var in string
			if len(args) > 0 {
				in = args[0]
			} else {
				in, err = opts.ask("strain?", func(s string) error {
					_, err := strain.Parse(s)
					return err
				})
				if err != nil {
					return err
				}
			}
			strains, err := strain.Parse(in)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			for i, st := range strain.Series(s, strains) {
				if err := st.WriteFile(filepath.Join(dir, fmt.Sprintf("POSCAR_%d", i+1))); err != nil {
					return err
				}
			}
			f, err := os.Create(filepath.Join(dir, "strain_index.dat"))
			if err != nil {
				return err
			}
			defer f.Close()
			if err := strain.IndexTable(strains, f); err != nil {
				return err
			}
			opts.logger.Info("strained structures written", zap.Int("structures", len(strains)), zap.String("dir", dir))
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&structure, "poscar", "p", "POSCAR", "structure file")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	return cmd
}

//parseSupercell reads "2 2 1" or "2x2x1".
func parseSupercell(s string) ([3]int, error) {
	var ret [3]int
	f := strings.Fields(strings.ReplaceAll(strings.ToLower(s), "x", " "))
	if len(f) != 3 {
		return ret, fmt.Errorf("supercell %q must have three sizes", s)
	}
	for i, v := range f {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return ret, fmt.Errorf("invalid supercell size %q", v)
		}
		ret[i] = n
	}
	return ret, nil
}

func logOperations(opts *RootOptions, c *changer.Changer) {
	for _, op := range c.Operations() {
		opts.logger.Info("operation", zap.Stringer("applied", op))
	}
}

//NewDefectCommand creates the defect command.
func NewDefectCommand(opts *RootOptions) *cobra.Command {
	var structure, output, kind, element, supercell string
	var n int
	var seed int64
	cmd := &cobra.Command{
		Use:   "defect",
		Short: "Build a supercell with point defects on random sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := poscar.ReadFile(structure)
			if err != nil {
				return err
			}
			sc, err := parseSupercell(supercell)
			if err != nil {
				return err
			}
			c := changer.New(s, seed)
			d, err := c.ApplyDefect(n, changer.DefectKind(kind), sc, element)
			if err != nil {
				return err
			}
			logOperations(opts, c)
			return d.WriteFile(output)
		},
	}
	cmd.Flags().StringVarP(&structure, "poscar", "p", "POSCAR", "structure file")
	cmd.Flags().StringVarP(&output, "output", "o", "POSCAR_defect", "output file")
	cmd.Flags().StringVar(&kind, "kind", string(changer.Vacancy), "defect kind: vac or subs")
	cmd.Flags().StringVar(&element, "element", "", "substituting element")
	cmd.Flags().StringVar(&supercell, "supercell", "1 1 1", "supercell, as in \"2 2 1\"")
	cmd.Flags().IntVarP(&n, "number", "n", 1, "number of defects")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}

//NewScaleCommand creates the scale command.
func NewScaleCommand(opts *RootOptions) *cobra.Command {
	var structure, output string
	cmd := &cobra.Command{
		Use:   "scale <fraction>",
		Short: "Scale the volume of a structure by 1+fraction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid fraction %q: %w", args[0], err)
			}
			s, err := poscar.ReadFile(structure)
			if err != nil {
				return err
			}
			c := changer.New(s, 0)
			scaled, err := c.ScaleVolume(f)
			if err != nil {
				return err
			}
			logOperations(opts, c)
			return scaled.WriteFile(output)
		},
	}
	cmd.Flags().StringVarP(&structure, "poscar", "p", "POSCAR", "structure file")
	cmd.Flags().StringVarP(&output, "output", "o", "POSCAR_scaled", "output file")
	return cmd
}

//NewPerturbCommand creates the perturb command.
func NewPerturbCommand(opts *RootOptions) *cobra.Command {
	var structure, output string
	var lattice, positions float64
	var seed int64
	cmd := &cobra.Command{
		Use:   "perturb",
		Short: "Randomly perturb the lattice and the positions of a structure",
		Long: `Randomly perturb a structure: the lattice is deformed by a random symmetric
strain with components up to --lattice, then every site is moved in a random
direction by up to --positions Angstrom.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := poscar.ReadFile(structure)
			if err != nil {
				return err
			}
			if lattice > 0 {
				s, err = changer.New(s, seed).PerturbLattice(lattice)
				if err != nil {
					return err
				}
			}
			if positions > 0 {
				s, err = changer.New(s, seed+1).PerturbPositions(positions)
				if err != nil {
					return err
				}
			}
			opts.logger.Info("structure perturbed", zap.Float64("lattice", lattice), zap.Float64("positions", positions))
			return s.WriteFile(output)
		},
	}
	cmd.Flags().StringVarP(&structure, "poscar", "p", "POSCAR", "structure file")
	cmd.Flags().StringVarP(&output, "output", "o", "POSCAR_perturbed", "output file")
	cmd.Flags().Float64Var(&lattice, "lattice", 0.01, "largest strain component")
	cmd.Flags().Float64Var(&positions, "positions", 0.05, "largest displacement, in Angstrom")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}
