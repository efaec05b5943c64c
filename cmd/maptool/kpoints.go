/*
 * kpoints.go, part of maptool.
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
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmera/maptool/kpoints"
	"github.com/rmera/maptool/poscar"
)

//NewKpointsCommand creates the kpoints command and its subcommands.
func NewKpointsCommand(opts *RootOptions) *cobra.Command {
	var structure, output string
	cmd := &cobra.Command{
		Use:   "kpoints",
		Short: "Generate KPOINTS files",
	}
	cmd.PersistentFlags().StringVarP(&structure, "poscar", "p", "POSCAR", "structure file")
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "KPOINTS", "output file")

	var kppa float64
	var dim int
	auto := &cobra.Command{
		Use:   "auto",
		Short: "Automatic grid for a k-point density",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := poscar.ReadFile(structure)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("kppa") {
				kppa = opts.cfg.KPPA
			}
			k, err := kpoints.Automatic(s, kppa, dim)
			if err != nil {
				return err
			}
			opts.logger.Info("automatic grid", zap.Ints("divisions", k.Divisions[:]), zap.Stringer("style", k.Style))
			return k.WriteFile(output)
		},
	}
	auto.Flags().Float64Var(&kppa, "kppa", 1000, "k-points per reciprocal atom (default from the configuration)")
	auto.Flags().IntVar(&dim, "dim", 3, "periodicity of the system: 0, 1, 2 or 3")

	var dk float64
	mesh := &cobra.Command{
		Use:   "mesh",
		Short: "Explicit mesh on the kx-ky plane, for band maps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := poscar.ReadFile(structure)
			if err != nil {
				return err
			}
			k, err := kpoints.PlaneMesh(s, dk)
			if err != nil {
				return err
			}
			opts.logger.Info("plane mesh", zap.Int("points", len(k.Points)))
			return k.WriteFile(output)
		},
	}
	mesh.Flags().Float64Var(&dk, "dk", 0.02, "largest spacing, in 2*Pi/Angstrom")

	var ibz, path string
	hse := &cobra.Command{
		Use:   "hse",
		Short: "Band path for hybrid functional runs",
		Long: `Write the k-points of an IBZKPT file followed by the points of a
line-mode band path, with zero weight, for band structures with HSE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			irr, err := kpoints.ReadFile(ibz)
			if err != nil {
				return err
			}
			p, err := kpoints.ReadFile(path)
			if err != nil {
				return err
			}
			k, err := kpoints.HSEBand(irr, p)
			if err != nil {
				return err
			}
			opts.logger.Info("HSE band path", zap.Int("points", len(k.Points)), zap.Int("weighted", len(irr.Points)))
			return k.WriteFile(output)
		},
	}
	hse.Flags().StringVar(&ibz, "ibz", "IBZKPT", "irreducible k-points of a previous run")
	hse.Flags().StringVar(&path, "path", "KPATH", "band path in line mode")

	cmd.AddCommand(auto, mesh, hse)
	return cmd
}
