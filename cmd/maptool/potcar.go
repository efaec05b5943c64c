/*
 * potcar.go, part of maptool.
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

	"github.com/rmera/maptool/poscar"
	"github.com/rmera/maptool/potcar"
)

//NewPotcarCommand creates the potcar command.
func NewPotcarCommand(opts *RootOptions) *cobra.Command {
	var structure, output, dir, functional string
	cmd := &cobra.Command{
		Use:   "potcar [symbol...]",
		Short: "Assemble the POTCAR for a structure",
		Long: `Assemble the POTCAR for the species of a structure, in order, from the
pseudopotential library. The symbol for each element is taken from the
configuration, or given as arguments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			symbols := args
			if len(symbols) == 0 {
				s, err := poscar.ReadFile(structure)
				if err != nil {
					return err
				}
				symbols = opts.cfg.Symbols(s.Species())
			}
			if dir == "" {
				dir = opts.cfg.Potcar.Dir
			}
			if functional == "" {
				functional = opts.cfg.Potcar.Functional
			}
			if err := potcar.AssembleFile(dir, functional, symbols, output); err != nil {
				return err
			}
			opts.logger.Info("POTCAR written", zap.String("file", output), zap.Strings("symbols", symbols),
				zap.String("functional", functional))
			return nil
		},
	}
	cmd.Flags().StringVarP(&structure, "poscar", "p", "POSCAR", "structure file")
	cmd.Flags().StringVarP(&output, "output", "o", "POTCAR", "output file")
	cmd.Flags().StringVar(&dir, "dir", "", "pseudopotential library (default from the configuration)")
	cmd.Flags().StringVar(&functional, "functional", "", "functional (default from the configuration)")
	return cmd
}
