/*
 * incar.go, part of maptool.
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
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmera/maptool/incar"
	"github.com/rmera/maptool/inputset"
	"github.com/rmera/maptool/poscar"
	"github.com/rmera/maptool/potcar"
	"github.com/rmera/maptool/internal/prompt"
)

//NewIncarCommand creates the incar command and its subcommands.
func NewIncarCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "incar",
		Short: "Generate, format, compare and merge INCAR files",
	}
	cmd.AddCommand(newIncarGenCommand(opts))
	cmd.AddCommand(newIncarFmtCommand(opts))
	cmd.AddCommand(newIncarDiffCommand(opts))
	cmd.AddCommand(newIncarMergeCommand(opts))
	return cmd
}

type incarGenOptions struct {
	poscar, potcar, choice, output string
}

func newIncarGenCommand(opts *RootOptions) *cobra.Command {
	g := &incarGenOptions{}
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate the INCAR for a kind of calculation",
		Long: `Generate the INCAR for a kind of calculation.

The choice is a letter for the calculation, followed by one letter for each
extra group of parameters. For example, "aai" is an optimization with spin
polarization and the DFT-D3 correction. Without --choice, it is asked for.
ENCUT is taken from the POTCAR when there is one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIncarGen(opts, g, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&g.poscar, "poscar", "p", "POSCAR", "structure file")
	cmd.Flags().StringVar(&g.potcar, "potcar", "POTCAR", "POTCAR file, for ENCUT")
	cmd.Flags().StringVar(&g.choice, "choice", "", "calculation and extras, as in \"aai\"")
	cmd.Flags().StringVarP(&g.output, "output", "o", "INCAR", "output file")
	return cmd
}

//choiceMenu writes the lists of calculations and extras.
func choiceMenu(w io.Writer) {
	var keys, desc []string
	for _, c := range inputset.Calcs() {
		keys = append(keys, string(c.Letter()))
		desc = append(desc, c.String())
	}
	prompt.Menu(w, "Calculations:", keys, desc)
	keys, desc = keys[:0], desc[:0]
	for _, e := range inputset.Extras() {
		keys = append(keys, string(e.Letter()))
		desc = append(desc, e.String())
	}
	prompt.Menu(w, "Extras, one letter each after the calculation:", keys, desc)
}

func runIncarGen(opts *RootOptions, g *incarGenOptions, out io.Writer) error {
	log := opts.logger
	s, err := poscar.ReadFile(g.poscar)
	if err != nil {
		return err
	}
	choice := g.choice
	if choice == "" {
		choiceMenu(out)
		choice, err = opts.ask("your choice?", func(s string) error {
			_, _, err := inputset.ParseChoice(s)
			return err
		})
		if err != nil {
			return err
		}
	}
	calc, extras, err := inputset.ParseChoice(choice)
	if err != nil {
		return err
	}
	var pseudos []*potcar.Pseudo
	if _, err := os.Stat(g.potcar); err != nil {
		log.Warn("POTCAR file not found, using the default ENMAX",
			zap.String("file", g.potcar), zap.Float64("enmax", inputset.DefaultENMAX))
	} else if pseudos, err = potcar.ReadFile(g.potcar); err != nil {
		return err
	}
	log.Debug("element order", zap.Strings("poscar", s.Species()), zap.Strings("potcar", potcar.Elements(pseudos)))
	encut, err := inputset.Encut(s.Species(), pseudos, opts.cfg.EncutFactor)
	if err != nil {
		return err
	}
	o := opts.cfg.Options(encut)
	for _, e := range extras {
		switch e {
		case inputset.Spin:
			o.Magmom = inputset.Magmoms(s, opts.cfg.Moments, opts.cfg.Magmom)
		case inputset.LDAU:
			o.LDAUL, o.LDAUU, o.LDAUJ = inputset.Hubbard(s, opts.cfg.U)
		}
	}
	blocks, err := inputset.Generate(calc, extras, o)
	if err != nil {
		return err
	}
	if err := incar.WriteText(g.output, inputset.Render(blocks)); err != nil {
		return err
	}
	log.Info("INCAR written", zap.String("file", g.output), zap.Stringer("calculation", calc),
		zap.Int("extras", len(extras)), zap.Float64("encut", encut))
	return nil
}

func newIncarFmtCommand(opts *RootOptions) *cobra.Command {
	var sorted, compact bool
	var output, comment string
	cmd := &cobra.Command{
		Use:   "fmt <INCAR>",
		Short: "Rewrite an INCAR in a normalized form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			I, err := incar.ReadFile(args[0])
			if err != nil {
				return err
			}
			text := I.Text(sorted, !compact, comment)
			if output == "" {
				_, err = io.WriteString(cmd.OutOrStdout(), text)
				return err
			}
			return incar.WriteText(output, text)
		},
	}
	cmd.Flags().BoolVar(&sorted, "sort", false, "sort the parameters by name")
	cmd.Flags().BoolVar(&compact, "compact", false, "do not align the values")
	cmd.Flags().StringVar(&comment, "comment", "", "comment line written first")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default standard output)")
	return cmd
}

func shown(v any) string {
	if v == nil {
		return "-"
	}
	I, err := incar.New(incar.P("X", v))
	if err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(strings.TrimPrefix(I.String(), "X = "), "\n")
}

func newIncarDiffCommand(opts *RootOptions) *cobra.Command {
	var same bool
	cmd := &cobra.Command{
		Use:   "diff <INCAR1> <INCAR2>",
		Short: "Show the parameters that differ between two INCAR files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := incar.ReadFile(args[0])
			if err != nil {
				return err
			}
			b, err := incar.ReadFile(args[1])
			if err != nil {
				return err
			}
			d := incar.Diff(a, b)
			w := cmd.OutOrStdout()
			keys := make([]string, 0, len(d.Different))
			for k := range d.Different {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				p := d.Different[k]
				fmt.Fprintf(w, "%-12s %-20s %s\n", k, shown(p.Left), shown(p.Right))
			}
			if same {
				keys = keys[:0]
				for k := range d.Same {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(w, "%-12s %s\n", k, shown(d.Same[k]))
				}
			}
			opts.logger.Debug("compared", zap.Int("different", len(d.Different)), zap.Int("same", len(d.Same)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&same, "same", false, "also list the parameters that are the same")
	return cmd
}

func newIncarMergeCommand(opts *RootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "merge <INCAR1> <INCAR2>",
		Short: "Merge two INCAR files that do not conflict",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := incar.ReadFile(args[0])
			if err != nil {
				return err
			}
			b, err := incar.ReadFile(args[1])
			if err != nil {
				return err
			}
			c, err := incar.Combine(a, b)
			if err != nil {
				return err
			}
			text := c.Text(false, true, "")
			if output == "" {
				_, err = io.WriteString(cmd.OutOrStdout(), text)
				return err
			}
			return incar.WriteText(output, text)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default standard output)")
	return cmd
}
