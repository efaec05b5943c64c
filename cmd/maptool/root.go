/*
 * root.go, part of maptool.
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
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rmera/maptool/internal/config"
	"github.com/rmera/maptool/internal/prompt"
)

//RootOptions holds the global flags and the state shared by all commands.
type RootOptions struct {
	Verbose    bool
	ConfigFile string

	cfg    *config.Config
	logger *zap.Logger
	asker  *prompt.Prompter
	closer func() error
}

//NewRootCommand creates the root command of maptool.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maptool",
		Short: "maptool - VASP input preparation",
		Long: `maptool builds and edits the input files of VASP calculations.

It writes INCAR files for the usual kinds of calculation, KPOINTS grids
and paths, POTCAR files from a pseudopotential library, and modified
structures (strained, scaled, perturbed or with point defects).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.close()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "maptool.yaml", "configuration file")

	cmd.AddCommand(NewIncarCommand(opts))
	cmd.AddCommand(NewKpointsCommand(opts))
	cmd.AddCommand(NewPotcarCommand(opts))
	cmd.AddCommand(NewStrainCommand(opts))
	cmd.AddCommand(NewDefectCommand(opts))
	cmd.AddCommand(NewScaleCommand(opts))
	cmd.AddCommand(NewPerturbCommand(opts))

	return cmd
}

//init builds the logger and loads the configuration. Things already set,
//as in tests, are kept.
func (o *RootOptions) init() error {
	if o.logger == nil {
		zcfg := zap.NewProductionConfig()
		if o.Verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		o.logger = logger.With(zap.String("run", uuid.NewString()))
	}
	if o.cfg == nil {
		cfg, err := config.Load(o.ConfigFile)
		if err != nil {
			return err
		}
		o.cfg = cfg
		o.logger.Debug("configuration loaded", zap.String("file", o.ConfigFile))
	}
	return nil
}

func (o *RootOptions) close() {
	if o.closer != nil {
		_ = o.closer()
		o.closer = nil
	}
	if o.logger != nil {
		_ = o.logger.Sync()
	}
}

//ask asks a question on the console, opening it the first time.
func (o *RootOptions) ask(question string, valid func(string) error) (string, error) {
	if o.asker == nil {
		p, closer, err := prompt.Console()
		if err != nil {
			return "", err
		}
		o.asker, o.closer = p, closer
	}
	ans, err := o.asker.Ask(question, valid)
	if errors.Is(err, prompt.ErrQuit) {
		o.logger.Info("quit requested")
	}
	return ans, err
}
