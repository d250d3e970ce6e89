// Copyright (C) 2025 SAGE-X Project
//
// This file is part of vestauth-go.
//
// vestauth-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// vestauth-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with vestauth-go.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vestauth/vestauth-go/pkg/binary"
	"github.com/vestauth/vestauth-go/pkg/config"
	"github.com/vestauth/vestauth-go/pkg/logging"
)

// app is the state shared by every subcommand of one root command
type app struct {
	v      *viper.Viper
	cfg    config.Config
	logger zerolog.Logger
	out    io.Writer
	errOut io.Writer

	// extra options appended when the engine bridge is built
	binaryOptions []binary.Option
}

// Must panics on configuration errors that can only be programmer mistakes
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

func newRootCmd(out, errOut io.Writer) (*cobra.Command, *app) {
	a := &app{
		v:      config.New(),
		logger: zerolog.New(zerolog.ConsoleWriter{Out: errOut, NoColor: true}).With().Timestamp().Logger(),
		out:    out,
		errOut: errOut,
	}

	root := &cobra.Command{
		Use:           "vestauth-go",
		Short:         "vestauth-go signs and verifies agent requests through the vestauth engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.String("config", "", "path to a config file (yaml, json, or toml)")

	flags.String(config.KeyExecutable, binary.DefaultExecutable, "vestauth engine name or path")
	Must(a.v.BindPFlag(config.KeyExecutable, flags.Lookup(config.KeyExecutable)))

	flags.String(config.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	Must(a.v.BindPFlag(config.KeyLogLevel, flags.Lookup(config.KeyLogLevel)))

	flags.String(config.KeyLogFormat, logging.FormatConsole, "log format (console or json)")
	Must(a.v.BindPFlag(config.KeyLogFormat, flags.Lookup(config.KeyLogFormat)))

	root.AddCommand(
		newAgentCmd(a),
		newToolCmd(a),
		newPrimitivesCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)

	return root, a
}

// setup resolves configuration and the logger before any subcommand runs
func (a *app) setup(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg, err := config.Load(a.v, path)
	if err != nil {
		return err
	}

	logger, err := logging.Setup(a.errOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	return nil
}

// binary builds the engine bridge from the resolved configuration
func (a *app) binary(opts ...binary.Option) *binary.Binary {
	all := append(a.cfg.BinaryOptions(), binary.WithLogger(a.logger))
	all = append(all, a.binaryOptions...)
	all = append(all, opts...)
	return binary.New(all...)
}

// printResult writes result to the command output as indented JSON
func (a *app) printResult(result binary.Result) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
