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
	"fmt"

	"github.com/spf13/cobra"
	vestauth "github.com/vestauth/vestauth-go"
)

// set at build time with -ldflags "-X main.commit=... -X main.buildTime=..."
var (
	commit    = "unknown"
	buildTime = "unknown"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "get the version of this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := vestauth.GetVersionInfo()
			_, err := fmt.Fprintf(a.out, "version: %s\nengine: %s\ncommit: %s\nbuild time: %s\n",
				info.VestauthGoVersion, a.cfg.Executable, commit, buildTime,
			)
			return err
		},
	}
}
