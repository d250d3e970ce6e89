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

// Command vestauth-go drives the vestauth engine from the command line and
// can serve a small verification endpoint.
package main

import (
	"os"
)

func main() {
	root, a := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		a.logger.Error().Err(err).Msg("vestauth-go command encountered an error")
		os.Exit(1)
	}
}
