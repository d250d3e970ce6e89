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

package vestauth

import "github.com/vestauth/vestauth-go/pkg/binary"

const (
	// Version is the current version of vestauth-go
	Version = "0.1.0"

	// DefaultExecutable is the vestauth engine run when none is configured
	DefaultExecutable = binary.DefaultExecutable
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	VestauthGoVersion string
	DefaultExecutable string
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		VestauthGoVersion: Version,
		DefaultExecutable: DefaultExecutable,
	}
}
