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

// Package config reads vestauth-go settings from flags, environment
// variables (prefix VESTAUTH_), and an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/vestauth/vestauth-go/pkg/binary"
)

// Keys understood by Load. The environment variable is VESTAUTH_ followed by
// the key upper-cased with dashes replaced by underscores.
const (
	KeyExecutable = "executable"
	KeyLogLevel   = "log-level"
	KeyLogFormat  = "log-format"
	KeyAddr       = "addr"
)

// Config holds the settings shared by the library helpers and the CLI
type Config struct {
	// Executable is the engine name or path
	Executable string

	LogLevel  string
	LogFormat string

	// Addr is the listen address of `vestauth-go serve`
	Addr string
}

// New returns a viper instance with defaults and environment binding set up
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("vestauth")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the default value of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyExecutable, binary.DefaultExecutable)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyAddr, ":8080")
}

// Load reads the config file named by path, if any, and returns the resolved settings
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := Config{
		Executable: v.GetString(KeyExecutable),
		LogLevel:   v.GetString(KeyLogLevel),
		LogFormat:  v.GetString(KeyLogFormat),
		Addr:       v.GetString(KeyAddr),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that have no usable fallback
func (c Config) Validate() error {
	if strings.TrimSpace(c.Executable) == "" {
		return fmt.Errorf("%s cannot be empty", KeyExecutable)
	}
	return nil
}

// BinaryOptions returns the binary options this config implies
func (c Config) BinaryOptions() []binary.Option {
	return []binary.Option{binary.WithExecutable(c.Executable)}
}
