// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/unityconv/pkg/rewrite"
	"github.com/walteh/unityconv/pkg/selection"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte, filename string) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

const (
	// DefaultYAMLVersion is written by the version normalization rule
	DefaultYAMLVersion = "1.1"
	// DefaultJobs keeps conversion strictly sequential
	DefaultJobs = 1
)

// SupportedYAMLVersions are the %YAML versions the json re-encoder can decode
var SupportedYAMLVersions = []string{DefaultYAMLVersion}

// 📚 Config represents the complete configuration
type Config struct {
	Format      string   `json:"format,omitempty" yaml:"format,omitempty" hcl:"format,optional"`                   // text or json
	YAMLVersion string   `json:"yaml_version,omitempty" yaml:"yaml_version,omitempty" hcl:"yaml_version,optional"` // version written to %YAML lines
	Extensions  []string `json:"extensions,omitempty" yaml:"extensions,omitempty" hcl:"extensions,optional"`       // searched inside directories
	Ignore      []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`                   // doublestar patterns to skip
	Atomic      bool     `json:"atomic,omitempty" yaml:"atomic,omitempty" hcl:"atomic,optional"`                   // write through temp file + rename
	Backup      bool     `json:"backup,omitempty" yaml:"backup,omitempty" hcl:"backup,optional"`                   // keep a .bak copy
	KeepGoing   bool     `json:"keep_going,omitempty" yaml:"keep_going,omitempty" hcl:"keep_going,optional"`       // continue after a failed file
	Jobs        int      `json:"jobs,omitempty" yaml:"jobs,omitempty" hcl:"jobs,optional"`                         // files converted at once

	location string
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	// defaults always validate
	_ = cfg.Validate()
	return cfg
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if _, err := rewrite.ParseMode(cfg.Format); err != nil {
		return errors.Errorf("format: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if cfg.Format == "" || cfg.Format == "yaml" {
		cfg.Format = "text"
	}

	cfg.YAMLVersion = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cfg.YAMLVersion), "%YAML"))
	if cfg.YAMLVersion == "" {
		cfg.YAMLVersion = DefaultYAMLVersion
	}
	if !slices.Contains(SupportedYAMLVersions, cfg.YAMLVersion) {
		return errors.Errorf("yaml_version %q is not supported (want one of %s)", cfg.YAMLVersion, strings.Join(SupportedYAMLVersions, ", "))
	}

	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), selection.DefaultExtensions...)
	}
	for i, ext := range cfg.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" || ext == "." {
			return errors.Errorf("extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Extensions[i] = ext
	}

	if err := selection.ValidatePatterns(cfg.Ignore); err != nil {
		return errors.Errorf("ignore: %w", err)
	}

	if cfg.Jobs < 0 {
		return errors.Errorf("jobs must be positive, got %d", cfg.Jobs)
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = DefaultJobs
	}

	return nil
}

// Mode returns the rewrite mode matching Format
func (cfg *Config) Mode() rewrite.Mode {
	mode, _ := rewrite.ParseMode(cfg.Format)
	return mode
}

// RewriteOptions returns the line rewrite rules for this config
func (cfg *Config) RewriteOptions() rewrite.Options {
	opts := rewrite.DefaultOptions(cfg.Mode())
	opts.Version = "%YAML " + cfg.YAMLVersion
	return opts
}

// SelectionOptions returns the file search options for this config
func (cfg *Config) SelectionOptions() selection.Options {
	return selection.Options{
		Extensions: cfg.Extensions,
		Ignore:     cfg.Ignore,
	}
}

// Location is the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("format=%s yaml=%s extensions=%s jobs=%d",
		cfg.Format, cfg.YAMLVersion, strings.Join(cfg.Extensions, ","), cfg.Jobs)
}
