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
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultFileNames are looked up, in order, by Discover
var DefaultFileNames = []string{
	".unityconv.yaml",
	".unityconv.yml",
	".unityconv.json",
	".unityconv.hcl",
}

// 🎯 Load loads the configuration from a file.
// The format is picked from the file extension.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data, path)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	cfg.location = path

	logger.Debug().Str("path", path).Stringer("config", cfg).Msg("configuration loaded")
	return cfg, nil
}

// 🔍 Discover loads the first default config file found in dir, or
// returns Default when there is none
func Discover(ctx context.Context, dir string) (*Config, error) {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Errorf("checking %s: %w", path, err)
		}
		return Load(ctx, path)
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file found, using defaults")
	return Default(), nil
}
