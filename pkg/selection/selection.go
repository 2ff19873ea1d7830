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

// Package selection turns command line arguments into the files to convert.
package selection

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultExtensions are the Unity asset types that carry YAML objects
var DefaultExtensions = []string{".unity", ".prefab", ".mat"}

// 🔧 Options tunes how directories are searched
type Options struct {
	// Extensions searched for inside directories, with the leading dot
	Extensions []string
	// Ignore holds doublestar patterns for files to leave alone
	Ignore []string
}

// 🔍 Select expands args into an ordered list of files.
//
// No args means the current directory. A file argument is returned as
// given, even when its extension is not listed. A directory argument is
// searched recursively. Paths reachable through more than one argument
// are returned once per argument.
func Select(ctx context.Context, args []string, opts Options) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if len(args) == 0 {
		args = []string{"."}
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Errorf("reading %s: %w", arg, err)
		}

		if !info.IsDir() {
			if ignored(opts.Ignore, filepath.ToSlash(arg)) {
				logger.Debug().Str("path", arg).Msg("file ignored by pattern")
				continue
			}
			files = append(files, arg)
			continue
		}

		found, err := searchDir(ctx, arg, opts)
		if err != nil {
			return nil, errors.Errorf("searching %s: %w", arg, err)
		}
		logger.Debug().Str("dir", arg).Int("files", len(found)).Msg("searched directory")
		files = append(files, found...)
	}

	return files, nil
}

func searchDir(ctx context.Context, dir string, opts Options) ([]string, error) {
	fsys := os.DirFS(dir)

	var out []string
	for _, ext := range opts.Extensions {
		pattern := "**/*" + normalizeExt(ext)
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("globbing %s: %w", pattern, err)
		}
		sort.Strings(matches)

		for _, rel := range matches {
			full := filepath.Join(dir, filepath.FromSlash(rel))
			if ignored(opts.Ignore, rel) || ignored(opts.Ignore, filepath.ToSlash(full)) {
				zerolog.Ctx(ctx).Debug().Str("path", full).Msg("file ignored by pattern")
				continue
			}
			out = append(out, full)
		}
	}
	return out, nil
}

func normalizeExt(ext string) string {
	if strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

func ignored(patterns []string, path string) bool {
	for _, pattern := range patterns {
		// patterns are validated by the config loader
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// ValidatePatterns reports the first malformed ignore pattern
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	return nil
}
