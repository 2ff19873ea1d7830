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

package operation

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/unityconv/pkg/reencode"
	"github.com/walteh/unityconv/pkg/rewrite"
	"github.com/walteh/unityconv/pkg/status"
)

// 📦 Converter rewrites Unity asset files in place
type Converter struct {
	opts  Options
	locks pathLocks
}

// 🏭 New creates a converter
func New(opts Options) *Converter {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if opts.Reporter == nil {
		opts.Reporter = status.Nop{}
	}
	if opts.Rewrite.Version == "" {
		opts.Rewrite.Version = rewrite.DefaultVersion
	}
	return &Converter{opts: opts}
}

// 🏃 ConvertFile converts a single file.
//
// In the json format without Atomic, the rewritten YAML is written
// before it is re-encoded, so a parse failure leaves the file holding
// that intermediate text.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*FileResult, error) {
	unlock := c.locks.lock(path)
	defer unlock()

	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()
	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, errors.Errorf("reading %s: is a directory", path)
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	res := rewrite.Rewrite(rewrite.SplitLines(string(original)), c.opts.Rewrite)
	intermediate := []byte(res.String())
	logger.Debug().
		Int("lines", res.Stats.Lines).
		Int("boundaries", res.Stats.Boundaries).
		Int("injected", res.Stats.Injected).
		Msg("rewrote lines")

	result := &FileResult{
		Path:   path,
		Mode:   c.opts.Rewrite.Mode,
		Stats:  res.Stats,
		Output: intermediate,
	}

	isJSON := c.opts.Rewrite.Mode == rewrite.ModeJSON
	writes := !c.opts.DryRun

	if writes && c.opts.Backup && (isJSON || !bytes.Equal(intermediate, original)) {
		if err := backupFile(path, original, info.Mode().Perm()); err != nil {
			return nil, errors.Errorf("backing up %s: %w", path, err)
		}
	}

	if isJSON {
		if writes && !c.opts.Atomic && !bytes.Equal(intermediate, original) {
			if err := writeFile(path, intermediate, info.Mode().Perm(), false); err != nil {
				return nil, errors.Errorf("writing intermediate %s: %w", path, err)
			}
		}

		encoded, err := reencode.Encode(ctx, intermediate)
		if err != nil {
			return nil, errors.Errorf("re-encoding %s: %w", path, err)
		}
		result.Output = encoded
	}

	result.Changed = !bytes.Equal(result.Output, original)

	switch {
	case c.opts.DryRun:
		if result.Changed {
			result.Diff = lineDiff(path, string(original), string(result.Output))
		}
	case result.Changed:
		if err := writeFile(path, result.Output, info.Mode().Perm(), c.opts.Atomic); err != nil {
			return nil, errors.Errorf("writing %s: %w", path, err)
		}
	}

	result.Duration = time.Since(start)
	logger.Debug().Bool("changed", result.Changed).Dur("duration", result.Duration).Msg("file done")
	return result, nil
}
