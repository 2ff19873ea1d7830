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
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/unityconv/pkg/status"
)

// 🏃 Run converts paths in order and reports each one.
//
// Without KeepGoing the first failure stops the run and is returned;
// files converted before it stay converted. With KeepGoing every file
// is attempted and the failures are joined into the returned error.
func (c *Converter) Run(ctx context.Context, paths []string) (status.Summary, error) {
	start := time.Now()
	summary := status.Summary{Total: len(paths)}

	c.opts.Reporter.Start(ctx, len(paths))

	var err error
	if c.opts.Jobs > 1 && len(paths) > 1 {
		err = c.runAsync(ctx, paths, &summary)
	} else {
		err = c.runSync(ctx, paths, &summary)
	}

	summary.Duration = time.Since(start)
	c.opts.Reporter.Finish(ctx, summary)
	return summary, err
}

// 🔄 runSync converts one file after another
func (c *Converter) runSync(ctx context.Context, paths []string, summary *status.Summary) error {
	var failed []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("conversion cancelled: %w", err)
		}

		if err := c.process(ctx, path, summary, nil); err != nil {
			if !c.opts.KeepGoing {
				return err
			}
			failed = append(failed, err)
		}
	}
	return errors.Join(failed...)
}

// ⚡ runAsync converts up to Jobs files at once
func (c *Converter) runAsync(ctx context.Context, paths []string, summary *status.Summary) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Jobs)

	var (
		mu     sync.Mutex
		failed []error
	)

	for _, path := range paths {
		if gctx.Err() != nil {
			break
		}
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return nil
			}
			err := c.process(gctx, path, summary, &mu)
			if err == nil {
				return nil
			}
			if !c.opts.KeepGoing {
				return err
			}
			mu.Lock()
			failed = append(failed, err)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Errorf("conversion cancelled: %w", err)
	}
	return errors.Join(failed...)
}

// process converts path and reports it; mu guards summary when not nil
func (c *Converter) process(ctx context.Context, path string, summary *status.Summary, mu *sync.Mutex) error {
	res, err := c.ConvertFile(ctx, path)

	var ev status.FileEvent
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", path).Msg("conversion failed")
		ev = status.FileEvent{
			Path:    path,
			Format:  c.opts.Rewrite.Mode.String(),
			Outcome: status.OutcomeFailed,
			Err:     err,
		}
	} else {
		ev = res.event(c.opts.DryRun)
	}

	if mu != nil {
		mu.Lock()
		defer mu.Unlock()
	}
	summary.Add(ev)
	c.opts.Reporter.File(ctx, ev)

	return err
}
