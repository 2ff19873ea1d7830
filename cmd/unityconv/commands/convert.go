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

package commands

import (
	"context"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/unityconv/cmd/unityconv/opts"
	"github.com/walteh/unityconv/pkg/operation"
	"github.com/walteh/unityconv/pkg/selection"
	"github.com/walteh/unityconv/pkg/status"
)

// NewConvertCmd creates the convert command
func NewConvertCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [path...]",
		Short: "Rewrite Unity files in place",
		Long: `Convert selects every Unity file under the given paths and rewrites it.
It will:
1. Remove the stripped marker from document boundaries
2. Add an id field holding the anchor to each object
3. With --format json, re-encode the file as a JSON array

Files are processed in order and the first failure stops the run unless
--keep-going is set. Files converted before a failure stay converted.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunConvert(cmd.Context(), ro, args)
		},
	}

	return cmd
}

// 🚀 RunConvert selects files from args and converts them
func RunConvert(ctx context.Context, ro *opts.RootOpts, args []string) error {
	paths, err := selection.Select(ctx, args, ro.Config.SelectionOptions())
	if err != nil {
		return errors.Errorf("selecting files: %w", err)
	}

	o := operation.OptionsFromConfig(ro.Config)
	o.DryRun = ro.DryRun
	o.Reporter = status.NewConsole(ro.Out, ro.DryRun).WithConfigSource(ro.Config.Location())

	if _, err := operation.New(o).Run(ctx, paths); err != nil {
		return errors.Errorf("converting: %w", err)
	}
	return nil
}
