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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/unityconv/cmd/unityconv/commands"
	"github.com/walteh/unityconv/cmd/unityconv/opts"
	"github.com/walteh/unityconv/pkg/config"
)

type rootFlags struct {
	configFile  string
	debug       bool
	format      string
	yamlVersion string
	atomic      bool
	backup      bool
	keepGoing   bool
	dryRun      bool
	jobs        int
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "unityconv [flags] [path...]",
		Short: "Rewrite Unity scene, prefab and material files for external loaders",
		Long: `unityconv rewrites Unity YAML assets (.unity, .prefab, .mat) in place.

Each object gets an id field holding its anchor and the "stripped" marker
is removed from document boundaries. With --format json the whole file is
re-encoded as a compact JSON array, one element per object.

Paths may be files or directories; directories are searched recursively.
With no paths the current directory is used.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			cfg, err := loadConfig(cmd.Context(), flags, cmd.Flags())
			if err != nil {
				return err
			}

			ro.Config = cfg
			ro.DryRun = flags.dryRun
			ro.Out = cmd.OutOrStdout()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunConvert(cmd.Context(), ro, args)
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewConvertCmd(ro),
		commands.NewIndexCmd(ro),
		newVersionCmd(),
	)

	return cmd
}

func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "config file path (default: discover .unityconv.{yaml,yml,json,hcl})")
	pf.BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	pf.StringVarP(&flags.format, "format", "f", "text", "output format: text or json")
	pf.StringVar(&flags.yamlVersion, "yaml-version", config.DefaultYAMLVersion, "version written to %YAML headers in json format")
	pf.BoolVar(&flags.atomic, "atomic", false, "write through a temp file and rename")
	pf.BoolVar(&flags.backup, "backup", false, "keep a .bak copy of every rewritten file")
	pf.BoolVar(&flags.keepGoing, "keep-going", false, "continue with the next file after a failure")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "print a diff instead of writing")
	pf.IntVarP(&flags.jobs, "jobs", "j", config.DefaultJobs, "number of files converted at once")
}

// loadConfig reads the config file, then applies any flag the user set
func loadConfig(ctx context.Context, flags *rootFlags, fs *pflag.FlagSet) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configFile != "" {
		cfg, err = config.Load(ctx, flags.configFile)
	} else {
		var wd string
		wd, err = os.Getwd()
		if err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
		cfg, err = config.Discover(ctx, wd)
	}
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if fs.Changed("format") {
		cfg.Format = flags.format
	}
	if fs.Changed("yaml-version") {
		cfg.YAMLVersion = flags.yamlVersion
	}
	if fs.Changed("atomic") {
		cfg.Atomic = flags.atomic
	}
	if fs.Changed("backup") {
		cfg.Backup = flags.backup
	}
	if fs.Changed("keep-going") {
		cfg.KeepGoing = flags.keepGoing
	}
	if fs.Changed("jobs") {
		cfg.Jobs = flags.jobs
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}
