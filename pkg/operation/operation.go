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
	"time"

	"github.com/walteh/unityconv/pkg/config"
	"github.com/walteh/unityconv/pkg/rewrite"
	"github.com/walteh/unityconv/pkg/status"
)

// 🔧 Options contains configuration for the converter
type Options struct {
	// Rewrite holds the line rules; its Mode picks the output format
	Rewrite rewrite.Options
	// Atomic writes through a temp file and rename
	Atomic bool
	// Backup keeps <file>.bak before the first overwrite
	Backup bool
	// DryRun writes nothing and records a diff
	DryRun bool
	// KeepGoing continues after a failed file
	KeepGoing bool
	// Jobs is the number of files converted at once, 1 when unset
	Jobs int
	// Reporter receives progress, status.Nop when unset
	Reporter status.Reporter
}

// OptionsFromConfig maps a loaded config onto converter options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Rewrite:   cfg.RewriteOptions(),
		Atomic:    cfg.Atomic,
		Backup:    cfg.Backup,
		KeepGoing: cfg.KeepGoing,
		Jobs:      cfg.Jobs,
	}
}

// 📄 FileResult is the outcome of converting one file
type FileResult struct {
	Path     string
	Mode     rewrite.Mode
	Stats    rewrite.Stats
	Changed  bool   // final bytes differ from the input
	Output   []byte // final bytes, written unless DryRun
	Diff     string // only set for DryRun
	Duration time.Duration
}

// event turns a result into a status event
func (r *FileResult) event(dryRun bool) status.FileEvent {
	ev := status.FileEvent{
		Path:      r.Path,
		Format:    r.Mode.String(),
		Documents: r.Stats.Boundaries,
		Injected:  r.Stats.Injected,
		Stripped:  r.Stats.Stripped,
		Diff:      r.Diff,
		Duration:  r.Duration,
		Outcome:   status.OutcomeUnchanged,
	}
	switch {
	case r.Changed && dryRun:
		ev.Outcome = status.OutcomePreview
	case r.Changed:
		ev.Outcome = status.OutcomeConverted
	}
	return ev
}
