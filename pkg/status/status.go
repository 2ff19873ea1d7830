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

package status

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📊 Outcome is what happened to one file
type Outcome int

const (
	OutcomeUnknown   Outcome = iota
	OutcomeConverted         // file rewritten
	OutcomeUnchanged         // rewrite produced identical bytes
	OutcomePreview           // dry run, nothing written
	OutcomeFailed            // conversion stopped with an error
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeConverted:
		return "converted"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomePreview:
		return "preview"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileEvent describes one processed file
type FileEvent struct {
	Path      string
	Format    string // text or json
	Outcome   Outcome
	Documents int // boundary lines seen
	Injected  int // id lines added
	Stripped  int // stripped markers removed
	Diff      string
	Err       error
	Duration  time.Duration
}

// 📈 Summary totals a run
type Summary struct {
	Total     int
	Converted int
	Unchanged int
	Previewed int
	Failed    int
	Duration  time.Duration
}

// Add counts ev into the summary
func (s *Summary) Add(ev FileEvent) {
	switch ev.Outcome {
	case OutcomeConverted:
		s.Converted++
	case OutcomeUnchanged:
		s.Unchanged++
	case OutcomePreview:
		s.Previewed++
	case OutcomeFailed:
		s.Failed++
	}
}

// 📢 Reporter receives progress while files are converted. Reporting has
// no effect on the files themselves.
type Reporter interface {
	Start(ctx context.Context, total int)
	File(ctx context.Context, ev FileEvent)
	Finish(ctx context.Context, summary Summary)
}

// Nop discards every report
type Nop struct{}

func (Nop) Start(context.Context, int) {}

func (Nop) File(context.Context, FileEvent) {}

func (Nop) Finish(context.Context, Summary) {}

// 🖥️ Console prints progress for humans and mirrors it to zerolog
type Console struct {
	out       io.Writer
	formatter FileFormatter
	showDiff  bool
	source    string

	mu        sync.Mutex
	total     int
	processed int
}

// 🏭 NewConsole creates a console reporter writing to out
func NewConsole(out io.Writer, showDiff bool) *Console {
	return &Console{
		out:       out,
		formatter: NewDefaultFileFormatter(),
		showDiff:  showDiff,
	}
}

// WithConfigSource names the config file announced at Start; empty means defaults
func (c *Console) WithConfigSource(path string) *Console {
	c.source = path
	return c
}

func (c *Console) Start(ctx context.Context, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total = total
	c.processed = 0

	if c.source != "" {
		pterm.Info.WithWriter(c.out).WithPrefix(pterm.Prefix{Text: "⚙️", Style: pterm.Info.Prefix.Style}).
			Printfln("using config %s", c.source)
	}
	pterm.Info.WithWriter(c.out).WithPrefix(pterm.Prefix{Text: "📦", Style: pterm.Info.Prefix.Style}).
		Printfln("converting %d file(s)", total)
	zerolog.Ctx(ctx).Info().Int("total", total).Msg(c.formatter.FormatProgress(0, total))
}

func (c *Console) File(ctx context.Context, ev FileEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.processed++
	fmt.Fprintln(c.out, FormatFileOperation(ev))

	if ev.Err != nil {
		fmt.Fprintln(c.out, strings.Repeat(" ", fileIndent+2)+c.formatter.FormatError(ev.Err))
	}
	if c.showDiff && ev.Diff != "" {
		fmt.Fprint(c.out, ev.Diff)
	}

	logger := zerolog.Ctx(ctx)
	entry := logger.Info()
	if ev.Err != nil {
		entry = logger.Error().Err(ev.Err)
	}
	entry.
		Str("path", ev.Path).
		Str("format", ev.Format).
		Str("outcome", ev.Outcome.String()).
		Int("documents", ev.Documents).
		Int("injected", ev.Injected).
		Int("stripped", ev.Stripped).
		Dur("duration", ev.Duration).
		Msg(c.formatter.FormatFileEvent(ev))

	logger.Debug().
		Int("processed", c.processed).
		Int("total", c.total).
		Msg(c.formatter.FormatProgress(c.processed, c.total))
}

func (c *Console) Finish(ctx context.Context, summary Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := c.formatter.FormatSummary(summary)
	if summary.Failed > 0 {
		pterm.Warning.WithWriter(c.out).Println(msg)
	} else {
		pterm.Success.WithWriter(c.out).Println(msg)
	}

	zerolog.Ctx(ctx).Info().
		Int("total", summary.Total).
		Int("converted", summary.Converted).
		Int("unchanged", summary.Unchanged).
		Int("failed", summary.Failed).
		Dur("duration", summary.Duration).
		Msg(msg)
}
