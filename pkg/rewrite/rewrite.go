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

package rewrite

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

const (
	// BoundaryMarker marks the start of a new Unity object document
	BoundaryMarker = "---"
	// TaggedBoundaryPrefix is a boundary carrying a Unity type tag
	TaggedBoundaryPrefix = "--- !u!"
	// StrippedMarker flags an object that lives in another asset
	StrippedMarker = "stripped"
	// IDMarker is what an injected id line contains
	IDMarker = "  id: "
	// IDKey is the key of the injected id field
	IDKey = "id"

	versionDirective = "%YAML"
	tagDirective     = "%TAG"

	// DefaultVersion is the version line written when normalizing
	DefaultVersion = "%YAML 1.1"
)

// 🎛️ Mode selects which flavour of boundary rewrite is applied
type Mode int

const (
	// ModeText keeps tags and anchors, only drops the stripped marker
	ModeText Mode = iota
	// ModeJSON reduces tagged boundaries so the text parses as plain YAML
	ModeJSON
)

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseMode converts a format name into a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "yaml":
		return ModeText, nil
	case "json":
		return ModeJSON, nil
	default:
		return ModeText, errors.Errorf("unknown format %q (want text or json)", s)
	}
}

// 🔧 Options controls which rules Rewrite applies
type Options struct {
	Mode Mode
	// NormalizeVersion rewrites every %YAML directive to Version
	NormalizeVersion bool
	// Version is the full directive line, e.g. "%YAML 1.1"
	Version string
	// DropTagDirectives removes %TAG lines
	DropTagDirectives bool
}

// DefaultOptions returns the rule set used by each output format.
// Only the JSON format touches directives.
func DefaultOptions(mode Mode) Options {
	return Options{
		Mode:              mode,
		NormalizeVersion:  mode == ModeJSON,
		Version:           DefaultVersion,
		DropTagDirectives: mode == ModeJSON,
	}
}

// 📊 Stats counts what a rewrite did
type Stats struct {
	Lines           int // input lines
	Boundaries      int // boundary lines seen
	Stripped        int // stripped markers removed
	Injected        int // id lines added
	Dropped         int // directive lines removed
	VersionRewrites int // %YAML lines normalized
}

// Changed reports whether the rewrite altered anything
func (s Stats) Changed() bool {
	return s.Stripped+s.Injected+s.Dropped+s.VersionRewrites > 0
}

// 📦 Result is the rewritten line sequence plus its stats
type Result struct {
	Lines []string
	Stats Stats
}

// String joins the rewritten lines back into file content
func (r Result) String() string {
	return JoinLines(r.Lines)
}

// 🔄 Rewrite applies the rewrite rules to lines and returns a new slice.
//
// lines must carry their own terminators (see SplitLines). The input is
// never modified: the id injection decision for position i looks at the
// original lines i-1 and i+1, not at their rewritten form.
func Rewrite(lines []string, opts Options) Result {
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}

	n := len(lines)
	out := make([]string, 0, n+n/4)
	stats := Stats{Lines: n}

	for i, original := range lines {
		line := original

		switch {
		case opts.NormalizeVersion && strings.HasPrefix(line, versionDirective):
			line = opts.Version + lineEnding(original)
			if line != original {
				stats.VersionRewrites++
			}
		case opts.DropTagDirectives && strings.HasPrefix(line, tagDirective):
			stats.Dropped++
			continue
		case isBoundary(line):
			stats.Boundaries++
			line = rewriteBoundary(line, opts.Mode, &stats)
		}

		out = append(out, line)

		if !shouldInject(lines, i) {
			continue
		}

		out = append(out, idLine(lines[i-1], original, lines[i+1], opts.Mode))
		stats.Injected++
	}

	return Result{Lines: out, Stats: stats}
}

// RewriteString is Rewrite over whole file content
func RewriteString(content string, opts Options) (string, Stats) {
	res := Rewrite(SplitLines(content), opts)
	return res.String(), res.Stats
}

// 🔍 AnchorOf returns the anchor named on a boundary line.
//
// The anchor is the first field after '&'. A line without '&' yields
// the whole trimmed line; callers get a value, never a panic.
func AnchorOf(line string) string {
	idx := strings.IndexByte(line, '&')
	if idx < 0 {
		return strings.TrimSpace(line)
	}
	fields := strings.Fields(line[idx+1:])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func isBoundary(line string) bool {
	return strings.Contains(line, BoundaryMarker)
}

func rewriteBoundary(line string, mode Mode, stats *Stats) string {
	switch mode {
	case ModeJSON:
		if !strings.HasPrefix(line, TaggedBoundaryPrefix) {
			return line
		}
		fields := strings.Fields(line)
		if len(fields) > 3 && fields[3] == StrippedMarker {
			stats.Stripped++
		}
		kept := fields[0]
		if len(fields) > 2 {
			kept += " " + fields[2]
		}
		return strings.TrimSpace(kept) + lineEnding(line)
	default:
		idx := strings.Index(line, StrippedMarker)
		if idx < 0 {
			return line
		}
		stats.Stripped++
		return strings.TrimRight(line[:idx], " \t\r\n") + lineEnding(line)
	}
}

// shouldInject decides on original lines only
func shouldInject(lines []string, i int) bool {
	if i < 1 || i >= len(lines)-1 {
		return false
	}
	if !isBoundary(lines[i-1]) {
		return false
	}
	// an empty body would push the id into the next object
	if isBoundary(lines[i]) {
		return false
	}
	return !hasIDField(lines[i+1])
}

func hasIDField(line string) bool {
	if strings.Contains(line, IDMarker) {
		return true
	}
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), IDKey+": ")
}

func idLine(boundary, body, next string, mode Mode) string {
	indent := "  "
	if mode == ModeJSON {
		indent = childIndent(body, next)
	}
	return indent + IDKey + ": " + AnchorOf(boundary) + lineEnding(body)
}

// childIndent places the id inside the mapping that body opens, lined up
// with next when next is a deeper child, or next to body when body is a
// plain key/value line
func childIndent(body, next string) string {
	lead := leadingSpaces(body)
	if !strings.HasSuffix(strings.TrimRight(body, " \t\r\n"), ":") {
		return lead
	}
	if strings.TrimSpace(next) != "" {
		if nextLead := leadingSpaces(next); len(nextLead) > len(lead) {
			return nextLead
		}
	}
	return lead + "  "
}

func leadingSpaces(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " "))]
}
