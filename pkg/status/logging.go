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
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	typeWidth   = 6  // Width for output format
	statusWidth = 10 // Width for outcome text
	idWidth     = 20 // Width for object ids
)

// 🎯 FormatFileOperation formats a file event as an aligned console line
func FormatFileOperation(ev FileEvent) string {
	var prefix string
	switch ev.Outcome {
	case OutcomeConverted:
		prefix = color.GreenString("✓")
	case OutcomePreview:
		prefix = color.YellowString("⟳")
	case OutcomeFailed:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, ev.Path)
	typePart := fmt.Sprintf("%-*s", typeWidth, ev.Format)
	statusPart := fmt.Sprintf("%-*s", statusWidth, ev.Outcome)

	line := fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		color.CyanString(typePart),
		statusPart,
	)
	if ev.Injected > 0 || ev.Stripped > 0 {
		line += color.HiBlackString(" +%d id, -%d stripped", ev.Injected, ev.Stripped)
	}
	return strings.TrimRight(line, " ")
}

// 🎯 FormatObject formats one indexed object as an aligned console line
func FormatObject(id, objectType string, document int) string {
	return fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", fileIndent),
		color.MagentaString("◆"),
		fmt.Sprintf("%-*s", idWidth, id),
		color.New(color.Bold).Sprintf("%s", objectType)+color.HiBlackString(" #%d", document),
	)
}
