package status

import (
	"fmt"
)

// FileFormatter defines how file events and progress should be formatted
type FileFormatter interface {
	// FormatFileEvent formats the outcome of one file
	FormatFileEvent(ev FileEvent) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatSummary formats the end of run totals
	FormatSummary(s Summary) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileEvent formats a file outcome with emojis
func (f *DefaultFileFormatter) FormatFileEvent(ev FileEvent) string {
	switch ev.Outcome {
	case OutcomeConverted:
		return fmt.Sprintf("📝 Converted %s (%d ids, %d stripped)", ev.Path, ev.Injected, ev.Stripped)
	case OutcomePreview:
		return fmt.Sprintf("👀 Would convert %s (%d ids, %d stripped)", ev.Path, ev.Injected, ev.Stripped)
	case OutcomeFailed:
		return fmt.Sprintf("❌ Failed %s", ev.Path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", ev.Path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatSummary formats the totals of a run
func (f *DefaultFileFormatter) FormatSummary(s Summary) string {
	msg := fmt.Sprintf("%d converted, %d unchanged", s.Converted, s.Unchanged)
	if s.Previewed > 0 {
		msg += fmt.Sprintf(", %d previewed", s.Previewed)
	}
	if s.Failed > 0 {
		msg += fmt.Sprintf(", %d failed", s.Failed)
	}
	if skipped := s.Total - s.Converted - s.Unchanged - s.Previewed - s.Failed; skipped > 0 {
		msg += fmt.Sprintf(", %d not processed", skipped)
	}
	return msg
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
