package status

import (
	"fmt"
)

// FileFormatter defines how file writes and progress should be formatted
type FileFormatter interface {
	// FormatFileOperation formats the result of a single file write
	FormatFileOperation(info FileInfo) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file write with emojis
func (f *DefaultFileFormatter) FormatFileOperation(info FileInfo) string {
	var suffix string
	switch {
	case info.Raw:
		suffix = " (raw)"
	case info.Replacements == 1:
		suffix = " (1 replacement)"
	case info.Replacements > 1:
		suffix = fmt.Sprintf(" (%d replacements)", info.Replacements)
	}

	switch info.Status {
	case StatusNew:
		return fmt.Sprintf("✨ Created %s%s", info.Path, suffix)
	case StatusModified:
		return fmt.Sprintf("📝 Overwrote %s%s", info.Path, suffix)
	case StatusUnchanged:
		return fmt.Sprintf("👍 Unchanged %s", info.Path)
	default:
		return fmt.Sprintf("❓ %s", info.Path)
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

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
