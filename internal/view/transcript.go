// Package view projects stored conversations into the shape the widget renders.
package view

import (
	"strings"

	"github.com/lumessence/concierge/internal/model/chat"
)

// Display classes used by the widget's stylesheet.
const (
	ClassAssistant = "ai"
	ClassUser      = "user"
)

// Entry is one transcript bubble. Lines are the message content split on
// newline boundaries; the widget places a line break between segments.
type Entry struct {
	Class string   `json:"class"`
	Lines []string `json:"lines"`
}

// Render maps every non-system message to a transcript entry, preserving order.
func Render(messages []chat.Message) []Entry {
	entries := make([]Entry, 0, len(messages))
	for _, msg := range messages {
		if entry, ok := EntryFor(msg); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// EntryFor projects a single message. System messages carry no entry.
func EntryFor(msg chat.Message) (Entry, bool) {
	switch msg.Role {
	case chat.RoleAssistant:
		return Entry{Class: ClassAssistant, Lines: strings.Split(msg.Content, "\n")}, true
	case chat.RoleUser:
		return Entry{Class: ClassUser, Lines: strings.Split(msg.Content, "\n")}, true
	default:
		return Entry{}, false
	}
}
