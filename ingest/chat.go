package ingest

import (
	"regexp"
	"strings"

	"github.com/poiesic/recollect/core"
)

// WhatsApp export format: "1/2/24, 12:34 - Name: message"
var whatsappPattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4},?\s+\d{1,2}:\d{2}\s*(?:AM|PM|am|pm)?\s*-\s+(.+?):\s+(.+)`)

// Generic chat: "Name: message" or "[timestamp] Name: message". The speaker
// is capped at 40 characters to avoid false positives on prose containing
// colons.
var genericChatPattern = regexp.MustCompile(`^(?:\[([^\]]+)\]\s+)?([^:]{1,40}):\s+(.+)`)

// DetectChatLog tries to recognize implicit chat-log structure in free text.
// It returns the parsed messages when over half of all lines (blank lines
// included) match a known chat-line pattern, and nil otherwise.
//
// This is a best-effort heuristic classification, not an exact chat-log
// validation: prose containing colons can false-positive, and the 50%
// threshold is what downstream formatting depends on.
func DetectChatLog(text string) []core.ChatMessage {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 3 {
		return nil
	}

	var messages []core.ChatMessage
	matched := 0

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := whatsappPattern.FindStringSubmatch(line); m != nil {
			messages = append(messages, core.ChatMessage{Speaker: m[1], Text: m[2]})
			matched++
			continue
		}

		if m := genericChatPattern.FindStringSubmatch(line); m != nil {
			messages = append(messages, core.ChatMessage{
				Timestamp: m[1],
				Speaker:   m[2],
				Text:      m[3],
			})
			matched++
		}
	}

	if float64(matched) > float64(len(lines))*0.5 {
		return messages
	}
	return nil
}
