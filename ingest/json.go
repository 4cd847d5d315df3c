package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/poiesic/recollect/core"
)

// Field names chat exports commonly use, in lookup order.
var (
	jsonSpeakerFields   = []string{"sender", "from", "speaker"}
	jsonTextFields      = []string{"text", "message", "content"}
	jsonTimestampFields = []string{"timestamp", "date"}
)

// ingestJSON handles .json files. An array where every record carries a
// text-like field is treated as an exported conversation; anything else is
// pretty-printed and chunked as plain text.
func (ing *Ingestor) ingestJSON(path string, meta map[string]string) ([]core.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", meta[core.MetaSource], err)
	}

	if messages, ok := messagesFromJSON(parsed); ok {
		meta[core.MetaFormat] = core.FormatChatJSON
		return ChunkChatMessages(messages, ing.settings.ChunkSize, meta), nil
	}

	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return nil, err
	}
	meta[core.MetaFormat] = core.FormatText
	return ChunkText(string(pretty), ing.settings.ChunkSize, ing.settings.ChunkOverlap, meta), nil
}

// messagesFromJSON maps a list of records onto chat messages. It succeeds
// only when the value is a non-empty array whose every element is an object
// with a text-like field.
func messagesFromJSON(parsed any) ([]core.ChatMessage, bool) {
	items, ok := parsed.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}

	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		if _, ok := firstField(record, jsonTextFields); !ok {
			return nil, false
		}
		records = append(records, record)
	}

	messages := make([]core.ChatMessage, 0, len(records))
	for _, record := range records {
		speaker, ok := firstField(record, jsonSpeakerFields)
		if !ok {
			speaker = "Unknown"
		}
		text, _ := firstField(record, jsonTextFields)
		timestamp, _ := firstField(record, jsonTimestampFields)
		messages = append(messages, core.ChatMessage{
			Speaker:   speaker,
			Text:      text,
			Timestamp: timestamp,
		})
	}
	return messages, true
}

// firstField returns the string form of the first present field.
func firstField(record map[string]any, fields []string) (string, bool) {
	for _, field := range fields {
		value, ok := record[field]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			return v, true
		case nil:
			return "", true
		default:
			return fmt.Sprint(v), true
		}
	}
	return "", false
}
