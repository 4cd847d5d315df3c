package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/poiesic/recollect/core"
)

// Column names chat exports commonly use.
var (
	csvSpeakerColumns   = exts("sender", "from", "author", "speaker", "user")
	csvTextColumns      = exts("text", "message", "content", "body")
	csvTimestampColumns = exts("timestamp", "date", "time", "datetime")
)

// ingestCSV handles .csv files. A header containing both a sender-like and
// a message-like column marks a chat export; other tables are flattened one
// row per line.
func (ing *Ingestor) ingestCSV(path string, meta map[string]string) ([]core.Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", meta[core.MetaSource], err)
	}
	if len(rows) < 2 {
		// Header only (or nothing): no data rows to ingest.
		return nil, nil
	}

	header := rows[0]
	speakerCol, textCol, timeCol := -1, -1, -1
	for i, name := range header {
		switch name = strings.ToLower(strings.TrimSpace(name)); {
		case csvSpeakerColumns[name] && speakerCol < 0:
			speakerCol = i
		case csvTextColumns[name] && textCol < 0:
			textCol = i
		case csvTimestampColumns[name] && timeCol < 0:
			timeCol = i
		}
	}

	if speakerCol >= 0 && textCol >= 0 {
		messages := make([]core.ChatMessage, 0, len(rows)-1)
		for _, row := range rows[1:] {
			msg := core.ChatMessage{
				Speaker: cell(row, speakerCol),
				Text:    cell(row, textCol),
			}
			if timeCol >= 0 {
				msg.Timestamp = cell(row, timeCol)
			}
			messages = append(messages, msg)
		}
		meta[core.MetaFormat] = core.FormatChatCSV
		return ChunkChatMessages(messages, ing.settings.ChunkSize, meta), nil
	}

	// Plain table: flatten each row to "key: value | key: value".
	lines := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		pairs := make([]string, 0, len(header))
		for i, name := range header {
			pairs = append(pairs, name+": "+cell(row, i))
		}
		lines = append(lines, strings.Join(pairs, " | "))
	}
	meta[core.MetaFormat] = core.FormatText
	return ChunkText(strings.Join(lines, "\n"), ing.settings.ChunkSize, ing.settings.ChunkOverlap, meta), nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
