package rag

import (
	"fmt"
	"strings"

	"github.com/poiesic/recollect/core"
)

// FormatMemories renders retrieved memories as the context block of a
// prompt. Media memories are labelled so the model knows it is reading a
// description rather than the owner's own words.
func FormatMemories(memories []RetrievedMemory) string {
	if len(memories) == 0 {
		return "No relevant memories were found."
	}

	var b strings.Builder
	for i, memory := range memories {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "--- Memory %d (relevance %.2f) ---\n", i+1, memory.Score)

		switch memory.Metadata[core.MetaFormat] {
		case core.FormatPhoto:
			b.WriteString("[photo] ")
		case core.FormatVideo:
			b.WriteString("[video] ")
		}
		b.WriteString(memory.Text)

		if tags := memory.Metadata[core.MetaTags]; tags != "" {
			b.WriteString("\nTags: " + tags)
		}
		if source := memory.Metadata[core.MetaSource]; source != "" {
			b.WriteString("\nSource: " + source)
		}
	}
	return b.String()
}

// BuildPrompt assembles the user-turn prompt: the memory context block
// followed by the question.
func BuildPrompt(memories []RetrievedMemory, question string) string {
	return "Here are memories relevant to the question:\n\n" +
		FormatMemories(memories) +
		"\n\nQuestion: " + question
}
