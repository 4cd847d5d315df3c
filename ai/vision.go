package ai

import (
	"path/filepath"
	"strings"
)

// VisionPrompt builds the instruction sent with an image. The hint, when
// present, is user-supplied context about what the image shows.
func VisionPrompt(hint string) string {
	prompt := "Describe this image in detail. Mention the people, places, " +
		"objects and any visible text, and the overall mood or occasion."
	if hint != "" {
		prompt += " Context from the owner: " + hint
	}
	return prompt
}

// ImageMIMEType maps an image file extension to its MIME type. Unknown
// extensions fall back to image/jpeg, which every vision backend accepts.
func ImageMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
