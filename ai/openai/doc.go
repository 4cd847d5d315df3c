// Package openai implements the ai interfaces against the OpenAI API and
// OpenAI-compatible servers (Ollama, LocalAI, vLLM). Chat, vision and
// embeddings go through langchaingo; transcription uses the official
// openai-go client, which handles the multipart audio upload.
package openai
