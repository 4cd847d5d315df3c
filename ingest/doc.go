// Package ingest converts heterogeneous personal-memory artifacts into
// normalized, boundary-respecting text chunks.
//
// The pipeline has four stages:
//   - content validation: magic-byte sniffing confirms the declared
//     extension matches the actual content (ValidateFileType)
//   - extraction: per-format handlers normalize raw content to plain text
//     or a structured message list
//   - chat detection: free text is heuristically classified as a chat log
//     (DetectChatLog)
//   - chunking: text is split into bounded, overlapping chunks (ChunkText,
//     ChunkChatMessages)
//
// The Ingestor orchestrates the stages for single files and directories.
// Directory ingestion isolates per-file failures: one corrupt file becomes
// an error entry, never an aborted batch.
package ingest
