// Package media converts photos and videos into text suitable for memory
// storage. Images are described by a vision model. Videos are taken apart
// with ffmpeg: a handful of frames sampled evenly across the runtime are
// described individually, the audio track is resampled to 16kHz mono PCM
// and transcribed, and the pieces are joined into one narrative.
//
// External tools (ffmpeg, ffprobe) run through the CommandRunner interface
// so the decomposition logic stays testable without them installed.
package media
