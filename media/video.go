// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package media

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// probeResult mirrors the subset of ffprobe's JSON output we care about.
type probeResult struct {
	Streams []struct {
		NBFrames     string `json:"nb_frames"`
		AvgFrameRate string `json:"avg_frame_rate"`
		Duration     string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// countFrames returns the total frame count of the first video stream,
// falling back to duration x frame rate when the container does not record
// nb_frames (common for mp4/mkv without a full remux).
func (p *Pipeline) countFrames(ctx context.Context, path string) (int, error) {
	out, err := p.runner.Run(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=nb_frames,avg_frame_rate,duration",
		"-show_entries", "format=duration",
		"-of", "json",
		path)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", filepath.Base(path), err)
	}

	var probe probeResult
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, fmt.Errorf("probe %s: %w", filepath.Base(path), err)
	}
	if len(probe.Streams) == 0 {
		return 0, fmt.Errorf("probe %s: no video stream", filepath.Base(path))
	}
	stream := probe.Streams[0]

	if n, err := strconv.Atoi(stream.NBFrames); err == nil && n > 0 {
		return n, nil
	}

	duration, err := strconv.ParseFloat(stream.Duration, 64)
	if err != nil || duration <= 0 {
		duration, err = strconv.ParseFloat(probe.Format.Duration, 64)
		if err != nil || duration <= 0 {
			return 0, fmt.Errorf("probe %s: no frame count or duration", filepath.Base(path))
		}
	}
	fps := parseFrameRate(stream.AvgFrameRate)
	if fps <= 0 {
		return 0, fmt.Errorf("probe %s: no usable frame rate", filepath.Base(path))
	}
	return int(duration * fps), nil
}

// parseFrameRate parses ffprobe's rational "num/den" frame rate.
func parseFrameRate(rate string) float64 {
	num, den, ok := strings.Cut(rate, "/")
	if !ok {
		f, _ := strconv.ParseFloat(rate, 64)
		return f
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

// frameIndices picks up to max frame numbers spread evenly from the start
// of the video. For a 100-frame video and max 5 it yields 0, 20, 40, 60, 80.
func frameIndices(total, max int) []int {
	if total <= 0 || max <= 0 {
		return nil
	}
	if total <= max {
		indices := make([]int, total)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	step := float64(total) / float64(max)
	indices := make([]int, max)
	for i := range indices {
		indices[i] = int(math.Floor(step * float64(i)))
	}
	return indices
}

// extractFrames writes the selected frames of a video as JPEG files under
// dir and returns their paths in frame order.
func (p *Pipeline) extractFrames(ctx context.Context, path, dir string, indices []int) ([]string, error) {
	if len(indices) == 0 {
		return nil, nil
	}

	terms := make([]string, len(indices))
	for i, n := range indices {
		terms[i] = fmt.Sprintf("eq(n\\,%d)", n)
	}
	pattern := filepath.Join(dir, "frame_%03d.jpg")

	_, err := p.runner.Run(ctx, "ffmpeg",
		"-i", path,
		"-vf", "select='"+strings.Join(terms, "+")+"'",
		"-vsync", "vfr",
		"-q:v", "2",
		pattern)
	if err != nil {
		return nil, fmt.Errorf("extract frames from %s: %w", filepath.Base(path), err)
	}

	frames := make([]string, 0, len(indices))
	for i := range indices {
		frame := filepath.Join(dir, fmt.Sprintf("frame_%03d.jpg", i+1))
		if _, err := os.Stat(frame); err != nil {
			break
		}
		frames = append(frames, frame)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("extract frames from %s: ffmpeg produced no frames", filepath.Base(path))
	}
	return frames, nil
}

// extractAudio writes the audio track as 16kHz mono PCM WAV, the input
// format speech transcription models expect. It returns "" when the video
// has no audio track or the track is empty.
func (p *Pipeline) extractAudio(ctx context.Context, path, dir string) (string, error) {
	audio := filepath.Join(dir, "audio.wav")
	_, err := p.runner.Run(ctx, "ffmpeg",
		"-i", path,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		audio)
	if err != nil {
		// Videos without an audio stream make ffmpeg fail outright.
		p.logger.Debug("no audio track extracted", "path", path, "err", err)
		return "", nil
	}
	info, err := os.Stat(audio)
	if err != nil || info.Size() == 0 {
		return "", nil
	}
	return audio, nil
}
