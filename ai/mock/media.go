package mock

import (
	"context"
	"path/filepath"
)

// MockVisionAnalyzer is a test double for ai.VisionAnalyzer (and for the
// media package's identical interface).
type MockVisionAnalyzer struct {
	// DescribeFunc is called by Describe if set.
	// If nil, returns a deterministic description naming the file.
	DescribeFunc func(ctx context.Context, imagePath, hint string) (string, error)

	callCount int
}

// NewMockVisionAnalyzer creates a mock vision analyzer.
// Note: Returns concrete type to allow test assertions.
func NewMockVisionAnalyzer() *MockVisionAnalyzer {
	return &MockVisionAnalyzer{}
}

// Describe returns a deterministic description or delegates to DescribeFunc.
func (m *MockVisionAnalyzer) Describe(ctx context.Context, imagePath, hint string) (string, error) {
	m.callCount++

	if m.DescribeFunc != nil {
		return m.DescribeFunc(ctx, imagePath, hint)
	}
	return "A description of " + filepath.Base(imagePath), nil
}

// CallCount returns the number of times Describe was called.
func (m *MockVisionAnalyzer) CallCount() int {
	return m.callCount
}

// MockTranscriber is a test double for ai.Transcriber.
type MockTranscriber struct {
	// TranscribeFunc is called by Transcribe if set.
	// If nil, returns a deterministic transcript naming the file.
	TranscribeFunc func(ctx context.Context, audioPath string) (string, error)

	callCount int
}

// NewMockTranscriber creates a mock transcriber.
// Note: Returns concrete type to allow test assertions.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// Transcribe returns a deterministic transcript or delegates to
// TranscribeFunc.
func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	m.callCount++

	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audioPath)
	}
	return "A transcript of " + filepath.Base(audioPath), nil
}

// CallCount returns the number of times Transcribe was called.
func (m *MockTranscriber) CallCount() int {
	return m.callCount
}
