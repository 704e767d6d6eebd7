// Package testutil provides mocks for testing the model layer without a
// live backend.
package testutil

import (
	"context"

	"aula/api"
)

// MockBackend implements model.Backend with configurable behavior.
// Set the *Func fields to control responses; unset fields use defaults.
type MockBackend struct {
	ChatFunc         func(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
	AnalyzeImageFunc func(ctx context.Context, path string) (*api.VisionResponse, error)
	TranscribeFunc   func(ctx context.Context, path string) (string, error)

	// Recorded calls, for asserting what was (or was not) sent
	ChatRequests     []api.ChatRequest
	AnalyzedImages   []string
	TranscribedFiles []string
}

func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

func (m *MockBackend) Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	m.ChatRequests = append(m.ChatRequests, req)
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	return &api.ChatResponse{Reply: "respuesta de prueba", Model: "mock"}, nil
}

func (m *MockBackend) AnalyzeImage(ctx context.Context, path string) (*api.VisionResponse, error) {
	m.AnalyzedImages = append(m.AnalyzedImages, path)
	if m.AnalyzeImageFunc != nil {
		return m.AnalyzeImageFunc(ctx, path)
	}
	return &api.VisionResponse{
		Model:  "mock",
		Result: api.VisionResult{Description: "una imagen de prueba"},
	}, nil
}

func (m *MockBackend) Transcribe(ctx context.Context, path string) (string, error) {
	m.TranscribedFiles = append(m.TranscribedFiles, path)
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, path)
	}
	return "transcripción de prueba", nil
}
