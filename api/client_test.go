package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointChat {
			t.Errorf("path = %q, want %q", r.URL.Path, EndpointChat)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("got %d messages, want 2", len(req.Messages))
		}
		if req.Messages[0].Role != RoleSystem {
			t.Errorf("first role = %q, want system", req.Messages[0].Role)
		}
		if req.Temperature != 0.5 || req.MaxTokens != 512 {
			t.Errorf("sampling params = %v/%d", req.Temperature, req.MaxTokens)
		}

		json.NewEncoder(w).Encode(ChatResponse{Reply: "¡Hola!", Model: "asistente-v1"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Chat(context.Background(), ChatRequest{
		Messages: []ChatMessage{
			{Role: RoleSystem, Content: "Eres el Asistente Académico UCACUE."},
			{Role: RoleUser, Content: "Hola"},
		},
		Temperature: 0.5,
		MaxTokens:   512,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Reply != "¡Hola!" {
		t.Errorf("reply = %q", resp.Reply)
	}
	if resp.Model != "asistente-v1" {
		t.Errorf("model = %q", resp.Model)
	}
}

func TestChatRequiresMessages(t *testing.T) {
	client := NewClient("http://localhost:1")
	_, err := client.Chat(context.Background(), ChatRequest{})
	if err == nil {
		t.Fatal("expected an error for an empty request")
	}
}

func TestChatServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Chat(context.Background(), ChatRequest{
		Messages: []ChatMessage{{Role: RoleUser, Content: "Hola"}},
	})
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("err = %v, want ErrRequestFailed", err)
	}
}

func TestChatBadResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Chat(context.Background(), ChatRequest{
		Messages: []ChatMessage{{Role: RoleUser, Content: "Hola"}},
	})
	if !errors.Is(err, ErrBadResponse) {
		t.Errorf("err = %v, want ErrBadResponse", err)
	}
}

func TestChatUnreachable(t *testing.T) {
	// Closed server: the address is valid but nothing listens anymore
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	_, err := client.Chat(context.Background(), ChatRequest{
		Messages: []ChatMessage{{Role: RoleUser, Content: "Hola"}},
	})
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("err = %v, want ErrUnreachable", err)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestAnalyzeImageUploadsMultipartFile(t *testing.T) {
	imgPath := writeTempFile(t, "apunte.png", "fake image bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointVision {
			t.Errorf("path = %q, want %q", r.URL.Path, EndpointVision)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing multipart field \"file\": %v", err)
		}
		defer file.Close()
		if header.Filename != "apunte.png" {
			t.Errorf("filename = %q, want apunte.png", header.Filename)
		}

		json.NewEncoder(w).Encode(VisionResponse{
			Model:  "vision-v1",
			Result: VisionResult{Description: "Apuntes de clase sobre grafos."},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.AnalyzeImage(context.Background(), imgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Result.Description != "Apuntes de clase sobre grafos." {
		t.Errorf("description = %q", resp.Result.Description)
	}
}

func TestAnalyzeImageMissingFile(t *testing.T) {
	client := NewClient("http://localhost:1")
	_, err := client.AnalyzeImage(context.Background(), "/no/such/file.png")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestTranscribe(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
		want string
	}{
		{"text field", map[string]string{"text": "hola mundo"}, "hola mundo"},
		{"transcription fallback", map[string]string{"transcription": "buenos días"}, "buenos días"},
		{"text wins over transcription", map[string]string{"text": "a", "transcription": "b"}, "a"},
		{"both absent", map[string]string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audioPath := writeTempFile(t, "voz.wav", "fake audio bytes")

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != EndpointTranscribe {
					t.Errorf("path = %q, want %q", r.URL.Path, EndpointTranscribe)
				}
				if _, _, err := r.FormFile("file"); err != nil {
					t.Fatalf("missing multipart field \"file\": %v", err)
				}
				json.NewEncoder(w).Encode(tt.body)
			}))
			defer server.Close()

			client := NewClient(server.URL)
			got, err := client.Transcribe(context.Background(), audioPath)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("transcript = %q, want %q", got, tt.want)
			}
		})
	}
}
