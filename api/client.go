// Package api is the HTTP client for the academic assistant backend.
// It covers the three remote operations AULA uses: chat completion,
// vision analysis and audio transcription.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"aula/config"
)

// Default transport configuration
const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 15 * time.Second
)

// Sentinel errors for backend operations
var (
	// ErrUnreachable is returned when the backend cannot be reached
	ErrUnreachable = errors.New("backend unreachable")
	// ErrRequestFailed is returned when the backend answers with a non-2xx status
	ErrRequestFailed = errors.New("backend request failed")
	// ErrBadResponse is returned when a response body cannot be decoded
	ErrBadResponse = errors.New("backend response invalid")
)

// Client talks to the assistant backend. One instance is shared by all
// three operation adapters; they differ only in path and payload shape.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL. An empty URL falls
// back to the local development backend.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// postJSON sends body as JSON to path and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// postFile uploads the file at filePath to path as a multipart form with
// the single field "file", and decodes the response into out.
func (c *Client) postFile(ctx context.Context, path, filePath string, out any) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[api] %s %s: %v", req.Method, req.URL.Path, err)
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[api] %s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
		}
		return fmt.Errorf("%w: unexpected status %d", ErrRequestFailed, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[api] %s %s: decode: %v", req.Method, req.URL.Path, err)
		}
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return nil
}
