package api

import "context"

// VisionResult is the analysis the backend produced for an image. Only
// Description is consumed by AULA today; the remaining fields mirror the
// backend contract so future callers can use them without an API change.
type VisionResult struct {
	Description string         `json:"description,omitempty"`
	Objects     []string       `json:"objects,omitempty"`
	OCRText     string         `json:"ocr_text,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Safety      map[string]any `json:"safety,omitempty"`
	Raw         string         `json:"raw,omitempty"`
}

// VisionResponse is the backend's reply to an image upload.
type VisionResponse struct {
	Model  string       `json:"model"`
	Result VisionResult `json:"result"`
}

// AnalyzeImage uploads the image at path and returns the backend's analysis.
func (c *Client) AnalyzeImage(ctx context.Context, path string) (*VisionResponse, error) {
	var resp VisionResponse
	if err := c.postFile(ctx, EndpointVision, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
