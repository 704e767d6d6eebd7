package api

import "context"

// transcribeResponse tolerates both field names the backend has used for
// the transcript.
type transcribeResponse struct {
	Text          string `json:"text,omitempty"`
	Transcription string `json:"transcription,omitempty"`
}

// Transcribe uploads the audio file at path and returns the transcript.
// An empty string with a nil error means the backend answered without a
// transcript under either accepted field name.
func (c *Client) Transcribe(ctx context.Context, path string) (string, error) {
	var resp transcribeResponse
	if err := c.postFile(ctx, EndpointTranscribe, path, &resp); err != nil {
		return "", err
	}

	if resp.Text != "" {
		return resp.Text, nil
	}
	return resp.Transcription, nil
}
