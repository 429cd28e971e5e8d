// Package imagegen calls the HuggingFace inference API to turn text prompts
// into images.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api-inference.huggingface.co/models/"
	// negativePrompt is sent with every request to steer generation away
	// from low quality output.
	negativePrompt = "blurry, ugly, deformed"
)

// Client is a minimal HuggingFace text-to-image client. Calls are single
// best-effort requests with no retry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient creates a client for the given model, e.g.
// "stabilityai/stable-diffusion-2".
func NewClient(apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	NegativePrompt string `json:"negative_prompt"`
}

// TextToImage generates an image for the prompt and returns the raw image
// bytes together with their content type.
func (c *Client) TextToImage(ctx context.Context, prompt string) ([]byte, string, error) {
	payload, err := json.Marshal(inferenceRequest{
		Inputs:     prompt,
		Parameters: inferenceParameters{NegativePrompt: negativePrompt},
	})
	if err != nil {
		return nil, "", fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.model, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("call inference api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read inference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("inference api %s: %s", resp.Status, string(body))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return body, contentType, nil
}
