package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"chirpfeed/internal/errors"
)

// ImageGenerator produces raw image bytes for a prompt.
type ImageGenerator interface {
	TextToImage(ctx context.Context, prompt string) (data []byte, contentType string, err error)
}

// ImageService proxies prompts to an external text-to-image model.
type ImageService interface {
	Generate(ctx context.Context, prompt string) (dataURI string, err error)
}

type imageService struct {
	generator ImageGenerator
}

// NewImageService creates a new image generation service.
func NewImageService(generator ImageGenerator) ImageService {
	return &imageService{generator: generator}
}

// Generate forwards the prompt upstream and returns the result as a
// base64-encoded data URI. Single best-effort call, no caching.
func (s *imageService) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.ErrEmptyPrompt
	}

	data, contentType, err := s.generator.TextToImage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
