package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "chirpfeed/internal/errors"
)

type stubGenerator struct {
	data        []byte
	contentType string
	err         error
}

func (s *stubGenerator) TextToImage(ctx context.Context, prompt string) ([]byte, string, error) {
	return s.data, s.contentType, s.err
}

func TestImageService_Generate(t *testing.T) {
	t.Run("returns a data URI", func(t *testing.T) {
		svc := NewImageService(&stubGenerator{data: []byte("png-bytes"), contentType: "image/png"})

		uri, err := svc.Generate(context.Background(), "a gopher on a beach")

		assert.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,cG5nLWJ5dGVz", uri)
	})

	t.Run("rejects an empty prompt", func(t *testing.T) {
		svc := NewImageService(&stubGenerator{})

		_, err := svc.Generate(context.Background(), "   ")

		assert.Equal(t, apperrors.ErrEmptyPrompt, err)
	})

	t.Run("surfaces upstream failures", func(t *testing.T) {
		svc := NewImageService(&stubGenerator{err: errors.New("model is loading")})

		_, err := svc.Generate(context.Background(), "a gopher")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "model is loading")
	})
}
