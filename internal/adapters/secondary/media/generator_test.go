package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_NotReadyUntilInit(t *testing.T) {
	gen := NewGenerator("/static/uploads")
	assert.False(t, gen.Ready())

	_, err := gen.Generate(context.Background(), "a sunset")
	assert.ErrorIs(t, err, ErrGeneratorNotReady)

	gen.Init(func(_ context.Context, _ string) ([]byte, error) {
		return []byte{0x89, 0x50}, nil
	})
	assert.True(t, gen.Ready())
}

func TestGenerator_Generate(t *testing.T) {
	gen := NewGenerator("/static/uploads")
	gen.Init(func(_ context.Context, prompt string) ([]byte, error) {
		return []byte(prompt), nil
	})

	img, err := gen.Generate(context.Background(), "a sunset")
	require.NoError(t, err)

	assert.NotEmpty(t, img.ID)
	assert.Equal(t, []byte("a sunset"), img.Data)
	assert.Equal(t, "/static/uploads/"+img.ID+".png", img.URL)
}

func TestGenerator_EmptyPrompt(t *testing.T) {
	gen := NewGenerator("/static/uploads")
	gen.Init(func(_ context.Context, _ string) ([]byte, error) { return nil, nil })

	_, err := gen.Generate(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestGenerator_BackendError(t *testing.T) {
	gen := NewGenerator("/static/uploads")
	backendErr := errors.New("gpu on fire")
	gen.Init(func(_ context.Context, _ string) ([]byte, error) { return nil, backendErr })

	_, err := gen.Generate(context.Background(), "a sunset")
	assert.ErrorIs(t, err, backendErr)
}
