// Package media porte le pipeline de génération d'images, collaborateur
// hors du chemin critique des ledgers. Ressource process-wide initialisée
// explicitement : pas de chargement implicite au premier usage.
package media

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrGeneratorNotReady = errors.New("image generator is not ready")
	ErrEmptyPrompt       = errors.New("prompt is required")
)

// GenerateFunc est le backend effectif (modèle local, API distante...).
type GenerateFunc func(ctx context.Context, prompt string) ([]byte, error)

type GeneratedImage struct {
	ID   string
	URL  string
	Data []byte
}

type Generator struct {
	mu      sync.Mutex
	backend GenerateFunc
	ready   bool
	baseURL string
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: baseURL}
}

// Init installe le backend. Tant qu'il n'est pas appelé, Generate échoue
// avec ErrGeneratorNotReady.
func (g *Generator) Init(backend GenerateFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.backend = backend
	g.ready = backend != nil
}

func (g *Generator) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ready
}

func (g *Generator) Generate(ctx context.Context, prompt string) (*GeneratedImage, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	g.mu.Lock()
	backend := g.backend
	ready := g.ready
	g.mu.Unlock()

	if !ready {
		return nil, ErrGeneratorNotReady
	}

	data, err := backend(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}

	id := uuid.NewString()
	return &GeneratedImage{
		ID:   id,
		URL:  fmt.Sprintf("%s/%s.png", g.baseURL, id),
		Data: data,
	}, nil
}
