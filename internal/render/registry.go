package render

import (
	"fmt"
	"strings"
	"sync"

	"lessonwiki-backend/internal/models"
)

// Renderer produces read-only HTML for one lesson block, or "" when the
// block has nothing to show for the requested locale.
type Renderer func(ctx *Context, block models.LessonBlock) string

// Registry stores the mapping between block types and their renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty block renderer registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register associates a renderer with a normalised block type. It returns
// an error when the input is invalid.
func (r *Registry) Register(blockType string, renderer Renderer) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}

	blockType = strings.TrimSpace(strings.ToLower(blockType))
	if blockType == "" {
		return fmt.Errorf("block type is empty")
	}
	if renderer == nil {
		return fmt.Errorf("renderer is nil for type %s", blockType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderers == nil {
		r.renderers = make(map[string]Renderer)
	}
	r.renderers[blockType] = renderer
	return nil
}

// MustRegister registers the renderer and panics if registration fails.
func (r *Registry) MustRegister(blockType string, renderer Renderer) {
	if err := r.Register(blockType, renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer for the provided block type if it exists.
func (r *Registry) Get(blockType string) (Renderer, bool) {
	if r == nil {
		return nil, false
	}

	blockType = strings.TrimSpace(strings.ToLower(blockType))
	if blockType == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[blockType]
	return renderer, ok
}

// DefaultRegistry returns a registry with every built-in block renderer
// registered.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.MustRegister(models.BlockParagraph, renderParagraph)
	reg.MustRegister(models.BlockHeading, renderHeading)
	reg.MustRegister(models.BlockList, renderList)
	reg.MustRegister(models.BlockCallout, renderCallout)
	reg.MustRegister(models.BlockImage, renderImage)
	reg.MustRegister(models.BlockYoutube, renderYoutube)
	reg.MustRegister(models.BlockVideo, renderVideo)
	return reg
}
