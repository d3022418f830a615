package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// FaceCache memoizes font faces by point size. A font.Face is not safe for
// concurrent use, so each face carries its own lock and is only handed out
// through WithFace.
type FaceCache struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]*cachedFace
}

type cachedFace struct {
	mu   sync.Mutex
	face font.Face
}

func NewFaceCache(ttf []byte) (*FaceCache, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &FaceCache{font: f, faces: make(map[float64]*cachedFace)}, nil
}

// DefaultFaceCache is shared by all renderers and uses Go Bold.
var DefaultFaceCache = sync.OnceValues(func() (*FaceCache, error) {
	return NewFaceCache(gobold.TTF)
})

func (c *FaceCache) entry(size float64) (*cachedFace, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.faces[size]; ok {
		return e, nil
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %.1fpt: %w", size, err)
	}
	e := &cachedFace{face: face}
	c.faces[size] = e
	return e, nil
}

// WithFace runs fn with exclusive use of the face for size.
func (c *FaceCache) WithFace(size float64, fn func(font.Face)) error {
	e, err := c.entry(size)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.face)
	return nil
}

// Len reports how many sizes are cached.
func (c *FaceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.faces)
}
