package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var builtinFonts = map[string][]byte{
	"go":        goregular.TTF,
	"go-bold":   gobold.TTF,
	"go-italic": goitalic.TTF,
	"go-medium": gomedium.TTF,
	"go-mono":   gomono.TTF,
}

var fontExtensions = []string{".ttf", ".otf", ".ttc"}

// FontRegistry resolves font families to parsed fonts. A parsed font may be
// shared between goroutines; faces created from it may not.
type FontRegistry struct {
	dirs  []string
	mu    sync.Mutex
	fonts map[string]*opentype.Font
}

func NewFontRegistry(dirs ...string) *FontRegistry {
	return &FontRegistry{
		dirs:  dirs,
		fonts: make(map[string]*opentype.Font),
	}
}

func normalizeFamily(family string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(family)), " ", "-")
}

// Resolve returns the font for family. There is no fallback: a family that is
// neither built in nor present in one of the font directories is a
// configuration error.
func (r *FontRegistry) Resolve(family string) (*opentype.Font, error) {
	key := normalizeFamily(family)
	if key == "" {
		return nil, models.NewConfigError("font", "empty font family")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.fonts[key]; ok {
		return f, nil
	}

	data, ok := builtinFonts[key]
	if !ok {
		path, err := r.find(key)
		if err != nil {
			return nil, err
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, models.NewConfigError("font", fmt.Sprintf("failed to read font %s: %v", path, err))
		}
	}

	f, err := parseFont(data)
	if err != nil {
		return nil, models.NewConfigError("font", fmt.Sprintf("failed to parse font %q: %v", family, err))
	}
	r.fonts[key] = f
	return f, nil
}

func (r *FontRegistry) find(key string) (string, error) {
	for _, dir := range r.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if !isFontExt(ext) {
				continue
			}
			name := normalizeFamily(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
			if name == key {
				return filepath.Join(dir, e.Name()), nil
			}
		}
	}
	return "", models.NewConfigError("font", fmt.Sprintf("font family %q not found in %v", key, r.dirs))
}

func isFontExt(ext string) bool {
	for _, e := range fontExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func parseFont(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err == nil {
		return f, nil
	}
	coll, cerr := opentype.ParseCollection(data)
	if cerr != nil {
		return nil, err
	}
	return coll.Font(0)
}

// faceCache holds the faces of one worker.
type faceCache struct {
	registry *FontRegistry
	faces    map[models.FontRef]font.Face
}

func newFaceCache(registry *FontRegistry) *faceCache {
	return &faceCache{
		registry: registry,
		faces:    make(map[models.FontRef]font.Face),
	}
}

func (c *faceCache) face(ref models.FontRef) (font.Face, error) {
	if f, ok := c.faces[ref]; ok {
		return f, nil
	}
	fnt, err := c.registry.Resolve(ref.Family)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    ref.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, models.NewConfigError("font", fmt.Sprintf("failed to create face %s/%g: %v", ref.Family, ref.Size, err))
	}
	c.faces[ref] = face
	return face, nil
}

func (c *faceCache) Close() {
	for ref, f := range c.faces {
		f.Close()
		delete(c.faces, ref)
	}
}
