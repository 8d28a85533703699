// Package textmetrics measures rendered text width for layout.
//
// The diagram is drawn in a hand-written display font the browser loads at
// render time. Measurement uses the embedded Go fonts instead, so every width
// is inflated by SafetyFactor to avoid under-fitting against the real font.
package textmetrics

import (
	"fmt"
	"sync"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/width"
)

// SafetyFactor is applied to every raw measurement.
const SafetyFactor = 1.05

// Weight selects the face used for measurement.
type Weight string

const (
	Normal Weight = "normal"
	Bold   Weight = "bold"
)

// Measurer reports the width in pixels of text set at size px.
type Measurer interface {
	MeasureWidth(text string, size float64, weight Weight) float64
}

type faceKey struct {
	weight Weight
	size   float64
}

// Context is a reusable measurement surface. Faces are created lazily per
// size and weight and kept for the life of the Context. It is safe for
// concurrent use; calls are serialized because faces are not.
type Context struct {
	mu    sync.Mutex
	fonts map[Weight]*sfnt.Font
	faces map[faceKey]font.Face
	buf   sfnt.Buffer
}

// New parses the embedded fonts. An error here means no layout is possible.
func New() (*Context, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bold font: %w", err)
	}
	return &Context{
		fonts: map[Weight]*sfnt.Font{Normal: regular, Bold: bold},
		faces: make(map[faceKey]font.Face),
	}, nil
}

// MeasureWidth implements Measurer.
func (c *Context) MeasureWidth(text string, size float64, weight Weight) float64 {
	if text == "" || size <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.fonts[weight]
	if !ok {
		weight = Normal
		f = c.fonts[Normal]
	}
	face, err := c.face(f, weight, size)
	if err != nil {
		return Monospace{}.MeasureWidth(text, size, weight)
	}

	var adv fixed.Int26_6
	var fallback float64
	prev := rune(-1)
	for _, r := range text {
		idx, err := f.GlyphIndex(&c.buf, r)
		if err != nil || idx == 0 {
			fallback += fallbackAdvance(r) * size
			prev = -1
			continue
		}
		if prev >= 0 {
			adv += face.Kern(prev, r)
		}
		if a, ok := face.GlyphAdvance(r); ok {
			adv += a
		}
		prev = r
	}
	return (float64(adv)/64 + fallback) * SafetyFactor
}

func (c *Context) face(f *sfnt.Font, weight Weight, size float64) (font.Face, error) {
	key := faceKey{weight: weight, size: size}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72, // 1pt == 1px
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s face at %.1fpx: %w", weight, size, err)
	}
	c.faces[key] = face
	return face, nil
}

// Close releases cached faces.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, face := range c.faces {
		_ = face.Close()
		delete(c.faces, k)
	}
	return nil
}

// fallbackAdvance is the advance, in ems, for a rune the measurement font lacks.
// CJK and emoji are full-width in the display font.
func fallbackAdvance(r rune) float64 {
	switch {
	case unicode.Is(unicode.Mn, r), unicode.Is(unicode.Me, r),
		unicode.Is(unicode.Variation_Selector, r), unicode.IsControl(r):
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 1
	}
	return 0.6
}

// Monospace approximates every visible rune with a fixed advance. Full-width
// runes take one em; others take Advance ems (0.6 when zero).
type Monospace struct {
	Advance float64
}

// MeasureWidth implements Measurer.
func (m Monospace) MeasureWidth(text string, size float64, _ Weight) float64 {
	adv := m.Advance
	if adv == 0 {
		adv = 0.6
	}
	var w float64
	for _, r := range text {
		switch k := fallbackAdvance(r); k {
		case 0.6:
			w += adv
		default:
			w += k
		}
	}
	return w * size * SafetyFactor
}
