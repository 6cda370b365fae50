package arcade

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Outline defines a text stroke rendered behind the fill.
type Outline struct {
	Color     Color
	Thickness float64
}

// TextBlock holds text content, formatting, and the cached rendered image.
type TextBlock struct {
	Content string
	Font    *TTFFont
	Align   TextAlign
	Color   Color
	Outline *Outline

	dirty     bool
	measuredW float64
	measuredH float64
	image     *ebiten.Image
}

// measure returns the block's size, recomputing it if the content changed.
func (tb *TextBlock) measure() (float64, float64) {
	if !tb.dirty {
		return tb.measuredW, tb.measuredH
	}
	if tb.Font == nil || tb.Content == "" {
		tb.measuredW, tb.measuredH = 0, 0
	} else {
		tb.measuredW, tb.measuredH = tb.Font.MeasureString(tb.Content)
		if tb.Outline != nil {
			tb.measuredW += 2 * tb.Outline.Thickness
			tb.measuredH += 2 * tb.Outline.Thickness
		}
	}
	// Image is re-rendered lazily on the next draw.
	if tb.image != nil {
		tb.image.Deallocate()
		tb.image = nil
	}
	tb.dirty = false
	return tb.measuredW, tb.measuredH
}

// render returns the cached text image, drawing it when stale. Returns nil
// for empty text.
func (tb *TextBlock) render() *ebiten.Image {
	w, h := tb.measure()
	if w == 0 || h == 0 {
		return nil
	}
	if tb.image != nil {
		return tb.image
	}
	img := ebiten.NewImage(int(w)+1, int(h)+1)
	var inset float64
	if tb.Outline != nil && tb.Outline.Thickness > 0 {
		inset = tb.Outline.Thickness
		t := inset
		for _, off := range [8][2]float64{
			{-t, 0}, {t, 0}, {0, -t}, {0, t},
			{-t, -t}, {t, -t}, {-t, t}, {t, t},
		} {
			tb.draw(img, inset+off[0], inset+off[1], w-2*inset, tb.Outline.Color)
		}
	}
	tb.draw(img, inset, inset, w-2*inset, tb.Color)
	tb.image = img
	return img
}

func (tb *TextBlock) draw(dst *ebiten.Image, x, y, w float64, c Color) {
	op := &text.DrawOptions{}
	op.LineSpacing = tb.Font.LineHeight()
	switch tb.Align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
		x += w / 2
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
		x += w
	}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.NRGBA())
	text.Draw(dst, tb.Content, tb.Font.face, op)
}

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	size float64
	lh   float64
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("arcade: parse TTF data: %w", err)
	}
	return newTTFFont(source, size), nil
}

func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{
		face: face,
		size: size,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

var (
	defaultSource *text.GoTextFaceSource
	defaultFonts  = map[float64]*TTFFont{}
)

// DefaultFont returns the embedded Go Regular face at the given size.
// Faces are cached per size.
func DefaultFont(size float64) *TTFFont {
	if f, ok := defaultFonts[size]; ok {
		return f
	}
	if defaultSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic(fmt.Sprintf("arcade: embedded font: %v", err))
		}
		defaultSource = src
	}
	f := newTTFFont(defaultSource, size)
	defaultFonts[size] = f
	return f
}

// NewText creates a text node using the embedded font at the given size.
// The node's pivot is its top-left corner.
func NewText(name, content string, size float64) *Node {
	return NewTextWithFont(name, content, DefaultFont(size))
}

// NewTextWithFont creates a text node rendered with font.
func NewTextWithFont(name, content string, font *TTFFont) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeText,
		TextBlock: &TextBlock{
			Content: content,
			Font:    font,
			Color:   ColorWhite,
			dirty:   true,
		},
	}
	nodeDefaults(n)
	return n
}

// SetText replaces the node's text content. No-op for non-text nodes or when
// the content is unchanged.
func (n *Node) SetText(content string) {
	if n.TextBlock == nil || n.TextBlock.Content == content {
		return
	}
	n.TextBlock.Content = content
	n.TextBlock.dirty = true
	// Fractional pivots depend on the measured size.
	n.transformDirty = true
}

// Text returns the node's text content, or "" for non-text nodes.
func (n *Node) Text() string {
	if n.TextBlock == nil {
		return ""
	}
	return n.TextBlock.Content
}

// SetTextf formats according to a format specifier and calls SetText.
func (n *Node) SetTextf(format string, args ...any) {
	n.SetText(fmt.Sprintf(format, args...))
}

// SetTextStyle updates color, alignment, and outline of a text node.
func (n *Node) SetTextStyle(c Color, align TextAlign, outline *Outline) {
	if n.TextBlock == nil {
		return
	}
	n.TextBlock.Color = c
	n.TextBlock.Align = align
	n.TextBlock.Outline = outline
	n.TextBlock.dirty = true
	n.transformDirty = true
}

