package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/sway"
)

// --- White pixel singleton (no sync.Once, the game loop is single-threaded) ---

var whitePixelImage *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// fillBuffer accumulates the triangles of every visible path for one frame.
// Buffers are reused across frames.
type fillBuffer struct {
	verts []ebiten.Vertex
	inds  []uint16
	spans []fillSpan
}

// fillSpan locates one path in the buffers. Its indices are relative to
// vertStart.
type fillSpan struct {
	vertStart, vertEnd int
	indStart, indEnd   int
}

func (b *fillBuffer) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	b.spans = b.spans[:0]
}

// appendTree appends the paths under n in paint order. A path in the middle
// of a combine morph is drawn as its parts.
func (b *fillBuffer) appendTree(n *sway.Node, alpha float64) {
	if n.Invisible {
		return
	}
	if op, ok := n.Style[sway.StyleOpacity].(float64); ok && n.IsGroup() {
		alpha *= op
	}
	switch {
	case n.IsGroup():
		for _, c := range n.Children() {
			b.appendTree(c, alpha)
		}
	case n.Kind == sway.KindPath:
		m := n.ComputedTransform()
		if parts := n.MorphParts(); parts != nil {
			for _, p := range parts {
				b.appendPath(p.Points(), m, fillColor(p, alpha))
			}
			return
		}
		b.appendPath(n.Points(), m, fillColor(n, alpha))
	}
}

// appendPath appends a fan-triangulated polygon. Even-odd filling makes the
// fan correct for concave outlines too.
func (b *fillBuffer) appendPath(points []sway.Vec2, m [6]float64, c sway.Color) {
	n := len(points)
	if n < 3 || c.A <= 0 {
		return
	}
	// Indices are uint16 and local to the path.
	if n > 0xFFFF {
		return
	}
	sp := fillSpan{vertStart: len(b.verts), indStart: len(b.inds)}
	cr, cg, cb, ca := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)
	for _, p := range points {
		x := m[0]*p.X + m[2]*p.Y + m[4]
		y := m[1]*p.X + m[3]*p.Y + m[5]
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		b.inds = append(b.inds, 0, uint16(i+1), uint16(i+2))
	}
	sp.vertEnd, sp.indEnd = len(b.verts), len(b.inds)
	b.spans = append(b.spans, sp)
}

// draw submits one draw call per path; the fill rule is evaluated per call,
// so overlapping paths must not share one.
func (b *fillBuffer) draw(dst *ebiten.Image) {
	if len(b.spans) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.EvenOdd}
	img := ensureWhitePixel()
	for _, sp := range b.spans {
		dst.DrawTriangles(b.verts[sp.vertStart:sp.vertEnd], b.inds[sp.indStart:sp.indEnd], img, op)
	}
}

// fillColor resolves the premultiplied-ready fill of a path: its fill color
// with opacity and inherited alpha folded into A.
func fillColor(n *sway.Node, alpha float64) sway.Color {
	c := sway.ColorWhite
	if f, ok := n.Style[sway.StyleFill].(sway.Color); ok {
		c = f
	}
	if op, ok := n.Style[sway.StyleOpacity].(float64); ok {
		alpha *= op
	}
	c.A *= alpha
	return c
}

func toRGBA(c sway.Color) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
