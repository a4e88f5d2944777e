package trellis

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// whiteImage is a 3x3 white image; the centre pixel is used as the source
// for solid quads so that sampling never bleeds past the edge.
var whiteImage *ebiten.Image

func whiteSubImage() *ebiten.Image {
	if whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(ColorWhite.toRGBA())
		whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteImage
}

// render draws the subtree rooted at n in painter order (parent before
// children, children in index order) and returns the number of quads drawn.
// Hidden nodes skip their whole subtree but still take part in layout.
func (s *Scene) render(target *ebiten.Image, n *Node) int {
	if !n.visible {
		return 0
	}
	quads := 0
	alpha := n.Color.A * n.DrawAlpha()
	size := n.DrawSize()
	if alpha > 0 && size.X > 0 && size.Y > 0 && n.BoundingBox().Intersects(imageRect(target)) {
		s.drawQuad(target, n.ScreenSpaceQuad(), n.Color, alpha)
		quads++
	}

	dst := target
	if n.masking {
		clip := pixelRect(n.BoundingBox()).Intersect(target.Bounds())
		if clip.Empty() {
			return quads
		}
		dst = target.SubImage(clip).(*ebiten.Image)
	}
	for _, c := range n.children {
		quads += s.render(dst, c)
	}
	return quads
}

// drawQuad fills q with a solid colour. alpha already includes the inherited
// draw alpha.
func (s *Scene) drawQuad(target *ebiten.Image, q Quad, c Color, alpha float64) {
	src := whiteSubImage()
	r := float32(clamp01(c.R) * alpha)
	g := float32(clamp01(c.G) * alpha)
	b := float32(clamp01(c.B) * alpha)
	a := float32(clamp01(alpha))

	s.vertices = s.vertices[:0]
	for _, p := range [4]Vec2{q.TopLeft, q.TopRight, q.BottomRight, q.BottomLeft} {
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1.5, SrcY: 1.5,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	s.indices = append(s.indices[:0], 0, 1, 2, 0, 2, 3)
	target.DrawTriangles(s.vertices, s.indices, src, nil)
}

// pixelRect converts a float rectangle to the smallest enclosing integer
// rectangle.
func pixelRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
}

func imageRect(img *ebiten.Image) Rect {
	b := img.Bounds()
	return Rect{float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy())}
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

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = uint32(c.A)
	a |= a << 8
	return
}
