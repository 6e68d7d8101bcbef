package factory

import (
	"image"
	"image/color"
	"math"

	"github.com/automoto/splinesync/components"
	"github.com/automoto/splinesync/shared/interp"
	"github.com/automoto/splinesync/shared/netcomponents"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const strokeWidth = 1

// whiteSubImage is the texture for DrawTriangles; vertex colours tint it.
var whiteSubImage *ebiten.Image

func whiteTexture() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// ShapeSprites rasterizes server shapes into sprites. It satisfies
// netsync.RenderableFactory.
type ShapeSprites struct{}

func (ShapeSprites) NewRenderable(shape netcomponents.Shape, rgb uint32) interp.Renderable {
	return CreateShapeSprite(shape, rgb)
}

// CreateShapeSprite draws shape once into an image sized to its bounds.
// rgb is 0xRRGGBB.
func CreateShapeSprite(shape netcomponents.Shape, rgb uint32) *components.SpriteData {
	b := netcomponents.ShapeBounds(shape)
	w := max(1, int(math.Ceil(b.Width()))+2*strokeWidth)
	h := max(1, int(math.Ceil(b.Height()))+2*strokeWidth)

	img := ebiten.NewImage(w, h)
	clr := color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}

	// shape coordinates -> image coordinates
	ox := float32(strokeWidth - b.MinX)
	oy := float32(strokeWidth - b.MinY)

	switch s := shape.(type) {
	case netcomponents.RectShape:
		x, y := float32(s.X)+ox, float32(s.Y)+oy
		if s.Fill {
			vector.DrawFilledRect(img, x, y, float32(s.Width), float32(s.Height), clr, true)
		} else {
			vector.StrokeRect(img, x, y, float32(s.Width), float32(s.Height), strokeWidth, clr, true)
		}
	case netcomponents.ArcShape:
		var path vector.Path
		cx, cy := float32(s.X)+ox, float32(s.Y)+oy
		if s.Fill {
			path.MoveTo(cx, cy)
		}
		path.Arc(cx, cy, float32(s.Radius), float32(s.StartAngle), float32(s.EndAngle), vector.Clockwise)
		if s.Fill {
			path.Close()
		}
		drawPath(img, &path, clr, s.Fill)
	case netcomponents.PolygonShape:
		var path vector.Path
		for i, v := range s.Vertices {
			x := float32(s.X+v[0]) + ox
			y := float32(s.Y+v[1]) + oy
			if i == 0 {
				path.MoveTo(x, y)
				continue
			}
			path.LineTo(x, y)
		}
		path.Close()
		drawPath(img, &path, clr, s.Fill)
	default:
		panic("factory: unknown shape type")
	}

	px, py := netcomponents.ShapePivot(shape)
	return &components.SpriteData{
		Image:  img,
		PivotX: px + strokeWidth,
		PivotY: py + strokeWidth,
	}
}

func drawPath(dst *ebiten.Image, path *vector.Path, clr color.RGBA, fill bool) {
	var vs []ebiten.Vertex
	var is []uint16
	if fill {
		vs, is = path.AppendVerticesAndIndicesForFilling(vs, is)
	} else {
		vs, is = path.AppendVerticesAndIndicesForStroke(vs, is, &vector.StrokeOptions{Width: strokeWidth})
	}
	if len(is) == 0 {
		return
	}

	r, g, b, a := float32(clr.R)/0xff, float32(clr.G)/0xff, float32(clr.B)/0xff, float32(clr.A)/0xff
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	dst.DrawTriangles(vs, is, whiteTexture(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
