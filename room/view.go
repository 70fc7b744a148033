package room

import (
	"image"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"
)

// RenderStyle carries the colors and line widths used by the Draw methods.
// Colors are hex strings as accepted by gg.Context.SetHexColor. Widths are in
// pixels, PointRadius is in room units.
type RenderStyle struct {
	Background     string
	WallColor      string
	RoundWallColor string
	PointColor     string
	RayColor       string
	AimColor       string

	WallWidth   float64
	RayWidth    float64
	PointRadius float64
}

func DefaultRenderStyle() RenderStyle {
	return RenderStyle{
		Background:     "#FFFFFF",
		WallColor:      "#202020",
		RoundWallColor: "#1F5FBF",
		PointColor:     "#202020",
		RayColor:       "#D62828",
		AimColor:       "#2A9D8F",
		WallWidth:      3,
		RayWidth:       1.5,
		PointRadius:    2,
	}
}

func (w *Wall) Draw(dc *gg.Context, style RenderStyle) {
	dc.NewSubPath()
	switch w.kind {
	case Round:
		dc.SetHexColor(style.RoundWallColor)
		dc.DrawArc(w.arc.center.X, w.arc.center.Y, w.arc.radius, toRadians(w.arc.startAngle), toRadians(w.arc.endAngle))
	default:
		dc.SetHexColor(style.WallColor)
		dc.DrawLine(w.a.X, w.a.Y, w.b.X, w.b.Y)
	}
	dc.SetLineWidth(style.WallWidth)
	dc.Stroke()
}

func (p *Point) Draw(dc *gg.Context, style RenderStyle) {
	dc.SetHexColor(style.PointColor)
	dc.DrawCircle(p.coord.X, p.coord.Y, style.PointRadius)
	dc.Fill()
}

func (a *AimArea) Draw(dc *gg.Context, style RenderStyle) {
	dc.SetHexColor(style.AimColor)
	dc.DrawCircle(a.Center.X, a.Center.Y, a.Radius)
	dc.SetLineWidth(style.WallWidth)
	dc.Stroke()
}

// Draw strokes the anchor and every segment up to its terminus.
func (s *RayStart) Draw(dc *gg.Context, style RenderStyle) {
	dc.SetHexColor(style.RayColor)
	dc.DrawCircle(s.start.X, s.start.Y, style.PointRadius)
	dc.Fill()
	for _, segment := range s.segments {
		end := segment.Terminus()
		dc.DrawLine(segment.Start.X, segment.Start.Y, end.X, end.Y)
	}
	dc.SetLineWidth(style.RayWidth)
	dc.Stroke()
}

func (r *Room) Draw(dc *gg.Context, style RenderStyle) {
	for _, w := range r.walls {
		w.Draw(dc, style)
	}
	for _, p := range r.points {
		p.Draw(dc, style)
	}
	if r.aim != nil {
		r.aim.Draw(dc, style)
	}
	if r.ray != nil {
		r.ray.Draw(dc, style)
	}
}

// BoundingBox covers every point, every arc and the aim. An empty room has an
// empty box at the origin.
func (r *Room) BoundingBox() (XMin, XMax, YMin, YMax float64) {
	XMin, YMin = math.Inf(1), math.Inf(1)
	XMax, YMax = math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		XMin = math.Min(XMin, x)
		XMax = math.Max(XMax, x)
		YMin = math.Min(YMin, y)
		YMax = math.Max(YMax, y)
	}

	for _, p := range r.points {
		grow(p.coord.X, p.coord.Y)
	}
	for _, w := range r.walls {
		if w.kind != Round {
			continue
		}
		for i := 0; i <= arcBoundsSamples; i++ {
			p := w.PointByT(float64(i) / arcBoundsSamples)
			grow(p.X, p.Y)
		}
	}
	if r.aim != nil {
		grow(r.aim.Center.X-r.aim.Radius, r.aim.Center.Y-r.aim.Radius)
		grow(r.aim.Center.X+r.aim.Radius, r.aim.Center.Y+r.aim.Radius)
	}

	if math.IsInf(XMin, 1) {
		return 0, 0, 0, 0
	}
	return
}

const arcBoundsSamples = 64

// View fits a room into an image of XSize by YSize pixels, with the Y axis
// pointing up.
type View struct {
	Room   *Room
	XSize  int
	YSize  int
	Margin float64
	Style  RenderStyle
	// Segments drawn over the room in the aim color
	Highlight []RaySegment
	// These cache the values needed to scale and translate from the room to the requested image size
	scale      float64
	xTranslate float64
	yTranslate float64
}

func (view *View) computeScaleAndTranslation() {
	XMin, XMax, YMin, YMax := view.Room.BoundingBox()
	view.xTranslate = -XMin
	view.yTranslate = -YMin

	width := float64(view.XSize) - 2*view.Margin
	height := float64(view.YSize) - 2*view.Margin
	XScale := width / (XMax - XMin)
	YScale := height / (YMax - YMin)
	view.scale = math.Min(XScale, YScale)
	if math.IsInf(view.scale, 0) || math.IsNaN(view.scale) || view.scale <= 0 {
		view.scale = 1
	}
}

// Render draws the room, its aim and its ray path.
func (view *View) Render() image.Image {
	view.computeScaleAndTranslation()

	dc := gg.NewContext(view.XSize, view.YSize)
	dc.SetHexColor(view.Style.Background)
	dc.Clear()

	dc.Push()
	dc.Translate(view.Margin, float64(view.YSize)-view.Margin)
	dc.Scale(view.scale, -view.scale)
	dc.Translate(view.xTranslate, view.yTranslate)
	view.Room.Draw(dc, view.Style)
	if len(view.Highlight) > 0 {
		dc.SetHexColor(view.Style.AimColor)
		for _, segment := range view.Highlight {
			end := segment.Terminus()
			dc.DrawLine(segment.Start.X, segment.Start.Y, end.X, end.Y)
		}
		dc.SetLineWidth(2 * view.Style.RayWidth)
		dc.Stroke()
	}
	dc.Pop()

	return dc.Image()
}

func (view *View) SavePNG(path string) error {
	return gg.SavePNG(path, view.Render())
}

func (view *View) WritePNG(w io.Writer) error {
	return png.Encode(w, view.Render())
}
