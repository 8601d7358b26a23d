package room

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fogleman/gg"
	"github.com/fogleman/pt/pt"
)

var (
	MirrorColor = hexColor(0x8ECAE6)
	WallColor   = hexColor(0x6C757D)
	SourceColor = hexColor(0x212529)
	ImageColor  = hexColor(0xADB5BD)
)

// Snapshot is everything drawn in one top-down view.
type Snapshot struct {
	Walls  []WallPlane
	Source pt.Vector
	Traces []Trace
	Images []ReflectionPath
}

// View renders a Snapshot onto the floor plane.
type View struct {
	XSize int
	YSize int
	Plane Plane
	// Fraction of the image left empty around the content
	Margin float64
	// These cache the values needed to scale and translate from the scene to the requested image size
	scale      float64
	xTranslate float64
	yTranslate float64
}

// NewTopDownView returns a square view looking down on the room.
func NewTopDownView(size int) *View {
	return &View{XSize: size, YSize: size, Plane: TopDown, Margin: 0.05}
}

func (view *View) project(v pt.Vector) Point2D {
	return To2D(view.Plane.Project(v))
}

// wallCorners returns the two ends of a wall, found where it meets its perpendicular neighbours.
func wallCorners(w WallPlane, walls []WallPlane) (pt.Vector, pt.Vector) {
	along := w.Normal.Cross(Up).Normalize()
	lo, hi := math.Inf(-1), math.Inf(1)
	for _, o := range walls {
		denom := along.Dot(o.Normal)
		if math.Abs(denom) < 1e-9 {
			continue
		}
		t := o.Position.Sub(w.Position).Dot(o.Normal) / denom
		if denom > 0 {
			lo = math.Max(lo, t)
		} else {
			hi = math.Min(hi, t)
		}
	}
	return w.Position.Add(along.MulScalar(lo)), w.Position.Add(along.MulScalar(hi))
}

func (view *View) outline(s Snapshot) Path2D {
	var points Path2D
	for _, w := range s.Walls {
		a, b := wallCorners(w, s.Walls)
		points = append(points, view.project(a), view.project(b))
	}
	points = append(points, view.project(s.Source))
	for _, t := range s.Traces {
		for _, p := range t.Points {
			points = append(points, view.project(p))
		}
	}
	for _, img := range s.Images {
		points = append(points, view.project(img.Position))
	}
	return points
}

func (view *View) computeScaleAndTranslation(s Snapshot) {
	XMin, XMax, YMin, YMax := view.outline(s).BoundingBox()
	padX := (XMax - XMin) * view.Margin
	padY := (YMax - YMin) * view.Margin
	XMin, XMax, YMin, YMax = XMin-padX, XMax+padX, YMin-padY, YMax+padY

	view.xTranslate = -XMin
	view.yTranslate = -YMin
	XScale := float64(view.XSize) / math.Max(XMax-XMin, 1e-9)
	YScale := float64(view.YSize) / math.Max(YMax-YMin, 1e-9)
	view.scale = math.Min(XScale, YScale)
}

func (view *View) translateAndScale(p pt.Vector) Point2D {
	return view.project(p).Translate(view.xTranslate, view.yTranslate).Scale(view.scale)
}

func setColor(c *gg.Context, col pt.Color, alpha float64) {
	c.SetRGBA(col.R, col.G, col.B, alpha)
}

// Render draws walls, traced rays, the source and its mirror images.
func (view *View) Render(s Snapshot) image.Image {
	view.computeScaleAndTranslation(s)

	c := gg.NewContext(view.XSize, view.YSize)
	c.SetRGB(1, 1, 1)
	c.Clear()

	for _, w := range s.Walls {
		a, b := wallCorners(w, s.Walls)
		p1, p2 := view.translateAndScale(a), view.translateAndScale(b)
		if w.IsMirror {
			setColor(c, MirrorColor, 1)
			c.SetLineWidth(6)
		} else {
			setColor(c, WallColor, 1)
			c.SetLineWidth(3)
		}
		c.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
		c.Stroke()
	}

	for _, img := range s.Images {
		p := view.translateAndScale(img.Position)
		setColor(c, ImageColor, 1/float64(img.BounceCount))
		c.DrawCircle(p.X, p.Y, 4)
		c.Fill()
	}

	c.SetLineWidth(2)
	for _, t := range s.Traces {
		for _, seg := range t.Segments() {
			p1, p2 := view.translateAndScale(seg.Start), view.translateAndScale(seg.End)
			setColor(c, t.Ray.Color, seg.Alpha)
			c.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
			c.Stroke()
		}
	}

	src := view.translateAndScale(s.Source)
	setColor(c, SourceColor, 1)
	c.DrawCircle(src.X, src.Y, 5)
	c.Fill()

	return c.Image()
}

// SavePNG renders s and writes it to path.
func (view *View) SavePNG(path string, s Snapshot) error {
	img := view.Render(s)
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// PlotPathCounts saves a bar chart of the number of reflection paths per bounce level.
func PlotPathCounts(path string, X, Y int, paths []ReflectionPath) error {
	p := plot.New()
	p.Title.Text = "Mirror images per bounce level"
	p.X.Label.Text = "Bounces"
	p.Y.Label.Text = "Images"

	counts := CountByLevel(paths)
	values := make(plotter.Values, 0, len(counts))
	names := make([]string, 0, len(counts))
	for level := 1; level < len(counts); level++ {
		values = append(values, float64(counts[level]))
		names = append(names, fmt.Sprint(level))
	}
	if len(values) == 0 {
		return fmt.Errorf("no reflection paths to plot")
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(names...)
	if err := p.Save(vg.Length(X), vg.Length(Y), path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
