package room

import (
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"
	"github.com/go-gl/mathgl/mgl64"
	lin "github.com/sgreben/piecewiselinear"
)

const (
	MaxRayCount     = 8
	MinFanCount     = 1
	MaxFanCount     = 6
	DefaultFanAngle = 90.0
	// DefaultSurfaceOffset pushes ray origins out of a unit cube centred on the emitter.
	DefaultSurfaceOffset = 0.5
)

// Ray is a coloured ray emitted by a source.
type Ray struct {
	pt.Ray
	Color pt.Color
}

// ColorMode selects how rays are coloured.
type ColorMode int

const (
	// ExitFace colours a ray by the face of the emitter it leaves through.
	ExitFace ColorMode = iota
	// Gradient cycles red, green and blue across the ray index.
	Gradient
)

func (m ColorMode) String() string {
	switch m {
	case ExitFace:
		return "exit_face"
	case Gradient:
		return "gradient"
	}
	return fmt.Sprintf("ColorMode(%d)", int(m))
}

// ParseColorMode is the inverse of ColorMode.String.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "exit_face":
		return ExitFace, nil
	case "gradient":
		return Gradient, nil
	}
	return 0, fmt.Errorf("unknown color mode %q", s)
}

// hexColor converts 0xRRGGBB to a display colour without gamma correction.
func hexColor(x int) pt.Color {
	return pt.Color{
		R: float64((x>>16)&0xff) / 255,
		G: float64((x>>8)&0xff) / 255,
		B: float64(x&0xff) / 255,
	}
}

// Face colours in local space, indexed by faceIndex.
var faceColors = []pt.Color{
	hexColor(0xE05A47), // +X
	hexColor(0x4F9D69), // -X
	hexColor(0xF2C14E), // +Y
	hexColor(0x9B5DE5), // -Y
	hexColor(0x3A86FF), // +Z
	hexColor(0xFF8FAB), // -Z
}

// faceIndex classifies a local direction by its dominant axis.
func faceIndex(d pt.Vector) int {
	a := d.Abs()
	switch {
	case a.X >= a.Y && a.X >= a.Z:
		if d.X >= 0 {
			return 0
		}
		return 1
	case a.Y >= a.Z:
		if d.Y >= 0 {
			return 2
		}
		return 3
	default:
		if d.Z >= 0 {
			return 4
		}
		return 5
	}
}

// One cycle of the gradient: red -> green -> blue -> red.
var (
	gradientR = lin.Function{X: []float64{0, 1, 2, 3}, Y: []float64{1, 0, 0, 1}}
	gradientG = lin.Function{X: []float64{0, 1, 2, 3}, Y: []float64{0, 1, 0, 0}}
	gradientB = lin.Function{X: []float64{0, 1, 2, 3}, Y: []float64{0, 0, 1, 0}}
)

func gradientColor(index, total int) pt.Color {
	if total <= 0 {
		total = 1
	}
	x := math.Mod(3*float64(index)/float64(total), 3)
	return pt.Color{R: gradientR.At(x), G: gradientG.At(x), B: gradientB.At(x)}
}

// Emitter is an object that sends a fan of rays out into the room.
type Emitter struct {
	Position    pt.Vector
	Orientation mgl64.Mat3
	// Fan spread in degrees, centred on each primary direction
	FanAngle float64
	// Distance from the emitter centre to its surface along a ray
	SurfaceOffset float64
	ColorMode     ColorMode
}

// NewEmitter returns an emitter with the default fan angle and surface offset.
func NewEmitter(position pt.Vector, orientation mgl64.Mat3) Emitter {
	return Emitter{
		Position:      position,
		Orientation:   orientation,
		FanAngle:      DefaultFanAngle,
		SurfaceOffset: DefaultSurfaceOffset,
	}
}

// GenerateRays emits rayCount evenly spaced primary directions around the horizontal circle of the
// emitter, each expanded into fanCount rays. rayCount is clamped to [0, MaxRayCount] and fanCount to
// [MinFanCount, MaxFanCount].
func (e Emitter) GenerateRays(rayCount, fanCount int) []Ray {
	rayCount = Clamp(rayCount, 0, MaxRayCount)
	fanCount = Clamp(fanCount, MinFanCount, MaxFanCount)
	fan := pt.Radians(e.FanAngle)

	rays := make([]Ray, 0, rayCount*fanCount)
	total := rayCount * fanCount
	for i := 0; i < rayCount; i++ {
		theta := 2 * math.Pi * float64(i) / float64(rayCount)
		local := V(math.Cos(theta), 0, math.Sin(theta))
		primary := fromMgl(e.Orientation.Mul3x1(toMgl(local))).Normalize()

		for j := 0; j < fanCount; j++ {
			offset := 0.0
			switch {
			case fanCount == 1:
			case e.FanAngle >= 360:
				// A full turn would put the first and last ray on top of each other
				offset = fan * float64(j) / float64(fanCount)
			default:
				offset = -fan/2 + fan*float64(j)/float64(fanCount-1)
			}
			dir := pt.Rotate(Up, offset).MulDirection(primary).Normalize()

			index := i*fanCount + j
			var c pt.Color
			switch e.ColorMode {
			case Gradient:
				c = gradientColor(index, total)
			default:
				// Classify in the emitter's own frame so colours follow the object when it turns
				localDir := fromMgl(e.Orientation.Transpose().Mul3x1(toMgl(dir)))
				c = faceColors[faceIndex(localDir)]
			}

			rays = append(rays, Ray{
				Ray: pt.Ray{
					Origin:    e.Position.Add(dir.MulScalar(e.SurfaceOffset)),
					Direction: dir,
				},
				Color: c,
			})
		}
	}
	return rays
}

// GenerateRays is Emitter.GenerateRays with default fan angle, offset and exit-face colours.
func GenerateRays(origin pt.Vector, orientation mgl64.Mat3, rayCount, fanCount int) []Ray {
	return NewEmitter(origin, orientation).GenerateRays(rayCount, fanCount)
}
