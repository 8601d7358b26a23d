package room

import (
	"github.com/fogleman/pt/pt"
	"github.com/go-gl/mathgl/mgl64"
)

// V is a shorthand constructor for pt.Vector
func V(X, Y, Z float64) pt.Vector {
	return pt.Vector{X: X, Y: Y, Z: Z}
}

// Up is the vertical axis. Walls are vertical, so rays and images move in the XZ plane.
var Up = V(0, 1, 0)

func toMgl(v pt.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) pt.Vector {
	return V(v.X(), v.Y(), v.Z())
}

// YawOrientation returns the orientation matrix of an object rotated about the vertical axis.
func YawOrientation(degrees float64) mgl64.Mat3 {
	return mgl64.HomogRotate3DY(mgl64.DegToRad(degrees)).Mat3()
}

// YawRotation is the quaternion equivalent of YawOrientation.
func YawRotation(degrees float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(degrees), mgl64.Vec3{0, 1, 0})
}
