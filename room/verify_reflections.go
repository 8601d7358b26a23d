//go:build verify_reflections
// +build verify_reflections

package room

import (
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"
)

const (
	lengthEpsilon = 1e-7
	angleEpsilon  = 1e-7
)

func init() {
	fmt.Println("Reflection verification enabled.")
}

func verifyReflectionLaw(incident pt.Ray, normal pt.Vector, reflected pt.Ray) {
	// Angle of incidence measured against the inward normal equals the angle of reflection
	incidentAngle := math.Acos(incident.Direction.Negate().Dot(normal))
	reflectedAngle := math.Acos(reflected.Direction.Dot(normal))
	if math.Abs(incidentAngle-reflectedAngle) > angleEpsilon {
		panic(fmt.Sprintf("angle of incidence %f != angle of reflection %f", incidentAngle, reflectedAngle))
	}
	if math.Abs(reflected.Direction.Length()-1.0) > lengthEpsilon {
		panic(fmt.Sprintf("reflected direction %v is not unit length", reflected.Direction))
	}
	// Reflected ray must head back into the room
	if reflected.Direction.Dot(normal) < 0 {
		panic("reflected ray points out of the room")
	}
}
