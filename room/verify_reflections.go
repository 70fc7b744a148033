//go:build verify_reflections
// +build verify_reflections

package room

import (
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"
)

// Constants for verification
const (
	lengthEpsilon = 1e-7
	angleEpsilon  = 1e-6
)

func init() {
	fmt.Println("Reflection verification enabled.")
}

// verifyReflectionLaw panics when a reflection breaks the mirror law.
func verifyReflectionLaw(incident, normal, reflected pt.Vector) {
	// 1. Angle of incidence should equal angle of reflection
	incidentAngle := math.Acos(clamp(-incident.Dot(normal), -1, 1))
	reflectedAngle := math.Acos(clamp(reflected.Dot(normal), -1, 1))
	if math.Abs(incidentAngle-reflectedAngle) > angleEpsilon {
		panic(fmt.Sprintf("angle of incidence %v should equal angle of reflection %v", incidentAngle, reflectedAngle))
	}

	// 2. Reflected direction should keep unit length
	if math.Abs(reflected.Length()-1.0) > lengthEpsilon {
		panic(fmt.Sprintf("reflected direction has length %v", reflected.Length()))
	}

	// 3. Everything stays in the room plane
	if reflected.Z != 0 {
		panic("reflected direction left the room plane")
	}
}
