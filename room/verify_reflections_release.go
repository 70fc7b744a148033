//go:build !verify_reflections
// +build !verify_reflections

package room

import "github.com/fogleman/pt/pt"

func verifyReflectionLaw(incident, normal, reflected pt.Vector) {}
