package experiment

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

var (
	adjectives = []string{
		"polished", "silvered", "curved", "bright", "dim", "angled", "oblique",
		"convex", "concave", "mirrored", "glancing", "faint", "hidden", "bent",
		"crystal", "distant", "narrow", "scattered", "straight", "quiet",
		"twilight", "frosty", "lucky", "restless", "wandering", "nameless",
	}

	nouns = []string{
		"mirror", "beam", "prism", "lens", "glint", "flare", "halo", "glass",
		"ray", "arc", "corner", "facet", "spark", "shadow", "caustic", "focus",
		"echo", "lantern", "pane", "signal", "horizon", "chord", "ripple",
		"beacon", "shimmer", "orbit",
	}
)

// GenerateRunName creates a memorable identifier in the format
// "adjective-noun"
func GenerateRunName() string {
	return adjectives[rand.IntN(len(adjectives))] + "-" + nouns[rand.IntN(len(nouns))]
}

// GenerateRunID makes the memorable name unique with the first block of a
// random UUID
func GenerateRunID() string {
	return GenerateRunName() + "-" + uuid.NewString()[:8]
}
