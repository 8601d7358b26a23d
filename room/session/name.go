package session

import (
	"math/rand"
	"time"
)

var (
	adjectives = []string{
		"silvered", "polished", "gleaming", "bright", "hollow", "infinite", "mirrored",
		"quiet", "distant", "crystal", "glassy", "burnished", "fractured", "clear",
		"bent", "folded", "nested", "endless", "pale", "shining", "doubled", "angled",
		"facing", "vanishing", "inverted", "tinted", "frosted", "shimmering", "lucid",
	}

	nouns = []string{
		"mirror", "glass", "echo", "image", "corridor", "lantern", "prism", "beam",
		"ray", "pane", "window", "lens", "halo", "gallery", "hall", "shadow", "spark",
		"facet", "surface", "horizon", "lake", "pool", "twin", "ghost", "path",
		"cube", "room", "tunnel", "reflection", "glint",
	}
)

// GenerateName creates a memorable session name in the format "adjective-noun"
func GenerateName() string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return adjectives[r.Intn(len(adjectives))] + "-" + nouns[r.Intn(len(nouns))]
}

// GenerateID combines a memorable name with a timestamp
func GenerateID() string {
	timestamp := time.Now().UTC().Format("20060102-150405.000")
	return GenerateName() + "-" + timestamp
}
