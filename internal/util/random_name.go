package util

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Patient", "Clever", "Sly", "Bold", "Quiet", "Swift", "Lucky", "Brave", "Calm", "Sharp",
	"Red", "Blue", "Green", "Golden", "Silver", "Velvet", "Grand", "Noble", "Steady", "Keen",
}

var figures = []string{
	"Baron", "Duchess", "Marquis", "Countess", "Chevalier", "Abbot", "Corsair", "Minstrel",
	"Falconer", "Cartographer", "Navigator", "Archivist", "Gambler", "Croupier", "Duelist",
}

// GetRandomName returns a random display name by combining an adjective
// with a figure. Used when a player signs up without one.
func GetRandomName() string {
	return fmt.Sprintf("%s %s", adjectives[rand.Intn(len(adjectives))], figures[rand.Intn(len(figures))])
}
