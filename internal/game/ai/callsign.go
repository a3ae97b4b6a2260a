package ai

import (
	"fmt"
	"math/rand"
)

var ranks = []string{
	"Pvt", "Cpl", "Sgt", "Lt", "Capt", "Maj", "Col",
}

var adjectives = []string{
	"Swift", "Iron", "Silent", "Crimson", "Shadow", "Rogue", "Steel", "Ghost",
	"Arctic", "Desert", "Thunder", "Savage", "Grim", "Lone", "Viper", "Ashen",
}

var nouns = []string{
	"Wolf", "Hawk", "Bear", "Viper", "Falcon", "Badger", "Jackal", "Raven",
	"Panther", "Cobra", "Bison", "Lynx", "Hornet", "Wraith", "Boar", "Kite",
}

// GenerateCallsign produces a "<Rank> <Adjective> <Noun>" identity for a
// generated AI opponent, e.g. "Sgt Crimson Wolf".
func GenerateCallsign() string {
	rank := ranks[rand.Intn(len(ranks))]
	adj := adjectives[rand.Intn(len(adjectives))]
	noun := nouns[rand.Intn(len(nouns))]
	return fmt.Sprintf("%s %s %s", rank, adj, noun)
}
