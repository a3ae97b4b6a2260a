package game

import "tankarena/internal/config"

// AIMeta holds the optional AI-only descriptor carried by a Player.
type AIMeta struct {
	Level    string // easy | intermediate | hard | insane
	Strategy string
}

// Player is the descriptor half of the player/tank pair, looked up by id in
// GameState.Players. It never stores a pointer to its Tank — both tables are
// keyed by the same id and looked up independently, avoiding a cyclic
// reference between the two.
type Player struct {
	ID         string
	Callname   string
	TankColor  string
	TankCamo   string
	Team       config.TeamDef
	LastUpdateMs float64
	AI         *AIMeta // nil for human players
}

// NewPlayer constructs a human player descriptor.
func NewPlayer(id, callname, color, camo string, team config.TeamDef) *Player {
	return &Player{ID: id, Callname: callname, TankColor: color, TankCamo: camo, Team: team}
}

// NewAIPlayer constructs an AI player descriptor using the fixed AI
// pseudo-team and a generated callsign.
func NewAIPlayer(id, callsign, color, camo, level string) *Player {
	return &Player{
		ID:        id,
		Callname:  callsign,
		TankColor: color,
		TankCamo:  camo,
		Team:      config.AITeam,
		AI:        &AIMeta{Level: level},
	}
}
