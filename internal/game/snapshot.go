package game

import "math"

// Numeric fields are quantized before transmit: positions to 0.1px,
// velocities to 0.1, angles to 0.01 rad, attributes to integer.

func quantize(v, step float64) float64 {
	return math.Round(v/step) * step
}

func quantizePos(v float64) float64 { return quantize(v, 0.1) }
func quantizeVel(v float64) float64 { return quantize(v, 0.1) }
func quantizeAngle(v float64) float64 { return quantize(v, 0.01) }
func quantizeAttr(v float64) int      { return int(math.Round(v)) }

// Vec2View is the quantized wire form of a Vector2.
type Vec2View struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TankView is the replicated subset of Tank state.
type TankView struct {
	ID         string   `json:"id"`
	Position   Vec2View `json:"position"`
	Angle      float64  `json:"angle"`
	Velocity   Vec2View `json:"velocity"`
	Health     int      `json:"health"`
	Speed      int      `json:"speed"`
	Gasoline   int      `json:"gasoline"`
	Rotation   int      `json:"rotation"`
	Ammunition int      `json:"ammunition"`
	Kinetics   int      `json:"kinetics"`
	Alive      bool     `json:"alive"`
	RespawnMs  int      `json:"respawnMs"`
	Recoil     RecoilView `json:"recoil"`
}

// RecoilView is the replicated (advisory-only) animation state.
type RecoilView struct {
	BodyOffset   Vec2View `json:"bodyOffset"`
	TurretOffset Vec2View `json:"turretOffset"`
}

// BuildTankView quantizes a Tank for the wire.
func BuildTankView(t *Tank) TankView {
	return TankView{
		ID:         t.ID,
		Position:   Vec2View{quantizePos(t.Position.X), quantizePos(t.Position.Y)},
		Angle:      quantizeAngle(t.Angle),
		Velocity:   Vec2View{quantizeVel(t.Velocity.X), quantizeVel(t.Velocity.Y)},
		Health:     quantizeAttr(t.Attributes.Health),
		Speed:      quantizeAttr(t.Attributes.Speed),
		Gasoline:   quantizeAttr(t.Attributes.Gasoline),
		Rotation:   quantizeAttr(t.Attributes.Rotation),
		Ammunition: quantizeAttr(t.Attributes.Ammunition),
		Kinetics:   quantizeAttr(t.Attributes.Kinetics),
		Alive:      t.Alive,
		RespawnMs:  int(math.Ceil(t.RespawnMs)),
		Recoil: RecoilView{
			BodyOffset:   Vec2View{quantizePos(t.Recoil.BodyOffset.X), quantizePos(t.Recoil.BodyOffset.Y)},
			TurretOffset: Vec2View{quantizePos(t.Recoil.TurretOffset.X), quantizePos(t.Recoil.TurretOffset.Y)},
		},
	}
}

// ShellView is the replicated subset of Shell state. Shells always move, so
// every shell is included in every delta.
type ShellView struct {
	ID       string   `json:"id"`
	Position Vec2View `json:"position"`
	Velocity Vec2View `json:"velocity"`
}

// BuildShellView quantizes a Shell for the wire.
func BuildShellView(s *Shell) ShellView {
	return ShellView{
		ID:       s.ID,
		Position: Vec2View{quantizePos(s.Position.X), quantizePos(s.Position.Y)},
		Velocity: Vec2View{quantizeVel(s.Velocity.X), quantizeVel(s.Velocity.Y)},
	}
}

// UpgradeView is the replicated subset of Upgrade state.
type UpgradeView struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	Position  Vec2View `json:"position"`
	Rotation  float64  `json:"rotation"`
	Collected bool     `json:"collected"`
}

// BuildUpgradeView quantizes an Upgrade for the wire.
func BuildUpgradeView(u *Upgrade) UpgradeView {
	return UpgradeView{
		ID:        u.ID,
		Kind:      string(u.Kind),
		Position:  Vec2View{quantizePos(u.Position.X), quantizePos(u.Position.Y)},
		Rotation:  quantizeAngle(u.Rotation),
		Collected: u.Collected,
	}
}

// TeamView is a player's team identity on the wire.
type TeamView struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PlayerView is the replicated subset of Player state.
type PlayerView struct {
	ID        string   `json:"id"`
	Callname  string   `json:"callname"`
	TankColor string   `json:"tankColor"`
	TankCamo  string   `json:"tankCamo"`
	Team      TeamView `json:"team"`
	IsAI      bool     `json:"isAI"`
	AILevel   string   `json:"aiLevel,omitempty"`
}

// BuildPlayerView converts a Player into its wire form.
func BuildPlayerView(p *Player) PlayerView {
	v := PlayerView{
		ID:        p.ID,
		Callname:  p.Callname,
		TankColor: p.TankColor,
		TankCamo:  p.TankCamo,
		Team:      TeamView{Name: p.Team.Name, Color: p.Team.Color},
	}
	if p.AI != nil {
		v.IsAI = true
		v.AILevel = p.AI.Level
	}
	return v
}

// TreeView is the replicated subset of Tree state.
type TreeView struct {
	ID            string   `json:"id"`
	Position      Vec2View `json:"position"`
	Size          float64  `json:"size"`
	Type          string   `json:"type"`
	SwingAngle    float64  `json:"swingAngle"`
	FoliageOffset Vec2View `json:"foliageOffset"`
	LeafRotation  float64  `json:"leafRotation"`
}

// BuildTreeView quantizes a Tree for the wire.
func BuildTreeView(t *Tree) TreeView {
	return TreeView{
		ID:            t.ID,
		Position:      Vec2View{quantizePos(t.Position.X), quantizePos(t.Position.Y)},
		Size:          t.Size,
		Type:          t.Type,
		SwingAngle:    quantizeAngle(t.SwingAngle),
		FoliageOffset: Vec2View{quantizePos(t.FoliageOffset.X), quantizePos(t.FoliageOffset.Y)},
		LeafRotation:  t.LeafRotation,
	}
}

// PatchView is the replicated subset of Patch state.
type PatchView struct {
	ID       string   `json:"id"`
	Position Vec2View `json:"position"`
	Size     float64  `json:"size"`
	Type     string   `json:"type"`
	Rotation float64  `json:"rotation"`
}

// BuildPatchView converts a Patch into its wire form.
func BuildPatchView(p *Patch) PatchView {
	return PatchView{
		ID:       p.ID,
		Position: Vec2View{quantizePos(p.Position.X), quantizePos(p.Position.Y)},
		Size:     p.Size,
		Type:     p.Type,
		Rotation: quantizeAngle(p.Rotation),
	}
}

// FullState is every replicated field of GameState, used both for the
// periodic full snapshot and for a joining client's initial state push.
type FullState struct {
	GameTimeMs float64       `json:"gameTimeMs"`
	Tanks      []TankView    `json:"tanks"`
	Shells     []ShellView   `json:"shells"`
	Upgrades   []UpgradeView `json:"upgrades"`
	Players    []PlayerView  `json:"players"`
	Trees      []TreeView    `json:"trees"`
	Patches    []PatchView   `json:"patches"`
}

// BuildFullState snapshots every replicated entity in gs.
func BuildFullState(gs *GameState) FullState {
	fs := FullState{GameTimeMs: gs.GameTimeMs}
	for _, t := range gs.Tanks {
		fs.Tanks = append(fs.Tanks, BuildTankView(t))
	}
	for _, s := range gs.Shells {
		fs.Shells = append(fs.Shells, BuildShellView(s))
	}
	for _, u := range gs.Upgrades {
		fs.Upgrades = append(fs.Upgrades, BuildUpgradeView(u))
	}
	for _, p := range gs.Players {
		fs.Players = append(fs.Players, BuildPlayerView(p))
	}
	for _, t := range gs.Trees {
		fs.Trees = append(fs.Trees, BuildTreeView(t))
	}
	for _, p := range gs.Patches {
		fs.Patches = append(fs.Patches, BuildPatchView(p))
	}
	return fs
}
