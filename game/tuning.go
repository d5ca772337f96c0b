package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay constant of the simulation. Values are
// per-tick and calibrated for an arena ScalingConstant units wide; bodies
// scale them by areaWidth/ScalingConstant so feel is invariant to arena
// size.
type Tuning struct {
	ScalingConstant float64 `yaml:"scalingConstant"` // arena width the base values are tuned at

	Gravity          float64 `yaml:"gravity"`
	Drag             float64 `yaml:"drag"`             // per-tick horizontal decel; below this vx snaps to 0
	TerminalVelocity float64 `yaml:"terminalVelocity"` // downward vy cap
	MaxVelocity      float64 `yaml:"maxVelocity"`      // base |vx| and upward vy cap

	RunAccel          float64 `yaml:"runAccel"`
	OppositeRunMult   float64 `yaml:"oppositeRunMult"`   // accel multiplier during the direction-change bonus
	OppositeRunFrames int     `yaml:"oppositeRunFrames"` // bonus window before downgrading to normal run
	OppositeRunVel    float64 `yaml:"oppositeRunVel"`    // temporary max-velocity multiplier while bonus run lives

	JumpForce     float64 `yaml:"jumpForce"`
	JumpFrames    int     `yaml:"jumpFrames"`
	JumpMinFrames int     `yaml:"jumpMinFrames"` // released jumps still run at least this long

	WallJumpForceX   float64 `yaml:"wallJumpForceX"`
	WallJumpForceY   float64 `yaml:"wallJumpForceY"`
	WallJumpFrames   int     `yaml:"wallJumpFrames"`
	WallJumpCooldown int     `yaml:"wallJumpCooldown"` // ticks between wall jumps

	DirChangeJumpForce float64 `yaml:"dirChangeJumpForce"`
	DirChangeLock      int     `yaml:"dirChangeLock"`      // ticks of horizontal damping after a direction-change jump
	DirChangeLockDamp  float64 `yaml:"dirChangeLockDamp"`  // fraction of vx cancelled per locked tick
	DirChangeWindow    int     `yaml:"dirChangeWindow"`    // reversal recency required for the stronger jump

	JumpBufferFrames int     `yaml:"jumpBufferFrames"` // airborne jump presses replay on landing within this window
	DuckAccel        float64 `yaml:"duckAccel"`        // extra downward accel while ducking

	SlimeRadius float64 `yaml:"slimeRadius"` // at ScalingConstant arena width
	BallRadius  float64 `yaml:"ballRadius"`
	SlimeMass   float64 `yaml:"slimeMass"`
	BallMass    float64 `yaml:"ballMass"`

	Restitution  float64 `yaml:"restitution"`  // ball-to-slime impulse
	SpinFraction float64 `yaml:"spinFraction"` // slime vx inherited by the ball on contact
	WallBounce   float64 `yaml:"wallBounce"`   // ball energy retained off side walls
	NetBounce    float64 `yaml:"netBounce"`    // ball energy retained off the net
	NetBoost     float64 `yaml:"netBoost"`     // upward kick off the net's side faces

	NetWidth  float64 `yaml:"netWidth"`  // at ScalingConstant arena width
	NetHeight float64 `yaml:"netHeight"` // measured up from the ground

	ServeHeight float64 `yaml:"serveHeight"` // ball drop height above the ground on serve
}

func DefaultTuning() *Tuning {
	return &Tuning{
		ScalingConstant: 1000,

		Gravity:          0.6,
		Drag:             0.45,
		TerminalVelocity: 18,
		MaxVelocity:      9,

		RunAccel:          0.85,
		OppositeRunMult:   1.8,
		OppositeRunFrames: 12,
		OppositeRunVel:    1.3,

		JumpForce:     1.9,
		JumpFrames:    20,
		JumpMinFrames: 6,

		WallJumpForceX:   1.2,
		WallJumpForceY:   1.6,
		WallJumpFrames:   14,
		WallJumpCooldown: 30,

		DirChangeJumpForce: 2.4,
		DirChangeLock:      10,
		DirChangeLockDamp:  0.35,
		DirChangeWindow:    10,

		JumpBufferFrames: 8,
		DuckAccel:        0.9,

		SlimeRadius: 37.5,
		BallRadius:  20,
		SlimeMass:   3,
		BallMass:    1,

		Restitution:  0.95,
		SpinFraction: 0.35,
		WallBounce:   0.8,
		NetBounce:    0.75,
		NetBoost:     1.5,

		NetWidth:  10,
		NetHeight: 100,

		ServeHeight: 200,
	}
}

// LoadTuning returns the defaults overlaid with the YAML file at path, or
// plain defaults when path is empty.
func LoadTuning(path string) (*Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, t); err != nil {
		return nil, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	return t, nil
}
