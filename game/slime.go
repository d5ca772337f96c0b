package game

// slimeState is the control state of a player body.
type slimeState int

const (
	stateGrounded slimeState = iota
	stateAirborne
	stateHuggingWall
)

// Input is the sampled held-state of a player's controls for one tick.
// Edge detection against the previous sample turns it into the discrete
// press/release commands the controller consumes.
type Input struct {
	Move int  `json:"move"` // -1, 0, 1
	Jump bool `json:"jump"`
	Duck bool `json:"duck"`
}

// Slime drives a player body: it owns the control state machine, translates
// jump presses into the right movement (standard, direction-change, wall
// jump or buffered), and forwards its body's collision events to Events
// after updating state.
type Slime struct {
	Body *Body

	state  slimeState
	hugDir int

	moveDir     int // currently held direction
	lastMoveDir int // previous nonzero direction
	reversalAge int // ticks since the last direction reversal

	jumpReleased bool
	jumpBuffer   int // ticks left to replay an airborne jump press
	wallJumpCD   int

	ducking bool

	prev Input

	Events Events
}

const neverReversed = 1 << 30

func NewSlime(b *Body) *Slime {
	s := &Slime{Body: b, state: stateAirborne, reversalAge: neverReversed}
	b.Events = Events{
		Ground: s.onGround,
		Wall:   s.onWall,
		Net:    s.onNet,
	}
	return s
}

// reset returns the controller to a neutral state after serve placement.
// The previous input sample is cleared too, so keys still held re-press on
// the next Apply instead of being lost with the cancelled movements.
func (s *Slime) reset() {
	s.state = stateGrounded
	s.hugDir = 0
	s.moveDir = 0
	s.lastMoveDir = 0
	s.reversalAge = neverReversed
	s.jumpReleased = false
	s.jumpBuffer = 0
	s.wallJumpCD = 0
	s.ducking = false
	s.prev = Input{}
}

// Apply turns the sampled input into press/release commands by comparing
// against the previous sample.
func (s *Slime) Apply(in Input) {
	if in.Move != s.prev.Move {
		if s.prev.Move != 0 {
			s.MoveRelease(s.prev.Move)
		}
		if in.Move != 0 {
			s.MovePress(in.Move)
		}
	}
	if in.Jump != s.prev.Jump {
		if in.Jump {
			s.JumpPress()
		} else {
			s.JumpRelease()
		}
	}
	if in.Duck != s.prev.Duck {
		if in.Duck {
			s.DuckPress()
		} else {
			s.DuckRelease()
		}
	}
	s.prev = in
}

// Tick ages the controller's windows and advances the body.
func (s *Slime) Tick() {
	if s.jumpBuffer > 0 {
		s.jumpBuffer--
	}
	if s.wallJumpCD > 0 {
		s.wallJumpCD--
	}
	if s.reversalAge < neverReversed {
		s.reversalAge++
	}
	if s.ducking {
		s.Body.Vel.Y += s.Body.tun.DuckAccel * s.Body.scale()
	}
	s.Body.Advance()
}

// MovePress starts a run in dir. Reversing the held direction grants the
// opposite-run bonus and opens the direction-change jump window.
func (s *Slime) MovePress(dir int) {
	if dir == 0 || dir == s.moveDir {
		return
	}
	reversed := s.lastMoveDir == -dir && s.lastMoveDir != 0
	s.moveDir = dir
	s.lastMoveDir = dir
	stop := func() bool { return s.moveDir != dir }
	if reversed {
		s.reversalAge = 0
		s.Body.StartMovement(NewOppositeRun(s.Body, dir, stop))
		return
	}
	s.Body.StartMovement(NewRun(s.Body, dir, stop))
}

func (s *Slime) MoveRelease(dir int) {
	if s.moveDir == dir {
		s.moveDir = 0
	}
}

// JumpPress branches on control state: grounded starts a jump (the stronger
// direction-change variant inside the reversal window), hugging a wall
// performs a cooldown-gated wall jump, and airborne presses are buffered for
// replay on the next landing rather than dropped.
func (s *Slime) JumpPress() {
	s.jumpReleased = false
	if s.ducking {
		return
	}
	switch {
	case s.state == stateGrounded:
		s.startGroundJump(s.reversalAge <= s.Body.tun.DirChangeWindow)
	case s.state == stateHuggingWall && s.wallJumpCD == 0:
		s.Body.StartMovement(NewWallJump(s.Body, s.hugDir))
		s.wallJumpCD = s.Body.tun.WallJumpCooldown
	default:
		s.jumpBuffer = s.Body.tun.JumpBufferFrames
	}
}

func (s *Slime) JumpRelease() {
	s.jumpReleased = true
}

func (s *Slime) DuckPress()   { s.ducking = true }
func (s *Slime) DuckRelease() { s.ducking = false }

func (s *Slime) startGroundJump(dirChange bool) {
	released := func() bool { return s.jumpReleased }
	if dirChange {
		s.Body.StartMovement(NewDirChangeJump(s.Body, released))
		return
	}
	s.Body.StartMovement(NewJump(s.Body, released))
}

func (s *Slime) onGround(dir int) {
	if dir != 0 {
		s.state = stateGrounded
		s.hugDir = 0
		if s.jumpBuffer > 0 {
			s.jumpBuffer = 0
			s.startGroundJump(false)
		}
	} else if s.state == stateGrounded {
		s.state = stateAirborne
		// jumping while pressed against a wall or the net fires no new
		// contact event; pick up the standing contact here
		if d := s.Body.wallContact; d != 0 {
			s.hug(d)
		} else if d := s.Body.netContact; d != 0 {
			s.hug(d)
		}
	}
	s.Events.emitGround(dir)
}

func (s *Slime) onWall(dir int) {
	s.hug(dir)
	s.Events.emitWall(dir)
}

func (s *Slime) onNet(dir int) {
	s.hug(dir)
	s.Events.emitNet(dir)
}

func (s *Slime) hug(dir int) {
	if dir != 0 && s.state != stateGrounded {
		s.state = stateHuggingWall
		s.hugDir = dir
	} else if dir == 0 && s.state == stateHuggingWall {
		s.state = stateAirborne
	}
}
