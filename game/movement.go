package game

import "math"

// Class tags movements so starting a new one can displace a conflicting one
// instead of silently stacking a second one-shot impulse.
type Class int

const (
	ClassRun Class = iota
	ClassJump
)

// Contribution is one tick's worth of velocity change from a movement.
type Contribution struct {
	DX, DY float64
}

// Movement is a resumable per-tick velocity contributor: step is invoked
// once per tick until the internal duration or the termination predicate
// ends it, then onComplete fires exactly once and the movement is removed.
// t passed to step and done is the number of ticks already contributed.
type Movement struct {
	Class      Class
	step       func(t int) Contribution
	done       func(t int) bool
	onComplete func()

	ticks    int
	finished bool
}

// invoke runs one tick of the movement. ok=false means the contribution was
// invalid (panic or NaN) and the movement must be retired with a zero
// contribution; a broken effect never takes the tick down.
func (m *Movement) invoke() (c Contribution, ok bool) {
	ok = true
	defer func() {
		if recover() != nil {
			c, ok = Contribution{}, false
		}
	}()
	c = m.step(m.ticks)
	m.ticks++
	if math.IsNaN(c.DX) || math.IsNaN(c.DY) {
		return Contribution{}, false
	}
	return c, ok
}

// expired is checked after invoke, so a movement always contributes at
// least once.
func (m *Movement) expired() bool {
	return m.done != nil && m.done(m.ticks)
}

// complete fires onComplete exactly once, including when the movement is
// cancelled mid-duration.
func (m *Movement) complete() {
	if m.finished {
		return
	}
	m.finished = true
	if m.onComplete != nil {
		m.onComplete()
	}
}

// NewRun is constant horizontal acceleration with no duration; it ends only
// when stop reports true (input released or direction superseded).
func NewRun(b *Body, dir int, stop func() bool) *Movement {
	accel := b.tun.RunAccel * b.scale()
	return &Movement{
		Class: ClassRun,
		step: func(int) Contribution {
			return Contribution{DX: float64(dir) * accel}
		},
		done: func(int) bool { return stop() },
	}
}

// NewOppositeRun rewards a direction reversal: elevated acceleration and a
// raised velocity cap for a bonus window, then it downgrades to a normal run
// in place without the caller swapping movements.
func NewOppositeRun(b *Body, dir int, stop func() bool) *Movement {
	accel := b.tun.RunAccel * b.scale()
	bonus := accel * b.tun.OppositeRunMult
	frames := b.tun.OppositeRunFrames
	return &Movement{
		Class: ClassRun,
		step: func(t int) Contribution {
			if t == 0 {
				// granted on the first contribution, after the completion of
				// any displaced run has already reset the cap
				b.SetMaxVelocity(b.tun.OppositeRunVel)
			}
			a := accel
			if t < frames {
				a = bonus
			}
			return Contribution{DX: float64(dir) * a}
		},
		done:       func(int) bool { return stop() },
		onComplete: b.ResetMaxVelocity,
	}
}

// NewJump is a decaying upward force over a fixed window. Releasing the key
// ends it early, but never before the minimum-duration floor.
func NewJump(b *Body, released func() bool) *Movement {
	force := b.tun.JumpForce * b.scale()
	dur := b.tun.JumpFrames
	min := b.tun.JumpMinFrames
	return &Movement{
		Class: ClassJump,
		step: func(t int) Contribution {
			return Contribution{DY: -force * (1 - float64(t)/float64(dur))}
		},
		done: func(t int) bool {
			return t >= dur || (t >= min && released())
		},
	}
}

// NewWallJump pushes up and away from the wall the body is hugging; wallDir
// is the contact direction, so the horizontal force is its negation.
func NewWallJump(b *Body, wallDir int) *Movement {
	fx := b.tun.WallJumpForceX * b.scale()
	fy := b.tun.WallJumpForceY * b.scale()
	dur := b.tun.WallJumpFrames
	away := float64(-wallDir)
	return &Movement{
		Class: ClassJump,
		step: func(t int) Contribution {
			decay := 1 - float64(t)/float64(dur)
			return Contribution{DX: away * fx * decay, DY: -fy * decay}
		},
		done: func(t int) bool { return t >= dur },
	}
}

// NewDirChangeJump is the stronger jump granted right after a direction
// reversal. For the first DirChangeLock ticks it damps vx so the body cannot
// bank both max jump height and max horizontal bonus at once.
func NewDirChangeJump(b *Body, released func() bool) *Movement {
	force := b.tun.DirChangeJumpForce * b.scale()
	dur := b.tun.JumpFrames
	min := b.tun.JumpMinFrames
	lock := b.tun.DirChangeLock
	damp := b.tun.DirChangeLockDamp
	return &Movement{
		Class: ClassJump,
		step: func(t int) Contribution {
			c := Contribution{DY: -force * (1 - float64(t)/float64(dur))}
			if t < lock {
				c.DX = -b.Vel.X * damp
			}
			return c
		},
		done: func(t int) bool {
			return t >= dur || (t >= min && released())
		},
	}
}
