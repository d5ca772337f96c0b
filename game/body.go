package game

// Team scopes a body's effective horizontal boundaries around the net.
type Team int

const (
	TeamNone  Team = iota // full arena, used by the ball
	TeamLeft              // may not cross right of the net
	TeamRight             // may not cross left of the net
)

// Arena is the raw boundary set: side walls and the ground line. y grows
// downward, so Ground is a maximum.
type Arena struct {
	Left, Right, Ground float64
}

func (a Arena) Width() float64 { return a.Right - a.Left }

// Body is a circular simulated entity. Position and velocity are owned
// exclusively by the body: nothing mutates them except Advance, explicit
// serve placement, and pairwise collision resolution.
type Body struct {
	Pos Vec
	Vel Vec

	Team         Team
	Frictionless bool // ball: no drag, bounces instead of stopping at walls

	arena     Arena
	relRadius float64 // radius at ScalingConstant arena width
	tun       *Tuning

	maxVelMult float64 // temporary cap multiplier granted by movements

	movements []*Movement

	// contact state, used to emit transition events once per change
	grounded    bool
	wallContact int
	netContact  int

	// set by collision resolution; exempts the next tick's velocity clamp
	// so bounce-imparted energy survives
	clampExempt bool

	Events Events
}

func NewBody(tun *Tuning, a Arena, team Team, relRadius float64, frictionless bool) *Body {
	return &Body{
		Team:         team,
		Frictionless: frictionless,
		arena:        a,
		relRadius:    relRadius,
		tun:          tun,
		maxVelMult:   1,
	}
}

// scale converts base tuning values to this arena's size.
func (b *Body) scale() float64 {
	return b.arena.Width() / b.tun.ScalingConstant
}

func (b *Body) Radius() float64      { return b.relRadius * b.scale() }
func (b *Body) Arena() Arena         { return b.arena }
func (b *Body) Grounded() bool       { return b.grounded }
func (b *Body) maxVelocity() float64 { return b.tun.MaxVelocity * b.scale() * b.maxVelMult }

// SetMaxVelocity raises (or lowers) the velocity cap by a multiplier.
// Movements granting temporary speed bonuses must revert it on completion.
func (b *Body) SetMaxVelocity(mult float64) { b.maxVelMult = mult }
func (b *Body) ResetMaxVelocity()           { b.maxVelMult = 1 }

// StartMovement activates m, first retiring any active movement of the same
// class so one-shot impulses never double-apply.
func (b *Body) StartMovement(m *Movement) {
	b.CancelMovements(m.Class)
	b.movements = append(b.movements, m)
}

// CancelMovements retires every active movement of the given class. Their
// onComplete callbacks still fire.
func (b *Body) CancelMovements(class Class) {
	kept := b.movements[:0]
	for _, m := range b.movements {
		if m.Class == class {
			m.complete()
			continue
		}
		kept = append(kept, m)
	}
	b.movements = kept
}

// CancelAllMovements retires everything, e.g. on serve placement.
func (b *Body) CancelAllMovements() {
	for _, m := range b.movements {
		m.complete()
	}
	b.movements = b.movements[:0]
}

// EffectiveBounds is the team-adjusted horizontal range for the body's
// center, derived purely from team, raw bounds and net width. Team bodies
// treat their net-side limit like a wall; the ball spans the full arena.
func (b *Body) EffectiveBounds() (left, right float64) {
	switch b.Team {
	case TeamLeft:
		return b.arena.Left, b.netMid() - b.netHalfWidth()
	case TeamRight:
		return b.netMid() + b.netHalfWidth(), b.arena.Right
	}
	return b.arena.Left, b.arena.Right
}

func (b *Body) netMid() float64       { return (b.arena.Left + b.arena.Right) / 2 }
func (b *Body) netHalfWidth() float64 { return b.tun.NetWidth * b.scale() / 2 }
func (b *Body) netTop() float64       { return b.arena.Ground - b.tun.NetHeight*b.scale() }

// Advance is the per-tick contract: movement contributions, drag, gravity,
// velocity clamp, position integration, collision resolution, commit. The
// order is load-bearing: collision-triggered velocity changes are never
// re-clamped in the same tick.
func (b *Body) Advance() {
	b.applyMovements()

	if !b.Frictionless {
		d := b.tun.Drag * b.scale()
		if b.Vel.X > -d && b.Vel.X < d {
			b.Vel.X = 0 // snap, so drag never causes perpetual creep
		} else {
			b.Vel.X -= d * sign(b.Vel.X)
		}
	}

	b.Vel.Y += b.tun.Gravity * b.scale()

	if b.clampExempt {
		b.clampExempt = false
	} else {
		max := b.maxVelocity()
		b.Vel.X = clampf(b.Vel.X, -max, max)
		b.Vel.Y = clampf(b.Vel.Y, -max, b.tun.TerminalVelocity*b.scale())
	}

	next := b.Pos.Add(b.Vel)
	b.resolveBoundaries(&next)
	b.Pos = next
}

// applyMovements sums every active movement's contribution into velocity,
// then retires the finished ones. Termination is checked after the
// contribution, so every movement contributes at least once; an invalid
// (NaN or panicking) step contributes zero and retires immediately.
func (b *Body) applyMovements() {
	kept := b.movements[:0]
	for _, m := range b.movements {
		c, ok := m.invoke()
		b.Vel.X += c.DX
		b.Vel.Y += c.DY
		if !ok || m.expired() {
			m.complete()
			continue
		}
		kept = append(kept, m)
	}
	b.movements = kept
}

// Resize swaps in a new boundary set, carrying position over proportionally
// so bodies keep their relative placement. Radius, accelerations and caps
// follow automatically since they derive from the arena width.
func (b *Body) Resize(a Arena) {
	old := b.arena
	if old.Width() > Epsilon {
		fx := (b.Pos.X - old.Left) / old.Width()
		b.Pos.X = a.Left + fx*a.Width()
		b.Pos.Y = a.Ground - (old.Ground-b.Pos.Y)*(a.Width()/old.Width())
	} else {
		b.Pos.X = a.Left
		b.Pos.Y = a.Ground
	}
	b.arena = a
	lo, hi := b.EffectiveBounds()
	b.Pos.X = clampf(b.Pos.X, lo+b.Radius(), hi-b.Radius())
	if b.Pos.Y > a.Ground {
		b.Pos.Y = a.Ground
	}
}

func (b *Body) setGrounded(on bool) {
	if on == b.grounded {
		return
	}
	b.grounded = on
	if on {
		b.Events.emitGround(1)
	} else {
		b.Events.emitGround(0)
	}
}

func (b *Body) setWallContact(dir int) {
	if dir != b.wallContact {
		b.wallContact = dir
		b.Events.emitWall(dir)
	}
}

func (b *Body) setNetContact(dir int) {
	if dir != b.netContact {
		b.netContact = dir
		b.Events.emitNet(dir)
	}
}
