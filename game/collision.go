package game

import "math"

// resolveBoundaries checks the tentative next position against ground,
// walls and net, mutating it and velocity in place. Contact-state setters
// emit transition events once per change.
func (b *Body) resolveBoundaries(next *Vec) {
	b.resolveGround(next)
	if b.Team == TeamNone {
		b.resolveArenaWalls(next)
		b.resolveBallNet(next)
	} else {
		b.resolveTeamBounds(next)
	}
}

func (b *Body) resolveGround(next *Vec) {
	if next.Y >= b.arena.Ground {
		next.Y = b.arena.Ground
		b.Vel.Y = 0
		b.setGrounded(true)
		return
	}
	b.setGrounded(false)
}

// resolveTeamBounds clamps a team body between its outer wall and the net.
// The net-side limit behaves exactly like a wall but reports on the net
// event stream.
func (b *Body) resolveTeamBounds(next *Vec) {
	lo, hi := b.EffectiveBounds()
	minX := lo + b.Radius()
	maxX := hi - b.Radius()

	contact := 0
	switch {
	case next.X <= minX:
		next.X = minX
		b.Vel.X = 0
		contact = -1
	case next.X >= maxX:
		next.X = maxX
		b.Vel.X = 0
		contact = 1
	}

	wall, net := 0, 0
	if contact != 0 {
		if b.contactIsNet(contact) {
			net = contact
		} else {
			wall = contact
		}
	}
	b.setWallContact(wall)
	b.setNetContact(net)
}

// contactIsNet reports whether the boundary hit in direction dir is the net
// rather than an outer wall.
func (b *Body) contactIsNet(dir int) bool {
	return (b.Team == TeamLeft && dir == 1) || (b.Team == TeamRight && dir == -1)
}

// resolveArenaWalls bounces the ball off the outer walls, retaining
// WallBounce of its horizontal energy.
func (b *Body) resolveArenaWalls(next *Vec) {
	minX := b.arena.Left + b.Radius()
	maxX := b.arena.Right - b.Radius()

	contact := 0
	switch {
	case next.X <= minX:
		next.X = minX
		b.Vel.X = math.Abs(b.Vel.X) * b.tun.WallBounce
		b.clampExempt = true
		contact = -1
	case next.X >= maxX:
		next.X = maxX
		b.Vel.X = -math.Abs(b.Vel.X) * b.tun.WallBounce
		b.clampExempt = true
		contact = 1
	}
	b.setWallContact(contact)
}

// resolveBallNet gives the net full 2-D geometry for the ball: side faces
// reflect vx with NetBounce and kick slightly upward, the top face reflects
// along the circle-center-to-closest-point normal so a grazing ball leaves
// on the correct diagonal instead of purely vertically.
func (b *Body) resolveBallNet(next *Vec) {
	mid := b.netMid()
	half := b.netHalfWidth()
	top := b.netTop()
	r := b.Radius()

	closest := Vec{
		X: clampf(next.X, mid-half, mid+half),
		Y: clampf(next.Y, top, b.arena.Ground),
	}
	delta := next.Sub(closest)
	dist := delta.Length()
	if dist >= r {
		b.setNetContact(0)
		return
	}
	b.clampExempt = true

	if next.Y >= top {
		// side face
		dir := int(sign(next.X - mid))
		if dir == 0 {
			dir = 1 // degenerate center overlap, push right
		}
		next.X = mid + float64(dir)*(half+r)
		b.Vel.X = float64(dir) * math.Abs(b.Vel.X) * b.tun.NetBounce
		b.Vel.Y -= b.tun.NetBoost * b.scale()
		b.setNetContact(dir)
		return
	}

	// top face, including corners
	if dist < Epsilon {
		dist = Epsilon
		delta = Vec{0, -Epsilon}
	}
	n := delta.Scale(1 / dist)
	*next = closest.Add(n.Scale(r))
	if b.Vel.Dot(n) < 0 {
		b.Vel = b.Vel.Sub(n.Scale((1 + b.tun.NetBounce) * b.Vel.Dot(n)))
	}
	b.setNetContact(int(sign(n.X)))
}

// ResolveBallCollision applies a billiard-style elastic impulse between the
// ball and a slime body when their circles overlap. Called once per pair
// per tick, after both bodies have advanced. The ball additionally inherits
// SpinFraction of the slime's horizontal velocity; that part is deliberately
// asymmetric gameplay tuning, not physics.
func ResolveBallCollision(tun *Tuning, ball, slime *Body) {
	delta := ball.Pos.Sub(slime.Pos)
	dist := delta.Length()
	sum := ball.Radius() + slime.Radius()
	if dist >= sum {
		return
	}
	if dist < Epsilon {
		dist = Epsilon
		delta = Vec{0, -Epsilon}
	}
	n := delta.Scale(1 / dist)

	rel := ball.Vel.Sub(slime.Vel)
	vn := rel.Dot(n)
	if vn > 0 {
		return // already separating
	}

	j := -(1 + tun.Restitution) * vn / (1/tun.BallMass + 1/tun.SlimeMass)
	ball.Vel = ball.Vel.Add(n.Scale(j / tun.BallMass))
	slime.Vel = slime.Vel.Sub(n.Scale(j / tun.SlimeMass))
	ball.Vel.X += tun.SpinFraction * slime.Vel.X

	// separate the lighter ball along the normal so the pair cannot stay
	// overlapped into the next tick, then re-resolve it against the arena so
	// a snapshot between ticks never shows it out of bounds
	ball.Pos = slime.Pos.Add(n.Scale(sum))
	ball.resolveBoundaries(&ball.Pos)

	ball.clampExempt = true
	slime.clampExempt = true
}

// Colliding reports circle overlap between two bodies.
func Colliding(a, b *Body) bool {
	return a.Pos.Dist(b.Pos) < a.Radius()+b.Radius()
}
