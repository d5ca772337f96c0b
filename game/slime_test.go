package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newGroundedSlime() *Slime {
	b := newTestSlimeBody()
	s := NewSlime(b)
	s.Tick() // settle onto the ground so the controller knows it is grounded
	return s
}

func activeJump(b *Body) *Movement {
	for _, m := range b.movements {
		if m.Class == ClassJump {
			return m
		}
	}
	return nil
}

func TestJumpPressWhileGroundedStartsJump(t *testing.T) {
	s := newGroundedSlime()
	s.JumpPress()

	assert.NotNil(t, activeJump(s.Body))
	s.Tick()
	assert.Less(t, s.Body.Vel.Y, 0.0, "jump must move the body upward")
	assert.False(t, s.Body.Grounded())
}

func TestJumpReleaseAfterMinimumEndsEarly(t *testing.T) {
	s := newGroundedSlime()
	s.JumpPress()
	s.JumpRelease()

	min := s.Body.tun.JumpMinFrames
	for i := 0; i < min; i++ {
		assert.NotNil(t, activeJump(s.Body), "released jump truncated below the minimum floor at tick %d", i)
		s.Tick()
	}
	assert.Nil(t, activeJump(s.Body))
}

func TestAirborneJumpPressIsBufferedAndReplaysOnLanding(t *testing.T) {
	s := newGroundedSlime()
	s.Body.Pos.Y = s.Body.arena.Ground - 4
	s.Tick() // leave the ground
	assert.Equal(t, stateAirborne, s.state)

	s.JumpPress()
	assert.Nil(t, activeJump(s.Body), "airborne press must not start a jump immediately")

	// falls back down well inside the buffer window
	landed := false
	for i := 0; i < s.Body.tun.JumpBufferFrames && !landed; i++ {
		s.Tick()
		landed = s.Body.Grounded()
	}
	assert.True(t, landed, "test setup: slime must land inside the buffer window")
	assert.NotNil(t, activeJump(s.Body), "buffered jump must replay on landing")
	assert.Zero(t, s.jumpBuffer, "buffer must be consumed by the replay")
}

func TestJumpBufferExpiresBeforeLateLanding(t *testing.T) {
	s := newGroundedSlime()
	s.Body.Pos.Y = s.Body.arena.Ground - 150
	s.Tick()
	s.JumpPress()

	landings := 0
	s.Events.Ground = func(dir int) {
		if dir != 0 {
			landings++
		}
	}
	for i := 0; i < 120; i++ {
		s.Tick()
	}
	assert.True(t, s.Body.Grounded())
	assert.Nil(t, activeJump(s.Body))
	// a replayed jump would have produced a second landing
	assert.Equal(t, 1, landings, "press buffered past its window must be dropped")
}

func TestDirectionReversalGrantsStrongerJump(t *testing.T) {
	plain := newGroundedSlime()
	plain.JumpPress()

	reversed := newGroundedSlime()
	reversed.MovePress(1)
	reversed.Tick()
	reversed.MoveRelease(1)
	reversed.MovePress(-1) // reversal inside the window
	reversed.JumpPress()

	for i := 0; i < 3; i++ {
		plain.Tick()
		reversed.Tick()
	}
	assert.Less(t, reversed.Body.Vel.Y, plain.Body.Vel.Y,
		"direction-change jump must rise faster than a standard jump")
}

func TestDirChangeJumpLockLimitsHorizontalDisplacement(t *testing.T) {
	tun := DefaultTuning()

	locked := NewBody(tun, testArena(), TeamLeft, tun.SlimeRadius, false)
	locked.Pos = Vec{X: 250, Y: 600}
	free := NewBody(tun, testArena(), TeamLeft, tun.SlimeRadius, false)
	free.Pos = Vec{X: 250, Y: 600}

	locked.StartMovement(NewDirChangeJump(locked, func() bool { return false }))
	locked.StartMovement(NewRun(locked, 1, func() bool { return false }))
	free.StartMovement(NewRun(free, 1, func() bool { return false }))

	for i := 0; i < tun.DirChangeLock; i++ {
		locked.Advance()
		free.Advance()
	}

	lockedDX := locked.Pos.X - 250
	freeDX := free.Pos.X - 250
	assert.Less(t, lockedDX, freeDX,
		"lock window must damp horizontal gain during a direction-change jump")
}

func TestWallJumpFromHuggingWall(t *testing.T) {
	s := newGroundedSlime()
	b := s.Body
	lo, _ := b.EffectiveBounds()
	b.Pos = Vec{X: lo + b.Radius() + 1, Y: b.arena.Ground - 120}
	b.Vel = Vec{X: -6, Y: 0}
	s.Tick() // slams into the left wall while airborne
	assert.Equal(t, stateHuggingWall, s.state)
	assert.Equal(t, -1, s.hugDir)

	s.JumpPress()
	first := activeJump(b)
	assert.NotNil(t, first)

	s.Tick()
	assert.Greater(t, b.Vel.X, 0.0, "wall jump must push away from the wall")
	assert.Less(t, b.Vel.Y, 0.0)

	// a second press is cooldown-gated: it buffers instead of restarting
	s.JumpPress()
	assert.Same(t, first, activeJump(b))
}

func TestSecondReversalKeepsBonusVelocityCap(t *testing.T) {
	s := newGroundedSlime()
	s.Apply(Input{Move: 1})
	s.Tick()
	s.Apply(Input{Move: -1})
	s.Tick()
	assert.InDelta(t, s.Body.tun.OppositeRunVel, s.Body.maxVelMult, 1e-9)

	// reversing again while the opposite-run is still active
	s.Apply(Input{Move: 1})
	s.Tick()
	assert.InDelta(t, s.Body.tun.OppositeRunVel, s.Body.maxVelMult, 1e-9)
}

func TestJumpAlongWallFromGroundEntersHug(t *testing.T) {
	s := newGroundedSlime()
	b := s.Body
	// run into the left wall and stay pressed against it
	s.Apply(Input{Move: -1})
	for i := 0; i < 80; i++ {
		s.Tick()
	}
	assert.Equal(t, -1, b.wallContact)
	assert.Equal(t, stateGrounded, s.state)

	s.Apply(Input{Move: -1, Jump: true})
	s.Tick()
	assert.Equal(t, stateHuggingWall, s.state)
	assert.Equal(t, -1, s.hugDir)

	// a wall jump is now available without ever leaving the wall
	s.JumpRelease()
	s.JumpPress()
	assert.Equal(t, b.tun.WallJumpCooldown, s.wallJumpCD)
}

func TestDuckSuppressesJumpAndFastFalls(t *testing.T) {
	s := newGroundedSlime()
	s.DuckPress()
	s.JumpPress()
	assert.Nil(t, activeJump(s.Body), "ducking slime must not jump")

	s.Body.Pos.Y = s.Body.arena.Ground - 200
	s.Body.grounded = false
	ducked := *s.Body
	s.Tick()

	fast := s.Body.Vel.Y
	s.DuckRelease()
	s.Body.Pos = ducked.Pos
	s.Body.Vel = Vec{}
	s.Tick()
	assert.Greater(t, fast, s.Body.Vel.Y, "ducking must fall faster than neutral")
}

func TestApplyDerivesEdgesFromHeldState(t *testing.T) {
	s := newGroundedSlime()

	s.Apply(Input{Move: 1, Jump: true})
	assert.Equal(t, 1, s.moveDir)
	assert.NotNil(t, activeJump(s.Body))

	// same held state again: no new presses
	jump := activeJump(s.Body)
	s.Apply(Input{Move: 1, Jump: true})
	assert.Same(t, jump, activeJump(s.Body))

	s.Apply(Input{})
	assert.Zero(t, s.moveDir)
	assert.True(t, s.jumpReleased)
}
