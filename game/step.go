package game

// Step advances the match by one fixed tick: inputs are applied as
// press/release edges, every body advances independently, then ball-vs-slime
// collisions are resolved exactly once per pair so bounce impulses cannot be
// applied twice or tunneled past.
func Step(s *State, inputs map[string]Input) {
	s.Tick++

	for id, sl := range s.Slimes {
		sl.Apply(inputs[id])
		sl.Tick()
	}

	s.Ball.Advance()
	for _, sl := range s.Slimes {
		ResolveBallCollision(s.tun, s.Ball, sl.Body)
	}
}
