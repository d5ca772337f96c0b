package game

// Internal truth authoritative match state

type State struct {
	Tick   int
	Slimes map[string]*Slime
	Ball   *Body

	tun   *Tuning
	arena Arena
}

func NewState(tun *Tuning, a Arena) *State {
	ball := NewBody(tun, a, TeamNone, tun.BallRadius, true)
	s := &State{
		Slimes: make(map[string]*Slime),
		Ball:   ball,
		tun:    tun,
		arena:  a,
	}
	s.PlaceForServe(TeamLeft)
	return s
}

func (s *State) Tuning() *Tuning { return s.tun }
func (s *State) Arena() Arena    { return s.arena }

// AddSlime creates a player body on the given side and returns its
// controller.
func (s *State) AddSlime(id string, team Team) *Slime {
	body := NewBody(s.tun, s.arena, team, s.tun.SlimeRadius, false)
	sl := NewSlime(body)
	s.Slimes[id] = sl
	s.placeSlime(sl)
	return sl
}

func (s *State) RemoveSlime(id string) {
	delete(s.Slimes, id)
}

// PlaceForServe resets the rally: the ball is dropped above the serving
// side's midpoint with zero velocity and every body returns to its spawn
// point. Active movements are cancelled, which still fires their cleanup.
func (s *State) PlaceForServe(side Team) {
	s.Ball.CancelAllMovements()
	s.Ball.Vel = Vec{}
	x := s.sideMid(side)
	s.Ball.Pos = Vec{X: x, Y: s.arena.Ground - s.tun.ServeHeight*s.Ball.scale()}
	for _, sl := range s.Slimes {
		s.placeSlime(sl)
	}
}

func (s *State) placeSlime(sl *Slime) {
	b := sl.Body
	b.CancelAllMovements()
	b.ResetMaxVelocity()
	b.Vel = Vec{}
	b.Pos = Vec{X: s.sideMid(b.Team), Y: s.arena.Ground}
	sl.reset()
}

// sideMid is the horizontal center of a team's half; TeamNone maps to the
// arena center.
func (s *State) sideMid(team Team) float64 {
	mid := (s.arena.Left + s.arena.Right) / 2
	switch team {
	case TeamLeft:
		return (s.arena.Left + mid) / 2
	case TeamRight:
		return (mid + s.arena.Right) / 2
	}
	return mid
}

// Resize swaps in a new boundary set for every body; radii, accelerations
// and velocity caps rescale proportionally.
func (s *State) Resize(a Arena) {
	s.arena = a
	s.Ball.Resize(a)
	for _, sl := range s.Slimes {
		sl.Body.Resize(a)
	}
}
