package game

// Events holds per-body collision-transition sinks. Each fires once when the
// contact state changes, never once per tick while contact persists. The
// direction payload is -1/1 on contact (1 on landing for ground) and 0 when
// contact ends.
//
// Callbacks are per match instance, owned by whoever built the body; there
// is no global registry.
type Events struct {
	Ground func(dir int)
	Wall   func(dir int)
	Net    func(dir int)
}

func (e Events) emitGround(dir int) {
	if e.Ground != nil {
		e.Ground(dir)
	}
}

func (e Events) emitWall(dir int) {
	if e.Wall != nil {
		e.Wall(dir)
	}
}

func (e Events) emitNet(dir int) {
	if e.Net != nil {
		e.Net(dir)
	}
}
