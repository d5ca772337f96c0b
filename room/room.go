package room

import (
	"time"

	"github.com/google/uuid"

	"slimevolley/game"
	"slimevolley/protocol"
)

// Default court. Clients render relative to these, and all tuning scales
// with the width, so the numbers themselves are arbitrary.
var defaultArena = game.Arena{Left: 0, Right: 1000, Ground: 600}

// serveDelayTicks is the pause between the ball touching the ground and the
// next serve placement.
const serveDelayTicks = 60

type Room struct {
	Inbox          chan any
	tickHz         int
	broadcastEvery int
	state          *game.State
	clients        map[string]Conn
	names          map[string]string
	latestInputs   map[string]game.Input
	quit           chan struct{}

	// collision events queued during a tick, flushed after it
	pending []protocol.Event

	servePending int
	serveSide    game.Team

	Code    string            // room code (e.g. "ABC123")
	OnEmpty func(code string) // called when last player leaves
}

func New(tun *game.Tuning) *Room {
	broadcastEvery := protocol.SimTickHz / protocol.BroadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	if tun == nil {
		tun = game.DefaultTuning()
	}
	r := &Room{
		Inbox:          make(chan any, 256),
		tickHz:         protocol.SimTickHz,
		broadcastEvery: broadcastEvery,
		state:          game.NewState(tun, defaultArena),
		clients:        make(map[string]Conn),
		names:          make(map[string]string),
		latestInputs:   make(map[string]game.Input),
		quit:           make(chan struct{}),
	}
	r.state.Ball.Events = game.Events{
		Ground: func(dir int) {
			r.queueEvent(protocol.EventGround, dir, "")
			if dir != 0 {
				r.scheduleServe()
			}
		},
		Wall: func(dir int) { r.queueEvent(protocol.EventWall, dir, "") },
		Net:  func(dir int) { r.queueEvent(protocol.EventNet, dir, "") },
	}
	return r
}

func (r *Room) Stop() {
	close(r.quit)
}

// NumPlayers returns the current number of connected clients.
func (r *Room) NumPlayers() int {
	return len(r.clients)
}

func (r *Room) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickHz))
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			game.Step(r.state, r.latestInputs)
			if r.servePending > 0 {
				r.servePending--
				if r.servePending == 0 {
					r.state.PlaceForServe(r.serveSide)
				}
			}
			r.flushEvents()
			if r.state.Tick%r.broadcastEvery == 0 {
				r.broadcastState()
			}
		}
	}
}

// scheduleServe hands the next serve to the side the ball did not land on.
func (r *Room) scheduleServe() {
	if r.servePending > 0 {
		return
	}
	a := r.state.Arena()
	if r.state.Ball.Pos.X < (a.Left+a.Right)/2 {
		r.serveSide = game.TeamRight
	} else {
		r.serveSide = game.TeamLeft
	}
	r.servePending = serveDelayTicks
}

func (r *Room) queueEvent(kind string, dir int, playerID string) {
	r.pending = append(r.pending, protocol.Event{Kind: kind, Dir: dir, PlayerID: playerID})
}

func (r *Room) flushEvents() {
	if len(r.pending) == 0 {
		return
	}
	for _, ev := range r.pending {
		b, err := protocol.Encode(protocol.MsgEvent, ev)
		if err != nil {
			continue
		}
		r.broadcast(b)
	}
	r.pending = r.pending[:0]
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		playerID := uuid.NewString()
		team := r.pickSide()
		r.clients[playerID] = c.Conn
		r.names[playerID] = c.Name
		r.latestInputs[playerID] = game.Input{}
		sl := r.state.AddSlime(playerID, team)
		id := playerID
		sl.Events = game.Events{
			Ground: func(dir int) { r.queueEvent(protocol.EventGround, dir, id) },
			Wall:   func(dir int) { r.queueEvent(protocol.EventWall, dir, id) },
			Net:    func(dir int) { r.queueEvent(protocol.EventNet, dir, id) },
		}
		c.Reply <- JoinResult{PlayerID: playerID, Side: int(team)}
	case Input:
		if _, ok := r.clients[c.PlayerID]; !ok {
			return
		}
		r.latestInputs[c.PlayerID] = c.Input
	case Leave:
		r.handleLeave(c.PlayerID)
	}
}

// pickSide puts the joiner on the emptier half, left first on ties.
func (r *Room) pickSide() game.Team {
	left, right := 0, 0
	for _, sl := range r.state.Slimes {
		switch sl.Body.Team {
		case game.TeamLeft:
			left++
		case game.TeamRight:
			right++
		}
	}
	if right < left {
		return game.TeamRight
	}
	return game.TeamLeft
}

func (r *Room) handleLeave(playerID string) {
	c, ok := r.clients[playerID]
	delete(r.latestInputs, playerID)
	delete(r.names, playerID)
	r.state.RemoveSlime(playerID)
	if ok {
		r.sendStateTo(c)
		_ = c.Close()
		delete(r.clients, playerID)
	}
	if len(r.clients) == 0 && r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
	}
}

func (r *Room) removePlayer(playerID string) {
	if c, ok := r.clients[playerID]; ok {
		_ = c.Close()
	}
	delete(r.clients, playerID)
	delete(r.latestInputs, playerID)
	delete(r.names, playerID)
	r.state.RemoveSlime(playerID)
}

func (r *Room) broadcast(b []byte) {
	var failed []string
	for id, c := range r.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.removePlayer(id)
	}
}

func (r *Room) broadcastState() {
	snapshot := r.buildSnapshot()
	b, err := protocol.Encode(protocol.MsgState, snapshot)
	if err != nil {
		return
	}
	r.broadcast(b)
}

func (r *Room) sendStateTo(c Conn) {
	snapshot := r.buildSnapshot()
	b, err := protocol.Encode(protocol.MsgState, snapshot)
	if err != nil {
		return
	}
	_ = c.Send(b)
}

func (r *Room) buildSnapshot() protocol.State {
	ball := r.state.Ball
	snapshot := protocol.State{
		Tick:   r.state.Tick,
		Slimes: make([]protocol.SlimeSnapshot, 0, len(r.state.Slimes)),
		Ball: protocol.BallSnapshot{
			X:  ball.Pos.X,
			Y:  ball.Pos.Y,
			VX: ball.Vel.X,
			VY: ball.Vel.Y,
			R:  ball.Radius(),
		},
	}
	for id, sl := range r.state.Slimes {
		b := sl.Body
		snapshot.Slimes = append(snapshot.Slimes, protocol.SlimeSnapshot{
			ID:   id,
			Name: r.names[id],
			Side: int(b.Team),
			X:    b.Pos.X,
			Y:    b.Pos.Y,
			VX:   b.Vel.X,
			VY:   b.Vel.Y,
			R:    b.Radius(),
		})
	}
	return snapshot
}
