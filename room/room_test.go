package room

import (
	"testing"
	"time"

	"slimevolley/game"
	"slimevolley/protocol"
)

type fakeConn struct {
	sendCh chan []byte
}

func (f *fakeConn) Send(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	select {
	case f.sendCh <- cp:
	default: // test not draining fast enough, drop like a slow client
	}
	return nil
}

func (f *fakeConn) Close() error {
	return nil
}

func join(t *testing.T, r *Room) (*fakeConn, JoinResult) {
	t.Helper()
	fc := &fakeConn{sendCh: make(chan []byte, 64)}
	reply := make(chan JoinResult, 1)
	r.Inbox <- Join{Conn: fc, Name: "test", Reply: reply}
	select {
	case res := <-reply:
		return fc, res
	case <-time.After(time.Second):
		t.Fatalf("join not acknowledged")
		return nil, JoinResult{}
	}
}

func waitForState(t *testing.T, fc *fakeConn) protocol.State {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case b := <-fc.sendCh:
			env, err := protocol.DecodeEnvelope(b)
			if err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if env.T != protocol.MsgState {
				continue
			}
			state, err := protocol.DecodePayload[protocol.State](env)
			if err != nil {
				t.Fatalf("decode state: %v", err)
			}
			return state
		case <-timeout:
			t.Fatalf("no state broadcast received")
		}
	}
}

func TestRoomJoinBroadcastIncludesSlimeAndBall(t *testing.T) {
	r := New(nil)
	go r.Run()
	defer r.Stop()

	fc, res := join(t, r)
	if res.PlayerID == "" {
		t.Fatalf("expected player id, got empty")
	}
	if res.Side != int(game.TeamLeft) {
		t.Fatalf("first joiner side = %d, want left (%d)", res.Side, game.TeamLeft)
	}

	state := waitForState(t, fc)
	found := false
	for _, s := range state.Slimes {
		if s.ID == res.PlayerID {
			found = true
			if s.R <= 0 {
				t.Fatalf("snapshot radius must be positive, got %f", s.R)
			}
		}
	}
	if !found {
		t.Fatalf("broadcast state missing joined player %s", res.PlayerID)
	}
	if state.Ball.R <= 0 {
		t.Fatalf("broadcast state missing ball")
	}
}

func TestRoomAssignsOpposingSides(t *testing.T) {
	r := New(nil)
	go r.Run()
	defer r.Stop()

	_, first := join(t, r)
	_, second := join(t, r)

	if first.Side == second.Side {
		t.Fatalf("both players on side %d", first.Side)
	}
}

func TestRoomAppliesInputToSlime(t *testing.T) {
	r := New(nil)
	go r.Run()
	defer r.Stop()

	fc, res := join(t, r)
	s0 := waitForState(t, fc)
	r.Inbox <- Input{PlayerID: res.PlayerID, Input: game.Input{Move: 1}}

	deadline := time.After(time.Second)
	for {
		s := waitForState(t, fc)
		var x0, x float64
		for _, sl := range s0.Slimes {
			if sl.ID == res.PlayerID {
				x0 = sl.X
			}
		}
		for _, sl := range s.Slimes {
			if sl.ID == res.PlayerID {
				x = sl.X
			}
		}
		if x > x0 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("held move input never moved the slime: x0=%f x=%f", x0, x)
		default:
		}
	}
}

func TestRoomBroadcastsBallGroundEvent(t *testing.T) {
	r := New(nil)
	go r.Run()
	defer r.Stop()

	// the ball is served above the ground and falls on its own
	fc, _ := join(t, r)

	timeout := time.After(2 * time.Second)
	for {
		select {
		case b := <-fc.sendCh:
			env, err := protocol.DecodeEnvelope(b)
			if err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if env.T != protocol.MsgEvent {
				continue
			}
			ev, err := protocol.DecodePayload[protocol.Event](env)
			if err != nil {
				t.Fatalf("decode event: %v", err)
			}
			if ev.Kind == protocol.EventGround && ev.PlayerID == "" && ev.Dir != 0 {
				return
			}
		case <-timeout:
			t.Fatalf("never saw the ball's ground event")
		}
	}
}

func TestRoomEmptyCallbackFiresOnLastLeave(t *testing.T) {
	r := New(nil)
	r.Code = "TEST42"
	emptied := make(chan string, 1)
	r.OnEmpty = func(code string) { emptied <- code }
	go r.Run()
	defer r.Stop()

	_, res := join(t, r)
	r.Inbox <- Leave{PlayerID: res.PlayerID}

	select {
	case code := <-emptied:
		if code != "TEST42" {
			t.Fatalf("OnEmpty code = %q, want TEST42", code)
		}
	case <-time.After(time.Second):
		t.Fatalf("OnEmpty never fired")
	}
}
