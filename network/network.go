package network

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"slimevolley/game"
	"slimevolley/protocol"
	"slimevolley/room"
)

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConn adapts a gorilla conn to room.Conn. Writes are serialized because
// the room goroutine and the ping loop both send.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

type Server struct {
	mgr *room.Manager
}

func NewServer(mgr *room.Manager) *Server {
	return &Server{mgr: mgr}
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	conn := &wsConn{conn: raw}
	defer conn.Close()

	// Basic timeouts + pong handling (keeps connections healthy)
	raw.SetReadLimit(1 << 20) // 1MB
	_ = raw.SetReadDeadline(time.Now().Add(60 * time.Second))
	raw.SetPongHandler(func(string) error {
		_ = raw.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.ping(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	hello, err := readHello(raw)
	if err != nil {
		log.Println("hello:", err)
		return
	}

	code := hello.Room
	if code == "" {
		code = s.mgr.CreateRoom()
	}
	rm := s.mgr.GetOrCreateRoom(code)
	if rm == nil {
		return
	}

	reply := make(chan room.JoinResult, 1)
	rm.Inbox <- room.Join{Conn: conn, Name: hello.Name, Reply: reply}
	res := <-reply

	welcome, err := protocol.Encode(protocol.MsgWelcome, protocol.Welcome{
		PlayerID: res.PlayerID,
		Side:     res.Side,
		Room:     code,
		TickHz:   protocol.SimTickHz,
	})
	if err == nil {
		_ = conn.Send(welcome)
	}

	defer func() {
		rm.Inbox <- room.Leave{PlayerID: res.PlayerID}
	}()

	// Read pump: every message refreshes the deadline, input envelopes feed
	// the room.
	for {
		_, msg, err := raw.ReadMessage()
		if err != nil {
			return
		}
		_ = raw.SetReadDeadline(time.Now().Add(60 * time.Second))

		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			continue
		}
		if env.T != protocol.MsgInput {
			continue
		}
		in, err := protocol.DecodePayload[protocol.Input](env)
		if err != nil {
			continue
		}
		rm.Inbox <- room.Input{
			PlayerID: res.PlayerID,
			Input: game.Input{
				Move: clampDir(in.Move),
				Jump: in.Jump,
				Duck: in.Duck,
			},
		}
	}
}

func readHello(raw *websocket.Conn) (protocol.Hello, error) {
	_, msg, err := raw.ReadMessage()
	if err != nil {
		return protocol.Hello{}, err
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return protocol.Hello{}, err
	}
	return protocol.DecodePayload[protocol.Hello](env)
}

func clampDir(d int) int {
	if d < -1 {
		return -1
	}
	if d > 1 {
		return 1
	}
	return d
}

func (s *Server) roomsHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.mgr.ListRooms())
}

// Serve blocks, handling websocket sessions on /ws and the room list on
// /rooms.
func (s *Server) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.wsHandler)
	mux.HandleFunc("/rooms", s.roomsHandler)
	log.Printf("listening on %s (ws endpoint: /ws)", addr)
	return http.ListenAndServe(addr, mux)
}
