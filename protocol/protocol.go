package protocol

import (
	"encoding/json"
)

const (
	MsgHello   = "hello"
	MsgInput   = "input"
	MsgWelcome = "welcome"
	MsgState   = "state"
	MsgEvent   = "event"
)

const (
	SimTickHz     = 60
	ClientInputHz = 60
	BroadcastHz   = 30
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}
