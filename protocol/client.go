package protocol

// input structs coming in from the client.

type Hello struct {
	V    int    `json:"v"`              // version
	Name string `json:"name,omitempty"` // optional name
	Room string `json:"room,omitempty"` // room code; empty joins a fresh room
}

// Input is the held-state of the abstract controls, sampled client-side at
// ClientInputHz. The server derives press/release edges.
type Input struct {
	Move int  `json:"move"`           // -1..1 held direction
	Jump bool `json:"jump,omitempty"` // jump key held
	Duck bool `json:"duck,omitempty"` // duck key held
}
