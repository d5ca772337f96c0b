package protocol

type Welcome struct {
	PlayerID string `json:"playerId"`
	Side     int    `json:"side"` // 1 left, 2 right
	Room     string `json:"room"`
	TickHz   int    `json:"tickHz"`
}

type State struct {
	Tick   int             `json:"tick"`
	Slimes []SlimeSnapshot `json:"slimes"`
	Ball   BallSnapshot    `json:"ball"`
}

type SlimeSnapshot struct {
	ID   string  `json:"id"`
	Name string  `json:"name,omitempty"`
	Side int     `json:"side"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	R    float64 `json:"r"`
}

type BallSnapshot struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
	R  float64 `json:"r"`
}

// Event mirrors a collision-transition event stream entry: kind is
// ground/wall/net, dir is -1/0/1, and playerId is empty for the ball.
type Event struct {
	Kind     string `json:"kind"`
	Dir      int    `json:"dir"`
	PlayerID string `json:"playerId,omitempty"`
}

const (
	EventGround = "ground"
	EventWall   = "wall"
	EventNet    = "net"
)
