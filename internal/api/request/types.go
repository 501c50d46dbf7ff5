package request

// CreatePlayerRequest is the request body for registering a player
type CreatePlayerRequest struct {
	Name string `json:"name"`
}

// CreateMoveRequest is the request body for registering a move
type CreateMoveRequest struct {
	Name string `json:"name"`
}

// PlayRequest is the request body for submitting a move or resolving the
// round, e.g. {"command": "Player1 e Rock"} or {"command": "play"}
type PlayRequest struct {
	Command string `json:"command"`
}
