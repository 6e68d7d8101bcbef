package messages

// JoinRequest is sent by a client after connecting to enter a room.
type JoinRequest struct {
	Version    string
	PlayerName string
	Room       string
}

// JoinAccepted is sent by the server when a client's join request is accepted.
type JoinAccepted struct {
	ServerName string
	Room       string
	TickRate   int
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
