package domain

// UserIdentity is the identity a websocket client volunteers after
// connecting. Until an identifyUser message arrives the entry carries the
// connection id and an empty username.
type UserIdentity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Anonymous returns true while the client has not identified itself yet.
func (i UserIdentity) Anonymous() bool {
	return i.Username == ""
}

// ServerStatus is pushed to all clients on a manual presence refresh.
type ServerStatus struct {
	Active         bool `json:"active"`
	ConnectedUsers int  `json:"connectedUsers"`
}
